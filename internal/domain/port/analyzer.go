package port

import (
	"context"

	"asbestos-screen/internal/domain/entity"
)

// RiskAnalyzer интерфейс внешнего сервиса анализа
type RiskAnalyzer interface {
	// Analyze отправляет фото и возвращает классификацию риска
	Analyze(ctx context.Context, image entity.AnalyzedImage) (*entity.RiskAssessment, error)

	// Refine уточняет ранее полученный результат по дополнительным данным
	Refine(ctx context.Context, analysisID string, info *entity.AdditionalInfo) (*entity.RiskAssessment, error)
}
