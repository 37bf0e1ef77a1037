package port

import (
	"context"

	"asbestos-screen/internal/domain/entity"
)

// AssessmentRepository интерфейс истории проверок
type AssessmentRepository interface {
	// Save сохраняет или обновляет результат
	Save(ctx context.Context, userID int64, assessment *entity.RiskAssessment) error

	// Get возвращает результат по ID
	Get(ctx context.Context, id string) (*entity.RiskAssessment, error)

	// ListByUser возвращает последние результаты пользователя, новые первыми
	ListByUser(ctx context.Context, userID int64, limit int) ([]entity.RiskAssessment, error)

	// Delete удаляет результат
	Delete(ctx context.Context, id string) error
}
