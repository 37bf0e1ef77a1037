package port

import "asbestos-screen/internal/domain/entity"

// ReportRenderer интерфейс генератора PDF-отчёта
type ReportRenderer interface {
	// Render собирает отчёт за один синхронный проход
	Render(assessment *entity.RiskAssessment, images []entity.AnalyzedImage, facilities []entity.InspectionFacility) (*entity.Report, error)
}
