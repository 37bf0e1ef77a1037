package port

import (
	"context"

	"asbestos-screen/internal/domain/entity"
)

// FacilityDirectory интерфейс справочника центров проверки
type FacilityDirectory interface {
	// Nearby возвращает центры, отсортированные по расстоянию.
	// origin может быть nil, limit <= 0 означает без ограничения.
	Nearby(ctx context.Context, origin *entity.Coordinates, limit int) ([]entity.InspectionFacility, error)
}
