package storage

import (
	"context"
	"sort"
	"sync"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/domain/port"
)

type storedAssessment struct {
	userID     int64
	assessment entity.RiskAssessment
}

// MemoryAssessmentRepository in-memory история проверок.
// Используется, когда DATABASE_DSN не задан.
type MemoryAssessmentRepository struct {
	mu    sync.RWMutex
	items map[string]storedAssessment
}

// NewMemoryAssessmentRepository создаёт пустую историю
func NewMemoryAssessmentRepository() *MemoryAssessmentRepository {
	return &MemoryAssessmentRepository{items: make(map[string]storedAssessment)}
}

// Save сохраняет копию результата
func (r *MemoryAssessmentRepository) Save(ctx context.Context, userID int64, assessment *entity.RiskAssessment) error {
	if err := assessment.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	r.items[assessment.ID] = storedAssessment{userID: userID, assessment: cloneAssessment(*assessment)}
	r.mu.Unlock()

	return nil
}

// Get возвращает результат по ID
func (r *MemoryAssessmentRepository) Get(ctx context.Context, id string) (*entity.RiskAssessment, error) {
	r.mu.RLock()
	item, ok := r.items[id]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	a := cloneAssessment(item.assessment)
	return &a, nil
}

// ListByUser возвращает результаты пользователя, новые первыми
func (r *MemoryAssessmentRepository) ListByUser(ctx context.Context, userID int64, limit int) ([]entity.RiskAssessment, error) {
	r.mu.RLock()
	list := make([]entity.RiskAssessment, 0)
	for _, item := range r.items {
		if item.userID == userID {
			list = append(list, cloneAssessment(item.assessment))
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Timestamp.Equal(list[j].Timestamp) {
			return list[i].ID > list[j].ID
		}
		return list[i].Timestamp.After(list[j].Timestamp)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// Delete удаляет результат
func (r *MemoryAssessmentRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func cloneAssessment(a entity.RiskAssessment) entity.RiskAssessment {
	a.DetectedFeatures = append([]string(nil), a.DetectedFeatures...)
	a.Recommendations = append([]string(nil), a.Recommendations...)
	return a
}

// Проверка реализации интерфейса
var _ port.AssessmentRepository = (*MemoryAssessmentRepository)(nil)
