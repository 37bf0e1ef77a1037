package storage

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"asbestos-screen/internal/domain/entity"
)

func TestMemoryUserRepository_GetCreatesUser(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()

	u, err := r.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateMainMenu, u.State)
	require.NotNil(t, u.Session)

	require.NoError(t, r.UpdateState(ctx, 1, entity.StateAwaitingPhoto))
	again, err := r.Get(ctx, 1, 11)
	require.NoError(t, err)
	require.Same(t, u, again)
	require.Equal(t, entity.StateAwaitingPhoto, again.State)
	require.Equal(t, int64(11), again.ChatID)
}

func TestMemoryAssessmentRepository(t *testing.T) {
	r := NewMemoryAssessmentRepository()
	ctx := context.Background()
	base := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		a := &entity.RiskAssessment{ID: id, Status: entity.StatusSafe, Confidence: 70, Timestamp: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, r.Save(ctx, 1, a))
	}
	require.NoError(t, r.Save(ctx, 2, &entity.RiskAssessment{ID: "z", Status: entity.StatusDanger, Confidence: 90, Timestamp: base}))

	list, err := r.ListByUser(ctx, 1, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "c", list[0].ID)
	require.Equal(t, "b", list[1].ID)

	got, err := r.Get(ctx, "z")
	require.NoError(t, err)
	require.Equal(t, entity.StatusDanger, got.Status)

	require.NoError(t, r.Delete(ctx, "z"))
	_, err = r.Get(ctx, "z")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, "z"), ErrNotFound)

	require.ErrorIs(t, r.Save(ctx, 1, &entity.RiskAssessment{ID: "bad", Status: entity.StatusSafe, Confidence: 150}), entity.ErrInvalidAssessment)
}

func TestMemoryUserRepository_ConcurrentGet(t *testing.T) {
	r := NewMemoryUserRepository()
	ctx := context.Background()

	var wg sync.WaitGroup
	users := make([]*entity.User, 16)
	for i := range users {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := r.Get(ctx, 1, int64(10+i%2))
			require.NoError(t, err)
			users[i] = u
		}(i)
	}
	wg.Wait()

	for _, u := range users {
		require.Same(t, users[0], u)
	}
}
