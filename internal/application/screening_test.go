package app

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/infrastructure/facility"
	"asbestos-screen/internal/infrastructure/storage"
)

type fakeAnalyzer struct {
	status  entity.RiskStatus
	refined entity.RiskStatus
	err     error
	refines int
	lastID  string
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, img entity.AnalyzedImage) (*entity.RiskAssessment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entity.RiskAssessment{
		ID:         "analysis-1",
		Status:     f.status,
		Confidence: 72,
		Message:    "Preliminary screening completed",
		Timestamp:  time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
	}, nil
}

func (f *fakeAnalyzer) Refine(ctx context.Context, id string, info *entity.AdditionalInfo) (*entity.RiskAssessment, error) {
	f.refines++
	f.lastID = id
	return &entity.RiskAssessment{Status: f.refined, Confidence: 90, Timestamp: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)}, nil
}

type rejectGate struct{}

func (rejectGate) Check(ctx context.Context, data []byte) error {
	if string(data) == "blurry" {
		return fmt.Errorf("%w: image is blurry", entity.ErrPoorPhoto)
	}
	return nil
}

type fakeRenderer struct {
	images     int
	facilities int
}

func (r *fakeRenderer) Render(a *entity.RiskAssessment, images []entity.AnalyzedImage, facilities []entity.InspectionFacility) (*entity.Report, error) {
	r.images = len(images)
	r.facilities = len(facilities)
	return &entity.Report{FileName: "asbestos-report-1.pdf", Content: []byte("%PDF"), PageCount: 1}, nil
}

type fixture struct {
	svc      *ScreeningService
	analyzer *fakeAnalyzer
	renderer *fakeRenderer
	history  *storage.MemoryAssessmentRepository
}

func newFixture(status entity.RiskStatus) *fixture {
	f := &fixture{
		analyzer: &fakeAnalyzer{status: status, refined: entity.StatusDanger},
		renderer: &fakeRenderer{},
		history:  storage.NewMemoryAssessmentRepository(),
	}
	f.svc = NewScreeningService(NewUserService(storage.NewMemoryUserRepository()), Deps{
		Gate:       rejectGate{},
		Analyzer:   f.analyzer,
		Facilities: facility.Default(),
		History:    f.history,
		Renderer:   f.renderer,
	})
	return f
}

func photo(name string) entity.AnalyzedImage {
	return entity.AnalyzedImage{Name: name, Data: []byte(name)}
}

func details() entity.AdditionalInfo {
	return entity.AdditionalInfo{
		Location: "Basement ceiling",
		Size:     entity.MaterialSize{Width: 30, Height: 20, Depth: 1, Unit: entity.UnitCentimeter},
	}
}

func TestScreening_SubmitPhotoRoutesByStatus(t *testing.T) {
	testCases := []struct {
		status entity.RiskStatus
		state  entity.UserState
		step   entity.Step
	}{
		{entity.StatusSafe, entity.StateMainMenu, entity.StepResult},
		{entity.StatusUncertain, entity.StateAwaitingDetails, entity.StepAdditionalInfo},
		{entity.StatusDanger, entity.StateAwaitingLocation, entity.StepCenters},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			f := newFixture(tc.status)
			ctx := context.Background()

			_, err := f.svc.Begin(ctx, 1, 10)
			require.NoError(t, err)
			user, err := f.svc.SubmitPhoto(ctx, 1, 10, photo("wall.jpg"))
			require.NoError(t, err)
			require.Equal(t, tc.state, user.State)
			require.Equal(t, tc.step, user.Session.Step)
			require.Len(t, user.Session.Images, 1)

			list, err := f.svc.History(ctx, 1, 0)
			require.NoError(t, err)
			require.Len(t, list, 1)
		})
	}
}

func TestScreening_PoorPhotoKeepsState(t *testing.T) {
	f := newFixture(entity.StatusSafe)
	ctx := context.Background()

	_, err := f.svc.Begin(ctx, 1, 10)
	require.NoError(t, err)
	_, err = f.svc.SubmitPhoto(ctx, 1, 10, photo("blurry"))
	require.ErrorIs(t, err, entity.ErrPoorPhoto)

	user, err := f.svc.users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
	require.Empty(t, user.Session.Images)
}

func TestScreening_AnalyzerFailureReturnsToUpload(t *testing.T) {
	f := newFixture(entity.StatusSafe)
	f.analyzer.err = errors.New("service unavailable")
	ctx := context.Background()

	_, err := f.svc.Begin(ctx, 1, 10)
	require.NoError(t, err)
	_, err = f.svc.SubmitPhoto(ctx, 1, 10, photo("wall.jpg"))
	require.Error(t, err)

	user, err := f.svc.users.Get(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingPhoto, user.State)
}

func TestScreening_AnalyzerNotConfigured(t *testing.T) {
	svc := NewScreeningService(NewUserService(storage.NewMemoryUserRepository()), Deps{})
	_, err := svc.SubmitPhoto(context.Background(), 1, 10, photo("wall.jpg"))
	require.ErrorIs(t, err, ErrAnalyzerNotConfigured)
}

func TestScreening_RefineFlow(t *testing.T) {
	f := newFixture(entity.StatusUncertain)
	ctx := context.Background()

	_, err := f.svc.Begin(ctx, 1, 10)
	require.NoError(t, err)
	_, err = f.svc.SubmitPhoto(ctx, 1, 10, photo("wall.jpg"))
	require.NoError(t, err)

	_, err = f.svc.SubmitDetails(ctx, 1, 10, entity.AdditionalInfo{Location: " "})
	var verrs entity.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Contains(t, verrs, "location")
	require.NotContains(t, verrs, "images")

	user, err := f.svc.SubmitDetails(ctx, 1, 10, details())
	require.NoError(t, err)
	require.Equal(t, entity.StateAwaitingDetailPhoto, user.State)

	// Без фото уточнение не отправляется
	_, err = f.svc.Refine(ctx, 1, 10)
	require.ErrorAs(t, err, &verrs)
	require.Zero(t, f.analyzer.refines)

	for i := 1; i <= entity.MaxDetailImages; i++ {
		n, err := f.svc.AddDetailPhoto(ctx, 1, 10, photo(fmt.Sprintf("detail-%d.jpg", i)))
		require.NoError(t, err)
		require.Equal(t, i, n)
	}
	_, err = f.svc.AddDetailPhoto(ctx, 1, 10, photo("one-more.jpg"))
	require.ErrorIs(t, err, ErrTooManyPhotos)

	user, err = f.svc.Refine(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, "analysis-1", f.analyzer.lastID)
	require.Equal(t, entity.StatusDanger, user.Session.Assessment.Status)
	require.Equal(t, "analysis-1", user.Session.Assessment.ID)
	require.Equal(t, entity.StateAwaitingLocation, user.State)

	saved, err := f.history.Get(ctx, "analysis-1")
	require.NoError(t, err)
	require.Equal(t, entity.StatusDanger, saved.Status)
}

func TestScreening_DetailsRequireAssessment(t *testing.T) {
	f := newFixture(entity.StatusUncertain)
	ctx := context.Background()

	_, err := f.svc.SubmitDetails(ctx, 1, 10, details())
	require.ErrorIs(t, err, ErrNoAssessment)
	_, err = f.svc.AddDetailPhoto(ctx, 1, 10, photo("a.jpg"))
	require.ErrorIs(t, err, ErrNoDetails)
}

func TestScreening_FacilitiesAndReport(t *testing.T) {
	f := newFixture(entity.StatusDanger)
	ctx := context.Background()

	_, err := f.svc.BuildReport(ctx, 1, 10)
	require.ErrorIs(t, err, ErrNoAssessment)

	_, err = f.svc.Begin(ctx, 1, 10)
	require.NoError(t, err)
	_, err = f.svc.SubmitPhoto(ctx, 1, 10, photo("wall.jpg"))
	require.NoError(t, err)

	list, err := f.svc.FindFacilities(ctx, 1, 10, &entity.Coordinates{Lat: 37.4840, Lng: 127.0330}, 2)
	require.NoError(t, err)
	require.Len(t, list, 2)

	report, err := f.svc.BuildReport(ctx, 1, 10)
	require.NoError(t, err)
	require.Equal(t, "asbestos-report-1.pdf", report.FileName)
	require.Equal(t, 1, f.renderer.images)
	require.Equal(t, 2, f.renderer.facilities)
}

func TestScreening_CancelClearsSession(t *testing.T) {
	f := newFixture(entity.StatusSafe)
	ctx := context.Background()

	_, err := f.svc.Begin(ctx, 1, 10)
	require.NoError(t, err)
	_, err = f.svc.SubmitPhoto(ctx, 1, 10, photo("wall.jpg"))
	require.NoError(t, err)

	user, err := f.svc.Cancel(ctx, 1, 10)
	require.NoError(t, err)
	require.Nil(t, user.Session.Assessment)
	require.Equal(t, entity.StateMainMenu, user.State)
}
