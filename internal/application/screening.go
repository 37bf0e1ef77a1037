package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/apex/log"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/domain/port"
)

var (
	// ErrNoAssessment в сессии ещё нет результата анализа
	ErrNoAssessment = errors.New("no assessment in the current session")
	// ErrNoDetails уточняющие данные ещё не введены
	ErrNoDetails = errors.New("additional info is not submitted")
	// ErrTooManyPhotos превышен лимит уточняющих фото
	ErrTooManyPhotos = fmt.Errorf("at most %d additional photos are allowed", entity.MaxDetailImages)
	// ErrAnalyzerNotConfigured сервис анализа не подключён
	ErrAnalyzerNotConfigured = errors.New("analyzer is not configured")
)

// ScreeningService управляет сценарием проверки:
// фото → результат → уточнение → центры проверки → отчёт.
type ScreeningService struct {
	users      *UserService
	gate       port.PhotoQualityGate
	analyzer   port.RiskAnalyzer
	facilities port.FacilityDirectory
	history    port.AssessmentRepository
	renderer   port.ReportRenderer
}

// Deps зависимости сервиса. gate и history необязательны.
type Deps struct {
	Gate       port.PhotoQualityGate
	Analyzer   port.RiskAnalyzer
	Facilities port.FacilityDirectory
	History    port.AssessmentRepository
	Renderer   port.ReportRenderer
}

// NewScreeningService создаёт сервис проверки.
func NewScreeningService(users *UserService, deps Deps) *ScreeningService {
	return &ScreeningService{
		users:      users,
		gate:       deps.Gate,
		analyzer:   deps.Analyzer,
		facilities: deps.Facilities,
		history:    deps.History,
		renderer:   deps.Renderer,
	}
}

// Begin начинает новую проверку
func (s *ScreeningService) Begin(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.users.BeginCheck(ctx, userID, chatID)
}

// Cancel прерывает проверку
func (s *ScreeningService) Cancel(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	return s.users.Cancel(ctx, userID, chatID)
}

// SubmitPhoto проверяет качество фото, отправляет его на анализ и
// переводит пользователя на следующий шаг по уровню риска.
func (s *ScreeningService) SubmitPhoto(ctx context.Context, userID, chatID int64, img entity.AnalyzedImage) (*entity.User, error) {
	if s.analyzer == nil {
		return nil, ErrAnalyzerNotConfigured
	}
	if err := s.checkQuality(ctx, img.Data); err != nil {
		return nil, err
	}

	user, err := s.users.SetState(ctx, userID, chatID, entity.StateProcessing)
	if err != nil {
		return nil, err
	}

	assessment, err := s.analyzer.Analyze(ctx, img)
	if err != nil {
		user.SetState(entity.StateAwaitingPhoto)
		_ = s.users.Save(ctx, user)
		return nil, fmt.Errorf("analyze photo: %w", err)
	}

	user.Session.AddImage(img)
	user.Session.SetAssessment(assessment)
	s.remember(ctx, userID, assessment)

	switch {
	case assessment.NeedsDetails():
		user.Session.Step = entity.StepAdditionalInfo
		user.SetState(entity.StateAwaitingDetails)
	case assessment.NeedsInspection():
		user.Session.Step = entity.StepCenters
		user.SetState(entity.StateAwaitingLocation)
	default:
		user.SetState(entity.StateMainMenu)
	}

	log.WithFields(log.Fields{
		"user_id":    userID,
		"analysis":   assessment.ID,
		"status":     assessment.Status,
		"confidence": assessment.Confidence,
	}).Info("photo analyzed")

	return user, s.users.Save(ctx, user)
}

// SubmitDetails сохраняет место и размеры образца. Фото добавляются отдельно.
func (s *ScreeningService) SubmitDetails(ctx context.Context, userID, chatID int64, info entity.AdditionalInfo) (*entity.User, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	if user.Session.Assessment == nil {
		return nil, ErrNoAssessment
	}

	if err := info.Validate(); err != nil {
		var verrs entity.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, err
		}
		delete(verrs, "images")
		if len(verrs) > 0 {
			return nil, verrs
		}
	}

	info.Images = nil
	user.Session.Details = &info
	user.SetState(entity.StateAwaitingDetailPhoto)
	return user, s.users.Save(ctx, user)
}

// AddDetailPhoto добавляет уточняющее фото и возвращает их количество.
func (s *ScreeningService) AddDetailPhoto(ctx context.Context, userID, chatID int64, img entity.AnalyzedImage) (int, error) {
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return 0, err
	}
	details := user.Session.Details
	if details == nil {
		return 0, ErrNoDetails
	}
	if len(details.Images) >= entity.MaxDetailImages {
		return len(details.Images), ErrTooManyPhotos
	}
	if err := s.checkQuality(ctx, img.Data); err != nil {
		return len(details.Images), err
	}

	details.Images = append(details.Images, img)
	return len(details.Images), s.users.Save(ctx, user)
}

// Refine отправляет уточняющие данные на повторный анализ.
// Опасный результат ведёт к поиску центров, остальные завершают проверку.
func (s *ScreeningService) Refine(ctx context.Context, userID, chatID int64) (*entity.User, error) {
	if s.analyzer == nil {
		return nil, ErrAnalyzerNotConfigured
	}
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	session := user.Session
	if session.Assessment == nil {
		return nil, ErrNoAssessment
	}
	if session.Details == nil {
		return nil, ErrNoDetails
	}
	if err := session.Details.Validate(); err != nil {
		return nil, err
	}

	refined, err := s.analyzer.Refine(ctx, session.Assessment.ID, session.Details)
	if err != nil {
		return nil, fmt.Errorf("refine analysis: %w", err)
	}
	if refined.ID == "" {
		refined.ID = session.Assessment.ID
	}

	session.SetAssessment(refined)
	s.remember(ctx, userID, refined)

	if refined.NeedsInspection() {
		session.Step = entity.StepCenters
		user.SetState(entity.StateAwaitingLocation)
	} else {
		user.SetState(entity.StateMainMenu)
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"analysis": refined.ID,
		"status":   refined.Status,
	}).Info("analysis refined")

	return user, s.users.Save(ctx, user)
}

// FindFacilities ищет центры проверки рядом с точкой и запоминает их для отчёта.
func (s *ScreeningService) FindFacilities(ctx context.Context, userID, chatID int64, origin *entity.Coordinates, limit int) ([]entity.InspectionFacility, error) {
	if s.facilities == nil {
		return nil, errors.New("facility directory is not configured")
	}
	list, err := s.facilities.Nearby(ctx, origin, limit)
	if err != nil {
		return nil, fmt.Errorf("find facilities: %w", err)
	}

	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	user.Session.Facilities = list
	user.Session.Step = entity.StepCenters
	user.SetState(entity.StateMainMenu)
	return list, s.users.Save(ctx, user)
}

// BuildReport собирает PDF по текущей сессии
func (s *ScreeningService) BuildReport(ctx context.Context, userID, chatID int64) (*entity.Report, error) {
	if s.renderer == nil {
		return nil, errors.New("report renderer is not configured")
	}
	user, err := s.users.Get(ctx, userID, chatID)
	if err != nil {
		return nil, err
	}
	session := user.Session
	if session.Assessment == nil {
		return nil, ErrNoAssessment
	}

	return s.renderer.Render(session.Assessment, session.ReportImages(), session.Facilities)
}

// History возвращает последние результаты пользователя
func (s *ScreeningService) History(ctx context.Context, userID int64, limit int) ([]entity.RiskAssessment, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.ListByUser(ctx, userID, limit)
}

// Assessment возвращает сохранённый результат по ID
func (s *ScreeningService) Assessment(ctx context.Context, id string) (*entity.RiskAssessment, error) {
	if s.history == nil {
		return nil, errors.New("assessment history is not configured")
	}
	return s.history.Get(ctx, id)
}

// DeleteAssessment удаляет сохранённый результат
func (s *ScreeningService) DeleteAssessment(ctx context.Context, id string) error {
	if s.history == nil {
		return errors.New("assessment history is not configured")
	}
	return s.history.Delete(ctx, id)
}

func (s *ScreeningService) checkQuality(ctx context.Context, data []byte) error {
	if s.gate == nil {
		return nil
	}
	return s.gate.Check(ctx, data)
}

// История не критична для сценария: ошибку только логируем.
func (s *ScreeningService) remember(ctx context.Context, userID int64, a *entity.RiskAssessment) {
	if s.history == nil {
		return
	}
	if err := s.history.Save(ctx, userID, a); err != nil {
		log.WithError(err).WithField("analysis", a.ID).Warn("failed to save assessment")
	}
}
