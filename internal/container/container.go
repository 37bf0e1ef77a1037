package container

import (
	"context"
	"database/sql"

	"github.com/apex/log"

	"asbestos-screen/config"
	app "asbestos-screen/internal/application"
	"asbestos-screen/internal/domain/port"
	"asbestos-screen/internal/infrastructure/analysis"
	"asbestos-screen/internal/infrastructure/facility"
	"asbestos-screen/internal/infrastructure/report"
	"asbestos-screen/internal/infrastructure/storage"
	"asbestos-screen/internal/infrastructure/vision"
	"asbestos-screen/internal/theme"
)

type Container struct {
	Theme         theme.Theme
	FacilityLimit int

	UserService      *app.UserService
	ScreeningService *app.ScreeningService
	Renderer         port.ReportRenderer
	Facilities       port.FacilityDirectory

	closers []func() error
}

// Deps готовые реализации портов
type Deps struct {
	Users      port.UserRepository
	History    port.AssessmentRepository
	Gate       port.PhotoQualityGate
	Analyzer   port.RiskAnalyzer
	Facilities port.FacilityDirectory
	Renderer   port.ReportRenderer
}

func New(deps Deps) *Container {
	userService := app.NewUserService(deps.Users)
	screeningService := app.NewScreeningService(userService, app.Deps{
		Gate:       deps.Gate,
		Analyzer:   deps.Analyzer,
		Facilities: deps.Facilities,
		History:    deps.History,
		Renderer:   deps.Renderer,
	})

	return &Container{
		Theme:            theme.Default(),
		FacilityLimit:    5,
		UserService:      userService,
		ScreeningService: screeningService,
		Renderer:         deps.Renderer,
		Facilities:       deps.Facilities,
	}
}

// Build собирает зависимости по конфигурации
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	th := theme.Default()
	deps := Deps{
		Users:    storage.NewMemoryUserRepository(),
		History:  storage.NewMemoryAssessmentRepository(),
		Gate:     vision.NewQualityGate(),
		Renderer: report.NewRenderer(report.Options{Theme: th, FontPath: cfg.ReportFontPath}),
	}

	var client *analysis.Client
	if cfg.AnalysisURL != "" {
		client = analysis.NewClient(cfg.AnalysisURL, cfg.AnalysisToken, cfg.AnalysisTimeout)
		deps.Analyzer = client
	} else {
		log.Warn("ANALYSIS_API_URL is not set, photo analysis is disabled")
	}

	switch {
	case cfg.FacilitySource == config.FacilitySourceAPI && client != nil:
		deps.Facilities = client
	case cfg.FacilitiesFile != "":
		dir, err := facility.Load(cfg.FacilitiesFile)
		if err != nil {
			return nil, err
		}
		deps.Facilities = dir
	default:
		deps.Facilities = facility.Default()
	}

	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		var err error
		db, err = storage.OpenMySQL(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		history := storage.NewMySQLAssessmentRepository(db)
		if err := history.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		deps.History = history
	}

	c := New(deps)
	c.Theme = th
	c.FacilityLimit = cfg.FacilityLimit
	if db != nil {
		c.closers = append(c.closers, db.Close)
	}
	return c, nil
}

// Close освобождает внешние ресурсы
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			log.WithError(err).Warn("close resource")
		}
	}
}
