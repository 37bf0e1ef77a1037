package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/apex/log"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/domain/port"
	"asbestos-screen/internal/infrastructure/imaging"
	"asbestos-screen/internal/theme"
)

// Options настройки генератора отчёта
type Options struct {
	Theme    theme.Theme
	FontPath string         // TTF с поддержкой UTF-8, если пусто, встроенный Helvetica
	Location *time.Location // часовой пояс шапки, по умолчанию локальный
	Now      func() time.Time
	Prepare  func([]byte) ([]byte, error) // подготовка фото к встраиванию
}

// Renderer генератор PDF-отчёта по результату проверки.
// Не хранит состояния между вызовами и безопасен для параллельного использования.
type Renderer struct {
	opts Options
}

// NewRenderer создаёт генератор, подставляя значения по умолчанию.
func NewRenderer(opts Options) *Renderer {
	if opts.Theme.Tiers == nil {
		opts.Theme = theme.Default()
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Prepare == nil {
		prep := imaging.DefaultOptions()
		opts.Prepare = func(data []byte) ([]byte, error) {
			return imaging.Prepare(data, prep)
		}
	}
	return &Renderer{opts: opts}
}

// Render собирает отчёт. При неверном результате анализа ничего не создаётся.
func (r *Renderer) Render(assessment *entity.RiskAssessment, images []entity.AnalyzedImage, facilities []entity.InspectionFacility) (*entity.Report, error) {
	if err := assessment.Validate(); err != nil {
		return nil, err
	}
	if _, err := r.opts.Theme.Tier(assessment.Status); err != nil {
		return nil, err
	}

	now := r.opts.Now()
	s, err := newPDFSurface(r.opts.FontPath, r.opts.Theme.Strings.Title, now)
	if err != nil {
		return nil, err
	}

	res := r.compose(s, assessment, images, facilities, now)

	var buf bytes.Buffer
	if err := s.Output(&buf); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"assessment": assessment.ID,
		"pages":      res.pages,
		"images":     len(images) - len(res.skipped),
		"skipped":    len(res.skipped),
		"facilities": len(facilities),
		"bytes":      buf.Len(),
	}).Info("report rendered")

	return &entity.Report{
		FileName:      FileName(r.opts.Theme.Strings.FileNameFormat, now),
		Content:       buf.Bytes(),
		PageCount:     res.pages,
		CreatedAt:     now,
		SkippedImages: res.skipped,
	}, nil
}

// composition итог одного прохода раскладки
type composition struct {
	pages   int
	skipped []int
}

// compose раскладывает все разделы за один линейный проход.
func (r *Renderer) compose(s surface, a *entity.RiskAssessment, images []entity.AnalyzedImage, facilities []entity.InspectionFacility, now time.Time) composition {
	w := &writer{th: r.opts.Theme, c: newCursor(s, contentStart)}

	w.header(FormatTimestamp(now, r.opts.Location))
	w.result(a)
	if len(a.DetectedFeatures) > 0 {
		w.features(a.DetectedFeatures)
	}
	if len(a.Recommendations) > 0 {
		w.recommendations(a.Recommendations)
	}

	var skipped []int
	if len(images) > 0 {
		cells, failed := r.embedImages(s, images)
		skipped = failed
		if len(cells) > 0 {
			w.images(cells)
		}
	}

	if len(facilities) > 0 {
		w.facilities(facilities)
	}
	w.disclaimer()
	w.footers()

	return composition{pages: s.PageCount(), skipped: skipped}
}

// imageCell фото, готовое к размещению в сетке
type imageCell struct {
	name     string
	position int // номер во входной последовательности, с 1
}

// embedImages готовит и регистрирует фото. Испорченные фото пропускаются.
func (r *Renderer) embedImages(s surface, images []entity.AnalyzedImage) ([]imageCell, []int) {
	cells := make([]imageCell, 0, len(images))
	var skipped []int
	for i, img := range images {
		ctx := log.WithFields(log.Fields{"index": i, "name": img.Name})

		data, err := r.opts.Prepare(img.Data)
		if err != nil {
			ctx.WithError(err).Warn("skip image: cannot prepare")
			skipped = append(skipped, i)
			continue
		}

		name := fmt.Sprintf("image-%d", i)
		if err := s.RegisterImage(name, data); err != nil {
			ctx.WithError(err).Warn("skip image: cannot embed")
			skipped = append(skipped, i)
			continue
		}
		cells = append(cells, imageCell{name: name, position: i + 1})
	}
	return cells, skipped
}

// Проверка реализации интерфейса
var _ port.ReportRenderer = (*Renderer)(nil)
