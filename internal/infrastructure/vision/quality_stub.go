//go:build !gocv
// +build !gocv

package vision

import (
	"bytes"
	"context"
	"fmt"
	"image"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/domain/port"
	"asbestos-screen/internal/infrastructure/imaging"
)

// QualityGate без OpenCV проверяет только формат и размер фото.
type QualityGate struct {
	MinImageSide int
}

// NewQualityGate создаёт упрощённую проверку (сборка без тега gocv).
func NewQualityGate() *QualityGate {
	return &QualityGate{MinImageSide: 400}
}

// Check раскодирует заголовок фото и проверяет минимальный размер.
func (g *QualityGate) Check(ctx context.Context, imageData []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrPoorPhoto, imaging.ErrUndecodable)
	}
	if cfg.Width < g.MinImageSide || cfg.Height < g.MinImageSide {
		return fmt.Errorf("%w: image is too small (%dx%d)", entity.ErrPoorPhoto, cfg.Width, cfg.Height)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.PhotoQualityGate = (*QualityGate)(nil)
