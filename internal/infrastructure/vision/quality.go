//go:build gocv
// +build gocv

package vision

import (
	"context"
	"fmt"

	"gocv.io/x/gocv"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/domain/port"
)

// QualityGate проверяет резкость, экспозицию и блики через OpenCV.
type QualityGate struct {
	MinImageSide          int
	MinSharpnessEdgeRatio float64
	MaxOverexposedRatio   float64
	MaxUnderexposedRatio  float64
	MaxGlareRatio         float64
}

// NewQualityGate создаёт проверку с порогами по умолчанию.
func NewQualityGate() *QualityGate {
	return &QualityGate{
		MinImageSide:          400,
		MinSharpnessEdgeRatio: 0.008,
		MaxOverexposedRatio:   0.35,
		MaxUnderexposedRatio:  0.45,
		MaxGlareRatio:         0.08,
	}
}

// Check раскодирует фото и прогоняет все проверки качества.
func (g *QualityGate) Check(ctx context.Context, imageData []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil || mat.Empty() {
		if err == nil {
			mat.Close()
		}
		return fmt.Errorf("%w: cannot decode image", entity.ErrPoorPhoto)
	}
	defer mat.Close()

	if mat.Cols() < g.MinImageSide || mat.Rows() < g.MinImageSide {
		return fmt.Errorf("%w: image is too small (%dx%d)", entity.ErrPoorPhoto, mat.Cols(), mat.Rows())
	}

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	edges := gocv.NewMat()
	defer edges.Close()
	gocv.Canny(gray, &edges, 80, 160)
	if r := ratioOfMask(edges); r < g.MinSharpnessEdgeRatio {
		return fmt.Errorf("%w: image is blurry (edge_ratio=%.4f)", entity.ErrPoorPhoto, r)
	}

	bright := gocv.NewMat()
	defer bright.Close()
	gocv.Threshold(gray, &bright, 250, 255, gocv.ThresholdBinary)
	if r := ratioOfMask(bright); r > g.MaxOverexposedRatio {
		return fmt.Errorf("%w: overexposed image (ratio=%.4f)", entity.ErrPoorPhoto, r)
	}

	dark := gocv.NewMat()
	defer dark.Close()
	gocv.Threshold(gray, &dark, 20, 255, gocv.ThresholdBinaryInv)
	if r := ratioOfMask(dark); r > g.MaxUnderexposedRatio {
		return fmt.Errorf("%w: underexposed image (ratio=%.4f)", entity.ErrPoorPhoto, r)
	}

	// Блик: низкая насыщенность при высокой яркости.
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)
	channels := gocv.Split(hsv)
	for i := range channels {
		defer channels[i].Close()
	}
	if len(channels) < 3 {
		return fmt.Errorf("%w: invalid hsv channels", entity.ErrPoorPhoto)
	}

	lowSat := gocv.NewMat()
	defer lowSat.Close()
	gocv.Threshold(channels[1], &lowSat, 40, 255, gocv.ThresholdBinaryInv)

	highVal := gocv.NewMat()
	defer highVal.Close()
	gocv.Threshold(channels[2], &highVal, 245, 255, gocv.ThresholdBinary)

	glare := gocv.NewMat()
	defer glare.Close()
	gocv.BitwiseAnd(lowSat, highVal, &glare)
	if r := ratioOfMask(glare); r > g.MaxGlareRatio {
		return fmt.Errorf("%w: too much glare (ratio=%.4f)", entity.ErrPoorPhoto, r)
	}

	return nil
}

func ratioOfMask(mask gocv.Mat) float64 {
	total := mask.Cols() * mask.Rows()
	if total <= 0 {
		return 0
	}
	return float64(gocv.CountNonZero(mask)) / float64(total)
}

// Проверка реализации интерфейса
var _ port.PhotoQualityGate = (*QualityGate)(nil)
