package report

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"asbestos-screen/internal/domain/entity"
)

func jpegPhoto(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	return buf.Bytes()
}

func pdfRenderer() *Renderer {
	return NewRenderer(Options{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	})
}

func TestRender_WritesPDF(t *testing.T) {
	a := assessment(entity.StatusDanger)
	a.DetectedFeatures = []string{"Fibrous texture", "Corrugated cement sheet"}
	a.Recommendations = []string{"Do not cut or drill the material", "Book a certified laboratory test"}

	photos := []entity.AnalyzedImage{
		{Name: "roof.jpg", Data: jpegPhoto(t, 320, 200)},
		{Name: "edge.jpg", Data: jpegPhoto(t, 200, 320)},
		{Name: "wall.jpg", Data: jpegPhoto(t, 160, 120)},
	}

	out, err := pdfRenderer().Render(a, photos, facilities(25))
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out.Content, []byte("%PDF-")))
	require.GreaterOrEqual(t, out.PageCount, 2)
	require.Equal(t, "asbestos-report-1792315800000.pdf", out.FileName)
	require.Equal(t, fixedNow, out.CreatedAt)
	require.Empty(t, out.SkippedImages)
}

func TestRender_SkipsCorruptImage(t *testing.T) {
	photos := []entity.AnalyzedImage{
		{Name: "a.jpg", Data: jpegPhoto(t, 64, 48)},
		{Name: "b.jpg", Data: jpegPhoto(t, 64, 48)},
		{Name: "broken.jpg", Data: []byte("\xff\xd8\xff garbage")},
		{Name: "d.jpg", Data: jpegPhoto(t, 64, 48)},
		{Name: "e.jpg", Data: jpegPhoto(t, 64, 48)},
	}

	out, err := pdfRenderer().Render(assessment(entity.StatusUncertain), photos, nil)
	require.NoError(t, err)
	require.Equal(t, []int{2}, out.SkippedImages)
	require.True(t, bytes.HasPrefix(out.Content, []byte("%PDF-")))
}

func TestRender_SameInputSameBytes(t *testing.T) {
	a := assessment(entity.StatusSafe)
	a.DetectedFeatures = []string{"Painted gypsum board"}
	photos := []entity.AnalyzedImage{{Name: "a.jpg", Data: jpegPhoto(t, 80, 60)}}

	first, err := pdfRenderer().Render(a, photos, facilities(3))
	require.NoError(t, err)
	second, err := pdfRenderer().Render(a, photos, facilities(3))
	require.NoError(t, err)

	require.Equal(t, first.PageCount, second.PageCount)
	require.True(t, bytes.Equal(first.Content, second.Content))
}
