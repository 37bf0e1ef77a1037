package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/apex/log"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrUndecodable фото не удалось раскодировать
var ErrUndecodable = errors.New("image cannot be decoded")

// Options параметры подготовки фото к встраиванию в отчёт
type Options struct {
	AspectW int // пропорции кадра, 4:3 по умолчанию
	AspectH int
	MaxSide int // максимальная длинная сторона в пикселях
	Quality int // качество JPEG
}

// DefaultOptions возвращает параметры для сетки отчёта.
func DefaultOptions() Options {
	return Options{AspectW: 4, AspectH: 3, MaxSide: 1024, Quality: 85}
}

// Decode раскодирует фото любого поддерживаемого формата.
func Decode(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return img, format, nil
}

// Prepare разворачивает фото по EXIF, обрезает по центру до нужных пропорций,
// уменьшает и кодирует в JPEG.
func Prepare(data []byte, opts Options) ([]byte, error) {
	img, format, err := Decode(data)
	if err != nil {
		return nil, err
	}

	if orientation := Orientation(data); orientation != 1 {
		img = Orient(img, orientation)
	}

	if opts.AspectW > 0 && opts.AspectH > 0 {
		img = CropToAspect(img, opts.AspectW, opts.AspectH)
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrUndecodable)
	}

	if opts.MaxSide > 0 && (w > opts.MaxSide || h > opts.MaxSide) {
		scale := float64(opts.MaxSide) / float64(max(w, h))
		newW := max(1, int(float64(w)*scale))
		newH := max(1, int(float64(h)*scale))
		dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
		img = dst
	}

	quality := opts.Quality
	if quality <= 0 {
		quality = jpeg.DefaultQuality
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}

	log.WithFields(log.Fields{
		"format": format,
		"bytes":  len(data),
		"result": buf.Len(),
		"width":  img.Bounds().Dx(),
		"height": img.Bounds().Dy(),
	}).Debug("image prepared")

	return buf.Bytes(), nil
}

// CropToAspect вырезает центральную область с пропорциями aw:ah.
func CropToAspect(img image.Image, aw, ah int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return img
	}

	cropW, cropH := w, h
	if w*ah > h*aw {
		cropW = h * aw / ah
	} else {
		cropH = w * ah / aw
	}
	if cropW == w && cropH == h {
		return img
	}

	x0 := b.Min.X + (w-cropW)/2
	y0 := b.Min.Y + (h-cropH)/2
	rect := image.Rect(x0, y0, x0+cropW, y0+cropH)

	if sub, ok := img.(interface {
		SubImage(r image.Rectangle) image.Image
	}); ok {
		return sub.SubImage(rect)
	}

	dst := image.NewRGBA(image.Rect(0, 0, cropW, cropH))
	draw.Draw(dst, dst.Bounds(), img, rect.Min, draw.Src)
	return dst
}
