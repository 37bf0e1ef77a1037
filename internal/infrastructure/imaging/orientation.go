package imaging

import (
	"bytes"
	"image"

	"github.com/rwcarlsen/goexif/exif"
)

// Orientation читает EXIF-ориентацию JPEG. Без EXIF возвращает 1.
func Orientation(data []byte) int {
	x, err := exif.Decode(bytes.NewReader(data))
	if err != nil {
		return 1
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}

	v, err := tag.Int(0)
	if err != nil || v < 1 || v > 8 {
		return 1
	}
	return v
}

// Orient поворачивает и отражает изображение согласно EXIF-ориентации.
func Orient(img image.Image, orientation int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	// Для 5-8 стороны меняются местами.
	dw, dh := w, h
	if orientation >= 5 && orientation <= 8 {
		dw, dh = h, w
	}

	var mapXY func(x, y int) (int, int)
	switch orientation {
	case 2: // отражение по горизонтали
		mapXY = func(x, y int) (int, int) { return w - 1 - x, y }
	case 3: // поворот на 180
		mapXY = func(x, y int) (int, int) { return w - 1 - x, h - 1 - y }
	case 4: // отражение по вертикали
		mapXY = func(x, y int) (int, int) { return x, h - 1 - y }
	case 5: // транспонирование
		mapXY = func(x, y int) (int, int) { return y, x }
	case 6: // поворот на 90 по часовой
		mapXY = func(x, y int) (int, int) { return h - 1 - y, x }
	case 7: // транспонирование по второй диагонали
		mapXY = func(x, y int) (int, int) { return h - 1 - y, w - 1 - x }
	case 8: // поворот на 90 против часовой
		mapXY = func(x, y int) (int, int) { return y, w - 1 - x }
	default:
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			nx, ny := mapXY(x, y)
			dst.Set(nx, ny, img.At(b.Min.X+x, b.Min.Y+y))
		}
	}
	return dst
}
