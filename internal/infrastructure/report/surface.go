package report

import (
	"io"

	"asbestos-screen/internal/theme"
)

// Align выравнивание текста относительно x
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// TextStyle параметры шрифта
type TextStyle struct {
	Size  float64
	Bold  bool
	Color theme.Color
	Align Align
}

// surface рисующая поверхность документа. Координаты в миллиметрах,
// y у текста: базовая линия.
type surface interface {
	AddPage()
	SetPage(n int)
	PageNo() int
	PageCount() int

	Rect(x, y, w, h float64, fill theme.Color, radius float64)
	Text(x, y float64, txt string, st TextStyle)
	Check(x, y float64, st TextStyle)
	StringWidth(txt string, st TextStyle) float64

	RegisterImage(name string, data []byte) error
	Image(name string, x, y, w, h float64)

	Output(w io.Writer) error
}
