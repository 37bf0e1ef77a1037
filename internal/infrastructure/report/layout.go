package report

import (
	"strings"
	"unicode/utf8"
)

// Геометрия страницы A4 в миллиметрах.
const (
	pageWidth     = 210.0
	pageHeight    = 297.0
	marginX       = 20.0
	marginTop     = 20.0
	contentWidth  = pageWidth - 2*marginX
	headerHeight  = 40.0
	contentStart  = 55.0
	contentBottom = 277.0 // ниже только подвал
	footerY       = 287.0
)

// cursor вертикальная позиция вывода в пределах одного прохода рендеринга
type cursor struct {
	s surface
	y float64
}

func newCursor(s surface, y float64) *cursor {
	return &cursor{s: s, y: y}
}

func (c *cursor) fits(h float64) bool {
	return c.y+h <= contentBottom
}

// ensure переносит вывод на новую страницу, если блок высотой h не помещается.
// Блок, который не влезает даже на пустую страницу, рисуется как есть.
func (c *cursor) ensure(h float64) bool {
	if c.fits(h) || c.y <= marginTop {
		return false
	}
	c.newPage()
	return true
}

func (c *cursor) newPage() {
	c.s.AddPage()
	c.y = marginTop
}

func (c *cursor) advance(h float64) {
	c.y += h
}

// wrapText разбивает текст на строки не шире width.
func wrapText(s surface, txt string, width float64, st TextStyle) []string {
	words := strings.Fields(txt)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := ""
	for _, word := range words {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if s.StringWidth(candidate, st) <= width {
			line = candidate
			continue
		}
		if line != "" {
			lines = append(lines, line)
		}
		// Слово длиннее строки режем по символам.
		for s.StringWidth(word, st) > width && utf8.RuneCountInString(word) > 1 {
			head, tail := splitToWidth(s, word, width, st)
			lines = append(lines, head)
			word = tail
		}
		line = word
	}
	return append(lines, line)
}

func splitToWidth(s surface, word string, width float64, st TextStyle) (string, string) {
	runes := []rune(word)
	n := 1
	for n < len(runes) && s.StringWidth(string(runes[:n+1]), st) <= width {
		n++
	}
	return string(runes[:n]), string(runes[n:])
}
