package report

import (
	"errors"
	"io"
	"strings"
	"unicode/utf8"

	"asbestos-screen/internal/theme"
)

// op одна команда рисования, записанная поверхностью
type op struct {
	Kind  string
	Page  int
	X, Y  float64
	W, H  float64
	Text  string
	Style TextStyle
	Fill  theme.Color
}

// recorder поверхность для тестов: запоминает команды вместо PDF
type recorder struct {
	pages   int
	current int
	ops     []op
	broken  map[string]bool
}

func newRecorder() *recorder {
	return &recorder{pages: 1, current: 1, broken: map[string]bool{}}
}

func (r *recorder) AddPage() {
	r.pages++
	r.current = r.pages
}

func (r *recorder) SetPage(n int)  { r.current = n }
func (r *recorder) PageNo() int    { return r.current }
func (r *recorder) PageCount() int { return r.pages }

func (r *recorder) Rect(x, y, w, h float64, fill theme.Color, radius float64) {
	r.ops = append(r.ops, op{Kind: "rect", Page: r.current, X: x, Y: y, W: w, H: h, Fill: fill})
}

func (r *recorder) Text(x, y float64, txt string, st TextStyle) {
	r.ops = append(r.ops, op{Kind: "text", Page: r.current, X: x, Y: y, Text: txt, Style: st})
}

func (r *recorder) Check(x, y float64, st TextStyle) {
	r.ops = append(r.ops, op{Kind: "check", Page: r.current, X: x, Y: y, Style: st})
}

func (r *recorder) StringWidth(txt string, st TextStyle) float64 {
	return float64(utf8.RuneCountInString(txt)) * st.Size * 0.2
}

func (r *recorder) RegisterImage(name string, data []byte) error {
	if r.broken[name] {
		return errors.New("unsupported jpeg")
	}
	return nil
}

func (r *recorder) Image(name string, x, y, w, h float64) {
	r.ops = append(r.ops, op{Kind: "image", Page: r.current, X: x, Y: y, W: w, H: h, Text: name})
}

func (r *recorder) Output(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-recorded")
	return err
}

func (r *recorder) kind(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.Kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) texts() []string {
	var out []string
	for _, o := range r.kind("text") {
		out = append(out, o.Text)
	}
	return out
}

func (r *recorder) find(txt string) []op {
	var out []op
	for _, o := range r.kind("text") {
		if o.Text == txt {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) findPrefix(prefix string) []op {
	var out []op
	for _, o := range r.kind("text") {
		if strings.HasPrefix(o.Text, prefix) {
			out = append(out, o)
		}
	}
	return out
}

func (r *recorder) contains(sub string) bool {
	for _, t := range r.texts() {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

var _ surface = (*recorder)(nil)
