package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"asbestos-screen/internal/theme"
)

const (
	coreFamily = "Helvetica"
	utf8Family = "report"
)

// pdfSurface поверхность поверх fpdf
type pdfSurface struct {
	pdf    *fpdf.Fpdf
	family string
	tr     func(string) string
}

func newPDFSurface(fontPath, title string, created time.Time) (*pdfSurface, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, marginTop, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetTitle(title, true)
	pdf.SetCreator("asbestos-screen", true)

	s := &pdfSurface{pdf: pdf, family: coreFamily}
	if fontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", fontPath)
		pdf.AddUTF8Font(utf8Family, "B", fontPath)
		s.family = utf8Family
		s.tr = func(txt string) string { return txt }
	} else {
		// Встроенные шрифты работают в cp1252.
		s.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	if pdf.Err() {
		return nil, fmt.Errorf("create document: %w", pdf.Error())
	}

	pdf.AddPage()
	return s, nil
}

func (s *pdfSurface) AddPage() { s.pdf.AddPage() }

func (s *pdfSurface) SetPage(n int) {
	s.pdf.SetPage(n)
	// У каждой страницы свой поток команд: сбрасываем шрифт и заливку,
	// чтобы следующий вывод явно задал своё состояние.
	s.pdf.SetFont(s.family, "", 1)
	s.pdf.SetFillColor(255, 255, 255)
}

func (s *pdfSurface) PageNo() int    { return s.pdf.PageNo() }
func (s *pdfSurface) PageCount() int { return s.pdf.PageCount() }

func (s *pdfSurface) Rect(x, y, w, h float64, fill theme.Color, radius float64) {
	s.pdf.SetFillColor(fill.R, fill.G, fill.B)
	if radius > 0 {
		s.pdf.RoundedRect(x, y, w, h, radius, "1234", "F")
		return
	}
	s.pdf.Rect(x, y, w, h, "F")
}

func (s *pdfSurface) Text(x, y float64, txt string, st TextStyle) {
	s.setFont(st)
	s.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	txt = s.tr(txt)
	if st.Align == AlignCenter {
		x -= s.pdf.GetStringWidth(txt) / 2
	}
	s.pdf.Text(x, y, txt)
}

// Check рисует галочку из ZapfDingbats.
func (s *pdfSurface) Check(x, y float64, st TextStyle) {
	s.pdf.SetFont("ZapfDingbats", "", st.Size)
	s.pdf.SetTextColor(st.Color.R, st.Color.G, st.Color.B)
	s.pdf.Text(x, y, "4")
}

func (s *pdfSurface) StringWidth(txt string, st TextStyle) float64 {
	s.setFont(st)
	return s.pdf.GetStringWidth(s.tr(txt))
}

func (s *pdfSurface) RegisterImage(name string, data []byte) error {
	opts := fpdf.ImageOptions{ImageType: "JPG"}
	info := s.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if s.pdf.Err() {
		// Ошибка fpdf «липкая», без сброса весь документ будет испорчен.
		err := s.pdf.Error()
		s.pdf.ClearError()
		return fmt.Errorf("register image %s: %w", name, err)
	}
	if info == nil {
		return fmt.Errorf("register image %s: no image info", name)
	}
	return nil
}

func (s *pdfSurface) Image(name string, x, y, w, h float64) {
	s.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{ImageType: "JPG"}, 0, "")
}

func (s *pdfSurface) Output(w io.Writer) error {
	if err := s.pdf.Output(w); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}

func (s *pdfSurface) setFont(st TextStyle) {
	style := ""
	if st.Bold {
		style = "B"
	}
	s.pdf.SetFont(s.family, style, st.Size)
}

var _ surface = (*pdfSurface)(nil)
