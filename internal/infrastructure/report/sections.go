package report

import (
	"fmt"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/theme"
)

// Размеры блоков.
const (
	blockGap       = 2.0
	sectionGap     = 5.0
	statusBoxH     = 30.0
	featureLineH   = 5.0
	featureMinH    = 8.0
	recLineH       = 6.0
	imageCellW     = (pageWidth - 3*marginX) / 2
	imageCellH     = imageCellW * 3 / 4
	imageCaptionH  = 8.0
	imageRowH      = imageCellH + 15
	disclaimerH    = 37.0
	disclaimerLine = 3.5
)

// writer выводит разделы отчёта и нумерует их по порядку появления.
type writer struct {
	th      theme.Theme
	c       *cursor
	section int
}

func (w *writer) style(size float64, bold bool, color theme.Color) TextStyle {
	return TextStyle{Size: size, Bold: bold, Color: color}
}

func (w *writer) centered(size float64, bold bool, color theme.Color) TextStyle {
	return TextStyle{Size: size, Bold: bold, Color: color, Align: AlignCenter}
}

// heading выводит заголовок раздела вместе с местом под первый блок.
func (w *writer) heading(title string, size, advance, next float64) {
	w.c.ensure(advance + next)
	w.section++
	w.c.s.Text(marginX, w.c.y, fmt.Sprintf("%d. %s", w.section, title), w.style(size, true, w.th.Text))
	w.c.advance(advance)
}

// header цветная шапка на первой странице
func (w *writer) header(generated string) {
	s := w.c.s
	str := w.th.Strings
	s.Rect(0, 0, pageWidth, headerHeight, w.th.Accent, 0)
	s.Text(pageWidth/2, 20, str.Title, w.centered(24, true, w.th.OnAccent))
	s.Text(pageWidth/2, 32, str.GeneratedPrefix+generated, w.centered(10, false, w.th.OnAccent))
	w.c.y = contentStart
}

// result блок с уровнем риска и уверенностью
func (w *writer) result(a *entity.RiskAssessment) {
	tier, _ := w.th.Tier(a.Status)
	str := w.th.Strings

	w.heading(str.ResultHeading, 16, 10, statusBoxH)

	s := w.c.s
	y := w.c.y
	s.Rect(marginX, y, contentWidth, statusBoxH, tier.Color, 3)
	s.Text(pageWidth/2, y+15, tier.Label, w.centered(14, true, w.th.OnAccent))
	s.Text(pageWidth/2, y+23, fmt.Sprintf(str.ConfidenceFormat, FormatConfidence(a.Confidence)), w.centered(12, true, w.th.OnAccent))
	w.c.advance(statusBoxH + 10)

	body := w.style(11, false, w.th.Text)
	lines := append([]string(nil), str.ResultNote...)
	if a.Message != "" {
		lines = append(lines, wrapText(s, str.SummaryPrefix+a.Message, contentWidth, body)...)
	}
	for _, line := range lines {
		w.c.ensure(recLineH)
		s.Text(marginX, w.c.y, line, body)
		w.c.advance(recLineH)
	}
	w.c.advance(recLineH)
}

// features строки найденных признаков с галочкой
func (w *writer) features(features []string) {
	body := w.style(10, false, w.th.Text)
	textW := contentWidth - 14

	heights := make([]float64, len(features))
	wrapped := make([][]string, len(features))
	for i, f := range features {
		wrapped[i] = wrapText(w.c.s, f, textW, body)
		heights[i] = max(featureMinH, float64(len(wrapped[i]))*featureLineH+3)
	}

	w.heading(w.th.Strings.FeaturesHeading, 14, 8, heights[0])

	s := w.c.s
	for i, lines := range wrapped {
		h := heights[i]
		w.c.ensure(h)
		y := w.c.y
		s.Rect(marginX, y, contentWidth, h, w.th.FeatureFill, 1)
		s.Check(marginX+3, y+5.5, w.style(10, false, w.th.Accent))
		for k, line := range lines {
			s.Text(marginX+10, y+5.5+float64(k)*featureLineH, line, body)
		}
		w.c.advance(h + blockGap)
	}
	w.c.advance(sectionGap)
}

// recommendations нумерованный список рекомендаций
func (w *writer) recommendations(recs []string) {
	body := w.style(10, false, w.th.Text)
	s := w.c.s

	type entry struct {
		prefix string
		lines  []string
	}
	entries := make([]entry, len(recs))
	for i, rec := range recs {
		prefix := fmt.Sprintf("%d. ", i+1)
		indent := s.StringWidth(prefix, body)
		entries[i] = entry{prefix: prefix, lines: wrapText(s, rec, contentWidth-5-indent, body)}
	}

	w.heading(w.th.Strings.RecsHeading, 14, 8, float64(len(entries[0].lines))*recLineH)

	for _, e := range entries {
		h := float64(len(e.lines)) * recLineH
		w.c.ensure(h)
		indent := s.StringWidth(e.prefix, body)
		for k, line := range e.lines {
			if k == 0 {
				s.Text(marginX+5, w.c.y+4.5, e.prefix+line, body)
				continue
			}
			s.Text(marginX+5+indent, w.c.y+4.5+float64(k)*recLineH, line, body)
		}
		w.c.advance(h + 1)
	}
	w.c.advance(sectionGap)
}

// images сетка по два фото в ряд с подписями
func (w *writer) images(cells []imageCell) {
	w.heading(w.th.Strings.ImagesHeading, 14, 10, imageCellH+imageCaptionH)

	s := w.c.s
	caption := w.centered(9, false, w.th.Muted)
	for row := 0; row < len(cells); row += 2 {
		w.c.ensure(imageCellH + imageCaptionH)
		x := marginX
		for _, cell := range cells[row:min(row+2, len(cells))] {
			s.Image(cell.name, x, w.c.y, imageCellW, imageCellH)
			s.Text(x+imageCellW/2, w.c.y+imageCellH+5, fmt.Sprintf(w.th.Strings.ImageCaption, cell.position), caption)
			x += imageCellW + marginX
		}
		w.c.advance(imageRowH)
	}
}

// facilities таблица центров проверки в исходном порядке
func (w *writer) facilities(list []entity.InspectionFacility) {
	str := w.th.Strings
	t := &table{
		columns: []column{
			{title: str.TableHeaders[0], width: 40},
			{title: str.TableHeaders[1], width: 60},
			{title: str.TableHeaders[2], width: 20},
			{title: str.TableHeaders[3], width: 30},
			{title: str.TableHeaders[4], width: 20},
		},
		head:     w.style(9, true, w.th.OnAccent),
		body:     w.style(8, false, w.th.Text),
		headFill: w.th.Accent,
		stripe:   w.th.StripeFill,
		padding:  1.5,
		lineH:    4,
	}

	rows := make([][]string, len(list))
	for i, f := range list {
		phone := f.Phone
		if phone == "" {
			phone = str.MissingPhone
		}
		certified := str.No
		if f.Certified {
			certified = str.Yes
		}
		rows[i] = []string{f.Name, f.Address, FormatDistance(f.DistanceKm), phone, certified}
	}

	_, firstH := t.layoutRow(w.c.s, rows[0])
	w.heading(str.FacilityHeading, 14, 10, t.headerHeight()+firstH)
	t.draw(w.c, rows)
	w.c.advance(10)
}

// disclaimer предупреждение внизу последней страницы
func (w *writer) disclaimer() {
	top := contentBottom - disclaimerH
	if w.c.y > top {
		w.c.newPage()
	}

	s := w.c.s
	str := w.th.Strings
	s.Rect(marginX, top, contentWidth, disclaimerH, w.th.DisclaimerFill, 0)
	s.Text(marginX+5, top+5, str.DisclaimerTitle, w.style(8, true, w.th.DisclaimerText))

	body := w.style(7, false, theme.Color{R: 60, G: 60, B: 60})
	y := top + 10
	for _, line := range str.Disclaimer {
		if line != "" {
			s.Text(marginX+5, y, line, body)
		}
		y += disclaimerLine
	}
	w.c.y = contentBottom
}

// footers номер страницы и подпись на каждой странице
func (w *writer) footers() {
	s := w.c.s
	total := s.PageCount()
	muted := theme.Color{R: 128, G: 128, B: 128}
	for i := 1; i <= total; i++ {
		s.SetPage(i)
		s.Text(pageWidth/2, footerY, fmt.Sprintf(w.th.Strings.PageFormat, i, total), w.centered(8, false, muted))
		s.Text(marginX, footerY, w.th.Strings.Attribution, w.style(8, false, muted))
	}
}
