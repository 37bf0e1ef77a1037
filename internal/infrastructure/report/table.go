package report

import "asbestos-screen/internal/theme"

// column колонка таблицы
type column struct {
	title string
	width float64
}

// table простая таблица с заливкой заголовка, чередованием строк
// и переносом по строкам между страницами.
type table struct {
	columns  []column
	head     TextStyle
	body     TextStyle
	headFill theme.Color
	stripe   theme.Color
	padding  float64
	lineH    float64
}

// tableResult итог вывода таблицы
type tableResult struct {
	rows    int // выведено строк данных
	headers int // выведено заголовков, по одному на страницу
}

func (t *table) width() float64 {
	w := 0.0
	for _, c := range t.columns {
		w += c.width
	}
	return w
}

func (t *table) headerHeight() float64 {
	return t.lineH + 2*t.padding
}

// layoutRow разбивает ячейки на строки и возвращает высоту строки таблицы.
func (t *table) layoutRow(s surface, row []string) ([][]string, float64) {
	cells := make([][]string, len(t.columns))
	maxLines := 1
	for i, c := range t.columns {
		txt := ""
		if i < len(row) {
			txt = row[i]
		}
		cells[i] = wrapText(s, txt, c.width-2*t.padding, t.body)
		maxLines = max(maxLines, len(cells[i]))
	}
	return cells, float64(maxLines)*t.lineH + 2*t.padding
}

// draw выводит таблицу начиная с текущей позиции курсора. Заголовок
// повторяется на каждой странице продолжения, строка никогда не делится.
func (t *table) draw(c *cursor, rows [][]string) tableResult {
	var res tableResult
	if len(rows) == 0 {
		return res
	}

	_, firstH := t.layoutRow(c.s, rows[0])
	c.ensure(t.headerHeight() + firstH)
	t.drawHeader(c)
	res.headers++

	for i, row := range rows {
		cells, h := t.layoutRow(c.s, row)
		if !c.fits(h) {
			c.newPage()
			t.drawHeader(c)
			res.headers++
		}

		if i%2 == 1 {
			c.s.Rect(marginX, c.y, t.width(), h, t.stripe, 0)
		}

		x := marginX
		for j, col := range t.columns {
			for k, line := range cells[j] {
				c.s.Text(x+t.padding, c.y+t.padding+t.lineH*float64(k+1)-1, line, t.body)
			}
			x += col.width
		}
		c.advance(h)
		res.rows++
	}
	return res
}

func (t *table) drawHeader(c *cursor) {
	h := t.headerHeight()
	c.s.Rect(marginX, c.y, t.width(), h, t.headFill, 0)

	x := marginX
	for _, col := range t.columns {
		c.s.Text(x+t.padding, c.y+t.padding+t.lineH-1, col.title, t.head)
		x += col.width
	}
	c.advance(h)
}
