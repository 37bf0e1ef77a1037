package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// FormatConfidence выводит уверенность как есть, без округления.
func FormatConfidence(confidence int) string {
	return strconv.Itoa(confidence) + "%"
}

// FormatDistance выводит расстояние с одним знаком после запятой.
// Округление идёт по десятичной записи числа: 0.95 -> "1.0 km".
// Отрицательное или нечисловое расстояние выводится как "-".
func FormatDistance(km float64) string {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return "-"
	}
	return decimal.NewFromFloat(km).StringFixed(1) + " km"
}

// FormatTimestamp длинный формат даты для шапки отчёта.
func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format("January 2, 2006 at 03:04 PM")
}

// FileName имя файла отчёта с отметкой времени в миллисекундах.
func FileName(format string, t time.Time) string {
	return fmt.Sprintf(format, t.UnixMilli())
}
