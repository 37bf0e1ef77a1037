package telegram

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/theme"
)

var krw = message.NewPrinter(language.Korean)

// FormatDistance расстояние для чата: метры до 1 км, дальше километры с одной цифрой
func FormatDistance(km float64) string {
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return "-"
	}
	if m := math.Round(km * 1000); m < 1000 {
		return fmt.Sprintf("%dm", int(m))
	}
	return decimal.NewFromFloat(km).StringFixed(1) + "km"
}

// FormatKRW сумма в вонах с разделителями разрядов
func FormatKRW(amount int64) string {
	return krw.Sprintf("₩%d", amount)
}

// FormatResult текст результата анализа
func FormatResult(th theme.Theme, a *entity.RiskAssessment) string {
	tier, err := th.Tier(a.Status)
	if err != nil {
		return a.Message
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", tier.Icon, tier.Label)
	fmt.Fprintf(&sb, "Confidence: %d%%\n", a.Confidence)
	if a.Message != "" {
		sb.WriteString("\n" + a.Message + "\n")
	}
	if len(a.DetectedFeatures) > 0 {
		sb.WriteString("\nDetected features:\n")
		for _, f := range a.DetectedFeatures {
			sb.WriteString("• " + f + "\n")
		}
	}
	if len(a.Recommendations) > 0 {
		sb.WriteString("\nRecommendations:\n")
		for i, r := range a.Recommendations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, r)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatFacilities список центров проверки
func FormatFacilities(list []entity.InspectionFacility) string {
	if len(list) == 0 {
		return "No certified inspection centers found nearby."
	}

	var sb strings.Builder
	sb.WriteString("🏢 Certified inspection centers:\n")
	for i, f := range list {
		fmt.Fprintf(&sb, "\n%d. %s", i+1, f.Name)
		if f.Certified {
			sb.WriteString(" ✅")
		}
		fmt.Fprintf(&sb, "\n📍 %s (%s)", f.Address, FormatDistance(f.DistanceKm))
		if f.Phone != "" {
			fmt.Fprintf(&sb, "\n📞 %s", f.Phone)
		}
		if f.EstimatedCost.Max > 0 {
			fmt.Fprintf(&sb, "\n💰 %s - %s", FormatKRW(f.EstimatedCost.Min), FormatKRW(f.EstimatedCost.Max))
		}
		if f.InspectionTime != "" {
			fmt.Fprintf(&sb, "\n⏱ %s", f.InspectionTime)
		}
		if f.Rating > 0 {
			fmt.Fprintf(&sb, "\n%s", strings.Repeat("⭐", f.Rating))
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// FormatHistory краткий список прошлых проверок
func FormatHistory(th theme.Theme, list []entity.RiskAssessment, loc *time.Location) string {
	if len(list) == 0 {
		return "No checks yet. Send /check to start."
	}

	var sb strings.Builder
	sb.WriteString("🗂 Recent checks:\n")
	for _, a := range list {
		icon, short := "", string(a.Status)
		if tier, err := th.Tier(a.Status); err == nil {
			icon, short = tier.Icon, tier.Short
		}
		fmt.Fprintf(&sb, "\n%s %s, %d%% (%s)", icon, short, a.Confidence, a.Timestamp.In(loc).Format("2006-01-02 15:04"))
	}
	return sb.String()
}

var errDetailsFormat = errors.New("expected: location; WxHxD unit; notes")

// ParseDetails разбирает строку вида "Basement ceiling; 30x20x1 cm; cracked edge".
// Заметки необязательны.
func ParseDetails(text string) (entity.AdditionalInfo, error) {
	parts := strings.SplitN(text, ";", 3)
	if len(parts) < 2 {
		return entity.AdditionalInfo{}, errDetailsFormat
	}

	info := entity.AdditionalInfo{Location: strings.TrimSpace(parts[0])}
	if len(parts) == 3 {
		info.Notes = strings.TrimSpace(parts[2])
	}

	sizeField := strings.Fields(strings.TrimSpace(parts[1]))
	if len(sizeField) == 0 || len(sizeField) > 2 {
		return entity.AdditionalInfo{}, errDetailsFormat
	}
	dims := sizeField[0]
	unit := "cm"
	if len(sizeField) == 2 {
		unit = sizeField[1]
	} else {
		for _, u := range []string{"mm", "cm"} {
			if strings.HasSuffix(dims, u) {
				dims, unit = strings.TrimSuffix(dims, u), u
				break
			}
		}
	}
	info.Size.Unit = entity.SizeUnit(strings.ToLower(unit))

	values := strings.Split(strings.ToLower(dims), "x")
	if len(values) != 3 {
		return entity.AdditionalInfo{}, errDetailsFormat
	}
	targets := []*float64{&info.Size.Width, &info.Size.Height, &info.Size.Depth}
	for i, v := range values {
		n, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(v, ",", ".")), 64)
		if err != nil {
			return entity.AdditionalInfo{}, errDetailsFormat
		}
		*targets[i] = n
	}
	return info, nil
}
