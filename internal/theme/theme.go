// Package theme описывает оформление результата проверки: цвета, подписи и тексты.
// Один и тот же набор используется в PDF-отчёте и в сообщениях бота.
package theme

import (
	"fmt"

	"asbestos-screen/internal/domain/entity"
)

// Color цвет в RGB
type Color struct {
	R, G, B int
}

// TierStyle оформление одного уровня риска
type TierStyle struct {
	Color Color
	Label string // заголовок в отчёте
	Short string // короткое название
	Icon  string // эмодзи для сообщений
}

// Strings тексты отчёта
type Strings struct {
	Title            string
	GeneratedPrefix  string
	ResultHeading    string
	FeaturesHeading  string
	RecsHeading      string
	ImagesHeading    string
	FacilityHeading  string
	ConfidenceFormat string
	ResultNote       []string
	SummaryPrefix    string
	ImageCaption     string
	TableHeaders     [5]string
	Yes              string
	No               string
	MissingPhone     string
	DisclaimerTitle  string
	Disclaimer       []string
	Attribution      string
	PageFormat       string
	FileNameFormat   string
}

// Theme полный набор оформления
type Theme struct {
	Tiers          map[entity.RiskStatus]TierStyle
	Accent         Color // шапка и заголовок таблицы
	Text           Color
	OnAccent       Color
	Muted          Color
	FeatureFill    Color
	StripeFill     Color
	DisclaimerFill Color
	DisclaimerText Color
	Strings        Strings
}

// Default возвращает стандартное оформление: зелёный, жёлтый и красный уровни.
func Default() Theme {
	return Theme{
		Tiers: map[entity.RiskStatus]TierStyle{
			entity.StatusSafe: {
				Color: Color{34, 197, 94},
				Label: "SAFE - No Asbestos Detected",
				Short: "Safe",
				Icon:  "🟢",
			},
			entity.StatusUncertain: {
				Color: Color{251, 191, 36},
				Label: "UNCERTAIN - Further Inspection Required",
				Short: "Uncertain",
				Icon:  "🟡",
			},
			entity.StatusDanger: {
				Color: Color{239, 68, 68},
				Label: "DANGER - Asbestos Detection Possible",
				Short: "Danger",
				Icon:  "🔴",
			},
		},
		Accent:         Color{37, 99, 235},
		Text:           Color{0, 0, 0},
		OnAccent:       Color{255, 255, 255},
		Muted:          Color{100, 100, 100},
		FeatureFill:    Color{239, 246, 255},
		StripeFill:     Color{245, 247, 250},
		DisclaimerFill: Color{254, 242, 242},
		DisclaimerText: Color{185, 28, 28},
		Strings: Strings{
			Title:            "ASBESTOS ANALYSIS REPORT",
			GeneratedPrefix:  "Report Generated: ",
			ResultHeading:    "ANALYSIS RESULT",
			FeaturesHeading:  "DETECTED FEATURES",
			RecsHeading:      "RECOMMENDATIONS",
			ImagesHeading:    "ANALYZED IMAGES",
			FacilityHeading:  "NEARBY INSPECTION CENTERS",
			ConfidenceFormat: "Confidence: %s",
			ResultNote: []string{
				"AI analysis preliminary screening has been completed.",
				"This is an initial analysis based on visual inspection.",
			},
			SummaryPrefix:   "Summary: ",
			ImageCaption:    "Image %d",
			TableHeaders:    [5]string{"Name", "Address", "Distance", "Phone", "Certified"},
			Yes:             "Yes",
			No:              "No",
			MissingPhone:    "-",
			DisclaimerTitle: "IMPORTANT DISCLAIMER",
			Disclaimer: []string{
				"This report is generated by an AI-based screening tool. It is a preliminary",
				"assessment and should not be considered a definitive diagnosis.",
				"",
				"It is not a substitute for certified laboratory analysis: asbestos must be",
				"identified through laboratory testing by licensed professionals.",
				"",
				"Final determination requires a certified professional. If you suspect asbestos,",
				"request a thorough inspection from a certified inspection agency.",
			},
			Attribution:    "Asbestos Detection AI - Preliminary Screening",
			PageFormat:     "Page %d of %d",
			FileNameFormat: "asbestos-report-%d.pdf",
		},
	}
}

// Tier возвращает оформление уровня. Неизвестный уровень считается ошибкой.
func (t Theme) Tier(status entity.RiskStatus) (TierStyle, error) {
	style, ok := t.Tiers[status]
	if !ok {
		return TierStyle{}, fmt.Errorf("%w: no style for status %q", entity.ErrInvalidAssessment, status)
	}
	return style, nil
}
