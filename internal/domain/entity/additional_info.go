package entity

import (
	"math"
	"sort"
	"strings"
)

// MaxDetailImages предельное число дополнительных фото
const MaxDetailImages = 5

// SizeUnit единица измерения образца
type SizeUnit string

const (
	UnitCentimeter SizeUnit = "cm"
	UnitMillimeter SizeUnit = "mm"
)

// MaterialSize размеры образца материала
type MaterialSize struct {
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Depth  float64  `json:"depth"`
	Unit   SizeUnit `json:"unit"`
}

// AdditionalInfo уточняющие данные для повторного анализа
type AdditionalInfo struct {
	Location string          `json:"location"`
	Size     MaterialSize    `json:"size"`
	Images   []AnalyzedImage `json:"-"`
	Notes    string          `json:"notes,omitempty"`
}

// ValidationErrors ошибки проверки по полям формы
type ValidationErrors map[string]string

func (e ValidationErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+e[f])
	}
	return "invalid additional info: " + strings.Join(parts, "; ")
}

// Validate проверяет обязательные поля и возвращает ValidationErrors.
func (i *AdditionalInfo) Validate() error {
	errs := ValidationErrors{}

	if strings.TrimSpace(i.Location) == "" {
		errs["location"] = "Location is required"
	}
	if !positive(i.Size.Width) {
		errs["width"] = "Valid width is required"
	}
	if !positive(i.Size.Height) {
		errs["height"] = "Valid height is required"
	}
	if !positive(i.Size.Depth) {
		errs["depth"] = "Valid depth is required"
	}
	if i.Size.Unit != UnitCentimeter && i.Size.Unit != UnitMillimeter {
		errs["unit"] = "Unit must be cm or mm"
	}
	switch {
	case len(i.Images) == 0:
		errs["images"] = "Please upload at least one additional image"
	case len(i.Images) > MaxDetailImages:
		errs["images"] = "Too many additional images"
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// NaN и бесконечность не считаются размером
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}
