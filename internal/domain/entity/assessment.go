package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidAssessment возвращается, если результат анализа нельзя использовать.
var ErrInvalidAssessment = errors.New("invalid risk assessment")

// RiskStatus уровень риска, присвоенный материалу
type RiskStatus string

const (
	StatusSafe      RiskStatus = "safe"      // Асбест не обнаружен
	StatusUncertain RiskStatus = "uncertain" // Нужна дополнительная проверка
	StatusDanger    RiskStatus = "danger"    // Вероятно наличие асбеста
)

// Statuses перечисляет все допустимые уровни риска.
var Statuses = []RiskStatus{StatusSafe, StatusUncertain, StatusDanger}

// Valid сообщает, входит ли статус в закрытый набор.
func (s RiskStatus) Valid() bool {
	switch s {
	case StatusSafe, StatusUncertain, StatusDanger:
		return true
	}
	return false
}

// ParseRiskStatus разбирает статус из строки без подстановки значения по умолчанию.
func ParseRiskStatus(raw string) (RiskStatus, error) {
	s := RiskStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown status %q", ErrInvalidAssessment, raw)
	}
	return s, nil
}

// RiskAssessment результат анализа, полученный от сервиса
type RiskAssessment struct {
	ID               string     `json:"id"`
	Status           RiskStatus `json:"status"`
	Confidence       int        `json:"confidence"`
	Message          string     `json:"message"`
	DetectedFeatures []string   `json:"detectedFeatures,omitempty"`
	Recommendations  []string   `json:"recommendations,omitempty"`
	Timestamp        time.Time  `json:"timestamp"`
}

// Validate проверяет статус и уверенность.
func (a *RiskAssessment) Validate() error {
	if a == nil {
		return fmt.Errorf("%w: assessment is missing", ErrInvalidAssessment)
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidAssessment, a.Status)
	}
	if a.Confidence < 0 || a.Confidence > 100 {
		return fmt.Errorf("%w: confidence %d is out of range [0, 100]", ErrInvalidAssessment, a.Confidence)
	}
	return nil
}

// NeedsDetails сообщает, нужна ли дополнительная информация для уточнения.
func (a *RiskAssessment) NeedsDetails() bool {
	return a.Status == StatusUncertain
}

// NeedsInspection сообщает, нужно ли направить пользователя в лабораторию.
func (a *RiskAssessment) NeedsInspection() bool {
	return a.Status == StatusDanger
}
