package entity

// Step шаг сценария проверки
type Step string

const (
	StepUpload         Step = "upload"
	StepResult         Step = "result"
	StepAdditionalInfo Step = "additional-info"
	StepCenters        Step = "inspection-centers"
)

// Session состояние одной проверки пользователя.
// Создаётся при начале проверки и очищается через Reset.
type Session struct {
	Step       Step
	Images     []AnalyzedImage
	Assessment *RiskAssessment
	Details    *AdditionalInfo
	Facilities []InspectionFacility
}

// NewSession создаёт пустую сессию на шаге загрузки
func NewSession() *Session {
	return &Session{Step: StepUpload}
}

// Reset возвращает сессию в начальное состояние
func (s *Session) Reset() {
	*s = Session{Step: StepUpload}
}

// AddImage добавляет фото материала
func (s *Session) AddImage(img AnalyzedImage) {
	s.Images = append(s.Images, img)
}

// SetAssessment сохраняет результат анализа и переводит сессию к результату
func (s *Session) SetAssessment(a *RiskAssessment) {
	s.Assessment = a
	s.Step = StepResult
}

// ReportImages возвращает все фото сессии: основные и уточняющие.
func (s *Session) ReportImages() []AnalyzedImage {
	images := make([]AnalyzedImage, 0, len(s.Images))
	images = append(images, s.Images...)
	if s.Details != nil {
		images = append(images, s.Details.Images...)
	}
	return images
}
