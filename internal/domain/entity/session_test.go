package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	require.Equal(t, StepUpload, s.Step)

	s.AddImage(AnalyzedImage{Name: "main.jpg"})
	s.SetAssessment(&RiskAssessment{ID: "a-1", Status: StatusUncertain})
	require.Equal(t, StepResult, s.Step)

	s.Details = &AdditionalInfo{Images: []AnalyzedImage{{Name: "d1.jpg"}, {Name: "d2.jpg"}}}
	images := s.ReportImages()
	require.Len(t, images, 3)
	require.Equal(t, "main.jpg", images[0].Name)
	require.Equal(t, "d2.jpg", images[2].Name)

	s.Reset()
	require.Equal(t, StepUpload, s.Step)
	require.Nil(t, s.Assessment)
	require.Empty(t, s.Images)
	require.Nil(t, s.Details)
}
