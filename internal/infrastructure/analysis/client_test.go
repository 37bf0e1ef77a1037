package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"asbestos-screen/internal/domain/entity"
)

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestClient_Analyze(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/analysis/upload", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		require.Equal(t, "ceiling.jpg", hdr.Filename)
		require.Equal(t, []byte("jpeg-bytes"), data)

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{"result": map[string]any{
				"id":               "analysis-1",
				"status":           "uncertain",
				"confidence":       74,
				"message":          "Preliminary screening completed",
				"detectedFeatures": []string{"Fibrous texture detected"},
				"timestamp":        "2026-10-18T09:30:00Z",
			}},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "secret", time.Second)
	a, err := c.Analyze(context.Background(), entity.AnalyzedImage{Name: "ceiling.jpg", Data: []byte("jpeg-bytes")})
	require.NoError(t, err)
	require.Equal(t, "analysis-1", a.ID)
	require.Equal(t, entity.StatusUncertain, a.Status)
	require.Equal(t, 74, a.Confidence)
	require.Equal(t, []string{"Fibrous texture detected"}, a.DetectedFeatures)
	require.Equal(t, 2026, a.Timestamp.Year())
}

func TestClient_Refine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/analysis/additional-info", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, "analysis-1", r.FormValue("analysisId"))
		require.Equal(t, "Basement ceiling", r.FormValue("location"))
		require.JSONEq(t, `{"width":30,"height":20,"depth":1,"unit":"cm"}`, r.FormValue("size"))
		require.Len(t, r.MultipartForm.File["additionalImages"], 2)
		require.Empty(t, r.Header.Get("Authorization"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"result": map[string]any{"id": "analysis-1", "status": "danger", "confidence": 88, "message": "Refined"}},
		})
	}))
	defer srv.Close()

	info := &entity.AdditionalInfo{
		Location: "Basement ceiling",
		Size:     entity.MaterialSize{Width: 30, Height: 20, Depth: 1, Unit: entity.UnitCentimeter},
		Images:   []entity.AnalyzedImage{{Name: "a.jpg", Data: []byte("a")}, {Name: "b.jpg", Data: []byte("b")}},
	}
	a, err := NewClient(srv.URL, "", 0).Refine(context.Background(), "analysis-1", info)
	require.NoError(t, err)
	require.Equal(t, entity.StatusDanger, a.Status)
	require.False(t, a.Timestamp.IsZero())
}

func TestClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnprocessableEntity, map[string]any{"success": false, "error": "image is unreadable"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", 0).Analyze(context.Background(), entity.AnalyzedImage{Data: []byte("x")})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnprocessableEntity, apiErr.StatusCode)
	require.Equal(t, "image is unreadable", apiErr.Message)
}

func TestClient_RejectsInvalidResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data":    map[string]any{"result": map[string]any{"id": "x", "status": "green", "confidence": 80}},
		})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", 0).Analyze(context.Background(), entity.AnalyzedImage{Data: []byte("x")})
	require.ErrorIs(t, err, entity.ErrInvalidAssessment)
}

func TestClient_Nearby(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/inspection-centers", r.URL.Path)
		require.Equal(t, "37.5", r.URL.Query().Get("lat"))
		require.Equal(t, "127.04", r.URL.Query().Get("lng"))

		writeJSON(t, w, http.StatusOK, map[string]any{
			"success": true,
			"data": map[string]any{"centers": []map[string]any{
				{"id": "1", "name": "A", "distance": 1.2, "estimatedCost": map[string]any{"min": 1, "max": 2}},
				{"id": "2", "name": "B", "distance": 2.4},
			}},
		})
	}))
	defer srv.Close()

	list, err := NewClient(srv.URL, "", 0).Nearby(context.Background(), &entity.Coordinates{Lat: 37.5, Lng: 127.04}, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "A", list[0].Name)
	require.Equal(t, int64(2), list[0].EstimatedCost.Max)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", 50*time.Millisecond).Nearby(context.Background(), nil, 0)
	require.Error(t, err)
}
