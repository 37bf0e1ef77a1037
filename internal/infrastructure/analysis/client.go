package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/domain/port"
)

// DefaultTimeout таймаут запроса к сервису анализа
const DefaultTimeout = 30 * time.Second

// APIError ответ сервиса с success=false или неуспешным HTTP-статусом
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("analysis api error (status %d): %s", e.StatusCode, e.Message)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}

type resultData struct {
	Result *entity.RiskAssessment `json:"result"`
}

type centersData struct {
	Centers []entity.InspectionFacility `json:"centers"`
}

// Client HTTP-клиент внешнего сервиса анализа
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient создаёт клиента. token может быть пустым.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Analyze загружает фото на /api/analysis/upload
func (c *Client) Analyze(ctx context.Context, image entity.AnalyzedImage) (*entity.RiskAssessment, error) {
	body, contentType, err := buildForm(func(w *multipart.Writer) error {
		return writeFile(w, "image", image)
	})
	if err != nil {
		return nil, err
	}

	var data resultData
	if err := c.do(ctx, http.MethodPost, "/api/analysis/upload", body, contentType, &data); err != nil {
		return nil, err
	}
	return checkResult(data.Result)
}

// Refine отправляет дополнительные сведения на /api/analysis/additional-info
func (c *Client) Refine(ctx context.Context, analysisID string, info *entity.AdditionalInfo) (*entity.RiskAssessment, error) {
	if info == nil {
		return nil, fmt.Errorf("additional info is required")
	}
	size, err := json.Marshal(info.Size)
	if err != nil {
		return nil, err
	}

	body, contentType, err := buildForm(func(w *multipart.Writer) error {
		fields := [][2]string{
			{"analysisId", analysisID},
			{"location", info.Location},
			{"size", string(size)},
		}
		if info.Notes != "" {
			fields = append(fields, [2]string{"notes", info.Notes})
		}
		for _, f := range fields {
			if err := w.WriteField(f[0], f[1]); err != nil {
				return err
			}
		}
		for _, img := range info.Images {
			if err := writeFile(w, "additionalImages", img); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var data resultData
	if err := c.do(ctx, http.MethodPost, "/api/analysis/additional-info", body, contentType, &data); err != nil {
		return nil, err
	}
	return checkResult(data.Result)
}

// Nearby запрашивает центры проверки рядом с точкой
func (c *Client) Nearby(ctx context.Context, origin *entity.Coordinates, limit int) ([]entity.InspectionFacility, error) {
	path := "/api/inspection-centers"
	if origin != nil {
		q := url.Values{}
		q.Set("lat", strconv.FormatFloat(origin.Lat, 'f', -1, 64))
		q.Set("lng", strconv.FormatFloat(origin.Lng, 'f', -1, 64))
		path += "?" + q.Encode()
	}

	var data centersData
	if err := c.do(ctx, http.MethodGet, path, nil, "", &data); err != nil {
		return nil, err
	}
	if limit > 0 && len(data.Centers) > limit {
		data.Centers = data.Centers[:limit]
	}
	return data.Centers, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.WithFields(log.Fields{
		"method":   method,
		"path":     path,
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	}).Debug("analysis api call")

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func buildForm(fill func(w *multipart.Writer) error) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if err := fill(w); err != nil {
		return nil, "", fmt.Errorf("build form: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFile(w *multipart.Writer, field string, img entity.AnalyzedImage) error {
	name := img.Name
	if name == "" {
		name = "photo.jpg"
	}
	part, err := w.CreateFormFile(field, name)
	if err != nil {
		return err
	}
	_, err = part.Write(img.Data)
	return err
}

func checkResult(a *entity.RiskAssessment) (*entity.RiskAssessment, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now()
	}
	return a, nil
}

// Проверка реализации интерфейса
var (
	_ port.RiskAnalyzer      = (*Client)(nil)
	_ port.FacilityDirectory = (*Client)(nil)
)
