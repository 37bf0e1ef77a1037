package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"asbestos-screen/internal/domain/entity"
	"asbestos-screen/internal/infrastructure/storage"
)

const defaultHistoryLimit = 20

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ReportRequest тело POST /api/reports. Фото передаются в base64.
type ReportRequest struct {
	Assessment *entity.RiskAssessment      `json:"assessment"`
	Images     []entity.AnalyzedImage      `json:"images"`
	Facilities []entity.InspectionFacility `json:"facilities"`
}

func ok(c *gin.Context, data any) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

func fail(c *gin.Context, status int, err error) {
	c.JSON(status, envelope{Success: false, Error: err.Error()})
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "asbestos-screen",
	})
}

func (s *Server) createReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, err)
		return
	}

	report, err := s.app.Renderer.Render(req.Assessment, req.Images, req.Facilities)
	if errors.Is(err, entity.ErrInvalidAssessment) {
		fail(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		log.WithError(err).Error("render report")
		fail(c, http.StatusInternalServerError, errors.New("failed to render report"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	c.Header("X-Page-Count", strconv.Itoa(report.PageCount))
	c.Data(http.StatusOK, "application/pdf", report.Content)
}

func (s *Server) inspectionCenters(c *gin.Context) {
	var origin *entity.Coordinates
	if c.Query("lat") != "" || c.Query("lng") != "" {
		lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
		lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
		if errLat != nil || errLng != nil {
			fail(c, http.StatusBadRequest, errors.New("lat and lng must both be numbers"))
			return
		}
		origin = &entity.Coordinates{Lat: lat, Lng: lng}
	}

	limit := s.app.FacilityLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			fail(c, http.StatusBadRequest, errors.New("limit must be a number"))
			return
		}
		limit = n
	}

	list, err := s.app.Facilities.Nearby(c.Request.Context(), origin, limit)
	if err != nil {
		log.WithError(err).Error("find facilities")
		fail(c, http.StatusBadGateway, err)
		return
	}
	ok(c, gin.H{"centers": list})
}

func (s *Server) history(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		fail(c, http.StatusBadRequest, errors.New("user_id is required"))
		return
	}
	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			fail(c, http.StatusBadRequest, errors.New("limit must be a number"))
			return
		}
	}

	list, err := s.app.ScreeningService.History(c.Request.Context(), userID, limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	if list == nil {
		list = []entity.RiskAssessment{}
	}
	ok(c, gin.H{"results": list})
}

func (s *Server) getAnalysis(c *gin.Context) {
	a, err := s.app.ScreeningService.Assessment(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	ok(c, gin.H{"result": a})
}

func (s *Server) deleteAnalysis(c *gin.Context) {
	err := s.app.ScreeningService.DeleteAssessment(c.Request.Context(), c.Param("id"))
	if errors.Is(err, storage.ErrNotFound) {
		fail(c, http.StatusNotFound, err)
		return
	}
	if err != nil {
		fail(c, http.StatusInternalServerError, err)
		return
	}
	ok(c, nil)
}
