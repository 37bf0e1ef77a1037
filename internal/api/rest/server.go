package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"asbestos-screen/internal/container"
)

// Server HTTP API поверх тех же сервисов, что и бот
type Server struct {
	app    *container.Container
	engine *gin.Engine
}

// NewServer регистрирует маршруты
func NewServer(c *container.Container) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	s := &Server{app: c, engine: engine}

	engine.GET("/healthz", s.health)

	api := engine.Group("/api")
	api.POST("/reports", s.createReport)
	api.GET("/inspection-centers", s.inspectionCenters)
	api.GET("/analysis/history", s.history)
	api.GET("/analysis/:id", s.getAnalysis)
	api.DELETE("/analysis/:id", s.deleteAnalysis)

	return s
}

// Handler возвращает http.Handler для тестов и встраивания
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run слушает addr до отмены ctx и затем корректно останавливается
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", addr).Info("http server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("http server shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":   c.Request.Method,
			"path":     c.FullPath(),
			"status":   c.Writer.Status(),
			"duration": time.Since(started).String(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Debug("request")
	}
}
