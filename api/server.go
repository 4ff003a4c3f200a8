// Package api serves funding series and metrics over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/renderer"
	"go.uber.org/zap"
)

// Server exposes a read-only dataset. Handlers never modify it, so a Server is safe for
// concurrent use.
type Server struct {
	Data     *preipo.Dataset
	Profiles preipo.Profiles
	Rate     float64 // default baseline annual growth rate
	Options  renderer.Options
	Logger   *zap.Logger // zap.L() if nil
}

// Handler returns the gin engine serving the routes.
func (s *Server) Handler() http.Handler {
	log := s.Logger
	if log == nil {
		log = zap.L()
	}
	router := gin.New()
	router.Use(recovery(log), requestLogger(log))
	s.routes(router)
	return router
}

func (s *Server) routes(r *gin.Engine) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"message": "Server is running"})
	})

	entities := r.Group("/entities")
	{
		entities.GET("", s.listEntities)
		entities.GET("/:id", s.getEntity)
		entities.GET("/:id/series", s.getSeries)
		entities.GET("/:id/metrics", s.getMetrics)
		entities.GET("/:id/report", s.getReport)
	}
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	log := s.Logger
	if log == nil {
		log = zap.L()
	}
	server := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		log.Info("Shutting down gracefully...")
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		done <- server.Shutdown(shutdown)
	}()

	log.Info("Listening", zap.String("addr", addr), zap.Int("entities", s.Data.Len()))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-done; err != nil {
		return err
	}
	log.Info("Server exited gracefully")
	return nil
}
