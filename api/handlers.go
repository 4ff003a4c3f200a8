package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	preipo "github.com/stupidvibecoder/pre-ipo"
	"github.com/stupidvibecoder/pre-ipo/renderer"
)

// Entity is an item of the entity list.
type Entity struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Events int    `json:"events"`
}

// EntityDetail describes one entity with its metrics at the default baseline.
type EntityDetail struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Founded    int             `json:"founded,omitempty"`
	Summary    []string        `json:"summary,omitempty"`
	Events     int             `json:"events"`
	Computable bool            `json:"computable"`
	Metrics    *preipo.Metrics `json:"metrics,omitempty"`
}

// Series is the cumulative series of an entity.
type Series struct {
	Entity string         `json:"entity"`
	Points []preipo.Point `json:"points"`
}

func (s *Server) listEntities(ctx *gin.Context) {
	list := make([]Entity, 0, s.Data.Len())
	for _, id := range s.Data.Entities() {
		p, _ := s.Profiles.Get(id)
		list = append(list, Entity{ID: id, Name: p.Name, Events: len(s.Data.Events(id))})
	}
	ctx.JSON(http.StatusOK, list)
}

func (s *Server) getEntity(ctx *gin.Context) {
	a, ok := s.analyze(ctx, s.Rate)
	if !ok {
		return
	}
	p, _ := s.Profiles.Get(a.EntityID)
	d := EntityDetail{
		ID:         a.EntityID,
		Name:       p.Name,
		Founded:    p.Founded,
		Summary:    p.Summary,
		Events:     a.Series.Len(),
		Computable: a.Computable,
	}
	if a.Computable {
		d.Metrics = &a.Metrics
	}
	ctx.JSON(http.StatusOK, d)
}

func (s *Server) getSeries(ctx *gin.Context) {
	a, ok := s.analyze(ctx, s.Rate)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, Series{Entity: a.EntityID, Points: a.Series.Points()})
}

func (s *Server) getMetrics(ctx *gin.Context) {
	rate, ok := s.baseline(ctx)
	if !ok {
		return
	}
	a, ok := s.analyze(ctx, rate)
	if !ok {
		return
	}
	if !a.Computable {
		abort(ctx, http.StatusUnprocessableEntity, fmt.Errorf("metrics are not computable for %q: at least two events over a positive period and a positive first valuation are required", a.EntityID))
		return
	}
	ctx.JSON(http.StatusOK, a.Metrics)
}

func (s *Server) getReport(ctx *gin.Context) {
	rate, ok := s.baseline(ctx)
	if !ok {
		return
	}
	if _, ok := s.analyze(ctx, rate); !ok {
		return
	}
	r, err := preipo.NewReport(s.Data, ctx.Param("id"), s.Profiles, rate)
	if err != nil {
		abort(ctx, http.StatusInternalServerError, err)
		return
	}
	ctx.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(renderer.RenderReport(r, s.Options)))
}

// baseline reads the optional baseline query parameter, the server rate by default.
func (s *Server) baseline(ctx *gin.Context) (float64, bool) {
	v, ok := ctx.GetQuery("baseline")
	if !ok {
		return s.Rate, true
	}
	rate, err := strconv.ParseFloat(v, 64)
	if err != nil {
		abort(ctx, http.StatusBadRequest, fmt.Errorf("%w: baseline %q is not a number", preipo.ErrInvalidParameter, v))
		return 0, false
	}
	if err := preipo.CheckRate(rate); err != nil {
		abort(ctx, http.StatusBadRequest, err)
		return 0, false
	}
	return rate, true
}

// analyze runs the engine on the entity of the request, and writes the error response if
// it fails.
func (s *Server) analyze(ctx *gin.Context, rate float64) (preipo.Analysis, bool) {
	id := ctx.Param("id")
	if !s.Data.Has(id) {
		abort(ctx, http.StatusNotFound, fmt.Errorf("unknown entity %q", id))
		return preipo.Analysis{}, false
	}
	a, err := s.Data.Analyze(id, rate)
	switch {
	case err == nil:
		return a, true
	case errors.Is(err, preipo.ErrInvalidParameter):
		abort(ctx, http.StatusBadRequest, err)
	case errors.Is(err, preipo.ErrInvalidInput):
		abort(ctx, http.StatusUnprocessableEntity, err)
	default:
		abort(ctx, http.StatusInternalServerError, err)
	}
	return preipo.Analysis{}, false
}

func abort(ctx *gin.Context, status int, err error) {
	ctx.Error(err)
	ctx.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
