// Package tools exposes the three callable operations of the hazard engine:
// query_hazards, estimate_repair_plan and project_worsening. It is a thin
// dispatch layer: fetch from the store, invoke the engine, return a value
// object or a typed error.
package tools

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-hazard-tools/internal/engine"
	"github.com/mr1hm/go-hazard-tools/internal/observability"
	"github.com/mr1hm/go-hazard-tools/internal/repository"
)

const (
	ToolQueryHazards       = "query_hazards"
	ToolEstimateRepairPlan = "estimate_repair_plan"
	ToolProjectWorsening   = "project_worsening"

	// DefaultAnalyticsLimit applies when a caller omits or zeroes the limit.
	DefaultAnalyticsLimit = 10

	// DefaultHorizonDays applies when a projection call omits the horizon.
	DefaultHorizonDays = 30
)

type Service struct {
	repo    repository.HazardRepository
	clock   clockwork.Clock
	metrics *observability.Metrics
}

// NewService wires the tool surface. clock may be nil (real time); metrics
// may be nil (no instrumentation).
func NewService(repo repository.HazardRepository, clock clockwork.Clock, metrics *observability.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		repo:    repo,
		clock:   clock,
		metrics: metrics,
	}
}

func (s *Service) observe(tool string, start time.Time, err error) {
	s.metrics.ObserveTool(tool, outcomeOf(err), time.Since(start).Seconds())
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case engine.IsValidation(err):
		return "validation_error"
	case engine.IsNotFound(err):
		return "not_found"
	default:
		return "error"
	}
}
