package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mr1hm/go-hazard-tools/internal/engine"
)

// ProjectionRequest carries the project_worsening arguments. Exactly one of
// HazardID or Location must be set; weather inputs are optional.
type ProjectionRequest struct {
	HazardID         string
	Location         string
	HorizonDays      int
	PrecipMM         float64
	FreezeThawCycles int
}

// ProjectWorsening projects severity forward for one hazard or for an entire
// area. Returns *engine.HazardProjection or *engine.AreaProjection depending
// on mode; both are tree-structured value objects.
func (s *Service) ProjectWorsening(ctx context.Context, req ProjectionRequest) (result any, err error) {
	defer func(start time.Time) { s.observe(ToolProjectWorsening, start, err) }(time.Now())

	if req.HazardID == "" && req.Location == "" {
		return nil, engine.Validationf("provide hazard_id or location")
	}

	weather := engine.Weather{
		PrecipMM:         req.PrecipMM,
		FreezeThawCycles: req.FreezeThawCycles,
	}

	if req.HazardID != "" {
		h, err := s.repo.GetByID(ctx, req.HazardID)
		if err != nil {
			return nil, fmt.Errorf("fetching hazard: %w", err)
		}
		if h == nil {
			return nil, &engine.NotFoundError{HazardID: req.HazardID}
		}
		p := engine.ProjectHazard(h, req.HorizonDays, weather, s.clock.Now())
		return &p, nil
	}

	hazards, err := s.repo.ListByLocation(ctx, req.Location, engine.AreaFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("fetching hazards for location: %w", err)
	}
	p := engine.ProjectArea(hazards, req.Location, req.HorizonDays, weather)
	return &p, nil
}
