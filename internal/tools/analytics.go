package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mr1hm/go-hazard-tools/internal/engine"
	"github.com/mr1hm/go-hazard-tools/internal/models"
)

// QueryHazards answers one of the four analytic question kinds. For
// area_with_most_hazards the location is a case-insensitive substring filter
// over candidate locations; for top_severe_in_area it is a required exact
// match; for the count kinds it is an optional exact filter.
func (s *Service) QueryHazards(ctx context.Context, kind, location string, limit int) (result *engine.AnalyticsResult, err error) {
	defer func(start time.Time) { s.observe(ToolQueryHazards, start, err) }(time.Now())

	k, err := engine.ParseAnalyticsKind(kind)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultAnalyticsLimit
	}

	switch k {
	case engine.KindAreaWithMostHazards:
		locations, err := s.repo.Locations(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("querying locations: %w", err)
		}
		return &engine.AnalyticsResult{
			Question: string(k),
			Location: location,
			Result:   engine.TopLocations(locations, limit),
		}, nil

	case engine.KindTopSevereInArea:
		if location == "" {
			return nil, engine.Validationf("location is required for top_severe_in_area")
		}
		hazards, err := s.repo.TopSevereByLocation(ctx, location, limit)
		if err != nil {
			return nil, fmt.Errorf("querying severe hazards: %w", err)
		}
		if hazards == nil {
			hazards = []models.Hazard{}
		}
		return &engine.AnalyticsResult{
			Question: string(k),
			Location: location,
			Result:   hazards,
		}, nil

	case engine.KindCountsByType:
		types, err := s.repo.HazardTypes(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("querying hazard types: %w", err)
		}
		return &engine.AnalyticsResult{
			Question: string(k),
			Location: location,
			Result:   engine.CountsByType(types),
		}, nil

	default: // engine.KindOpenVsResolved
		statuses, err := s.repo.Statuses(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("querying statuses: %w", err)
		}
		return &engine.AnalyticsResult{
			Question: string(k),
			Location: location,
			Result:   engine.CountsByStatus(statuses),
		}, nil
	}
}
