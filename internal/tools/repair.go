package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/mr1hm/go-hazard-tools/internal/engine"
	"github.com/mr1hm/go-hazard-tools/internal/models"
)

// RepairEstimate pairs the raw record with the plan derived from it.
type RepairEstimate struct {
	Hazard     *models.Hazard    `json:"hazard"`
	RepairPlan engine.RepairPlan `json:"repair_plan"`
}

// EstimateRepairPlan builds a type-aware, severity-scaled repair plan for one
// hazard. The only failure paths are a missing id argument and an id with no
// record in the store.
func (s *Service) EstimateRepairPlan(ctx context.Context, hazardID string) (est *RepairEstimate, err error) {
	defer func(start time.Time) { s.observe(ToolEstimateRepairPlan, start, err) }(time.Now())

	if hazardID == "" {
		return nil, engine.Validationf("hazard_id is required")
	}

	h, err := s.repo.GetByID(ctx, hazardID)
	if err != nil {
		return nil, fmt.Errorf("fetching hazard: %w", err)
	}
	if h == nil {
		return nil, &engine.NotFoundError{HazardID: hazardID}
	}

	return &RepairEstimate{
		Hazard:     h,
		RepairPlan: engine.BuildRepairPlan(h),
	}, nil
}
