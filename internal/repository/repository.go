package repository

import (
	"context"

	"github.com/mr1hm/go-hazard-tools/internal/models"
)

// HazardRepository is the store collaborator contract the engine consumes:
// equality filters, a case-insensitive substring filter, ordering, limits and
// field projections for client-side grouping. Absence of a matching record is
// an empty result (or nil from GetByID), never an error.
type HazardRepository interface {
	Add(ctx context.Context, h *models.Hazard) error
	Exists(ctx context.Context, id string) (bool, error)

	// GetByID returns (nil, nil) when no record carries the id.
	GetByID(ctx context.Context, id string) (*models.Hazard, error)

	// ListByLocation returns up to limit records whose location matches exactly.
	ListByLocation(ctx context.Context, location string, limit int) ([]models.Hazard, error)

	// TopSevereByLocation returns up to limit records for a location ordered by
	// severity descending, most recent first among ties.
	TopSevereByLocation(ctx context.Context, location string, limit int) ([]models.Hazard, error)

	// Locations projects the location column. A non-empty filter keeps only
	// locations containing it, case-insensitively.
	Locations(ctx context.Context, filter string) ([]string, error)

	// HazardTypes projects the hazard_type column, optionally restricted to an
	// exact location.
	HazardTypes(ctx context.Context, location string) ([]string, error)

	// Statuses projects the status column, optionally restricted to an exact
	// location.
	Statuses(ctx context.Context, location string) ([]string, error)
}
