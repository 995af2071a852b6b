package models

import "strings"

type HazardType string

const (
	HazardTypePothole        HazardType = "pothole"
	HazardTypeFlooding       HazardType = "flooding"
	HazardTypeDebris         HazardType = "debris"
	HazardTypeDamagedSignage HazardType = "damaged_signage"
	HazardTypeUnknown        HazardType = "unknown"
)

// ParseHazardType maps a reported tag to a known hazard type. Tags are
// externally supplied free text, so anything unrecognized maps to
// HazardTypeUnknown rather than failing; consumers pick their own fallback.
func ParseHazardType(s string) HazardType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pothole":
		return HazardTypePothole
	case "flooding":
		return HazardTypeFlooding
	case "debris":
		return HazardTypeDebris
	case "damaged_signage":
		return HazardTypeDamagedSignage
	default:
		return HazardTypeUnknown
	}
}

func (t HazardType) String() string {
	return string(t)
}

// DefaultSeverity is assumed when a report omits the severity field.
const DefaultSeverity = 3

type Hazard struct {
	ID          string   `json:"id"`
	HazardType  string   `json:"hazard_type"` // raw reported tag; resolve via ParseHazardType
	Severity    *int     `json:"severity"`    // nil when the report omitted it
	Location    string   `json:"location"`
	Status      string   `json:"status"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"` // raw timestamp as reported, ISO-8601-ish
}

// SeverityPtr wraps a literal severity for constructing Hazard values.
func SeverityPtr(v int) *int {
	return &v
}

// EffectiveSeverity returns the reported severity or DefaultSeverity when absent.
// The value is not clamped here; the engine clamps into [0,10] before use.
func (h *Hazard) EffectiveSeverity() int {
	if h.Severity == nil {
		return DefaultSeverity
	}
	return *h.Severity
}
