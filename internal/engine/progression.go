package engine

import (
	"math"
	"time"

	"github.com/mr1hm/go-hazard-tools/internal/models"
)

const (
	// UrgentThreshold marks a projected severity that warrants the short
	// action window.
	UrgentThreshold = 7.0

	// AreaFetchLimit bounds how many records an area projection pulls from the
	// store; AreaSampleLimit bounds how many per-record projections it echoes
	// back (first encountered, not a statistical sample).
	AreaFetchLimit  = 5000
	AreaSampleLimit = 50

	weeklyRateCap   = 0.25
	severityCeiling = 10.0

	defaultWorseningMultiplier = 1.10
)

// worseningMultipliers scales the weekly severity growth per hazard type.
// Independent of the profile registry: a debris pile decays while a pothole
// compounds.
var worseningMultipliers = map[models.HazardType]float64{
	models.HazardTypePothole:        1.40,
	models.HazardTypeFlooding:       1.25,
	models.HazardTypeDebris:         0.85,
	models.HazardTypeDamagedSignage: 0.75,
}

func worseningMultiplier(rawType string) float64 {
	if m, ok := worseningMultipliers[models.ParseHazardType(rawType)]; ok {
		return m
	}
	return defaultWorseningMultiplier
}

// WeeklyRate returns the fractional per-week severity growth, hard-capped at
// 0.25/week regardless of type or severity.
func WeeklyRate(severity int, rawType string) float64 {
	base := 0.02 * float64(clampInt(severity, 0, 10))
	return math.Min(weeklyRateCap, base*worseningMultiplier(rawType))
}

// Weather holds the optional call-time weather inputs.
type Weather struct {
	PrecipMM         float64
	FreezeThawCycles int
}

// Multiplier amplifies projected severity from precipitation and freeze-thaw
// cycles. Each term is capped independently, bounding the result to [1.0, 1.9].
func (w Weather) Multiplier() float64 {
	return 1.0 + math.Min(0.5, w.PrecipMM/200.0) + math.Min(0.4, 0.05*float64(w.FreezeThawCycles))
}

type HazardProjectionInputs struct {
	SeverityNow        int     `json:"severity_now"`
	ProgressionPerWeek float64 `json:"progression_per_week"`
	WeatherMultiplier  float64 `json:"weather_multiplier"`
	AgeDays            *int    `json:"age_days"`
}

type ProjectionOutcome struct {
	ProjectedSeverity           float64 `json:"projected_severity"`
	RiskNote                    string  `json:"risk_note"`
	RecommendedActionWindowDays int     `json:"recommended_action_window_days"`
}

type HazardProjection struct {
	Mode        string                 `json:"mode"`
	HazardID    string                 `json:"hazard_id"`
	HorizonDays int                    `json:"horizon_days"`
	Inputs      HazardProjectionInputs `json:"inputs"`
	Projection  ProjectionOutcome      `json:"projection"`
}

type AreaProjectionInputs struct {
	WeatherMultiplier float64 `json:"weather_multiplier"`
	FreezeThawCycles  int     `json:"freeze_thaw_cycles"`
	PrecipMM          float64 `json:"precip_mm"`
}

type AreaSummary struct {
	HazardCount          int     `json:"hazard_count"`
	AvgSeverityNow       float64 `json:"avg_severity_now"`
	AvgSeverityProjected float64 `json:"avg_severity_projected"`
	UrgentCount          int     `json:"urgent_count"`
}

type ProjectionSample struct {
	ID                string  `json:"id"`
	HazardType        string  `json:"hazard_type"`
	SeverityNow       int     `json:"severity_now"`
	SeverityProjected float64 `json:"severity_projected"`
}

type AreaProjection struct {
	Mode        string                `json:"mode"`
	Location    string                `json:"location"`
	HorizonDays int                   `json:"horizon_days"`
	Inputs      *AreaProjectionInputs `json:"inputs,omitempty"`
	Summary     *AreaSummary          `json:"summary,omitempty"`
	Samples     []ProjectionSample    `json:"samples,omitempty"`
	// Note is set to "no hazards found" when the location has no records;
	// an empty area is a valid result, not an error.
	Note string `json:"projection,omitempty"`
}

// projectSeverity applies the worsening model. The stored severity is clamped
// into [0,10] before use, so the result stays within [0,10] regardless of
// horizon, weather, or out-of-range stored values.
func projectSeverity(severity int, rawType string, weeks, weatherMult float64) float64 {
	s := clampInt(severity, 0, 10)
	rate := WeeklyRate(s, rawType)
	return math.Min(severityCeiling, float64(s)*(1.0+rate*weeks)*weatherMult)
}

func horizonWeeks(horizonDays int) float64 {
	return math.Max(0.0, float64(horizonDays)/7.0)
}

// ProjectHazard projects a single record forward. now feeds the age_days
// computation only; a record with a malformed created_at gets a nil AgeDays
// and the projection still succeeds.
func ProjectHazard(h *models.Hazard, horizonDays int, w Weather, now time.Time) HazardProjection {
	sev := clampInt(h.EffectiveSeverity(), 0, 10)
	rate := WeeklyRate(sev, h.HazardType)
	mult := w.Multiplier()
	projected := projectSeverity(sev, h.HazardType, horizonWeeks(horizonDays), mult)

	var ageDays *int
	if ts, ok := ParseTimestamp(h.CreatedAt); ok {
		d := int(now.UTC().Sub(ts).Hours() / 24)
		ageDays = &d
	}

	window := 30
	if projected >= UrgentThreshold {
		window = 14
	}

	return HazardProjection{
		Mode:        "hazard",
		HazardID:    h.ID,
		HorizonDays: horizonDays,
		Inputs: HazardProjectionInputs{
			SeverityNow:        sev,
			ProgressionPerWeek: round4(rate),
			WeatherMultiplier:  round3(mult),
			AgeDays:            ageDays,
		},
		Projection: ProjectionOutcome{
			ProjectedSeverity:           round2(projected),
			RiskNote:                    "Type-aware heuristic using severity & optional weather.",
			RecommendedActionWindowDays: window,
		},
	}
}

// ProjectArea projects every record of a location and aggregates. The caller
// is expected to have fetched at most AreaFetchLimit records.
func ProjectArea(hazards []models.Hazard, location string, horizonDays int, w Weather) AreaProjection {
	if len(hazards) == 0 {
		return AreaProjection{
			Mode:        "area",
			Location:    location,
			HorizonDays: horizonDays,
			Note:        "no hazards found",
		}
	}

	mult := w.Multiplier()
	weeks := horizonWeeks(horizonDays)

	var (
		sevNowSum  float64
		sevProjSum float64
		urgent     int
		samples    []ProjectionSample
	)
	for i := range hazards {
		h := &hazards[i]
		sev := clampInt(h.EffectiveSeverity(), 0, 10)
		projected := projectSeverity(sev, h.HazardType, weeks, mult)

		sevNowSum += float64(sev)
		sevProjSum += projected
		if projected >= UrgentThreshold {
			urgent++
		}
		if len(samples) < AreaSampleLimit {
			samples = append(samples, ProjectionSample{
				ID:                h.ID,
				HazardType:        h.HazardType,
				SeverityNow:       sev,
				SeverityProjected: round2(projected),
			})
		}
	}

	n := float64(len(hazards))
	return AreaProjection{
		Mode:        "area",
		Location:    location,
		HorizonDays: horizonDays,
		Inputs: &AreaProjectionInputs{
			WeatherMultiplier: round3(mult),
			FreezeThawCycles:  w.FreezeThawCycles,
			PrecipMM:          w.PrecipMM,
		},
		Summary: &AreaSummary{
			HazardCount:          len(hazards),
			AvgSeverityNow:       round2(sevNowSum / n),
			AvgSeverityProjected: round2(sevProjSum / n),
			UrgentCount:          urgent,
		},
		Samples: samples,
	}
}
