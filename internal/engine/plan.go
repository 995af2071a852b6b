package engine

import (
	"math"
	"strings"

	"github.com/mr1hm/go-hazard-tools/internal/models"
)

const (
	mobilizationCost   = 120.0
	contingencyRate    = 0.12
	overheadProfitRate = 0.15
	minStepHours       = 0.15
	excerptLimit       = 140
)

type PlanAssumptions struct {
	HazardType string  `json:"hazard_type"`
	Severity   int     `json:"severity"`
	Scaling    float64 `json:"scaling"`
}

type PlanCosts struct {
	Material            float64 `json:"material"`
	Labor               float64 `json:"labor"`
	Equipment           float64 `json:"equipment"`
	TrafficControl      float64 `json:"traffic_control"`
	Mobilization        float64 `json:"mobilization"`
	Contingency12Pct    float64 `json:"contingency_12pct"`
	OverheadProfit15Pct float64 `json:"overhead_profit_15pct"`
	TotalEstimate       float64 `json:"total_estimate"`
}

type PlanStep struct {
	Step       int     `json:"step"`
	Name       string  `json:"name"`
	DurationHr float64 `json:"duration_hr"`
}

type PlanSchedule struct {
	OnSiteHours      float64 `json:"on_site_hours"`
	LaneClosureHours float64 `json:"lane_closure_hours"`
	TargetCompletion string  `json:"target_completion"`
}

type PlanContext struct {
	ID                 string `json:"id"`
	Location           string `json:"location"`
	Status             string `json:"status"`
	DescriptionExcerpt string `json:"description_excerpt"`
	ImagesCount        int    `json:"images_count"`
}

type RepairPlan struct {
	Assumptions    PlanAssumptions `json:"assumptions"`
	Costs          PlanCosts       `json:"costs"`
	Crew           []CrewMember    `json:"crew"`
	ToolsMaterials []string        `json:"tools_materials"`
	PlanSteps      []PlanStep      `json:"plan_steps"`
	Schedule       PlanSchedule    `json:"schedule"`
	Context        PlanContext     `json:"context"`
	Notes          string          `json:"notes"`
}

// BuildRepairPlan derives a fully itemized cost/schedule/crew plan from a
// hazard record. Deterministic: the same record always yields the same plan.
// Currency figures are rounded to cents at the point of output only.
func BuildRepairPlan(h *models.Hazard) RepairPlan {
	_, prof := ProfileFor(h.HazardType)
	sev := h.EffectiveSeverity()
	scale := SeverityScale(sev)

	hours := prof.BaseHours * scale

	// No geometry fields exist, so material scales off the same severity proxy.
	materialCost := prof.MaterialBaseline * (0.6 + 0.4*scale)
	laborCost := prof.LaborHourly * hours
	equipmentCost := prof.EquipmentHourly * math.Max(0.6, 0.5*hours)
	trafficCost := prof.TrafficCtrlHourly * math.Max(0.5, 0.6*hours)

	subtotal := materialCost + laborCost + equipmentCost + trafficCost + mobilizationCost
	contingency := contingencyRate * subtotal
	ohp := overheadProfitRate * subtotal
	total := round2(subtotal + contingency + ohp)

	// Steps are not individually weighted; hours split uniformly with a floor
	// so no step collapses to zero on a trivial job.
	stepTime := round2(math.Max(minStepHours, hours/float64(max(1, len(prof.Steps)))))
	steps := make([]PlanStep, 0, len(prof.Steps))
	for i, name := range prof.Steps {
		steps = append(steps, PlanStep{Step: i + 1, Name: name, DurationHr: stepTime})
	}

	return RepairPlan{
		Assumptions: PlanAssumptions{
			HazardType: strings.ToLower(h.HazardType),
			Severity:   sev,
			Scaling:    round2(scale),
		},
		Costs: PlanCosts{
			Material:            round2(materialCost),
			Labor:               round2(laborCost),
			Equipment:           round2(equipmentCost),
			TrafficControl:      round2(trafficCost),
			Mobilization:        mobilizationCost,
			Contingency12Pct:    round2(contingency),
			OverheadProfit15Pct: round2(ohp),
			TotalEstimate:       total,
		},
		Crew:           prof.Crew,
		ToolsMaterials: prof.Materials,
		PlanSteps:      steps,
		Schedule: PlanSchedule{
			OnSiteHours:      round2(hours + 0.3),
			LaneClosureHours: round2(math.Max(0.75, 0.6*hours)),
			TargetCompletion: "same-day",
		},
		Context: PlanContext{
			ID:                 h.ID,
			Location:           h.Location,
			Status:             h.Status,
			DescriptionExcerpt: excerpt(h.Description, excerptLimit),
			ImagesCount:        len(h.Images),
		},
		Notes: "Type-aware, severity-scaled estimate using only fields present in the hazard table.",
	}
}

func excerpt(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
