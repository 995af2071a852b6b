package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mr1hm/go-hazard-tools/internal/models"
)

func TestBuildRepairPlan_PotholeSeverity8(t *testing.T) {
	h := &models.Hazard{
		ID:         "hz-1",
		HazardType: "pothole",
		Severity:   models.SeverityPtr(8),
		Location:   "Maple Ave",
		Status:     "open",
	}

	plan := BuildRepairPlan(h)

	assert.Equal(t, "pothole", plan.Assumptions.HazardType)
	assert.Equal(t, 8, plan.Assumptions.Severity)
	assert.InDelta(t, 2.6, plan.Assumptions.Scaling, 1e-9)

	assert.InDelta(t, 393.6, plan.Costs.Material, 1e-9)
	assert.InDelta(t, 234.0, plan.Costs.Labor, 1e-9)
	assert.InDelta(t, 84.5, plan.Costs.Equipment, 1e-9)
	assert.InDelta(t, 85.8, plan.Costs.TrafficControl, 1e-9)
	assert.InDelta(t, 120.0, plan.Costs.Mobilization, 1e-9)
	// subtotal 917.9; 12% and 15% markups; total = round(917.9 * 1.27, 2)
	assert.InDelta(t, 110.15, plan.Costs.Contingency12Pct, 1e-9)
	assert.InDelta(t, 137.69, plan.Costs.OverheadProfit15Pct, 1e-9)
	assert.InDelta(t, 1165.73, plan.Costs.TotalEstimate, 1e-9)

	require.Len(t, plan.PlanSteps, 5)
	for i, step := range plan.PlanSteps {
		assert.Equal(t, i+1, step.Step)
		assert.InDelta(t, 0.52, step.DurationHr, 1e-9) // 2.6 hours over 5 steps
	}

	assert.InDelta(t, 2.9, plan.Schedule.OnSiteHours, 1e-9)
	assert.InDelta(t, 1.56, plan.Schedule.LaneClosureHours, 1e-9)
	assert.Equal(t, "same-day", plan.Schedule.TargetCompletion)
}

func TestBuildRepairPlan_MarkupProperty(t *testing.T) {
	// total == round(subtotal * 1.27, 2) across severities and types
	for _, typ := range []string{"pothole", "flooding", "debris", "damaged_signage", "sinkhole"} {
		for sev := 0; sev <= 10; sev++ {
			h := &models.Hazard{ID: "p", HazardType: typ, Severity: models.SeverityPtr(sev)}
			plan := BuildRepairPlan(h)

			subtotal := plan.Costs.Material + plan.Costs.Labor + plan.Costs.Equipment +
				plan.Costs.TrafficControl + plan.Costs.Mobilization
			assert.InDelta(t, round2(subtotal*1.27), plan.Costs.TotalEstimate, 0.03,
				"type %s severity %d", typ, sev)
		}
	}
}

func TestBuildRepairPlan_StepFloor(t *testing.T) {
	// debris at severity 0: hours = 0.8 * 0.6 = 0.48, under 0.15 * 5 steps
	h := &models.Hazard{ID: "d", HazardType: "debris", Severity: models.SeverityPtr(0)}
	plan := BuildRepairPlan(h)

	require.NotEmpty(t, plan.PlanSteps)
	for _, step := range plan.PlanSteps {
		assert.InDelta(t, 0.15, step.DurationHr, 1e-9)
	}
}

func TestBuildRepairPlan_UnknownTypeGetsPotholeProfile(t *testing.T) {
	known := BuildRepairPlan(&models.Hazard{ID: "a", HazardType: "pothole", Severity: models.SeverityPtr(5)})
	unknown := BuildRepairPlan(&models.Hazard{ID: "a", HazardType: "Sinkhole of Doom", Severity: models.SeverityPtr(5)})

	assert.Equal(t, known.Costs, unknown.Costs)
	assert.Equal(t, known.Crew, unknown.Crew)
	assert.Equal(t, known.ToolsMaterials, unknown.ToolsMaterials)
	// the reported tag is still echoed, lowercased
	assert.Equal(t, "sinkhole of doom", unknown.Assumptions.HazardType)
}

func TestBuildRepairPlan_CaseInsensitiveLookup(t *testing.T) {
	upper := BuildRepairPlan(&models.Hazard{ID: "a", HazardType: "FLOODING", Severity: models.SeverityPtr(4)})
	lower := BuildRepairPlan(&models.Hazard{ID: "a", HazardType: "flooding", Severity: models.SeverityPtr(4)})
	assert.Equal(t, lower.Costs, upper.Costs)
}

func TestBuildRepairPlan_MissingSeverityDefaultsTo3(t *testing.T) {
	plan := BuildRepairPlan(&models.Hazard{ID: "a", HazardType: "pothole"})
	assert.Equal(t, 3, plan.Assumptions.Severity)
	assert.InDelta(t, 1.35, plan.Assumptions.Scaling, 1e-9)
}

func TestBuildRepairPlan_ToolsMaterialsComeFromMaterials(t *testing.T) {
	plan := BuildRepairPlan(&models.Hazard{ID: "a", HazardType: "flooding", Severity: models.SeverityPtr(5)})
	assert.Contains(t, plan.ToolsMaterials, "Portable pump/hose")
	assert.NotContains(t, plan.ToolsMaterials, "Assess blockage")
}

func TestBuildRepairPlan_ContextEcho(t *testing.T) {
	h := &models.Hazard{
		ID:          "hz-9",
		HazardType:  "debris",
		Severity:    models.SeverityPtr(2),
		Location:    "5th & Main",
		Status:      "open",
		Description: strings.Repeat("x", 200),
		Images:      []string{"a.jpg", "b.jpg"},
	}
	plan := BuildRepairPlan(h)

	assert.Equal(t, "hz-9", plan.Context.ID)
	assert.Equal(t, "5th & Main", plan.Context.Location)
	assert.Equal(t, "open", plan.Context.Status)
	assert.Len(t, plan.Context.DescriptionExcerpt, 140)
	assert.Equal(t, 2, plan.Context.ImagesCount)
}
