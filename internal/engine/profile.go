package engine

import "github.com/mr1hm/go-hazard-tools/internal/models"

type CrewMember struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// HazardProfile is the static per-type cost/crew/step table a repair plan is
// built from. Only hazard_type and severity exist on a record, so everything
// here is a severity-scalable baseline rather than a measured quantity.
type HazardProfile struct {
	Crew              []CrewMember
	BaseHours         float64
	LaborHourly       float64
	EquipmentHourly   float64
	TrafficCtrlHourly float64
	MaterialBaseline  float64
	Materials         []string
	Steps             []string
}

// profiles is built once at init and never mutated afterwards.
var profiles = map[models.HazardType]HazardProfile{
	models.HazardTypePothole: {
		Crew: []CrewMember{
			{Role: "Lead/Safety", Count: 1},
			{Role: "Patcher/Laborer", Count: 1},
			{Role: "Truck Operator", Count: 1},
		},
		BaseHours:         1.0,
		LaborHourly:       90.0,
		EquipmentHourly:   65.0,
		TrafficCtrlHourly: 55.0,
		MaterialBaseline:  240.0,
		Materials:         []string{"Hot mix/cold patch", "Tack (as needed)", "Broom/shovel", "Cones/signage"},
		Steps:             []string{"Traffic control setup", "Prepare/clean defect", "Place material", "Compact & finish", "Cleanup & reopen"},
	},
	models.HazardTypeFlooding: {
		Crew: []CrewMember{
			{Role: "Lead/Safety", Count: 1},
			{Role: "Pump Operator", Count: 1},
		},
		BaseHours:         1.3,
		LaborHourly:       90.0,
		EquipmentHourly:   70.0,
		TrafficCtrlHourly: 55.0,
		MaterialBaseline:  60.0,
		Materials:         []string{"Portable pump/hose", "Sandbags as needed", "Cones/signage"},
		Steps:             []string{"Traffic control", "Assess blockage", "Pump/clear inlet", "Place temp mitigation", "Cleanup/monitor"},
	},
	models.HazardTypeDebris: {
		Crew: []CrewMember{
			{Role: "Lead/Safety", Count: 1},
			{Role: "Laborer", Count: 1},
		},
		BaseHours:         0.8,
		LaborHourly:       85.0,
		EquipmentHourly:   55.0,
		TrafficCtrlHourly: 50.0,
		MaterialBaseline:  40.0,
		Materials:         []string{"Chainsaw (if needed)", "Broom/shovel", "Trash bags", "Cones/signage"},
		Steps:             []string{"Traffic control", "Segment and remove debris", "Load/haul or stage", "Sweep/cleanup", "Reopen"},
	},
	models.HazardTypeDamagedSignage: {
		Crew: []CrewMember{
			{Role: "Lead/Safety", Count: 1},
			{Role: "Installer", Count: 1},
		},
		BaseHours:         0.9,
		LaborHourly:       85.0,
		EquipmentHourly:   50.0,
		TrafficCtrlHourly: 50.0,
		MaterialBaseline:  180.0,
		Materials:         []string{"Sign panel/post", "Hardware/anchors", "Cones/signage"},
		Steps:             []string{"Traffic control", "Remove damaged hardware", "Install/align new sign", "Tighten & verify sightlines", "Cleanup"},
	},
}

// ProfileFor resolves a reported tag to a profile. Tags come straight from
// the table and may be anything; unrecognized ones get the pothole profile so
// every record resolves to some plan.
func ProfileFor(rawType string) (models.HazardType, HazardProfile) {
	t := models.ParseHazardType(rawType)
	if p, ok := profiles[t]; ok {
		return t, p
	}
	return models.HazardTypePothole, profiles[models.HazardTypePothole]
}
