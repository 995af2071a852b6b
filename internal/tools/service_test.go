package tools

import (
	"context"
	"math"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mr1hm/go-hazard-tools/internal/engine"
	"github.com/mr1hm/go-hazard-tools/internal/models"
	"github.com/mr1hm/go-hazard-tools/internal/observability"
)

// mockRepo implements repository.HazardRepository in memory for testing
type mockRepo struct {
	hazards []models.Hazard
}

func (m *mockRepo) Add(ctx context.Context, h *models.Hazard) error {
	m.hazards = append(m.hazards, *h)
	return nil
}

func (m *mockRepo) Exists(ctx context.Context, id string) (bool, error) {
	for _, h := range m.hazards {
		if h.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepo) GetByID(ctx context.Context, id string) (*models.Hazard, error) {
	for _, h := range m.hazards {
		if h.ID == id {
			return &h, nil
		}
	}
	return nil, nil
}

func (m *mockRepo) ListByLocation(ctx context.Context, location string, limit int) ([]models.Hazard, error) {
	var out []models.Hazard
	for _, h := range m.hazards {
		if h.Location == location {
			out = append(out, h)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) TopSevereByLocation(ctx context.Context, location string, limit int) ([]models.Hazard, error) {
	out, _ := m.ListByLocation(ctx, location, 0)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].EffectiveSeverity(), out[j].EffectiveSeverity()
		if si != sj {
			return si > sj
		}
		return out[i].CreatedAt > out[j].CreatedAt
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockRepo) Locations(ctx context.Context, filter string) ([]string, error) {
	var out []string
	for _, h := range m.hazards {
		if filter == "" || strings.Contains(strings.ToLower(h.Location), strings.ToLower(filter)) {
			out = append(out, h.Location)
		}
	}
	return out, nil
}

func (m *mockRepo) HazardTypes(ctx context.Context, location string) ([]string, error) {
	var out []string
	for _, h := range m.hazards {
		if location == "" || h.Location == location {
			out = append(out, h.HazardType)
		}
	}
	return out, nil
}

func (m *mockRepo) Statuses(ctx context.Context, location string) ([]string, error) {
	var out []string
	for _, h := range m.hazards {
		if location == "" || h.Location == location {
			out = append(out, h.Status)
		}
	}
	return out, nil
}

func seededRepo() *mockRepo {
	return &mockRepo{hazards: []models.Hazard{
		{ID: "h1", HazardType: "pothole", Severity: models.SeverityPtr(8), Location: "Maple Ave", Status: "open", CreatedAt: "2026-08-01T09:00:00Z"},
		{ID: "h2", HazardType: "pothole", Severity: models.SeverityPtr(4), Location: "Maple Ave", Status: "open", CreatedAt: "2026-08-05T09:00:00Z"},
		{ID: "h3", HazardType: "flooding", Severity: models.SeverityPtr(6), Location: "Maple Ave", Status: "resolved", CreatedAt: "2026-08-03T09:00:00Z"},
		{ID: "h4", HazardType: "debris", Severity: models.SeverityPtr(2), Location: "Oak St", Status: "open", CreatedAt: "2026-08-02T09:00:00Z"},
	}}
}

func TestQueryHazards_UnknownKind(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	_, err := svc.QueryHazards(context.Background(), "hazard_heatmap", "", 10)
	if !engine.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, kind := range []string{"area_with_most_hazards", "top_severe_in_area", "counts_by_type", "open_vs_resolved"} {
		if !strings.Contains(err.Error(), kind) {
			t.Errorf("error should name kind %s: %v", kind, err)
		}
	}
}

func TestQueryHazards_AreaWithMostHazards(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	res, err := svc.QueryHazards(context.Background(), "area_with_most_hazards", "", 10)
	if err != nil {
		t.Fatalf("QueryHazards failed: %v", err)
	}
	top := res.Result.([]engine.LocationCount)
	if len(top) != 2 {
		t.Fatalf("expected 2 locations, got %d", len(top))
	}
	if top[0].Location != "Maple Ave" || top[0].Count != 3 {
		t.Errorf("expected Maple Ave x3 first, got %+v", top[0])
	}
}

func TestQueryHazards_AreaWithMostHazards_SubstringFilter(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	res, err := svc.QueryHazards(context.Background(), "area_with_most_hazards", "oak", 10)
	if err != nil {
		t.Fatalf("QueryHazards failed: %v", err)
	}
	top := res.Result.([]engine.LocationCount)
	if len(top) != 1 || top[0].Location != "Oak St" {
		t.Errorf("expected only Oak St, got %+v", top)
	}
}

func TestQueryHazards_TopSevereRequiresLocation(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	_, err := svc.QueryHazards(context.Background(), "top_severe_in_area", "", 10)
	if !engine.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestQueryHazards_TopSevereInArea(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	res, err := svc.QueryHazards(context.Background(), "top_severe_in_area", "Maple Ave", 2)
	if err != nil {
		t.Fatalf("QueryHazards failed: %v", err)
	}
	rows := res.Result.([]models.Hazard)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != "h1" || rows[1].ID != "h3" {
		t.Errorf("expected severity order h1, h3; got %s, %s", rows[0].ID, rows[1].ID)
	}
}

func TestQueryHazards_CountsByTypeWithLocation(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	res, err := svc.QueryHazards(context.Background(), "counts_by_type", "Maple Ave", 10)
	if err != nil {
		t.Fatalf("QueryHazards failed: %v", err)
	}
	counts := res.Result.([]engine.TypeCount)
	if len(counts) != 2 {
		t.Fatalf("expected 2 type groups, got %d", len(counts))
	}
	if counts[0].HazardType != "pothole" || counts[0].Count != 2 {
		t.Errorf("expected pothole x2 first, got %+v", counts[0])
	}
}

func TestQueryHazards_OpenVsResolved(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	res, err := svc.QueryHazards(context.Background(), "open_vs_resolved", "", 10)
	if err != nil {
		t.Fatalf("QueryHazards failed: %v", err)
	}
	counts := res.Result.([]engine.StatusCount)
	if len(counts) != 2 {
		t.Fatalf("expected 2 status groups, got %d", len(counts))
	}
	if counts[0].Status != "open" || counts[0].Count != 3 {
		t.Errorf("expected open x3 first, got %+v", counts[0])
	}
}

func TestEstimateRepairPlan_OK(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	est, err := svc.EstimateRepairPlan(context.Background(), "h1")
	if err != nil {
		t.Fatalf("EstimateRepairPlan failed: %v", err)
	}
	if est.Hazard.ID != "h1" {
		t.Errorf("expected hazard h1 echoed, got %s", est.Hazard.ID)
	}
	if math.Abs(est.RepairPlan.Costs.TotalEstimate-1165.73) > 1e-6 {
		t.Errorf("expected total 1165.73 for pothole severity 8, got %v", est.RepairPlan.Costs.TotalEstimate)
	}
}

func TestEstimateRepairPlan_NotFound(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	_, err := svc.EstimateRepairPlan(context.Background(), "nope")
	if !engine.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error should name the id: %v", err)
	}
}

func TestEstimateRepairPlan_MissingID(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	_, err := svc.EstimateRepairPlan(context.Background(), "")
	if !engine.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProjectWorsening_RequiresHazardOrLocation(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	_, err := svc.ProjectWorsening(context.Background(), ProjectionRequest{HorizonDays: 30})
	if !engine.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestProjectWorsening_HazardMode(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC))
	svc := NewService(seededRepo(), clock, nil)

	res, err := svc.ProjectWorsening(context.Background(), ProjectionRequest{HazardID: "h1", HorizonDays: 30})
	if err != nil {
		t.Fatalf("ProjectWorsening failed: %v", err)
	}
	p, ok := res.(*engine.HazardProjection)
	if !ok {
		t.Fatalf("expected *engine.HazardProjection, got %T", res)
	}
	if p.Inputs.AgeDays == nil || *p.Inputs.AgeDays != 10 {
		t.Errorf("expected age 10 days, got %v", p.Inputs.AgeDays)
	}
	if p.Projection.ProjectedSeverity > 10.0 {
		t.Errorf("projected severity exceeded cap: %v", p.Projection.ProjectedSeverity)
	}
}

func TestProjectWorsening_HazardNotFound(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	_, err := svc.ProjectWorsening(context.Background(), ProjectionRequest{HazardID: "missing"})
	if !engine.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestProjectWorsening_AreaMode(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	res, err := svc.ProjectWorsening(context.Background(), ProjectionRequest{Location: "Maple Ave", HorizonDays: 30})
	if err != nil {
		t.Fatalf("ProjectWorsening failed: %v", err)
	}
	p, ok := res.(*engine.AreaProjection)
	if !ok {
		t.Fatalf("expected *engine.AreaProjection, got %T", res)
	}
	if p.Summary == nil || p.Summary.HazardCount != 3 {
		t.Fatalf("expected 3 hazards summarized, got %+v", p.Summary)
	}
}

func TestProjectWorsening_EmptyAreaIsNotAnError(t *testing.T) {
	svc := NewService(seededRepo(), nil, nil)

	res, err := svc.ProjectWorsening(context.Background(), ProjectionRequest{Location: "Ghost Town"})
	if err != nil {
		t.Fatalf("expected success for empty area, got %v", err)
	}
	p := res.(*engine.AreaProjection)
	if p.Note != "no hazards found" {
		t.Errorf("expected explicit no-hazards note, got %q", p.Note)
	}
}

func TestMetrics_CountInvocations(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetricsWith(reg)
	svc := NewService(seededRepo(), nil, metrics)

	svc.EstimateRepairPlan(context.Background(), "h1")
	svc.EstimateRepairPlan(context.Background(), "missing")

	ok := testutil.ToFloat64(metrics.ToolInvocations.WithLabelValues(ToolEstimateRepairPlan, "ok"))
	notFound := testutil.ToFloat64(metrics.ToolInvocations.WithLabelValues(ToolEstimateRepairPlan, "not_found"))
	if ok != 1 || notFound != 1 {
		t.Errorf("expected 1 ok and 1 not_found invocation, got %v and %v", ok, notFound)
	}
}
