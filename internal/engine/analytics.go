package engine

import (
	"sort"
	"strings"
)

// AnalyticsKind is the closed set of analytic questions the engine answers.
type AnalyticsKind string

const (
	KindAreaWithMostHazards AnalyticsKind = "area_with_most_hazards"
	KindTopSevereInArea     AnalyticsKind = "top_severe_in_area"
	KindCountsByType        AnalyticsKind = "counts_by_type"
	KindOpenVsResolved      AnalyticsKind = "open_vs_resolved"
)

// ParseAnalyticsKind dispatches a caller-supplied kind tag, case-insensitively.
func ParseAnalyticsKind(s string) (AnalyticsKind, error) {
	switch k := AnalyticsKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAreaWithMostHazards, KindTopSevereInArea, KindCountsByType, KindOpenVsResolved:
		return k, nil
	}
	return "", Validationf("unknown kind %q. Use: area_with_most_hazards | top_severe_in_area | counts_by_type | open_vs_resolved", s)
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

type TypeCount struct {
	HazardType string `json:"hazard_type"`
	Count      int    `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// AnalyticsResult is the envelope every query_hazards answer travels in.
type AnalyticsResult struct {
	Question string `json:"question"`
	Location string `json:"location,omitempty"`
	Result   any    `json:"result"`
}

// The store contract only offers filters, ordering and field projection, so
// grouping happens here over projected column values.

// TopLocations counts hazards per location and returns the top limit
// locations by count. Ties break lexicographically for determinism.
func TopLocations(locations []string, limit int) []LocationCount {
	counts := countValues(locations)
	out := make([]LocationCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, LocationCount{Location: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Location < out[j].Location
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// CountsByType groups projected hazard_type values. No limit or ordering is
// promised to callers; counts are sorted descending for stable output.
func CountsByType(types []string) []TypeCount {
	counts := countValues(types)
	out := make([]TypeCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, TypeCount{HazardType: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].HazardType < out[j].HazardType
	})
	return out
}

// CountsByStatus groups projected status values (open vs resolved and
// whatever other states the table carries).
func CountsByStatus(statuses []string) []StatusCount {
	counts := countValues(statuses)
	out := make([]StatusCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, StatusCount{Status: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func countValues(values []string) map[string]int {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	return counts
}
