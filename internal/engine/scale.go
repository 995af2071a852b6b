package engine

import "math"

// SeverityScale maps severity 0-10 to a work multiplier: gentle growth at the
// low end, capped at 3.0 so a bad report never explodes an estimate. Inputs
// outside [0,10] are coerced, not rejected.
func SeverityScale(severity int) float64 {
	s := clampInt(severity, 0, 10)
	return math.Max(0.6, math.Min(3.0, 0.6+0.25*float64(s)))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
func round3(v float64) float64 { return math.Round(v*1000) / 1000 }
func round4(v float64) float64 { return math.Round(v*10000) / 10000 }
