package engine

import (
	"strings"
	"time"
)

// timestampLayouts covers the ISO-8601-ish shapes seen in the created_at
// column: full RFC 3339 (trailing Z or numeric offset), offset-less
// date-times (assumed UTC), and bare dates. Fractional seconds are accepted
// by time.Parse without a layout entry.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a reported created_at value. Malformed timestamps are
// an expected data-quality condition, so failure is reported as ok=false and
// never as an error.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
