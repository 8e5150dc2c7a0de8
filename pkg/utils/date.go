package utils

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// layouts returned by the platform APIs, tried before dateparse
var apiLayouts = []string{
	time.DateOnly,
	time.DateTime,
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05.999999999-07:00",
}

// ParseAnyDate accepts the loose formats platforms and spreadsheets emit
// (ISO timestamps, "2024-03-01T00:00:00+0000", "01/03/2024", "1 Mar 2024").
// Unparseable or empty input returns the zero time and false.
func ParseAnyDate(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range apiLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		t, err := dateparse.ParseIn(s, time.UTC)
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// DateOnly drops the clock part, keeping the calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
