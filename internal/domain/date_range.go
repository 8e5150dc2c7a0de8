package domain

import (
	"fmt"
	"time"
)

// DateRange is inclusive on both ends, day precision.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateDay(start)
	end = truncateDay(end)
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("invalid date range: end %s before start %s", end.Format(time.DateOnly), start.Format(time.DateOnly))
	}
	return DateRange{Start: start, End: end}, nil
}

// ParseDateRange parses two ISO dates (YYYY-MM-DD).
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(time.DateOnly, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(time.DateOnly, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewDateRange(s, e)
}

// LookbackRange returns the days before today, ending yesterday.
func LookbackRange(now time.Time, days int) DateRange {
	if days < 1 {
		days = 1
	}
	end := truncateDay(now).AddDate(0, 0, -1)
	return DateRange{Start: end.AddDate(0, 0, -(days - 1)), End: end}
}

// Chunks splits the range into consecutive windows of at most days days.
func (r DateRange) Chunks(days int) []DateRange {
	if days < 1 {
		days = 1
	}

	var windows []DateRange
	for start := r.Start; !start.After(r.End); start = start.AddDate(0, 0, days) {
		end := start.AddDate(0, 0, days-1)
		if end.After(r.End) {
			end = r.End
		}
		windows = append(windows, DateRange{Start: start, End: end})
	}
	return windows
}

func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
