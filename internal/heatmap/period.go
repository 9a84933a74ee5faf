// Package heatmap implements the staffing heatmap computation: planning
// date-range periods, bucketing project milestone dates into them, and
// assembling one zero-filled row per active staff member.
package heatmap

import (
	"errors"
	"math"
	"time"
)

// ErrInvalidRange is returned when the requested range does not satisfy
// the planner precondition end > start.
var ErrInvalidRange = errors.New("heatmap: end must be after start")

// Period is one contiguous bucket of the heatmap range. Key is the period
// start formatted as YYYY-MM-DD, which sorts lexically in chronological
// order. End is normalized to the last millisecond of its day so that a
// milestone stamped anywhere on the final day still falls inside.
type Period struct {
	Key   string
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the period window, inclusive.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && !t.After(p.End)
}

// intervalDays selects the bucket width for a total day span. The
// breakpoints are a fixed display policy targeting roughly six columns;
// they are deliberately not derived.
func intervalDays(daysDiff int) int {
	switch {
	case daysDiff <= 40:
		return 7
	case daysDiff <= 70:
		return 10
	case daysDiff <= 100:
		return 15
	default:
		return 20
	}
}

// PlanPeriods partitions [start, end] into fixed-width periods, clamping
// the final period to end. Inputs are truncated to day boundaries in loc
// (UTC when loc is nil). The returned periods tile the range exactly:
// the first starts at start, the last ends at end-of-day(end), and
// consecutive periods never gap or overlap.
func PlanPeriods(start, end time.Time, loc *time.Location) ([]Period, error) {
	if loc == nil {
		loc = time.UTC
	}
	s := dayStart(start.In(loc))
	e := dayStart(end.In(loc))
	if !e.After(s) {
		return nil, ErrInvalidRange
	}

	daysDiff := int(math.Ceil(e.Sub(s).Hours() / 24))
	interval := intervalDays(daysDiff)
	numPeriods := (daysDiff + interval - 1) / interval

	periods := make([]Period, 0, numPeriods)
	for i := 0; i < numPeriods; i++ {
		cursor := s.AddDate(0, 0, i*interval)
		last := cursor.AddDate(0, 0, interval-1)
		if last.After(e) {
			last = e
		}
		periods = append(periods, Period{
			Key:   cursor.Format("2006-01-02"),
			Start: cursor,
			End:   endOfDay(last),
		})
	}
	return periods, nil
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}
