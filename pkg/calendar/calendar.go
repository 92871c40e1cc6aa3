// Package calendar derives the month grid shown by the calendar view.
package calendar

import (
	"fmt"
	"time"

	"github.com/klokku/eventcal/pkg/event"
)

// MonthLayout is the YYYY-MM form used to address a month.
const MonthLayout = "2006-01"

// Weekdays are the column headers, weeks start on Sunday.
var Weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

type Day struct {
	Date      time.Time
	Key       string
	InMonth   bool
	Today     bool
	Weekend   bool
	HasEvents bool
}

type Grid struct {
	// Month is midnight of the first day of the displayed month.
	Month time.Time
	Days  []Day
}

// MonthGrid returns the days from the Sunday starting the week of the first
// of ref's month up to the Saturday ending the week of its last day, so the
// grid always holds complete weeks. Days are computed in ref's location.
func MonthGrid(ref time.Time, today time.Time) Grid {
	loc := ref.Location()
	// day arithmetic runs on civil dates in UTC, local midnights may not exist
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	start := first.AddDate(0, 0, -int(first.Weekday()))
	count := int(last.Sub(start).Hours()/24) + 1 + int(time.Saturday-last.Weekday())

	todayKey := event.DateKey(today.In(loc))

	days := make([]Day, 0, count)
	for i := 0; i < count; i++ {
		civil := start.AddDate(0, 0, i)
		key := event.DateKey(civil)
		days = append(days, Day{
			Date:    StartOfDay(civil.Year(), civil.Month(), civil.Day(), loc),
			Key:     key,
			InMonth: civil.Month() == first.Month(),
			Today:   key == todayKey,
			Weekend: civil.Weekday() == time.Sunday || civil.Weekday() == time.Saturday,
		})
	}
	return Grid{Month: StartOfMonth(ref), Days: days}
}

// StartOfDay returns the first instant of the given day in loc. Where a
// daylight saving jump skips midnight that is the end of the gap.
func StartOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	for t.Day() != day {
		t = t.Add(15 * time.Minute)
	}
	return t
}

// StartOfMonth returns the first instant of the first day of t's month in t's location.
func StartOfMonth(t time.Time) time.Time {
	return StartOfDay(t.Year(), t.Month(), 1, t.Location())
}

// ShiftMonth returns the start of the month n months after t's month.
func ShiftMonth(t time.Time, n int) time.Time {
	civil := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
	return StartOfDay(civil.Year(), civil.Month(), 1, t.Location())
}

// ParseMonth parses a YYYY-MM month into the first day of that month in loc.
func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return StartOfDay(t.Year(), t.Month(), 1, loc), nil
}

// Weeks splits the grid into rows of seven days.
func (g Grid) Weeks() [][]Day {
	weeks := make([][]Day, 0, len(g.Days)/7)
	for i := 0; i+7 <= len(g.Days); i += 7 {
		weeks = append(weeks, g.Days[i:i+7])
	}
	return weeks
}

// MarkEvents flags the days whose date-key is in dateKeys.
func (g Grid) MarkEvents(dateKeys []string) {
	withEvents := make(map[string]struct{}, len(dateKeys))
	for _, k := range dateKeys {
		withEvents[k] = struct{}{}
	}
	for i := range g.Days {
		_, g.Days[i].HasEvents = withEvents[g.Days[i].Key]
	}
}

// Contains reports whether key is a day of the grid's own month.
func (g Grid) Contains(key string) bool {
	for _, d := range g.Days {
		if d.Key == key {
			return d.InMonth
		}
	}
	return false
}
