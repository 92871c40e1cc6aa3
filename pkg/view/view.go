// Package view keeps what the calendar currently shows: the displayed month,
// the selected date and the filters applied to the selected date's events.
package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/klokku/eventcal/pkg/calendar"
	"github.com/klokku/eventcal/pkg/event"
)

var ErrDateOutsideMonth = errors.New("date is outside of the displayed month")
var ErrInvalidCategory = errors.New("invalid category")

type State struct {
	// DisplayedMonth is always the first day of a month, at midnight.
	DisplayedMonth time.Time
	// SelectedDate is a date-key, empty when nothing is selected.
	SelectedDate   string
	ActiveCategory event.Type
	SearchKeyword  string
}

// NewState shows today's month with today selected and the Work tab active.
func NewState(today time.Time) State {
	return State{
		DisplayedMonth: calendar.StartOfMonth(today),
		SelectedDate:   event.DateKey(today),
		ActiveCategory: event.TypeWork,
	}
}

func (s *State) SetDisplayedMonth(month time.Time) {
	s.DisplayedMonth = calendar.StartOfMonth(month)
}

// ShiftMonth moves the displayed month n months forward, or backward for
// negative n. The selection is kept.
func (s *State) ShiftMonth(n int) {
	s.DisplayedMonth = calendar.ShiftMonth(s.DisplayedMonth, n)
}

// SelectDate selects a day of the displayed month. Leading and trailing days
// of the neighbouring months are not selectable.
func (s *State) SelectDate(dateKey string) error {
	day, err := event.ParseDateKey(dateKey, time.UTC)
	if err != nil {
		return err
	}
	if day.Year() != s.DisplayedMonth.Year() || day.Month() != s.DisplayedMonth.Month() {
		return fmt.Errorf("%w: %s", ErrDateOutsideMonth, dateKey)
	}
	s.SelectedDate = dateKey
	return nil
}

func (s *State) ClearSelection() {
	s.SelectedDate = ""
}

func (s *State) SetCategory(category event.Type) error {
	if !category.Valid() {
		return fmt.Errorf("%w %q", ErrInvalidCategory, category)
	}
	s.ActiveCategory = category
	return nil
}

func (s *State) SetSearch(keyword string) {
	s.SearchKeyword = keyword
}

// Visible filters events down to the active category and, when a keyword is
// set, to events whose name or description contains it, ignoring case.
func (s State) Visible(events []event.Event) []event.Event {
	keyword := strings.ToLower(s.SearchKeyword)
	visible := make([]event.Event, 0, len(events))
	for _, e := range events {
		if e.Type != s.ActiveCategory {
			continue
		}
		if strings.Contains(strings.ToLower(e.Name), keyword) ||
			strings.Contains(strings.ToLower(e.Description), keyword) {
			visible = append(visible, e)
		}
	}
	return visible
}

// ExportBaseName names export files after the displayed month, e.g. events-June-2024.
func (s State) ExportBaseName() string {
	return "events-" + s.DisplayedMonth.Format("January-2006")
}
