package view

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/klokku/eventcal/pkg/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, time.June, 10, 15, 4, 0, 0, time.UTC)

func TestNewState(t *testing.T) {
	s := NewState(today)

	assert.Equal(t, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), s.DisplayedMonth)
	assert.Equal(t, "2024-06-10", s.SelectedDate)
	assert.Equal(t, event.TypeWork, s.ActiveCategory)
	assert.Empty(t, s.SearchKeyword)
}

func TestState_ShiftMonth(t *testing.T) {
	s := NewState(time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC))

	s.ShiftMonth(1)
	assert.Equal(t, time.February, s.DisplayedMonth.Month())

	s.ShiftMonth(-2)
	assert.Equal(t, time.December, s.DisplayedMonth.Month())
	assert.Equal(t, 2023, s.DisplayedMonth.Year())

	assert.Equal(t, "2024-01-31", s.SelectedDate, "selection survives navigation")
}

func TestState_ShiftMonthAcrossSkippedMidnight(t *testing.T) {
	asuncion, err := time.LoadLocation("America/Asuncion")
	require.NoError(t, err)
	s := NewState(time.Date(2023, time.September, 20, 12, 0, 0, 0, asuncion))

	s.ShiftMonth(1)

	assert.Equal(t, time.October, s.DisplayedMonth.Month())
	assert.Equal(t, 1, s.DisplayedMonth.Day())
	require.NoError(t, s.SelectDate("2023-10-01"))
	assert.ErrorIs(t, s.SelectDate("2023-09-30"), ErrDateOutsideMonth)
	assert.Equal(t, "events-October-2023", s.ExportBaseName())
}

func TestState_SetDisplayedMonth(t *testing.T) {
	s := NewState(today)

	s.SetDisplayedMonth(time.Date(2025, time.March, 17, 8, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), s.DisplayedMonth)
}

func TestState_SelectDate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr error
	}{
		{"day of the month", "2024-06-30", nil},
		{"leading day", "2024-05-31", ErrDateOutsideMonth},
		{"trailing day", "2024-07-01", ErrDateOutsideMonth},
		{"same month other year", "2023-06-10", ErrDateOutsideMonth},
		{"malformed", "2024-6-1", event.ErrInvalidDateKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(today)

			err := s.SelectDate(tt.key)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, "2024-06-10", s.SelectedDate)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.key, s.SelectedDate)
		})
	}
}

func TestState_ClearSelection(t *testing.T) {
	s := NewState(today)

	s.ClearSelection()

	assert.Empty(t, s.SelectedDate)
}

func TestState_SetCategory(t *testing.T) {
	s := NewState(today)

	require.NoError(t, s.SetCategory(event.TypePersonal))
	assert.Equal(t, event.TypePersonal, s.ActiveCategory)

	err := s.SetCategory("Holiday")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Equal(t, event.TypePersonal, s.ActiveCategory)
}

func TestState_Visible(t *testing.T) {
	events := []event.Event{
		{ID: "1", Name: "Standup", Type: event.TypeWork, StartTime: "09:00", EndTime: "09:15"},
		{ID: "2", Name: "Gym", Type: event.TypePersonal, StartTime: "07:00", EndTime: "08:00"},
		{ID: "3", Name: "Review", Type: event.TypeWork, StartTime: "14:00", EndTime: "15:00", Description: "Quarterly PLANNING"},
		{ID: "4", Name: "Planning poker", Type: event.TypeWork, StartTime: "16:00", EndTime: "17:00"},
	}

	tests := []struct {
		name     string
		category event.Type
		search   string
		wantIDs  []string
	}{
		{"category only", event.TypeWork, "", []string{"1", "3", "4"}},
		{"other category", event.TypePersonal, "", []string{"2"}},
		{"keyword in name or description, any case", event.TypeWork, "planning", []string{"3", "4"}},
		{"keyword of another category", event.TypeWork, "gym", []string{}},
		{"no events of category", event.TypeOthers, "", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(today)
			require.NoError(t, s.SetCategory(tt.category))
			s.SetSearch(tt.search)

			ids := []string{}
			for _, e := range s.Visible(events) {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestState_ExportBaseName(t *testing.T) {
	s := NewState(today)
	assert.Equal(t, "events-June-2024", s.ExportBaseName())

	s.ShiftMonth(7)
	assert.Equal(t, "events-January-2025", s.ExportBaseName())
}

func TestSession_ApplyIsAllOrNothing(t *testing.T) {
	session := NewSession(NewState(today))
	shift := 1
	outside := "2024-06-10"
	search := "demo"

	_, err := session.Apply(Update{Shift: &shift, SelectedDate: &outside, Search: &search})

	assert.ErrorIs(t, err, ErrDateOutsideMonth)
	assert.Equal(t, NewState(today), session.State())
}

func TestSession_Apply(t *testing.T) {
	session := NewSession(NewState(today))
	month := time.Date(2024, time.August, 1, 0, 0, 0, 0, time.UTC)
	selected := "2024-08-15"
	category := event.TypeOthers

	state, err := session.Apply(Update{Month: &month, SelectedDate: &selected, Category: &category})
	require.NoError(t, err)

	assert.Equal(t, month, state.DisplayedMonth)
	assert.Equal(t, "2024-08-15", state.SelectedDate)
	assert.Equal(t, event.TypeOthers, state.ActiveCategory)
	assert.Equal(t, state, session.State())
	assert.Equal(t, month, session.DisplayedMonth())

	cleared := ""
	state, err = session.Apply(Update{SelectedDate: &cleared})
	require.NoError(t, err)
	assert.Empty(t, state.SelectedDate)
}
