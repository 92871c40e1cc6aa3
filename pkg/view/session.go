package view

import (
	"sync"
	"time"

	"github.com/klokku/eventcal/pkg/event"
)

// Update carries the view changes of one request. Nil fields are left as they are.
type Update struct {
	Month        *time.Time
	Shift        *int
	SelectedDate *string
	Category     *event.Type
	Search       *string
}

// Session is the State shared by concurrent HTTP requests.
type Session struct {
	mu    sync.RWMutex
	state State
}

func NewSession(initial State) *Session {
	return &Session{state: initial}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) DisplayedMonth() time.Time {
	return s.State().DisplayedMonth
}

// Apply applies u atomically: month changes first, then the selection, the
// category and the search keyword. On error the state is left unchanged.
// An empty SelectedDate clears the selection.
func (s *Session) Apply(u Update) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state
	if u.Month != nil {
		next.SetDisplayedMonth(*u.Month)
	}
	if u.Shift != nil {
		next.ShiftMonth(*u.Shift)
	}
	if u.SelectedDate != nil {
		if *u.SelectedDate == "" {
			next.ClearSelection()
		} else if err := next.SelectDate(*u.SelectedDate); err != nil {
			return s.state, err
		}
	}
	if u.Category != nil {
		if err := next.SetCategory(*u.Category); err != nil {
			return s.state, err
		}
	}
	if u.Search != nil {
		next.SetSearch(*u.Search)
	}

	s.state = next
	return next, nil
}
