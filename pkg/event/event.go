package event

import (
	"errors"
	"fmt"
	"time"
)

// DateKeyLayout is the canonical YYYY-MM-DD form of a date-key.
const DateKeyLayout = "2006-01-02"

var ErrEventNotFound = errors.New("event not found")
var ErrInvalidDateKey = errors.New("invalid date key")
var ErrPersistence = errors.New("failed to persist events")

type Type string

const (
	TypeWork     Type = "Work"
	TypePersonal Type = "Personal"
	TypeOthers   Type = "Others"
)

// Types lists the categories in display order.
var Types = []Type{TypeWork, TypePersonal, TypeOthers}

func (t Type) Valid() bool {
	switch t {
	case TypeWork, TypePersonal, TypeOthers:
		return true
	}
	return false
}

// Event is a single scheduled item of a calendar day. StartTime and EndTime
// are zero padded "HH:MM" strings, so they order correctly as strings.
type Event struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        Type   `json:"type"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
}

// Fields is the user editable part of an Event.
type Fields struct {
	Name        string `json:"name"`
	Type        Type   `json:"type"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	Description string `json:"description"`
}

func (f Fields) withID(id string) Event {
	return Event{
		ID:          id,
		Name:        f.Name,
		Type:        f.Type,
		StartTime:   f.StartTime,
		EndTime:     f.EndTime,
		Description: f.Description,
	}
}

func (e Event) Fields() Fields {
	return Fields{
		Name:        e.Name,
		Type:        e.Type,
		StartTime:   e.StartTime,
		EndTime:     e.EndTime,
		Description: e.Description,
	}
}

// DateKey formats t as a date-key in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// ParseDateKey parses a canonical date-key into midnight of that day in loc.
func ParseDateKey(key string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateKeyLayout, key, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD", ErrInvalidDateKey, key)
	}
	return t, nil
}

func validDateKey(key string) error {
	_, err := ParseDateKey(key, time.UTC)
	return err
}
