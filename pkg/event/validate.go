package event

import (
	"errors"
	"regexp"
)

var ErrValidation = errors.New("validation error")

var clockRx = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

const (
	ReasonRequired  = "All fields are required except description."
	ReasonType      = "Event type must be one of Work, Personal, Others."
	ReasonFormat    = "Times must use the HH:MM format."
	ReasonTimeOrder = "End time must be after start time."
	ReasonOverlap   = "This event overlaps with an existing event."
)

// ValidationError carries the human readable reason a candidate was rejected.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Validate checks a candidate against the events already stored for the same
// date. excludingID names the event being edited so it does not collide with
// its own slot; pass "" when adding. The first failing check wins.
func Validate(candidate Fields, existing []Event, excludingID string) error {
	if candidate.Name == "" || candidate.Type == "" || candidate.StartTime == "" || candidate.EndTime == "" {
		return &ValidationError{Reason: ReasonRequired}
	}
	if !candidate.Type.Valid() {
		return &ValidationError{Reason: ReasonType}
	}
	if !clockRx.MatchString(candidate.StartTime) || !clockRx.MatchString(candidate.EndTime) {
		return &ValidationError{Reason: ReasonFormat}
	}

	if candidate.StartTime >= candidate.EndTime {
		return &ValidationError{Reason: ReasonTimeOrder}
	}

	for _, e := range existing {
		if excludingID != "" && e.ID == excludingID {
			continue
		}
		if Overlaps(candidate.StartTime, candidate.EndTime, e.StartTime, e.EndTime) {
			return &ValidationError{Reason: ReasonOverlap}
		}
	}
	return nil
}

// Overlaps reports whether [s1,e1) and [s2,e2) share any instant. Intervals
// that only touch at an endpoint do not overlap.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}
