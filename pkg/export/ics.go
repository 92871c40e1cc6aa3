package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/klokku/eventcal/internal/utils"
	"github.com/klokku/eventcal/pkg/event"
	log "github.com/sirupsen/logrus"
)

const icsProductID = "-//eventcal//Event Calendar//EN"

type IcsRendererImpl struct {
	clock utils.Clock
}

func NewIcsRenderer(clock utils.Clock) *IcsRendererImpl {
	return &IcsRendererImpl{clock: clock}
}

// Render writes one VEVENT per event. Start and end are floating times taken
// verbatim from the event, events carry no timezone of their own.
func (r *IcsRendererImpl) Render(events map[string][]event.Event) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, icsProductID)

	stamp := r.clock.Now().UTC()
	for _, dateKey := range sortedDateKeys(events) {
		day, err := event.ParseDateKey(dateKey, time.UTC)
		if err != nil {
			log.Warnf("skipping events of %s: %v", dateKey, err)
			continue
		}
		for _, e := range events[dateKey] {
			vevent, err := toVEvent(day, e, stamp)
			if err != nil {
				return nil, fmt.Errorf("failed to convert event %s: %w", e.ID, err)
			}
			cal.Children = append(cal.Children, vevent)
		}
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode iCalendar: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *IcsRendererImpl) ContentType() string {
	return "text/calendar; charset=utf-8"
}

func (r *IcsRendererImpl) Extension() string {
	return "ics"
}

func toVEvent(day time.Time, e event.Event, stamp time.Time) (*ical.Component, error) {
	start, err := atClock(day, e.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := atClock(day, e.EndTime)
	if err != nil {
		return nil, err
	}

	vevent := ical.NewComponent(ical.CompEvent)
	vevent.Props.SetText(ical.PropUID, e.ID+"@eventcal")
	vevent.Props.SetText(ical.PropSummary, e.Name)
	if e.Description != "" {
		vevent.Props.SetText(ical.PropDescription, e.Description)
	}
	vevent.Props.SetText(ical.PropCategories, string(e.Type))
	vevent.Props.Set(floating(ical.PropDateTimeStart, start))
	vevent.Props.Set(floating(ical.PropDateTimeEnd, end))
	vevent.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	return vevent, nil
}

// floating formats a wall clock date-time without zone, so no location can
// move times that fall into a daylight saving gap.
func floating(name string, civil time.Time) *ical.Prop {
	prop := ical.NewProp(name)
	prop.Value = civil.Format("20060102T150405")
	return prop
}

// atClock places hhmm on day; day is a civil date in UTC.
func atClock(day time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location()), nil
}
