package ctl

import (
	"context"
	"fmt"
	"io"

	"github.com/klokku/eventcal/pkg/event"
	"github.com/klokku/eventcal/pkg/view"
	"github.com/urfave/cli"
)

var dateFlag = &cli.StringFlag{
	Name:  "date",
	Usage: "Date in YYYY-MM-DD format, today by default",
}

var idFlag = &cli.StringFlag{
	Name:  "id",
	Usage: "Event id",
}

func fieldFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Event name"},
		&cli.StringFlag{Name: "type", Usage: "Work, Personal or Others"},
		&cli.StringFlag{Name: "start", Usage: "Start time, HH:MM"},
		&cli.StringFlag{Name: "end", Usage: "End time, HH:MM"},
		&cli.StringFlag{Name: "description", Usage: "Optional description"},
	}
}

var ListCmd = cli.Command{
	Name:  "list",
	Usage: "Lists the events of a date",
	Flags: []cli.Flag{
		dateFlag,
		&cli.StringFlag{
			Name:  "category",
			Usage: "Only events of this type",
		},
		&cli.StringFlag{
			Name:  "search",
			Usage: "Only events whose name or description contains this keyword",
		},
	},
	Action: listEvents,
}

var AddCmd = cli.Command{
	Name:   "add",
	Usage:  "Adds an event to a date",
	Flags:  append([]cli.Flag{dateFlag}, fieldFlags()...),
	Action: addEvent,
}

var EditCmd = cli.Command{
	Name:   "edit",
	Usage:  "Edits an event, fields that are not given are kept",
	Flags:  append([]cli.Flag{dateFlag, idFlag}, fieldFlags()...),
	Action: editEvent,
}

var DeleteCmd = cli.Command{
	Name:   "delete",
	Usage:  "Deletes an event",
	Flags:  []cli.Flag{dateFlag, idFlag},
	Action: deleteEvent,
}

func listEvents(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	dateKey := e.dateArg(c)
	events, err := e.service.GetEvents(dateKey)
	if err != nil {
		return err
	}

	category, keyword := c.String("category"), c.String("search")
	state := view.NewState(e.clock.Now())
	switch {
	case category != "":
		if err := state.SetCategory(event.Type(category)); err != nil {
			return err
		}
		state.SetSearch(keyword)
		events = state.Visible(events)
	case keyword != "":
		events = searchAllTypes(state, keyword, events)
	}

	if len(events) == 0 {
		fmt.Fprintf(c.App.Writer, "no events on %s\n", dateKey)
		return nil
	}
	for _, ev := range events {
		printEvent(c.App.Writer, ev)
	}
	return nil
}

// searchAllTypes applies the keyword filter to each category in turn and
// keeps the stored order.
func searchAllTypes(state view.State, keyword string, events []event.Event) []event.Event {
	state.SetSearch(keyword)
	matching := make(map[string]bool)
	for _, t := range event.Types {
		_ = state.SetCategory(t)
		for _, ev := range state.Visible(events) {
			matching[ev.ID] = true
		}
	}
	result := make([]event.Event, 0, len(matching))
	for _, ev := range events {
		if matching[ev.ID] {
			result = append(result, ev)
		}
	}
	return result
}

func addEvent(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	fields := event.Fields{}
	applyFieldFlags(c, &fields)

	created, err := e.service.AddEvent(context.Background(), e.dateArg(c), fields)
	if err != nil {
		return err
	}
	printEvent(c.App.Writer, created)
	return nil
}

func editEvent(c *cli.Context) error {
	id := c.String("id")
	if id == "" {
		return fmt.Errorf("missing --id")
	}
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	dateKey := e.dateArg(c)
	events, err := e.service.GetEvents(dateKey)
	if err != nil {
		return err
	}
	var fields event.Fields
	for _, ev := range events {
		if ev.ID == id {
			fields = ev.Fields()
		}
	}
	applyFieldFlags(c, &fields)

	updated, err := e.service.UpdateEvent(context.Background(), dateKey, id, fields)
	if err != nil {
		return err
	}
	printEvent(c.App.Writer, updated)
	return nil
}

func deleteEvent(c *cli.Context) error {
	id := c.String("id")
	if id == "" {
		return fmt.Errorf("missing --id")
	}
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	return e.service.DeleteEvent(context.Background(), e.dateArg(c), id)
}

func applyFieldFlags(c *cli.Context, fields *event.Fields) {
	if c.IsSet("name") {
		fields.Name = c.String("name")
	}
	if c.IsSet("type") {
		fields.Type = event.Type(c.String("type"))
	}
	if c.IsSet("start") {
		fields.StartTime = c.String("start")
	}
	if c.IsSet("end") {
		fields.EndTime = c.String("end")
	}
	if c.IsSet("description") {
		fields.Description = c.String("description")
	}
}

func printEvent(w io.Writer, e event.Event) {
	fmt.Fprintf(w, "%s  %s-%s  [%s] %s", e.ID, e.StartTime, e.EndTime, e.Type, e.Name)
	if e.Description != "" {
		fmt.Fprintf(w, " - %s", e.Description)
	}
	fmt.Fprintln(w)
}
