package ctl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klokku/eventcal/pkg/calendar"
	"github.com/urfave/cli"
)

var GridCmd = cli.Command{
	Name:  "grid",
	Usage: "Prints the month grid, days with events are marked with *",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "month",
			Usage: "Month in YYYY-MM format, the current month by default",
		},
	},
	Action: printGrid,
}

func printGrid(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	now := e.clock.Now()
	month := now
	if m := c.String("month"); m != "" {
		if month, err = calendar.ParseMonth(m, now.Location()); err != nil {
			return err
		}
	}

	grid := calendar.MonthGrid(month, now)
	grid.MarkEvents(e.store.DateKeys())
	renderGrid(c.App.Writer, grid)
	return nil
}

// renderGrid prints one week per line. Today is bracketed and days of the
// neighbouring months are left blank.
func renderGrid(w io.Writer, grid calendar.Grid) {
	fmt.Fprintln(w, grid.Month.Format("January 2006"))
	header := make([]string, 0, len(calendar.Weekdays))
	for _, d := range calendar.Weekdays {
		header = append(header, fmt.Sprintf("%-5s", d))
	}
	fmt.Fprintln(w, strings.TrimRight(strings.Join(header, ""), " "))

	for _, week := range grid.Weeks() {
		var line strings.Builder
		for _, d := range week {
			label := ""
			if d.InMonth {
				label = strconv.Itoa(d.Date.Day())
				if d.Today {
					label = "[" + label + "]"
				}
				if d.HasEvents {
					label += "*"
				}
			}
			fmt.Fprintf(&line, "%-5s", label)
		}
		fmt.Fprintln(w, strings.TrimRight(line.String(), " "))
	}
}
