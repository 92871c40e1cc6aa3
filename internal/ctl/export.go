package ctl

import (
	"fmt"
	"os"

	"github.com/klokku/eventcal/pkg/export"
	"github.com/klokku/eventcal/pkg/view"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var ExportCmd = cli.Command{
	Name:  "export",
	Usage: "Exports all events as json, csv or ics",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "format",
			Usage: "json, csv or ics",
			Value: string(export.FormatJSON),
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "Output file, \"auto\" names it after the current month, standard output by default",
		},
	},
	Action: exportEvents,
}

func exportEvents(c *cli.Context) error {
	e, err := openEnv(c)
	if err != nil {
		return err
	}
	defer e.Close()

	renderer, err := export.NewRenderer(export.Format(c.String("format")), e.clock)
	if err != nil {
		return err
	}
	body, err := renderer.Render(e.store.Snapshot())
	if err != nil {
		return err
	}

	out := c.String("out")
	if out == "" {
		_, err := c.App.Writer.Write(body)
		return err
	}
	if out == "auto" {
		out = export.FileName(view.NewState(e.clock.Now()).ExportBaseName(), renderer)
	}
	if err := os.WriteFile(out, body, 0644); err != nil {
		return fmt.Errorf("unable to write %s: %w", out, err)
	}
	log.Infof("Exported events to %s", out)
	fmt.Fprintln(c.App.Writer, out)
	return nil
}
