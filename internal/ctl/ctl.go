// Package ctl implements eventcalctl, the command line client working
// directly on the configured event storage.
package ctl

import (
	"context"
	"fmt"

	"github.com/klokku/eventcal/internal/config"
	"github.com/klokku/eventcal/internal/storage"
	"github.com/klokku/eventcal/internal/utils"
	"github.com/klokku/eventcal/pkg/event"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const AppName = "eventcalctl"

var AppVersion = "(unknown)"

func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Manage calendar events from the command line"
	app.Version = AppVersion
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path of the YAML configuration file",
			Value: config.DefaultPath,
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Output debug messages",
		},
	}
	app.Before = func(c *cli.Context) error {
		if c.GlobalBool("debug") {
			log.SetLevel(log.DebugLevel)
		} else {
			log.SetLevel(log.WarnLevel)
		}
		return nil
	}
	app.Commands = []cli.Command{
		ListCmd,
		AddCmd,
		EditCmd,
		DeleteCmd,
		GridCmd,
		ExportCmd,
	}
	return app
}

type env struct {
	storage storage.LocalStorage
	store   *event.Store
	service *event.ServiceImpl
	clock   utils.Clock
}

func openEnv(c *cli.Context) (*env, error) {
	cfg, err := config.Load(c.GlobalString("config"))
	if err != nil {
		return nil, fmt.Errorf("unable to load configuration: %w", err)
	}
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}

	s, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("unable to open storage: %w", err)
	}
	store, err := event.NewStore(context.Background(), s, cfg.Storage.Key, nil)
	if err != nil {
		s.Close()
		return nil, err
	}

	return &env{
		storage: s,
		store:   store,
		service: event.NewService(store),
		clock:   utils.SystemClock{Location: loc},
	}, nil
}

func (e *env) Close() {
	if err := e.storage.Close(); err != nil {
		log.Errorf("failed to close storage: %v", err)
	}
}

// dateArg returns the --date flag, today when unset.
func (e *env) dateArg(c *cli.Context) string {
	if d := c.String("date"); d != "" {
		return d
	}
	return event.DateKey(utils.Today(e.clock))
}
