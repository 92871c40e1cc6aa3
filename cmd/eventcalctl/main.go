package main

import (
	"fmt"
	"os"

	"github.com/klokku/eventcal/internal/ctl"
)

var version = "(unknown)"

func main() {
	ctl.AppVersion = version
	app := ctl.NewApp()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
