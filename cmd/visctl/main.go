package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"visrender/internal/config"
	"visrender/internal/logger"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "visctl"
	app.Version = config.GetVersion()
	app.Usage = "render charts and manage stored chart artifacts"
	app.EnableBashCompletion = true
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "log-level",
			Value: "warn",
			Usage: "log level (debug, info, warn, error)",
		},
	}
	app.Before = func(c *cli.Context) error {
		// stdout may carry the rendered artifact
		errWriter := c.App.ErrWriter
		if errWriter == nil {
			errWriter = os.Stderr
		}
		logger.GetGlobalLogger().SetOutput(errWriter)
		return logger.Configure(c.String("log-level"), "text", "local")
	}
	app.Commands = []*cli.Command{
		renderCommand,
		renderHTMLCommand,
		sweepCommand,
		fetchRuntimeCommand,
	}
	return app
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		logger.Component("cli").Fatal("Command failed", err)
	}
}
