package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v2"

	"task-planner/config"
	"task-planner/internal/app"
	"task-planner/internal/model"
	"task-planner/pkg/log"
)

// appMetaKey is used to stash the runtime into cli.App metadata
const appMetaKey = "runtime"

// runtime is shared by every command. The App is built on first use so
// commands that never touch storage do not connect to it.
type runtime struct {
	cfg    *config.Config
	logger log.Logger
	scope  model.Scope
	out    printer
	app    *app.App
}

func (rt *runtime) application(ctx context.Context) (*app.App, error) {
	if rt.app != nil {
		return rt.app, nil
	}
	a, err := app.New(ctx, rt.cfg, rt.logger)
	if err != nil {
		return nil, err
	}
	rt.app = a
	return a, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "planner",
		Usage: "Capture tasks in plain words, track tasks and habits",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "path to config file", EnvVars: []string{"PLANNER_CONFIG"}},
			&cli.StringFlag{Name: "profile", Aliases: []string{"p"}, Usage: "profile (task owner)", EnvVars: []string{"PLANNER_PROFILE"}},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: formatText, Usage: "output format: text|json|yaml"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "log at debug level"},
		},
		Before: before,
		After: func(c *cli.Context) error {
			if rt := getRuntime(c); rt != nil && rt.app != nil {
				return rt.app.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			parseCommand(),
			addCommand(),
			taskCommand(),
			statsCommand(),
			habitCommand(),
			replCommand(),
			mcpCommand(),
			calendarCommand(),
		},
	}
}

func before(c *cli.Context) error {
	out, err := newPrinter(c.App.Writer, c.String("output"))
	if err != nil {
		return err
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	// Logs go to stderr; keep the CLI quiet unless asked.
	level := "warn"
	if c.Bool("verbose") {
		level = "debug"
	}
	logger := log.Init(log.ZapConfig{
		Level:    level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[appMetaKey] = &runtime{
		cfg:    cfg,
		logger: logger,
		scope:  model.Scope{UserID: c.String("profile")},
		out:    out,
	}
	return nil
}

func getRuntime(c *cli.Context) *runtime {
	if c.App == nil || c.App.Metadata == nil {
		return nil
	}
	rt, _ := c.App.Metadata[appMetaKey].(*runtime)
	return rt
}
