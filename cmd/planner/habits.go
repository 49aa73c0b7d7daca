package main

import (
	"fmt"
	"io"
	"strings"

	cli "github.com/urfave/cli/v2"

	"task-planner/internal/habit"
)

func habitCommand() *cli.Command {
	return &cli.Command{
		Name:  "habit",
		Usage: "Track recurring habits",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Create a habit",
				ArgsUsage: "<title>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "frequency", Aliases: []string{"f"}, Value: "daily", Usage: "daily|weekly|monthly"},
				},
				Action: func(c *cli.Context) error {
					title := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
					rt := getRuntime(c)
					a, err := rt.application(c.Context)
					if err != nil {
						return err
					}
					out, err := a.Habits.Create(c.Context, rt.scope, habit.CreateInput{Title: title, Frequency: c.String("frequency")})
					if err != nil {
						return err
					}
					return rt.out.habit(out.Habit)
				},
			},
			{
				Name:  "list",
				Usage: "List habits",
				Action: func(c *cli.Context) error {
					rt := getRuntime(c)
					a, err := rt.application(c.Context)
					if err != nil {
						return err
					}
					out, err := a.Habits.List(c.Context, rt.scope)
					if err != nil {
						return err
					}
					return rt.out.habits(out.Habits)
				},
			},
			{
				Name:      "done",
				Aliases:   []string{"complete"},
				Usage:     "Record today's completion",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("habit id is required")
					}
					rt := getRuntime(c)
					a, err := rt.application(c.Context)
					if err != nil {
						return err
					}
					out, err := a.Habits.Complete(c.Context, rt.scope, id)
					if err != nil {
						return err
					}
					return rt.out.habit(out.Habit)
				},
			},
			{
				Name:      "delete",
				Aliases:   []string{"rm"},
				Usage:     "Delete a habit",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id := c.Args().First()
					if id == "" {
						return fmt.Errorf("habit id is required")
					}
					rt := getRuntime(c)
					a, err := rt.application(c.Context)
					if err != nil {
						return err
					}
					if err := a.Habits.Delete(c.Context, rt.scope, id); err != nil {
						return err
					}
					return rt.out.print(map[string]string{"deleted": id}, func(w io.Writer) {
						fmt.Fprintln(w, id, "deleted")
					})
				},
			},
		},
	}
}
