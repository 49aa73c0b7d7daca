package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	cli "github.com/urfave/cli/v2"

	"task-planner/internal/command"
	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/pkg/normalizer"
)

func textArg(c *cli.Context) (string, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return "", fmt.Errorf("text is required")
	}
	return text, nil
}

func idArg(c *cli.Context) (string, error) {
	id := strings.TrimSpace(c.Args().First())
	if id == "" {
		return "", fmt.Errorf("task id is required")
	}
	return id, nil
}

// parseClock reads "HH:MM" or "H".
func parseClock(s string) (*normalizer.TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	hh, mm, hasMin := strings.Cut(s, ":")
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return nil, fmt.Errorf("invalid time %q", s)
	}
	minute := 0
	if hasMin {
		if minute, err = strconv.Atoi(mm); err != nil {
			return nil, fmt.Errorf("invalid time %q", s)
		}
	}
	tod := &normalizer.TimeOfDay{Hour: hour, Minute: minute}
	if !tod.Valid() {
		return nil, fmt.Errorf("invalid time %q", s)
	}
	return tod, nil
}

func parseCommand() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Preview how free text would be turned into a task",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "auto-urgency", Usage: "derive priority from the due date"},
		},
		Action: func(c *cli.Context) error {
			text, err := textArg(c)
			if err != nil {
				return err
			}
			rt := getRuntime(c)
			a, err := rt.application(c.Context)
			if err != nil {
				return err
			}
			out, err := a.Tasks.ParseText(c.Context, rt.scope, task.ParseInput{Text: text, AutoUrgency: c.Bool("auto-urgency")})
			if err != nil {
				return err
			}
			return rt.out.print(out.Task, func(w io.Writer) {
				t := out.Task
				fmt.Fprintf(w, "Title:    %s\n", t.Title)
				if t.Description != "" {
					fmt.Fprintf(w, "Details:  %s\n", t.Description)
				}
				if t.DueDate != "" {
					fmt.Fprintf(w, "Due:      %s\n", t.DueDate)
				}
				if t.Time != nil {
					fmt.Fprintf(w, "Time:     %s\n", t.Time)
				}
				fmt.Fprintf(w, "Priority: %s\n", t.Priority)
				if t.EstimatedTime > 0 {
					fmt.Fprintf(w, "Estimate: %d min\n", t.EstimatedTime)
				}
				printWarnings(w, out.Warnings)
			})
		},
	}
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Create a task from free text",
		ArgsUsage: "<text>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "auto-urgency", Usage: "derive priority from the due date"},
		},
		Action: func(c *cli.Context) error {
			text, err := textArg(c)
			if err != nil {
				return err
			}
			rt := getRuntime(c)
			a, err := rt.application(c.Context)
			if err != nil {
				return err
			}
			out, err := a.Tasks.CreateFromText(c.Context, rt.scope, task.ParseInput{Text: text, AutoUrgency: c.Bool("auto-urgency")})
			if err != nil {
				return err
			}
			return rt.out.task(out.Task, out.Warnings)
		},
	}
}

func taskCommand() *cli.Command {
	return &cli.Command{
		Name:  "task",
		Usage: "Manage tasks",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Create a task from fields",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Required: true, Usage: "task title"},
					&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "details"},
					&cli.StringFlag{Name: "due", Usage: "due date: YYYY-MM-DD, today, tomorrow, next friday, in 3 days"},
					&cli.StringFlag{Name: "time", Usage: "time of day HH:MM (needs --due)"},
					&cli.StringFlag{Name: "priority", Usage: "urgent|high|medium|low"},
					&cli.IntFlag{Name: "estimate", Usage: "estimate in minutes"},
					&cli.StringSliceFlag{Name: "tag", Usage: "tag (repeatable)"},
					&cli.StringFlag{Name: "notes", Usage: "notes"},
					&cli.BoolFlag{Name: "auto-urgency", Usage: "derive priority from the due date"},
				},
				Action: cmdTaskAdd,
			},
			{
				Name:  "list",
				Usage: "List tasks",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "status", Usage: "todo|in-progress|completed|archived"},
					&cli.StringFlag{Name: "priority", Usage: "urgent|high|medium|low"},
					&cli.StringFlag{Name: "tag", Usage: "filter by tag"},
					&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "text search"},
					&cli.StringFlag{Name: "sort", Value: task.SortPriority, Usage: "priority|due|created"},
					&cli.IntFlag{Name: "limit", Value: 50, Usage: "max tasks"},
					&cli.BoolFlag{Name: "all", Usage: "include archived tasks"},
				},
				Action: cmdTaskList,
			},
			{Name: "show", Usage: "Show a task", ArgsUsage: "<id>", Action: cmdTaskShow},
			{Name: "done", Aliases: []string{"complete"}, Usage: "Mark a task completed", ArgsUsage: "<id>", Action: setStatusAction(model.StatusCompleted)},
			{Name: "start", Usage: "Mark a task in progress", ArgsUsage: "<id>", Action: setStatusAction(model.StatusInProgress)},
			{Name: "delete", Aliases: []string{"rm"}, Usage: "Delete a task", ArgsUsage: "<id>", Action: cmdTaskDelete},
		},
	}
}

func cmdTaskAdd(c *cli.Context) error {
	tod, err := parseClock(c.String("time"))
	if err != nil {
		return err
	}
	rt := getRuntime(c)
	a, err := rt.application(c.Context)
	if err != nil {
		return err
	}
	out, err := a.Tasks.Create(c.Context, rt.scope, task.CreateInput{
		Title:         c.String("title"),
		Description:   c.String("description"),
		DueDate:       c.String("due"),
		Time:          tod,
		Priority:      c.String("priority"),
		EstimatedTime: c.Int("estimate"),
		Tags:          c.StringSlice("tag"),
		Notes:         c.String("notes"),
		AutoUrgency:   c.Bool("auto-urgency"),
	})
	if err != nil {
		return err
	}
	return rt.out.task(out.Task, out.Warnings)
}

func cmdTaskList(c *cli.Context) error {
	rt := getRuntime(c)
	a, err := rt.application(c.Context)
	if err != nil {
		return err
	}
	out, err := a.Tasks.List(c.Context, rt.scope, task.ListInput{
		Status:          c.String("status"),
		Priority:        c.String("priority"),
		Tag:             c.String("tag"),
		Search:          c.String("search"),
		IncludeArchived: c.Bool("all"),
		Sort:            c.String("sort"),
		Limit:           c.Int("limit"),
	})
	if err != nil {
		return err
	}
	return rt.out.tasks(out.Tasks, out.Total)
}

func cmdTaskShow(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	rt := getRuntime(c)
	a, err := rt.application(c.Context)
	if err != nil {
		return err
	}
	out, err := a.Tasks.Detail(c.Context, rt.scope, id)
	if err != nil {
		return err
	}
	return rt.out.print(newTaskView(out.Task), func(w io.Writer) {
		t := out.Task
		fmt.Fprintln(w, command.FormatTask(t))
		fmt.Fprintf(w, "  id:      %s\n", t.ID)
		fmt.Fprintf(w, "  status:  %s\n", t.Status)
		if t.Description != "" {
			fmt.Fprintf(w, "  details: %s\n", t.Description)
		}
		if t.EstimatedTime > 0 {
			fmt.Fprintf(w, "  estimate: %d min\n", t.EstimatedTime)
		}
		if len(t.Tags) > 0 {
			fmt.Fprintf(w, "  tags:    %s\n", strings.Join(t.Tags, ", "))
		}
		if t.Notes != "" {
			fmt.Fprintf(w, "  notes:   %s\n", t.Notes)
		}
		if t.CalendarLink != "" {
			fmt.Fprintf(w, "  calendar: %s\n", t.CalendarLink)
		}
	})
}

func setStatusAction(status model.TaskStatus) cli.ActionFunc {
	return func(c *cli.Context) error {
		id, err := idArg(c)
		if err != nil {
			return err
		}
		rt := getRuntime(c)
		a, err := rt.application(c.Context)
		if err != nil {
			return err
		}
		out, err := a.Tasks.SetStatus(c.Context, rt.scope, task.SetStatusInput{ID: id, Status: string(status)})
		if err != nil {
			return err
		}
		return rt.out.task(out.Task, nil)
	}
}

func cmdTaskDelete(c *cli.Context) error {
	id, err := idArg(c)
	if err != nil {
		return err
	}
	rt := getRuntime(c)
	a, err := rt.application(c.Context)
	if err != nil {
		return err
	}
	if err := a.Tasks.Delete(c.Context, rt.scope, id); err != nil {
		return err
	}
	return rt.out.print(map[string]string{"deleted": id}, func(w io.Writer) {
		fmt.Fprintln(w, id, "deleted")
	})
}

func statsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show task counters",
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			a, err := rt.application(c.Context)
			if err != nil {
				return err
			}
			s, err := a.Tasks.Stats(c.Context, rt.scope)
			if err != nil {
				return err
			}
			return rt.out.print(s, func(w io.Writer) {
				fmt.Fprintf(w, "Total:           %d\n", s.Total)
				fmt.Fprintf(w, "Completed:       %d\n", s.Completed)
				fmt.Fprintf(w, "Completed today: %d\n", s.CompletedToday)
				fmt.Fprintf(w, "In progress:     %d\n", s.InProgress)
				fmt.Fprintf(w, "Urgent:          %d\n", s.Urgent)
				fmt.Fprintf(w, "Due today:       %d\n", s.DueToday)
				fmt.Fprintf(w, "Overdue:         %d\n", s.Overdue)
			})
		},
	}
}
