package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	cli "github.com/urfave/cli/v2"

	"task-planner/internal/command"
	"task-planner/internal/model"
)

const replPrompt = "planner> "

func replCommand() *cli.Command {
	return &cli.Command{
		Name:  "repl",
		Usage: "Interactive command shell (type help for commands)",
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			a, err := rt.application(c.Context)
			if err != nil {
				return err
			}
			h := command.New(rt.logger, a.Tasks, a.Habits)
			return runREPL(c.Context, h, rt.scope, c.App.Reader, c.App.Writer)
		},
	}
}

// runREPL executes one command per input line until EOF, exit or ctx is done.
func runREPL(ctx context.Context, h command.Handler, sc model.Scope, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, replPrompt)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "exit", "quit":
			return nil
		default:
			resp := h.Execute(ctx, sc, line)
			if resp.Type == command.TypeError {
				fmt.Fprintln(out, "error:", resp.Message)
			} else {
				fmt.Fprintln(out, resp.Message)
			}
		}
		fmt.Fprint(out, replPrompt)
	}
	fmt.Fprintln(out)
	return scanner.Err()
}
