package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	cli "github.com/urfave/cli/v2"

	"task-planner/pkg/gcalendar"
)

func calendarCommand() *cli.Command {
	return &cli.Command{
		Name:  "calendar",
		Usage: "Google Calendar setup",
		Subcommands: []*cli.Command{
			{
				Name:      "auth",
				Usage:     "Authorize calendar access with OAuth desktop credentials",
				ArgsUsage: "[credentials.json]",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Value: gcalendar.TokenFile, Usage: "where to write the token"},
				},
				Action: cmdCalendarAuth,
			},
		},
	}
}

func cmdCalendarAuth(c *cli.Context) error {
	rt := getRuntime(c)
	path := c.Args().First()
	if path == "" {
		path = rt.cfg.GoogleCalendar.CredentialsPath
	}
	if path == "" {
		return fmt.Errorf("credentials file is required (argument or google_calendar.credentials_path)")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read credentials: %w", err)
	}
	oauthCfg, err := gcalendar.OAuthConfigFromJSON(raw)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Open this link in your browser, then paste the authorization code:\n%s\n\ncode: ", gcalendar.AuthURL(oauthCfg))

	code, err := bufio.NewReader(c.App.Reader).ReadString('\n')
	if err != nil && strings.TrimSpace(code) == "" {
		return fmt.Errorf("read authorization code: %w", err)
	}

	token := c.String("token")
	if err := gcalendar.ExchangeAndSave(c.Context, oauthCfg, strings.TrimSpace(code), token); err != nil {
		return err
	}
	fmt.Fprintf(w, "Token saved to %s\n", token)
	return nil
}
