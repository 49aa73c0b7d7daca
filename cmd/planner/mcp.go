package main

import (
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	cli "github.com/urfave/cli/v2"

	"task-planner/internal/task/delivery/mcp"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Serve the task tools over MCP on stdin/stdout",
		Action: func(c *cli.Context) error {
			rt := getRuntime(c)
			a, err := rt.application(c.Context)
			if err != nil {
				return err
			}
			server := mcp.NewServer(mcp.New(rt.logger, a.Tasks, rt.scope), version)
			rt.logger.Infof(c.Context, "MCP server listening on stdio")
			return server.Run(c.Context, &mcpsdk.StdioTransport{})
		},
	}
}
