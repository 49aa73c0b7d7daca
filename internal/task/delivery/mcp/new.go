// Package mcp exposes the task usecase as Model Context Protocol tools.
package mcp

import (
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"task-planner/internal/model"
	"task-planner/internal/task"
	pkgLog "task-planner/pkg/log"
)

const serverName = "task-planner"

// Handler registers the task tools on an MCP server.
type Handler interface {
	Register(server *mcpsdk.Server)
}

type handler struct {
	l  pkgLog.Logger
	uc task.UseCase
	sc model.Scope
}

// New creates a tool handler acting on behalf of sc.
func New(l pkgLog.Logger, uc task.UseCase, sc model.Scope) Handler {
	return &handler{l: l, uc: uc, sc: sc}
}

// NewServer builds an MCP server with every task tool registered.
func NewServer(h Handler, version string) *mcpsdk.Server {
	server := mcpsdk.NewServer(&mcpsdk.Implementation{Name: serverName, Version: version}, nil)
	h.Register(server)
	return server
}
