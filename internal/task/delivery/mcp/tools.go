package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"task-planner/internal/model"
	"task-planner/internal/task"
)

const defaultListLimit = 20

func (h *handler) Register(server *mcpsdk.Server) {
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "parse_task",
		Description: "Turn a natural-language task description into a structured task without saving it.",
	}, h.parseTask)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "create_task_from_text",
		Description: "Parse a natural-language task description and save it.",
	}, h.createTaskFromText)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "list_tasks",
		Description: "List saved tasks, most urgent first.",
	}, h.listTasks)
	mcpsdk.AddTool(server, &mcpsdk.Tool{
		Name:        "complete_task",
		Description: "Mark a task as completed.",
	}, h.completeTask)
}

func (h *handler) parseTask(ctx context.Context, _ *mcpsdk.CallToolRequest, args ParseTaskArgs) (*mcpsdk.CallToolResult, ParseTaskOutput, error) {
	out, err := h.uc.ParseText(ctx, h.sc, task.ParseInput{Text: args.Text, AutoUrgency: args.AutoUrgency})
	if err != nil {
		h.l.Warnf(ctx, "mcp.parseTask: %v", err)
		return nil, ParseTaskOutput{}, err
	}
	return nil, ParseTaskOutput{
		Task:     out.Task,
		Warnings: warningStrings(out.Warnings),
		Provider: out.Provider,
	}, nil
}

func (h *handler) createTaskFromText(ctx context.Context, _ *mcpsdk.CallToolRequest, args ParseTaskArgs) (*mcpsdk.CallToolResult, TaskOutput, error) {
	out, err := h.uc.CreateFromText(ctx, h.sc, task.ParseInput{Text: args.Text, AutoUrgency: args.AutoUrgency})
	if err != nil {
		h.l.Warnf(ctx, "mcp.createTaskFromText: %v", err)
		return nil, TaskOutput{}, err
	}
	return nil, TaskOutput{Task: toView(out.Task), Warnings: warningStrings(out.Warnings)}, nil
}

func (h *handler) listTasks(ctx context.Context, _ *mcpsdk.CallToolRequest, args ListTasksArgs) (*mcpsdk.CallToolResult, ListTasksOutput, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	out, err := h.uc.List(ctx, h.sc, task.ListInput{
		Status:   args.Status,
		Priority: args.Priority,
		Tag:      args.Tag,
		Search:   args.Search,
		Sort:     task.SortPriority,
		Limit:    limit,
	})
	if err != nil {
		return nil, ListTasksOutput{}, err
	}
	views := make([]TaskView, len(out.Tasks))
	for i, t := range out.Tasks {
		views[i] = toView(t)
	}
	return nil, ListTasksOutput{Tasks: views, Total: out.Total}, nil
}

func (h *handler) completeTask(ctx context.Context, _ *mcpsdk.CallToolRequest, args CompleteTaskArgs) (*mcpsdk.CallToolResult, TaskOutput, error) {
	if args.ID == "" {
		return nil, TaskOutput{}, fmt.Errorf("id is required")
	}
	out, err := h.uc.SetStatus(ctx, h.sc, task.SetStatusInput{ID: args.ID, Status: string(model.StatusCompleted)})
	if err != nil {
		return nil, TaskOutput{}, err
	}
	return nil, TaskOutput{Task: toView(out.Task)}, nil
}
