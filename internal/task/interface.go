package task

import (
	"context"

	"task-planner/internal/model"
)

// UseCase defines the business logic interface for the task domain.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// Create stores a task entered through a form.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (CreateOutput, error)

	// ParseText turns free text into a normalized task without storing it.
	ParseText(ctx context.Context, sc model.Scope, input ParseInput) (ParseOutput, error)

	// CreateFromText parses free text and stores the result.
	CreateFromText(ctx context.Context, sc model.Scope, input ParseInput) (CreateOutput, error)

	List(ctx context.Context, sc model.Scope, input ListInput) (ListOutput, error)
	Detail(ctx context.Context, sc model.Scope, id string) (DetailOutput, error)
	Update(ctx context.Context, sc model.Scope, input UpdateInput) (UpdateOutput, error)
	SetStatus(ctx context.Context, sc model.Scope, input SetStatusInput) (UpdateOutput, error)
	Delete(ctx context.Context, sc model.Scope, id string) error

	// Stats counts tasks by the dashboard buckets.
	Stats(ctx context.Context, sc model.Scope) (StatsOutput, error)

	// Overview returns the active tasks most in need of attention.
	Overview(ctx context.Context, sc model.Scope, limit int) (ListOutput, error)
}
