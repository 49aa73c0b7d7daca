package habit

import (
	"context"

	"task-planner/internal/model"
)

// UseCase defines the business logic interface for habit tracking.
type UseCase interface {
	Create(ctx context.Context, sc model.Scope, input CreateInput) (HabitOutput, error)
	List(ctx context.Context, sc model.Scope) (ListOutput, error)
	// Complete records today's completion and extends the streak.
	Complete(ctx context.Context, sc model.Scope, id string) (HabitOutput, error)
	Delete(ctx context.Context, sc model.Scope, id string) error
}
