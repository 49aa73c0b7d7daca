package repository

import (
	"context"

	"task-planner/internal/model"
)

// Repository is the habit store. Every call is scoped to one owner.
// GetHabit returns a zero Habit (empty ID) when nothing matches.
type Repository interface {
	CreateHabit(ctx context.Context, opt CreateHabitOptions) (model.Habit, error)
	GetHabit(ctx context.Context, opt GetHabitOptions) (model.Habit, error)
	ListHabits(ctx context.Context, opt ListHabitsOptions) ([]model.Habit, error)
	UpdateHabit(ctx context.Context, opt UpdateHabitOptions) (model.Habit, error)
	DeleteHabit(ctx context.Context, opt DeleteHabitOptions) error
}
