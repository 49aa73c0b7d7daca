package repository

import "task-planner/internal/model"

type CreateHabitOptions struct {
	Owner string
	Habit model.Habit
}

type GetHabitOptions struct {
	Owner string
	ID    string
}

// ListHabitsOptions returns habits in insertion order.
type ListHabitsOptions struct {
	Owner string
}

type UpdateHabitOptions struct {
	Owner string
	Habit model.Habit
}

type DeleteHabitOptions struct {
	Owner string
	ID    string
}
