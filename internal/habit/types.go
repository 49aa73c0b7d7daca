package habit

import "task-planner/internal/model"

type CreateInput struct {
	Title     string
	Frequency string
}

type HabitOutput struct {
	Habit model.Habit
}

type ListOutput struct {
	Habits []model.Habit
}
