package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"task-planner/internal/habit"
	repo "task-planner/internal/habit/repository"
	"task-planner/internal/model"
	"task-planner/pkg/datemath"
)

func (uc *implUseCase) today() string {
	return uc.clock().In(uc.parser.Location()).Format(datemath.DateLayout)
}

func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input habit.CreateInput) (habit.HabitOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return habit.HabitOutput{}, habit.ErrInvalidTitle
	}
	freq := model.Frequency(strings.ToLower(strings.TrimSpace(input.Frequency)))
	if !freq.Valid() {
		return habit.HabitOutput{}, habit.ErrInvalidFrequency
	}

	h, err := uc.repo.CreateHabit(ctx, repo.CreateHabitOptions{
		Owner: sc.Owner(),
		Habit: model.Habit{
			ID:        uuid.NewString(),
			Title:     title,
			Frequency: freq,
			CreatedAt: uc.clock(),
		},
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Create CreateHabit: %v", err)
		return habit.HabitOutput{}, err
	}
	return habit.HabitOutput{Habit: h}, nil
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope) (habit.ListOutput, error) {
	hs, err := uc.repo.ListHabits(ctx, repo.ListHabitsOptions{Owner: sc.Owner()})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListHabits: %v", err)
		return habit.ListOutput{}, err
	}
	return habit.ListOutput{Habits: hs}, nil
}

func (uc *implUseCase) Complete(ctx context.Context, sc model.Scope, id string) (habit.HabitOutput, error) {
	h, err := uc.resolveID(ctx, sc.Owner(), id)
	if err != nil {
		return habit.HabitOutput{}, err
	}

	today := uc.today()
	if h.LastCompleted == today {
		return habit.HabitOutput{}, habit.ErrAlreadyCompleted
	}
	h.LastCompleted = today
	h.Streak++

	updated, err := uc.repo.UpdateHabit(ctx, repo.UpdateHabitOptions{Owner: sc.Owner(), Habit: h})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return habit.HabitOutput{}, habit.ErrHabitNotFound
		}
		uc.l.Errorf(ctx, "uc.Complete UpdateHabit: %v", err)
		return habit.HabitOutput{}, err
	}
	return habit.HabitOutput{Habit: updated}, nil
}

func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, id string) error {
	h, err := uc.resolveID(ctx, sc.Owner(), id)
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteHabit(ctx, repo.DeleteHabitOptions{Owner: sc.Owner(), ID: h.ID}); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return habit.ErrHabitNotFound
		}
		uc.l.Errorf(ctx, "uc.Delete DeleteHabit: %v", err)
		return err
	}
	return nil
}

// resolveID finds a habit by exact id or by a unique case-insensitive prefix.
func (uc *implUseCase) resolveID(ctx context.Context, owner, id string) (model.Habit, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Habit{}, habit.ErrHabitNotFound
	}

	h, err := uc.repo.GetHabit(ctx, repo.GetHabitOptions{Owner: owner, ID: id})
	if err != nil {
		return model.Habit{}, err
	}
	if h.ID != "" {
		return h, nil
	}

	hs, err := uc.repo.ListHabits(ctx, repo.ListHabitsOptions{Owner: owner})
	if err != nil {
		return model.Habit{}, err
	}
	prefix := strings.ToLower(id)
	var matches []model.Habit
	for _, h := range hs {
		if strings.HasPrefix(strings.ToLower(h.ID), prefix) {
			matches = append(matches, h)
		}
	}
	switch len(matches) {
	case 0:
		return model.Habit{}, habit.ErrHabitNotFound
	case 1:
		return matches[0], nil
	default:
		return model.Habit{}, habit.ErrAmbiguousID
	}
}
