package memory

import (
	"context"
	"slices"

	"task-planner/internal/habit/repository"
	"task-planner/internal/model"
)

func (r *implRepository) CreateHabit(ctx context.Context, opt repository.CreateHabitOptions) (model.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	byID, ok := r.habits[opt.Owner]
	if !ok {
		byID = make(map[string]model.Habit)
		r.habits[opt.Owner] = byID
	}
	if _, exists := byID[opt.Habit.ID]; exists {
		return model.Habit{}, repository.ErrDuplicateID
	}

	h := opt.Habit
	h.Owner = opt.Owner
	byID[h.ID] = h
	r.order[opt.Owner] = append(r.order[opt.Owner], h.ID)
	return h, nil
}

func (r *implRepository) GetHabit(ctx context.Context, opt repository.GetHabitOptions) (model.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.habits[opt.Owner][opt.ID], nil
}

func (r *implRepository) ListHabits(ctx context.Context, opt repository.ListHabitsOptions) ([]model.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.order[opt.Owner]
	out := make([]model.Habit, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.habits[opt.Owner][id])
	}
	return out, nil
}

func (r *implRepository) UpdateHabit(ctx context.Context, opt repository.UpdateHabitOptions) (model.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.habits[opt.Owner][opt.Habit.ID]; !exists {
		return model.Habit{}, repository.ErrNotFound
	}
	h := opt.Habit
	h.Owner = opt.Owner
	r.habits[opt.Owner][h.ID] = h
	return h, nil
}

func (r *implRepository) DeleteHabit(ctx context.Context, opt repository.DeleteHabitOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.habits[opt.Owner][opt.ID]; !exists {
		return repository.ErrNotFound
	}
	delete(r.habits[opt.Owner], opt.ID)
	r.order[opt.Owner] = slices.DeleteFunc(r.order[opt.Owner], func(id string) bool { return id == opt.ID })
	return nil
}
