package memory

import (
	"context"
	"slices"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
)

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ot, ok := r.owners[opt.Owner]
	if !ok {
		ot = &ownerTasks{tasks: make(map[string]model.Task)}
		r.owners[opt.Owner] = ot
	}
	if _, exists := ot.tasks[opt.Task.ID]; exists {
		return model.Task{}, repository.ErrDuplicateID
	}

	t := clone(opt.Task)
	t.Owner = opt.Owner
	ot.tasks[t.ID] = t
	ot.order = append(ot.order, t.ID)
	return clone(t), nil
}

func (r *implRepository) GetTask(ctx context.Context, opt repository.GetTaskOptions) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ot, ok := r.owners[opt.Owner]
	if !ok {
		return model.Task{}, nil
	}
	return clone(ot.tasks[opt.ID]), nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ot, ok := r.owners[opt.Owner]
	if !ok {
		return []model.Task{}, nil
	}
	out := make([]model.Task, 0, len(ot.order))
	for _, id := range ot.order {
		out = append(out, clone(ot.tasks[id]))
	}
	return out, nil
}

func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ot, ok := r.owners[opt.Owner]
	if !ok {
		return model.Task{}, repository.ErrNotFound
	}
	if _, exists := ot.tasks[opt.Task.ID]; !exists {
		return model.Task{}, repository.ErrNotFound
	}

	t := clone(opt.Task)
	t.Owner = opt.Owner
	ot.tasks[t.ID] = t
	return clone(t), nil
}

func (r *implRepository) DeleteTask(ctx context.Context, opt repository.DeleteTaskOptions) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ot, ok := r.owners[opt.Owner]
	if !ok {
		return repository.ErrNotFound
	}
	if _, exists := ot.tasks[opt.ID]; !exists {
		return repository.ErrNotFound
	}
	delete(ot.tasks, opt.ID)
	ot.order = slices.DeleteFunc(ot.order, func(id string) bool { return id == opt.ID })
	return nil
}

// clone copies the reference-typed fields so callers cannot mutate stored state.
func clone(t model.Task) model.Task {
	if t.Tags != nil {
		t.Tags = slices.Clone(t.Tags)
	}
	if t.Time != nil {
		tod := *t.Time
		t.Time = &tod
	}
	if t.CompletedAt != nil {
		at := *t.CompletedAt
		t.CompletedAt = &at
	}
	return t
}
