package redis

import (
	"context"
	"encoding/json"
	"errors"
	"slices"

	"github.com/redis/go-redis/v9"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
)

func (r *implRepository) load(ctx context.Context, get func(context.Context, string) *redis.StringCmd, owner string) ([]model.Task, error) {
	b, err := get(ctx, r.key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	return tasks, nil
}

// mutate applies fn to the owner's task list and writes it back atomically.
// fn returns the task to hand back to the caller.
func (r *implRepository) mutate(ctx context.Context, owner string, fn func([]model.Task) ([]model.Task, model.Task, error)) (model.Task, error) {
	key := r.key(owner)
	var result model.Task

	txf := func(tx *redis.Tx) error {
		tasks, err := r.load(ctx, tx.Get, owner)
		if err != nil {
			return err
		}
		next, t, err := fn(tasks)
		if err != nil {
			return err
		}
		b, err := json.Marshal(next)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		if err != nil {
			return err
		}
		result = t
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return result, err
	}
	return model.Task{}, redis.TxFailedErr
}

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	t := opt.Task
	t.Owner = opt.Owner

	created, err := r.mutate(ctx, opt.Owner, func(tasks []model.Task) ([]model.Task, model.Task, error) {
		if slices.ContainsFunc(tasks, func(x model.Task) bool { return x.ID == t.ID }) {
			return nil, model.Task{}, repository.ErrDuplicateID
		}
		return append(tasks, t), t, nil
	})
	if errors.Is(err, repository.ErrDuplicateID) {
		return model.Task{}, err
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repository.ErrFailedToInsert
	}
	return created, nil
}

func (r *implRepository) GetTask(ctx context.Context, opt repository.GetTaskOptions) (model.Task, error) {
	tasks, err := r.load(ctx, r.rdb.Get, opt.Owner)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetTask"), err)
		return model.Task{}, repository.ErrFailedToGet
	}
	for _, t := range tasks {
		if t.ID == opt.ID {
			return t, nil
		}
	}
	return model.Task{}, nil
}

func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	tasks, err := r.load(ctx, r.rdb.Get, opt.Owner)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListTasks"), err)
		return nil, repository.ErrFailedToList
	}
	return tasks, nil
}

func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	t := opt.Task
	t.Owner = opt.Owner

	updated, err := r.mutate(ctx, opt.Owner, func(tasks []model.Task) ([]model.Task, model.Task, error) {
		i := slices.IndexFunc(tasks, func(x model.Task) bool { return x.ID == t.ID })
		if i < 0 {
			return nil, model.Task{}, repository.ErrNotFound
		}
		tasks[i] = t
		return tasks, t, nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return model.Task{}, err
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repository.ErrFailedToUpdate
	}
	return updated, nil
}

func (r *implRepository) DeleteTask(ctx context.Context, opt repository.DeleteTaskOptions) error {
	_, err := r.mutate(ctx, opt.Owner, func(tasks []model.Task) ([]model.Task, model.Task, error) {
		i := slices.IndexFunc(tasks, func(x model.Task) bool { return x.ID == opt.ID })
		if i < 0 {
			return nil, model.Task{}, repository.ErrNotFound
		}
		return slices.Delete(tasks, i, i+1), model.Task{}, nil
	})
	if errors.Is(err, repository.ErrNotFound) {
		return err
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return repository.ErrFailedToDelete
	}
	return nil
}
