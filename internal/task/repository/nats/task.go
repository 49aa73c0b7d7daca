package nats

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"

	"github.com/nats-io/nats.go"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
)

func (r *implRepository) CreateTask(ctx context.Context, opt repository.CreateTaskOptions) (model.Task, error) {
	t := opt.Task
	t.Owner = opt.Owner

	b, err := json.Marshal(t)
	if err != nil {
		r.l.Errorf(ctx, "%s marshal: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repository.ErrFailedToInsert
	}
	if _, err := r.kv.Create(taskKey(opt.Owner, t.ID), b); err != nil {
		if errors.Is(err, nats.ErrKeyExists) {
			return model.Task{}, repository.ErrDuplicateID
		}
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateTask"), err)
		return model.Task{}, repository.ErrFailedToInsert
	}
	return t, nil
}

func (r *implRepository) get(key string) (model.Task, uint64, error) {
	e, err := r.kv.Get(key)
	if err != nil {
		return model.Task{}, 0, err
	}
	var t model.Task
	if err := json.Unmarshal(e.Value(), &t); err != nil {
		return model.Task{}, 0, err
	}
	return t, e.Revision(), nil
}

func (r *implRepository) GetTask(ctx context.Context, opt repository.GetTaskOptions) (model.Task, error) {
	t, _, err := r.get(taskKey(opt.Owner, opt.ID))
	if errors.Is(err, nats.ErrKeyNotFound) {
		return model.Task{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetTask"), err)
		return model.Task{}, repository.ErrFailedToGet
	}
	return t, nil
}

// ListTasks orders by CreatedAt then ID since key listing order follows
// the last write, not the first.
func (r *implRepository) ListTasks(ctx context.Context, opt repository.ListTasksOptions) ([]model.Task, error) {
	out := []model.Task{}
	keys, err := r.kv.Keys()
	if errors.Is(err, nats.ErrNoKeysFound) {
		return out, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s keys: %v", r.dsn("ListTasks"), err)
		return nil, repository.ErrFailedToList
	}

	prefix := ownerPrefix(opt.Owner)
	for _, k := range keys {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		t, _, err := r.get(k)
		if errors.Is(err, nats.ErrKeyNotFound) {
			// deleted between Keys and Get
			continue
		}
		if err != nil {
			r.l.Errorf(ctx, "%s get %s: %v", r.dsn("ListTasks"), k, err)
			return nil, repository.ErrFailedToList
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, func(a, b model.Task) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

func (r *implRepository) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	t := opt.Task
	t.Owner = opt.Owner
	key := taskKey(opt.Owner, t.ID)

	_, rev, err := r.get(key)
	if errors.Is(err, nats.ErrKeyNotFound) {
		return model.Task{}, repository.ErrNotFound
	}
	if err != nil {
		r.l.Errorf(ctx, "%s get: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repository.ErrFailedToUpdate
	}

	b, err := json.Marshal(t)
	if err != nil {
		r.l.Errorf(ctx, "%s marshal: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repository.ErrFailedToUpdate
	}
	if _, err := r.kv.Update(key, b, rev); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateTask"), err)
		return model.Task{}, repository.ErrFailedToUpdate
	}
	return t, nil
}

func (r *implRepository) DeleteTask(ctx context.Context, opt repository.DeleteTaskOptions) error {
	key := taskKey(opt.Owner, opt.ID)
	if _, err := r.kv.Get(key); err != nil {
		if errors.Is(err, nats.ErrKeyNotFound) {
			return repository.ErrNotFound
		}
		r.l.Errorf(ctx, "%s get: %v", r.dsn("DeleteTask"), err)
		return repository.ErrFailedToDelete
	}
	if err := r.kv.Delete(key); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteTask"), err)
		return repository.ErrFailedToDelete
	}
	return nil
}
