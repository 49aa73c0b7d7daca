// Package repotest holds behaviour checks shared by every task repository driver.
package repotest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
	"task-planner/pkg/normalizer"
)

func sample(id, title string) model.Task {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	return model.Task{
		ID:        id,
		Title:     title,
		Priority:  normalizer.PriorityMedium,
		Status:    model.StatusTodo,
		Tags:      []string{"home"},
		Time:      &normalizer.TimeOfDay{Hour: 9},
		DueDate:   "2025-06-03",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Run exercises a fresh repository returned by newRepo.
func Run(t *testing.T, newRepo func(t *testing.T) repository.Repository) {
	ctx := context.Background()

	t.Run("create get list", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.CreateTask(ctx, repository.CreateTaskOptions{Owner: "alice", Task: sample("t1", "Buy milk")})
		require.NoError(t, err)
		assert.Equal(t, "alice", created.Owner)

		_, err = repo.CreateTask(ctx, repository.CreateTaskOptions{Owner: "alice", Task: sample("t2", "Call mom")})
		require.NoError(t, err)

		got, err := repo.GetTask(ctx, repository.GetTaskOptions{Owner: "alice", ID: "t1"})
		require.NoError(t, err)
		assert.Equal(t, "Buy milk", got.Title)
		require.NotNil(t, got.Time)
		assert.Equal(t, 9, got.Time.Hour)
		assert.True(t, got.CreatedAt.Equal(created.CreatedAt))

		list, err := repo.ListTasks(ctx, repository.ListTasksOptions{Owner: "alice"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "t1", list[0].ID)
		assert.Equal(t, "t2", list[1].ID)
	})

	t.Run("owners are isolated", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.CreateTask(ctx, repository.CreateTaskOptions{Owner: "alice", Task: sample("t1", "A")})
		require.NoError(t, err)

		got, err := repo.GetTask(ctx, repository.GetTaskOptions{Owner: "bob", ID: "t1"})
		require.NoError(t, err)
		assert.Empty(t, got.ID)

		list, err := repo.ListTasks(ctx, repository.ListTasksOptions{Owner: "bob"})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("missing task is zero value", func(t *testing.T) {
		repo := newRepo(t)
		got, err := repo.GetTask(ctx, repository.GetTaskOptions{Owner: "alice", ID: "nope"})
		require.NoError(t, err)
		assert.Empty(t, got.ID)
	})

	t.Run("duplicate id", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.CreateTask(ctx, repository.CreateTaskOptions{Owner: "alice", Task: sample("t1", "A")})
		require.NoError(t, err)
		_, err = repo.CreateTask(ctx, repository.CreateTaskOptions{Owner: "alice", Task: sample("t1", "B")})
		assert.ErrorIs(t, err, repository.ErrDuplicateID)
	})

	t.Run("update", func(t *testing.T) {
		repo := newRepo(t)
		task := sample("t1", "A")
		_, err := repo.CreateTask(ctx, repository.CreateTaskOptions{Owner: "alice", Task: task})
		require.NoError(t, err)

		task.Title = "A2"
		task.Status = model.StatusCompleted
		updated, err := repo.UpdateTask(ctx, repository.UpdateTaskOptions{Owner: "alice", Task: task})
		require.NoError(t, err)
		assert.Equal(t, "A2", updated.Title)

		got, err := repo.GetTask(ctx, repository.GetTaskOptions{Owner: "alice", ID: "t1"})
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, got.Status)

		_, err = repo.UpdateTask(ctx, repository.UpdateTaskOptions{Owner: "alice", Task: sample("ghost", "x")})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		for _, id := range []string{"t1", "t2", "t3"} {
			_, err := repo.CreateTask(ctx, repository.CreateTaskOptions{Owner: "alice", Task: sample(id, id)})
			require.NoError(t, err)
		}

		require.NoError(t, repo.DeleteTask(ctx, repository.DeleteTaskOptions{Owner: "alice", ID: "t2"}))
		assert.ErrorIs(t, repo.DeleteTask(ctx, repository.DeleteTaskOptions{Owner: "alice", ID: "t2"}), repository.ErrNotFound)

		list, err := repo.ListTasks(ctx, repository.ListTasksOptions{Owner: "alice"})
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "t1", list[0].ID)
		assert.Equal(t, "t3", list[1].ID)
	})
}
