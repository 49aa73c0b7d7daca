package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/model"
	"task-planner/internal/task/repository"
	"task-planner/internal/task/repository/repotest"
)

func TestRepository(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Repository { return New() })
}

func TestRepository_ReturnsCopies(t *testing.T) {
	repo := New()
	ctx := context.Background()

	_, err := repo.CreateTask(ctx, repository.CreateTaskOptions{Owner: "a", Task: model.Task{ID: "t1", Tags: []string{"x"}}})
	require.NoError(t, err)

	got, err := repo.GetTask(ctx, repository.GetTaskOptions{Owner: "a", ID: "t1"})
	require.NoError(t, err)
	got.Tags[0] = "mutated"

	again, err := repo.GetTask(ctx, repository.GetTaskOptions{Owner: "a", ID: "t1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, again.Tags)
}
