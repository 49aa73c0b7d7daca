package usecase

import (
	"context"
	"errors"
	"strings"

	"task-planner/internal/model"
	"task-planner/internal/task"
	repo "task-planner/internal/task/repository"
)

// Detail resolves id (exact or unique prefix) and returns the task.
func (uc *implUseCase) Detail(ctx context.Context, sc model.Scope, id string) (task.DetailOutput, error) {
	t, err := uc.resolveID(ctx, sc.Owner(), id)
	if err != nil {
		return task.DetailOutput{}, err
	}
	return task.DetailOutput{Task: t}, nil
}

// Update applies the non-zero fields of input.
func (uc *implUseCase) Update(ctx context.Context, sc model.Scope, input task.UpdateInput) (task.UpdateOutput, error) {
	existing, err := uc.resolveID(ctx, sc.Owner(), input.ID)
	if err != nil {
		return task.UpdateOutput{}, err
	}

	t := existing
	t.Title = uc.coalesce(strings.TrimSpace(input.Title), existing.Title)
	t.Description = uc.coalesce(strings.TrimSpace(input.Description), existing.Description)
	t.Notes = uc.coalesce(strings.TrimSpace(input.Notes), existing.Notes)

	if input.Priority != "" {
		if t.Priority, err = parsePriority(input.Priority); err != nil {
			return task.UpdateOutput{}, err
		}
	}

	if input.DueDate != "" {
		if t.DueDate, err = uc.resolveDueDate(input.DueDate); err != nil {
			return task.UpdateOutput{}, err
		}
	}

	if input.Time != nil {
		if !input.Time.Valid() {
			return task.UpdateOutput{}, task.ErrInvalidTime
		}
		tod := *input.Time
		t.Time = &tod
	}
	if t.Time != nil && t.DueDate == "" {
		return task.UpdateOutput{}, task.ErrTimeWithoutDate
	}

	if input.EstimatedTime < 0 || input.ActualTime < 0 {
		return task.UpdateOutput{}, task.ErrInvalidEstimate
	}
	if input.EstimatedTime > 0 {
		t.EstimatedTime = input.EstimatedTime
	}
	if input.ActualTime > 0 {
		t.ActualTime = input.ActualTime
	}

	if input.Tags != nil {
		t.Tags = cleanTags(input.Tags)
	}

	t.UpdatedAt = uc.now()
	updated, err := uc.repo.UpdateTask(ctx, repo.UpdateTaskOptions{Owner: sc.Owner(), Task: t})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return task.UpdateOutput{}, task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "uc.Update UpdateTask: %v", err)
		return task.UpdateOutput{}, err
	}
	return task.UpdateOutput{Task: updated}, nil
}

// SetStatus moves a task through its lifecycle. Completing stamps
// CompletedAt; leaving completed clears it.
func (uc *implUseCase) SetStatus(ctx context.Context, sc model.Scope, input task.SetStatusInput) (task.UpdateOutput, error) {
	next, ok := model.ParseTaskStatus(strings.ToLower(strings.TrimSpace(input.Status)))
	if !ok {
		return task.UpdateOutput{}, task.ErrInvalidStatus
	}

	t, err := uc.resolveID(ctx, sc.Owner(), input.ID)
	if err != nil {
		return task.UpdateOutput{}, err
	}
	if t.Status == next {
		return task.UpdateOutput{Task: t}, nil
	}
	if !t.Status.CanTransition(next) {
		return task.UpdateOutput{}, task.ErrInvalidTransition
	}

	now := uc.now()
	t.Status = next
	t.UpdatedAt = now
	if next == model.StatusCompleted {
		t.CompletedAt = &now
	} else {
		t.CompletedAt = nil
	}

	updated, err := uc.repo.UpdateTask(ctx, repo.UpdateTaskOptions{Owner: sc.Owner(), Task: t})
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return task.UpdateOutput{}, task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "uc.SetStatus UpdateTask: %v", err)
		return task.UpdateOutput{}, err
	}
	return task.UpdateOutput{Task: updated}, nil
}

func (uc *implUseCase) Delete(ctx context.Context, sc model.Scope, id string) error {
	t, err := uc.resolveID(ctx, sc.Owner(), id)
	if err != nil {
		return err
	}
	if err := uc.repo.DeleteTask(ctx, repo.DeleteTaskOptions{Owner: sc.Owner(), ID: t.ID}); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return task.ErrTaskNotFound
		}
		uc.l.Errorf(ctx, "uc.Delete DeleteTask: %v", err)
		return err
	}
	return nil
}
