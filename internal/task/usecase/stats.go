package usecase

import (
	"context"

	"task-planner/internal/model"
	"task-planner/internal/task"
	repo "task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/normalizer"
)

// Stats counts dashboard buckets. Urgent, due-today and overdue only count
// tasks that are still active.
func (uc *implUseCase) Stats(ctx context.Context, sc model.Scope) (task.StatsOutput, error) {
	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{Owner: sc.Owner()})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Stats ListTasks: %v", err)
		return task.StatsOutput{}, err
	}

	now := uc.now()
	today := now.Format(datemath.DateLayout)

	var out task.StatsOutput
	for _, t := range tasks {
		out.Total++

		switch t.Status {
		case model.StatusCompleted:
			out.Completed++
			if t.CompletedAt != nil && t.CompletedAt.In(now.Location()).Format(datemath.DateLayout) == today {
				out.CompletedToday++
			}
		case model.StatusInProgress:
			out.InProgress++
		}

		if !t.Status.Active() {
			continue
		}
		if t.Priority == normalizer.PriorityUrgent {
			out.Urgent++
		}
		switch {
		case t.DueDate == today:
			out.DueToday++
		case t.DueDate != "" && t.DueDate < today:
			out.Overdue++
		}
	}
	return out, nil
}
