package usecase

import (
	"context"

	"task-planner/internal/model"
	repo "task-planner/internal/task/repository"
	"task-planner/pkg/gcalendar"
)

// schedule books a timed task on the calendar and stores the event link.
// Calendar failures are logged and leave the task as it was.
func (uc *implUseCase) schedule(ctx context.Context, sc model.Scope, t model.Task) model.Task {
	if uc.cfg.Calendar == nil || t.DueDate == "" || t.Time == nil {
		return t
	}

	req, err := gcalendar.EventForTask(uc.cfg.CalendarID, gcalendar.TaskSlot{
		Title:         t.Title,
		Description:   t.Description,
		DueDate:       t.DueDate,
		Hour:          t.Time.Hour,
		Minute:        t.Time.Minute,
		EstimatedTime: t.EstimatedTime,
	}, uc.parser.Location())
	if err != nil {
		uc.l.Warnf(ctx, "uc.schedule EventForTask: %v", err)
		return t
	}

	ev, err := uc.cfg.Calendar.CreateEvent(ctx, req)
	if err != nil {
		uc.l.Warnf(ctx, "uc.schedule CreateEvent: %v", err)
		return t
	}

	t.CalendarLink = ev.HtmlLink
	updated, err := uc.repo.UpdateTask(ctx, repo.UpdateTaskOptions{Owner: sc.Owner(), Task: t})
	if err != nil {
		uc.l.Warnf(ctx, "uc.schedule UpdateTask: %v", err)
		t.CalendarLink = ""
		return t
	}
	return updated
}
