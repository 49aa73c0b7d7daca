package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"task-planner/internal/model"
	"task-planner/internal/task"
	repo "task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/normalizer"
)

// Create validates a manually entered task and stores it.
func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input task.CreateInput) (task.CreateOutput, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return task.CreateOutput{}, task.ErrInvalidTitle
	}

	priority, err := parsePriority(input.Priority)
	if err != nil {
		return task.CreateOutput{}, err
	}

	due, err := uc.resolveDueDate(input.DueDate)
	if err != nil {
		return task.CreateOutput{}, err
	}

	if input.Time != nil {
		if !input.Time.Valid() {
			return task.CreateOutput{}, task.ErrInvalidTime
		}
		if due == "" {
			return task.CreateOutput{}, task.ErrTimeWithoutDate
		}
	}

	if input.EstimatedTime < 0 {
		return task.CreateOutput{}, task.ErrInvalidEstimate
	}

	t := model.Task{
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		DueDate:       due,
		Time:          input.Time,
		Priority:      priority,
		EstimatedTime: input.EstimatedTime,
		Tags:          cleanTags(input.Tags),
		Notes:         strings.TrimSpace(input.Notes),
	}

	// A priority picked by hand is only overridden on request.
	if input.AutoUrgency {
		if err := uc.applyUrgency(ctx, sc, &t, uc.urgencyMode(true)); err != nil {
			return task.CreateOutput{}, err
		}
	}

	created, err := uc.store(ctx, sc, t)
	if err != nil {
		return task.CreateOutput{}, err
	}
	return task.CreateOutput{Task: created}, nil
}

// CreateFromText parses free text and stores the resulting task. Nothing is
// stored when parsing fails.
func (uc *implUseCase) CreateFromText(ctx context.Context, sc model.Scope, input task.ParseInput) (task.CreateOutput, error) {
	parsed, err := uc.ParseText(ctx, sc, input)
	if err != nil {
		return task.CreateOutput{}, err
	}

	nt := parsed.Task
	t := model.Task{
		Title:         nt.Title,
		Description:   nt.Description,
		DueDate:       nt.DueDate,
		Time:          nt.Time,
		Priority:      nt.Priority,
		EstimatedTime: nt.EstimatedTime,
	}

	warnings := parsed.Warnings
	if t.DueDate == "" && uc.cfg.DefaultDueTomorrow {
		t.DueDate = uc.now().AddDate(0, 0, 1).Format(datemath.DateLayout)
		if parsed.DroppedTime != nil {
			t.Time = parsed.DroppedTime
			warnings = withoutDroppedTime(warnings)
		}
		if mode := uc.urgencyMode(input.AutoUrgency); mode != normalizer.UrgencyOff {
			if err := uc.applyUrgency(ctx, sc, &t, mode); err != nil {
				return task.CreateOutput{}, err
			}
		}
	}

	created, err := uc.store(ctx, sc, t)
	if err != nil {
		return task.CreateOutput{}, err
	}
	return task.CreateOutput{Task: created, Warnings: warnings}, nil
}

// withoutDroppedTime removes the warning for a time that was restored.
func withoutDroppedTime(warnings []normalizer.Warning) []normalizer.Warning {
	out := make([]normalizer.Warning, 0, len(warnings))
	for _, w := range warnings {
		if w.Field == "time" && w.Reason == normalizer.ReasonNoDueDate {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (uc *implUseCase) applyUrgency(ctx context.Context, sc model.Scope, t *model.Task, mode normalizer.UrgencyMode) error {
	var w normalizer.Workload
	if mode == normalizer.UrgencyWorkload {
		tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{Owner: sc.Owner()})
		if err != nil {
			uc.l.Errorf(ctx, "uc.applyUrgency ListTasks: %v", err)
			return err
		}
		w = workloadOf(tasks)
	}

	t.Priority = normalizer.EstimateUrgency(normalizer.UrgencyInput{
		Mode:          mode,
		Now:           uc.now(),
		DueDate:       t.DueDate,
		EstimatedTime: t.EstimatedTime,
		Workload:      w,
	})
	return nil
}

// store assigns identity and timestamps, persists t and books it on the calendar.
func (uc *implUseCase) store(ctx context.Context, sc model.Scope, t model.Task) (model.Task, error) {
	now := uc.now()
	t.ID = uuid.NewString()
	t.Status = model.StatusTodo
	t.CreatedAt = now
	t.UpdatedAt = now

	created, err := uc.repo.CreateTask(ctx, repo.CreateTaskOptions{Owner: sc.Owner(), Task: t})
	if err != nil {
		uc.l.Errorf(ctx, "uc.store CreateTask: %v", err)
		return model.Task{}, err
	}

	return uc.schedule(ctx, sc, created), nil
}
