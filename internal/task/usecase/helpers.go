package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"task-planner/internal/model"
	"task-planner/internal/task"
	repo "task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/normalizer"
)

// coalesce returns newVal unless it is empty.
func (uc *implUseCase) coalesce(newVal, existing string) string {
	if newVal != "" {
		return newVal
	}
	return existing
}

// now is the current time in the planner timezone.
func (uc *implUseCase) now() time.Time {
	return uc.cfg.Clock().In(uc.parser.Location())
}

func (uc *implUseCase) today() string {
	return uc.now().Format(datemath.DateLayout)
}

func (uc *implUseCase) urgencyMode(requested bool) normalizer.UrgencyMode {
	if requested && uc.cfg.Urgency == normalizer.UrgencyOff {
		return normalizer.UrgencySimple
	}
	return uc.cfg.Urgency
}

// resolveDueDate accepts YYYY-MM-DD or a relative expression like "tomorrow".
func (uc *implUseCase) resolveDueDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	if _, err := time.Parse(datemath.DateLayout, s); err == nil {
		return s, nil
	}
	d, err := uc.parser.ResolveDate(s, uc.now())
	if err != nil {
		return "", task.ErrInvalidDueDate
	}
	return d, nil
}

func parsePriority(s string) (normalizer.Priority, error) {
	if strings.TrimSpace(s) == "" {
		return normalizer.PriorityMedium, nil
	}
	p, ok := normalizer.ParsePriority(s)
	if !ok {
		return "", task.ErrInvalidPriority
	}
	return p, nil
}

// cleanTags trims, drops empties and removes duplicates while keeping order.
func cleanTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || slices.Contains(out, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func workloadOf(tasks []model.Task) normalizer.Workload {
	var w normalizer.Workload
	for _, t := range tasks {
		if t.Status == model.StatusInProgress {
			w.InProgress++
			w.InProgressMinutes += t.EstimatedTime
		}
	}
	return w
}

// compareDue orders by due date with undated tasks last.
func compareDue(a, b model.Task) int {
	switch {
	case a.DueDate == b.DueDate:
		return 0
	case a.DueDate == "":
		return 1
	case b.DueDate == "":
		return -1
	}
	return cmp.Compare(a.DueDate, b.DueDate)
}

// byAttention is urgent first, then earliest due date, then oldest.
func byAttention(a, b model.Task) int {
	if c := cmp.Compare(a.Priority.Rank(), b.Priority.Rank()); c != 0 {
		return c
	}
	if c := compareDue(a, b); c != 0 {
		return c
	}
	return a.CreatedAt.Compare(b.CreatedAt)
}

// resolveID finds a task by exact id or by a unique case-insensitive prefix.
func (uc *implUseCase) resolveID(ctx context.Context, owner, id string) (model.Task, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.Task{}, task.ErrTaskNotFound
	}

	t, err := uc.repo.GetTask(ctx, repo.GetTaskOptions{Owner: owner, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "uc.resolveID GetTask: %v", err)
		return model.Task{}, err
	}
	if t.ID != "" {
		return t, nil
	}

	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{Owner: owner})
	if err != nil {
		uc.l.Errorf(ctx, "uc.resolveID ListTasks: %v", err)
		return model.Task{}, err
	}

	prefix := strings.ToLower(id)
	var found model.Task
	matches := 0
	for _, t := range tasks {
		if strings.HasPrefix(strings.ToLower(t.ID), prefix) {
			found = t
			matches++
		}
	}
	switch matches {
	case 0:
		return model.Task{}, task.ErrTaskNotFound
	case 1:
		return found, nil
	default:
		return model.Task{}, task.ErrAmbiguousID
	}
}
