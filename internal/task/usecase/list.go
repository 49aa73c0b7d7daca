package usecase

import (
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

const defaultOverviewLimit = 5

type listFilter struct {
	status          model.TaskStatus
	priority        normalizer.Priority
	tag             string
	search          string
	dueFrom, dueTo  string
	includeArchived bool
}

func buildFilter(input task.ListInput) (listFilter, error) {
	f := listFilter{
		tag:             strings.TrimSpace(input.Tag),
		search:          strings.ToLower(strings.TrimSpace(input.Search)),
		includeArchived: input.IncludeArchived,
	}

	if s := strings.TrimSpace(input.Status); s != "" {
		st, ok := model.ParseTaskStatus(strings.ToLower(s))
		if !ok {
			return listFilter{}, task.ErrInvalidStatus
		}
		f.status = st
	}

	if p := strings.TrimSpace(input.Priority); p != "" {
		pr, ok := normalizer.ParsePriority(p)
		if !ok {
			return listFilter{}, task.ErrInvalidPriority
		}
		f.priority = pr
	}

	for _, d := range []struct {
		in  string
		out *string
	}{{input.DueFrom, &f.dueFrom}, {input.DueTo, &f.dueTo}} {
		v := strings.TrimSpace(d.in)
		if v == "" {
			continue
		}
		if _, err := time.Parse(datemath.DateLayout, v); err != nil {
			return listFilter{}, task.ErrInvalidDueDate
		}
		*d.out = v
	}
	return f, nil
}

func (f listFilter) match(t model.Task) bool {
	if f.status != "" {
		if t.Status != f.status {
			return false
		}
	} else if t.Status == model.StatusArchived && !f.includeArchived {
		return false
	}
	if f.priority != "" && t.Priority != f.priority {
		return false
	}
	if f.tag != "" && !t.HasTag(f.tag) {
		return false
	}
	if f.search != "" {
		hay := strings.ToLower(t.Title + "\n" + t.Description + "\n" + t.Notes)
		if !strings.Contains(hay, f.search) {
			return false
		}
	}
	if f.dueFrom != "" || f.dueTo != "" {
		if t.DueDate == "" {
			return false
		}
		if f.dueFrom != "" && t.DueDate < f.dueFrom {
			return false
		}
		if f.dueTo != "" && t.DueDate > f.dueTo {
			return false
		}
	}
	return true
}

func sortTasks(tasks []model.Task, order string) error {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "", task.SortPriority:
		slices.SortStableFunc(tasks, byAttention)
	case task.SortDue:
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			if c := compareDue(a, b); c != 0 {
				return c
			}
			return byAttention(a, b)
		})
	case task.SortCreated:
		// newest first
		slices.SortStableFunc(tasks, func(a, b model.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	default:
		return task.ErrInvalidSort
	}
	return nil
}

func page(tasks []model.Task, limit, offset int) []model.Task {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(tasks) {
		return []model.Task{}
	}
	tasks = tasks[offset:]
	if limit > 0 && limit < len(tasks) {
		tasks = tasks[:limit]
	}
	return tasks
}

// List filters, sorts and pages the owner's tasks. Archived tasks are hidden
// unless asked for by status or IncludeArchived.
func (uc *implUseCase) List(ctx context.Context, sc model.Scope, input task.ListInput) (task.ListOutput, error) {
	f, err := buildFilter(input)
	if err != nil {
		return task.ListOutput{}, err
	}

	all, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{Owner: sc.Owner()})
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListTasks: %v", err)
		return task.ListOutput{}, err
	}

	matched := make([]model.Task, 0, len(all))
	for _, t := range all {
		if f.match(t) {
			matched = append(matched, t)
		}
	}
	if err := sortTasks(matched, input.Sort); err != nil {
		return task.ListOutput{}, err
	}

	offset := max(input.Offset, 0)
	return task.ListOutput{
		Tasks:  page(matched, input.Limit, offset),
		Total:  len(matched),
		Limit:  input.Limit,
		Offset: offset,
	}, nil
}

// Overview returns active tasks by attention order.
func (uc *implUseCase) Overview(ctx context.Context, sc model.Scope, limit int) (task.ListOutput, error) {
	if limit <= 0 {
		limit = defaultOverviewLimit
	}

	all, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{Owner: sc.Owner()})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Overview ListTasks: %v", err)
		return task.ListOutput{}, err
	}

	active := slices.DeleteFunc(all, func(t model.Task) bool { return !t.Status.Active() })
	slices.SortStableFunc(active, byAttention)

	return task.ListOutput{
		Tasks: page(active, limit, 0),
		Total: len(active),
		Limit: limit,
	}, nil
}
