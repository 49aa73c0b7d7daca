package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"task-planner/internal/model"
	"task-planner/internal/task"
	repo "task-planner/internal/task/repository"
	"task-planner/pkg/datemath"
	"task-planner/pkg/llmprovider"
	"task-planner/pkg/normalizer"
	"task-planner/pkg/prompt"
)

const (
	parseTemperature = 0.3
	parseMaxTokens   = 500
	// contextTaskLimit caps how many open tasks are shown to the model.
	contextTaskLimit = 20
)

// ParseText asks the completion service to structure input.Text and
// normalizes the answer. Nothing is stored.
func (uc *implUseCase) ParseText(ctx context.Context, sc model.Scope, input task.ParseInput) (task.ParseOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return task.ParseOutput{}, task.ErrEmptyInput
	}
	if uc.llm == nil {
		return task.ParseOutput{}, task.ErrLLMUnavailable
	}

	now := uc.now()
	tasks, err := uc.repo.ListTasks(ctx, repo.ListTasksOptions{Owner: sc.Owner()})
	if err != nil {
		// The prompt only loses its task context.
		uc.l.Warnf(ctx, "uc.ParseText ListTasks: %v", err)
		tasks = nil
	}

	key := cacheKey(sc.Owner(), now.Format(datemath.DateLayout), uc.strategy.Name(), text)
	comp, cached := uc.cachedCompletion(key)
	if !cached {
		comp, err = uc.complete(ctx, text, now, tasks)
		if err != nil {
			return task.ParseOutput{}, err
		}
	}

	res, err := normalizer.Normalize(text, comp.text, normalizer.Options{
		Urgency:  uc.urgencyMode(input.AutoUrgency),
		Now:      now,
		Workload: workloadOf(tasks),
	})
	if err != nil {
		uc.l.Warnf(ctx, "uc.ParseText Normalize: %v", err)
		return task.ParseOutput{}, err
	}

	for _, w := range res.Warnings {
		uc.l.Warnf(ctx, "uc.ParseText dropped field %s", w)
	}

	if !cached && uc.cache != nil {
		uc.cache.Add(key, comp)
	}

	return task.ParseOutput{
		Task:        res.Task,
		Warnings:    res.Warnings,
		DroppedTime: res.DroppedTime,
		Provider:    comp.provider,
		Cached:      cached,
	}, nil
}

func (uc *implUseCase) complete(ctx context.Context, text string, now time.Time, tasks []model.Task) (completion, error) {
	p := uc.strategy.Build(prompt.Context{
		Text:  text,
		Now:   now,
		Tasks: summarize(tasks),
	})

	req := llmprovider.UserText(p.System, p.User)
	req.Temperature = parseTemperature
	req.MaxTokens = parseMaxTokens
	req.JSONMode = true

	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		uc.l.Errorf(ctx, "uc.ParseText GenerateContent: %v", err)
		return completion{}, mapProviderError(err)
	}
	return completion{text: resp.Text, provider: resp.ProviderName}, nil
}

func mapProviderError(err error) error {
	switch {
	case errors.Is(err, llmprovider.ErrProviderUnauthorized):
		return fmt.Errorf("%w: %w", task.ErrUnauthorized, err)
	case errors.Is(err, llmprovider.ErrProviderRateLimited):
		return fmt.Errorf("%w: %w", task.ErrRateLimited, err)
	case errors.Is(err, llmprovider.ErrNoProvidersConfigured):
		return fmt.Errorf("%w: %w", task.ErrLLMUnavailable, err)
	}
	return err
}

func (uc *implUseCase) cachedCompletion(key string) (completion, bool) {
	if uc.cache == nil {
		return completion{}, false
	}
	return uc.cache.Get(key)
}

// cacheKey includes the day so relative dates in a cached answer stay correct.
func cacheKey(owner, day, strategy, text string) string {
	return strings.Join([]string{owner, day, strategy, text}, "\x00")
}

func summarize(tasks []model.Task) []prompt.TaskSummary {
	out := make([]prompt.TaskSummary, 0, min(len(tasks), contextTaskLimit))
	for _, t := range tasks {
		if !t.Status.Active() {
			continue
		}
		out = append(out, prompt.TaskSummary{
			Title:    t.Title,
			Status:   string(t.Status),
			Priority: string(t.Priority),
			DueDate:  t.DueDate,
		})
		if len(out) == contextTaskLimit {
			break
		}
	}
	return out
}
