package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/internal/model"
	"task-planner/internal/task"
	"task-planner/internal/task/repository"
	"task-planner/internal/task/repository/memory"
	"task-planner/pkg/datemath"
	"task-planner/pkg/gcalendar"
	"task-planner/pkg/llmprovider"
	"task-planner/pkg/log"
	"task-planner/pkg/normalizer"
)

var testNow = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC) // Monday

type fakeLLM struct {
	text  string
	err   error
	calls int
	last  *llmprovider.Request
}

func (f *fakeLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return &llmprovider.Response{Text: f.text, ProviderName: "fake", ModelName: "fake-1"}, nil
}

type fakeCalendar struct {
	err  error
	reqs []gcalendar.CreateEventRequest
}

func (f *fakeCalendar) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return nil, f.err
	}
	return &gcalendar.Event{ID: "ev1", HtmlLink: "https://calendar.example/ev1"}, nil
}

type fixture struct {
	uc   task.UseCase
	repo repository.Repository
	llm  *fakeLLM
}

func newFixture(t *testing.T, mutate func(*Config)) fixture {
	t.Helper()
	parser, err := datemath.NewParser("UTC")
	require.NoError(t, err)

	cfg := Config{
		Parser:    parser,
		CacheSize: 16,
		CacheTTL:  time.Minute,
		Clock:     func() time.Time { return testNow },
	}
	if mutate != nil {
		mutate(&cfg)
	}

	llm := &fakeLLM{text: `{"title":"Call mom","dueDate":"2025-06-03","priority":"high"}`}
	repo := memory.New()
	uc, err := New(repo, llm, cfg, log.NewNop())
	require.NoError(t, err)
	return fixture{uc: uc, repo: repo, llm: llm}
}

func seed(t *testing.T, repo repository.Repository, tasks ...model.Task) {
	t.Helper()
	for _, tk := range tasks {
		if tk.Status == "" {
			tk.Status = model.StatusTodo
		}
		if tk.Priority == "" {
			tk.Priority = normalizer.PriorityMedium
		}
		_, err := repo.CreateTask(context.Background(), repository.CreateTaskOptions{Owner: model.DefaultUserID, Task: tk})
		require.NoError(t, err)
	}
}

func TestParseText(t *testing.T) {
	ctx := context.Background()

	t.Run("empty text", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "   "})
		assert.ErrorIs(t, err, task.ErrEmptyInput)
		assert.Zero(t, f.llm.calls)
	})

	t.Run("no completion service", func(t *testing.T) {
		parser, _ := datemath.NewParser("UTC")
		uc, err := New(memory.New(), nil, Config{Parser: parser}, log.NewNop())
		require.NoError(t, err)
		_, err = uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "x"})
		assert.ErrorIs(t, err, task.ErrLLMUnavailable)
	})

	t.Run("normalizes and caches the completion", func(t *testing.T) {
		f := newFixture(t, nil)
		f.llm.text = "```json\n{\"title\":\"Call mom\",\"dueDate\":\"2025-06-03\",\"time\":{\"hour\":09,\"minute\":30},\"priority\":\"HIGH\"}\n```"

		out, err := f.uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "call mom tomorrow at 9:30"})
		require.NoError(t, err)
		assert.Equal(t, normalizer.NormalizedTask{
			Title:    "Call mom",
			DueDate:  "2025-06-03",
			Time:     &normalizer.TimeOfDay{Hour: 9, Minute: 30},
			Priority: normalizer.PriorityHigh,
		}, out.Task)
		assert.Equal(t, "fake", out.Provider)
		assert.False(t, out.Cached)
		require.NotNil(t, f.llm.last)
		assert.True(t, f.llm.last.JSONMode)
		assert.Contains(t, f.llm.last.SystemInstruction, "2025-06-02")

		again, err := f.uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "call mom tomorrow at 9:30"})
		require.NoError(t, err)
		assert.True(t, again.Cached)
		assert.Equal(t, out.Task, again.Task)
		assert.Equal(t, 1, f.llm.calls)
	})

	t.Run("cache is per owner", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.uc.ParseText(ctx, model.Scope{UserID: "a"}, task.ParseInput{Text: "x"})
		require.NoError(t, err)
		_, err = f.uc.ParseText(ctx, model.Scope{UserID: "b"}, task.ParseInput{Text: "x"})
		require.NoError(t, err)
		assert.Equal(t, 2, f.llm.calls)
	})

	t.Run("auto urgency flag", func(t *testing.T) {
		f := newFixture(t, nil)
		f.llm.text = `{"title":"Pay rent","dueDate":"2025-06-03","priority":"low"}`
		out, err := f.uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "pay rent", AutoUrgency: true})
		require.NoError(t, err)
		assert.Equal(t, normalizer.PriorityUrgent, out.Task.Priority)
	})

	t.Run("warnings are returned", func(t *testing.T) {
		f := newFixture(t, nil)
		f.llm.text = `{"title":"x","priority":"critical","estimatedTime":-5}`
		out, err := f.uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "x"})
		require.NoError(t, err)
		assert.Len(t, out.Warnings, 2)
		assert.Equal(t, normalizer.PriorityMedium, out.Task.Priority)
	})

	errCases := []struct {
		name    string
		llmErr  error
		text    string
		wantErr error
	}{
		{
			name:    "unauthorized",
			llmErr:  &llmprovider.ProviderError{Provider: "openrouter", Err: fmt.Errorf("%w: 401", llmprovider.ErrProviderUnauthorized)},
			wantErr: task.ErrUnauthorized,
		},
		{
			name:    "rate limited",
			llmErr:  fmt.Errorf("%w: 429", llmprovider.ErrProviderRateLimited),
			wantErr: task.ErrRateLimited,
		},
		{
			name:    "all providers failed",
			llmErr:  fmt.Errorf("%w: boom", llmprovider.ErrAllProvidersFailed),
			wantErr: llmprovider.ErrAllProvidersFailed,
		},
		{name: "no json", text: "I cannot help with that", wantErr: normalizer.ErrNoJSONFound},
		{name: "malformed", text: `{"title": }`, wantErr: normalizer.ErrMalformedJSON},
		{name: "missing title", text: `{"dueDate":"2025-06-03"}`, wantErr: normalizer.ErrMissingTitle},
	}
	for _, tc := range errCases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.llm.err = tc.llmErr
			if tc.text != "" {
				f.llm.text = tc.text
			}
			_, err := f.uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "something"})
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	t.Run("failed normalization is not cached", func(t *testing.T) {
		f := newFixture(t, nil)
		f.llm.text = "nope"
		_, err := f.uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "x"})
		require.Error(t, err)
		_, err = f.uc.ParseText(ctx, model.Scope{}, task.ParseInput{Text: "x"})
		require.Error(t, err)
		assert.Equal(t, 2, f.llm.calls)
	})
}

func TestCreateFromText(t *testing.T) {
	ctx := context.Background()

	t.Run("stores parsed task", func(t *testing.T) {
		f := newFixture(t, nil)
		out, err := f.uc.CreateFromText(ctx, model.Scope{}, task.ParseInput{Text: "call mom tomorrow"})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Task.ID)
		assert.Equal(t, model.StatusTodo, out.Task.Status)
		assert.Equal(t, "2025-06-03", out.Task.DueDate)
		assert.Equal(t, model.DefaultUserID, out.Task.Owner)

		stored, err := f.repo.ListTasks(ctx, repository.ListTasksOptions{Owner: model.DefaultUserID})
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("nothing stored on failure", func(t *testing.T) {
		f := newFixture(t, nil)
		f.llm.text = `{"title":""}`
		_, err := f.uc.CreateFromText(ctx, model.Scope{}, task.ParseInput{Text: "??"})
		require.ErrorIs(t, err, normalizer.ErrMissingTitle)

		stored, err := f.repo.ListTasks(ctx, repository.ListTasksOptions{Owner: model.DefaultUserID})
		require.NoError(t, err)
		assert.Empty(t, stored)
	})

	t.Run("default due tomorrow", func(t *testing.T) {
		f := newFixture(t, func(c *Config) {
			c.DefaultDueTomorrow = true
			c.Urgency = normalizer.UrgencySimple
		})
		f.llm.text = `{"title":"Water plants"}`
		out, err := f.uc.CreateFromText(ctx, model.Scope{}, task.ParseInput{Text: "water plants"})
		require.NoError(t, err)
		assert.Equal(t, "2025-06-03", out.Task.DueDate)
		assert.Equal(t, normalizer.PriorityUrgent, out.Task.Priority)
	})

	t.Run("default due tomorrow keeps parsed time", func(t *testing.T) {
		f := newFixture(t, func(c *Config) { c.DefaultDueTomorrow = true })
		f.llm.text = `{"title":"Call John","time":{"hour":14,"minute":0}}`
		out, err := f.uc.CreateFromText(ctx, model.Scope{}, task.ParseInput{Text: "call John at 2pm"})
		require.NoError(t, err)
		assert.Equal(t, "2025-06-03", out.Task.DueDate)
		require.NotNil(t, out.Task.Time)
		assert.Equal(t, normalizer.TimeOfDay{Hour: 14}, *out.Task.Time)
		assert.Empty(t, out.Warnings)

		stored, err := f.repo.GetTask(ctx, repository.GetTaskOptions{Owner: model.DefaultUserID, ID: out.Task.ID})
		require.NoError(t, err)
		require.NotNil(t, stored.Time)
		assert.Equal(t, 14, stored.Time.Hour)
	})

	t.Run("time without date dropped without policy", func(t *testing.T) {
		f := newFixture(t, nil)
		f.llm.text = `{"title":"Call John","time":{"hour":14,"minute":0}}`
		out, err := f.uc.CreateFromText(ctx, model.Scope{}, task.ParseInput{Text: "call John at 2pm"})
		require.NoError(t, err)
		assert.Empty(t, out.Task.DueDate)
		assert.Nil(t, out.Task.Time)
		assert.Equal(t, []normalizer.Warning{{Field: "time", Reason: normalizer.ReasonNoDueDate}}, out.Warnings)
	})

	t.Run("no default due date by policy", func(t *testing.T) {
		f := newFixture(t, nil)
		f.llm.text = `{"title":"Water plants"}`
		out, err := f.uc.CreateFromText(ctx, model.Scope{}, task.ParseInput{Text: "water plants"})
		require.NoError(t, err)
		assert.Empty(t, out.Task.DueDate)
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		input   task.CreateInput
		wantErr error
		check   func(t *testing.T, got model.Task)
	}{
		{name: "blank title", input: task.CreateInput{Title: "  "}, wantErr: task.ErrInvalidTitle},
		{name: "bad priority", input: task.CreateInput{Title: "x", Priority: "asap"}, wantErr: task.ErrInvalidPriority},
		{name: "bad date", input: task.CreateInput{Title: "x", DueDate: "someday"}, wantErr: task.ErrInvalidDueDate},
		{name: "bad time", input: task.CreateInput{Title: "x", DueDate: "2025-06-03", Time: &normalizer.TimeOfDay{Hour: 24}}, wantErr: task.ErrInvalidTime},
		{name: "time without date", input: task.CreateInput{Title: "x", Time: &normalizer.TimeOfDay{Hour: 9}}, wantErr: task.ErrTimeWithoutDate},
		{name: "negative estimate", input: task.CreateInput{Title: "x", EstimatedTime: -1}, wantErr: task.ErrInvalidEstimate},
		{
			name:  "defaults",
			input: task.CreateInput{Title: "  Buy milk ", Tags: []string{"home", " home", "", "errand"}},
			check: func(t *testing.T, got model.Task) {
				assert.Equal(t, "Buy milk", got.Title)
				assert.Equal(t, normalizer.PriorityMedium, got.Priority)
				assert.Equal(t, []string{"home", "errand"}, got.Tags)
				assert.True(t, got.CreatedAt.Equal(testNow))
			},
		},
		{
			name:  "relative due date",
			input: task.CreateInput{Title: "x", DueDate: "next friday"},
			check: func(t *testing.T, got model.Task) {
				assert.Equal(t, "2025-06-06", got.DueDate)
			},
		},
		{
			name:  "auto urgency overrides picked priority",
			input: task.CreateInput{Title: "x", DueDate: "2025-06-20", Priority: "urgent", AutoUrgency: true},
			check: func(t *testing.T, got model.Task) {
				assert.Equal(t, normalizer.PriorityLow, got.Priority)
			},
		},
		{
			name:  "priority kept without flag",
			input: task.CreateInput{Title: "x", DueDate: "2025-06-20", Priority: "Urgent"},
			check: func(t *testing.T, got model.Task) {
				assert.Equal(t, normalizer.PriorityUrgent, got.Priority)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			out, err := f.uc.Create(ctx, model.Scope{}, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, out.Task)
		})
	}
}

func TestCreate_WorkloadUrgency(t *testing.T) {
	f := newFixture(t, func(c *Config) { c.Urgency = normalizer.UrgencyWorkload })
	seed(t, f.repo,
		model.Task{ID: "a", Title: "a", Status: model.StatusInProgress, EstimatedTime: 120},
		model.Task{ID: "b", Title: "b", Status: model.StatusInProgress, EstimatedTime: 100},
	)

	out, err := f.uc.Create(context.Background(), model.Scope{}, task.CreateInput{
		Title: "x", DueDate: "2025-06-05", EstimatedTime: 30, AutoUrgency: true,
	})
	require.NoError(t, err)
	assert.Equal(t, normalizer.PriorityHigh, out.Task.Priority)
}

func TestCreate_Calendar(t *testing.T) {
	ctx := context.Background()

	t.Run("timed task is booked", func(t *testing.T) {
		cal := &fakeCalendar{}
		f := newFixture(t, func(c *Config) { c.Calendar = cal; c.CalendarID = "work" })
		out, err := f.uc.Create(ctx, model.Scope{}, task.CreateInput{
			Title: "Standup", DueDate: "2025-06-03", Time: &normalizer.TimeOfDay{Hour: 9, Minute: 15}, EstimatedTime: 15,
		})
		require.NoError(t, err)
		assert.Equal(t, "https://calendar.example/ev1", out.Task.CalendarLink)
		require.Len(t, cal.reqs, 1)
		assert.Equal(t, "work", cal.reqs[0].CalendarID)
		assert.Equal(t, 15*time.Minute, cal.reqs[0].EndTime.Sub(cal.reqs[0].StartTime))

		stored, err := f.uc.Detail(ctx, model.Scope{}, out.Task.ID)
		require.NoError(t, err)
		assert.Equal(t, out.Task.CalendarLink, stored.Task.CalendarLink)
	})

	t.Run("untimed task is not booked", func(t *testing.T) {
		cal := &fakeCalendar{}
		f := newFixture(t, func(c *Config) { c.Calendar = cal })
		_, err := f.uc.Create(ctx, model.Scope{}, task.CreateInput{Title: "x", DueDate: "2025-06-03"})
		require.NoError(t, err)
		assert.Empty(t, cal.reqs)
	})

	t.Run("calendar failure keeps the task", func(t *testing.T) {
		cal := &fakeCalendar{err: errors.New("quota")}
		f := newFixture(t, func(c *Config) { c.Calendar = cal })
		out, err := f.uc.Create(ctx, model.Scope{}, task.CreateInput{
			Title: "x", DueDate: "2025-06-03", Time: &normalizer.TimeOfDay{Hour: 9},
		})
		require.NoError(t, err)
		assert.Empty(t, out.Task.CalendarLink)
		assert.NotEmpty(t, out.Task.ID)
	})
}

func TestList(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	base := testNow.Add(-time.Hour)
	seed(t, f.repo,
		model.Task{ID: "t1", Title: "Buy milk", Priority: normalizer.PriorityLow, DueDate: "2025-06-04", Tags: []string{"home"}, CreatedAt: base},
		model.Task{ID: "t2", Title: "Ship release", Priority: normalizer.PriorityUrgent, DueDate: "2025-06-10", CreatedAt: base.Add(time.Minute)},
		model.Task{ID: "t3", Title: "Write report", Priority: normalizer.PriorityUrgent, DueDate: "2025-06-03", Status: model.StatusInProgress, CreatedAt: base.Add(2 * time.Minute)},
		model.Task{ID: "t4", Title: "Old idea", Status: model.StatusArchived, CreatedAt: base.Add(3 * time.Minute)},
		model.Task{ID: "t5", Title: "Call bank", Notes: "about the MILK subscription", CreatedAt: base.Add(4 * time.Minute)},
	)

	ids := func(out task.ListOutput) []string {
		var s []string
		for _, t := range out.Tasks {
			s = append(s, t.ID)
		}
		return s
	}

	tests := []struct {
		name    string
		input   task.ListInput
		want    []string
		total   int
		wantErr error
	}{
		{name: "default priority order hides archived", input: task.ListInput{}, want: []string{"t3", "t2", "t5", "t1"}, total: 4},
		{name: "include archived", input: task.ListInput{IncludeArchived: true, Sort: "created"}, want: []string{"t5", "t4", "t3", "t2", "t1"}, total: 5},
		{name: "archived by status", input: task.ListInput{Status: "archived"}, want: []string{"t4"}, total: 1},
		{name: "status alias", input: task.ListInput{Status: "in_progress"}, want: []string{"t3"}, total: 1},
		{name: "priority", input: task.ListInput{Priority: "URGENT"}, want: []string{"t3", "t2"}, total: 2},
		{name: "tag", input: task.ListInput{Tag: "home"}, want: []string{"t1"}, total: 1},
		{name: "search notes and title", input: task.ListInput{Search: "milk"}, want: []string{"t5", "t1"}, total: 2},
		{name: "due range", input: task.ListInput{DueFrom: "2025-06-04", DueTo: "2025-06-10"}, want: []string{"t2", "t1"}, total: 2},
		{name: "sort by due", input: task.ListInput{Sort: "due"}, want: []string{"t3", "t1", "t2", "t5"}, total: 4},
		{name: "paging", input: task.ListInput{Limit: 2, Offset: 1}, want: []string{"t2", "t5"}, total: 4},
		{name: "offset past end", input: task.ListInput{Offset: 10}, want: nil, total: 4},
		{name: "bad status", input: task.ListInput{Status: "blocked"}, wantErr: task.ErrInvalidStatus},
		{name: "bad priority", input: task.ListInput{Priority: "p0"}, wantErr: task.ErrInvalidPriority},
		{name: "bad due bound", input: task.ListInput{DueFrom: "June"}, wantErr: task.ErrInvalidDueDate},
		{name: "bad sort", input: task.ListInput{Sort: "random"}, wantErr: task.ErrInvalidSort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := f.uc.List(ctx, model.Scope{}, tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(out))
			assert.Equal(t, tt.total, out.Total)
		})
	}
}

func TestOverview(t *testing.T) {
	f := newFixture(t, nil)
	seed(t, f.repo,
		model.Task{ID: "t1", Title: "a", Priority: normalizer.PriorityLow},
		model.Task{ID: "t2", Title: "b", Priority: normalizer.PriorityHigh},
		model.Task{ID: "t3", Title: "c", Priority: normalizer.PriorityUrgent, Status: model.StatusCompleted},
		model.Task{ID: "t4", Title: "d", Priority: normalizer.PriorityUrgent, Status: model.StatusInProgress},
	)

	out, err := f.uc.Overview(context.Background(), model.Scope{}, 2)
	require.NoError(t, err)
	require.Len(t, out.Tasks, 2)
	assert.Equal(t, "t4", out.Tasks[0].ID)
	assert.Equal(t, "t2", out.Tasks[1].ID)
	assert.Equal(t, 3, out.Total)
}

func TestResolveID(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	seed(t, f.repo,
		model.Task{ID: "abc123", Title: "a"},
		model.Task{ID: "abd456", Title: "b"},
	)

	out, err := f.uc.Detail(ctx, model.Scope{}, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc123", out.Task.ID)

	out, err = f.uc.Detail(ctx, model.Scope{}, "ABD")
	require.NoError(t, err)
	assert.Equal(t, "abd456", out.Task.ID)

	_, err = f.uc.Detail(ctx, model.Scope{}, "ab")
	assert.ErrorIs(t, err, task.ErrAmbiguousID)

	_, err = f.uc.Detail(ctx, model.Scope{}, "zzz")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)

	_, err = f.uc.Detail(ctx, model.Scope{UserID: "other"}, "abc123")
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("partial", func(t *testing.T) {
		f := newFixture(t, nil)
		seed(t, f.repo, model.Task{ID: "t1", Title: "a", Description: "keep", DueDate: "2025-06-04", Tags: []string{"x"}})

		out, err := f.uc.Update(ctx, model.Scope{}, task.UpdateInput{
			ID: "t1", Title: "b", Priority: "high", Time: &normalizer.TimeOfDay{Hour: 8}, ActualTime: 20,
		})
		require.NoError(t, err)
		assert.Equal(t, "b", out.Task.Title)
		assert.Equal(t, "keep", out.Task.Description)
		assert.Equal(t, normalizer.PriorityHigh, out.Task.Priority)
		assert.Equal(t, 8, out.Task.Time.Hour)
		assert.Equal(t, 20, out.Task.ActualTime)
		assert.Equal(t, []string{"x"}, out.Task.Tags)
		assert.True(t, out.Task.UpdatedAt.Equal(testNow))
	})

	t.Run("time needs a date", func(t *testing.T) {
		f := newFixture(t, nil)
		seed(t, f.repo, model.Task{ID: "t1", Title: "a"})
		_, err := f.uc.Update(ctx, model.Scope{}, task.UpdateInput{ID: "t1", Time: &normalizer.TimeOfDay{Hour: 8}})
		assert.ErrorIs(t, err, task.ErrTimeWithoutDate)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.uc.Update(ctx, model.Scope{}, task.UpdateInput{ID: "nope", Title: "x"})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}

func TestSetStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	seed(t, f.repo, model.Task{ID: "t1", Title: "a"})

	out, err := f.uc.SetStatus(ctx, model.Scope{}, task.SetStatusInput{ID: "t1", Status: "done"})
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, out.Task.Status)
	require.NotNil(t, out.Task.CompletedAt)

	out, err = f.uc.SetStatus(ctx, model.Scope{}, task.SetStatusInput{ID: "t1", Status: "completed"})
	require.NoError(t, err)
	assert.NotNil(t, out.Task.CompletedAt)

	_, err = f.uc.SetStatus(ctx, model.Scope{}, task.SetStatusInput{ID: "t1", Status: "in-progress"})
	assert.ErrorIs(t, err, task.ErrInvalidTransition)

	out, err = f.uc.SetStatus(ctx, model.Scope{}, task.SetStatusInput{ID: "t1", Status: "todo"})
	require.NoError(t, err)
	assert.Nil(t, out.Task.CompletedAt)

	_, err = f.uc.SetStatus(ctx, model.Scope{}, task.SetStatusInput{ID: "t1", Status: "paused"})
	assert.ErrorIs(t, err, task.ErrInvalidStatus)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	seed(t, f.repo, model.Task{ID: "abc", Title: "a"})

	require.NoError(t, f.uc.Delete(ctx, model.Scope{}, "ab"))
	assert.ErrorIs(t, f.uc.Delete(ctx, model.Scope{}, "abc"), task.ErrTaskNotFound)
}

func TestStats(t *testing.T) {
	f := newFixture(t, nil)
	yesterday := testNow.AddDate(0, 0, -1)
	earlier := testNow.Add(-2 * time.Hour)
	seed(t, f.repo,
		model.Task{ID: "t1", Title: "a", Priority: normalizer.PriorityUrgent, DueDate: "2025-06-02"},
		model.Task{ID: "t2", Title: "b", DueDate: "2025-05-30", Status: model.StatusInProgress},
		model.Task{ID: "t3", Title: "c", Priority: normalizer.PriorityUrgent, DueDate: "2025-05-30", Status: model.StatusCompleted, CompletedAt: &earlier},
		model.Task{ID: "t4", Title: "d", Status: model.StatusCompleted, CompletedAt: &yesterday},
		model.Task{ID: "t5", Title: "e", Priority: normalizer.PriorityUrgent, DueDate: "2025-06-02", Status: model.StatusArchived},
		model.Task{ID: "t6", Title: "f", DueDate: "2025-06-09"},
	)

	out, err := f.uc.Stats(context.Background(), model.Scope{})
	require.NoError(t, err)
	assert.Equal(t, task.StatsOutput{
		Total:          6,
		Completed:      2,
		Urgent:         1,
		DueToday:       1,
		Overdue:        1,
		InProgress:     1,
		CompletedToday: 1,
	}, out)
}

// vanishingRepo deletes the target task right before every write, as a
// concurrent delete would.
type vanishingRepo struct {
	repository.Repository
}

func (r vanishingRepo) UpdateTask(ctx context.Context, opt repository.UpdateTaskOptions) (model.Task, error) {
	_ = r.Repository.DeleteTask(ctx, repository.DeleteTaskOptions{Owner: opt.Owner, ID: opt.Task.ID})
	return r.Repository.UpdateTask(ctx, opt)
}

func (r vanishingRepo) DeleteTask(ctx context.Context, opt repository.DeleteTaskOptions) error {
	_ = r.Repository.DeleteTask(ctx, opt)
	return r.Repository.DeleteTask(ctx, opt)
}

func TestWrites_TaskDeletedConcurrently(t *testing.T) {
	ctx := context.Background()
	newUC := func(t *testing.T) task.UseCase {
		t.Helper()
		parser, err := datemath.NewParser("UTC")
		require.NoError(t, err)
		inner := memory.New()
		seed(t, inner, model.Task{ID: "t1", Title: "a"})
		uc, err := New(vanishingRepo{Repository: inner}, &fakeLLM{}, Config{
			Parser: parser,
			Clock:  func() time.Time { return testNow },
		}, log.NewNop())
		require.NoError(t, err)
		return uc
	}

	t.Run("update", func(t *testing.T) {
		_, err := newUC(t).Update(ctx, model.Scope{}, task.UpdateInput{ID: "t1", Title: "b"})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("set status", func(t *testing.T) {
		_, err := newUC(t).SetStatus(ctx, model.Scope{}, task.SetStatusInput{ID: "t1", Status: "done"})
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		err := newUC(t).Delete(ctx, model.Scope{}, "t1")
		assert.ErrorIs(t, err, task.ErrTaskNotFound)
	})
}
