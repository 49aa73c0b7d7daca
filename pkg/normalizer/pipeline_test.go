package normalizer_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-planner/pkg/normalizer"
)

func TestNormalize(t *testing.T) {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		completion string
		opt        normalizer.Options
		want       normalizer.NormalizedTask
		wantErr    error
	}{
		{
			name:       "title only",
			completion: `{"title": "Buy milk"}`,
			want:       normalizer.NormalizedTask{Title: "Buy milk", Priority: normalizer.PriorityMedium},
		},
		{
			name:       "fenced with commentary",
			completion: "Here is the task:\n```json\n{\"title\": \"Call mom\"}\n```",
			want:       normalizer.NormalizedTask{Title: "Call mom", Priority: normalizer.PriorityMedium},
		},
		{
			name:       "full task with padded hour",
			completion: "```json\n{\"title\":\"Call John\",\"description\":\" re: contract \",\"dueDate\":\"2025-06-03\",\"time\":{\"hour\": 09,\"minute\": 00},\"priority\":\"high\",\"estimatedTime\":15}\n```",
			want: normalizer.NormalizedTask{
				Title:         "Call John",
				Description:   "re: contract",
				DueDate:       "2025-06-03",
				Time:          &normalizer.TimeOfDay{Hour: 9, Minute: 0},
				Priority:      normalizer.PriorityHigh,
				EstimatedTime: 15,
			},
		},
		{
			name:       "hour 25 drops time but keeps date",
			completion: `{"title":"x","dueDate":"2025-06-05","time":{"hour":25,"minute":0}}`,
			want:       normalizer.NormalizedTask{Title: "x", DueDate: "2025-06-05", Priority: normalizer.PriorityMedium},
		},
		{
			name:       "minute 75 defaults to zero",
			completion: `{"title":"x","dueDate":"2025-06-05","time":{"hour":10,"minute":75}}`,
			want:       normalizer.NormalizedTask{Title: "x", DueDate: "2025-06-05", Time: &normalizer.TimeOfDay{Hour: 10}, Priority: normalizer.PriorityMedium},
		},
		{
			name:       "critical priority becomes medium",
			completion: `{"title":"x","priority":"critical"}`,
			want:       normalizer.NormalizedTask{Title: "x", Priority: normalizer.PriorityMedium},
		},
		{
			name:       "invalid calendar date dropped",
			completion: `{"title":"x","dueDate":"2025-13-40"}`,
			want:       normalizer.NormalizedTask{Title: "x", Priority: normalizer.PriorityMedium},
		},
		{
			name:       "auto urgency overrides model priority",
			completion: `{"title":"x","dueDate":"2025-06-02","priority":"low"}`,
			opt:        normalizer.Options{Urgency: normalizer.UrgencySimple, Now: now},
			want:       normalizer.NormalizedTask{Title: "x", DueDate: "2025-06-02", Priority: normalizer.PriorityUrgent},
		},
		{
			name:       "auto urgency without due date is medium",
			completion: `{"title":"x","priority":"urgent"}`,
			opt:        normalizer.Options{Urgency: normalizer.UrgencyWorkload, Now: now},
			want:       normalizer.NormalizedTask{Title: "x", Priority: normalizer.PriorityMedium},
		},
		{
			name:       "workload mode uses snapshot",
			completion: `{"title":"x","dueDate":"2025-06-04","estimatedTime":60}`,
			opt: normalizer.Options{
				Urgency:  normalizer.UrgencyWorkload,
				Now:      now,
				Workload: normalizer.Workload{InProgress: 1, InProgressMinutes: 200},
			},
			want: normalizer.NormalizedTask{Title: "x", DueDate: "2025-06-04", EstimatedTime: 60, Priority: normalizer.PriorityHigh},
		},
		{
			name:       "no json",
			completion: "Sorry, I can't help with that.",
			wantErr:    normalizer.ErrNoJSONFound,
		},
		{
			name:       "malformed json",
			completion: `{"title": "x", "dueDate": }`,
			wantErr:    normalizer.ErrMalformedJSON,
		},
		{
			name:       "blank title",
			completion: `{"title": "   ", "dueDate": "2025-06-03"}`,
			wantErr:    normalizer.ErrMissingTitle,
		},
		{
			name:       "array wrapper yields inner object",
			completion: `[{"title": "x"}]`,
			want:       normalizer.NormalizedTask{Title: "x", Priority: normalizer.PriorityMedium},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := normalizer.Normalize("raw user text", tt.completion, tt.opt)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.True(t, normalizer.IsNormalizationError(err))
				var nerr *normalizer.Error
				require.ErrorAs(t, err, &nerr)
				assert.Equal(t, "raw user text", nerr.Input)
				assert.Equal(t, normalizer.Result{}, res)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Task)
		})
	}
}

func TestNormalize_WarningsDoNotFail(t *testing.T) {
	res, err := normalizer.Normalize("", `{"title":"x","description":5,"priority":"asap","estimatedTime":-1,"time":"noon"}`, normalizer.Options{})
	require.NoError(t, err)
	assert.Len(t, res.Warnings, 4)
	assert.Equal(t, "x", res.Task.Title)
}

func TestNormalize_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := normalizer.Normalize("t", `{"title":"parallel","priority":"low"}`, normalizer.Options{})
			assert.NoError(t, err)
			assert.Equal(t, normalizer.PriorityLow, res.Task.Priority)
		}()
	}
	wg.Wait()
}

func TestNormalize_DroppedTime(t *testing.T) {
	res, err := normalizer.Normalize("", `{"title":"Call John","time":{"hour":14,"minute":5}}`, normalizer.Options{})
	require.NoError(t, err)
	assert.Nil(t, res.Task.Time)
	require.NotNil(t, res.DroppedTime)
	assert.Equal(t, normalizer.TimeOfDay{Hour: 14, Minute: 5}, *res.DroppedTime)
	assert.Equal(t, []normalizer.Warning{{Field: "time", Reason: normalizer.ReasonNoDueDate}}, res.Warnings)

	res, err = normalizer.Normalize("", `{"title":"Call John","dueDate":"2025-06-03","time":{"hour":14}}`, normalizer.Options{})
	require.NoError(t, err)
	assert.Nil(t, res.DroppedTime)
	require.NotNil(t, res.Task.Time)

	res, err = normalizer.Normalize("", `{"title":"Call John","time":{"hour":99}}`, normalizer.Options{})
	require.NoError(t, err)
	assert.Nil(t, res.DroppedTime)
}
