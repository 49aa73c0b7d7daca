package httpserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	habitMemory "task-planner/internal/habit/repository/memory"
	habitUC "task-planner/internal/habit/usecase"
	taskMemory "task-planner/internal/task/repository/memory"
	taskUC "task-planner/internal/task/usecase"
	"task-planner/pkg/log"
)

type fakeTelegram struct{ called bool }

func (f *fakeTelegram) HandleWebhook(c *gin.Context) {
	f.called = true
	c.Status(http.StatusOK)
}

func newTestServer(t *testing.T, mutate func(*Config)) *HTTPServer {
	t.Helper()
	tasks, err := taskUC.New(taskMemory.New(), nil, taskUC.Config{}, log.NewNop())
	require.NoError(t, err)
	habits, err := habitUC.New(habitMemory.New(), nil, nil, log.NewNop())
	require.NoError(t, err)

	cfg := Config{
		Port:         8080,
		Mode:         gin.TestMode,
		TaskUseCase:  tasks,
		HabitUseCase: habits,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	srv, err := New(log.NewNop(), cfg)
	require.NoError(t, err)
	return srv
}

func serve(srv *HTTPServer, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestNew_Validation(t *testing.T) {
	_, err := New(log.NewNop(), Config{Mode: gin.TestMode, Port: 8080})
	assert.Error(t, err)

	_, err = New(log.NewNop(), Config{Mode: gin.TestMode})
	assert.EqualError(t, err, "port is required")
}

func TestSystemRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	for _, path := range []string{"/health", "/ready", "/live"} {
		w := serve(srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), ServiceName, path)
	}
	assert.NotEmpty(t, serve(srv, http.MethodGet, "/health", "").Header().Get("X-Request-ID"))
}

func TestReadyCheck_Failing(t *testing.T) {
	srv := newTestServer(t, func(cfg *Config) {
		cfg.ReadyCheck = func(context.Context) error { return errors.New("redis down") }
	})
	w := serve(srv, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDomainRoutes(t *testing.T) {
	srv := newTestServer(t, nil)

	w := serve(srv, http.MethodPost, "/api/v1/tasks", `{"title":"Write report"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(srv, http.MethodPost, "/api/v1/habits", `{"title":"Read","frequency":"daily"}`)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// No completion provider configured.
	w = serve(srv, http.MethodPost, "/api/parse-task", `{"text":"call mom"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"OpenRouter API key not configured"}`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, serve(srv, http.MethodPost, "/webhook/telegram", `{}`).Code)
}

func TestTelegramRoute(t *testing.T) {
	tg := &fakeTelegram{}
	srv := newTestServer(t, func(cfg *Config) { cfg.TelegramHandler = tg })

	w := serve(srv, http.MethodPost, "/webhook/telegram", `{}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, tg.called)
}

func TestRateLimit_IgnoresSpoofedForwarding(t *testing.T) {
	srv := newTestServer(t, func(c *Config) { c.RateLimitPerMin = 10 })

	parse := func(forwarded string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/parse-task", strings.NewReader(`{"text":"call mom"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwarded)
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)
		return w.Code
	}

	assert.NotEqual(t, http.StatusTooManyRequests, parse("1.1.1.1"))
	assert.Equal(t, http.StatusTooManyRequests, parse("2.2.2.2"))
	assert.Equal(t, http.StatusTooManyRequests, parse("3.3.3.3"))
}

func TestNew_InvalidTrustedProxy(t *testing.T) {
	tasks, err := taskUC.New(taskMemory.New(), nil, taskUC.Config{}, log.NewNop())
	require.NoError(t, err)
	habits, err := habitUC.New(habitMemory.New(), nil, nil, log.NewNop())
	require.NoError(t, err)

	_, err = New(log.NewNop(), Config{
		Port:           8080,
		Mode:           gin.TestMode,
		TaskUseCase:    tasks,
		HabitUseCase:   habits,
		TrustedProxies: []string{"not-an-ip"},
	})
	assert.ErrorContains(t, err, "trusted proxies")
}
