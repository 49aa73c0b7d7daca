package llmprovider

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"task-planner/config"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name      string
	model     string
	err       error
	failTimes int
	response  *Response

	mu        sync.Mutex
	callCount int
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount++
	if m.err != nil && (m.failTimes == 0 || m.callCount <= m.failTimes) {
		return nil, m.err
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

func (m *mockProvider) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	mu           sync.Mutex
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infoMessages = append(m.infoMessages, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnMessages = append(m.warnMessages, fmt.Sprintf(template, arg...))
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func okResponse(name string) *Response {
	return &Response{
		Text:         `{"title":"Call mom"}`,
		ProviderName: name,
		ModelName:    name + "-model",
		Usage:        &Usage{InputTokens: 100, OutputTokens: 20, TotalTokens: 120},
	}
}

func testRequest() *Request {
	return UserText("parse tasks", "call mom tomorrow")
}

func fastConfig(fallback bool, attempts int) *Config {
	return &Config{
		FallbackEnabled: fallback,
		RetryAttempts:   attempts,
		RetryDelay:      time.Millisecond,
		MaxTotalTimeout: 5 * time.Second,
	}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", response: okResponse("primary")}
	secondary := &mockProvider{name: "secondary", model: "secondary-model", response: okResponse("secondary")}
	logger := &mockLogger{}

	manager := NewManager([]Provider{primary, secondary}, fastConfig(true, 3), logger)
	resp, err := manager.GenerateContent(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "primary" {
		t.Errorf("Expected primary provider, got %s", resp.ProviderName)
	}
	if primary.calls() != 1 || secondary.calls() != 0 {
		t.Errorf("Unexpected call counts: primary=%d secondary=%d", primary.calls(), secondary.calls())
	}
	if len(logger.infoMessages) != 1 {
		t.Errorf("Expected 1 info log, got %d", len(logger.infoMessages))
	}
}

func TestGenerateContent_RetriesTransientFailure(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("connection reset"), failTimes: 2, response: okResponse("primary")}
	manager := NewManager([]Provider{primary}, fastConfig(false, 3), &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Expected recovery after retries, got: %v", err)
	}
	if resp.ProviderName != "primary" || primary.calls() != 3 {
		t.Errorf("Expected 3 calls on primary, got %d", primary.calls())
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("boom")}
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary")}
	logger := &mockLogger{}

	manager := NewManager([]Provider{primary, secondary}, fastConfig(true, 2), logger)
	resp, err := manager.GenerateContent(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if resp.ProviderName != "secondary" {
		t.Errorf("Expected secondary provider, got %s", resp.ProviderName)
	}
	if primary.calls() != 2 {
		t.Errorf("Expected primary to be retried twice, got %d", primary.calls())
	}
	if len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 warn log, got %d", len(logger.warnMessages))
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("primary down")}
	secondary := &mockProvider{name: "secondary", err: errors.New("secondary down")}

	manager := NewManager([]Provider{primary, secondary}, fastConfig(true, 1), &mockLogger{})
	_, err := manager.GenerateContent(context.Background(), testRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("Expected ErrAllProvidersFailed, got: %v", err)
	}
}

func TestGenerateContent_NoFallbackWhenDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", err: errors.New("primary down")}
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary")}

	manager := NewManager([]Provider{primary, secondary}, fastConfig(false, 1), &mockLogger{})
	_, err := manager.GenerateContent(context.Background(), testRequest())
	if err == nil {
		t.Fatal("Expected error when fallback disabled")
	}
	if secondary.calls() != 0 {
		t.Errorf("Secondary should not be called, got %d calls", secondary.calls())
	}
}

func TestGenerateContent_TerminalErrorsAreNotRetried(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{name: "unauthorized", err: classifyStatus("primary", 401, errors.New("bad key")), sentinel: ErrProviderUnauthorized},
		{name: "forbidden", err: classifyStatus("primary", 403, errors.New("no access")), sentinel: ErrProviderUnauthorized},
		{name: "rate limited", err: classifyStatus("primary", 429, errors.New("slow down")), sentinel: ErrProviderRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			primary := &mockProvider{name: "primary", err: tt.err}
			manager := NewManager([]Provider{primary}, fastConfig(false, 5), &mockLogger{})

			_, err := manager.GenerateContent(context.Background(), testRequest())
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Expected %v, got: %v", tt.sentinel, err)
			}
			if errors.Is(err, ErrAllProvidersFailed) {
				t.Errorf("Terminal error should not be wrapped as all-failed: %v", err)
			}
			if primary.calls() != 1 {
				t.Errorf("Expected exactly one call, got %d", primary.calls())
			}
		})
	}
}

func TestGenerateContent_RateLimitFallsBack(t *testing.T) {
	primary := &mockProvider{name: "primary", err: classifyStatus("primary", 429, errors.New("slow down"))}
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary")}

	manager := NewManager([]Provider{primary, secondary}, fastConfig(true, 3), &mockLogger{})
	resp, err := manager.GenerateContent(context.Background(), testRequest())
	if err != nil {
		t.Fatalf("Expected fallback success, got: %v", err)
	}
	if resp.ProviderName != "secondary" || primary.calls() != 1 {
		t.Errorf("Unexpected routing: provider=%s primary calls=%d", resp.ProviderName, primary.calls())
	}
}

func TestGenerateContent_NoProvidersConfigured(t *testing.T) {
	manager := NewManager([]Provider{}, fastConfig(true, 1), &mockLogger{})
	_, err := manager.GenerateContent(context.Background(), testRequest())
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("Expected ErrNoProvidersConfigured, got: %v", err)
	}
}

func TestGenerateContent_InvalidRequest(t *testing.T) {
	primary := &mockProvider{name: "primary", response: okResponse("primary")}
	manager := NewManager([]Provider{primary}, fastConfig(true, 1), &mockLogger{})
	_, err := manager.GenerateContent(context.Background(), &Request{})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Expected ErrInvalidRequest, got: %v", err)
	}
}

func TestGenerateContent_CancelledContext(t *testing.T) {
	primary := &mockProvider{name: "primary", response: okResponse("primary")}
	manager := NewManager([]Provider{primary}, fastConfig(true, 1), &mockLogger{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := manager.GenerateContent(ctx, testRequest())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got: %v", err)
	}
}

func TestInitializeProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 3, APIKey: "g", Model: "gemini-2.5-flash"},
			{Name: "openrouter", Enabled: true, Priority: 1, APIKey: "o", Model: "mistralai/mistral-7b-instruct"},
			{Name: "ollama", Enabled: true, Priority: 2, Model: "llama3.2"},
			{Name: "deepseek", Enabled: false, Priority: 4, APIKey: "d", Model: "deepseek-chat"},
			{Name: "qwen", Enabled: true, Priority: 5, Model: "qwen-plus"},
		},
	}

	providers, initErrs, err := InitializeProviders(cfg, FactoryOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(initErrs) != 1 {
		t.Errorf("expected qwen without key to fail init, got %v", initErrs)
	}

	want := []string{"openrouter", "ollama", "gemini"}
	if len(providers) != len(want) {
		t.Fatalf("expected %d providers, got %d", len(want), len(providers))
	}
	for i, p := range providers {
		if p.Name() != want[i] {
			t.Errorf("provider %d = %s, want %s", i, p.Name(), want[i])
		}
	}
}

func TestInitializeProviders_NoneEnabled(t *testing.T) {
	_, _, err := InitializeProviders(&config.LLMConfig{}, FactoryOptions{})
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}

	_, _, err = InitializeProviders(&config.LLMConfig{Providers: []config.ProviderConfig{
		{Name: "mystery", Enabled: true, Priority: 1, APIKey: "k", Model: "m"},
	}}, FactoryOptions{})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
}
