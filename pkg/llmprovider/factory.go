package llmprovider

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"task-planner/config"
	"task-planner/pkg/gemini"
	"task-planner/pkg/ollama"
	"task-planner/pkg/openrouter"
)

// FactoryOptions carries settings shared by every provider.
type FactoryOptions struct {
	// Referer is sent to OpenRouter as HTTP-Referer.
	Referer string
}

// InitializeProviders creates Provider instances from config.LLMConfig
// Returns providers sorted by priority (ascending) with disabled providers filtered out
// Skips providers that fail to initialize instead of failing the entire service
func InitializeProviders(cfg *config.LLMConfig, opts FactoryOptions) ([]Provider, []error, error) {
	if cfg == nil {
		return nil, nil, fmt.Errorf("LLM config is nil")
	}

	var enabledProviders []config.ProviderConfig
	for _, p := range cfg.Providers {
		if p.Enabled {
			enabledProviders = append(enabledProviders, p)
		}
	}

	if len(enabledProviders) == 0 {
		return nil, nil, ErrNoProvidersConfigured
	}

	sort.SliceStable(enabledProviders, func(i, j int) bool {
		return enabledProviders[i].Priority < enabledProviders[j].Priority
	})

	var providers []Provider
	var initErrors []error

	for _, p := range enabledProviders {
		provider, err := createProvider(p, opts)
		if err != nil {
			initErrors = append(initErrors, fmt.Errorf("provider %s (priority %d): %w", p.Name, p.Priority, err))
			continue
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		msgs := make([]string, len(initErrors))
		for i, e := range initErrors {
			msgs[i] = e.Error()
		}
		return nil, initErrors, fmt.Errorf("no providers successfully initialized: %s", strings.Join(msgs, "; "))
	}

	return providers, initErrors, nil
}

// createProvider creates a concrete provider instance based on the provider config
func createProvider(cfg config.ProviderConfig, opts FactoryOptions) (Provider, error) {
	name := strings.ToLower(cfg.Name)
	if name != "ollama" && cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}

	httpClient := &http.Client{Timeout: config.ParseDuration(cfg.Timeout, openrouter.DefaultTimeout)}

	switch name {
	case "openrouter", "deepseek", "qwen", "alibaba":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			switch name {
			case "deepseek":
				baseURL = openrouter.DeepSeekBaseURL
			case "qwen", "alibaba":
				baseURL = openrouter.QwenBaseURL
			}
		}
		client, err := openrouter.New(openrouter.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    baseURL,
			HTTPClient: httpClient,
			Referer:    opts.Referer,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", name, err)
		}
		return NewOpenAIAdapter(name, client), nil

	case "gemini":
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	case "ollama":
		client, err := ollama.New(ollama.Config{
			Host:       cfg.BaseURL,
			Model:      cfg.Model,
			HTTPClient: &http.Client{Timeout: config.ParseDuration(cfg.Timeout, ollama.DefaultTimeout)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewOllamaAdapter(client), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Name)
	}
}

// ManagerConfigFrom converts the string durations of config.LLMConfig.
func ManagerConfigFrom(cfg *config.LLMConfig) *Config {
	return &Config{
		FallbackEnabled: cfg.FallbackEnabled,
		RetryAttempts:   cfg.RetryAttempts,
		RetryDelay:      config.ParseDuration(cfg.RetryDelay, time.Second),
		MaxTotalTimeout: config.ParseDuration(cfg.MaxTotalTimeout, 60*time.Second),
	}
}
