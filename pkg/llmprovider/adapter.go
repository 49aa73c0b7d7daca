package llmprovider

import (
	"context"
	"errors"
	"strings"

	"task-planner/pkg/gemini"
	"task-planner/pkg/ollama"
	"task-planner/pkg/openrouter"
)

// OpenAIAdapter adapts pkg/openrouter to llmprovider.Provider. It serves
// openrouter, deepseek and qwen, which share the chat completions contract.
type OpenAIAdapter struct {
	name   string
	client openrouter.IClient
}

// NewOpenAIAdapter creates a new adapter reporting itself as name.
func NewOpenAIAdapter(name string, client openrouter.IClient) *OpenAIAdapter {
	return &OpenAIAdapter{name: name, client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	msgs := make([]openrouter.Message, 0, len(req.Messages)+1)
	if req.SystemInstruction != "" {
		msgs = append(msgs, openrouter.Message{Role: "system", Content: req.SystemInstruction})
	}
	for _, m := range req.Messages {
		msgs = append(msgs, openrouter.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := a.client.Complete(ctx, &openrouter.Request{
		Messages:    msgs,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		JSONMode:    req.JSONMode,
	})
	if err != nil {
		var apiErr *openrouter.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus(a.name, apiErr.StatusCode, err)
		}
		return nil, &ProviderError{Provider: a.name, Err: err}
	}

	return &Response{
		Text:         resp.Content,
		ProviderName: a.name,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return a.name
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: req.SystemInstruction,
		Prompt:            joinUserTurns(req.Messages),
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
		JSONMode:          req.JSONMode,
	})
	if err != nil {
		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) {
			return nil, classifyStatus("gemini", apiErr.StatusCode, err)
		}
		return nil, &ProviderError{Provider: "gemini", Err: err}
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: "gemini",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return "gemini"
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}

// OllamaAdapter adapts pkg/ollama to llmprovider.Provider interface
type OllamaAdapter struct {
	client *ollama.Client
}

// NewOllamaAdapter creates a new Ollama adapter
func NewOllamaAdapter(client *ollama.Client) *OllamaAdapter {
	return &OllamaAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OllamaAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	resp, err := a.client.Chat(ctx, &ollama.Request{
		System:      req.SystemInstruction,
		Prompt:      joinUserTurns(req.Messages),
		Temperature: req.Temperature,
		JSONMode:    req.JSONMode,
	})
	if err != nil {
		return nil, classifyStatus("ollama", ollama.StatusCode(err), err)
	}

	return &Response{
		Text:         resp.Content,
		ProviderName: "ollama",
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.InputTokens,
			OutputTokens: resp.OutputTokens,
			TotalTokens:  resp.InputTokens + resp.OutputTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OllamaAdapter) Name() string {
	return "ollama"
}

// Model returns model name
func (a *OllamaAdapter) Model() string {
	return a.client.Model()
}

// joinUserTurns flattens the conversation for single-prompt backends.
func joinUserTurns(msgs []Message) string {
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m.Content != "" {
			parts = append(parts, m.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}
