// Package ollama runs task parsing against a local Ollama server.
package ollama

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	DefaultHost    = "http://localhost:11434"
	DefaultModel   = "llama3.2"
	DefaultTimeout = 120 * time.Second
)

// ErrEmptyResponse is returned when the server finishes without any message.
var ErrEmptyResponse = errors.New("ollama: chat returned no response")

// Config holds Ollama client configuration
type Config struct {
	Host       string
	Model      string
	HTTPClient *http.Client
}

// Request is a single-turn chat request.
type Request struct {
	System      string
	Prompt      string
	Temperature float64
	JSONMode    bool
}

// Response is the accumulated assistant message.
type Response struct {
	Content      string
	InputTokens  int
	OutputTokens int
}

// Client wraps the Ollama API client. Safe for concurrent use.
type Client struct {
	api   *api.Client
	model string
}

// New creates a client for the configured host.
func New(cfg Config) (*Client, error) {
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}

	base, err := url.Parse(cfg.Host)
	if err != nil {
		return nil, fmt.Errorf("ollama: invalid host %q: %w", cfg.Host, err)
	}

	return &Client{
		api:   api.NewClient(base, cfg.HTTPClient),
		model: cfg.Model,
	}, nil
}

// Model returns the model being used
func (c *Client) Model() string {
	return c.model
}

// Chat sends a non-streaming chat request.
func (c *Client) Chat(ctx context.Context, req *Request) (*Response, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model:  c.model,
		Stream: &stream,
	}
	if req.JSONMode {
		chatReq.Format = json.RawMessage(`"json"`)
	}
	if req.Temperature > 0 {
		chatReq.Options = map[string]any{"temperature": req.Temperature}
	}
	if req.System != "" {
		chatReq.Messages = append(chatReq.Messages, api.Message{Role: "system", Content: req.System})
	}
	chatReq.Messages = append(chatReq.Messages, api.Message{Role: "user", Content: req.Prompt})

	var (
		final   *api.ChatResponse
		content strings.Builder
	)
	err := c.api.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		respCopy := resp
		final = &respCopy
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: chat request failed: %w", err)
	}
	if final == nil {
		return nil, ErrEmptyResponse
	}

	return &Response{
		Content:      content.String(),
		InputTokens:  final.PromptEvalCount,
		OutputTokens: final.EvalCount,
	}, nil
}

// StatusCode extracts the HTTP status of a failed call, or 0 when err did not come from the server.
func StatusCode(err error) int {
	var se api.StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	var sep *api.StatusError
	if errors.As(err, &sep) {
		return sep.StatusCode
	}
	return 0
}
