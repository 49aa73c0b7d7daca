package openrouter

import "context"

// IClient is a chat completions client for OpenRouter and other
// OpenAI-compatible endpoints. Implementations are safe for concurrent use.
type IClient interface {
	// Complete sends a chat completion request and returns the first choice.
	Complete(ctx context.Context, req *Request) (*Response, error)

	// Model returns the model being used
	Model() string
}

// New creates a new client with the given configuration
func New(cfg Config) (IClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClientImpl(cfg), nil
}
