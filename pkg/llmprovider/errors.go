package llmprovider

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAllProvidersFailed indicates all providers failed to generate content
	ErrAllProvidersFailed = errors.New("all providers failed")

	// ErrNoProvidersConfigured indicates no providers are enabled
	ErrNoProvidersConfigured = errors.New("no providers configured")

	// ErrInvalidRequest indicates the request is malformed
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProviderUnauthorized indicates the upstream rejected our credentials
	ErrProviderUnauthorized = errors.New("provider unauthorized")

	// ErrProviderRateLimited indicates rate limit exceeded
	ErrProviderRateLimited = errors.New("provider rate limited")
)

// ProviderError wraps provider-specific errors
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// classifyStatus tags err with a sentinel matching the upstream HTTP status.
func classifyStatus(provider string, status int, err error) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		err = fmt.Errorf("%w: %w", ErrProviderUnauthorized, err)
	case http.StatusTooManyRequests:
		err = fmt.Errorf("%w: %w", ErrProviderRateLimited, err)
	}
	return &ProviderError{Provider: provider, Err: err}
}

// terminal reports errors that retrying the same provider cannot fix.
func terminal(err error) bool {
	return errors.Is(err, ErrProviderUnauthorized) ||
		errors.Is(err, ErrProviderRateLimited) ||
		errors.Is(err, ErrInvalidRequest)
}
