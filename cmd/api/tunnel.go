package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// tunnelsResponse matches the /api/tunnels response of the ngrok agent API.
type tunnelsResponse struct {
	Tunnels []struct {
		PublicURL string `json:"public_url"`
		Proto     string `json:"proto"`
	} `json:"tunnels"`
}

var errNoTunnels = errors.New("no active tunnels")

// detectTunnelURL asks a local ngrok agent for its public URL, preferring
// HTTPS. The agent may still be starting, so failures are retried.
func detectTunnelURL(ctx context.Context, apiBase string, attempts uint64, interval time.Duration) (string, error) {
	client := &http.Client{Timeout: 5 * time.Second}
	backoff := retry.WithMaxRetries(attempts, retry.NewConstant(interval))

	var publicURL string
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+"/api/tunnels", nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		var out tunnelsResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return fmt.Errorf("decode tunnels: %w", err)
		}
		if len(out.Tunnels) == 0 {
			return retry.RetryableError(errNoTunnels)
		}

		publicURL = out.Tunnels[0].PublicURL
		for _, t := range out.Tunnels {
			if t.Proto == "https" {
				publicURL = t.PublicURL
				break
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("tunnel agent at %s: %w", apiBase, err)
	}
	return publicURL, nil
}
