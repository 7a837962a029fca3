package llm

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
)

// Generate calls the client with retries and exponential backoff. Only
// transient failures are retried: timeouts, rate limiting and server errors.
// Anything else fails immediately. The delay doubles each attempt starting
// from cfg.BaseDelay.
func Generate(ctx context.Context, client Client, cfg *Config, prompt string) (string, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	var lastErr error
	delay := cfg.BaseDelay
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		text, err := client.GenerateJSON(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return "", err
		}
		if attempt == cfg.MaxAttempts {
			break
		}

		log.Printf("[llm] transient failure on attempt %d/%d, retrying in %s: %v",
			attempt, cfg.MaxAttempts, delay, err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return "", lastErr
}

// IsRetryable classifies an error as transient. Connection timeouts, HTTP 429
// and HTTP 5xx from the Gemini transport are retryable; other client errors
// are not.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= 500
	}

	return false
}
