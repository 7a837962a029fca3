package llm

import (
	"os"
	"strconv"
	"time"
)

// Config holds model and retry settings for the generative client.
type Config struct {
	Model       string
	Timeout     time.Duration
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultConfig returns the standard settings: the flash-tier model, a 30s
// call timeout and up to 5 attempts with a 1s backoff base.
func DefaultConfig() *Config {
	return &Config{
		Model:       "gemini-1.5-flash-latest",
		Timeout:     30 * time.Second,
		MaxAttempts: 5,
		BaseDelay:   time.Second,
	}
}

// ConfigFromEnv builds a Config from LLM_MODEL, LLM_TIMEOUT_SECONDS and
// LLM_MAX_ATTEMPTS, falling back to defaults for anything unset or invalid.
func ConfigFromEnv() *Config {
	cfg := DefaultConfig()

	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.Model = model
	}
	if v := os.Getenv("LLM_TIMEOUT_SECONDS"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil && seconds > 0 {
			cfg.Timeout = time.Duration(seconds) * time.Second
		}
	}
	if v := os.Getenv("LLM_MAX_ATTEMPTS"); v != "" {
		if attempts, err := strconv.Atoi(v); err == nil && attempts > 0 {
			cfg.MaxAttempts = attempts
		}
	}

	return cfg
}
