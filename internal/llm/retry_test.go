package llm

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

// scriptedClient returns one queued response per call.
type scriptedClient struct {
	responses []string
	errs      []error
	calls     int
}

func (c *scriptedClient) GenerateJSON(_ context.Context, _ string) (string, error) {
	i := c.calls
	c.calls++
	if i >= len(c.errs) {
		i = len(c.errs) - 1
	}
	return c.responses[i], c.errs[i]
}

func (c *scriptedClient) Close() error { return nil }

func fastConfig(attempts int) *Config {
	return &Config{Model: "test", Timeout: time.Second, MaxAttempts: attempts, BaseDelay: time.Millisecond}
}

func TestGenerate_SucceedsFirstTry(t *testing.T) {
	client := &scriptedClient{responses: []string{`{"ok":true}`}, errs: []error{nil}}

	text, err := Generate(context.Background(), client, fastConfig(3), "prompt")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, text)
	assert.Equal(t, 1, client.calls)
}

func TestGenerate_RetriesRateLimitThenSucceeds(t *testing.T) {
	rateLimited := &googleapi.Error{Code: http.StatusTooManyRequests}
	client := &scriptedClient{
		responses: []string{"", "", "done"},
		errs:      []error{rateLimited, rateLimited, nil},
	}

	text, err := Generate(context.Background(), client, fastConfig(5), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "done", text)
	assert.Equal(t, 3, client.calls)
}

func TestGenerate_FailsFastOnClientError(t *testing.T) {
	badRequest := &googleapi.Error{Code: http.StatusBadRequest}
	client := &scriptedClient{responses: []string{""}, errs: []error{badRequest}}

	_, err := Generate(context.Background(), client, fastConfig(5), "prompt")
	require.Error(t, err)
	assert.Equal(t, 1, client.calls)
}

func TestGenerate_ExhaustsRetries(t *testing.T) {
	unavailable := &googleapi.Error{Code: http.StatusServiceUnavailable}
	client := &scriptedClient{responses: []string{""}, errs: []error{unavailable}}

	_, err := Generate(context.Background(), client, fastConfig(3), "prompt")
	require.Error(t, err)
	assert.Equal(t, 3, client.calls)

	var apiErr *googleapi.Error
	assert.True(t, errors.As(err, &apiErr))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&googleapi.Error{Code: 429}))
	assert.True(t, IsRetryable(&googleapi.Error{Code: 500}))
	assert.True(t, IsRetryable(&googleapi.Error{Code: 503}))
	assert.False(t, IsRetryable(&googleapi.Error{Code: 400}))
	assert.False(t, IsRetryable(&googleapi.Error{Code: 404}))
	assert.False(t, IsRetryable(errors.New("parse failure")))
	assert.False(t, IsRetryable(nil))
}

func TestCleanJSONBlock(t *testing.T) {
	cases := map[string]string{
		"```json\n{\"feedback\":[]}\n```": `{"feedback":[]}`,
		"```\n{\"a\":1}\n```":             `{"a":1}`,
		`{"a":1}`:                         `{"a":1}`,
		"  {\"a\":1}  ":                   `{"a":1}`,
	}
	for input, want := range cases {
		assert.Equal(t, want, CleanJSONBlock(input), "input %q", input)
	}
}
