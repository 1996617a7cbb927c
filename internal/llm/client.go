package llm

import (
	"context"
	"log"
	"time"
)

// requestTimeout bounds every completion round-trip. The timer is internal to
// the client so a hung provider cannot stall a page build.
const requestTimeout = 15 * time.Second

// Options bounds a single completion request.
type Options struct {
	MaxTokens   int
	Temperature float32
}

// Provider performs one request/response round-trip against a concrete
// text-generation backend.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts Options) (string, error)
	Name() string
}

// Client wraps a Provider with the operational contract the pipeline relies
// on: a missing provider is the designed "disabled" mode, and every failure
// (timeout, transport, malformed response) is converted into an empty reply.
// Callers treat "" as "no result", never as valid content.
type Client struct {
	provider Provider
	timeout  time.Duration
}

// NewClient creates a client backed by the given provider.
func NewClient(provider Provider) *Client {
	return &Client{provider: provider, timeout: requestTimeout}
}

// NewDisabledClient creates a client with no backend. Complete returns ""
// immediately and no network calls are ever made.
func NewDisabledClient() *Client {
	return &Client{timeout: requestTimeout}
}

// WithTimeout overrides the request timeout. Tests use this to exercise the
// timeout path without a real wait.
func (c *Client) WithTimeout(d time.Duration) *Client {
	c.timeout = d
	return c
}

// Enabled reports whether a backend is configured.
func (c *Client) Enabled() bool {
	return c.provider != nil
}

// Complete sends one prompt and returns the model's text, or "" when the
// client is disabled or the request failed for any reason.
func (c *Client) Complete(ctx context.Context, userPrompt, systemPrompt string, opts Options) string {
	if c.provider == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.provider.Complete(ctx, systemPrompt, userPrompt, opts)
	if err != nil {
		log.Printf("Warning: %s completion failed: %v", c.provider.Name(), err)
		return ""
	}
	return text
}
