// Package fetch retrieves schema documents over HTTP and decodes them into
// field lists. It is a thin collaborator: no retries, no caching; transport
// errors surface as-is.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/reoring/zodforge/schema"
)

// Doer abstracts the HTTP transport so callers can inject their own client.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches schema documents from an HTTP endpoint.
type Client struct {
	http Doer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default transport.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.http = d }
}

// New builds a Client with the default transport unless overridden.
func New(opts ...Option) *Client {
	c := &Client{http: http.DefaultClient}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Fetch retrieves the document at url and decodes it. The content type
// selects the codec: YAML media types decode as YAML, everything else as
// JSON. A .yaml/.yml URL suffix also selects YAML when the server sends a
// generic content type.
func (c *Client) Fetch(ctx context.Context, url string) ([]schema.Field, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: unexpected status %s from %s", resp.Status, url)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch: read body: %w", err)
	}

	if isYAML(resp.Header.Get("Content-Type"), url) {
		return schema.DecodeYAML(body)
	}
	return schema.DecodeJSON(body)
}

func isYAML(contentType, url string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "yaml") || strings.Contains(ct, "yml") {
		return true
	}
	trimmed := url
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.HasSuffix(trimmed, ".yaml") || strings.HasSuffix(trimmed, ".yml")
}
