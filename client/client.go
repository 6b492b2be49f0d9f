// Package client submits finished waitlist responses to the relay and drives
// the form through its final step.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	tourconnect "github.com/himaSH97/tc-servey"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var (
	ErrRateLimited     = errors.New("rate limited")
	ErrInsertionFailed = errors.New("record insertion failed")
)

// SubmitPath is the relay endpoint.
const SubmitPath = "/api/notion"

type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default traced HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// New returns a client for the relay served at baseURL. No timeout is set on
// the default HTTP client.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Submit posts r to the relay. A 429 answer is reported as ErrRateLimited and
// any other non-OK answer as ErrInsertionFailed.
func (c *Client) Submit(ctx context.Context, r tourconnect.Response) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+SubmitPath, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post response: %w", err)
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	switch {
	case res.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case res.StatusCode < 200 || res.StatusCode > 299:
		return fmt.Errorf("%w: status %d", ErrInsertionFailed, res.StatusCode)
	}
	return nil
}
