package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public game API endpoint.
const DefaultBaseURL = "https://api.spacetraders.io/v2"

// Client is the single HTTP transport for the game API. It carries the bearer
// token and JSON headers on every request and applies the retry governor.
type Client struct {
	BaseURL    string
	Token      string
	HTTP       *http.Client
	MaxRetries int

	// Limiter spaces attempts at a steady rate ahead of the header-driven
	// throttle. Nil disables it.
	Limiter *rate.Limiter

	// Sleep blocks for d or until ctx is done. Tests replace it.
	Sleep func(ctx context.Context, d time.Duration) error
}

// New creates a client with optional proxy support.
func New(baseURL, token, proxyURL string, timeout time.Duration) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		MaxRetries: DefaultMaxRetries,
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		Sleep: sleepCtx,
	}
}

// WithRateLimit installs a steady-rate limiter of rps requests per second.
func (c *Client) WithRateLimit(rps float64, burst int) *Client {
	if rps > 0 {
		if burst < 1 {
			burst = 1
		}
		c.Limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return c
}

// Do sends one logical request and decodes the JSON response into out (if non-nil).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	raw, err := c.Send(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Method: method, Path: path, Err: err}
	}
	return nil
}

// Send performs the request under the governor and returns the raw JSON body.
// Mutating calls without a body send an empty JSON object.
func (c *Client) Send(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	var payload []byte
	if body == nil && mutating(method) {
		payload = []byte("{}")
	} else if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s %s body: %w", method, path, err)
		}
		payload = b
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	return c.govern(ctx, method, path, func() (*http.Response, []byte, error) {
		return c.roundTrip(ctx, method, endpoint, payload)
	})
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, payload []byte) (*http.Response, []byte, error) {
	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, rdr)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, nil, fmt.Errorf("read body: %w", err)
	}
	return resp, respBody, nil
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPatch, http.MethodPut:
		return true
	}
	return false
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
