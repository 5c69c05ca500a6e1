package client

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultMaxRetries is the retry budget on top of the initial attempt.
	DefaultMaxRetries = 4

	headerRemaining = "X-RateLimit-Remaining"
	headerReset     = "X-RateLimit-Reset"

	maxBackoffSeconds = 30
	throttlePad       = 250 * time.Millisecond
)

// Retryable reports whether a status is retried with backoff.
func Retryable(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Backoff returns min(30, 2^attempt) + 0.05*attempt seconds.
func Backoff(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	secs := math.Min(maxBackoffSeconds, math.Pow(2, float64(attempt))) + 0.05*float64(attempt)
	return time.Duration(secs * float64(time.Second))
}

// ThrottleDelay inspects rate-limit headers and returns how long to pause
// before the next call. Missing or malformed headers mean no pause.
func ThrottleDelay(h http.Header, now time.Time) (time.Duration, bool) {
	rem := strings.TrimSpace(h.Get(headerRemaining))
	if rem == "" {
		return 0, false
	}
	remaining, err := strconv.Atoi(rem)
	if err != nil || remaining > 1 {
		return 0, false
	}
	reset, ok := parseReset(h.Get(headerReset), now)
	if !ok {
		return 0, false
	}
	return reset + throttlePad, true
}

// parseReset accepts a delay in seconds or an RFC 3339 reset instant.
func parseReset(v string, now time.Time) (time.Duration, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil {
		if secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
			return 0, false
		}
		return time.Duration(secs * float64(time.Second)), true
	}
	if at, err := time.Parse(time.RFC3339Nano, v); err == nil {
		d := at.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// govern runs attempt until it yields a terminal outcome.
func (c *Client) govern(ctx context.Context, method, path string, attempt func() (*http.Response, []byte, error)) ([]byte, error) {
	sleep := c.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	retries := 0
	for {
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("%s %s: rate limiter: %w", method, path, err)
			}
		}

		resp, body, err := attempt()
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", method, path, err)
		}

		if d, ok := ThrottleDelay(resp.Header, time.Now()); ok {
			log.Printf("[INFO] rate limit nearly exhausted after %s %s, pausing %v", method, path, d)
			if err := sleep(ctx, d); err != nil {
				return nil, fmt.Errorf("%s %s: %w", method, path, err)
			}
		}

		if Retryable(resp.StatusCode) {
			retries++
			if retries > c.MaxRetries {
				return nil, newTransportError(resp.StatusCode, method, path, body)
			}
			backoff := Backoff(retries)
			log.Printf("[WARN] %s %s returned %d (attempt %d/%d), retrying in %v",
				method, path, resp.StatusCode, retries, c.MaxRetries+1, backoff)
			if err := sleep(ctx, backoff); err != nil {
				return nil, fmt.Errorf("%s %s: %w", method, path, err)
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, newTransportError(resp.StatusCode, method, path, body)
		}
		return body, nil
	}
}
