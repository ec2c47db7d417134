package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// DialTimeout is the maximum time to wait for a TCP connection.
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for a TLS handshake.
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers.
	ResponseHeaderTimeout = 10 * time.Second
	// IdleConnTimeout is how long an idle connection is kept for reuse.
	IdleConnTimeout = 90 * time.Second
	// MaxRedirects is the number of redirects followed before giving up.
	MaxRedirects = 10
	// DefaultMaxRetries is the number of retries for a retryable status.
	DefaultMaxRetries = 3
	// DefaultBackoff is the first retry delay; each retry doubles it.
	DefaultBackoff = 500 * time.Millisecond
)

// retryableStatus are the transient status codes worth retrying.
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// RetryTransport retries GET requests that receive a transient status code,
// sleeping Backoff·2^n before retry n. Other methods pass through once.
type RetryTransport struct {
	Base       http.RoundTripper
	MaxRetries int
	Backoff    time.Duration
}

// RoundTrip implements http.RoundTripper.
func (t *RetryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	if req.Method != "" && req.Method != http.MethodGet {
		return base.RoundTrip(req)
	}

	for attempt := 0; ; attempt++ {
		resp, err := base.RoundTrip(req)
		if err != nil || !retryableStatus[resp.StatusCode] || attempt >= t.MaxRetries {
			return resp, err
		}
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		_ = resp.Body.Close()

		if err := sleepContext(req.Context(), t.Backoff<<attempt); err != nil {
			return nil, fmt.Errorf("retry backoff: %w", err)
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// NewHTTPClient returns a client with bounded dial, TLS and header timeouts,
// a retrying transport and a redirect limit of MaxRedirects. Per-request
// deadlines come from the request context.
func NewHTTPClient(maxRetries int, backoff time.Duration) *http.Client {
	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   TLSHandshakeTimeout,
		ResponseHeaderTimeout: ResponseHeaderTimeout,
		IdleConnTimeout:       IdleConnTimeout,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
	}
	return &http.Client{
		Transport: &RetryTransport{Base: base, MaxRetries: maxRetries, Backoff: backoff},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("too many redirects (>%d)", MaxRedirects)
			}
			return nil
		},
	}
}
