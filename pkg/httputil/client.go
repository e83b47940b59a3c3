package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/wonny/betalab/pkg/config"
	"github.com/wonny/betalab/pkg/logger"
)

// retryPolicy controls the automatic retry behaviour of a Client
type retryPolicy struct {
	enabled      bool
	maxRetries   int
	initialDelay time.Duration
	maxDelay     time.Duration
}

// backoff returns the sleep before retry number attempt+1, doubling
// from initialDelay up to maxDelay
func (p retryPolicy) backoff(attempt int) time.Duration {
	d := p.initialDelay << attempt
	if d <= 0 || d > p.maxDelay {
		return p.maxDelay
	}
	return d
}

// Client is an HTTP client wrapper with retry, rate limiting and logging
// ⭐ SSOT: 모든 외부 HTTP 요청은 이 클라이언트를 통해서만 수행
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
	retry      retryPolicy
	limiter    *rate.Limiter
}

// New creates a new HTTP client from config
// ⭐ SSOT: http.Client 인스턴스는 여기서만 생성
func New(cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second, // Default timeout
		},
		logger: log,
		retry: retryPolicy{
			enabled:      true,
			maxRetries:   3,
			initialDelay: 1 * time.Second,
			maxDelay:     10 * time.Second,
		},
	}
}

// NewWithTimeout creates a client with custom timeout
func NewWithTimeout(cfg *config.Config, log *logger.Logger, timeout time.Duration) *Client {
	client := New(cfg, log)
	client.httpClient.Timeout = timeout
	return client
}

// WithRetry configures retry behavior
func (c *Client) WithRetry(maxRetries int, initialDelay time.Duration) *Client {
	c.retry.enabled = true
	c.retry.maxRetries = maxRetries
	c.retry.initialDelay = initialDelay
	return c
}

// DisableRetry disables automatic retry
func (c *Client) DisableRetry() *Client {
	c.retry.enabled = false
	return c
}

// WithRateLimiter sets a token-bucket limiter applied before every request
func (c *Client) WithRateLimiter(rps float64, burst int) *Client {
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	return c
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	return c.GetWithHeaders(ctx, url, nil)
}

// GetWithHeaders performs a GET request with extra headers
func (c *Client) GetWithHeaders(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return c.do(req)
}

// do executes the request, waiting for a rate limit token first and
// retrying per the client policy. A response that exhausts all retries
// is handed back to the caller as-is.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	log := c.logger.WithFields(map[string]interface{}{
		"method": req.Method,
		"url":    req.URL.String(),
	})
	log.Debug("HTTP request started")
	started := time.Now()

	retries := 0
	if c.retry.enabled {
		retries = c.retry.maxRetries
	}

	var resp *http.Response
	var err error
	for attempt := 0; ; attempt++ {
		resp, err = c.httpClient.Do(req)
		if err == nil && !retryable(resp.StatusCode) {
			break
		}
		if attempt >= retries {
			break
		}

		// Free the connection before the next attempt
		if resp != nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		delay := c.retry.backoff(attempt)
		log.WithFields(map[string]interface{}{
			"attempt": attempt + 1,
			"delay":   delay,
		}).Warn("Retrying HTTP request")
		time.Sleep(delay)
	}

	duration := time.Since(started)

	if err != nil {
		log.WithFields(map[string]interface{}{
			"duration": duration,
			"error":    err.Error(),
		}).Error("HTTP request failed")
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"status_code": resp.StatusCode,
		"duration":    duration,
	}).Debug("HTTP request completed")

	return resp, nil
}

// retryable reports whether the status code warrants another attempt
func retryable(statusCode int) bool {
	// 5xx server errors and 429 Too Many Requests
	return statusCode >= 500 || statusCode == http.StatusTooManyRequests
}
