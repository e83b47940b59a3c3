package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/wonny/betalab/internal/contracts"
	"github.com/wonny/betalab/pkg/config"
	"github.com/wonny/betalab/pkg/httputil"
	"github.com/wonny/betalab/pkg/logger"
)

// ErrInvalidPeriod marks a period token the chart API does not accept.
// Period validation is provider business: other data sources take date
// ranges, Yahoo takes range tokens.
var ErrInvalidPeriod = errors.New("invalid period")

// Client handles communication with the Yahoo Finance chart API
// ⭐ SSOT: Yahoo Finance API 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	hosts      []string // primary first, failover in order
	userAgent  string
}

// NewClient creates a chart API client from config. Retry, backoff and
// request rate are all YAHOO_* settings; both providers share one
// limiter so asset, market and risk-free fetches cannot stampede.
func NewClient(cfg *config.Config, log *logger.Logger) *Client {
	httpClient := httputil.NewWithTimeout(cfg, log, cfg.Yahoo.Timeout).
		WithRetry(cfg.Yahoo.MaxRetries, cfg.Yahoo.RetryDelay).
		WithRateLimiter(cfg.Yahoo.RateRPS, cfg.Yahoo.RateBurst)

	hosts := []string{cfg.Yahoo.BaseURL}
	if cfg.Yahoo.BackupURL != "" {
		hosts = append(hosts, cfg.Yahoo.BackupURL)
	}

	return &Client{
		httpClient: httpClient,
		logger:     log.Component("yahoo"),
		hosts:      hosts,
		userAgent:  cfg.Yahoo.UserAgent,
	}
}

// fetchChart validates the request parameters and queries each host in
// order until one returns a usable result
func (c *Client) fetchChart(ctx context.Context, symbol, period string, interval contracts.Interval) (*ChartResult, error) {
	if !validRanges[period] {
		return nil, fmt.Errorf("%w: %q (valid: %s)", ErrInvalidPeriod, period, strings.Join(rangeTokens, " "))
	}

	barSize, ok := intervalTokens[interval]
	if !ok {
		return nil, fmt.Errorf("%w: chart API has no %s bars", contracts.ErrUnsupportedInterval, interval)
	}

	var lastErr error
	for _, host := range c.hosts {
		result, err := c.fetchChartFromHost(ctx, host, symbol, period, barSize)
		if err == nil {
			return result, nil
		}

		lastErr = err
		c.logger.WithError(err).WithFields(map[string]interface{}{
			"host":   host,
			"symbol": symbol,
		}).Warn("Chart fetch failed")
	}

	return nil, fmt.Errorf("%w: %s: %v", contracts.ErrDataRetrieval, symbol, lastErr)
}

// fetchChartFromHost performs one chart request against one host
func (c *Client) fetchChartFromHost(ctx context.Context, host, symbol, period, barSize string) (*ChartResult, error) {
	fullURL := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s&events=div%%2Csplit",
		host, url.PathEscape(symbol), period, barSize)

	resp, err := c.httpClient.GetWithHeaders(ctx, fullURL, map[string]string{
		"User-Agent": c.userAgent,
		"Accept":     "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed ChartResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("status %d: response is not chart JSON: %v", resp.StatusCode, err)
	}

	// The API reports bad symbols as a JSON error, usually with status 404
	if parsed.Chart.Error != nil {
		return nil, fmt.Errorf("chart error %s: %s", parsed.Chart.Error.Code, parsed.Chart.Error.Description)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if len(parsed.Chart.Result) == 0 {
		return nil, fmt.Errorf("empty chart result")
	}

	return &parsed.Chart.Result[0], nil
}
