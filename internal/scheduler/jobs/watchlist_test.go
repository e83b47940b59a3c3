package jobs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/wonny/betalab/internal/capm"
	"github.com/wonny/betalab/internal/contracts"
	"github.com/wonny/betalab/pkg/config"
	"github.com/wonny/betalab/pkg/logger"
)

func month(n int) time.Time {
	return time.Date(2023+(n-1)/12, time.Month((n-1)%12+1), 1, 0, 0, 0, 0, time.UTC)
}

func priceSeries(symbol string, closes ...float64) contracts.PriceSeries {
	points := make([]contracts.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = contracts.PricePoint{Date: month(i + 1), Close: c}
	}
	return contracts.PriceSeries{Symbol: symbol, Points: points}
}

// stubPrices serves canned series and records per-symbol call counts
// plus the high-water mark of concurrent fetches
type stubPrices struct {
	series map[string]contracts.PriceSeries
	delay  time.Duration

	mu            sync.Mutex
	calls         map[string]int
	inFlight      int
	maxConcurrent int
}

func (s *stubPrices) FetchPrices(ctx context.Context, symbol, period string, interval contracts.Interval) (contracts.PriceSeries, error) {
	s.mu.Lock()
	s.calls[symbol]++
	s.inFlight++
	if s.inFlight > s.maxConcurrent {
		s.maxConcurrent = s.inFlight
	}
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()

	ps, ok := s.series[symbol]
	if !ok {
		return contracts.PriceSeries{}, fmt.Errorf("%w: %s", contracts.ErrDataRetrieval, symbol)
	}
	return ps, nil
}

// stubRates serves flat zero quotes for any symbol
type stubRates struct {
	quotes int
}

func (s stubRates) FetchRates(ctx context.Context, symbol, period string, interval contracts.Interval) (contracts.RateSeries, error) {
	series := contracts.RateSeries{Symbol: symbol}
	for i := 0; i < s.quotes; i++ {
		series.Quotes = append(series.Quotes, contracts.RateQuote{Date: month(i + 1), Rate: 0})
	}
	return series, nil
}

func writeWatch(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "watchlist.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write watchlist: %v", err)
	}
	return path
}

func testJob(t *testing.T, watchYAML string, parallel int, prices *stubPrices) *WatchlistJob {
	t.Helper()
	cfg := &config.Config{
		Env:       "test",
		LogLevel:  "error",
		LogFormat: "json",
		Watch: config.WatchConfig{
			File:     writeWatch(t, watchYAML),
			Schedule: "0 0 7 * * 1-5",
			Parallel: parallel,
		},
	}
	log := logger.New(cfg)
	analyzer := capm.New(prices, stubRates{quotes: 4}, log)
	return NewWatchlistJob(analyzer, cfg, log)
}

func servedPrices(symbols ...string) *stubPrices {
	series := make(map[string]contracts.PriceSeries, len(symbols))
	for _, s := range symbols {
		series[s] = priceSeries(s, 100, 110, 121, 133.1)
	}
	return &stubPrices{series: series, calls: make(map[string]int)}
}

const watchTwoGood = `defaults:
  market: ^GSPC
  risk_free: ^IRX
  period: 5y
  interval: 1mo

entries:
  - asset: MSFT
  - asset: AAPL
  - asset: GONE
`

func TestWatchlistJobRun(t *testing.T) {
	prices := servedPrices("MSFT", "AAPL", "^GSPC")
	job := testJob(t, watchTwoGood, 2, prices)

	// GONE fails, the batch still completes
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	prices.mu.Lock()
	defer prices.mu.Unlock()
	for _, asset := range []string{"MSFT", "AAPL", "GONE"} {
		if prices.calls[asset] != 1 {
			t.Errorf("asset %s fetched %d times, want 1", asset, prices.calls[asset])
		}
	}
}

func TestWatchlistJobRunAllFailed(t *testing.T) {
	// No symbol is served, every entry fails
	prices := &stubPrices{series: map[string]contracts.PriceSeries{}, calls: make(map[string]int)}
	job := testJob(t, watchTwoGood, 2, prices)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected error when every analysis fails")
	}
	if !strings.Contains(err.Error(), "analyses failed") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWatchlistJobRunMissingFile(t *testing.T) {
	cfg := &config.Config{
		Env:       "test",
		LogLevel:  "error",
		LogFormat: "json",
		Watch: config.WatchConfig{
			File:     filepath.Join(t.TempDir(), "absent.yaml"),
			Schedule: "0 0 7 * * 1-5",
			Parallel: 2,
		},
	}
	log := logger.New(cfg)
	job := NewWatchlistJob(capm.New(servedPrices(), stubRates{quotes: 4}, log), cfg, log)

	err := job.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "load watchlist") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestWatchlistJobBoundsParallelism(t *testing.T) {
	const watchSix = `defaults:
  market: ^GSPC
  risk_free: ^IRX
  period: 5y
  interval: 1mo

entries:
  - asset: A1
  - asset: A2
  - asset: A3
  - asset: A4
  - asset: A5
  - asset: A6
`
	prices := servedPrices("A1", "A2", "A3", "A4", "A5", "A6", "^GSPC")
	prices.delay = 5 * time.Millisecond
	job := testJob(t, watchSix, 2, prices)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	// Each entry issues up to 2 concurrent price fetches (asset + market),
	// so 2 parallel entries can hold at most 4 fetches in flight
	prices.mu.Lock()
	defer prices.mu.Unlock()
	if prices.maxConcurrent > 4 {
		t.Errorf("max concurrent fetches = %d, want <= 4", prices.maxConcurrent)
	}
}

func TestWatchlistJobIdentity(t *testing.T) {
	prices := servedPrices("MSFT", "^GSPC")
	job := testJob(t, watchTwoGood, 3, prices)

	if job.Name() != "watchlist_analysis" {
		t.Errorf("Name = %s", job.Name())
	}
	if job.Schedule() != "0 0 7 * * 1-5" {
		t.Errorf("Schedule = %s", job.Schedule())
	}
}
