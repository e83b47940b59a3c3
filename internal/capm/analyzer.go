package capm

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/betalab/internal/contracts"
	"github.com/wonny/betalab/pkg/logger"
)

// Analyzer runs the full CAPM pipeline for one request.
// It keeps no per-run state: a single instance is safe for concurrent
// Run calls. Providers own transport concerns (retry, rate limits);
// the pipeline itself never loops on failure.
// ⭐ SSOT: CAPM 분석 오케스트레이션은 여기서만
type Analyzer struct {
	prices contracts.PriceProvider
	rates  contracts.RateProvider
	logger *logger.Logger
}

// New creates an Analyzer with injected providers
func New(prices contracts.PriceProvider, rates contracts.RateProvider, log *logger.Logger) *Analyzer {
	return &Analyzer{
		prices: prices,
		rates:  rates,
		logger: log.Component("analyzer"),
	}
}

// Run executes one analysis: fetch -> returns -> align -> regress ->
// annualize -> report.
func (a *Analyzer) Run(ctx context.Context, req contracts.Request) (*contracts.Report, error) {
	// 1. Validate request
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	runID := uuid.New().String()
	log := a.logger.WithFields(map[string]interface{}{
		"run_id":   runID,
		"asset":    req.Asset,
		"market":   req.Market,
		"riskfree": req.RiskFree,
		"period":   req.Period,
		"interval": req.Interval.String(),
	})
	log.Info("Analysis started")

	// 2. Fetch the three series concurrently
	var (
		assetPrices  contracts.PriceSeries
		marketPrices contracts.PriceSeries
		rfQuotes     contracts.RateSeries
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assetPrices, err = a.prices.FetchPrices(gctx, req.Asset, req.Period, req.Interval)
		if err != nil {
			return fmt.Errorf("fetch asset prices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		marketPrices, err = a.prices.FetchPrices(gctx, req.Market, req.Period, req.Interval)
		if err != nil {
			return fmt.Errorf("fetch market prices: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rfQuotes, err = a.rates.FetchRates(gctx, req.RiskFree, req.Period, req.Interval)
		if err != nil {
			return fmt.Errorf("fetch risk-free rates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.WithFields(map[string]interface{}{
		"asset_points":  assetPrices.Len(),
		"market_points": marketPrices.Len(),
		"rate_quotes":   rfQuotes.Len(),
	}).Debug("Series fetched")

	// 3. Periodic returns for asset and market
	assetReturns, err := BuildReturns(assetPrices)
	if err != nil {
		return nil, err
	}

	marketReturns, err := BuildReturns(marketPrices)
	if err != nil {
		return nil, err
	}

	// 4. Lagged periodic risk-free rates
	rfReturns, converted, err := BuildPeriodicRates(rfQuotes, req.Interval)
	if err != nil {
		return nil, err
	}

	// 5. Exact-timestamp inner join
	aligned := AlignExcess(assetReturns, marketReturns, rfReturns)

	// 6. OLS regression
	result, err := Regress(aligned)
	if err != nil {
		return nil, err
	}

	// 7. Assemble report
	start, end := aligned.Window()
	report := &contracts.Report{
		ID:             runID,
		Asset:          req.Asset,
		Market:         req.Market,
		RiskFree:       req.RiskFree,
		Period:         req.Period,
		Interval:       req.Interval,
		Start:          start,
		End:            end,
		Observations:   result.Observations,
		Beta:           result.Beta,
		AlphaAnnualPct: AnnualizeAlphaPct(result.Alpha, req.Interval),
		RSquared:       result.RSquared,
		GeneratedAt:    time.Now().UTC(),
	}

	if !converted {
		report.AddWarning(fmt.Sprintf(
			"interval %s has no periods-per-year mapping; risk-free rate set to 0", req.Interval))
		log.Warnf("Risk-free conversion unsupported for interval %s, using 0", req.Interval)
	}

	if result.Observations < SmallSample {
		report.AddWarning(fmt.Sprintf(
			"only %d aligned observations; estimates are statistically weak", result.Observations))
		log.Warnf("Small sample: %d aligned observations", result.Observations)
	}

	log.WithFields(map[string]interface{}{
		"observations": report.Observations,
		"beta":         report.Beta,
		"alpha_pct":    report.AlphaAnnualPct,
		"r_squared":    report.RSquared,
	}).Info("Analysis complete")

	return report, nil
}
