package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/betalab/internal/contracts"
)

// FetchRates fetches historical annualized rate quotes for a proxy symbol.
// Rate proxies like ^IRX quote an annualized percentage in the close
// column, so the raw close IS the quote: no adjusted-close preference
// (nothing pays dividends on a yield index) and no positivity filter
// (short rates can print at or below zero).
// ⭐ SSOT: Yahoo 무위험 수익률 조회는 이 함수에서만
func (c *Client) FetchRates(ctx context.Context, symbol, period string, interval contracts.Interval) (contracts.RateSeries, error) {
	result, err := c.fetchChart(ctx, symbol, period, interval)
	if err != nil {
		return contracts.RateSeries{}, err
	}

	series := contracts.RateSeries{Symbol: symbol}

	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return series, fmt.Errorf("%w: %s returned no bars", contracts.ErrDataRetrieval, symbol)
	}

	closes := result.Indicators.Quote[0].Close
	for i, ts := range result.Timestamp {
		if i >= len(closes) || !closes[i].Valid {
			continue
		}

		series.Quotes = append(series.Quotes, contracts.RateQuote{
			Date: time.Unix(ts, 0).UTC(),
			Rate: closes[i].Float64,
		})
	}

	if series.Len() == 0 {
		return series, fmt.Errorf("%w: %s returned no usable quotes", contracts.ErrDataRetrieval, symbol)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"period":   period,
		"interval": interval.String(),
		"quotes":   series.Len(),
	}).Debug("Fetched rates")
	return series, nil
}
