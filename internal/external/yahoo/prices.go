package yahoo

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/betalab/internal/contracts"
)

// FetchPrices fetches historical closing prices for a symbol
// ⭐ SSOT: Yahoo 가격 조회는 이 함수에서만
func (c *Client) FetchPrices(ctx context.Context, symbol, period string, interval contracts.Interval) (contracts.PriceSeries, error) {
	result, err := c.fetchChart(ctx, symbol, period, interval)
	if err != nil {
		return contracts.PriceSeries{}, err
	}

	series, err := buildPriceSeries(symbol, result)
	if err != nil {
		return contracts.PriceSeries{}, err
	}

	c.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"period":   period,
		"interval": interval.String(),
		"points":   series.Len(),
	}).Debug("Fetched prices")
	return series, nil
}

// buildPriceSeries pairs timestamps with closes. Adjusted closes fold
// dividends and splits into the price path, so they are preferred over
// raw closes whenever the response carries a full adjclose column.
// Bars with null or non-positive closes are dropped.
func buildPriceSeries(symbol string, result *ChartResult) (contracts.PriceSeries, error) {
	series := contracts.PriceSeries{Symbol: symbol}

	if len(result.Timestamp) == 0 || len(result.Indicators.Quote) == 0 {
		return series, fmt.Errorf("%w: %s returned no bars", contracts.ErrDataRetrieval, symbol)
	}

	closes := result.Indicators.Quote[0].Close
	if adj := result.Indicators.Adjclose; len(adj) > 0 && len(adj[0].Adjclose) == len(result.Timestamp) {
		closes = adj[0].Adjclose
	}

	for i, ts := range result.Timestamp {
		if i >= len(closes) || !closes[i].Valid || closes[i].Float64 <= 0 {
			continue
		}

		series.Points = append(series.Points, contracts.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: closes[i].Float64,
		})
	}

	if series.Len() == 0 {
		return series, fmt.Errorf("%w: %s returned no usable closes", contracts.ErrDataRetrieval, symbol)
	}

	return series, nil
}
