package capm

import (
	"fmt"

	"github.com/wonny/betalab/internal/contracts"
)

// ============================================================
// Periodic return derivation
// 가격 시계열 -> 단순 수익률, 금리 호가 -> 기간 무위험 수익률
// ============================================================

// BuildReturns derives simple periodic returns from closing prices.
// N prices yield exactly N-1 returns; return i covers the interval
// [t[i-1], t[i]] and carries the end date t[i].
func BuildReturns(prices contracts.PriceSeries) (contracts.ReturnSeries, error) {
	out := contracts.ReturnSeries{Symbol: prices.Symbol}

	if err := prices.Validate(); err != nil {
		return out, fmt.Errorf("%w: %v", contracts.ErrDataRetrieval, err)
	}

	if prices.Len() < 2 {
		return out, fmt.Errorf("%w: %s has %d price points, need at least 2",
			contracts.ErrInsufficientData, prices.Symbol, prices.Len())
	}

	// A non-positive close makes the following return undefined
	for _, p := range prices.Points {
		if p.Close <= 0 {
			return out, fmt.Errorf("%w: %s has non-positive close %.4f at %s",
				contracts.ErrDataRetrieval, prices.Symbol, p.Close,
				p.Date.Format("2006-01-02"))
		}
	}

	out.Points = make([]contracts.ReturnPoint, 0, prices.Len()-1)
	for i := 1; i < len(prices.Points); i++ {
		prev := prices.Points[i-1].Close
		out.Points = append(out.Points, contracts.ReturnPoint{
			Date:  prices.Points[i].Date,
			Value: (prices.Points[i].Close - prev) / prev,
		})
	}

	return out, nil
}

// BuildPeriodicRates converts annualized percentage quotes into periodic
// decimal rates shaped like a return series. The quote observed at the
// start of a period is the rate in effect over that period, so point i
// takes quote i-1 divided by 100 and by periods-per-year, stamped with
// end date t[i]. N quotes yield N-1 points, matching BuildReturns.
//
// converted=false means the interval has no periods-per-year mapping and
// the rates degraded to zero; the caller should warn, not fail.
func BuildPeriodicRates(rates contracts.RateSeries, interval contracts.Interval) (series contracts.ReturnSeries, converted bool, err error) {
	series = contracts.ReturnSeries{Symbol: rates.Symbol}

	if err := rates.Validate(); err != nil {
		return series, false, fmt.Errorf("%w: %v", contracts.ErrDataRetrieval, err)
	}

	if rates.Len() < 2 {
		return series, false, fmt.Errorf("%w: %s has %d rate quotes, need at least 2",
			contracts.ErrInsufficientData, rates.Symbol, rates.Len())
	}

	periods := interval.PeriodsPerYear()
	converted = periods > 0

	series.Points = make([]contracts.ReturnPoint, 0, rates.Len()-1)
	for i := 1; i < len(rates.Quotes); i++ {
		var value float64
		if converted {
			value = rates.Quotes[i-1].Rate / 100 / float64(periods)
		}

		series.Points = append(series.Points, contracts.ReturnPoint{
			Date:  rates.Quotes[i].Date,
			Value: value,
		})
	}

	return series, converted, nil
}
