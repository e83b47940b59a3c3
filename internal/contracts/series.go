package contracts

import (
	"fmt"
	"time"
)

// PricePoint is a single closing price observation
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// PriceSeries holds chronological closing prices for one symbol
// ⭐ SSOT: 가격 시계열은 이 타입으로만 주고받음
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// Len returns the number of observations
func (s PriceSeries) Len() int {
	return len(s.Points)
}

// Validate rejects out-of-order or duplicate timestamps
func (s PriceSeries) Validate() error {
	for i := 1; i < len(s.Points); i++ {
		if !s.Points[i].Date.After(s.Points[i-1].Date) {
			return fmt.Errorf("price series %s: timestamps not strictly increasing at index %d", s.Symbol, i)
		}
	}
	return nil
}

// RateQuote is a single annualized rate observation.
// Rate is a quoted percentage: 4.35 means 4.35% per year. It is a level,
// not a price, and is never differenced into returns.
type RateQuote struct {
	Date time.Time `json:"date"`
	Rate float64   `json:"rate"`
}

// RateSeries holds chronological annualized rate quotes for one symbol
// ⭐ SSOT: 무위험 수익률 시계열은 이 타입으로만 주고받음
type RateSeries struct {
	Symbol string      `json:"symbol"`
	Quotes []RateQuote `json:"quotes"`
}

// Len returns the number of quotes
func (s RateSeries) Len() int {
	return len(s.Quotes)
}

// Validate rejects out-of-order or duplicate timestamps
func (s RateSeries) Validate() error {
	for i := 1; i < len(s.Quotes); i++ {
		if !s.Quotes[i].Date.After(s.Quotes[i-1].Date) {
			return fmt.Errorf("rate series %s: timestamps not strictly increasing at index %d", s.Symbol, i)
		}
	}
	return nil
}

// ReturnPoint is a single periodic return, as a decimal (0.02 = 2%)
type ReturnPoint struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// ReturnSeries holds periodic returns derived from a price or rate series.
// A series built from N prices has exactly N-1 points; point i carries the
// end date of the interval it covers.
type ReturnSeries struct {
	Symbol string        `json:"symbol"`
	Points []ReturnPoint `json:"points"`
}

// Len returns the number of return observations
func (s ReturnSeries) Len() int {
	return len(s.Points)
}

// ExcessRow pairs asset and market excess returns observed at one timestamp
type ExcessRow struct {
	Date         time.Time `json:"date"`
	ExcessAsset  float64   `json:"excess_asset"`
	ExcessMarket float64   `json:"excess_market"`
}

// AlignedExcessReturns is the regression input. Only timestamps present in
// all three source series appear, so a row never holds a missing value.
// ⭐ SSOT: 회귀 입력은 이 구조로만 전달
type AlignedExcessReturns struct {
	Rows []ExcessRow `json:"rows"`
}

// Len returns the number of aligned observations
func (a AlignedExcessReturns) Len() int {
	return len(a.Rows)
}

// Columns splits the rows into market (x) and asset (y) slices for the
// regression
func (a AlignedExcessReturns) Columns() (market, asset []float64) {
	market = make([]float64, len(a.Rows))
	asset = make([]float64, len(a.Rows))
	for i, r := range a.Rows {
		market[i] = r.ExcessMarket
		asset[i] = r.ExcessAsset
	}
	return market, asset
}

// Window returns the first and last timestamps, zero times when empty
func (a AlignedExcessReturns) Window() (start, end time.Time) {
	if len(a.Rows) == 0 {
		return time.Time{}, time.Time{}
	}
	return a.Rows[0].Date, a.Rows[len(a.Rows)-1].Date
}
