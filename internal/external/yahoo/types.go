package yahoo

import (
	"github.com/guregu/null/v6"

	"github.com/wonny/betalab/internal/contracts"
)

// rangeTokens are the period values the chart API accepts
var rangeTokens = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

var validRanges = func() map[string]bool {
	m := make(map[string]bool, len(rangeTokens))
	for _, r := range rangeTokens {
		m[r] = true
	}
	return m
}()

// intervalTokens maps sampling intervals to chart API bar sizes.
// Annual is absent: the chart API serves nothing coarser than 3mo.
var intervalTokens = map[contracts.Interval]string{
	contracts.IntervalDaily:     "1d",
	contracts.IntervalWeekly:    "1wk",
	contracts.IntervalMonthly:   "1mo",
	contracts.IntervalQuarterly: "3mo",
}

// ChartResponse mirrors the v8 chart API envelope
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartError is the API-level failure an otherwise-valid response carries
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// ChartResult holds one symbol's bars. Timestamp and the indicator arrays
// are parallel: bar i is (Timestamp[i], Close[i], ...). Unpriced bars come
// through as JSON nulls, hence the null.Float columns.
type ChartResult struct {
	Meta       ChartMeta  `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

// ChartMeta carries instrument metadata from the response header
type ChartMeta struct {
	Currency             string  `json:"currency"`
	Symbol               string  `json:"symbol"`
	ExchangeName         string  `json:"exchangeName"`
	InstrumentType       string  `json:"instrumentType"`
	Timezone             string  `json:"timezone"`
	ExchangeTimezoneName string  `json:"exchangeTimezoneName"`
	RegularMarketPrice   float64 `json:"regularMarketPrice"`
	DataGranularity      string  `json:"dataGranularity"`
	Range                string  `json:"range"`
}

// Indicators groups the per-bar value arrays
type Indicators struct {
	Quote    []Quote    `json:"quote"`
	Adjclose []Adjclose `json:"adjclose"`
}

// Quote holds raw OHLCV columns
type Quote struct {
	Open   []null.Float `json:"open"`
	High   []null.Float `json:"high"`
	Low    []null.Float `json:"low"`
	Close  []null.Float `json:"close"`
	Volume []null.Int   `json:"volume"`
}

// Adjclose holds the dividend- and split-adjusted close column
type Adjclose struct {
	Adjclose []null.Float `json:"adjclose"`
}
