package contracts

import "context"

// PriceProvider fetches historical closing prices for a symbol
// ⭐ SSOT: 가격 조회 인터페이스 (구현: external/yahoo, 테스트: fake)
type PriceProvider interface {
	FetchPrices(ctx context.Context, symbol, period string, interval Interval) (PriceSeries, error)
}

// RateProvider fetches historical annualized rate quotes for a proxy symbol
// ⭐ SSOT: 무위험 수익률 조회 인터페이스
type RateProvider interface {
	FetchRates(ctx context.Context, symbol, period string, interval Interval) (RateSeries, error)
}
