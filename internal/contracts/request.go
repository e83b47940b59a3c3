package contracts

import (
	"fmt"
	"strings"
)

// Request carries every parameter of one CAPM analysis
// ⭐ SSOT: 분석 파라미터는 이 구조로만 전달
type Request struct {
	Asset    string   `json:"asset"`
	Market   string   `json:"market"`
	RiskFree string   `json:"risk_free"`
	Period   string   `json:"period"`
	Interval Interval `json:"interval"`
}

// Validate checks that every field is present and the interval is supported.
// Period tokens are provider-specific and validated by the provider.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Asset) == "" {
		return fmt.Errorf("asset symbol is required")
	}
	if strings.TrimSpace(r.Market) == "" {
		return fmt.Errorf("market symbol is required")
	}
	if strings.TrimSpace(r.RiskFree) == "" {
		return fmt.Errorf("risk-free symbol is required")
	}
	if strings.TrimSpace(r.Period) == "" {
		return fmt.Errorf("period is required")
	}
	if !r.Interval.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedInterval, string(r.Interval))
	}
	return nil
}
