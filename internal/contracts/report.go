package contracts

import "time"

// Report is the outcome of one CAPM analysis
// ⭐ SSOT: 분석 결과는 이 구조로만 전달 (CLI 렌더링, API 응답 공용)
type Report struct {
	ID       string `json:"id"` // run id (uuid)
	Asset    string `json:"asset"`
	Market   string `json:"market"`
	RiskFree string `json:"risk_free"`

	Period   string   `json:"period"`
	Interval Interval `json:"interval"`

	// Aligned observation window actually used by the regression
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	Observations int       `json:"observations"`

	Beta           float64 `json:"beta"`
	AlphaAnnualPct float64 `json:"alpha_annual_pct"` // annualized alpha, percent
	RSquared       float64 `json:"r_squared"`

	Warnings    []string  `json:"warnings,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

// AddWarning appends a data quality note surfaced to the user
func (r *Report) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// HasWarnings reports whether any data quality notes were recorded
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}
