package capm

import (
	"math"

	"github.com/wonny/betalab/internal/contracts"
)

// AnnualizeAlphaPct compounds a periodic alpha into an annual percentage:
// ((1 + alpha)^periodsPerYear - 1) * 100. Compounding, not linear scaling:
// a monthly alpha of 0.01 annualizes to 12.68%, not 12%. For the annual
// interval this reduces to alpha * 100.
func AnnualizeAlphaPct(alpha float64, interval contracts.Interval) float64 {
	periods := interval.PeriodsPerYear()
	if periods <= 0 {
		return 0
	}

	// Single period: skip the pow round trip, (1+a)-1 loses low bits
	if periods == 1 {
		return alpha * 100
	}

	return (math.Pow(1+alpha, float64(periods)) - 1) * 100
}
