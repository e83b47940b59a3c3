package capm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/wonny/betalab/internal/contracts"
)

// ============================================================
// OLS regression: excess asset return on excess market return
// y = alpha + beta * x
// ============================================================

const (
	// MinObservations is the hard floor below which no regression is run
	MinObservations = 2

	// SmallSample marks estimates that compute but deserve a warning
	SmallSample = 12
)

// RegressionResult holds the periodic (not annualized) OLS estimates
type RegressionResult struct {
	Alpha        float64 // intercept, periodic decimal
	Beta         float64 // slope
	RSquared     float64 // in [0, 1]; exactly 0 for degenerate inputs
	Observations int
}

// Regress fits excess asset returns (y) against excess market returns (x).
//
// Degenerate inputs never produce NaN: a constant market column yields
// beta 0, alpha mean(y) and R² 0; a constant asset column yields R² 0.
func Regress(aligned contracts.AlignedExcessReturns) (RegressionResult, error) {
	n := aligned.Len()
	if n < MinObservations {
		return RegressionResult{}, fmt.Errorf("%w: %d aligned observations, need at least %d",
			contracts.ErrInsufficientData, n, MinObservations)
	}

	x, y := aligned.Columns()

	// Constant market excess return: the slope is undefined, report the
	// documented zero-value result instead of NaN
	if stat.Variance(x, nil) == 0 {
		return RegressionResult{
			Alpha:        stat.Mean(y, nil),
			Beta:         0,
			RSquared:     0,
			Observations: n,
		}, nil
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	r2 := stat.RSquared(x, y, nil, alpha, beta)
	if math.IsNaN(r2) {
		// Zero total sum of squares: asset excess return is constant
		r2 = 0
	}

	return RegressionResult{
		Alpha:        alpha,
		Beta:         beta,
		RSquared:     r2,
		Observations: n,
	}, nil
}
