package capm

import (
	"github.com/wonny/betalab/internal/contracts"
)

// ============================================================
// Timestamp alignment
// 세 수익률 시계열의 교집합(inner join)만 회귀에 사용
// ============================================================

// AlignExcess inner-joins the three return series on exact timestamps and
// subtracts the risk-free rate from both asset and market returns. A row
// exists only for timestamps present in all three inputs, so the output
// length never exceeds the shortest input. Rows keep the asset series
// order, which is chronological for validated inputs.
func AlignExcess(asset, market, riskFree contracts.ReturnSeries) contracts.AlignedExcessReturns {
	// Unix-second keys avoid time.Time equality pitfalls across providers
	marketByTime := make(map[int64]float64, market.Len())
	for _, p := range market.Points {
		marketByTime[p.Date.Unix()] = p.Value
	}

	rfByTime := make(map[int64]float64, riskFree.Len())
	for _, p := range riskFree.Points {
		rfByTime[p.Date.Unix()] = p.Value
	}

	out := contracts.AlignedExcessReturns{}
	for _, p := range asset.Points {
		ts := p.Date.Unix()

		m, ok := marketByTime[ts]
		if !ok {
			continue
		}

		rf, ok := rfByTime[ts]
		if !ok {
			continue
		}

		out.Rows = append(out.Rows, contracts.ExcessRow{
			Date:         p.Date,
			ExcessAsset:  p.Value - rf,
			ExcessMarket: m - rf,
		})
	}

	return out
}
