package report

import (
	"fmt"
	"strings"

	"github.com/wonny/betalab/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Console rendering
// 분석 결과를 사람이 읽는 리포트로 변환
// ═══════════════════════════════════════════════════════════

const (
	doubleLine = "═══════════════════════════════════════════════════════════"
	singleLine = "───────────────────────────────────────────────────────────"
)

// Beta bands for the plain-language characterization
const (
	defensiveBeta  = 0.8
	aggressiveBeta = 1.2
)

// weakFit is the R-squared below which the regression explains too
// little for beta or alpha to mean much
const weakFit = 0.3

// Render formats a finished analysis as console text
func Render(r *contracts.Report) string {
	var b strings.Builder

	fmt.Fprintln(&b, doubleLine)
	fmt.Fprintf(&b, "  CAPM Analysis: %s vs %s\n", r.Asset, r.Market)
	fmt.Fprintln(&b, singleLine)
	fmt.Fprintf(&b, "  Risk-free : %s\n", r.RiskFree)
	fmt.Fprintf(&b, "  Period    : %s / %s\n", r.Period, r.Interval)
	if !r.Start.IsZero() {
		fmt.Fprintf(&b, "  Window    : %s ~ %s\n",
			r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "  Samples   : %d\n", r.Observations)
	fmt.Fprintln(&b, singleLine)

	fmt.Fprintf(&b, "  📊 Beta (β)    : %.4f\n", r.Beta)
	fmt.Fprintf(&b, "  🎯 Alpha (α)   : %.4f%% per year\n", r.AlphaAnnualPct)
	fmt.Fprintf(&b, "  📈 R-squared   : %.4f\n", r.RSquared)
	fmt.Fprintln(&b, singleLine)

	fmt.Fprintln(&b, "  Interpretation")
	for _, line := range interpret(r) {
		fmt.Fprintf(&b, "   • %s\n", line)
	}

	if r.HasWarnings() {
		fmt.Fprintln(&b)
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "⚠️  %s\n", w)
		}
	}

	fmt.Fprintln(&b, doubleLine)
	return b.String()
}

// interpret turns the three estimates into plain-language findings
func interpret(r *contracts.Report) []string {
	lines := []string{
		fmt.Sprintf("For every 1%% move in %s, %s is expected to move %.2f%%.",
			r.Market, r.Asset, r.Beta),
		describeBeta(r.Asset, r.Beta),
		fmt.Sprintf("After accounting for market risk, %s has %s.",
			r.Asset, describeAlpha(r.AlphaAnnualPct)),
		fmt.Sprintf("%.0f%% of %s's movements are explained by movements in %s.",
			r.RSquared*100, r.Asset, r.Market),
	}

	if r.RSquared < weakFit {
		lines = append(lines, fmt.Sprintf(
			"Weak fit: market exposure explains little, treat beta and alpha for %s with caution.", r.Asset))
	}

	return lines
}

func describeBeta(asset string, beta float64) string {
	switch {
	case beta < 0:
		return fmt.Sprintf("%s tends to move against the market.", asset)
	case beta < defensiveBeta:
		return fmt.Sprintf("%s is defensive: much less volatile than the market.", asset)
	case beta < 1:
		return fmt.Sprintf("%s is less volatile than the market.", asset)
	case beta == 1:
		return fmt.Sprintf("%s moves in line with the market.", asset)
	case beta <= aggressiveBeta:
		return fmt.Sprintf("%s is more volatile than the market.", asset)
	default:
		return fmt.Sprintf("%s is aggressive: much more volatile than the market.", asset)
	}
}

func describeAlpha(alphaPct float64) string {
	switch {
	case alphaPct > 0:
		return fmt.Sprintf("outperformed its expected return by %.2f%% per year", alphaPct)
	case alphaPct < 0:
		return fmt.Sprintf("underperformed its expected return by %.2f%% per year", -alphaPct)
	default:
		return "performed exactly as expected"
	}
}
