package contracts

import (
	"fmt"
	"strings"
)

// Interval is the sampling frequency of a price or rate series
// ⭐ SSOT: 주기 표현은 이 타입으로만
type Interval string

const (
	IntervalDaily     Interval = "daily"
	IntervalWeekly    Interval = "weekly"
	IntervalMonthly   Interval = "monthly"
	IntervalQuarterly Interval = "quarterly"
	IntervalAnnual    Interval = "annual"
)

// ParseInterval accepts both canonical names and chart-style aliases
// (1d, 1wk, 1mo, 3mo, 1y)
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "1d", "d":
		return IntervalDaily, nil
	case "weekly", "1wk", "w":
		return IntervalWeekly, nil
	case "monthly", "1mo", "m":
		return IntervalMonthly, nil
	case "quarterly", "3mo", "q":
		return IntervalQuarterly, nil
	case "annual", "yearly", "1y", "y":
		return IntervalAnnual, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedInterval, s)
	}
}

// PeriodsPerYear returns the observation count per year used for
// annualization (252 trading days for daily)
func (i Interval) PeriodsPerYear() int {
	switch i {
	case IntervalDaily:
		return 252
	case IntervalWeekly:
		return 52
	case IntervalMonthly:
		return 12
	case IntervalQuarterly:
		return 4
	case IntervalAnnual:
		return 1
	default:
		return 0
	}
}

// Valid reports whether the interval is one of the supported values
func (i Interval) Valid() bool {
	return i.PeriodsPerYear() > 0
}

// String implements fmt.Stringer
func (i Interval) String() string {
	return string(i)
}
