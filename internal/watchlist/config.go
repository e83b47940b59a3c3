package watchlist

import (
	"github.com/wonny/betalab/internal/contracts"
)

// Config는 정기 재분석 대상 종목 목록
type Config struct {
	Defaults Defaults `yaml:"defaults" json:"defaults"`
	Entries  []Entry  `yaml:"entries" json:"entries"`
}

// Defaults apply to every entry that does not override them
type Defaults struct {
	Market   string `yaml:"market" json:"market"`
	RiskFree string `yaml:"risk_free" json:"risk_free"`
	Period   string `yaml:"period" json:"period"`
	Interval string `yaml:"interval" json:"interval"`
}

// Entry is one asset to re-analyze on schedule. Unset fields fall back
// to the file defaults.
type Entry struct {
	Asset    string `yaml:"asset" json:"asset"`
	Market   string `yaml:"market,omitempty" json:"market,omitempty"`
	RiskFree string `yaml:"risk_free,omitempty" json:"risk_free,omitempty"`
	Period   string `yaml:"period,omitempty" json:"period,omitempty"`
	Interval string `yaml:"interval,omitempty" json:"interval,omitempty"`
}

// Len returns the number of entries
func (c *Config) Len() int {
	return len(c.Entries)
}

// Request materializes the analysis request for one entry
func (c *Config) Request(e Entry) (contracts.Request, error) {
	interval, err := contracts.ParseInterval(pick(e.Interval, c.Defaults.Interval))
	if err != nil {
		return contracts.Request{}, err
	}

	return contracts.Request{
		Asset:    e.Asset,
		Market:   pick(e.Market, c.Defaults.Market),
		RiskFree: pick(e.RiskFree, c.Defaults.RiskFree),
		Period:   pick(e.Period, c.Defaults.Period),
		Interval: interval,
	}, nil
}

func pick(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
