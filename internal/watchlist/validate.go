package watchlist

import (
	"fmt"

	"github.com/wonny/betalab/internal/contracts"
)

// ValidationError 검증 실패 (워치리스트 로드 중단)
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks all required constraints
// 실패 시 error 반환 (스케줄 등록 중단)
func Validate(cfg *Config) error {
	// === Defaults ===
	if cfg.Defaults.Market == "" {
		return ValidationError{"defaults.market", "required"}
	}
	if cfg.Defaults.RiskFree == "" {
		return ValidationError{"defaults.risk_free", "required"}
	}
	if cfg.Defaults.Period == "" {
		return ValidationError{"defaults.period", "required"}
	}
	if _, err := contracts.ParseInterval(cfg.Defaults.Interval); err != nil {
		return ValidationError{"defaults.interval", err.Error()}
	}

	// === Entries ===
	if len(cfg.Entries) == 0 {
		return ValidationError{"entries", "at least one entry required"}
	}

	seen := make(map[string]bool, len(cfg.Entries))
	for i, e := range cfg.Entries {
		field := fmt.Sprintf("entries[%d]", i)

		if e.Asset == "" {
			return ValidationError{field + ".asset", "required"}
		}
		if seen[e.Asset] {
			return ValidationError{field + ".asset", fmt.Sprintf("duplicate asset %q", e.Asset)}
		}
		seen[e.Asset] = true

		if e.Interval != "" {
			if _, err := contracts.ParseInterval(e.Interval); err != nil {
				return ValidationError{field + ".interval", err.Error()}
			}
		}
	}

	return nil
}
