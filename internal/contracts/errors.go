package contracts

import "errors"

// Error kinds surfaced by providers and the analysis pipeline.
// 호출자는 errors.Is로 종류를 구분한다
var (
	// ErrDataRetrieval covers transport failures, unknown symbols and
	// empty payloads from a data provider.
	ErrDataRetrieval = errors.New("data retrieval failed")

	// ErrInsufficientData means fewer than two usable observations
	// survived return building or alignment.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrUnsupportedInterval means the requested interval is outside the
	// supported enumeration, or a provider cannot serve it.
	ErrUnsupportedInterval = errors.New("unsupported interval")
)
