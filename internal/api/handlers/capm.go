package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wonny/betalab/internal/capm"
	"github.com/wonny/betalab/internal/contracts"
	"github.com/wonny/betalab/internal/external/yahoo"
	"github.com/wonny/betalab/pkg/config"
	"github.com/wonny/betalab/pkg/logger"
)

// CapmHandler handles CAPM analysis API endpoints
// ⭐ SSOT: CAPM API 핸들러는 이 구조체에서만
type CapmHandler struct {
	analyzer *capm.Analyzer
	defaults config.DefaultsConfig
	logger   *logger.Logger
}

// NewCapmHandler creates a new CAPM handler
func NewCapmHandler(analyzer *capm.Analyzer, defaults config.DefaultsConfig, log *logger.Logger) *CapmHandler {
	return &CapmHandler{
		analyzer: analyzer,
		defaults: defaults,
		logger:   log,
	}
}

// GetAnalysis runs one CAPM analysis and returns the report
// GET /api/v1/capm?asset=MSFT&market=^GSPC&riskfree=^IRX&period=5y&interval=1mo
func (h *CapmHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	asset := strings.TrimSpace(q.Get("asset"))
	if asset == "" {
		respondError(w, http.StatusBadRequest, "asset query parameter is required")
		return
	}

	intervalParam := orDefault(q.Get("interval"), h.defaults.Interval)
	interval, err := contracts.ParseInterval(intervalParam)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unsupported interval: "+intervalParam)
		return
	}

	req := contracts.Request{
		Asset:    asset,
		Market:   orDefault(q.Get("market"), h.defaults.Market),
		RiskFree: orDefault(q.Get("riskfree"), h.defaults.RiskFree),
		Period:   orDefault(q.Get("period"), h.defaults.Period),
		Interval: interval,
	}

	report, err := h.analyzer.Run(ctx, req)
	if err != nil {
		status := statusForError(err)
		h.logger.WithError(err).WithFields(map[string]interface{}{
			"asset":  req.Asset,
			"market": req.Market,
			"status": status,
		}).Error("Analysis failed")

		if status == http.StatusInternalServerError {
			respondError(w, status, "Analysis failed")
			return
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    report,
	})
}

// statusForError maps pipeline failures onto HTTP status codes: bad
// request parameters are the caller's fault, unservable-but-valid
// requests are 422, upstream data failures are 502
func statusForError(err error) int {
	switch {
	case errors.Is(err, yahoo.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, contracts.ErrUnsupportedInterval):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contracts.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, contracts.ErrDataRetrieval):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}
