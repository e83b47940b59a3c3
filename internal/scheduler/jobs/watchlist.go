package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/betalab/internal/capm"
	"github.com/wonny/betalab/internal/watchlist"
	"github.com/wonny/betalab/pkg/config"
	"github.com/wonny/betalab/pkg/logger"
)

// WatchlistJob re-analyzes every watchlist entry on schedule
// ⭐ SSOT: 워치리스트 재분석 스케줄은 이 Job에서만
type WatchlistJob struct {
	analyzer *capm.Analyzer
	config   *config.Config
	logger   *logger.Logger
}

// NewWatchlistJob creates a new watchlist analysis job
func NewWatchlistJob(analyzer *capm.Analyzer, cfg *config.Config, log *logger.Logger) *WatchlistJob {
	return &WatchlistJob{
		analyzer: analyzer,
		config:   cfg,
		logger:   log,
	}
}

// Name returns the job name
func (j *WatchlistJob) Name() string {
	return "watchlist_analysis"
}

// Schedule returns the cron expression from WATCH_SCHEDULE
func (j *WatchlistJob) Schedule() string {
	return j.config.Watch.Schedule
}

// entryResult carries one entry's outcome back to the batch loop
type entryResult struct {
	Asset string
	Error error
}

// Run analyzes every entry in the watchlist file. One entry's failure
// never aborts the batch; the job fails only when the file cannot be
// loaded or every single analysis failed.
func (j *WatchlistJob) Run(ctx context.Context) error {
	// 1. Reload the watchlist on every run (picks up edits without restart)
	list, _, err := watchlist.Load(j.config.Watch.File)
	if err != nil {
		return fmt.Errorf("load watchlist: %w", err)
	}

	sum, err := list.Checksum()
	if err != nil {
		return fmt.Errorf("checksum watchlist: %w", err)
	}

	batchID := uuid.New().String()
	j.logger.WithFields(map[string]interface{}{
		"batch":     batchID,
		"watchlist": sum[:12],
		"entries":   list.Len(),
		"parallel":  j.config.Watch.Parallel,
	}).Info("Starting watchlist analysis")

	// 2. Fan out with bounded parallelism
	var g errgroup.Group
	g.SetLimit(j.config.Watch.Parallel)

	resultCh := make(chan entryResult, list.Len())
	for _, entry := range list.Entries {
		g.Go(func() error {
			resultCh <- j.analyzeEntry(ctx, list, entry, batchID)
			return nil
		})
	}

	// Workers never return errors, failures travel through resultCh
	_ = g.Wait()
	close(resultCh)

	// 3. Collect results
	successCount := 0
	failCount := 0
	for result := range resultCh {
		if result.Error != nil {
			failCount++
		} else {
			successCount++
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"batch":   batchID,
		"success": successCount,
		"failed":  failCount,
		"total":   list.Len(),
	}).Info("Watchlist analysis completed")

	if successCount == 0 {
		return fmt.Errorf("all %d analyses failed", list.Len())
	}
	return nil
}

// analyzeEntry runs one analysis and logs its outcome
func (j *WatchlistJob) analyzeEntry(ctx context.Context, list *watchlist.Config, entry watchlist.Entry, batchID string) entryResult {
	req, err := list.Request(entry)
	if err != nil {
		j.logger.WithError(err).WithFields(map[string]interface{}{
			"batch": batchID,
			"asset": entry.Asset,
		}).Error("Invalid watchlist entry")
		return entryResult{Asset: entry.Asset, Error: err}
	}

	report, err := j.analyzer.Run(ctx, req)
	if err != nil {
		j.logger.WithError(err).WithFields(map[string]interface{}{
			"batch": batchID,
			"asset": entry.Asset,
		}).Error("Watchlist analysis failed")
		return entryResult{Asset: entry.Asset, Error: err}
	}

	j.logger.WithFields(map[string]interface{}{
		"batch":        batchID,
		"asset":        report.Asset,
		"market":       report.Market,
		"beta":         report.Beta,
		"alpha_pct":    report.AlphaAnnualPct,
		"r_squared":    report.RSquared,
		"observations": report.Observations,
	}).Info("Watchlist analysis completed for asset")

	return entryResult{Asset: entry.Asset}
}
