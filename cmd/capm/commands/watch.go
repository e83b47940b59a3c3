package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/betalab/internal/capm"
	"github.com/wonny/betalab/internal/external/yahoo"
	"github.com/wonny/betalab/internal/scheduler"
	"github.com/wonny/betalab/internal/scheduler/jobs"
	"github.com/wonny/betalab/pkg/logger"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "워치리스트 정기 재분석",
	Long: `워치리스트의 모든 종목을 스케줄에 따라 재분석합니다.

이 명령어는:
- 워치리스트 YAML 로드 및 검증
- cron 스케줄 등록 (WATCH_SCHEDULE)
- 실행마다 종목별 CAPM 분석 후 결과 로깅

스케줄러는 Ctrl+C로 종료할 수 있습니다.

Example:
  go run ./cmd/capm watch
  go run ./cmd/capm watch --once
  WATCH_SCHEDULE="0 0 */6 * * *" go run ./cmd/capm watch`,
	RunE: runWatch,
}

var watchOnce bool

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().BoolVar(&watchOnce, "once", false, "스케줄 등록 없이 즉시 1회 실행")
}

func runWatch(cmd *cobra.Command, args []string) error {
	fmt.Println("=== BetaLab Watchlist Scheduler ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Create Yahoo client and analyzer
	client := yahoo.NewClient(cfg, log)
	analyzer := capm.New(client, client, log)

	// 4. Create the watchlist job
	job := jobs.NewWatchlistJob(analyzer, cfg, log)

	// Single immediate pass, no scheduler
	if watchOnce {
		fmt.Printf("📋 Watchlist: %s\n\n", cfg.Watch.File)
		if err := job.Run(cmd.Context()); err != nil {
			return fmt.Errorf("watchlist run: %w", err)
		}
		PrintSuccess("Watchlist analysis completed")
		return nil
	}

	// 5. Register with the scheduler
	sched := scheduler.New(log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add job: %w", err)
	}

	sched.Start()

	PrintSuccess("Scheduler started")
	fmt.Println("\nRegistered jobs:")
	for _, jobName := range sched.GetAllJobs() {
		fmt.Printf("  - %s (%s)\n", jobName, cfg.Watch.Schedule)
	}
	fmt.Println()
	PrintInfo("Watchlist: %s", cfg.Watch.File)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("\nShutting down scheduler...")
	sched.Stop()
	printJobStats(sched)

	return nil
}

// printJobStats prints run statistics collected while the scheduler ran
func printJobStats(sched *scheduler.Scheduler) {
	stats := sched.GetJobStats()
	if len(stats) == 0 {
		return
	}

	fmt.Println()
	PrintSeparator()
	fmt.Println("Job Statistics:")
	fmt.Println()

	for jobName, stat := range stats {
		fmt.Printf("📊 %s\n", jobName)
		fmt.Printf("   Schedule: %s\n", stat.Schedule)
		fmt.Printf("   Total Runs: %d\n", stat.TotalRuns)
		fmt.Printf("   Success: %d (%.1f%%)\n", stat.SuccessCount, stat.SuccessRate*100)
		fmt.Printf("   Failures: %d\n", stat.FailureCount)

		if stat.LastRun != nil {
			fmt.Printf("   Last Run: %s\n", stat.LastRun.Format("2006-01-02 15:04:05"))
		}

		fmt.Println()
	}
}
