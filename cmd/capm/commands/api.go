package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/betalab/internal/api"
	"github.com/wonny/betalab/internal/api/handlers"
	"github.com/wonny/betalab/internal/capm"
	"github.com/wonny/betalab/internal/external/yahoo"
	"github.com/wonny/betalab/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "CAPM 분석 API 서버 시작",
	Long: `CAPM 분석 REST API 서버를 시작합니다.

Endpoints:
  GET /health                 - Health check
  GET /api/v1/capm?asset=...  - CAPM 분석

Example:
  go run ./cmd/capm api
  go run ./cmd/capm api --port 8080`,
	RunE: runAPI,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: 설정값)")
}

func runAPI(cmd *cobra.Command, args []string) error {
	PrintDoubleSeparator()
	fmt.Println("  BetaLab API Server")
	PrintDoubleSeparator()

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Wire the analysis pipeline: the chart client feeds the
	//    analyzer, the handler exposes it
	client := yahoo.NewClient(cfg, log)
	analyzer := capm.New(client, client, log)
	capmHandler := handlers.NewCapmHandler(analyzer, cfg.Defaults, log)

	// 4. Router and server
	server := api.New(cfg, log, api.NewRouter(capmHandler, log))

	// 5. Serve until interrupted
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("API server failed")
		}
	}()

	PrintSuccess("Server running on http://localhost:%s", cfg.Port)
	fmt.Println("\nEndpoints:")
	fmt.Println("  GET /health")
	fmt.Println("  GET /api/v1/capm?asset=MSFT&period=5y&interval=1mo")
	fmt.Println("\nPress Ctrl+C to shut down")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	// 6. Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
