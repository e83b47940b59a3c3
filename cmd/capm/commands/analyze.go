package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/betalab/internal/capm"
	"github.com/wonny/betalab/internal/contracts"
	"github.com/wonny/betalab/internal/external/yahoo"
	"github.com/wonny/betalab/internal/report"
	"github.com/wonny/betalab/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "단일 자산 CAPM 분석",
	Long: `자산의 시세를 받아 시장 대비 CAPM 회귀를 수행합니다.

이 명령어는:
- 자산/시장/무위험 시계열 조회 (Yahoo Finance)
- 주기 수익률 변환 및 날짜 교집합 정렬
- 초과수익률 OLS 회귀 (베타, 연환산 알파, R²)

Example:
  go run ./cmd/capm analyze --asset MSFT
  go run ./cmd/capm analyze --asset AAPL --market ^NDX --period 10y
  go run ./cmd/capm analyze --asset 005930.KS --market ^KS11 --interval weekly`,
	RunE: runAnalyze,
}

var (
	analyzeAsset    string
	analyzeMarket   string
	analyzeRiskFree string
	analyzePeriod   string
	analyzeInterval string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeAsset, "asset", "", "자산 심볼 (필수)")
	analyzeCmd.Flags().StringVar(&analyzeMarket, "market", "", "시장 지수 심볼 (기본: 설정값)")
	analyzeCmd.Flags().StringVar(&analyzeRiskFree, "risk-free", "", "무위험 수익률 심볼 (기본: 설정값)")
	analyzeCmd.Flags().StringVar(&analyzePeriod, "period", "", "조회 기간 (1y, 5y, 10y, max, ...)")
	analyzeCmd.Flags().StringVar(&analyzeInterval, "interval", "", "샘플링 주기 (daily, weekly, monthly, quarterly)")
	_ = analyzeCmd.MarkFlagRequired("asset")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	fmt.Println("=== BetaLab CAPM Analysis ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	// 3. Build the request, flags first then config defaults
	interval, err := contracts.ParseInterval(pick(analyzeInterval, cfg.Defaults.Interval))
	if err != nil {
		return err
	}

	req := contracts.Request{
		Asset:    analyzeAsset,
		Market:   pick(analyzeMarket, cfg.Defaults.Market),
		RiskFree: pick(analyzeRiskFree, cfg.Defaults.RiskFree),
		Period:   pick(analyzePeriod, cfg.Defaults.Period),
		Interval: interval,
	}

	fmt.Printf("📥 Fetching %s, %s, %s (%s / %s)\n",
		req.Asset, req.Market, req.RiskFree, req.Period, req.Interval)

	// 4. Create Yahoo client and analyzer
	client := yahoo.NewClient(cfg, log)
	analyzer := capm.New(client, client, log)

	// 5. Run the analysis
	result, err := analyzer.Run(cmd.Context(), req)
	if err != nil {
		return err
	}

	// 6. Render the report
	fmt.Println(report.Render(result))
	return nil
}

// pick returns value if set, fallback otherwise
func pick(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
