package main

import (
	"os"

	"github.com/wonny/betalab/cmd/capm/commands"
)

// main is the entry point for the BetaLab CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/capm [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
