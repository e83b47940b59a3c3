package commands

import "fmt"

// ═══════════════════════════════════════════════════════════
// Common Formatting Utilities
// 모든 커맨드가 동일한 출력 포맷을 사용하도록 통일
// ═══════════════════════════════════════════════════════════

const (
	separator       = "───────────────────────────────────────────────────────────"
	doubleSeparator = "═══════════════════════════════════════════════════════════"
)

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println(separator)
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println(doubleSeparator)
}

// PrintSuccess prints a success line
func PrintSuccess(format string, args ...interface{}) {
	fmt.Printf("✅ "+format+"\n", args...)
}

// PrintError prints an error line
func PrintError(format string, args ...interface{}) {
	fmt.Printf("❌ "+format+"\n", args...)
}

// PrintInfo prints an info line
func PrintInfo(format string, args ...interface{}) {
	fmt.Printf("ℹ️  "+format+"\n", args...)
}

// PrintWarning prints a warning line set off by blank lines
func PrintWarning(format string, args ...interface{}) {
	fmt.Printf("\n⚠️  "+format+"\n\n", args...)
}
