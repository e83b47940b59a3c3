package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/wonny/betalab/pkg/config"
)

// captureLogger returns a Logger writing JSON into the buffer
func captureLogger() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).With().Timestamp().Logger()
	return &Logger{zlog: zlog}, &buf
}

// parseEntry decodes the single JSON log line in the buffer
func parseEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output %q: %v", buf.String(), err)
	}
	return entry
}

func TestNewCarriesInstanceLevel(t *testing.T) {
	tests := []struct {
		logLevel string
		want     zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.logLevel, func(t *testing.T) {
			log := New(&config.Config{
				Env:       "development",
				LogLevel:  tt.logLevel,
				LogFormat: "json",
			})

			if got := log.zlog.GetLevel(); got != tt.want {
				t.Errorf("Instance level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLevelParsing(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"invalid", zerolog.InfoLevel}, // Default
		{"", zerolog.InfoLevel},        // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := level(tt.input); got != tt.want {
				t.Errorf("level(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	zlog := zerolog.New(&buf).Level(zerolog.WarnLevel)
	log := &Logger{zlog: zlog}

	log.Debug("dropped")
	log.Info("dropped too")
	if buf.Len() != 0 {
		t.Fatalf("Expected below-level logs to be dropped, got %q", buf.String())
	}

	log.Warn("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("Expected warn log to pass the filter, got %q", buf.String())
	}
}

func TestLeveledMethods(t *testing.T) {
	tests := []struct {
		level string
		emit  func(*Logger)
		want  string
	}{
		{"debug", func(l *Logger) { l.Debug("returns built") }, "returns built"},
		{"info", func(l *Logger) { l.Info("analysis started") }, "analysis started"},
		{"warn", func(l *Logger) { l.Warn("small sample") }, "small sample"},
		{"error", func(l *Logger) { l.Error("fetch failed") }, "fetch failed"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, buf := captureLogger()
			tt.emit(log)

			entry := parseEntry(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %q, want %q", entry["level"], tt.level)
			}
			if entry["message"] != tt.want {
				t.Errorf("message = %q, want %q", entry["message"], tt.want)
			}
		})
	}
}

func TestFormattedMethods(t *testing.T) {
	tests := []struct {
		level string
		emit  func(*Logger)
		want  string
	}{
		{"debug", func(l *Logger) { l.Debugf("symbol: %s, points: %d", "MSFT", 60) }, "symbol: MSFT, points: 60"},
		{"info", func(l *Logger) { l.Infof("aligned rows: %d", 42) }, "aligned rows: 42"},
		{"warn", func(l *Logger) { l.Warnf("retry attempt: %d", 3) }, "retry attempt: 3"},
		{"error", func(l *Logger) { l.Errorf("failed to fetch: %s", "timeout") }, "failed to fetch: timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			log, buf := captureLogger()
			tt.emit(log)

			entry := parseEntry(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("level = %q, want %q", entry["level"], tt.level)
			}
			if entry["message"] != tt.want {
				t.Errorf("message = %q, want %q", entry["message"], tt.want)
			}
		})
	}
}

func TestWithField(t *testing.T) {
	log, buf := captureLogger()

	log.WithField("symbol", "MSFT").Info("analysis started")

	entry := parseEntry(t, buf)
	if entry["symbol"] != "MSFT" {
		t.Errorf("symbol = %v, want MSFT", entry["symbol"])
	}
	if entry["message"] != "analysis started" {
		t.Errorf("message = %v, want 'analysis started'", entry["message"])
	}
}

func TestWithFields(t *testing.T) {
	log, buf := captureLogger()

	log.WithFields(map[string]interface{}{
		"asset":    "MSFT",
		"market":   "^GSPC",
		"interval": "1mo",
	}).Info("regression complete")

	entry := parseEntry(t, buf)
	for key, want := range map[string]string{
		"asset":    "MSFT",
		"market":   "^GSPC",
		"interval": "1mo",
	} {
		if entry[key] != want {
			t.Errorf("%s = %v, want %v", key, entry[key], want)
		}
	}
}

func TestWithError(t *testing.T) {
	log, buf := captureLogger()

	log.WithError(errors.New("chart request failed")).Error("fetch failed")

	entry := parseEntry(t, buf)
	if entry["error"] != "chart request failed" {
		t.Errorf("error = %v, want 'chart request failed'", entry["error"])
	}
	if entry["message"] != "fetch failed" {
		t.Errorf("message = %v, want 'fetch failed'", entry["message"])
	}
}

func TestComponent(t *testing.T) {
	log, buf := captureLogger()

	log.Component("yahoo").Info("client ready")

	entry := parseEntry(t, buf)
	if entry["component"] != "yahoo" {
		t.Errorf("component = %v, want yahoo", entry["component"])
	}
}

func TestLogsGoToStderr(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"json format", "json"},
		{"console format", "console"},
		{"pretty format", "pretty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldStderr := os.Stderr
			r, w, _ := os.Pipe()
			os.Stderr = w

			log := New(&config.Config{
				Env:       "development",
				LogLevel:  "info",
				LogFormat: tt.format,
			})
			log.Info("test message")

			w.Close()
			os.Stderr = oldStderr

			var buf bytes.Buffer
			_, _ = io.Copy(&buf, r)

			if !strings.Contains(buf.String(), "test message") {
				t.Errorf("Expected stderr to contain 'test message', got: %s", buf.String())
			}
		})
	}
}
