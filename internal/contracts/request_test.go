package contracts

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRequestValidate(t *testing.T) {
	valid := Request{
		Asset:    "MSFT",
		Market:   "^GSPC",
		RiskFree: "^IRX",
		Period:   "5y",
		Interval: IntervalMonthly,
	}

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr bool
	}{
		{"valid request", func(r *Request) {}, false},
		{"missing asset", func(r *Request) { r.Asset = "" }, true},
		{"blank asset", func(r *Request) { r.Asset = "   " }, true},
		{"missing market", func(r *Request) { r.Market = "" }, true},
		{"missing risk-free", func(r *Request) { r.RiskFree = "" }, true},
		{"missing period", func(r *Request) { r.Period = "" }, true},
		{"bad interval", func(r *Request) { r.Interval = "hourly" }, true},
		{"empty interval", func(r *Request) { r.Interval = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestReportWarnings(t *testing.T) {
	r := &Report{Asset: "MSFT"}

	if r.HasWarnings() {
		t.Error("Expected no warnings on a fresh report")
	}

	r.AddWarning("only 8 aligned observations")
	r.AddWarning("risk-free conversion unsupported, using 0")

	if !r.HasWarnings() {
		t.Error("Expected warnings after AddWarning")
	}

	if len(r.Warnings) != 2 {
		t.Errorf("Expected 2 warnings, got %d", len(r.Warnings))
	}
}

func TestReportJSONOmitsEmptyWarnings(t *testing.T) {
	r := &Report{Asset: "MSFT", Beta: 1.2}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	if strings.Contains(string(data), "warnings") {
		t.Errorf("Expected warnings to be omitted when empty, got %s", data)
	}

	r.AddWarning("small sample")
	data, err = json.Marshal(r)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	if !strings.Contains(string(data), "small sample") {
		t.Errorf("Expected warning in JSON, got %s", data)
	}
}
