package scheduler

import (
	"context"
	"time"
)

// historyKeep bounds how many run records are retained per job
const historyKeep = 100

// Job represents a scheduled job
// ⭐ SSOT: 스케줄 작업 인터페이스는 여기서만 정의
type Job interface {
	// Name returns the job name
	Name() string

	// Run executes the job
	Run(ctx context.Context) error

	// Schedule returns the cron schedule expression (seconds field included)
	// Examples: "0 0 7 * * 1-5" (weekdays at 7 AM)
	//           "@daily", "@every 6h"
	Schedule() string
}

// RunRecord is the outcome of one job execution, retries included
type RunRecord struct {
	Job      string        `json:"job"`
	Started  time.Time     `json:"started"`
	Finished time.Time     `json:"finished"`
	Duration time.Duration `json:"duration"`
	Attempts int           `json:"attempts"`
	Success  bool          `json:"success"`
	Error    string        `json:"error,omitempty"`
}

// runLog keeps the most recent executions of one job. All access goes
// through the scheduler mutex.
type runLog struct {
	records []RunRecord
}

func (l *runLog) add(r RunRecord) {
	l.records = append(l.records, r)
	if len(l.records) > historyKeep {
		l.records = l.records[len(l.records)-historyKeep:]
	}
}

// snapshot copies the records so callers can keep reading after the
// lock is released
func (l *runLog) snapshot() []RunRecord {
	out := make([]RunRecord, len(l.records))
	copy(out, l.records)
	return out
}

func (l *runLog) last() (RunRecord, bool) {
	if len(l.records) == 0 {
		return RunRecord{}, false
	}
	return l.records[len(l.records)-1], true
}

func (l *runLog) counts() (success, failure int) {
	for _, r := range l.records {
		if r.Success {
			success++
		} else {
			failure++
		}
	}
	return success, failure
}

// lastStarted returns when the most recent run with the given outcome
// began, or nil if there has been none
func (l *runLog) lastStarted(success bool) *time.Time {
	for i := len(l.records) - 1; i >= 0; i-- {
		if l.records[i].Success == success {
			t := l.records[i].Started
			return &t
		}
	}
	return nil
}
