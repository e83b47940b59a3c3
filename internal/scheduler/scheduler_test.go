package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/betalab/pkg/config"
	"github.com/wonny/betalab/pkg/logger"
)

// fakeJob fails its first `failures` runs, then succeeds
type fakeJob struct {
	name     string
	schedule string

	mu       sync.Mutex
	calls    int
	failures int
}

func (f *fakeJob) Name() string     { return f.name }
func (f *fakeJob) Schedule() string { return f.schedule }

func (f *fakeJob) Run(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("boom")
	}
	return nil
}

func (f *fakeJob) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testScheduler() *Scheduler {
	log := logger.New(&config.Config{Env: "test", LogLevel: "error", LogFormat: "json"})
	return New(log).WithRetry(1, time.Millisecond)
}

// waitForRuns polls until the job has recorded n runs
func waitForRuns(t *testing.T, s *Scheduler, job string, n int) JobStats {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if stat, ok := s.GetJobStats()[job]; ok && stat.TotalRuns >= n {
			return stat
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("job %s did not record %d runs in time", job, n)
	return JobStats{}
}

func TestScheduler_AddJob(t *testing.T) {
	s := testScheduler()

	err := s.AddJob(&fakeJob{name: "alpha", schedule: "0 0 7 * * 1-5"})
	require.NoError(t, err)

	// Duplicate name rejected
	err = s.AddJob(&fakeJob{name: "alpha", schedule: "@daily"})
	assert.ErrorContains(t, err, "already exists")

	// Invalid cron expression rejected
	err = s.AddJob(&fakeJob{name: "beta", schedule: "not a schedule"})
	assert.ErrorContains(t, err, "failed to schedule")

	assert.Equal(t, []string{"alpha"}, s.GetAllJobs())
}

func TestScheduler_RunJob(t *testing.T) {
	s := testScheduler()
	job := &fakeJob{name: "once", schedule: "@daily"}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("once"))
	stat := waitForRuns(t, s, "once", 1)

	assert.Equal(t, 1, stat.SuccessCount)
	assert.Equal(t, 0, stat.FailureCount)
	assert.Equal(t, 1.0, stat.SuccessRate)
	assert.NotNil(t, stat.LastSuccess)
	assert.Nil(t, stat.LastFailure)
	assert.Equal(t, 1, job.Calls())

	assert.ErrorContains(t, s.RunJob("missing"), "not found")
}

func TestScheduler_RetriesUntilSuccess(t *testing.T) {
	s := testScheduler()
	job := &fakeJob{name: "flaky", schedule: "@daily", failures: 1}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("flaky"))
	stat := waitForRuns(t, s, "flaky", 1)

	// First attempt failed, retry succeeded inside the same run
	assert.Equal(t, 1, stat.SuccessCount)
	assert.Equal(t, 0, stat.FailureCount)
	assert.Equal(t, 2, job.Calls())
}

func TestScheduler_RecordsFailureAfterRetries(t *testing.T) {
	s := testScheduler()
	job := &fakeJob{name: "broken", schedule: "@daily", failures: 10}
	require.NoError(t, s.AddJob(job))

	require.NoError(t, s.RunJob("broken"))
	stat := waitForRuns(t, s, "broken", 1)

	assert.Equal(t, 0, stat.SuccessCount)
	assert.Equal(t, 1, stat.FailureCount)
	assert.NotNil(t, stat.LastFailure)
	// maxRetries=1 means two attempts total
	assert.Equal(t, 2, job.Calls())

	history, err := s.GetJobHistory("broken")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Success)
	assert.Equal(t, 2, history[0].Attempts)
	assert.Equal(t, "boom", history[0].Error)
}

func TestScheduler_RemoveJob(t *testing.T) {
	s := testScheduler()
	require.NoError(t, s.AddJob(&fakeJob{name: "gone", schedule: "@daily"}))

	require.NoError(t, s.RemoveJob("gone"))
	assert.Empty(t, s.GetAllJobs())
	assert.ErrorContains(t, s.RunJob("gone"), "not found")
	assert.ErrorContains(t, s.RemoveJob("gone"), "not found")
}

func TestScheduler_GetJobHistoryUnknown(t *testing.T) {
	s := testScheduler()
	_, err := s.GetJobHistory("nobody")
	assert.ErrorContains(t, err, "not found")
}

func TestScheduler_StartStop(t *testing.T) {
	s := testScheduler()
	require.NoError(t, s.AddJob(&fakeJob{name: "idle", schedule: "0 0 7 * * 1-5"}))

	s.Start()
	s.Stop() // must not deadlock with no job in flight
}

func TestRunLog_Ring(t *testing.T) {
	l := &runLog{}
	for i := 0; i < 150; i++ {
		l.add(RunRecord{
			Job:     fmt.Sprintf("run-%d", i),
			Success: i%2 == 0,
		})
	}

	// Only the most recent 100 survive
	records := l.snapshot()
	require.Len(t, records, 100)
	assert.Equal(t, "run-50", records[0].Job)
	assert.Equal(t, "run-149", records[99].Job)

	// runs 50..149: even indices succeeded
	successes, failures := l.counts()
	assert.Equal(t, 50, successes)
	assert.Equal(t, 50, failures)

	last, ok := l.last()
	require.True(t, ok)
	assert.Equal(t, "run-149", last.Job)
}

func TestRunLog_LastStarted(t *testing.T) {
	l := &runLog{}
	assert.Nil(t, l.lastStarted(true))

	base := time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)
	l.add(RunRecord{Job: "a", Started: base, Success: true})
	l.add(RunRecord{Job: "a", Started: base.Add(time.Hour), Success: false})
	l.add(RunRecord{Job: "a", Started: base.Add(2 * time.Hour), Success: true})

	// Most recent run succeeded, but the failure before it is still
	// reported as the last failure
	require.NotNil(t, l.lastStarted(true))
	assert.Equal(t, base.Add(2*time.Hour), *l.lastStarted(true))
	require.NotNil(t, l.lastStarted(false))
	assert.Equal(t, base.Add(time.Hour), *l.lastStarted(false))
}
