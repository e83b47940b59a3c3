package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wonny/betalab/pkg/logger"
)

// registration ties one job to its cron entry and run log
type registration struct {
	job     Job
	entryID cron.EntryID
	log     *runLog
}

// Scheduler manages scheduled jobs
// ⭐ SSOT: 스케줄 관리는 이 스케줄러에서만
type Scheduler struct {
	cron   *cron.Cron
	logger *logger.Logger

	mu   sync.RWMutex
	jobs map[string]*registration

	maxRetries int
	retryDelay time.Duration
}

// New creates a new scheduler
func New(log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithSeconds()),
		logger:     log,
		jobs:       make(map[string]*registration),
		maxRetries: 2,
		retryDelay: 1 * time.Minute,
	}
}

// WithRetry overrides the per-job retry policy
func (s *Scheduler) WithRetry(maxRetries int, delay time.Duration) *Scheduler {
	s.maxRetries = maxRetries
	s.retryDelay = delay
	return s
}

// AddJob registers a job under its Name and schedules it
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := job.Name()
	if _, exists := s.jobs[name]; exists {
		return fmt.Errorf("job %s already exists", name)
	}

	entryID, err := s.cron.AddFunc(job.Schedule(), func() {
		s.runJob(job)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = &registration{
		job:     job,
		entryID: entryID,
		log:     &runLog{},
	}

	s.logger.WithFields(map[string]interface{}{
		"job":      name,
		"schedule": job.Schedule(),
	}).Info("Job added to scheduler")

	return nil
}

// RemoveJob unschedules a job and drops its run log
func (s *Scheduler) RemoveJob(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, exists := s.jobs[name]
	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	s.cron.Remove(reg.entryID)
	delete(s.jobs, name)
	s.logger.WithField("job", name).Info("Job removed from scheduler")

	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.logger.Info("Starting scheduler")
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// RunJob runs a registered job immediately, outside its schedule.
// Execution is asynchronous; the outcome lands in the run log.
func (s *Scheduler) RunJob(name string) error {
	s.mu.RLock()
	reg, exists := s.jobs[name]
	s.mu.RUnlock()

	if !exists {
		return fmt.Errorf("job %s not found", name)
	}

	go s.runJob(reg.job)
	return nil
}

// runJob executes one job, retrying per the scheduler policy, and
// records the outcome
func (s *Scheduler) runJob(job Job) {
	name := job.Name()
	started := time.Now()

	s.logger.WithField("job", name).Info("Job started")

	var lastErr error
	attempts := 0
	success := false

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		attempts++

		if err := job.Run(context.Background()); err != nil {
			lastErr = err
		} else {
			success = true
			break
		}

		s.logger.WithFields(map[string]interface{}{
			"job":     name,
			"attempt": attempts,
			"error":   lastErr.Error(),
		}).Warn("Job execution failed")

		if attempt < s.maxRetries {
			time.Sleep(s.retryDelay)
		}
	}

	finished := time.Now()
	record := RunRecord{
		Job:      name,
		Started:  started,
		Finished: finished,
		Duration: finished.Sub(started),
		Attempts: attempts,
		Success:  success,
	}
	if !success {
		record.Error = lastErr.Error()
	}

	s.mu.Lock()
	if reg, exists := s.jobs[name]; exists {
		reg.log.add(record)
	}
	s.mu.Unlock()

	if success {
		s.logger.WithFields(map[string]interface{}{
			"job":      name,
			"duration": record.Duration,
			"attempts": attempts,
		}).Info("Job completed")
	} else {
		s.logger.WithFields(map[string]interface{}{
			"job":      name,
			"duration": record.Duration,
			"error":    record.Error,
		}).Error("Job failed after all retries")
	}
}

// GetJobHistory returns a snapshot of the run records for a job
func (s *Scheduler) GetJobHistory(name string) ([]RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	reg, exists := s.jobs[name]
	if !exists {
		return nil, fmt.Errorf("job %s not found", name)
	}

	return reg.log.snapshot(), nil
}

// GetAllJobs returns the names of all registered jobs
func (s *Scheduler) GetAllJobs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}

	return names
}

// JobStats summarizes the run log of one job
type JobStats struct {
	JobName      string     `json:"job_name"`
	Schedule     string     `json:"schedule"`
	TotalRuns    int        `json:"total_runs"`
	SuccessCount int        `json:"success_count"`
	FailureCount int        `json:"failure_count"`
	SuccessRate  float64    `json:"success_rate"`
	LastRun      *time.Time `json:"last_run,omitempty"`
	LastSuccess  *time.Time `json:"last_success,omitempty"`
	LastFailure  *time.Time `json:"last_failure,omitempty"`
}

// GetJobStats returns statistics for every registered job
func (s *Scheduler) GetJobStats() map[string]JobStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := make(map[string]JobStats, len(s.jobs))

	for name, reg := range s.jobs {
		successes, failures := reg.log.counts()
		total := successes + failures

		stat := JobStats{
			JobName:      name,
			Schedule:     reg.job.Schedule(),
			TotalRuns:    total,
			SuccessCount: successes,
			FailureCount: failures,
			LastSuccess:  reg.log.lastStarted(true),
			LastFailure:  reg.log.lastStarted(false),
		}
		if total > 0 {
			stat.SuccessRate = float64(successes) / float64(total)
		}
		if last, ok := reg.log.last(); ok {
			stat.LastRun = &last.Started
		}

		stats[name] = stat
	}

	return stats
}
