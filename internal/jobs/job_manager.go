package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	availableOrdersCacheJob *AvailableOrdersCacheJob
}

// NewJobManager creates a new job manager over the given jobs.
func NewJobManager(availableOrdersCacheJob *AvailableOrdersCacheJob) *JobManager {
	return &JobManager{
		availableOrdersCacheJob: availableOrdersCacheJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.availableOrdersCacheJob.Start(); err != nil {
		return fmt.Errorf("failed to start available orders cache job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.availableOrdersCacheJob.Stop()
}
