package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	pendingOrderExpiryJob *PendingOrderExpiryJob
}

func NewJobManager(pendingOrderExpiryJob *PendingOrderExpiryJob) *JobManager {
	return &JobManager{
		pendingOrderExpiryJob: pendingOrderExpiryJob,
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.pendingOrderExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start pending order expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.pendingOrderExpiryJob.Stop()
}
