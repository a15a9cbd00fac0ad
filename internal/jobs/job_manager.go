package jobs

import (
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	resyncJob *ResyncJob
	backupJob *BackupJob
}

// NewJobManager creates a new job manager. backupJob may be nil when the
// storage backend has no snapshot file to back up.
func NewJobManager(resyncJob *ResyncJob, backupJob *BackupJob) *JobManager {
	return &JobManager{
		resyncJob: resyncJob,
		backupJob: backupJob,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.resyncJob.Start(); err != nil {
		return fmt.Errorf("failed to start resync job: %w", err)
	}

	if jm.backupJob != nil {
		if err := jm.backupJob.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.resyncJob.Stop()
			return fmt.Errorf("failed to start backup job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.backupJob != nil {
		jm.backupJob.Stop()
	}
	jm.resyncJob.Stop()
}
