// Package jobs provides scheduled background tasks for the measurement
// order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations that run outside any request.
//
// # Available Jobs
//
// 1. ResyncJob - Periodically rebroadcasts the full state so measurement
// stations that missed events converge back to the server's truth
// 2. BackupJob - Copies the snapshot file into a backup directory once a
// day and prunes old copies (file storage backend only)
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager; backupJob may be nil for database backends
//	jobManager := jobs.NewJobManager(resyncJob, backupJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job runs never interrupt the service: a failed backup or rebroadcast is
// logged and retried on the next tick. Failed job starts stop any already
// running jobs.
package jobs
