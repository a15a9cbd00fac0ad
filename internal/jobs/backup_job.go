package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// backupRetention is the number of daily copies kept in the backup
// directory before the oldest are pruned.
const backupRetention = 14

// BackupJob copies the snapshot file into a backup directory once a day.
// It only applies to the file storage backend; database backends bring
// their own backup tooling.
type BackupJob struct {
	sourcePath string
	backupDir  string
	cron       *cron.Cron
	logger     *slog.Logger
	now        func() time.Time
}

// NewBackupJob creates a daily backup job for the snapshot file at
// sourcePath.
func NewBackupJob(sourcePath, backupDir string, logger *slog.Logger) *BackupJob {
	return &BackupJob{
		sourcePath: sourcePath,
		backupDir:  backupDir,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "backup_job"),
		now:        time.Now,
	}
}

// Start schedules the backup to run every night at 03:00 server time.
func (j *BackupJob) Start() error {
	_, err := j.cron.AddFunc("0 0 3 * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Backup job started", "backup_dir", j.backupDir)
	return nil
}

// Stop stops the backup schedule.
func (j *BackupJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Backup job stopped")
}

func (j *BackupJob) run() {
	ctx := context.Background()

	if err := j.backup(); err != nil {
		j.logger.ErrorContext(ctx, "Backup failed", "error", err)
		return
	}

	if err := j.prune(); err != nil {
		j.logger.ErrorContext(ctx, "Backup pruning failed", "error", err)
	}
}

func (j *BackupJob) backup() error {
	data, err := os.ReadFile(j.sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing persisted yet, nothing to back up.
			return nil
		}
		return fmt.Errorf("read snapshot: %w", err)
	}

	if err = os.MkdirAll(j.backupDir, 0o755); err != nil {
		return fmt.Errorf("create backup directory: %w", err)
	}

	name := fmt.Sprintf("orders-%s.json", j.now().UTC().Format("2006-01-02"))
	if err = os.WriteFile(filepath.Join(j.backupDir, name), data, 0o644); err != nil {
		return fmt.Errorf("write backup: %w", err)
	}

	return nil
}

// prune removes the oldest backups beyond the retention count. The
// date-stamped names sort chronologically, so lexicographic order is age
// order.
func (j *BackupJob) prune() error {
	entries, err := os.ReadDir(j.backupDir)
	if err != nil {
		return fmt.Errorf("read backup directory: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), "orders-") && strings.HasSuffix(entry.Name(), ".json") {
			backups = append(backups, entry.Name())
		}
	}

	if len(backups) <= backupRetention {
		return nil
	}

	sort.Strings(backups)
	for _, name := range backups[:len(backups)-backupRetention] {
		if err = os.Remove(filepath.Join(j.backupDir, name)); err != nil {
			return fmt.Errorf("remove old backup %s: %w", name, err)
		}
	}

	return nil
}
