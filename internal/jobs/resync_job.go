package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"metrology/internal/core/ports"
)

// snapshotSource supplies the current full state for rebroadcast.
type snapshotSource interface {
	Snapshot() ports.FullStatePayload
}

// ResyncJob periodically rebroadcasts the full state to every connected
// subscriber. Stations whose stream dropped frames converge on the next
// tick instead of drifting until reconnect.
type ResyncJob struct {
	source    snapshotSource
	publisher ports.EventPublisher
	interval  int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewResyncJob creates a resync job that fires every interval seconds.
func NewResyncJob(source snapshotSource, publisher ports.EventPublisher, intervalSeconds int, logger *slog.Logger) *ResyncJob {
	return &ResyncJob{
		source:    source,
		publisher: publisher,
		interval:  intervalSeconds,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "resync_job"),
	}
}

// Start begins the periodic rebroadcast.
func (j *ResyncJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %ds", j.interval), j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Resync job started", "interval_seconds", j.interval)
	return nil
}

// Stop stops the periodic rebroadcast.
func (j *ResyncJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Resync job stopped")
}

func (j *ResyncJob) run() {
	j.publisher.Publish(ports.Event{
		Type:    ports.EventFullState,
		Payload: j.source.Snapshot(),
	})
}
