// Package jobs provides scheduled background tasks for the dashboard.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/platepos/api/internal/enum"
	"github.com/platepos/api/internal/service"
	"github.com/platepos/api/internal/store"
	"github.com/robfig/cron/v3"
)

// RevenueSnapshotJob recomputes the current day's revenue summary every
// minute, persists it, and pushes it to connected dashboard clients so the
// reports tab stays live without polling.
type RevenueSnapshotJob struct {
	reports *service.ReportService
	kv      store.KV
	sink    service.EventSink
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewRevenueSnapshotJob creates the snapshot job. sink may be nil.
func NewRevenueSnapshotJob(reports *service.ReportService, kv store.KV, sink service.EventSink, logger *slog.Logger) *RevenueSnapshotJob {
	return &RevenueSnapshotJob{
		reports: reports,
		kv:      kv,
		sink:    sink,
		cron:    cron.New(),
		logger:  logger.With("component", "revenue_snapshot_job"),
	}
}

// Start begins the snapshot job, running once a minute.
func (j *RevenueSnapshotJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Revenue snapshot job started (running every minute)")
	return nil
}

// Stop stops the snapshot job.
func (j *RevenueSnapshotJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Revenue snapshot job stopped")
}

func (j *RevenueSnapshotJob) run() {
	ctx := context.Background()

	rep, err := j.reports.Revenue(ctx, enum.TimeframeToday, time.Now())
	if err != nil {
		j.logger.ErrorContext(ctx, "Revenue snapshot failed", "error", err)
		return
	}

	b, err := json.Marshal(rep)
	if err != nil {
		j.logger.ErrorContext(ctx, "Revenue snapshot encode failed", "error", err)
		return
	}
	if err := j.kv.Set(ctx, store.KeyRevenueSnapshot, b); err != nil {
		j.logger.ErrorContext(ctx, "Revenue snapshot persist failed", "error", err)
		return
	}

	if j.sink != nil {
		j.sink.Publish("reports.today", rep)
	}
}
