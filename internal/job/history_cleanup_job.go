package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/briefly-ai/briefly/internal/service"
)

// HistoryCleanupJob drops summary records past the retention horizon,
// together with their stored uploads.
type HistoryCleanupJob struct {
	svc           *service.SummaryService
	retentionDays int
}

func NewHistoryCleanupJob(svc *service.SummaryService, retentionDays int) *HistoryCleanupJob {
	return &HistoryCleanupJob{svc: svc, retentionDays: retentionDays}
}

func (j *HistoryCleanupJob) Name() string {
	return "history_cleanup"
}

func (j *HistoryCleanupJob) Run(ctx context.Context) error {
	if j.svc == nil {
		return nil
	}
	days := j.retentionDays
	if days <= 0 {
		days = 90
	}
	cutoff := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	dropped, err := j.svc.PurgeHistoryBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	if dropped > 0 {
		logutil.GetLogger(ctx).Info("history records purged",
			zap.Int64("dropped", dropped),
			zap.Int("retention_days", days),
		)
	}
	return nil
}
