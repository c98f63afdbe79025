package batch_assignment

import (
	"context"
	"time"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/logger"
)

type Scheduler interface {
	RunIfIdle(ctx context.Context, cooldown time.Duration) (entities.AssignmentResult, bool, error)
}

// BatchAssignment периодический прогон назначения. Если с начала предыдущего
// прогона (в том числе внеочередного) прошло меньше cooldown, тик пропускается.
type BatchAssignment struct {
	log       logger.Logger
	scheduler Scheduler
	cooldown  time.Duration
}

func NewBatchAssignment(log logger.Logger, scheduler Scheduler, cooldown time.Duration) *BatchAssignment {
	return &BatchAssignment{
		log:       log,
		scheduler: scheduler,
		cooldown:  cooldown,
	}
}

func (b *BatchAssignment) TTL() time.Duration {
	return b.cooldown
}

func (b *BatchAssignment) Do(ctx context.Context) error {
	result, ran, err := b.scheduler.RunIfIdle(ctx, b.cooldown)
	if !ran {
		return nil
	}

	if result.Assigned > 0 || result.Failed > 0 || result.Unmatched > 0 {
		b.log.With(
			logger.NewField("assigned", result.Assigned),
			logger.NewField("failed", result.Failed),
			logger.NewField("unmatched", result.Unmatched),
			logger.NewField("passes", result.Passes),
		).Info("batch assignment")
	}

	return err
}

func (b *BatchAssignment) Info() string {
	return "batch assignment"
}
