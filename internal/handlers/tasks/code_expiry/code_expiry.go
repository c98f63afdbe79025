package code_expiry

import (
	"context"
	"time"

	"parcel-locker/pkg/logger"
)

const DefaultBatchLimit = 1000

type Service interface {
	ExpireOverdue(ctx context.Context, limit int) (int, error)
}

type CodeExpiry struct {
	log      logger.Logger
	service  Service
	interval time.Duration
	limit    int
}

func NewCodeExpiry(log logger.Logger, service Service, interval time.Duration) *CodeExpiry {
	return &CodeExpiry{
		log:      log,
		service:  service,
		interval: interval,
		limit:    DefaultBatchLimit,
	}
}

func (c *CodeExpiry) TTL() time.Duration {
	return c.interval
}

func (c *CodeExpiry) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.interval)
	defer cancel()

	expired, err := c.service.ExpireOverdue(ctxWithTimeout, c.limit)

	if expired > 0 {
		c.log.With(
			logger.NewField("expired_parcels", expired),
		).Info("sender code expiry")
	}

	return err
}

func (c *CodeExpiry) Info() string {
	return "sender code expiry"
}
