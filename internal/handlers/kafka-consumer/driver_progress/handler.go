package driver_progress

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/internal/service/progress"
	"parcel-locker/pkg/logger"
	"parcel-locker/pkg/retrier"
)

type Handler struct {
	progressService          Service
	log                      handlerLogger
	retrier                  retrier.Retrier
	messageProcessingTimeout time.Duration
}

// New retrier повторяет только временные ошибки (конфликт версий, коллизия кода).
func New(log handlerLogger, progressService Service, retrier retrier.Retrier, timeout time.Duration) *Handler {
	handlerLog := log.With(logger.NewField("handler", "driver.progress"))

	return &Handler{
		progressService:          progressService,
		log:                      handlerLog,
		retrier:                  retrier,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("driver.progress: claim.Messages() closed, exiting ConsumeClaim")
				return nil
			}

			shouldExit := h.messageProcessing(sess, message)
			if shouldExit {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("driver.progress: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// messageProcessing true - сессия закрыта, сообщение не помечено и будет прочитано снова.
func (h *Handler) messageProcessing(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event progressEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("driver.progress handler received bad message")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("parcel", event.ParcelID),
		logger.NewField("driver", event.DriverID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	msgLog.Debug("driver.progress processing")

	progressEntity := entities.DriverProgress{
		ParcelID: event.ParcelID,
		DriverID: event.DriverID,
		Status:   entities.ParcelStatus(event.Status),
		LockerID: event.LockerID,
	}

	p, err := retrier.Do(ctx, h.retrier, func(ctx context.Context) (*entities.Parcel, error) {
		return h.progressService.Apply(ctx, progressEntity)
	})
	if err != nil {
		switch {
		case sess.Context().Err() != nil:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.progress session closed, message will be reprocessed")
			return true

		// таймаут сообщения не повод бросать партицию: после ребалансировки
		// то же сообщение снова упрётся в таймаут
		case errors.Is(err, context.DeadlineExceeded),
			errors.Is(err, retrier.ErrRetriesExhausted),
			parcel.IsTransient(err):
			msgLog.With(
				logger.NewField("error", err),
			).Error("driver.progress handler gave up on transient error")

		case errors.Is(err, progress.ErrUndefinedStatus),
			errors.Is(err, progress.ErrInvalidProgress):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.progress handler malformed event")

		case errors.Is(err, parcel.ErrInvalidStateTransition),
			errors.Is(err, parcel.ErrUnknownDriverContext):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.progress handler rejected event")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("driver.progress handler failed to process event")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("current_status", p.Status.String()),
	).Info("driver.progress: processed")

	sess.MarkMessage(message, "")
	return false
}
