package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/IBM/sarama"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/logger"
)

var (
	ErrQueueFull = errors.New("notification queue is full")
	ErrClosed    = errors.New("notification gateway is closed")
)

// Gateway публикует события смены статуса посылки в Kafka, не дожидаясь брокера.
// Ключ сообщения - ID посылки, поэтому события одной посылки попадают в одну партицию.
type Gateway struct {
	log      handlerLogger
	producer Producer
	topic    string

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func New(log handlerLogger, producer Producer, topic string) *Gateway {
	g := &Gateway{
		log: log.With(
			logger.NewField("gateway", "notification"),
			logger.NewField("topic", topic),
		),
		producer: producer,
		topic:    topic,
	}

	g.wg.Add(1)
	go g.drainErrors()

	return g
}

// Notify ставит событие в очередь продюсера. Если очередь заполнена, событие
// отбрасывается с ErrQueueFull: уведомления не должны тормозить переходы.
func (g *Gateway) Notify(ctx context.Context, event entities.StatusEvent) error {
	payload, err := json.Marshal(statusChangedEvent{
		ParcelID:   event.ParcelID,
		Status:     event.Status.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: g.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(event.ParcelID, 10)),
		Value: sarama.ByteEncoder(payload),
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.closed {
		return ErrClosed
	}

	select {
	case g.producer.Input() <- message:
		NotificationsTotal.WithLabelValues("queued").Inc()
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		NotificationsTotal.WithLabelValues("dropped").Inc()
		return fmt.Errorf("%w: parcel %d status %s", ErrQueueFull, event.ParcelID, event.Status)
	}
}

// Close дожидается отправки буфера продюсера и закрывает его.
func (g *Gateway) Close() {
	g.mu.Lock()
	if g.closed {
		g.mu.Unlock()
		return
	}
	g.closed = true
	g.mu.Unlock()

	g.producer.AsyncClose()
	g.wg.Wait()
}

func (g *Gateway) drainErrors() {
	defer g.wg.Done()

	for perr := range g.producer.Errors() {
		NotificationsTotal.WithLabelValues("failed").Inc()

		fields := []logger.Field{logger.NewField("error", perr.Err)}
		if perr.Msg != nil && perr.Msg.Key != nil {
			if key, err := perr.Msg.Key.Encode(); err == nil {
				fields = append(fields, logger.NewField("parcel_id", string(key)))
			}
		}
		g.log.Warn("notification delivery failed", fields...)
	}
}
