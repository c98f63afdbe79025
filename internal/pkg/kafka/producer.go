package kafka

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"

	"parcel-locker/internal/pkg/config"
	"parcel-locker/pkg/logger"
)

// NewProducerConfig асинхронный продюсер: успехи не возвращаются, ошибки читает владелец.
func NewProducerConfig(versionStr string) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	cfg.Producer.Return.Successes = false
	cfg.Producer.Return.Errors = true

	return cfg, nil
}

func NewAsyncProducer(ctx context.Context, log logger.Logger, cfg *config.Kafka, brokers []string) (sarama.AsyncProducer, error) {
	saramaConfig, err := NewProducerConfig(cfg.Sarama.Version)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
	)

	err = pingKafka(ctx, kafkaLog, brokers, saramaConfig, cfg.Topics.Notifications)
	if err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	producer, err := sarama.NewAsyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create producer: %w", err)
	}

	return producer, nil
}
