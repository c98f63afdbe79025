package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"

	"parcel-locker/internal/pkg/config"
	"parcel-locker/pkg/logger"
)

// Consumer читает топики группой config.Kafka.ConsumerGroup.
type Consumer struct {
	log     logger.Logger
	group   sarama.ConsumerGroup
	topics  []string
	handler sarama.ConsumerGroupHandler
}

func NewSaramaConfig(
	versionStr string,
	autoCommit bool,
	initialOffset int64,
	rebalanceStrategy sarama.BalanceStrategy,
) (*sarama.Config, error) {
	cfg := sarama.NewConfig()

	version, err := sarama.ParseKafkaVersion(versionStr)
	if err != nil {
		return nil, fmt.Errorf("parse kafka version %q: %w", versionStr, err)
	}
	cfg.Version = version

	cfg.Consumer.Offsets.Initial = initialOffset
	cfg.Consumer.Offsets.AutoCommit.Enable = autoCommit
	cfg.Consumer.Group.Rebalance.Strategy = rebalanceStrategy
	// ошибки группы читает Start, иначе они только в логе sarama
	cfg.Consumer.Return.Errors = true

	return cfg, nil
}

// NewConsumer события о ходе доставки читаются с самого старого смещения:
// пропущенное событие оставит посылку в старом статусе навсегда.
func NewConsumer(ctx context.Context, log logger.Logger, cfg *config.Kafka, topics []string, handler sarama.ConsumerGroupHandler) (*Consumer, error) {
	saramaConfig, err := NewSaramaConfig(
		cfg.Sarama.Version,
		cfg.Sarama.ConsumerOffsetsAutocommit,
		sarama.OffsetOldest,
		sarama.NewBalanceStrategyRoundRobin(),
	)
	if err != nil {
		return nil, fmt.Errorf("build saramaConfig: %w", err)
	}

	brokers := cfg.BrokerList()
	kafkaLog := log.With(
		logger.NewField("brokers", brokers),
		logger.NewField("group", cfg.ConsumerGroup),
		logger.NewField("topics", topics),
	)

	if err := pingKafka(ctx, kafkaLog, brokers, saramaConfig, topics...); err != nil {
		return nil, fmt.Errorf("kafka connection: %w", err)
	}

	group, err := sarama.NewConsumerGroup(brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		log:     kafkaLog,
		group:   group,
		topics:  topics,
		handler: handler,
	}, nil
}

// Start блокирует до отмены ctx или закрытия группы. Consume возвращается
// на каждой ребалансировке, поэтому вызывается в цикле.
func (c *Consumer) Start(ctx context.Context) error {
	go c.logGroupErrors()

	for {
		err := c.group.Consume(ctx, c.topics, c.handler)
		if errors.Is(err, sarama.ErrClosedConsumerGroup) {
			return err
		}
		if err != nil {
			c.log.With(
				logger.NewField("error", err),
			).Error("consume session failed")
			return fmt.Errorf("consumer error: %w", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Debug("consumer group rebalanced")
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

// logGroupErrors канал закрывается в Close.
func (c *Consumer) logGroupErrors() {
	for err := range c.group.Errors() {
		c.log.With(
			logger.NewField("error", err),
		).Warn("consumer group error")
	}
}
