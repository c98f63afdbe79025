package notification

import (
	"github.com/IBM/sarama"

	"parcel-locker/pkg/logger"
)

// Producer часть sarama.AsyncProducer, которой пользуется шлюз.
type Producer interface {
	Input() chan<- *sarama.ProducerMessage
	Errors() <-chan *sarama.ProducerError
	AsyncClose()
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
