package injection

import (
	"context"

	"parcel-locker/internal/entities"
	"parcel-locker/pkg/logger"
)

//go:generate mockgen -source=contract.go -destination=contract_mocks_test.go -package=injection_test

type Service interface {
	Run(ctx context.Context) (entities.InjectionSummary, error)
}

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
