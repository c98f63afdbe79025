package injection

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/service/injection"
	"parcel-locker/pkg/logger"
)

// Job запускает робота-отправителя по cron-расписанию.
// Запуск, пришедший во время предыдущего, пропускается.
type Job struct {
	log     handlerLogger
	service Service
	timeout time.Duration
	cron    *cron.Cron
}

// New timeout ограничивает один запуск, 0 без ограничения.
func New(log handlerLogger, service Service, timeout time.Duration) *Job {
	jobLog := log.With(logger.NewField("job", "injection"))
	cronLog := cronLogger{log: jobLog}

	return &Job{
		log:     jobLog,
		service: service,
		timeout: timeout,
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
	}
}

// Start ctx задаёт время жизни запусков; после его отмены новые не начинаются.
func (j *Job) Start(ctx context.Context, schedule string) error {
	_, err := j.cron.AddFunc(schedule, func() {
		if ctx.Err() != nil {
			return
		}
		_, _ = j.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", schedule, err)
	}

	j.cron.Start()
	j.log.Info("injection job started", logger.NewField("schedule", schedule))
	return nil
}

// Stop ждёт завершения текущего запуска, но не дольше ctx.
func (j *Job) Stop(ctx context.Context) {
	select {
	case <-j.cron.Stop().Done():
		j.log.Info("injection job stopped")
	case <-ctx.Done():
		j.log.Warn("injection job did not stop in time")
	}
}

// RunOnce один прогон; пересечение с уже идущим прогоном не считается ошибкой.
func (j *Job) RunOnce(ctx context.Context) (entities.InjectionSummary, error) {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	start := time.Now()
	summary, err := j.service.Run(ctx)
	if errors.Is(err, injection.ErrRunInProgress) {
		j.log.Warn("injection run skipped, previous run still in progress")
		return summary, nil
	}
	if err != nil {
		j.log.Error("injection run failed", logger.NewField("error", err))
		return summary, err
	}

	j.log.Info("injection run finished",
		logger.NewField("sent", summary.Sent()),
		logger.NewField("assigned", summary.Assignment.Assigned),
		logger.NewField("duration", time.Since(start).String()),
	)
	return summary, nil
}

// cronLogger пишет служебные сообщения cron в наш логгер.
type cronLogger struct {
	log handlerLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, fields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append(fields(keysAndValues), logger.NewField("error", err))...)
}

func fields(keysAndValues []any) []logger.Field {
	res := make([]logger.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		res = append(res, logger.NewField(key, keysAndValues[i+1]))
	}
	return res
}
