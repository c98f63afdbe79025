package assignment

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/pkg/logger"
)

const (
	DefaultBatchSize      = 500
	DefaultDriverCapacity = 10

	// тики таймера приходят с дрожанием, поэтому пауза сверяется с запасом
	cooldownSlackDivisor = 10
)

type Config struct {
	// BatchSize сколько посылок берётся за один проход.
	BatchSize int
	// DriverCapacity сколько новых посылок водитель может получить за один проход, 0 без ограничения.
	DriverCapacity int
}

type Scheduler struct {
	log        handlerLogger
	repository Repository
	drivers    DriverRepository
	machine    ParcelMachine
	lock       RunLock
	cfg        Config

	running      atomic.Bool
	pending      atomic.Bool
	lastStarted  atomic.Int64
	lastFinished atomic.Int64

	now func() time.Time
}

// New lock может быть nil, тогда прогоны исключают друг друга только внутри процесса.
func New(
	log handlerLogger,
	repository Repository,
	drivers DriverRepository,
	machine ParcelMachine,
	lock RunLock,
	cfg Config,
) *Scheduler {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.DriverCapacity < 0 {
		cfg.DriverCapacity = DefaultDriverCapacity
	}
	return &Scheduler{
		log:        log.With(logger.NewField("service", "assignment")),
		repository: repository,
		drivers:    drivers,
		machine:    machine,
		lock:       lock,
		cfg:        cfg,
		now:        time.Now,
	}
}

// RunOnce назначает водителей посылкам, ожидающим в постаматах.
//
// Одновременно выполняется не больше одного прогона. Вызов во время прогона не ждёт:
// он помечает, что нужен ещё один проход, и возвращает результат с Coalesced.
// Активный прогон после текущего прохода делает дополнительный.
func (s *Scheduler) RunOnce(ctx context.Context) (entities.AssignmentResult, error) {
	var total entities.AssignmentResult

	for {
		if !s.running.CompareAndSwap(false, true) {
			s.pending.Store(true)
			if s.running.Load() {
				AssignmentRunsCoalescedTotal.Inc()
				total.Coalesced = true
				return total, nil
			}
			// прогон завершился между CAS и проверкой, пробуем стать исполнителем
			continue
		}

		s.pending.Store(false)
		s.lastStarted.Store(s.now().UnixNano())
		result, err := s.pass(ctx)
		total.Add(result)
		total.Coalesced = total.Coalesced || result.Coalesced

		s.lastFinished.Store(s.now().UnixNano())
		s.running.Store(false)

		if err != nil {
			return total, err
		}
		if !s.pending.Load() || ctx.Err() != nil {
			return total, nil
		}
	}
}

// RunIfIdle запускает RunOnce, если предыдущий прогон начался не позже, чем
// cooldown назад. Отсчёт от начала: таймер с периодом cooldown не должен
// пропускать тик из-за длительности самого прогона.
func (s *Scheduler) RunIfIdle(ctx context.Context, cooldown time.Duration) (entities.AssignmentResult, bool, error) {
	if last := s.lastStarted.Load(); last != 0 {
		if s.now().Sub(time.Unix(0, last)) < cooldown-cooldown/cooldownSlackDivisor {
			return entities.AssignmentResult{}, false, nil
		}
	}

	result, err := s.RunOnce(ctx)
	return result, true, err
}

// LastFinished время окончания последнего прохода, нулевое если прогонов не было.
func (s *Scheduler) LastFinished() time.Time {
	last := s.lastFinished.Load()
	if last == 0 {
		return time.Time{}
	}
	return time.Unix(0, last)
}

func (s *Scheduler) pass(ctx context.Context) (result entities.AssignmentResult, err error) {
	start := time.Now()
	defer func() {
		AssignmentRunDuration.Observe(time.Since(start).Seconds())
	}()

	if s.lock != nil {
		acquired, err := s.lock.Acquire(ctx)
		if err != nil {
			return result, fmt.Errorf("acquire run lock: %w", err)
		}
		if !acquired {
			// прогон идёт на другой реплике
			AssignmentRunsCoalescedTotal.Inc()
			result.Coalesced = true
			return result, nil
		}
		defer func() {
			if err := s.lock.Release(context.WithoutCancel(ctx)); err != nil {
				s.log.Warn("release run lock", logger.NewField("error", err))
			}
		}()
	}

	result.Passes = 1

	pending, err := s.repository.ListAwaitingDriver(ctx, s.cfg.BatchSize)
	if err != nil {
		return result, fmt.Errorf("list parcels awaiting driver: %w", err)
	}
	if len(pending) == 0 {
		return result, nil
	}

	drivers, err := s.drivers.ListAvailable(ctx)
	if err != nil {
		return result, fmt.Errorf("list available drivers: %w", err)
	}
	load, err := s.repository.CountActiveByDriver(ctx)
	if err != nil {
		return result, fmt.Errorf("count driver load: %w", err)
	}

	pool := newDriverPool(drivers, load, s.cfg.DriverCapacity)

	for i, item := range pending {
		// начатые назначения доводятся до конца, новые после отмены не берутся
		if ctx.Err() != nil {
			result.Unmatched += len(pending) - i
			break
		}

		c, ok := pool.pick(item)
		if !ok {
			result.Unmatched++
			continue
		}

		_, err := s.machine.AssignDriver(context.WithoutCancel(ctx), item.ParcelID, c.driver.ID)
		switch {
		case err == nil:
			pool.commit(c)
			result.Assigned++
		case errors.Is(err, parcel.ErrInvalidStateTransition), errors.Is(err, parcel.ErrConcurrentUpdate):
			// посылку уже забрал другой прогон или она сменила статус
			result.Skipped++
		default:
			result.Failed++
			s.log.Warn("assign driver failed",
				logger.NewField("parcel_id", item.ParcelID),
				logger.NewField("driver_id", c.driver.ID),
				logger.NewField("error", err),
			)
		}
	}

	AssignmentParcelsTotal.WithLabelValues("assigned").Add(float64(result.Assigned))
	AssignmentParcelsTotal.WithLabelValues("failed").Add(float64(result.Failed))
	AssignmentParcelsTotal.WithLabelValues("skipped").Add(float64(result.Skipped))
	AssignmentParcelsTotal.WithLabelValues("unmatched").Add(float64(result.Unmatched))

	s.log.Info("batch assignment pass finished",
		logger.NewField("assigned", result.Assigned),
		logger.NewField("failed", result.Failed),
		logger.NewField("skipped", result.Skipped),
		logger.NewField("unmatched", result.Unmatched),
	)
	return result, nil
}
