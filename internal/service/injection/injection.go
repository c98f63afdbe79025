package injection

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/service/geo"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/pkg/logger"
	"parcel-locker/pkg/retrier"
)

const (
	DefaultCustomersPerPage = 20

	robotPhone = "0401234567"
	robotEmail = "sender@example.com"
)

type Config struct {
	Cities           []string
	CustomersPerPage int
	// Rand источник случайности; nil - случайное зерно.
	Rand *rand.Rand
}

type robot struct {
	name string
	home string
}

// Service робот-отправитель: рассылает посылки зарегистрированным клиентам городов
// и сразу кладёт их в ячейки, после чего запускает распределение по водителям.
type Service struct {
	log       handlerLogger
	customers CustomerRepository
	finder    LockerFinder
	parcels   ParcelService
	scheduler Scheduler
	retrier   retrier.Retrier

	cities  []string
	centers map[string]orb.Point
	perPage int

	// rng используется только под running
	rng     *rand.Rand
	running sync.Mutex
}

func New(
	log handlerLogger,
	customers CustomerRepository,
	finder LockerFinder,
	parcels ParcelService,
	scheduler Scheduler,
	r retrier.Retrier,
	cfg Config,
) (*Service, error) {
	if len(cfg.Cities) == 0 {
		return nil, fmt.Errorf("%w: no cities configured", ErrUnknownCity)
	}

	centers := make(map[string]orb.Point, len(cfg.Cities))
	for _, city := range cfg.Cities {
		center, ok := geo.CityCenter(city)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCity, city)
		}
		centers[city] = center
	}

	if cfg.CustomersPerPage <= 0 {
		cfg.CustomersPerPage = DefaultCustomersPerPage
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	return &Service{
		log:       log.With(logger.NewField("service", "injection")),
		customers: customers,
		finder:    finder,
		parcels:   parcels,
		scheduler: scheduler,
		retrier:   r,
		cities:    cfg.Cities,
		centers:   centers,
		perPage:   cfg.CustomersPerPage,
		rng:       cfg.Rand,
	}, nil
}

// Run один проход всех роботов. Каждый робот отправляет клиенту не больше одной
// посылки за проход. Ошибка отдельной посылки не прерывает проход, она
// учитывается в отчёте. Одновременно выполняется не больше одного прохода.
func (s *Service) Run(ctx context.Context) (entities.InjectionSummary, error) {
	if !s.running.TryLock() {
		return entities.InjectionSummary{}, ErrRunInProgress
	}
	defer s.running.Unlock()

	start := time.Now()
	var summary entities.InjectionSummary

	for _, home := range s.cities {
		r := robot{name: "robot" + strings.ToUpper(home[:1]) + strings.ToLower(home[1:]), home: home}
		// состояние прохода, между проходами не сохраняется
		sent := make(map[int64]struct{})

		for _, city := range s.cities {
			report, err := s.sendToCity(ctx, r, city, sent)
			summary.Reports = append(summary.Reports, report)
			if err != nil {
				return summary, err
			}
		}
	}

	assigned, err := s.scheduler.RunOnce(ctx)
	if err != nil {
		return summary, fmt.Errorf("batch assignment after injection: %w", err)
	}
	summary.Assignment = assigned

	InjectionRunDuration.Observe(time.Since(start).Seconds())
	s.log.Info("injection finished",
		logger.NewField("sent", summary.Sent()),
		logger.NewField("assigned", assigned.Assigned),
		logger.NewField("unmatched", assigned.Unmatched),
	)
	return summary, nil
}

func (s *Service) sendToCity(ctx context.Context, r robot, city string, sent map[int64]struct{}) (entities.InjectionReport, error) {
	report := entities.InjectionReport{Sender: r.name, City: city}
	cityLog := s.log.With(
		logger.NewField("robot", r.name),
		logger.NewField("city", city),
	)

	for offset := 0; ; offset += s.perPage {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		customers, err := s.customers.ListByCity(ctx, city, s.perPage, offset)
		if err != nil {
			return report, fmt.Errorf("list customers in %s: %w", city, err)
		}
		if offset == 0 && len(customers) == 0 {
			cityLog.Warn("no registered customers")
		}

		for _, customer := range customers {
			if _, ok := sent[customer.ID]; ok {
				report.Skipped++
				continue
			}

			err := s.send(ctx, r, customer)
			switch {
			case err == nil:
				sent[customer.ID] = struct{}{}
				report.Sent++
				InjectedParcelsTotal.WithLabelValues("sent").Inc()
			case ctx.Err() != nil:
				return report, ctx.Err()
			default:
				report.Failed++
				InjectedParcelsTotal.WithLabelValues("failed").Inc()
				cityLog.Warn("parcel injection failed",
					logger.NewField("customer_id", customer.ID),
					logger.NewField("retries_exhausted", errors.Is(err, retrier.ErrRetriesExhausted)),
					logger.NewField("error", err),
				)
			}
		}

		if len(customers) < s.perPage {
			return report, nil
		}
	}
}

// send создаёт посылку и кладёт её в ячейку. Повторы идут с тем же ключом
// идемпотентности, поэтому уже созданная посылка не дублируется.
func (s *Service) send(ctx context.Context, r robot, customer entities.Customer) error {
	req, err := s.newRequest(ctx, r, customer)
	if err != nil {
		return err
	}

	_, err = retrier.Do(ctx, s.retrier, func(ctx context.Context) (*entities.Parcel, error) {
		p, err := s.parcels.Create(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("create parcel: %w", err)
		}
		if p.Status != entities.ParcelAwaitingDropoff {
			return p, nil
		}
		dropped, err := s.parcels.DropOff(ctx, p.ID, p.SenderCode.Value)
		if err != nil {
			return nil, fmt.Errorf("drop off parcel %d: %w", p.ID, err)
		}
		return dropped, nil
	})
	return err
}

func (s *Service) newRequest(ctx context.Context, r robot, customer entities.Customer) (entities.ParcelCreate, error) {
	senderCity := s.senderCity(r, customer.City)
	center := s.centers[senderCity]

	nearest, err := s.finder.FindNearest(ctx, center, geo.DefaultNearestCount)
	if err != nil {
		return entities.ParcelCreate{}, fmt.Errorf("find lockers near %s: %w", senderCity, err)
	}
	if len(nearest) == 0 {
		return entities.ParcelCreate{}, fmt.Errorf("%w near %s", parcel.ErrNoLockerAvailable, senderCity)
	}
	lockerID := nearest[s.rng.IntN(len(nearest))].Locker.ID

	customerID := customer.ID
	return entities.ParcelCreate{
		IdempotencyKey: "inject-" + uuid.NewString(),
		Weight:         10,
		Width:          30,
		Height:         20,
		Depth:          15,
		Mass:           5,
		Description:    fmt.Sprintf("Parcel Description %d", s.rng.IntN(1000)),
		Sender: entities.Contact{
			Name:  r.name,
			Phone: robotPhone,
			Email: robotEmail,
			City:  senderCity,
		},
		SenderPoint:      &center,
		RecipientID:      &customerID,
		SelectedLockerID: &lockerID,
	}, nil
}

// senderCity домашний город робота или любой другой; если он совпал с городом
// получателя, с вероятностью 1/2 меняется, чтобы были междугородние посылки.
func (s *Service) senderCity(r robot, recipientCity string) string {
	city := r.home
	if s.rng.IntN(2) == 1 {
		city = s.cities[s.rng.IntN(len(s.cities))]
	}
	if len(s.cities) > 1 && strings.EqualFold(city, recipientCity) && s.rng.Float64() < 0.5 {
		others := make([]string, 0, len(s.cities)-1)
		for _, c := range s.cities {
			if !strings.EqualFold(c, city) {
				others = append(others, c)
			}
		}
		city = others[s.rng.IntN(len(others))]
	}
	return city
}
