package provisioning

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/service/geo"
	"parcel-locker/pkg/logger"
)

const (
	DefaultLockers           = 30
	DefaultCabinetsPerLocker = 10
	DefaultRadiusMeters      = 35000
	DefaultDriversPerCity    = 5
	DefaultRecipients        = 10

	cabinetSide   = 50
	createWorkers = 4
)

var ErrUnknownCity = errors.New("unknown city")

type Config struct {
	// LockerCity город, вокруг центра которого ставятся постаматы.
	LockerCity        string
	Lockers           int
	CabinetsPerLocker int
	RadiusMeters      float64

	DriverCities   []string
	DriversPerCity int

	RecipientCity string
	Recipients    int

	Rand *rand.Rand
}

func (c *Config) withDefaults() {
	if c.LockerCity == "" {
		c.LockerCity = "Oulu"
	}
	if c.Lockers <= 0 {
		c.Lockers = DefaultLockers
	}
	if c.CabinetsPerLocker <= 0 {
		c.CabinetsPerLocker = DefaultCabinetsPerLocker
	}
	if c.RadiusMeters <= 0 {
		c.RadiusMeters = DefaultRadiusMeters
	}
	if len(c.DriverCities) == 0 {
		c.DriverCities = []string{"Helsinki", "Espoo", "Tampere", "Vantaa", "Oulu"}
	}
	if c.DriversPerCity <= 0 {
		c.DriversPerCity = DefaultDriversPerCity
	}
	if c.RecipientCity == "" {
		c.RecipientCity = "Helsinki"
	}
	if c.Recipients <= 0 {
		c.Recipients = DefaultRecipients
	}
	if c.Rand == nil {
		c.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

// Service наполняет пустую сеть: постаматы с ячейками, получателей и водителей.
type Service struct {
	log       handlerLogger
	lockers   LockerRepository
	customers CustomerRepository
	drivers   DriverRepository
	cfg       Config
}

func New(log handlerLogger, lockers LockerRepository, customers CustomerRepository, drivers DriverRepository, cfg Config) *Service {
	cfg.withDefaults()
	return &Service{
		log:       log.With(logger.NewField("service", "provisioning")),
		lockers:   lockers,
		customers: customers,
		drivers:   drivers,
		cfg:       cfg,
	}
}

func (s *Service) Provision(ctx context.Context) (entities.ProvisioningReport, error) {
	var report entities.ProvisioningReport

	center, ok := geo.CityCenter(s.cfg.LockerCity)
	if !ok {
		return report, fmt.Errorf("%w: %s", ErrUnknownCity, s.cfg.LockerCity)
	}

	lockers, err := s.createLockers(ctx, center)
	report.Lockers = lockers
	report.Cabinets = lockers * s.cfg.CabinetsPerLocker
	if err != nil {
		return report, err
	}

	for i := 0; i < s.cfg.Recipients; i++ {
		username := fmt.Sprintf("recipient%d", i)
		if _, err := s.customers.Create(ctx, s.newUser(username, fmt.Sprintf("Some Street %d", i), s.cfg.RecipientCity)); err != nil {
			return report, fmt.Errorf("create recipient %s: %w", username, err)
		}
		report.Recipients++
	}

	types := []entities.DriverType{entities.DriverInterCity, entities.DriverIntraCity}
	for _, city := range s.cfg.DriverCities {
		for i := 0; i < s.cfg.DriversPerCity; i++ {
			username := fmt.Sprintf("driver%s%d", city, s.cfg.Rand.IntN(1000))
			driver := entities.Driver{
				User:      s.newUser(username, fmt.Sprintf("Driver Street %d", s.cfg.Rand.IntN(100)), city),
				Type:      types[s.cfg.Rand.IntN(len(types))],
				Available: true,
			}
			if _, err := s.drivers.Create(ctx, driver); err != nil {
				return report, fmt.Errorf("create driver in %s: %w", city, err)
			}
			report.Drivers++
		}
	}

	s.log.Info("network provisioned",
		logger.NewField("lockers", report.Lockers),
		logger.NewField("cabinets", report.Cabinets),
		logger.NewField("recipients", report.Recipients),
		logger.NewField("drivers", report.Drivers),
	)
	return report, nil
}

// createLockers точки выбираются заранее, rng не используется из нескольких горутин.
func (s *Service) createLockers(ctx context.Context, center orb.Point) (int, error) {
	requests := make([]entities.LockerCreate, s.cfg.Lockers)
	for i := range requests {
		cabinets := make([]entities.CabinetSize, s.cfg.CabinetsPerLocker)
		for j := range cabinets {
			cabinets[j] = entities.CabinetSize{Width: cabinetSide, Height: cabinetSide, Depth: cabinetSide}
		}
		requests[i] = entities.LockerCreate{
			Name:     fmt.Sprintf("Locker %d", i+1),
			City:     s.cfg.LockerCity,
			Location: geo.RandomPointInRadius(center, s.cfg.RadiusMeters, s.cfg.Rand),
			Cabinets: cabinets,
		}
	}

	created := make([]bool, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(createWorkers)
	for i, req := range requests {
		g.Go(func() error {
			if _, err := s.lockers.Create(gctx, req); err != nil {
				return fmt.Errorf("create %s: %w", req.Name, err)
			}
			created[i] = true
			return nil
		})
	}
	err := g.Wait()

	count := 0
	for _, ok := range created {
		if ok {
			count++
		}
	}
	return count, err
}

func (s *Service) newUser(username, address, city string) entities.User {
	return entities.User{
		Username:  username,
		FirstName: username + "FirstName",
		LastName:  username + "LastName",
		Email:     username + "@example.com",
		Phone:     fmt.Sprintf("050%d", 1000000+s.cfg.Rand.IntN(9000000)),
		Address:   address,
		PostCode:  "00100",
		City:      city,
	}
}
