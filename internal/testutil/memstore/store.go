// Package memstore хранилище в памяти с контрактами репозиториев,
// для тестов сервисов без Postgres.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/service/assignment"
	"parcel-locker/internal/service/cabinet"
	"parcel-locker/internal/service/geo"
	"parcel-locker/internal/service/parcel"
)

type Store struct {
	mu sync.Mutex

	lockers   map[int64]entities.Locker
	cabinets  map[int64]entities.Cabinet
	parcels   map[int64]entities.Parcel
	customers map[int64]entities.Customer
	drivers   map[int64]entities.Driver

	nextLockerID   int64
	nextCabinetID  int64
	nextParcelID   int64
	nextUserID     int64
	parcelUpdates  int
	failNextUpdate error
}

func New() *Store {
	return &Store{
		lockers:   make(map[int64]entities.Locker),
		cabinets:  make(map[int64]entities.Cabinet),
		parcels:   make(map[int64]entities.Parcel),
		customers: make(map[int64]entities.Customer),
		drivers:   make(map[int64]entities.Driver),
	}
}

// FailNextParcelUpdate следующий Update посылки вернёт err.
func (s *Store) FailNextParcelUpdate(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNextUpdate = err
}

// ParcelUpdates число успешных Update посылок.
func (s *Store) ParcelUpdates() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parcelUpdates
}

// Lockers

type LockerRepository struct{ s *Store }

func (s *Store) Lockers() *LockerRepository { return &LockerRepository{s: s} }

func (r *LockerRepository) Create(_ context.Context, create entities.LockerCreate) (*entities.Locker, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextLockerID++
	locker := entities.Locker{
		ID:        s.nextLockerID,
		Name:      create.Name,
		City:      create.City,
		Location:  create.Location,
		CreatedAt: time.Now().UTC(),
	}
	s.lockers[locker.ID] = locker

	for _, size := range create.Cabinets {
		s.nextCabinetID++
		s.cabinets[s.nextCabinetID] = entities.Cabinet{
			ID:          s.nextCabinetID,
			LockerID:    locker.ID,
			CabinetSize: size,
			Status:      entities.CabinetFree,
			UpdatedAt:   locker.CreatedAt,
		}
	}
	return &locker, nil
}

func (r *LockerRepository) GetByID(_ context.Context, id int64) (*entities.Locker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	locker, ok := r.s.lockers[id]
	if !ok {
		return nil, geo.ErrLockerNotFound
	}
	return &locker, nil
}

func (r *LockerRepository) ListWithFreeCabinets(_ context.Context) ([]entities.Locker, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	withFree := make(map[int64]bool)
	for _, c := range s.cabinets {
		if c.Status == entities.CabinetFree {
			withFree[c.LockerID] = true
		}
	}

	result := make([]entities.Locker, 0, len(withFree))
	for id := range withFree {
		result = append(result, s.lockers[id])
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *LockerRepository) List(_ context.Context) ([]entities.Locker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]entities.Locker, 0, len(r.s.lockers))
	for _, l := range r.s.lockers {
		result = append(result, l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Cabinets

type CabinetRepository struct{ s *Store }

func (s *Store) Cabinets() *CabinetRepository { return &CabinetRepository{s: s} }

func (r *CabinetRepository) ClaimFree(_ context.Context, lockerID int64) (*entities.Cabinet, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var chosen *entities.Cabinet
	for _, c := range s.cabinets {
		if c.LockerID != lockerID || c.Status != entities.CabinetFree {
			continue
		}
		if chosen == nil || c.ID < chosen.ID {
			c := c
			chosen = &c
		}
	}
	if chosen == nil {
		return nil, cabinet.ErrNoCabinetAvailable
	}

	chosen.Status = entities.CabinetOccupied
	chosen.UpdatedAt = time.Now().UTC()
	s.cabinets[chosen.ID] = *chosen
	return chosen, nil
}

func (r *CabinetRepository) MarkFree(_ context.Context, cabinetID int64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.cabinets[cabinetID]
	if !ok {
		return false, cabinet.ErrCabinetNotFound
	}
	if c.Status == entities.CabinetFree {
		return false, nil
	}
	c.Status = entities.CabinetFree
	c.UpdatedAt = time.Now().UTC()
	s.cabinets[cabinetID] = c
	return true, nil
}

func (r *CabinetRepository) CountByStatus(_ context.Context, lockerID int64) (entities.LockerOccupancy, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.lockers[lockerID]; !ok {
		return entities.LockerOccupancy{}, geo.ErrLockerNotFound
	}

	occupancy := entities.LockerOccupancy{LockerID: lockerID}
	for _, c := range s.cabinets {
		if c.LockerID != lockerID {
			continue
		}
		if c.Status == entities.CabinetFree {
			occupancy.Free++
		} else {
			occupancy.Occupied++
		}
	}
	return occupancy, nil
}

func (r *CabinetRepository) GetByID(_ context.Context, id int64) (*entities.Cabinet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.cabinets[id]
	if !ok {
		return nil, cabinet.ErrCabinetNotFound
	}
	return &c, nil
}

// Customers

type CustomerRepository struct{ s *Store }

func (s *Store) Customers() *CustomerRepository { return &CustomerRepository{s: s} }

func (r *CustomerRepository) Create(_ context.Context, user entities.User) (*entities.Customer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	user.ID = s.nextUserID
	customer := entities.Customer{User: user}
	s.customers[user.ID] = customer
	return &customer, nil
}

func (r *CustomerRepository) GetByID(_ context.Context, id int64) (*entities.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c, ok := r.s.customers[id]
	if !ok {
		return nil, parcel.ErrCustomerNotFound
	}
	return &c, nil
}

// ListByCity страница клиентов города по возрастанию ID.
func (r *CustomerRepository) ListByCity(_ context.Context, city string, limit, offset int) ([]entities.Customer, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]entities.Customer, 0)
	for _, c := range s.customers {
		if strings.EqualFold(c.City, city) {
			all = append(all, c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if offset >= len(all) {
		return []entities.Customer{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

// Drivers

type DriverRepository struct{ s *Store }

func (s *Store) Drivers() *DriverRepository { return &DriverRepository{s: s} }

func (r *DriverRepository) Create(_ context.Context, driver entities.Driver) (*entities.Driver, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	driver.ID = s.nextUserID
	s.drivers[driver.ID] = driver
	return &driver, nil
}

func (r *DriverRepository) GetByID(_ context.Context, id int64) (*entities.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.drivers[id]
	if !ok {
		return nil, assignment.ErrDriverNotFound
	}
	return &d, nil
}

func (r *DriverRepository) ListAvailable(_ context.Context) ([]entities.Driver, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]entities.Driver, 0, len(r.s.drivers))
	for _, d := range r.s.drivers {
		if d.Available {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Parcels

type ParcelRepository struct{ s *Store }

func (s *Store) Parcels() *ParcelRepository { return &ParcelRepository{s: s} }

func (r *ParcelRepository) Create(_ context.Context, p *entities.Parcel) (*entities.Parcel, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.parcels {
		if existing.IdempotencyKey == p.IdempotencyKey {
			return nil, parcel.ErrDuplicateIdempotencyKey
		}
	}
	if s.codeTaken(0, p) {
		return nil, parcel.ErrCodeCollision
	}

	s.nextParcelID++
	created := cloneParcel(*p)
	created.ID = s.nextParcelID
	created.Version = 1
	s.parcels[created.ID] = created

	result := cloneParcel(created)
	return &result, nil
}

func (r *ParcelRepository) GetByID(_ context.Context, id int64) (*entities.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.parcels[id]
	if !ok {
		return nil, parcel.ErrParcelNotFound
	}
	result := cloneParcel(p)
	return &result, nil
}

func (r *ParcelRepository) GetByIdempotencyKey(_ context.Context, key string) (*entities.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.parcels {
		if p.IdempotencyKey == key {
			result := cloneParcel(p)
			return &result, nil
		}
	}
	return nil, parcel.ErrParcelNotFound
}

func (r *ParcelRepository) GetByCabinetID(_ context.Context, cabinetID int64) (*entities.Parcel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.parcels {
		if p.CabinetID != nil && *p.CabinetID == cabinetID && !p.Status.IsTerminal() {
			result := cloneParcel(p)
			return &result, nil
		}
	}
	return nil, parcel.ErrParcelNotFound
}

func (r *ParcelRepository) Update(_ context.Context, p *entities.Parcel) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failNextUpdate != nil {
		err := s.failNextUpdate
		s.failNextUpdate = nil
		return err
	}

	stored, ok := s.parcels[p.ID]
	if !ok {
		return parcel.ErrParcelNotFound
	}
	if stored.Version != p.Version {
		return parcel.ErrConcurrentUpdate
	}
	if s.codeTaken(p.ID, p) {
		return parcel.ErrCodeCollision
	}

	p.Version++
	s.parcels[p.ID] = cloneParcel(*p)
	s.parcelUpdates++
	return nil
}

func (r *ParcelRepository) ListExpiredAwaitingDropoff(_ context.Context, now time.Time, limit int) ([]int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ids := make([]int64, 0)
	for _, p := range r.s.parcels {
		if p.Status == entities.ParcelAwaitingDropoff && p.SenderCode.Active && !now.Before(p.SenderCode.ValidUntil) {
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}

func (r *ParcelRepository) ActiveCodeExists(_ context.Context, kind entities.CodeKind, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, p := range r.s.parcels {
		c := p.Code(kind)
		if c.Active && c.Value == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *ParcelRepository) ListAwaitingDriver(_ context.Context, limit int) ([]entities.PendingAssignment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]entities.PendingAssignment, 0)
	for _, p := range s.parcels {
		if p.Status != entities.ParcelInLocker || p.DriverID != nil {
			continue
		}
		result = append(result, entities.PendingAssignment{
			ParcelID:      p.ID,
			LockerCity:    s.lockers[p.CurrentLockerID()].City,
			SenderCity:    s.partyCity(p.SenderID, p.Sender),
			RecipientCity: s.partyCity(p.RecipientID, p.Recipient),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ParcelID < result[j].ParcelID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *ParcelRepository) CountActiveByDriver(_ context.Context) (map[int64]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make(map[int64]int)
	for _, p := range r.s.parcels {
		if p.DriverID == nil {
			continue
		}
		if p.Status == entities.ParcelAssignedToDriver || p.Status == entities.ParcelInTransit {
			result[*p.DriverID]++
		}
	}
	return result, nil
}

func (s *Store) partyCity(customerID *int64, contact entities.Contact) string {
	if customerID != nil {
		return s.customers[*customerID].City
	}
	return contact.City
}

// codeTaken проверяет уникальность активных кодов, как частичные уникальные индексы в БД.
func (s *Store) codeTaken(selfID int64, p *entities.Parcel) bool {
	for _, other := range s.parcels {
		if other.ID == selfID {
			continue
		}
		for _, kind := range []entities.CodeKind{entities.SenderCode, entities.RecipientCode} {
			mine, theirs := p.Code(kind), other.Code(kind)
			if mine.Active && theirs.Active && mine.Value == theirs.Value {
				return true
			}
		}
	}
	return false
}

// TxManager выполняет fn без транзакции: откатов нет, компенсации делает сервис.
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Notifier запоминает события переходов.
type Notifier struct {
	mu     sync.Mutex
	events []entities.StatusEvent
	err    error
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

// FailWith все последующие Notify вернут err.
func (n *Notifier) FailWith(err error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.err = err
}

func (n *Notifier) Notify(_ context.Context, event entities.StatusEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
	return n.err
}

func (n *Notifier) Events() []entities.StatusEvent {
	n.mu.Lock()
	defer n.mu.Unlock()

	return append([]entities.StatusEvent(nil), n.events...)
}

// StatusesOf последовательность статусов из событий посылки.
func (n *Notifier) StatusesOf(parcelID int64) []entities.ParcelStatus {
	n.mu.Lock()
	defer n.mu.Unlock()

	result := make([]entities.ParcelStatus, 0)
	for _, e := range n.events {
		if e.ParcelID == parcelID {
			result = append(result, e.Status)
		}
	}
	return result
}

func cloneParcel(p entities.Parcel) entities.Parcel {
	p.SenderID = cloneInt(p.SenderID)
	p.RecipientID = cloneInt(p.RecipientID)
	p.DriverID = cloneInt(p.DriverID)
	p.DeliveryLockerID = cloneInt(p.DeliveryLockerID)
	p.CabinetID = cloneInt(p.CabinetID)
	p.StorageID = cloneInt(p.StorageID)
	p.SenderCode.UsedAt = cloneTime(p.SenderCode.UsedAt)
	p.RecipientCode.UsedAt = cloneTime(p.RecipientCode.UsedAt)
	return p
}

func cloneInt(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// Point удобный конструктор для тестов.
func Point(lon, lat float64) *orb.Point {
	p := orb.Point{lon, lat}
	return &p
}
