package memstore

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/require"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/pkg/factory/code_expiry"
	"parcel-locker/internal/service/cabinet"
	"parcel-locker/internal/service/geo"
	"parcel-locker/internal/service/parcel"
	"parcel-locker/internal/service/txcode"
	"parcel-locker/pkg/logger/zap_adapter"
)

// Env сервисы ядра поверх одного Store.
type Env struct {
	Store     *Store
	Notifier  *Notifier
	Finder    *geo.Finder
	Allocator *cabinet.Allocator
	Codes     *txcode.Manager
	Parcels   *parcel.Service
}

func NewEnv() *Env {
	store := New()
	notifier := NewNotifier()

	finder := geo.New(store.Lockers())
	allocator := cabinet.New(store.Cabinets())
	codes := txcode.New(store.Parcels(), code_expiry.New(0, 0), nil)

	parcels := parcel.New(
		zap_adapter.NewNop(),
		store.Parcels(),
		store.Customers(),
		store.Lockers(),
		finder,
		allocator,
		codes,
		notifier,
		TxManager{},
	)

	return &Env{
		Store:     store,
		Notifier:  notifier,
		Finder:    finder,
		Allocator: allocator,
		Codes:     codes,
		Parcels:   parcels,
	}
}

// AddLocker постамат с n ячейками 50x50x50.
func (e *Env) AddLocker(t testing.TB, name, city string, location orb.Point, n int) entities.Locker {
	t.Helper()

	sizes := make([]entities.CabinetSize, n)
	for i := range sizes {
		sizes[i] = entities.CabinetSize{Width: 50, Height: 50, Depth: 50}
	}
	locker, err := e.Store.Lockers().Create(context.Background(), entities.LockerCreate{
		Name:     name,
		City:     city,
		Location: location,
		Cabinets: sizes,
	})
	require.NoError(t, err)
	return *locker
}

func (e *Env) AddDriver(t testing.TB, city string, driverType entities.DriverType) entities.Driver {
	t.Helper()

	driver, err := e.Store.Drivers().Create(context.Background(), entities.Driver{
		User:      entities.User{Username: "driver-" + city, FirstName: "Driver", City: city},
		Type:      driverType,
		Available: true,
	})
	require.NoError(t, err)
	return *driver
}

func (e *Env) AddCustomer(t testing.TB, user entities.User) entities.Customer {
	t.Helper()

	customer, err := e.Store.Customers().Create(context.Background(), user)
	require.NoError(t, err)
	return *customer
}

// ParcelRequest запрос от незарегистрированного отправителя в указанный город получателя.
func ParcelRequest(key string, senderCity, recipientCity string, lockerID int64) entities.ParcelCreate {
	return entities.ParcelCreate{
		IdempotencyKey: key,
		Weight:         10,
		Width:          30,
		Height:         20,
		Depth:          15,
		Mass:           5,
		Description:    "Parcel " + key,
		Sender: entities.Contact{
			Name:  "Sender " + key,
			Phone: "+358401234567",
			City:  senderCity,
		},
		Recipient: entities.Contact{
			Name:  "Recipient " + key,
			Phone: "+358407654321",
			City:  recipientCity,
		},
		SelectedLockerID: &lockerID,
	}
}

// InLocker создаёт посылку и кладёт её в ячейку.
func (e *Env) InLocker(t testing.TB, req entities.ParcelCreate) *entities.Parcel {
	t.Helper()

	ctx := context.Background()
	created, err := e.Parcels.Create(ctx, req)
	require.NoError(t, err)

	p, err := e.Parcels.DropOff(ctx, created.ID, created.SenderCode.Value)
	require.NoError(t, err)
	return p
}
