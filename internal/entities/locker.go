package entities

import (
	"time"

	"github.com/paulmach/orb"
)

type Locker struct {
	ID        int64
	Name      string
	City      string
	Location  orb.Point // lon/lat, WGS84
	CreatedAt time.Time
}

type LockerCreate struct {
	Name     string
	City     string
	Location orb.Point
	Cabinets []CabinetSize
}

// LockerDistance результат поиска ближайших постаматов, Distance в метрах.
type LockerDistance struct {
	Locker   Locker
	Distance float64
}

type LockerOccupancy struct {
	LockerID int64
	Free     int64
	Occupied int64
}

func (o LockerOccupancy) Total() int64 {
	return o.Free + o.Occupied
}

type CabinetStatus string

const (
	CabinetFree     CabinetStatus = "free"
	CabinetOccupied CabinetStatus = "occupied"
)

func (s CabinetStatus) String() string {
	return string(s)
}

type CabinetSize struct {
	Width  float64
	Height float64
	Depth  float64
}

type Cabinet struct {
	ID       int64
	LockerID int64
	CabinetSize
	Status    CabinetStatus
	UpdatedAt time.Time
}

type ProvisioningReport struct {
	Lockers    int
	Cabinets   int
	Recipients int
	Drivers    int
}
