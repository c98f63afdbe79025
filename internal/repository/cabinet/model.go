package cabinet

import "time"

type CabinetDB struct {
	ID        int64
	LockerID  int64
	Width     float64
	Height    float64
	Depth     float64
	Status    string
	UpdatedAt time.Time
}

type OccupancyDB struct {
	LockerID int64
	Free     int64
	Occupied int64
}
