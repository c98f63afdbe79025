package locker

import "time"

type LockerDB struct {
	ID        int64
	Name      string
	City      string
	Lon       float64
	Lat       float64
	CreatedAt time.Time
}
