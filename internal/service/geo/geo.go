package geo

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"parcel-locker/internal/entities"
)

// DefaultNearestCount сколько постаматов предлагается отправителю.
const DefaultNearestCount = 5

type Finder struct {
	repository Repository
}

func New(repository Repository) *Finder {
	return &Finder{
		repository: repository,
	}
}

// FindNearest возвращает не более k постаматов со свободной ячейкой,
// по возрастанию расстояния до point (при равенстве по ID).
// Пустой результат не ошибка: решение принимает вызывающий.
func (f *Finder) FindNearest(ctx context.Context, point orb.Point, k int) ([]entities.LockerDistance, error) {
	if !IsValidPoint(point) {
		return nil, ErrInvalidPoint
	}
	if k <= 0 {
		return []entities.LockerDistance{}, nil
	}

	lockers, err := f.repository.ListWithFreeCabinets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lockers with free cabinets: %w", err)
	}

	result := make([]entities.LockerDistance, 0, len(lockers))
	for _, locker := range lockers {
		result = append(result, entities.LockerDistance{
			Locker:   locker,
			Distance: geo.DistanceHaversine(point, locker.Location),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Distance != result[j].Distance {
			return result[i].Distance < result[j].Distance
		}
		return result[i].Locker.ID < result[j].Locker.ID
	})

	if len(result) > k {
		result = result[:k]
	}
	return result, nil
}

func IsValidPoint(p orb.Point) bool {
	lon, lat := p.Lon(), p.Lat()
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
