package locker

import (
	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
)

func ToDomain(l *LockerDB) *entities.Locker {
	if l == nil {
		return nil
	}
	return &entities.Locker{
		ID:        l.ID,
		Name:      l.Name,
		City:      l.City,
		Location:  orb.Point{l.Lon, l.Lat},
		CreatedAt: l.CreatedAt.UTC(),
	}
}

func ToDomainList(list []LockerDB) []entities.Locker {
	res := make([]entities.Locker, 0, len(list))
	for i := range list {
		res = append(res, *ToDomain(&list[i]))
	}
	return res
}

// cabinetSizes раскладывает размеры по столбцам для unnest.
func cabinetSizes(sizes []entities.CabinetSize) (widths, heights, depths []float64) {
	widths = make([]float64, 0, len(sizes))
	heights = make([]float64, 0, len(sizes))
	depths = make([]float64, 0, len(sizes))
	for _, s := range sizes {
		widths = append(widths, s.Width)
		heights = append(heights, s.Height)
		depths = append(depths, s.Depth)
	}
	return widths, heights, depths
}
