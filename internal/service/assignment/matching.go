package assignment

import (
	"sort"
	"strings"

	"parcel-locker/internal/entities"
)

type candidate struct {
	driver entities.Driver
	load   int
	taken  int
}

// driverPool подбирает водителей в рамках одного прохода.
type driverPool struct {
	byCity   map[string][]*candidate
	capacity int
}

func newDriverPool(drivers []entities.Driver, load map[int64]int, capacity int) *driverPool {
	pool := &driverPool{
		byCity:   make(map[string][]*candidate),
		capacity: capacity,
	}
	for _, d := range drivers {
		if !d.Available {
			continue
		}
		city := normalizeCity(d.City)
		pool.byCity[city] = append(pool.byCity[city], &candidate{driver: d, load: load[d.ID]})
	}
	for _, list := range pool.byCity {
		sort.Slice(list, func(i, j int) bool { return list[i].driver.ID < list[j].driver.ID })
	}
	return pool
}

// pick водитель из города постамата; междугородний, если города отправителя и
// получателя различаются, иначе городской. Если нужного типа нет, берётся любой
// свободный водитель города. Среди равных выбирается наименее загруженный.
func (p *driverPool) pick(item entities.PendingAssignment) (*candidate, bool) {
	list := p.byCity[normalizeCity(item.LockerCity)]
	if len(list) == 0 {
		return nil, false
	}

	wanted := requiredType(item)
	if c := p.leastLoaded(list, func(c *candidate) bool { return c.driver.Type == wanted }); c != nil {
		return c, true
	}
	if c := p.leastLoaded(list, func(*candidate) bool { return true }); c != nil {
		return c, true
	}
	return nil, false
}

func (p *driverPool) commit(c *candidate) {
	c.taken++
}

func (p *driverPool) leastLoaded(list []*candidate, accept func(*candidate) bool) *candidate {
	var best *candidate
	for _, c := range list {
		if p.capacity > 0 && c.taken >= p.capacity {
			continue
		}
		if !accept(c) {
			continue
		}
		if best == nil || c.load+c.taken < best.load+best.taken {
			best = c
		}
	}
	return best
}

func requiredType(item entities.PendingAssignment) entities.DriverType {
	senderCity := item.SenderCity
	if strings.TrimSpace(senderCity) == "" {
		senderCity = item.LockerCity
	}
	if normalizeCity(senderCity) != normalizeCity(item.RecipientCity) {
		return entities.DriverInterCity
	}
	return entities.DriverIntraCity
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}
