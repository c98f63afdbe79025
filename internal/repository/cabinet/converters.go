package cabinet

import "parcel-locker/internal/entities"

func ToDomain(c *CabinetDB) *entities.Cabinet {
	if c == nil {
		return nil
	}
	return &entities.Cabinet{
		ID:       c.ID,
		LockerID: c.LockerID,
		CabinetSize: entities.CabinetSize{
			Width:  c.Width,
			Height: c.Height,
			Depth:  c.Depth,
		},
		Status:    entities.CabinetStatus(c.Status),
		UpdatedAt: c.UpdatedAt.UTC(),
	}
}

func ToOccupancyDomain(o *OccupancyDB) entities.LockerOccupancy {
	return entities.LockerOccupancy{
		LockerID: o.LockerID,
		Free:     o.Free,
		Occupied: o.Occupied,
	}
}
