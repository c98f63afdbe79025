package driver

import "parcel-locker/internal/entities"

func ToDomain(d *DriverDB) *entities.Driver {
	if d == nil {
		return nil
	}
	return &entities.Driver{
		User: entities.User{
			ID:        d.ID,
			Username:  d.Username,
			FirstName: d.FirstName,
			LastName:  d.LastName,
			Phone:     d.Phone,
			Email:     d.Email,
			Address:   d.Address,
			PostCode:  d.PostCode,
			City:      d.City,
		},
		Type:      entities.DriverType(d.DriverType),
		Available: d.Available,
	}
}

func ToDomainList(list []DriverDB) []entities.Driver {
	res := make([]entities.Driver, 0, len(list))
	for i := range list {
		res = append(res, *ToDomain(&list[i]))
	}
	return res
}

func FromDomain(d *entities.Driver) *DriverDB {
	if d == nil {
		return nil
	}
	return &DriverDB{
		ID:         d.ID,
		Username:   d.Username,
		FirstName:  d.FirstName,
		LastName:   d.LastName,
		Phone:      d.Phone,
		Email:      d.Email,
		Address:    d.Address,
		PostCode:   d.PostCode,
		City:       d.City,
		DriverType: d.Type.String(),
		Available:  d.Available,
	}
}
