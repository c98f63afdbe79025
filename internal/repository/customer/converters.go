package customer

import (
	"github.com/paulmach/orb"

	"parcel-locker/internal/entities"
)

func ToDomain(c *CustomerDB) *entities.Customer {
	if c == nil {
		return nil
	}
	customer := &entities.Customer{
		User: entities.User{
			ID:        c.ID,
			Username:  c.Username,
			FirstName: c.FirstName,
			LastName:  c.LastName,
			Phone:     c.Phone,
			Email:     c.Email,
			Address:   c.Address,
			PostCode:  c.PostCode,
			City:      c.City,
		},
	}
	if c.Lon != nil && c.Lat != nil {
		customer.Location = &orb.Point{*c.Lon, *c.Lat}
	}
	return customer
}

func ToDomainList(list []CustomerDB) []entities.Customer {
	res := make([]entities.Customer, 0, len(list))
	for i := range list {
		res = append(res, *ToDomain(&list[i]))
	}
	return res
}

func FromDomain(u *entities.User) *CustomerDB {
	if u == nil {
		return nil
	}
	model := &CustomerDB{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Phone:     u.Phone,
		Email:     u.Email,
		Address:   u.Address,
		PostCode:  u.PostCode,
		City:      u.City,
	}
	if u.Location != nil {
		lon, lat := u.Location.Lon(), u.Location.Lat()
		model.Lon, model.Lat = &lon, &lat
	}
	return model
}
