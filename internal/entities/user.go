package entities

import (
	"strings"

	"github.com/paulmach/orb"
)

type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   string
	PostCode  string
	City      string
	Location  *orb.Point
}

func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Username
	}
	return name
}

type Customer struct {
	User
}

type DriverType string

const (
	DriverInterCity DriverType = "inter_city"
	DriverIntraCity DriverType = "intra_city"
)

func (t DriverType) String() string {
	return string(t)
}

type Driver struct {
	User
	Type      DriverType
	Available bool
}

// Contact контактные данные незарегистрированного отправителя или получателя.
type Contact struct {
	Name     string
	Phone    string
	Email    string
	Address  string
	PostCode string
	City     string
}

func ContactFromUser(u User) Contact {
	return Contact{
		Name:     u.DisplayName(),
		Phone:    u.Phone,
		Email:    u.Email,
		Address:  u.Address,
		PostCode: u.PostCode,
		City:     u.City,
	}
}
