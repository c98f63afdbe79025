package driver

type DriverDB struct {
	ID         int64
	Username   string
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	Address    string
	PostCode   string
	City       string
	DriverType string
	Available  bool
}
