package customer

type CustomerDB struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Address   string
	PostCode  string
	City      string
	Lon       *float64
	Lat       *float64
}
