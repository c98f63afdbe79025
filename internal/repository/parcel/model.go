package parcel

import "time"

type ParcelDB struct {
	ID          int64
	Weight      float64
	Width       float64
	Height      float64
	Depth       float64
	Mass        float64
	Description string

	SenderID       *int64
	SenderName     string
	SenderPhone    string
	SenderEmail    string
	SenderAddress  string
	SenderPostCode string
	SenderCity     string

	RecipientRegistered bool
	RecipientID         *int64
	RecipientName       string
	RecipientPhone      string
	RecipientEmail      string
	RecipientAddress    string
	RecipientPostCode   string
	RecipientCity       string

	DriverID         *int64
	SelectedLockerID int64
	DeliveryLockerID *int64
	CabinetID        *int64
	StorageID        *int64

	Status string

	SenderCode           string
	SenderCodeActive     bool
	SenderCodeValidUntil *time.Time
	SenderCodeUsedAt     *time.Time

	RecipientCode           string
	RecipientCodeActive     bool
	RecipientCodeValidUntil *time.Time
	RecipientCodeUsedAt     *time.Time

	CreatedAt       time.Time
	UpdatedAt       time.Time
	StatusUpdatedAt time.Time

	IdempotencyKey          string
	IdempotencyKeyCreatedAt time.Time

	Version int64
}

type PendingAssignmentDB struct {
	ParcelID      int64
	LockerCity    string
	SenderCity    string
	RecipientCity string
}
