package entities

import (
	"time"

	"github.com/paulmach/orb"
)

// ParcelStatus статус посылки в жизненном цикле.
//
//	created -> awaiting_dropoff -> in_locker -> assigned_to_driver -> in_transit
//	        -> delivered_to_locker -> picked_up
//
// cancelled и expired достижимы из любого нетерминального статуса.
type ParcelStatus string

const (
	ParcelCreated           ParcelStatus = "created"
	ParcelAwaitingDropoff   ParcelStatus = "awaiting_dropoff"
	ParcelInLocker          ParcelStatus = "in_locker"
	ParcelAssignedToDriver  ParcelStatus = "assigned_to_driver"
	ParcelInTransit         ParcelStatus = "in_transit"
	ParcelDeliveredToLocker ParcelStatus = "delivered_to_locker"
	ParcelPickedUp          ParcelStatus = "picked_up"
	ParcelCancelled         ParcelStatus = "cancelled"
	ParcelExpired           ParcelStatus = "expired"
)

var parcelTransitions = map[ParcelStatus]ParcelStatus{
	ParcelCreated:           ParcelAwaitingDropoff,
	ParcelAwaitingDropoff:   ParcelInLocker,
	ParcelInLocker:          ParcelAssignedToDriver,
	ParcelAssignedToDriver:  ParcelInTransit,
	ParcelInTransit:         ParcelDeliveredToLocker,
	ParcelDeliveredToLocker: ParcelPickedUp,
}

func (s ParcelStatus) String() string {
	return string(s)
}

func (s ParcelStatus) IsValid() bool {
	switch s {
	case ParcelCreated, ParcelAwaitingDropoff, ParcelInLocker, ParcelAssignedToDriver,
		ParcelInTransit, ParcelDeliveredToLocker, ParcelPickedUp, ParcelCancelled, ParcelExpired:
		return true
	default:
		return false
	}
}

func (s ParcelStatus) IsTerminal() bool {
	return s == ParcelPickedUp || s == ParcelCancelled || s == ParcelExpired
}

// CanTransitionTo разрешает только соседний шаг основного пути
// и отмену/истечение из нетерминальных статусов.
func (s ParcelStatus) CanTransitionTo(next ParcelStatus) bool {
	if s.IsTerminal() {
		return false
	}
	if next == ParcelCancelled || next == ParcelExpired {
		return true
	}
	return parcelTransitions[s] == next
}

type CodeKind string

const (
	SenderCode    CodeKind = "sender"
	RecipientCode CodeKind = "recipient"
)

func (k CodeKind) String() string {
	return string(k)
}

// TransactionCode одноразовый числовой код доступа к ячейке.
type TransactionCode struct {
	Value      string
	Active     bool
	ValidUntil time.Time
	UsedAt     *time.Time
}

func (c TransactionCode) Issued() bool {
	return c.Value != ""
}

type Parcel struct {
	ID          int64
	Weight      float64
	Width       float64
	Height      float64
	Depth       float64
	Mass        float64
	Description string

	SenderID *int64
	Sender   Contact

	// RecipientRegistered определяет, что авторитетно: RecipientID или Recipient.
	RecipientRegistered bool
	RecipientID         *int64
	Recipient           Contact

	DriverID         *int64
	SelectedLockerID int64
	DeliveryLockerID *int64
	CabinetID        *int64
	StorageID        *int64

	Status ParcelStatus

	SenderCode    TransactionCode
	RecipientCode TransactionCode

	CreatedAt       time.Time
	UpdatedAt       time.Time
	StatusUpdatedAt time.Time

	IdempotencyKey          string
	IdempotencyKeyCreatedAt time.Time

	Version int64
}

// CurrentLockerID постамат, в ячейке которого посылка лежит сейчас или будет лежать.
func (p *Parcel) CurrentLockerID() int64 {
	if p.DeliveryLockerID != nil {
		return *p.DeliveryLockerID
	}
	return p.SelectedLockerID
}

func (p *Parcel) Code(kind CodeKind) *TransactionCode {
	if kind == RecipientCode {
		return &p.RecipientCode
	}
	return &p.SenderCode
}

type ParcelCreate struct {
	IdempotencyKey string

	Weight      float64
	Width       float64
	Height      float64
	Depth       float64
	Mass        float64
	Description string

	SenderID *int64
	Sender   Contact
	// SenderPoint точка отправителя для поиска ближайшего постамата;
	// для зарегистрированного отправителя берётся из профиля, если не задана.
	SenderPoint *orb.Point

	RecipientID *int64
	Recipient   Contact

	SelectedLockerID *int64
}

// ParcelView посылка с разрешёнными именами для ответа клиенту.
type ParcelView struct {
	Parcel
	SenderName    string
	RecipientName string
	Locker        *Locker
}
