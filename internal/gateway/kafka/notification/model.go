package notification

import "time"

type statusChangedEvent struct {
	ParcelID   int64     `json:"parcel_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}
