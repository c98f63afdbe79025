package driver_progress

type progressEvent struct {
	ParcelID int64  `json:"parcel_id"`
	DriverID int64  `json:"driver_id"`
	Status   string `json:"status"`
	LockerID *int64 `json:"locker_id,omitempty"`
}
