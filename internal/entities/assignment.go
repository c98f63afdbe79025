package entities

import "time"

// PendingAssignment посылка в постамате без водителя и данные для подбора.
type PendingAssignment struct {
	ParcelID      int64
	LockerCity    string
	SenderCity    string
	RecipientCity string
}

type AssignmentResult struct {
	Assigned  int
	Failed    int
	Skipped   int
	// Unmatched посылки без подходящего водителя, остаются до следующего прогона.
	Unmatched int
	Passes    int
	Coalesced bool
}

func (r *AssignmentResult) Add(other AssignmentResult) {
	r.Assigned += other.Assigned
	r.Failed += other.Failed
	r.Skipped += other.Skipped
	r.Unmatched += other.Unmatched
	r.Passes += other.Passes
}

type StatusEvent struct {
	ParcelID   int64
	Status     ParcelStatus
	OccurredAt time.Time
}

// DriverProgress событие от водителя о перемещении посылки.
type DriverProgress struct {
	ParcelID int64
	DriverID int64
	Status   ParcelStatus
	LockerID *int64
}

// InjectionReport итог отправки одного робота клиентам одного города.
type InjectionReport struct {
	Sender  string
	City    string
	Sent    int
	Skipped int
	Failed  int
}

type InjectionSummary struct {
	Reports    []InjectionReport
	Assignment AssignmentResult
}

func (s InjectionSummary) Sent() int {
	total := 0
	for _, r := range s.Reports {
		total += r.Sent
	}
	return total
}
