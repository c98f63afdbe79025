package parcel

import (
	"time"

	"parcel-locker/internal/entities"
)

func ToDomain(p *ParcelDB) *entities.Parcel {
	if p == nil {
		return nil
	}
	return &entities.Parcel{
		ID:          p.ID,
		Weight:      p.Weight,
		Width:       p.Width,
		Height:      p.Height,
		Depth:       p.Depth,
		Mass:        p.Mass,
		Description: p.Description,

		SenderID: p.SenderID,
		Sender: entities.Contact{
			Name:     p.SenderName,
			Phone:    p.SenderPhone,
			Email:    p.SenderEmail,
			Address:  p.SenderAddress,
			PostCode: p.SenderPostCode,
			City:     p.SenderCity,
		},

		RecipientRegistered: p.RecipientRegistered,
		RecipientID:         p.RecipientID,
		Recipient: entities.Contact{
			Name:     p.RecipientName,
			Phone:    p.RecipientPhone,
			Email:    p.RecipientEmail,
			Address:  p.RecipientAddress,
			PostCode: p.RecipientPostCode,
			City:     p.RecipientCity,
		},

		DriverID:         p.DriverID,
		SelectedLockerID: p.SelectedLockerID,
		DeliveryLockerID: p.DeliveryLockerID,
		CabinetID:        p.CabinetID,
		StorageID:        p.StorageID,

		Status: entities.ParcelStatus(p.Status),

		SenderCode:    toCode(p.SenderCode, p.SenderCodeActive, p.SenderCodeValidUntil, p.SenderCodeUsedAt),
		RecipientCode: toCode(p.RecipientCode, p.RecipientCodeActive, p.RecipientCodeValidUntil, p.RecipientCodeUsedAt),

		CreatedAt:       p.CreatedAt.UTC(),
		UpdatedAt:       p.UpdatedAt.UTC(),
		StatusUpdatedAt: p.StatusUpdatedAt.UTC(),

		IdempotencyKey:          p.IdempotencyKey,
		IdempotencyKeyCreatedAt: p.IdempotencyKeyCreatedAt.UTC(),

		Version: p.Version,
	}
}

func FromDomain(p *entities.Parcel) *ParcelDB {
	if p == nil {
		return nil
	}
	return &ParcelDB{
		ID:          p.ID,
		Weight:      p.Weight,
		Width:       p.Width,
		Height:      p.Height,
		Depth:       p.Depth,
		Mass:        p.Mass,
		Description: p.Description,

		SenderID:       p.SenderID,
		SenderName:     p.Sender.Name,
		SenderPhone:    p.Sender.Phone,
		SenderEmail:    p.Sender.Email,
		SenderAddress:  p.Sender.Address,
		SenderPostCode: p.Sender.PostCode,
		SenderCity:     p.Sender.City,

		RecipientRegistered: p.RecipientRegistered,
		RecipientID:         p.RecipientID,
		RecipientName:       p.Recipient.Name,
		RecipientPhone:      p.Recipient.Phone,
		RecipientEmail:      p.Recipient.Email,
		RecipientAddress:    p.Recipient.Address,
		RecipientPostCode:   p.Recipient.PostCode,
		RecipientCity:       p.Recipient.City,

		DriverID:         p.DriverID,
		SelectedLockerID: p.SelectedLockerID,
		DeliveryLockerID: p.DeliveryLockerID,
		CabinetID:        p.CabinetID,
		StorageID:        p.StorageID,

		Status: p.Status.String(),

		SenderCode:           p.SenderCode.Value,
		SenderCodeActive:     p.SenderCode.Active,
		SenderCodeValidUntil: nullableTime(p.SenderCode.ValidUntil),
		SenderCodeUsedAt:     p.SenderCode.UsedAt,

		RecipientCode:           p.RecipientCode.Value,
		RecipientCodeActive:     p.RecipientCode.Active,
		RecipientCodeValidUntil: nullableTime(p.RecipientCode.ValidUntil),
		RecipientCodeUsedAt:     p.RecipientCode.UsedAt,

		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
		StatusUpdatedAt: p.StatusUpdatedAt,

		IdempotencyKey:          p.IdempotencyKey,
		IdempotencyKeyCreatedAt: p.IdempotencyKeyCreatedAt,

		Version: p.Version,
	}
}

func ToPendingDomainList(list []PendingAssignmentDB) []entities.PendingAssignment {
	res := make([]entities.PendingAssignment, 0, len(list))
	for _, p := range list {
		res = append(res, entities.PendingAssignment{
			ParcelID:      p.ParcelID,
			LockerCity:    p.LockerCity,
			SenderCity:    p.SenderCity,
			RecipientCity: p.RecipientCity,
		})
	}
	return res
}

func toCode(value string, active bool, validUntil, usedAt *time.Time) entities.TransactionCode {
	code := entities.TransactionCode{
		Value:  value,
		Active: active,
	}
	if validUntil != nil {
		code.ValidUntil = validUntil.UTC()
	}
	if usedAt != nil {
		t := usedAt.UTC()
		code.UsedAt = &t
	}
	return code
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
