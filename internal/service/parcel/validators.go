package parcel

import (
	"fmt"
	"strings"

	"parcel-locker/internal/entities"
)

func validateCreate(req entities.ParcelCreate) error {
	if strings.TrimSpace(req.IdempotencyKey) == "" {
		return fmt.Errorf("%w: idempotency key", ErrMissingRequiredFields)
	}
	if req.Width <= 0 || req.Height <= 0 || req.Depth <= 0 || req.Mass <= 0 || req.Weight < 0 {
		return ErrInvalidDimensions
	}
	if req.SenderID == nil && !isValidContact(req.Sender) {
		return fmt.Errorf("%w: sender", ErrMissingRequiredFields)
	}
	if req.RecipientID == nil && (!isValidContact(req.Recipient) || strings.TrimSpace(req.Recipient.City) == "") {
		return fmt.Errorf("%w: recipient", ErrMissingRequiredFields)
	}
	if req.SelectedLockerID != nil && *req.SelectedLockerID <= 0 {
		return fmt.Errorf("%w: selected locker", ErrMissingRequiredFields)
	}
	return nil
}

func isValidContact(c entities.Contact) bool {
	if strings.TrimSpace(c.Name) == "" {
		return false
	}
	return strings.TrimSpace(c.Phone) != "" || strings.TrimSpace(c.Email) != ""
}

// matchesRequest повтор с тем же ключом должен описывать ту же посылку.
func matchesRequest(p *entities.Parcel, req entities.ParcelCreate) bool {
	if p.Width != req.Width || p.Height != req.Height || p.Depth != req.Depth ||
		p.Mass != req.Mass || p.Weight != req.Weight || p.Description != req.Description {
		return false
	}
	if !sameID(p.SenderID, req.SenderID) || !sameID(p.RecipientID, req.RecipientID) {
		return false
	}
	if req.SenderID == nil && p.Sender != req.Sender {
		return false
	}
	if req.RecipientID == nil && p.Recipient != req.Recipient {
		return false
	}
	if req.SelectedLockerID != nil && *req.SelectedLockerID != p.SelectedLockerID {
		return false
	}
	return true
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
