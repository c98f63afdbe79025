package code_expiry

import (
	"time"

	"parcel-locker/internal/entities"
)

const (
	DefaultSenderTTL    = 24 * time.Hour
	DefaultRecipientTTL = 72 * time.Hour
)

type CodeExpiryFactory struct {
	senderTTL    time.Duration
	recipientTTL time.Duration
}

// New нулевые значения заменяются дефолтами.
func New(senderTTL, recipientTTL time.Duration) *CodeExpiryFactory {
	if senderTTL <= 0 {
		senderTTL = DefaultSenderTTL
	}
	if recipientTTL <= 0 {
		recipientTTL = DefaultRecipientTTL
	}
	return &CodeExpiryFactory{
		senderTTL:    senderTTL,
		recipientTTL: recipientTTL,
	}
}

func (f *CodeExpiryFactory) CalculateExpiry(kind entities.CodeKind, issuedAt time.Time) time.Time {
	switch kind {
	case entities.SenderCode:
		return issuedAt.Add(f.senderTTL)
	case entities.RecipientCode:
		return issuedAt.Add(f.recipientTTL)
	default:
		return issuedAt.Add(f.senderTTL)
	}
}
