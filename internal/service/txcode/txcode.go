package txcode

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"parcel-locker/internal/entities"
)

const maxGenerateAttempts = 10

type Manager struct {
	repository    Repository
	expiryFactory CodeExpiryFactory
	generator     Generator
}

func New(repository Repository, expiryFactory CodeExpiryFactory, generator Generator) *Manager {
	if generator == nil {
		generator = NewRandomGenerator()
	}
	return &Manager{
		repository:    repository,
		expiryFactory: expiryFactory,
		generator:     generator,
	}
}

func (m *Manager) IssueSenderCode(ctx context.Context, parcel *entities.Parcel, now time.Time) (string, error) {
	return m.issue(ctx, parcel, entities.SenderCode, now)
}

// IssueRecipientCode выдаёт код получателя. Повторная выдача (например, по запросу
// оператора после истечения) допускается, пока код не использован.
func (m *Manager) IssueRecipientCode(ctx context.Context, parcel *entities.Parcel, now time.Time) (string, error) {
	return m.issue(ctx, parcel, entities.RecipientCode, now)
}

func (m *Manager) ValidateAndConsumeSenderCode(parcel *entities.Parcel, code string, now time.Time) error {
	return consume(parcel.Code(entities.SenderCode), code, now)
}

func (m *Manager) ValidateAndConsumeRecipientCode(parcel *entities.Parcel, code string, now time.Time) error {
	return consume(parcel.Code(entities.RecipientCode), code, now)
}

// Deactivate гасит все активные коды посылки (отмена, истечение).
func (m *Manager) Deactivate(parcel *entities.Parcel) {
	parcel.SenderCode.Active = false
	parcel.RecipientCode.Active = false
}

func (m *Manager) issue(ctx context.Context, parcel *entities.Parcel, kind entities.CodeKind, now time.Time) (string, error) {
	target := parcel.Code(kind)
	if target.UsedAt != nil {
		return "", fmt.Errorf("%s code: %w", kind, ErrCodeAlreadyConsumed)
	}
	if kind == entities.SenderCode && target.Issued() {
		return "", fmt.Errorf("%s code: %w", kind, ErrCodeAlreadyIssued)
	}

	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		code, err := m.generator.Generate()
		if err != nil {
			return "", fmt.Errorf("generate %s code: %w", kind, err)
		}

		exists, err := m.repository.ActiveCodeExists(ctx, kind, code)
		if err != nil {
			return "", fmt.Errorf("check %s code uniqueness: %w", kind, err)
		}
		if exists || code == target.Value {
			continue
		}

		*target = entities.TransactionCode{
			Value:      code,
			Active:     true,
			ValidUntil: m.expiryFactory.CalculateExpiry(kind, now),
		}
		return code, nil
	}

	return "", fmt.Errorf("%s code after %d attempts: %w", kind, maxGenerateAttempts, ErrCodeCollision)
}

// consume: сначала сверяется сам код, потом факт использования, потом срок.
func consume(target *entities.TransactionCode, code string, now time.Time) error {
	if !target.Issued() {
		return ErrCodeNotIssued
	}
	if subtle.ConstantTimeCompare([]byte(target.Value), []byte(code)) != 1 {
		return ErrCodeMismatch
	}
	if target.UsedAt != nil {
		return ErrCodeAlreadyConsumed
	}
	if !target.Active || !now.Before(target.ValidUntil) {
		return ErrCodeExpired
	}

	usedAt := now
	target.Active = false
	target.UsedAt = &usedAt
	return nil
}
