package parcel

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/repository"
	"parcel-locker/internal/service/parcel"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const (
	constraintIdempotencyKey      = "parcels_idempotency_key_key"
	constraintActiveSenderCode    = "parcels_active_sender_code_idx"
	constraintActiveRecipientCode = "parcels_active_recipient_code_idx"
)

var parcelColumns = []string{
	"id", "weight", "width", "height", "depth", "mass", "description",
	"sender_id", "sender_name", "sender_phone", "sender_email", "sender_address", "sender_post_code", "sender_city",
	"recipient_registered", "recipient_id", "recipient_name", "recipient_phone", "recipient_email",
	"recipient_address", "recipient_post_code", "recipient_city",
	"driver_id", "selected_locker_id", "delivery_locker_id", "cabinet_id", "storage_id",
	"status",
	"sender_code", "sender_code_active", "sender_code_valid_until", "sender_code_used_at",
	"recipient_code", "recipient_code_active", "recipient_code_valid_until", "recipient_code_used_at",
	"created_at", "updated_at", "status_updated_at",
	"idempotency_key", "idempotency_key_created_at",
	"version",
}

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, parcelEntity *entities.Parcel) (*entities.Parcel, error) {
	parcelModel := FromDomain(parcelEntity)

	values := mutableValues(parcelModel)
	values["created_at"] = parcelModel.CreatedAt
	values["idempotency_key"] = parcelModel.IdempotencyKey
	values["idempotency_key_created_at"] = parcelModel.IdempotencyKeyCreatedAt
	values["version"] = 1

	query, args, err := qb.
		Insert("parcels").
		SetMap(values).
		Suffix("RETURNING id, version").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository create error: %w", err)
	}

	err = r.querier.QueryRow(ctx, query, args...).Scan(&parcelModel.ID, &parcelModel.Version)
	if err != nil {
		return nil, mapWriteError("create", err)
	}

	return ToDomain(parcelModel), nil
}

// Update сохраняет посылку, только если её версия в БД совпадает с parcelEntity.Version.
func (r *Repository) Update(ctx context.Context, parcelEntity *entities.Parcel) error {
	parcelModel := FromDomain(parcelEntity)

	query, args, err := qb.
		Update("parcels").
		SetMap(mutableValues(parcelModel)).
		Set("version", sq.Expr("version + 1")).
		Where(sq.Eq{"id": parcelModel.ID, "version": parcelModel.Version}).
		Suffix("RETURNING version").
		ToSql()
	if err != nil {
		return fmt.Errorf("unexpected parcel repository update error: %w", err)
	}

	var version int64
	err = r.querier.QueryRow(ctx, query, args...).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.missingOrStale(ctx, parcelModel.ID)
		}
		return mapWriteError("update", err)
	}

	parcelEntity.Version = version
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Parcel, error) {
	return r.getOne(ctx, "getbyid", sq.Eq{"id": id})
}

func (r *Repository) GetByIdempotencyKey(ctx context.Context, key string) (*entities.Parcel, error) {
	return r.getOne(ctx, "getbyidempotencykey", sq.Eq{"idempotency_key": key})
}

// GetByCabinetID посылка, которая сейчас занимает ячейку.
func (r *Repository) GetByCabinetID(ctx context.Context, cabinetID int64) (*entities.Parcel, error) {
	return r.getOne(ctx, "getbycabinetid", sq.And{
		sq.Eq{"cabinet_id": cabinetID},
		sq.NotEq{"status": terminalStatuses()},
	})
}

// ListExpiredAwaitingDropoff ID посылок, чей код отправителя истёк до сдачи в ячейку.
func (r *Repository) ListExpiredAwaitingDropoff(ctx context.Context, now time.Time, limit int) ([]int64, error) {
	builder := qb.
		Select("id").
		From("parcels").
		Where(sq.Eq{"status": entities.ParcelAwaitingDropoff.String(), "sender_code_active": true}).
		Where(sq.LtOrEq{"sender_code_valid_until": now}).
		OrderBy("id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository listexpiredawaitingdropoff error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository listexpiredawaitingdropoff error: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository listexpiredawaitingdropoff error: %w", err)
	}
	return ids, nil
}

func (r *Repository) ActiveCodeExists(ctx context.Context, kind entities.CodeKind, code string) (bool, error) {
	column := "sender_code"
	if kind == entities.RecipientCode {
		column = "recipient_code"
	}

	query, args, err := qb.
		Select("1").
		From("parcels").
		Where(sq.Eq{column: code, column + "_active": true}).
		Prefix("SELECT EXISTS (").
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("unexpected parcel repository activecodeexists error: %w", err)
	}

	var exists bool
	err = r.querier.QueryRow(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("unexpected parcel repository activecodeexists error: %w", err)
	}
	return exists, nil
}

// ListAwaitingDriver посылки в in_locker без водителя вместе с городами постамата,
// отправителя и получателя. Для зарегистрированных сторон город берётся из профиля.
func (r *Repository) ListAwaitingDriver(ctx context.Context, limit int) ([]entities.PendingAssignment, error) {
	builder := qb.
		Select(
			"p.id",
			"l.city",
			"COALESCE(s.city, p.sender_city)",
			"COALESCE(rc.city, p.recipient_city)",
		).
		From("parcels p").
		Join("lockers l ON l.id = COALESCE(p.delivery_locker_id, p.selected_locker_id)").
		LeftJoin("users s ON s.id = p.sender_id").
		LeftJoin("users rc ON rc.id = p.recipient_id").
		Where(sq.Eq{"p.status": entities.ParcelInLocker.String(), "p.driver_id": nil}).
		OrderBy("p.id")
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository listawaitingdriver error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository listawaitingdriver error: %w", err)
	}
	defer rows.Close()

	pendingModels := make([]PendingAssignmentDB, 0, 64)
	for rows.Next() {
		var pendingModel PendingAssignmentDB
		err := rows.Scan(
			&pendingModel.ParcelID,
			&pendingModel.LockerCity,
			&pendingModel.SenderCity,
			&pendingModel.RecipientCity,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected parcel repository listawaitingdriver error: %w", err)
		}
		pendingModels = append(pendingModels, pendingModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository listawaitingdriver error: %w", err)
	}

	return ToPendingDomainList(pendingModels), nil
}

// CountActiveByDriver число посылок в assigned_to_driver и in_transit у каждого водителя.
func (r *Repository) CountActiveByDriver(ctx context.Context) (map[int64]int, error) {
	query, args, err := qb.
		Select("driver_id", "COUNT(*)").
		From("parcels").
		Where(sq.NotEq{"driver_id": nil}).
		Where(sq.Eq{"status": []string{
			entities.ParcelAssignedToDriver.String(),
			entities.ParcelInTransit.String(),
		}}).
		GroupBy("driver_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository countactivebydriver error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository countactivebydriver error: %w", err)
	}
	defer rows.Close()

	result := make(map[int64]int)
	for rows.Next() {
		var (
			driverID int64
			count    int
		)
		if err := rows.Scan(&driverID, &count); err != nil {
			return nil, fmt.Errorf("unexpected parcel repository countactivebydriver error: %w", err)
		}
		result[driverID] = count
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository countactivebydriver error: %w", err)
	}

	return result, nil
}

func (r *Repository) getOne(ctx context.Context, op string, where sq.Sqlizer) (*entities.Parcel, error) {
	query, args, err := qb.
		Select(parcelColumns...).
		From("parcels").
		Where(where).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected parcel repository %s error: %w", op, err)
	}

	var parcelModel ParcelDB
	err = scanParcel(r.querier.QueryRow(ctx, query, args...), &parcelModel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, parcel.ErrParcelNotFound
		}

		return nil, fmt.Errorf("unexpected parcel repository %s error: %w", op, err)
	}

	return ToDomain(&parcelModel), nil
}

// missingOrStale различает отсутствующую посылку и устаревшую версию после пустого UPDATE.
func (r *Repository) missingOrStale(ctx context.Context, id int64) error {
	var exists bool
	err := r.querier.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM parcels WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("unexpected parcel repository update error: %w", err)
	}
	if !exists {
		return parcel.ErrParcelNotFound
	}
	return fmt.Errorf("%w: parcel %d", parcel.ErrConcurrentUpdate, id)
}

func mapWriteError(op string, err error) error {
	switch {
	case repository.IsPgConstraintViolation(err, constraintIdempotencyKey):
		return parcel.ErrDuplicateIdempotencyKey
	case repository.IsPgConstraintViolation(err, constraintActiveSenderCode),
		repository.IsPgConstraintViolation(err, constraintActiveRecipientCode):
		return parcel.ErrCodeCollision
	case repository.IsTransientPgError(err):
		return fmt.Errorf("%w: %w", parcel.ErrConcurrentUpdate, err)
	default:
		return fmt.Errorf("unexpected parcel repository %s error: %w", op, err)
	}
}

func mutableValues(p *ParcelDB) map[string]interface{} {
	return map[string]interface{}{
		"weight":                     p.Weight,
		"width":                      p.Width,
		"height":                     p.Height,
		"depth":                      p.Depth,
		"mass":                       p.Mass,
		"description":                p.Description,
		"sender_id":                  p.SenderID,
		"sender_name":                p.SenderName,
		"sender_phone":               p.SenderPhone,
		"sender_email":               p.SenderEmail,
		"sender_address":             p.SenderAddress,
		"sender_post_code":           p.SenderPostCode,
		"sender_city":                p.SenderCity,
		"recipient_registered":       p.RecipientRegistered,
		"recipient_id":               p.RecipientID,
		"recipient_name":             p.RecipientName,
		"recipient_phone":            p.RecipientPhone,
		"recipient_email":            p.RecipientEmail,
		"recipient_address":          p.RecipientAddress,
		"recipient_post_code":        p.RecipientPostCode,
		"recipient_city":             p.RecipientCity,
		"driver_id":                  p.DriverID,
		"selected_locker_id":         p.SelectedLockerID,
		"delivery_locker_id":         p.DeliveryLockerID,
		"cabinet_id":                 p.CabinetID,
		"storage_id":                 p.StorageID,
		"status":                     p.Status,
		"sender_code":                p.SenderCode,
		"sender_code_active":         p.SenderCodeActive,
		"sender_code_valid_until":    p.SenderCodeValidUntil,
		"sender_code_used_at":        p.SenderCodeUsedAt,
		"recipient_code":             p.RecipientCode,
		"recipient_code_active":      p.RecipientCodeActive,
		"recipient_code_valid_until": p.RecipientCodeValidUntil,
		"recipient_code_used_at":     p.RecipientCodeUsedAt,
		"updated_at":                 p.UpdatedAt,
		"status_updated_at":          p.StatusUpdatedAt,
	}
}

func terminalStatuses() []string {
	return []string{
		entities.ParcelPickedUp.String(),
		entities.ParcelCancelled.String(),
		entities.ParcelExpired.String(),
	}
}

func scanParcel(row pgx.Row, p *ParcelDB) error {
	return row.Scan(
		&p.ID,
		&p.Weight,
		&p.Width,
		&p.Height,
		&p.Depth,
		&p.Mass,
		&p.Description,
		&p.SenderID,
		&p.SenderName,
		&p.SenderPhone,
		&p.SenderEmail,
		&p.SenderAddress,
		&p.SenderPostCode,
		&p.SenderCity,
		&p.RecipientRegistered,
		&p.RecipientID,
		&p.RecipientName,
		&p.RecipientPhone,
		&p.RecipientEmail,
		&p.RecipientAddress,
		&p.RecipientPostCode,
		&p.RecipientCity,
		&p.DriverID,
		&p.SelectedLockerID,
		&p.DeliveryLockerID,
		&p.CabinetID,
		&p.StorageID,
		&p.Status,
		&p.SenderCode,
		&p.SenderCodeActive,
		&p.SenderCodeValidUntil,
		&p.SenderCodeUsedAt,
		&p.RecipientCode,
		&p.RecipientCodeActive,
		&p.RecipientCodeValidUntil,
		&p.RecipientCodeUsedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.StatusUpdatedAt,
		&p.IdempotencyKey,
		&p.IdempotencyKeyCreatedAt,
		&p.Version,
	)
}
