package cabinet

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/repository"
	"parcel-locker/internal/service/cabinet"
	"parcel-locker/internal/service/geo"
	"parcel-locker/internal/service/parcel"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// ClaimFree занимает свободную ячейку с наименьшим ID. Строки, заблокированные
// параллельными захватами, пропускаются, поэтому одну ячейку не получат двое.
func (r *Repository) ClaimFree(ctx context.Context, lockerID int64) (*entities.Cabinet, error) {
	query := `UPDATE cabinets
		SET status = 'occupied', updated_at = NOW()
		WHERE id = (
			SELECT id FROM cabinets
			WHERE locker_id = $1 AND status = 'free'
			ORDER BY id
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, locker_id, width, height, depth, status, updated_at`

	var cabinetModel CabinetDB
	err := r.querier.QueryRow(ctx, query, lockerID).
		Scan(
			&cabinetModel.ID,
			&cabinetModel.LockerID,
			&cabinetModel.Width,
			&cabinetModel.Height,
			&cabinetModel.Depth,
			&cabinetModel.Status,
			&cabinetModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cabinet.ErrNoCabinetAvailable
		}

		if repository.IsTransientPgError(err) {
			return nil, fmt.Errorf("%w: claim cabinet in locker %d: %w", parcel.ErrConcurrentUpdate, lockerID, err)
		}

		return nil, fmt.Errorf("unexpected cabinet repository claimfree error: %w", err)
	}

	return ToDomain(&cabinetModel), nil
}

// MarkFree освобождает ячейку. false, если она уже была свободна.
func (r *Repository) MarkFree(ctx context.Context, cabinetID int64) (bool, error) {
	query := `WITH freed AS (
			UPDATE cabinets
			SET status = 'free', updated_at = NOW()
			WHERE id = $1 AND status = 'occupied'
			RETURNING id
		)
		SELECT EXISTS (SELECT 1 FROM cabinets WHERE id = $1), EXISTS (SELECT 1 FROM freed)`

	var exists, freed bool
	err := r.querier.QueryRow(ctx, query, cabinetID).Scan(&exists, &freed)
	if err != nil {
		if repository.IsTransientPgError(err) {
			return false, fmt.Errorf("%w: free cabinet %d: %w", parcel.ErrConcurrentUpdate, cabinetID, err)
		}
		return false, fmt.Errorf("unexpected cabinet repository markfree error: %w", err)
	}

	if !exists {
		return false, cabinet.ErrCabinetNotFound
	}

	return freed, nil
}

func (r *Repository) CountByStatus(ctx context.Context, lockerID int64) (entities.LockerOccupancy, error) {
	builder := qb.
		Select(
			"l.id",
			"COUNT(c.id) FILTER (WHERE c.status = 'free')",
			"COUNT(c.id) FILTER (WHERE c.status = 'occupied')",
		).
		From("lockers l").
		LeftJoin("cabinets c ON c.locker_id = l.id").
		Where(sq.Eq{"l.id": lockerID}).
		GroupBy("l.id")

	query, args, err := builder.ToSql()
	if err != nil {
		return entities.LockerOccupancy{}, fmt.Errorf("unexpected cabinet repository countbystatus error: %w", err)
	}

	var occupancyModel OccupancyDB
	err = r.querier.QueryRow(ctx, query, args...).
		Scan(
			&occupancyModel.LockerID,
			&occupancyModel.Free,
			&occupancyModel.Occupied,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entities.LockerOccupancy{}, geo.ErrLockerNotFound
		}

		return entities.LockerOccupancy{}, fmt.Errorf("unexpected cabinet repository countbystatus error: %w", err)
	}

	return ToOccupancyDomain(&occupancyModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Cabinet, error) {
	query := `SELECT id, locker_id, width, height, depth, status, updated_at
		FROM cabinets
		WHERE id = $1`

	var cabinetModel CabinetDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&cabinetModel.ID,
			&cabinetModel.LockerID,
			&cabinetModel.Width,
			&cabinetModel.Height,
			&cabinetModel.Depth,
			&cabinetModel.Status,
			&cabinetModel.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, cabinet.ErrCabinetNotFound
		}

		return nil, fmt.Errorf("unexpected cabinet repository getbyid error: %w", err)
	}

	return ToDomain(&cabinetModel), nil
}
