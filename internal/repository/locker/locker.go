package locker

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/repository"
	"parcel-locker/internal/service/geo"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var ErrConflict = errors.New("locker already exists")

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create добавляет постамат вместе с ячейками одним запросом.
func (r *Repository) Create(ctx context.Context, create entities.LockerCreate) (*entities.Locker, error) {
	widths, heights, depths := cabinetSizes(create.Cabinets)

	query := `WITH l AS (
			INSERT INTO lockers (name, city, lon, lat)
			VALUES ($1, $2, $3, $4)
			RETURNING id, name, city, lon, lat, created_at
		), c AS (
			INSERT INTO cabinets (locker_id, width, height, depth)
			SELECT l.id, s.width, s.height, s.depth
			FROM l CROSS JOIN unnest($5::float8[], $6::float8[], $7::float8[]) AS s(width, height, depth)
		)
		SELECT id, name, city, lon, lat, created_at FROM l`

	var lockerModel LockerDB
	err := r.querier.QueryRow(
		ctx,
		query,
		create.Name,
		create.City,
		create.Location.Lon(),
		create.Location.Lat(),
		widths,
		heights,
		depths,
	).Scan(
		&lockerModel.ID,
		&lockerModel.Name,
		&lockerModel.City,
		&lockerModel.Lon,
		&lockerModel.Lat,
		&lockerModel.CreatedAt,
	)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, create.Name)
		}
		return nil, fmt.Errorf("unexpected locker repository create error: %w", err)
	}

	return ToDomain(&lockerModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Locker, error) {
	query := `SELECT id, name, city, lon, lat, created_at
		FROM lockers
		WHERE id = $1`

	var lockerModel LockerDB
	err := r.querier.QueryRow(ctx, query, id).
		Scan(
			&lockerModel.ID,
			&lockerModel.Name,
			&lockerModel.City,
			&lockerModel.Lon,
			&lockerModel.Lat,
			&lockerModel.CreatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, geo.ErrLockerNotFound
		}

		return nil, fmt.Errorf("unexpected locker repository getbyid error: %w", err)
	}

	return ToDomain(&lockerModel), nil
}

func (r *Repository) List(ctx context.Context) ([]entities.Locker, error) {
	builder := qb.
		Select("id", "name", "city", "lon", "lat", "created_at").
		From("lockers").
		OrderBy("id")

	return r.list(ctx, builder, "list")
}

// ListWithFreeCabinets постаматы, где прямо сейчас есть хотя бы одна свободная ячейка.
func (r *Repository) ListWithFreeCabinets(ctx context.Context) ([]entities.Locker, error) {
	builder := qb.
		Select("l.id", "l.name", "l.city", "l.lon", "l.lat", "l.created_at").
		From("lockers l").
		Where(sq.Expr("EXISTS (SELECT 1 FROM cabinets c WHERE c.locker_id = l.id AND c.status = ?)",
			entities.CabinetFree.String())).
		OrderBy("l.id")

	return r.list(ctx, builder, "listwithfreecabinets")
}

func (r *Repository) list(ctx context.Context, builder sq.SelectBuilder, op string) ([]entities.Locker, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected locker repository %s error: %w", op, err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected locker repository %s error: %w", op, err)
	}
	defer rows.Close()

	lockerModels := make([]LockerDB, 0, 32)
	for rows.Next() {
		var lockerModel LockerDB
		err := rows.Scan(
			&lockerModel.ID,
			&lockerModel.Name,
			&lockerModel.City,
			&lockerModel.Lon,
			&lockerModel.Lat,
			&lockerModel.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected locker repository %s error: %w", op, err)
		}
		lockerModels = append(lockerModels, lockerModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected locker repository %s error: %w", op, err)
	}

	return ToDomainList(lockerModels), nil
}
