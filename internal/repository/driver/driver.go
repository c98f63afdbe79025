package driver

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/repository"
	"parcel-locker/internal/service/assignment"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var ErrConflict = errors.New("username already taken")

type Repository struct {
	querier Querier
}

func New(querier Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) Create(ctx context.Context, driverEntity entities.Driver) (*entities.Driver, error) {
	driverModel := FromDomain(&driverEntity)
	query := `WITH u AS (
			INSERT INTO users (username, first_name, last_name, phone, email, address, post_code, city)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		)
		INSERT INTO drivers (user_id, driver_type, available)
		SELECT id, $9::text, $10::boolean FROM u
		RETURNING user_id`

	err := r.querier.QueryRow(
		ctx,
		query,
		driverModel.Username,
		driverModel.FirstName,
		driverModel.LastName,
		driverModel.Phone,
		driverModel.Email,
		driverModel.Address,
		driverModel.PostCode,
		driverModel.City,
		driverModel.DriverType,
		driverModel.Available,
	).Scan(&driverModel.ID)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, driverEntity.Username)
		}
		return nil, fmt.Errorf("unexpected driver repository create error: %w", err)
	}

	return ToDomain(driverModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Driver, error) {
	query, args, err := selectDrivers().
		Where(sq.Eq{"u.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository getbyid error: %w", err)
	}

	var driverModel DriverDB
	err = scanDriver(r.querier.QueryRow(ctx, query, args...), &driverModel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, assignment.ErrDriverNotFound
		}

		return nil, fmt.Errorf("unexpected driver repository getbyid error: %w", err)
	}

	return ToDomain(&driverModel), nil
}

// ListAvailable доступные водители по возрастанию ID.
func (r *Repository) ListAvailable(ctx context.Context) ([]entities.Driver, error) {
	query, args, err := selectDrivers().
		Where(sq.Eq{"d.available": true}).
		OrderBy("u.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository listavailable error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository listavailable error: %w", err)
	}
	defer rows.Close()

	driverModels := make([]DriverDB, 0, 16)
	for rows.Next() {
		var driverModel DriverDB
		if err := scanDriver(rows, &driverModel); err != nil {
			return nil, fmt.Errorf("unexpected driver repository listavailable error: %w", err)
		}
		driverModels = append(driverModels, driverModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected driver repository listavailable error: %w", err)
	}

	return ToDomainList(driverModels), nil
}

func selectDrivers() sq.SelectBuilder {
	return qb.
		Select("u.id", "u.username", "u.first_name", "u.last_name", "u.phone", "u.email",
			"u.address", "u.post_code", "u.city", "d.driver_type", "d.available").
		From("drivers d").
		Join("users u ON u.id = d.user_id")
}

func scanDriver(row pgx.Row, d *DriverDB) error {
	return row.Scan(
		&d.ID,
		&d.Username,
		&d.FirstName,
		&d.LastName,
		&d.Phone,
		&d.Email,
		&d.Address,
		&d.PostCode,
		&d.City,
		&d.DriverType,
		&d.Available,
	)
}
