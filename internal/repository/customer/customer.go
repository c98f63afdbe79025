package customer

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"parcel-locker/internal/entities"
	"parcel-locker/internal/repository"
	"parcel-locker/internal/service/parcel"
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

func (r *Repository) Create(ctx context.Context, user entities.User) (*entities.Customer, error) {
	customerModel := FromDomain(&user)
	query := `WITH u AS (
			INSERT INTO users (username, first_name, last_name, phone, email, address, post_code, city, lon, lat)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id
		)
		INSERT INTO customers (user_id)
		SELECT id FROM u
		RETURNING user_id`

	err := r.querier.QueryRow(
		ctx,
		query,
		customerModel.Username,
		customerModel.FirstName,
		customerModel.LastName,
		customerModel.Phone,
		customerModel.Email,
		customerModel.Address,
		customerModel.PostCode,
		customerModel.City,
		customerModel.Lon,
		customerModel.Lat,
	).Scan(&customerModel.ID)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return nil, fmt.Errorf("%w: %s", ErrConflict, user.Username)
		}
		return nil, fmt.Errorf("unexpected customer repository create error: %w", err)
	}

	return ToDomain(customerModel), nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*entities.Customer, error) {
	query, args, err := selectCustomers().
		Where(sq.Eq{"u.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected customer repository getbyid error: %w", err)
	}

	var customerModel CustomerDB
	err = scanCustomer(r.querier.QueryRow(ctx, query, args...), &customerModel)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, parcel.ErrCustomerNotFound
		}

		return nil, fmt.Errorf("unexpected customer repository getbyid error: %w", err)
	}

	return ToDomain(&customerModel), nil
}

// ListByCity страница клиентов города по возрастанию ID, город без учёта регистра.
func (r *Repository) ListByCity(ctx context.Context, city string, limit, offset int) ([]entities.Customer, error) {
	builder := selectCustomers().
		Where(sq.Expr("lower(u.city) = lower(?)", city)).
		OrderBy("u.id").
		Offset(uint64(max(offset, 0)))
	if limit > 0 {
		builder = builder.Limit(uint64(limit))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected customer repository listbycity error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected customer repository listbycity error: %w", err)
	}
	defer rows.Close()

	customerModels := make([]CustomerDB, 0, max(limit, 0))
	for rows.Next() {
		var customerModel CustomerDB
		if err := scanCustomer(rows, &customerModel); err != nil {
			return nil, fmt.Errorf("unexpected customer repository listbycity error: %w", err)
		}
		customerModels = append(customerModels, customerModel)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected customer repository listbycity error: %w", err)
	}

	return ToDomainList(customerModels), nil
}

func selectCustomers() sq.SelectBuilder {
	return qb.
		Select("u.id", "u.username", "u.first_name", "u.last_name", "u.phone", "u.email",
			"u.address", "u.post_code", "u.city", "u.lon", "u.lat").
		From("customers c").
		Join("users u ON u.id = c.user_id")
}

func scanCustomer(row pgx.Row, c *CustomerDB) error {
	return row.Scan(
		&c.ID,
		&c.Username,
		&c.FirstName,
		&c.LastName,
		&c.Phone,
		&c.Email,
		&c.Address,
		&c.PostCode,
		&c.City,
		&c.Lon,
		&c.Lat,
	)
}
