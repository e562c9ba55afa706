package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

// DB is the subset of *pgxpool.Pool the repository uses.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type Repository struct {
	pool DB
}

func New(pool DB) *Repository {
	return &Repository{pool: pool}
}

const chefColumns = `c.id, c.name, c.specialties, c.hourly_rate, c.average_rating,
	c.total_bookings, c.created_at, c.is_available, c.is_verified`

// scanChef reads chefColumns followed by any extra destinations.
func scanChef(row pgx.Row, extra ...any) (domain.ChefCandidate, error) {
	var c domain.ChefCandidate
	dest := []any{
		&c.ID, &c.Name, &c.Specialties, &c.HourlyRate, &c.AverageRating,
		&c.TotalBookings, &c.CreatedAt, &c.IsAvailable, &c.IsVerified,
	}
	err := row.Scan(append(dest, extra...)...)
	return c, err
}

// nonNil keeps `= ANY($n)` from comparing against NULL.
func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func collectIDs(rows pgx.Rows) ([]int64, error) {
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
