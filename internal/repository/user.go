package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

// Get single user
func (r *Repository) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	user := &domain.User{}

	err := r.pool.QueryRow(ctx,
		`SELECT id, username, created_at FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Username, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("query user id=%d: %w", userID, err)
	}

	return user, nil
}

// Get user ids for page
func (r *Repository) GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error) {
	offset := (page - 1) * limit
	rows, err := r.pool.Query(ctx,
		`SELECT id FROM users ORDER BY id LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query user ids for page %d: %w", page, err)
	}

	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan user ids: %w", err)
	}
	return ids, nil
}

// Count total users
func (r *Repository) CountUsers(ctx context.Context) (int, error) {
	var total int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users`,
	).Scan(&total)

	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return total, nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
