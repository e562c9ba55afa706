package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

// GetCandidateChefs returns available chefs not in excludeIDs, ranked by a
// cheap proxy (rating, then recency, then id) and capped at limit.
func (r *Repository) GetCandidateChefs(ctx context.Context, excludeIDs []int64, limit int) ([]domain.ChefCandidate, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+chefColumns+`
		FROM chefs c
		WHERE c.is_available AND NOT (c.id = ANY($1))
		ORDER BY c.average_rating DESC, c.created_at DESC, c.id ASC
		LIMIT $2`, nonNil(excludeIDs), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query candidate chefs: %w", err)
	}
	defer rows.Close()

	var chefs []domain.ChefCandidate
	for rows.Next() {
		c, err := scanChef(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chef: %w", err)
		}
		chefs = append(chefs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over chefs: %w", err)
	}
	return chefs, nil
}

func (r *Repository) GetChefByID(ctx context.Context, chefID int64) (*domain.ChefCandidate, error) {
	c, err := scanChef(r.pool.QueryRow(ctx,
		`SELECT `+chefColumns+` FROM chefs c WHERE c.id = $1`, chefID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrChefNotFound
		}
		return nil, fmt.Errorf("query chef id=%d: %w", chefID, err)
	}
	return &c, nil
}

// GetSimilarChefPool returns available, verified chefs other than chefID
// sharing at least one of the given specialties.
func (r *Repository) GetSimilarChefPool(ctx context.Context, chefID int64, specialties []string) ([]domain.ChefCandidate, error) {
	if specialties == nil {
		specialties = []string{}
	}
	rows, err := r.pool.Query(ctx,
		`SELECT `+chefColumns+`
		FROM chefs c
		WHERE c.is_available AND c.is_verified AND c.id <> $1 AND c.specialties && $2
		ORDER BY c.id`, chefID, specialties,
	)
	if err != nil {
		return nil, fmt.Errorf("query similar chefs for %d: %w", chefID, err)
	}
	defer rows.Close()

	var chefs []domain.ChefCandidate
	for rows.Next() {
		c, err := scanChef(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chef: %w", err)
		}
		chefs = append(chefs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over similar chefs: %w", err)
	}
	return chefs, nil
}
