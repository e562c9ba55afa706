package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

const preferenceColumns = `user_id, preferred_cuisines, price_min, price_max,
	confidence_level, interaction_count, last_updated`

func scanPreferences(row pgx.Row) (*domain.PreferenceProfile, error) {
	p := &domain.PreferenceProfile{}
	var minPrice, maxPrice *float64
	if err := row.Scan(&p.UserID, &p.PreferredCuisines, &minPrice, &maxPrice,
		&p.ConfidenceLevel, &p.InteractionCount, &p.LastUpdated); err != nil {
		return nil, err
	}
	if minPrice != nil && maxPrice != nil {
		p.PriceRange = &domain.PriceRange{Min: *minPrice, Max: *maxPrice}
	}
	return p, nil
}

func (r *Repository) GetPreferences(ctx context.Context, userID int64) (*domain.PreferenceProfile, error) {
	p, err := scanPreferences(r.pool.QueryRow(ctx,
		`SELECT `+preferenceColumns+` FROM user_preferences WHERE user_id = $1`, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("query preferences for user %d: %w", userID, err)
	}
	return p, nil
}

// UpdatePreferences runs fn against the user's profile under a row lock and
// persists the result, creating the profile first if needed. Concurrent
// updates for the same user serialize on the lock, so none are lost.
func (r *Repository) UpdatePreferences(ctx context.Context, userID int64, fn func(*domain.PreferenceProfile) error) (*domain.PreferenceProfile, error) {
	var updated *domain.PreferenceProfile

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`INSERT INTO user_preferences (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID,
		); err != nil {
			return fmt.Errorf("create preferences: %w", err)
		}

		p, err := scanPreferences(tx.QueryRow(ctx,
			`SELECT `+preferenceColumns+` FROM user_preferences WHERE user_id = $1 FOR UPDATE`, userID,
		))
		if err != nil {
			return fmt.Errorf("lock preferences: %w", err)
		}

		if err := fn(p); err != nil {
			return err
		}

		var minPrice, maxPrice *float64
		if p.PriceRange != nil {
			minPrice, maxPrice = &p.PriceRange.Min, &p.PriceRange.Max
		}
		if _, err := tx.Exec(ctx,
			`UPDATE user_preferences
			SET preferred_cuisines = $2, price_min = $3, price_max = $4,
				confidence_level = $5, interaction_count = $6, last_updated = $7
			WHERE user_id = $1`,
			userID, p.PreferredCuisines, minPrice, maxPrice,
			p.ConfidenceLevel, p.InteractionCount, p.LastUpdated,
		); err != nil {
			return fmt.Errorf("save preferences: %w", err)
		}

		updated = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update preferences for user %d: %w", userID, err)
	}
	return updated, nil
}
