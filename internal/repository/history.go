package repository

import (
	"context"
	"fmt"
)

func (r *Repository) GetFavoriteChefIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT chef_id FROM favorite_chefs WHERE user_id = $1 ORDER BY chef_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query favorites for user %d: %w", userID, err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan favorites for user %d: %w", userID, err)
	}
	return ids, nil
}

func (r *Repository) GetBookedChefIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT chef_id FROM bookings WHERE client_id = $1 ORDER BY chef_id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("query bookings for user %d: %w", userID, err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan bookings for user %d: %w", userID, err)
	}
	return ids, nil
}

// GetSimilarUserIDs returns every other user who favorited or booked any of chefIDs.
func (r *Repository) GetSimilarUserIDs(ctx context.Context, userID int64, chefIDs []int64) ([]int64, error) {
	if len(chefIDs) == 0 {
		return []int64{}, nil
	}
	rows, err := r.pool.Query(ctx,
		`SELECT user_id FROM favorite_chefs WHERE chef_id = ANY($2) AND user_id <> $1
		UNION
		SELECT client_id FROM bookings WHERE chef_id = ANY($2) AND client_id <> $1`,
		userID, chefIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query similar users for user %d: %w", userID, err)
	}
	ids, err := collectIDs(rows)
	if err != nil {
		return nil, fmt.Errorf("scan similar users: %w", err)
	}
	return ids, nil
}

// CountEngagementByUsers maps each of chefIDs to the number of distinct
// userIDs who favorited or booked it. Chefs nobody engaged with are absent.
func (r *Repository) CountEngagementByUsers(ctx context.Context, userIDs, chefIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	if len(userIDs) == 0 || len(chefIDs) == 0 {
		return counts, nil
	}

	rows, err := r.pool.Query(ctx,
		`SELECT chef_id, COUNT(DISTINCT user_id)
		FROM (
			SELECT chef_id, user_id FROM favorite_chefs
			WHERE user_id = ANY($1) AND chef_id = ANY($2)
			UNION ALL
			SELECT chef_id, client_id FROM bookings
			WHERE client_id = ANY($1) AND chef_id = ANY($2)
		) e
		GROUP BY chef_id`, userIDs, chefIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("query engagement counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var chefID int64
		var n int
		if err := rows.Scan(&chefID, &n); err != nil {
			return nil, fmt.Errorf("scan engagement count: %w", err)
		}
		counts[chefID] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over engagement counts: %w", err)
	}
	return counts, nil
}
