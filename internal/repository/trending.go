package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

// GetChefActivity aggregates, for every available chef, bookings since
// recentStart, bookings in [historicalStart, recentStart) and chef
// interactions since recentStart, in a single pass.
func (r *Repository) GetChefActivity(ctx context.Context, recentStart, historicalStart time.Time) ([]domain.ChefActivity, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+chefColumns+`,
			COALESCE(rb.n, 0), COALESCE(hb.n, 0), COALESCE(ri.n, 0)
		FROM chefs c
		LEFT JOIN (
			SELECT chef_id, COUNT(*) AS n FROM bookings
			WHERE created_at >= $1 GROUP BY chef_id
		) rb ON rb.chef_id = c.id
		LEFT JOIN (
			SELECT chef_id, COUNT(*) AS n FROM bookings
			WHERE created_at >= $2 AND created_at < $1 GROUP BY chef_id
		) hb ON hb.chef_id = c.id
		LEFT JOIN (
			SELECT content_id, COUNT(*) AS n FROM user_interactions
			WHERE content_type = 'chef' AND created_at >= $1 GROUP BY content_id
		) ri ON ri.content_id = c.id
		WHERE c.is_available
		ORDER BY c.id`, recentStart, historicalStart,
	)
	if err != nil {
		return nil, fmt.Errorf("query chef activity: %w", err)
	}
	defer rows.Close()

	var activity []domain.ChefActivity
	for rows.Next() {
		var a domain.ChefActivity
		c, err := scanChef(rows, &a.RecentBookings, &a.HistoricalBookings, &a.RecentInteractions)
		if err != nil {
			return nil, fmt.Errorf("scan chef activity: %w", err)
		}
		a.Chef = c
		activity = append(activity, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate over chef activity: %w", err)
	}
	return activity, nil
}
