package repository

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

// InsertInteraction appends an event to the ledger, filling ID and CreatedAt.
func (r *Repository) InsertInteraction(ctx context.Context, e *domain.InteractionEvent) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO user_interactions
			(user_id, content_type, content_id, interaction_type, weight, session_id, duration_seconds)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		e.UserID, string(e.ContentType), e.ContentID, string(e.InteractionType),
		e.Weight, e.SessionID, e.DurationSeconds,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert interaction for user %d: %w", e.UserID, err)
	}
	return nil
}
