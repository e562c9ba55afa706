package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/logging"
	"github.com/actuallystonmai/chef-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/chef-recommendation-service/internal/preference"
)

// TrackInteraction appends the event to the ledger and, for chef content,
// widens the user's preference profile. Only a failed ledger write is
// returned as an error; learning is best-effort.
func (s *Service) TrackInteraction(ctx context.Context, req domain.TrackRequest) (*domain.TrackResult, error) {
	if !req.ContentType.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, req.ContentType)
	}
	if _, err := s.store.GetUserByID(ctx, req.UserID); err != nil {
		return nil, err
	}

	it := domain.InteractionType(strings.ToLower(strings.TrimSpace(string(req.InteractionType))))
	if it == "" {
		it = domain.InteractionUnknown
	}
	event := &domain.InteractionEvent{
		UserID:          req.UserID,
		ContentType:     req.ContentType,
		ContentID:       req.ContentID,
		InteractionType: it,
		Weight:          it.Weight(),
		SessionID:       req.SessionID,
		DurationSeconds: req.DurationSeconds,
	}
	if err := s.store.InsertInteraction(ctx, event); err != nil {
		return nil, fmt.Errorf("record interaction: %w", err)
	}
	metrics.RecordInteraction(string(event.ContentType), event.InteractionType.MetricLabel())

	log := logging.Ctx(ctx).With().
		Int64("user_id", req.UserID).
		Str("content_type", string(req.ContentType)).
		Int64("content_id", req.ContentID).
		Logger()

	result := &domain.TrackResult{Event: event}
	if event.ContentType == domain.ContentChef {
		updated, err := s.learnPreferences(ctx, req.UserID, req.ContentID)
		if err != nil {
			metrics.RecordPreferenceUpdateFailure()
			log.Warn().Err(err).Msg("preference update failed")
		}
		result.PreferencesUpdated = updated
	}

	if err := s.cache.ClearUserFeeds(ctx, req.UserID); err != nil {
		log.Warn().Err(err).Msg("feed cache invalidation failed")
	}

	log.Debug().
		Str("interaction_type", string(event.InteractionType)).
		Int("weight", event.Weight).
		Bool("preferences_updated", result.PreferencesUpdated).
		Msg("interaction tracked")
	return result, nil
}

// learnPreferences folds the chef into the user's profile. A chef that no
// longer exists is a no-op, not an error.
func (s *Service) learnPreferences(ctx context.Context, userID, chefID int64) (bool, error) {
	chef, err := s.store.GetChefByID(ctx, chefID)
	if errors.Is(err, domain.ErrChefNotFound) {
		logging.Ctx(ctx).Info().Int64("chef_id", chefID).Msg("chef not found, skipping preference update")
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("fetch chef: %w", err)
	}

	now := s.now()
	_, err = s.store.UpdatePreferences(ctx, userID, func(p *domain.PreferenceProfile) error {
		preference.Learn(p, *chef, now)
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
