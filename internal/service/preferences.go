package service

import (
	"context"
	"errors"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

// GetPreferences returns the learned profile, or an empty one when the
// user has not interacted with any chef yet.
func (s *Service) GetPreferences(ctx context.Context, userID int64) (*domain.PreferenceProfile, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	profile, err := s.store.GetPreferences(ctx, userID)
	if errors.Is(err, domain.ErrPreferencesNotFound) {
		return &domain.PreferenceProfile{UserID: userID, PreferredCuisines: []string{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}
