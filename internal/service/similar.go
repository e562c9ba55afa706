package service

import (
	"context"
	"fmt"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/scoring"
)

// GetSimilarChefs ranks available, verified chefs sharing at least one
// specialty with the given chef.
func (s *Service) GetSimilarChefs(ctx context.Context, chefID int64) ([]domain.SimilarChef, error) {
	source, err := s.store.GetChefByID(ctx, chefID)
	if err != nil {
		return nil, err
	}
	if len(source.Specialties) == 0 {
		return []domain.SimilarChef{}, nil
	}

	pool, err := s.store.GetSimilarChefPool(ctx, chefID, source.Specialties)
	if err != nil {
		return nil, fmt.Errorf("fetch similar chef pool: %w", err)
	}
	return scoring.RankSimilar(*source, pool), nil
}
