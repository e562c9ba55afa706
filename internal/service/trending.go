package service

import (
	"context"
	"fmt"
	"time"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/logging"
	"github.com/actuallystonmai/chef-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/chef-recommendation-service/internal/scoring"
	"github.com/actuallystonmai/chef-recommendation-service/internal/trending"
)

func (s *Service) GetTrending(ctx context.Context, contentType domain.ContentType, limit int) (*domain.TrendingResult, error) {
	start := time.Now()
	limit = clampLimit(limit, trending.DefaultLimit, trending.MaxLimit)

	switch contentType {
	case "", domain.ContentChef:
		contentType = domain.ContentChef
	case domain.ContentMeal:
		return nil, domain.ErrMealNotImplemented
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, contentType)
	}

	cached, found, err := s.cache.GetTrending(ctx, contentType, limit)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("trending cache get failed")
	}
	if found {
		metrics.ObserveTrending(time.Since(start))
		return &domain.TrendingResult{Trending: cached, CacheHit: true}, nil
	}

	recentStart, historicalStart := trending.Window(s.now())
	activity, err := s.store.GetChefActivity(ctx, recentStart, historicalStart)
	if err != nil {
		return nil, fmt.Errorf("fetch chef activity: %w", err)
	}

	entries := trending.Calculate(activity, limit)
	for i := range entries {
		entries[i].TrendingScore = scoring.Round(entries[i].TrendingScore, 2)
		entries[i].Velocity = scoring.Round(entries[i].Velocity, 2)
	}

	if err := s.cache.SetTrending(ctx, contentType, limit, entries); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Msg("trending cache set failed")
	}

	metrics.ObserveTrending(time.Since(start))
	return &domain.TrendingResult{Trending: entries}, nil
}
