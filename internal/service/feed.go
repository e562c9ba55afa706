package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/logging"
	"github.com/actuallystonmai/chef-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/chef-recommendation-service/internal/scoring"
)

// candidatePool is everything the scorer needs, fetched up front so the
// scoring loop does no I/O.
type candidatePool struct {
	candidates   []domain.ChefCandidate
	profile      *domain.PreferenceProfile
	hasHistory   bool
	similarUsers int
	engagement   map[int64]int
}

// GetPersonalizedFeed returns up to limit ranked chefs for the user. Meal
// feeds are not implemented.
func (s *Service) GetPersonalizedFeed(ctx context.Context, userID int64, contentType domain.ContentType, limit int) (*domain.FeedResult, error) {
	start := time.Now()
	limit = clampLimit(limit, scoring.DefaultFeedLimit, scoring.MaxFeedLimit)

	switch contentType {
	case "", domain.ContentChef:
		contentType = domain.ContentChef
	case domain.ContentMeal:
		return nil, domain.ErrMealNotImplemented
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedContentType, contentType)
	}

	cached, found, err := s.cache.GetFeed(ctx, userID, contentType, limit)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("feed cache get failed")
	}
	if found {
		metrics.ObserveFeed(true, time.Since(start))
		return &domain.FeedResult{Recommendations: cached, CacheHit: true}, nil
	}

	recs, err := s.generateFeed(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetFeed(ctx, userID, contentType, limit, recs); err != nil {
		logging.Ctx(ctx).Warn().Err(err).Int64("user_id", userID).Msg("feed cache set failed")
	}

	metrics.ObserveFeed(false, time.Since(start))
	return &domain.FeedResult{Recommendations: recs, CacheHit: false}, nil
}

func (s *Service) generateFeed(ctx context.Context, userID int64, limit int) ([]domain.ScoredCandidate, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	pool, err := s.selectCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	scored := s.scorer.Score(scoring.ScoreInput{
		UserID:            userID,
		Candidates:        pool.candidates,
		Profile:           pool.profile,
		HasHistory:        pool.hasHistory,
		SimilarUserCount:  pool.similarUsers,
		SimilarEngagement: pool.engagement,
		Now:               s.now(),
	})

	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int("candidates", len(pool.candidates)).
		Int("scored", len(scored)).
		Int("similar_users", pool.similarUsers).
		Bool("cold_start", !pool.hasHistory).
		Msg("feed scored")

	return scoring.Assemble(scored, limit), nil
}

// selectCandidates builds the bounded candidate pool and the collaborative
// inputs. Chefs the user already favorited or booked are excluded.
func (s *Service) selectCandidates(ctx context.Context, userID int64) (*candidatePool, error) {
	var favorites, booked []int64

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ids, err := s.store.GetFavoriteChefIDs(gctx, userID)
		favorites = ids
		return err
	})
	g.Go(func() error {
		ids, err := s.store.GetBookedChefIDs(gctx, userID)
		booked = ids
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch user history: %w", err)
	}

	exclude := unionIDs(favorites, booked)
	pool := &candidatePool{hasHistory: len(exclude) > 0}

	var similarUsers []int64
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		chefs, err := s.store.GetCandidateChefs(gctx, exclude, s.candidatePoolSize)
		if err != nil {
			return fmt.Errorf("fetch candidates: %w", err)
		}
		pool.candidates = chefs
		return nil
	})
	g.Go(func() error {
		if !pool.hasHistory {
			return nil
		}
		ids, err := s.store.GetSimilarUserIDs(gctx, userID, exclude)
		if err != nil {
			return fmt.Errorf("fetch similar users: %w", err)
		}
		similarUsers = ids
		return nil
	})
	g.Go(func() error {
		profile, err := s.store.GetPreferences(gctx, userID)
		if errors.Is(err, domain.ErrPreferencesNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch preferences: %w", err)
		}
		pool.profile = profile
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pool.similarUsers = len(similarUsers)
	pool.engagement = map[int64]int{}
	if len(similarUsers) > 0 && len(pool.candidates) > 0 {
		ids := make([]int64, len(pool.candidates))
		for i, c := range pool.candidates {
			ids[i] = c.ID
		}
		engagement, err := s.store.CountEngagementByUsers(ctx, similarUsers, ids)
		if err != nil {
			return nil, fmt.Errorf("fetch similar-user engagement: %w", err)
		}
		pool.engagement = engagement
	}
	return pool, nil
}

func unionIDs(a, b []int64) []int64 {
	seen := make(map[int64]struct{}, len(a)+len(b))
	out := make([]int64, 0, len(a)+len(b))
	for _, list := range [][]int64{a, b} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
