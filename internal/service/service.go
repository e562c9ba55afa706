package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/logging"
	"github.com/actuallystonmai/chef-recommendation-service/internal/scoring"
)

const (
	defaultCandidatePoolSize = 100
	defaultBatchConcurrency  = 10
	batchFeedLimit           = 10
)

// Store is the persistence the service reads from and writes to.
type Store interface {
	GetUserByID(ctx context.Context, userID int64) (*domain.User, error)
	GetUserIDsPaginated(ctx context.Context, page, limit int) ([]int64, error)
	CountUsers(ctx context.Context) (int, error)

	GetFavoriteChefIDs(ctx context.Context, userID int64) ([]int64, error)
	GetBookedChefIDs(ctx context.Context, userID int64) ([]int64, error)
	GetSimilarUserIDs(ctx context.Context, userID int64, chefIDs []int64) ([]int64, error)
	CountEngagementByUsers(ctx context.Context, userIDs, chefIDs []int64) (map[int64]int, error)

	GetCandidateChefs(ctx context.Context, excludeIDs []int64, limit int) ([]domain.ChefCandidate, error)
	GetChefByID(ctx context.Context, chefID int64) (*domain.ChefCandidate, error)
	GetSimilarChefPool(ctx context.Context, chefID int64, specialties []string) ([]domain.ChefCandidate, error)
	GetChefActivity(ctx context.Context, recentStart, historicalStart time.Time) ([]domain.ChefActivity, error)

	InsertInteraction(ctx context.Context, e *domain.InteractionEvent) error
	GetPreferences(ctx context.Context, userID int64) (*domain.PreferenceProfile, error)
	UpdatePreferences(ctx context.Context, userID int64, fn func(*domain.PreferenceProfile) error) (*domain.PreferenceProfile, error)
}

// Cache stores generated feeds and trending lists. Errors are logged by the
// service and never fail a request.
type Cache interface {
	GetFeed(ctx context.Context, userID int64, contentType domain.ContentType, limit int) ([]domain.ScoredCandidate, bool, error)
	SetFeed(ctx context.Context, userID int64, contentType domain.ContentType, limit int, recs []domain.ScoredCandidate) error
	GetTrending(ctx context.Context, contentType domain.ContentType, limit int) ([]domain.TrendingEntry, bool, error)
	SetTrending(ctx context.Context, contentType domain.ContentType, limit int, entries []domain.TrendingEntry) error
	ClearUserFeeds(ctx context.Context, userID int64) error
}

type Options struct {
	CandidatePoolSize int
	BatchConcurrency  int

	// Clock defaults to time.Now.
	Clock func() time.Time
}

type Service struct {
	store             Store
	cache             Cache
	scorer            *scoring.Scorer
	candidatePoolSize int
	batchConcurrency  int
	now               func() time.Time
}

func NewService(store Store, cache Cache, scorer *scoring.Scorer, opts Options) *Service {
	if opts.CandidatePoolSize <= 0 {
		opts.CandidatePoolSize = defaultCandidatePoolSize
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = defaultBatchConcurrency
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{
		store:             store,
		cache:             cache,
		scorer:            scorer,
		candidatePoolSize: opts.CandidatePoolSize,
		batchConcurrency:  opts.BatchConcurrency,
		now:               opts.Clock,
	}
}

// GetBatchFeeds generates chef feeds for one page of users. A failure for
// one user is reported in that user's entry and does not fail the batch.
func (s *Service) GetBatchFeeds(ctx context.Context, page, limit int) (*domain.BatchResponse, error) {
	start := time.Now()

	userIDs, err := s.store.GetUserIDsPaginated(ctx, page, limit)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.store.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]domain.BatchUserResult, len(userIDs))
	g := new(errgroup.Group)
	g.SetLimit(s.batchConcurrency)
	for i, userID := range userIDs {
		g.Go(func() error {
			results[i] = s.processUserForBatch(ctx, userID)
			return nil
		})
	}
	_ = g.Wait()

	successCount := 0
	failedCount := 0
	for _, r := range results {
		if r.Status == domain.StatusSuccess {
			successCount++
		} else {
			failedCount++
		}
	}

	return &domain.BatchResponse{
		Page:       page,
		Limit:      limit,
		TotalUsers: totalUsers,
		Results:    results,
		Summary: domain.BatchSummary{
			SuccessCount:     successCount,
			FailedCount:      failedCount,
			ProcessingTimeMs: time.Since(start).Milliseconds(),
		},
		Metadata: domain.BatchMeta{
			GeneratedAt: s.now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (s *Service) processUserForBatch(ctx context.Context, userID int64) domain.BatchUserResult {
	result, err := s.GetPersonalizedFeed(ctx, userID, domain.ContentChef, batchFeedLimit)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Int64("user_id", userID).Msg("batch feed failed")
		code, msg := categorizeError(err)
		return domain.BatchUserResult{
			UserID:  userID,
			Status:  domain.StatusFailed,
			Error:   code,
			Message: msg,
		}
	}

	return domain.BatchUserResult{
		UserID:          userID,
		Recommendations: result.Recommendations,
		Status:          domain.StatusSuccess,
	}
}

func categorizeError(err error) (string, string) {
	if errors.Is(err, domain.ErrUserNotFound) {
		return "user_not_found", "user not found"
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "request_timeout", "request timed out"
	}
	return "internal_error", "an unexpected error occurred"
}

func clampLimit(limit, fallback, max int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}
