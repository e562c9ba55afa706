package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/chef-recommendation-service/internal/scoring"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testChefs() []domain.ChefCandidate {
	return []domain.ChefCandidate{
		{ID: 1, Name: "Marco", Specialties: []string{"Italian"}, HourlyRate: 50, AverageRating: 4.5, TotalBookings: 10, CreatedAt: testNow.AddDate(0, 0, -10), IsAvailable: true, IsVerified: true},
		{ID: 2, Name: "Claire", Specialties: []string{"Italian", "French"}, HourlyRate: 80, AverageRating: 4.0, CreatedAt: testNow.AddDate(0, 0, -40), IsAvailable: true, IsVerified: true},
		{ID: 3, Name: "Niran", Specialties: []string{"Thai"}, HourlyRate: 30, AverageRating: 3.0, TotalBookings: 3, CreatedAt: testNow.AddDate(0, 0, -5), IsAvailable: true, IsVerified: true},
		{ID: 4, Name: "Kenji", Specialties: []string{"Japanese"}, HourlyRate: 120, AverageRating: 5.0, CreatedAt: testNow, IsAvailable: false, IsVerified: true},
	}
}

func newTestService(store *fakeStore, cache *fakeCache) *Service {
	return NewService(store, cache, scoring.NewScorer(scoring.DefaultWeights()), Options{
		Clock: func() time.Time { return testNow },
	})
}

func feedIDs(recs []domain.ScoredCandidate) []int64 {
	ids := make([]int64, len(recs))
	for i, r := range recs {
		ids[i] = r.Chef.ID
	}
	return ids
}

func TestGetPersonalizedFeedColdStart(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	svc := newTestService(store, newFakeCache())

	result, err := svc.GetPersonalizedFeed(context.Background(), 1, domain.ContentChef, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CacheHit {
		t.Error("first request should not be a cache hit")
	}
	if len(result.Recommendations) != 3 {
		t.Fatalf("expected 3 available chefs, got %d", len(result.Recommendations))
	}
	for _, r := range result.Recommendations {
		if r.Breakdown.Collaborative != 0.5 {
			t.Errorf("chef %d: expected neutral collaborative 0.5, got %v", r.Chef.ID, r.Breakdown.Collaborative)
		}
		if r.Breakdown.ContentBased != 0 {
			t.Errorf("chef %d: expected content 0 without preferences, got %v", r.Chef.ID, r.Breakdown.ContentBased)
		}
		if r.Score < 0 || r.Score > 1 {
			t.Errorf("chef %d: score %v out of range", r.Chef.ID, r.Score)
		}
	}
	for i := 1; i < len(result.Recommendations); i++ {
		if result.Recommendations[i-1].Score < result.Recommendations[i].Score {
			t.Errorf("feed not sorted descending at %d", i)
		}
	}
}

func TestGetPersonalizedFeedCollaborative(t *testing.T) {
	store := newFakeStore()
	for id := int64(1); id <= 3; id++ {
		store.addUser(id)
	}
	store.chefs = testChefs()
	store.favorites[1] = []int64{1}
	store.favorites[2] = []int64{1, 2}
	store.bookings[3] = []int64{1}
	svc := newTestService(store, newFakeCache())

	result, err := svc.GetPersonalizedFeed(context.Background(), 1, domain.ContentChef, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ids := feedIDs(result.Recommendations)
	if slices.Contains(ids, 1) {
		t.Fatal("favorited chef must be excluded")
	}

	collab := map[int64]float64{}
	for _, r := range result.Recommendations {
		collab[r.Chef.ID] = r.Breakdown.Collaborative
	}
	if collab[2] != 0.5 {
		t.Errorf("chef 2: expected 1 of 2 similar users engaged = 0.5, got %v", collab[2])
	}
	if collab[3] != 0 {
		t.Errorf("chef 3: expected 0, got %v", collab[3])
	}
}

func TestGetPersonalizedFeedExcludesBookedChefs(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	store.bookings[1] = []int64{2, 3}
	svc := newTestService(store, newFakeCache())

	result, err := svc.GetPersonalizedFeed(context.Background(), 1, domain.ContentChef, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids := feedIDs(result.Recommendations); !slices.Equal(ids, []int64{1}) {
		t.Errorf("expected only chef 1, got %v", ids)
	}
	// History but nobody similar is still neutral.
	if got := result.Recommendations[0].Breakdown.Collaborative; got != 0.5 {
		t.Errorf("expected 0.5 with no similar users, got %v", got)
	}
}

func TestGetPersonalizedFeedCaches(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	cache := newFakeCache()
	svc := newTestService(store, cache)
	ctx := context.Background()

	first, err := svc.GetPersonalizedFeed(ctx, 1, "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.GetPersonalizedFeed(ctx, 1, domain.ContentChef, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.CacheHit {
		t.Error("second request should hit the cache")
	}
	if !slices.Equal(feedIDs(first.Recommendations), feedIDs(second.Recommendations)) {
		t.Error("cached feed differs from generated feed")
	}
}

func TestGetPersonalizedFeedLimit(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	svc := newTestService(store, newFakeCache())

	result, err := svc.GetPersonalizedFeed(context.Background(), 1, domain.ContentChef, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations) != 2 {
		t.Errorf("expected 2 recommendations, got %d", len(result.Recommendations))
	}
}

func TestGetPersonalizedFeedErrors(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	svc := newTestService(store, newFakeCache())
	ctx := context.Background()

	tests := []struct {
		name        string
		userID      int64
		contentType domain.ContentType
		want        error
	}{
		{"meal", 1, domain.ContentMeal, domain.ErrMealNotImplemented},
		{"unknown type", 1, "dessert", domain.ErrUnsupportedContentType},
		{"unknown user", 42, domain.ContentChef, domain.ErrUserNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.GetPersonalizedFeed(ctx, tt.userID, tt.contentType, 10)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestGetPersonalizedFeedEmptyCatalog(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	svc := newTestService(store, newFakeCache())

	result, err := svc.GetPersonalizedFeed(context.Background(), 1, domain.ContentChef, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("expected empty feed, got %d", len(result.Recommendations))
	}
}

func TestTrackInteractionLearnsPreferences(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	cache := newFakeCache()
	svc := newTestService(store, cache)
	ctx := context.Background()

	req := domain.TrackRequest{UserID: 1, ContentType: domain.ContentChef, ContentID: 2, InteractionType: domain.InteractionLike}
	for range 2 {
		result, err := svc.TrackInteraction(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.PreferencesUpdated {
			t.Error("expected preferences to be updated")
		}
		if result.Event.Weight != 3 {
			t.Errorf("expected like weight 3, got %d", result.Event.Weight)
		}
	}

	if len(store.events) != 2 {
		t.Fatalf("expected 2 ledger entries, got %d", len(store.events))
	}

	p := store.preferences[1]
	if !slices.Equal(p.PreferredCuisines, []string{"Italian", "French"}) {
		t.Errorf("expected cuisines [Italian French], got %v", p.PreferredCuisines)
	}
	if p.InteractionCount != 2 {
		t.Errorf("expected interaction count 2, got %d", p.InteractionCount)
	}
	if p.PriceRange == nil || p.PriceRange.Min != 80 || p.PriceRange.Max != 80 {
		t.Errorf("expected price range [80,80], got %+v", p.PriceRange)
	}
	if p.ConfidenceLevel != 0.1 {
		t.Errorf("expected confidence 0.1, got %v", p.ConfidenceLevel)
	}
	if !p.LastUpdated.Equal(testNow) {
		t.Errorf("expected last updated %v, got %v", testNow, p.LastUpdated)
	}
	if !slices.Contains(cache.cleared, 1) {
		t.Error("expected user feeds to be invalidated")
	}
}

func TestTrackInteractionWidensPriceRange(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	svc := newTestService(store, newFakeCache())
	ctx := context.Background()

	for _, chefID := range []int64{1, 2, 3} {
		req := domain.TrackRequest{UserID: 1, ContentType: domain.ContentChef, ContentID: chefID, InteractionType: domain.InteractionView}
		if _, err := svc.TrackInteraction(ctx, req); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	p := store.preferences[1]
	if p.PriceRange.Min != 30 || p.PriceRange.Max != 80 {
		t.Errorf("expected price range [30,80], got %+v", p.PriceRange)
	}
	if !slices.Equal(p.PreferredCuisines, []string{"Italian", "French", "Thai"}) {
		t.Errorf("unexpected cuisines %v", p.PreferredCuisines)
	}
}

func TestTrackInteractionWeights(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	svc := newTestService(store, newFakeCache())

	tests := []struct {
		interaction domain.InteractionType
		want        int
	}{
		{"view", 1},
		{"like", 3},
		{"book", 5},
		{"share", 4},
		{"skip", 1},
		{"bookmark", 1},
		{" BOOK ", 5},
	}
	for _, tt := range tests {
		t.Run(string(tt.interaction), func(t *testing.T) {
			result, err := svc.TrackInteraction(context.Background(), domain.TrackRequest{
				UserID: 1, ContentType: domain.ContentChef, ContentID: 1, InteractionType: tt.interaction,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Event.Weight != tt.want {
				t.Errorf("expected weight %d, got %d", tt.want, result.Event.Weight)
			}
		})
	}
}

func TestTrackInteractionUnknownTypesShareOneSeries(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	svc := newTestService(store, newFakeCache())
	ctx := context.Background()

	other := metrics.InteractionsTracked.WithLabelValues("meal", "other")
	before := testutil.ToFloat64(other)
	seriesBefore := testutil.CollectAndCount(metrics.InteractionsTracked)

	for i := range 50 {
		_, err := svc.TrackInteraction(ctx, domain.TrackRequest{
			UserID: 1, ContentType: domain.ContentMeal, ContentID: 1, InteractionType: domain.InteractionType(fmt.Sprintf("x%d", i)),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := testutil.CollectAndCount(metrics.InteractionsTracked) - seriesBefore; got > 0 {
		t.Errorf("expected no new series, got %d", got)
	}
	if got := testutil.ToFloat64(other) - before; got != 50 {
		t.Errorf("expected 50 under the other label, got %v", got)
	}
	if store.events[7].InteractionType != "x7" {
		t.Errorf("ledger should keep the raw type, got %q", store.events[7].InteractionType)
	}
}

func TestTrackInteractionBlankType(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	svc := newTestService(store, newFakeCache())

	result, err := svc.TrackInteraction(context.Background(), domain.TrackRequest{
		UserID: 1, ContentType: domain.ContentMeal, ContentID: 1, InteractionType: "   ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Event.InteractionType != domain.InteractionUnknown || result.Event.Weight != 1 {
		t.Errorf("expected unknown with weight 1, got %q/%d", result.Event.InteractionType, result.Event.Weight)
	}
}

func TestTrackInteractionLearnerFailureIsNotReturned(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	store.updateErr = errors.New("deadlock detected")
	svc := newTestService(store, newFakeCache())

	result, err := svc.TrackInteraction(context.Background(), domain.TrackRequest{
		UserID: 1, ContentType: domain.ContentChef, ContentID: 1, InteractionType: domain.InteractionBook,
	})
	if err != nil {
		t.Fatalf("learner failure must not fail the write: %v", err)
	}
	if result.PreferencesUpdated {
		t.Error("expected preferences not updated")
	}
	if len(store.events) != 1 {
		t.Errorf("expected the event to be recorded, got %d events", len(store.events))
	}
}

func TestTrackInteractionWriteFailure(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	store.insertErr = errors.New("connection refused")
	cache := newFakeCache()
	svc := newTestService(store, cache)

	_, err := svc.TrackInteraction(context.Background(), domain.TrackRequest{
		UserID: 1, ContentType: domain.ContentChef, ContentID: 1, InteractionType: domain.InteractionView,
	})
	if !errors.Is(err, store.insertErr) {
		t.Fatalf("expected insert error, got %v", err)
	}
	if _, ok := store.preferences[1]; ok {
		t.Error("preferences must not change when the write fails")
	}
	if len(cache.cleared) != 0 {
		t.Error("cache must not be invalidated when the write fails")
	}
}

func TestTrackInteractionSkipsLearning(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	svc := newTestService(store, newFakeCache())
	ctx := context.Background()

	tests := []struct {
		name string
		req  domain.TrackRequest
	}{
		{"missing chef", domain.TrackRequest{UserID: 1, ContentType: domain.ContentChef, ContentID: 999, InteractionType: domain.InteractionLike}},
		{"meal content", domain.TrackRequest{UserID: 1, ContentType: domain.ContentMeal, ContentID: 7, InteractionType: domain.InteractionLike}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.TrackInteraction(ctx, tt.req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.PreferencesUpdated {
				t.Error("expected no preference update")
			}
		})
	}
	if _, ok := store.preferences[1]; ok {
		t.Error("expected no profile to be created")
	}
	if len(store.events) != 2 {
		t.Errorf("expected both events recorded, got %d", len(store.events))
	}
}

func TestTrackInteractionRejects(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	svc := newTestService(store, newFakeCache())
	ctx := context.Background()

	_, err := svc.TrackInteraction(ctx, domain.TrackRequest{UserID: 1, ContentType: "recipe", ContentID: 1, InteractionType: domain.InteractionView})
	if !errors.Is(err, domain.ErrUnsupportedContentType) {
		t.Errorf("expected ErrUnsupportedContentType, got %v", err)
	}

	_, err = svc.TrackInteraction(ctx, domain.TrackRequest{UserID: 9, ContentType: domain.ContentChef, ContentID: 1, InteractionType: domain.InteractionView})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
	if len(store.events) != 0 {
		t.Errorf("expected no events, got %d", len(store.events))
	}
}

func TestFeedUsesLearnedPreferences(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.chefs = testChefs()
	cache := newFakeCache()
	svc := newTestService(store, cache)
	ctx := context.Background()

	if _, err := svc.GetPersonalizedFeed(ctx, 1, domain.ContentChef, 20); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.TrackInteraction(ctx, domain.TrackRequest{
		UserID: 1, ContentType: domain.ContentChef, ContentID: 3, InteractionType: domain.InteractionLike,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	result, err := svc.GetPersonalizedFeed(ctx, 1, domain.ContentChef, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CacheHit {
		t.Error("feed should be regenerated after tracking")
	}
	for _, r := range result.Recommendations {
		if r.Chef.ID == 3 && r.Breakdown.ContentBased != 1 {
			t.Errorf("chef 3: expected full content match, got %v", r.Breakdown.ContentBased)
		}
		if r.Chef.ID == 1 && r.Breakdown.ContentBased != 0 {
			t.Errorf("chef 1: expected no content match, got %v", r.Breakdown.ContentBased)
		}
	}
}

func TestGetTrending(t *testing.T) {
	chefs := testChefs()
	store := newFakeStore()
	store.activity = []domain.ChefActivity{
		{Chef: chefs[0], RecentBookings: 3, RecentInteractions: 2},
		{Chef: chefs[1], RecentBookings: 2, HistoricalBookings: 7},
		{Chef: chefs[2], RecentBookings: 1, HistoricalBookings: 3},
		{Chef: chefs[3], RecentBookings: 1, HistoricalBookings: 14},
		{Chef: domain.ChefCandidate{ID: 5}},
	}
	cache := newFakeCache()
	svc := newTestService(store, cache)

	result, err := svc.GetTrending(context.Background(), domain.ContentChef, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []struct {
		id       int64
		score    float64
		velocity float64
		badge    string
	}{
		{1, 38, 3, "hot"},
		{3, 15.33, 1.33, "rising"},
		{2, 14, 1, "rising"},
	}
	if len(result.Trending) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(result.Trending))
	}
	for i, w := range want {
		got := result.Trending[i]
		if got.Chef.ID != w.id || got.TrendingScore != w.score || got.Velocity != w.velocity || got.Badge != w.badge {
			t.Errorf("entry %d: expected %+v, got id=%d score=%v velocity=%v badge=%s",
				i, w, got.Chef.ID, got.TrendingScore, got.Velocity, got.Badge)
		}
	}

	again, err := svc.GetTrending(context.Background(), domain.ContentChef, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.CacheHit {
		t.Error("second trending request should hit the cache")
	}
}

func TestGetTrendingMeal(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeCache())
	if _, err := svc.GetTrending(context.Background(), domain.ContentMeal, 10); !errors.Is(err, domain.ErrMealNotImplemented) {
		t.Errorf("expected ErrMealNotImplemented, got %v", err)
	}
}

func TestGetSimilarChefs(t *testing.T) {
	store := newFakeStore()
	store.chefs = testChefs()
	svc := newTestService(store, newFakeCache())

	similar, err := svc.GetSimilarChefs(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(similar) != 1 || similar[0].Chef.ID != 2 {
		t.Fatalf("expected only chef 2, got %+v", similar)
	}
	if similar[0].SimilarityScore <= 0 || similar[0].SimilarityScore > 1 {
		t.Errorf("similarity %v out of range", similar[0].SimilarityScore)
	}

	if _, err := svc.GetSimilarChefs(context.Background(), 404); !errors.Is(err, domain.ErrChefNotFound) {
		t.Errorf("expected ErrChefNotFound, got %v", err)
	}
}

func TestGetPreferences(t *testing.T) {
	store := newFakeStore()
	store.addUser(1)
	store.addUser(2)
	store.preferences[2] = &domain.PreferenceProfile{UserID: 2, PreferredCuisines: []string{"Thai"}, InteractionCount: 4, ConfidenceLevel: 0.2}
	svc := newTestService(store, newFakeCache())
	ctx := context.Background()

	empty, err := svc.GetPreferences(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if empty.ConfidenceLevel != 0 || len(empty.PreferredCuisines) != 0 || empty.PriceRange != nil {
		t.Errorf("expected empty profile, got %+v", empty)
	}

	learned, err := svc.GetPreferences(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if learned.InteractionCount != 4 {
		t.Errorf("expected interaction count 4, got %d", learned.InteractionCount)
	}

	if _, err := svc.GetPreferences(ctx, 3); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

type missingUserStore struct {
	*fakeStore
	missing int64
}

func (s missingUserStore) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	if userID == s.missing {
		return nil, domain.ErrUserNotFound
	}
	return s.fakeStore.GetUserByID(ctx, userID)
}

func TestGetBatchFeeds(t *testing.T) {
	store := newFakeStore()
	for id := int64(1); id <= 3; id++ {
		store.addUser(id)
	}
	store.chefs = testChefs()
	svc := NewService(missingUserStore{fakeStore: store, missing: 2}, newFakeCache(),
		scoring.NewScorer(scoring.DefaultWeights()), Options{BatchConcurrency: 2, Clock: func() time.Time { return testNow }})

	resp, err := svc.GetBatchFeeds(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.TotalUsers != 3 || len(resp.Results) != 3 {
		t.Fatalf("expected 3 users, got total=%d results=%d", resp.TotalUsers, len(resp.Results))
	}
	if resp.Summary.SuccessCount != 2 || resp.Summary.FailedCount != 1 {
		t.Errorf("expected 2 success / 1 failed, got %+v", resp.Summary)
	}

	failed := resp.Results[1]
	if failed.UserID != 2 || failed.Status != domain.StatusFailed || failed.Error != "user_not_found" {
		t.Errorf("unexpected failed entry %+v", failed)
	}
	if ok := resp.Results[0]; ok.Status != domain.StatusSuccess || len(ok.Recommendations) != 3 {
		t.Errorf("unexpected success entry %+v", ok)
	}
	if resp.Metadata.GeneratedAt != "2026-03-01T12:00:00Z" {
		t.Errorf("unexpected generated_at %q", resp.Metadata.GeneratedAt)
	}
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{domain.ErrUserNotFound, "user_not_found"},
		{context.DeadlineExceeded, "request_timeout"},
		{errors.New("boom"), "internal_error"},
	}
	for _, tt := range tests {
		if got, _ := categorizeError(tt.err); got != tt.want {
			t.Errorf("categorizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
