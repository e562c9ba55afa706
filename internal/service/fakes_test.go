package service

import (
	"context"
	"sync"
	"time"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

type fakeStore struct {
	mu sync.Mutex

	users       map[int64]domain.User
	chefs       []domain.ChefCandidate
	favorites   map[int64][]int64
	bookings    map[int64][]int64
	preferences map[int64]*domain.PreferenceProfile
	activity    []domain.ChefActivity
	events      []domain.InteractionEvent

	insertErr error
	updateErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[int64]domain.User{},
		favorites:   map[int64][]int64{},
		bookings:    map[int64][]int64{},
		preferences: map[int64]*domain.PreferenceProfile{},
	}
}

func (f *fakeStore) addUser(id int64) {
	f.users[id] = domain.User{ID: id, Username: "user"}
}

func (f *fakeStore) GetUserByID(_ context.Context, userID int64) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeStore) GetUserIDsPaginated(_ context.Context, page, limit int) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.users))
	for id := int64(1); len(ids) < len(f.users); id++ {
		if _, ok := f.users[id]; ok {
			ids = append(ids, id)
		}
	}
	start := (page - 1) * limit
	if start >= len(ids) {
		return []int64{}, nil
	}
	end := min(start+limit, len(ids))
	return ids[start:end], nil
}

func (f *fakeStore) CountUsers(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.users), nil
}

func (f *fakeStore) GetFavoriteChefIDs(_ context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.favorites[userID], nil
}

func (f *fakeStore) GetBookedChefIDs(_ context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bookings[userID], nil
}

func (f *fakeStore) engaged(userID, chefID int64) bool {
	for _, id := range f.favorites[userID] {
		if id == chefID {
			return true
		}
	}
	for _, id := range f.bookings[userID] {
		if id == chefID {
			return true
		}
	}
	return false
}

func (f *fakeStore) GetSimilarUserIDs(_ context.Context, userID int64, chefIDs []int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []int64
	for id := range f.users {
		if id == userID {
			continue
		}
		for _, chefID := range chefIDs {
			if f.engaged(id, chefID) {
				out = append(out, id)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeStore) CountEngagementByUsers(_ context.Context, userIDs, chefIDs []int64) (map[int64]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[int64]int{}
	for _, chefID := range chefIDs {
		for _, userID := range userIDs {
			if f.engaged(userID, chefID) {
				counts[chefID]++
			}
		}
	}
	return counts, nil
}

func (f *fakeStore) GetCandidateChefs(_ context.Context, excludeIDs []int64, limit int) ([]domain.ChefCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	excluded := map[int64]bool{}
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var out []domain.ChefCandidate
	for _, c := range f.chefs {
		if !c.IsAvailable || excluded[c.ID] {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeStore) GetChefByID(_ context.Context, chefID int64) (*domain.ChefCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.chefs {
		if c.ID == chefID {
			return &c, nil
		}
	}
	return nil, domain.ErrChefNotFound
}

func (f *fakeStore) GetSimilarChefPool(_ context.Context, chefID int64, specialties []string) ([]domain.ChefCandidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.ChefCandidate
	for _, c := range f.chefs {
		if c.ID == chefID || !c.IsAvailable || !c.IsVerified {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) GetChefActivity(_ context.Context, _, _ time.Time) ([]domain.ChefActivity, error) {
	return f.activity, nil
}

func (f *fakeStore) InsertInteraction(_ context.Context, e *domain.InteractionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	e.ID = int64(len(f.events) + 1)
	e.CreatedAt = time.Now()
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeStore) GetPreferences(_ context.Context, userID int64) (*domain.PreferenceProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.preferences[userID]
	if !ok {
		return nil, domain.ErrPreferencesNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) UpdatePreferences(_ context.Context, userID int64, fn func(*domain.PreferenceProfile) error) (*domain.PreferenceProfile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	p, ok := f.preferences[userID]
	if !ok {
		p = &domain.PreferenceProfile{UserID: userID}
	}
	cp := *p
	if err := fn(&cp); err != nil {
		return nil, err
	}
	f.preferences[userID] = &cp
	return &cp, nil
}

type fakeCache struct {
	mu       sync.Mutex
	feeds    map[int64][]domain.ScoredCandidate
	trending []domain.TrendingEntry
	cleared  []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{feeds: map[int64][]domain.ScoredCandidate{}}
}

func (c *fakeCache) GetFeed(_ context.Context, userID int64, _ domain.ContentType, _ int) ([]domain.ScoredCandidate, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	recs, ok := c.feeds[userID]
	return recs, ok, nil
}

func (c *fakeCache) SetFeed(_ context.Context, userID int64, _ domain.ContentType, _ int, recs []domain.ScoredCandidate) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.feeds[userID] = recs
	return nil
}

func (c *fakeCache) GetTrending(_ context.Context, _ domain.ContentType, _ int) ([]domain.TrendingEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.trending, c.trending != nil, nil
}

func (c *fakeCache) SetTrending(_ context.Context, _ domain.ContentType, _ int, entries []domain.TrendingEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trending = entries
	return nil
}

func (c *fakeCache) ClearUserFeeds(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.feeds, userID)
	c.cleared = append(c.cleared, userID)
	return nil
}
