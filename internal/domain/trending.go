package domain

// ChefActivity is the windowed engagement of one available chef.
type ChefActivity struct {
	Chef               ChefCandidate
	RecentBookings     int
	HistoricalBookings int
	RecentInteractions int
}

type TrendingEntry struct {
	Chef                   ChefCandidate `json:"chef"`
	TrendingScore          float64       `json:"trending_score"`
	RecentBookings         int           `json:"recent_bookings"`
	RecentInteractionCount int           `json:"recent_interactions"`
	Velocity               float64       `json:"growth_velocity"`
	Badge                  string        `json:"badge"`
}

type TrendingResult struct {
	Trending []TrendingEntry
	CacheHit bool
}
