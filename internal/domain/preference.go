package domain

import "time"

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func (r *PriceRange) Contains(rate float64) bool {
	return r != nil && rate >= r.Min && rate <= r.Max
}

// PreferenceProfile is the learned per-user profile.
// PreferredCuisines keeps insertion order and holds no duplicates.
type PreferenceProfile struct {
	UserID            int64       `json:"user_id"`
	PreferredCuisines []string    `json:"preferred_cuisines"`
	PriceRange        *PriceRange `json:"preferred_price_range"`
	ConfidenceLevel   float64     `json:"confidence_level"`
	InteractionCount  int         `json:"interaction_count"`
	LastUpdated       time.Time   `json:"last_updated"`
}

// HasPreferences reports whether anything has been learned yet.
func (p *PreferenceProfile) HasPreferences() bool {
	return p != nil && (len(p.PreferredCuisines) > 0 || p.PriceRange != nil)
}
