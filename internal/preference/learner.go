// Package preference learns a user's cuisine and price preferences from the
// chefs they interact with. The model is deliberately simple: cuisines
// accumulate and the price range only ever widens.
package preference

import (
	"math"
	"time"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

// confidenceSaturation is the interaction count at which confidence reaches 1.
const confidenceSaturation = 20

// Learn folds one chef interaction into profile in place.
// Re-learning the same chef only bumps the interaction count.
func Learn(profile *domain.PreferenceProfile, chef domain.ChefCandidate, now time.Time) {
	profile.PreferredCuisines = unionTags(profile.PreferredCuisines, chef.Specialties)
	profile.PriceRange = widen(profile.PriceRange, chef.HourlyRate)
	profile.InteractionCount++
	profile.ConfidenceLevel = confidence(profile.InteractionCount)
	profile.LastUpdated = now
}

func unionTags(current, incoming []string) []string {
	seen := make(map[string]struct{}, len(current)+len(incoming))
	out := make([]string, 0, len(current)+len(incoming))
	for _, list := range [][]string{current, incoming} {
		for _, tag := range list {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			out = append(out, tag)
		}
	}
	return out
}

func widen(r *domain.PriceRange, rate float64) *domain.PriceRange {
	if r == nil {
		return &domain.PriceRange{Min: rate, Max: rate}
	}
	return &domain.PriceRange{
		Min: math.Min(r.Min, rate),
		Max: math.Max(r.Max, rate),
	}
}

func confidence(count int) float64 {
	return math.Min(float64(count)/confidenceSaturation, 1.0)
}
