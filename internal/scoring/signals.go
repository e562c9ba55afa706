package scoring

import (
	"math"
	"time"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

const (
	coldStartCollaborative = 0.5

	cuisineMatchWeight = 0.6
	priceMatchBonus    = 0.4

	ratingWeight      = 0.6
	bookingWeight     = 0.4
	maxRating         = 5.0
	bookingLogCeiling = 100.0

	recencyDecayDays = 30.0

	diversityWindow  = 5
	diversityPenalty = 0.2
)

type breakdown struct {
	collaborative float64
	contentBased  float64
	popularity    float64
	recency       float64
	diversity     float64
}

func (b breakdown) toDomain() domain.ScoreBreakdown {
	return domain.ScoreBreakdown{
		Collaborative: b.collaborative,
		ContentBased:  b.contentBased,
		Popularity:    b.popularity,
		Recency:       b.recency,
		Diversity:     b.diversity,
	}
}

// collaborativeSignal is the share of similar users who already engaged with
// the candidate. Users without history, or without any similar users, get the
// neutral cold-start value.
func collaborativeSignal(hasHistory bool, similarUsers, engaged int) float64 {
	if !hasHistory || similarUsers == 0 {
		return coldStartCollaborative
	}
	return clamp01(float64(engaged) / float64(similarUsers))
}

// contentSignal matches the chef against learned preferences. Zero means no
// learned preferences at all, not a mismatch.
func contentSignal(profile *domain.PreferenceProfile, chef domain.ChefCandidate) float64 {
	if !profile.HasPreferences() {
		return 0
	}

	score := 0.0
	specialties := uniqueTags(chef.Specialties)
	if len(specialties) > 0 && len(profile.PreferredCuisines) > 0 {
		preferred := make(map[string]struct{}, len(profile.PreferredCuisines))
		for _, c := range profile.PreferredCuisines {
			preferred[c] = struct{}{}
		}
		matches := 0
		for _, s := range specialties {
			if _, ok := preferred[s]; ok {
				matches++
			}
		}
		score += math.Min(float64(matches)/float64(len(specialties)), 1.0) * cuisineMatchWeight
	}

	if profile.PriceRange.Contains(chef.HourlyRate) {
		score += priceMatchBonus
	}
	return clamp01(score)
}

// popularitySignal blends rating with a log-dampened booking count so one
// very busy chef cannot dominate every feed.
func popularitySignal(averageRating float64, totalBookings int) float64 {
	ratingScore := clamp01(averageRating / maxRating)
	bookingScore := math.Min(math.Log(float64(totalBookings)+1)/math.Log(bookingLogCeiling), 1.0)
	return clamp01(ratingScore*ratingWeight + bookingScore*bookingWeight)
}

// recencySignal decays exponentially with account age: 1.0 at day 0, ~0.37 at day 30.
func recencySignal(createdAt, now time.Time) float64 {
	ageDays := now.Sub(createdAt).Hours() / 24.0
	if ageDays < 0 {
		ageDays = 0
	}
	return math.Exp(-ageDays / recencyDecayDays)
}

// diversitySignal penalizes overlap with the most recently scored candidates,
// in scoring order rather than final rank.
func diversitySignal(chef domain.ChefCandidate, scored []domain.ScoredCandidate) float64 {
	if len(scored) == 0 || len(chef.Specialties) == 0 {
		return 1.0
	}

	window := scored
	if len(window) > diversityWindow {
		window = window[len(window)-diversityWindow:]
	}

	similar := 0
	for _, prev := range window {
		if overlaps(chef.Specialties, prev.Chef.Specialties) {
			similar++
		}
	}
	return math.Max(1.0-float64(similar)*diversityPenalty, 0.0)
}

func overlaps(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a))
	for _, s := range a {
		set[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

func uniqueTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
