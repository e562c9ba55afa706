// Package trending ranks chefs by short-window engagement velocity. It holds
// no state and knows nothing about individual users.
package trending

import (
	"sort"
	"time"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50

	// RecentWindow is the "now" window; HistoricalWindow is the baseline
	// immediately preceding it.
	RecentWindow     = 24 * time.Hour
	HistoricalWindow = 7 * 24 * time.Hour

	historicalDays = 7.0

	bookingWeight  = 2.0
	velocityWeight = 10.0

	hotThreshold = 20.0
	BadgeHot     = "hot"
	BadgeRising  = "rising"
)

// Window returns the boundaries used to bucket activity for a run at now:
// recent is [recentStart, now], historical is [historicalStart, recentStart).
func Window(now time.Time) (recentStart, historicalStart time.Time) {
	recentStart = now.Add(-RecentWindow)
	historicalStart = recentStart.Add(-HistoricalWindow)
	return recentStart, historicalStart
}

// Velocity is the growth of recent bookings over the historical daily
// average. A chef with no baseline grows by its full recent count.
func Velocity(recentBookings, historicalBookings int) float64 {
	historicalDaily := float64(historicalBookings) / historicalDays
	if historicalDaily > 0 {
		return (float64(recentBookings) - historicalDaily) / historicalDaily
	}
	return float64(recentBookings)
}

func Score(recentBookings, recentInteractions int, velocity float64) float64 {
	return float64(recentBookings)*bookingWeight + float64(recentInteractions) + velocity*velocityWeight
}

func Badge(score float64) string {
	if score > hotThreshold {
		return BadgeHot
	}
	return BadgeRising
}

// Calculate keeps chefs with a strictly positive trending score and returns
// the top limit, highest first.
func Calculate(activity []domain.ChefActivity, limit int) []domain.TrendingEntry {
	if limit <= 0 {
		limit = DefaultLimit
	}

	entries := make([]domain.TrendingEntry, 0, len(activity))
	for _, a := range activity {
		velocity := Velocity(a.RecentBookings, a.HistoricalBookings)
		score := Score(a.RecentBookings, a.RecentInteractions, velocity)
		if score <= 0 {
			continue
		}
		entries = append(entries, domain.TrendingEntry{
			Chef:                   a.Chef,
			TrendingScore:          score,
			RecentBookings:         a.RecentBookings,
			RecentInteractionCount: a.RecentInteractions,
			Velocity:               velocity,
			Badge:                  Badge(score),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TrendingScore > entries[j].TrendingScore
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
