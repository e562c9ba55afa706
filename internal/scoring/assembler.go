package scoring

import (
	"math"
	"sort"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

const (
	DefaultFeedLimit = 20
	MaxFeedLimit     = 50
)

// Assemble ranks scored candidates by composite score, keeping scoring order
// for ties, and returns at most limit entries rounded to 3 decimals.
func Assemble(scored []domain.ScoredCandidate, limit int) []domain.ScoredCandidate {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}

	ranked := make([]domain.ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for i := range ranked {
		ranked[i].Score = Round(ranked[i].Score, 3)
		b := &ranked[i].Breakdown
		b.Collaborative = Round(b.Collaborative, 3)
		b.ContentBased = Round(b.ContentBased, 3)
		b.Popularity = Round(b.Popularity, 3)
		b.Recency = Round(b.Recency, 3)
		b.Diversity = Round(b.Diversity, 3)
	}
	return ranked
}

func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
