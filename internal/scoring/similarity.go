package scoring

import (
	"math"
	"sort"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

const (
	MaxSimilarChefs = 5

	similaritySpecialtyWeight = 0.5
	similarityPriceWeight     = 0.3
	similarityRatingWeight    = 0.2
	priceDistanceScale        = 1000.0
)

// Similarity compares other against source on shared specialties, price
// distance and rating distance. Chefs with no shared specialty score 0.
func Similarity(source, other domain.ChefCandidate) float64 {
	sourceTags := uniqueTags(source.Specialties)
	if len(sourceTags) == 0 {
		return 0
	}

	otherTags := make(map[string]struct{}, len(other.Specialties))
	for _, t := range other.Specialties {
		otherTags[t] = struct{}{}
	}
	overlap := 0
	for _, t := range sourceTags {
		if _, ok := otherTags[t]; ok {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}

	specialtyScore := float64(overlap) / float64(len(sourceTags))
	priceScore := 1.0 / (1.0 + math.Abs(source.HourlyRate-other.HourlyRate)/priceDistanceScale)
	ratingScore := clamp01(1.0 - math.Abs(source.AverageRating-other.AverageRating)/maxRating)

	return specialtyScore*similaritySpecialtyWeight +
		priceScore*similarityPriceWeight +
		ratingScore*similarityRatingWeight
}

// RankSimilar scores pool against source and returns the closest matches,
// best first, rounded to 3 decimals.
func RankSimilar(source domain.ChefCandidate, pool []domain.ChefCandidate) []domain.SimilarChef {
	similar := make([]domain.SimilarChef, 0, len(pool))
	for _, c := range pool {
		if c.ID == source.ID {
			continue
		}
		if s := Similarity(source, c); s > 0 {
			similar = append(similar, domain.SimilarChef{Chef: c, SimilarityScore: s})
		}
	}

	sort.SliceStable(similar, func(i, j int) bool {
		return similar[i].SimilarityScore > similar[j].SimilarityScore
	})
	if len(similar) > MaxSimilarChefs {
		similar = similar[:MaxSimilarChefs]
	}
	for i := range similar {
		similar[i].SimilarityScore = Round(similar[i].SimilarityScore, 3)
	}
	return similar
}
