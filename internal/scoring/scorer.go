package scoring

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/logging"
	"github.com/actuallystonmai/chef-recommendation-service/internal/metrics"
)

// ScoreInput is a fully materialized scoring request. Candidates are scored
// in slice order, which the diversity signal depends on.
type ScoreInput struct {
	UserID     int64
	Candidates []domain.ChefCandidate
	Profile    *domain.PreferenceProfile

	// HasHistory is true when the user has any favorite or booking.
	HasHistory bool

	// SimilarUserCount is the size of the similar-user set.
	SimilarUserCount int

	// SimilarEngagement maps chef ID to the number of distinct similar users
	// who favorited or booked that chef.
	SimilarEngagement map[int64]int

	Now time.Time
}

type Scorer struct {
	weights Weights
	log     zerolog.Logger
}

func NewScorer(weights Weights) *Scorer {
	return &Scorer{
		weights: weights,
		log:     logging.WithComponent("scorer"),
	}
}

func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score evaluates every candidate against the five signals. Candidates that
// fail validation are logged and skipped; the rest of the batch is unaffected.
// The result is in scoring order and unrounded.
func (s *Scorer) Score(input ScoreInput) []domain.ScoredCandidate {
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	scored := make([]domain.ScoredCandidate, 0, len(input.Candidates))
	for _, chef := range input.Candidates {
		if err := validateCandidate(chef); err != nil {
			s.log.Warn().
				Err(err).
				Int64("user_id", input.UserID).
				Int64("chef_id", chef.ID).
				Msg("skipping candidate")
			metrics.RecordSkippedCandidate()
			continue
		}

		b := breakdown{
			collaborative: collaborativeSignal(input.HasHistory, input.SimilarUserCount, input.SimilarEngagement[chef.ID]),
			contentBased:  contentSignal(input.Profile, chef),
			popularity:    popularitySignal(chef.AverageRating, chef.TotalBookings),
			recency:       recencySignal(chef.CreatedAt, now),
			diversity:     diversitySignal(chef, scored),
		}

		scored = append(scored, domain.ScoredCandidate{
			Chef:      chef,
			Score:     clamp01(s.weights.combine(b)),
			Breakdown: b.toDomain(),
		})
	}
	return scored
}

var errInvalidCandidate = errors.New("invalid candidate")

func validateCandidate(c domain.ChefCandidate) error {
	switch {
	case math.IsNaN(c.AverageRating) || c.AverageRating < 0 || c.AverageRating > maxRating:
		return fmt.Errorf("%w: average rating %v outside [0,5]", errInvalidCandidate, c.AverageRating)
	case math.IsNaN(c.HourlyRate) || math.IsInf(c.HourlyRate, 0) || c.HourlyRate < 0:
		return fmt.Errorf("%w: hourly rate %v", errInvalidCandidate, c.HourlyRate)
	case c.TotalBookings < 0:
		return fmt.Errorf("%w: negative booking count %d", errInvalidCandidate, c.TotalBookings)
	}
	for _, s := range c.Specialties {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: blank specialty tag", errInvalidCandidate)
		}
	}
	return nil
}
