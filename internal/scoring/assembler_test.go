package scoring

import (
	"testing"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

func scoredList(scores ...float64) []domain.ScoredCandidate {
	out := make([]domain.ScoredCandidate, len(scores))
	for i, s := range scores {
		out[i] = domain.ScoredCandidate{Chef: domain.ChefCandidate{ID: int64(i + 1)}, Score: s}
	}
	return out
}

func TestAssembleSortsAndTruncates(t *testing.T) {
	ranked := Assemble(scoredList(0.2, 0.9, 0.5, 0.7, 0.1), 3)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 results, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Score < ranked[i].Score {
			t.Errorf("not sorted at %d: %f < %f", i, ranked[i-1].Score, ranked[i].Score)
		}
	}
	if ranked[0].Chef.ID != 2 {
		t.Errorf("expected chef 2 first, got %d", ranked[0].Chef.ID)
	}
}

func TestAssembleStableTies(t *testing.T) {
	ranked := Assemble(scoredList(0.5, 0.5, 0.9, 0.5), 10)

	want := []int64{3, 1, 2, 4}
	for i, id := range want {
		if ranked[i].Chef.ID != id {
			t.Errorf("position %d: expected chef %d, got %d", i, id, ranked[i].Chef.ID)
		}
	}
}

func TestAssembleDefaultLimit(t *testing.T) {
	scores := make([]float64, 30)
	for i := range scores {
		scores[i] = float64(i) / 30
	}

	if got := len(Assemble(scoredList(scores...), 0)); got != DefaultFeedLimit {
		t.Errorf("expected default limit %d, got %d", DefaultFeedLimit, got)
	}
}

func TestAssembleRounds(t *testing.T) {
	in := []domain.ScoredCandidate{{
		Score:     0.77295,
		Breakdown: domain.ScoreBreakdown{Popularity: 0.881515, Recency: 0.716531},
	}}

	ranked := Assemble(in, 1)
	if ranked[0].Score != 0.773 {
		t.Errorf("expected 0.773, got %f", ranked[0].Score)
	}
	if ranked[0].Breakdown.Popularity != 0.882 || ranked[0].Breakdown.Recency != 0.717 {
		t.Errorf("breakdown not rounded: %+v", ranked[0].Breakdown)
	}
	if in[0].Score != 0.77295 {
		t.Error("input was mutated")
	}
}

func TestAssembleEmpty(t *testing.T) {
	if got := Assemble(nil, 5); len(got) != 0 {
		t.Errorf("expected empty, got %d", len(got))
	}
}
