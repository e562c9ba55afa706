package scoring

import (
	"fmt"
	"math"
)

const weightSumTolerance = 1e-9

// Weights is the fixed blend of the five feed signals. The zero value is not
// usable; start from DefaultWeights.
type Weights struct {
	Collaborative float64 `json:"collaborative"`
	ContentBased  float64 `json:"content_based"`
	Popularity    float64 `json:"popularity"`
	Recency       float64 `json:"recency"`
	Diversity     float64 `json:"diversity"`
}

func DefaultWeights() Weights {
	return Weights{
		Collaborative: 0.35,
		ContentBased:  0.25,
		Popularity:    0.20,
		Recency:       0.10,
		Diversity:     0.10,
	}
}

func (w Weights) Sum() float64 {
	return w.Collaborative + w.ContentBased + w.Popularity + w.Recency + w.Diversity
}

// Validate requires non-negative weights summing to 1 so the composite stays in [0,1].
func (w Weights) Validate() error {
	for name, v := range w.ToMap() {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("weight %s must be a non-negative number, got %v", name, v)
		}
	}
	if sum := w.Sum(); math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %.6f", sum)
	}
	return nil
}

func (w Weights) ToMap() map[string]float64 {
	return map[string]float64{
		"collaborative": w.Collaborative,
		"content_based": w.ContentBased,
		"popularity":    w.Popularity,
		"recency":       w.Recency,
		"diversity":     w.Diversity,
	}
}

func (w Weights) combine(b breakdown) float64 {
	return b.collaborative*w.Collaborative +
		b.contentBased*w.ContentBased +
		b.popularity*w.Popularity +
		b.recency*w.Recency +
		b.diversity*w.Diversity
}
