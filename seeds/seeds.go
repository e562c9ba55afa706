package seeds

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/logging"
)

const (
	numUsers        = 30
	numChefs        = 40
	numFavorites    = 90
	numBookings     = 220
	numInteractions = 300
)

var cuisines = []string{
	"Italian", "French", "Japanese", "Thai", "Mexican",
	"Indian", "Korean", "Mediterranean", "Vegan", "BBQ",
}

var firstNames = []string{
	"Marco", "Claire", "Kenji", "Niran", "Lucia", "Arjun", "Min-jun", "Sofia",
	"Diego", "Amara", "Hugo", "Yuki", "Priya", "Omar", "Elena", "Tomas",
}

func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	rng := rand.New(rand.NewSource(42))
	now := time.Now()

	// Truncate existing data before insert
	logging.Info().Msg("[seed] truncating existing data")
	if _, err := pool.Exec(ctx, `
		TRUNCATE user_interactions, user_preferences, bookings, favorite_chefs, chefs, users
		RESTART IDENTITY CASCADE
	`); err != nil {
		return fmt.Errorf("truncate: %w", err)
	}

	steps := []struct {
		name string
		fn   func(context.Context, *pgxpool.Pool, *rand.Rand, time.Time) error
	}{
		{"users", seedUsers},
		{"chefs", seedChefs},
		{"favorites", seedFavorites},
		{"bookings", seedBookings},
		{"interactions", seedInteractions},
	}
	for _, step := range steps {
		logging.Info().Str("table", step.name).Msg("[seed] inserting")
		if err := step.fn(ctx, pool, rng, now); err != nil {
			return fmt.Errorf("seed %s: %w", step.name, err)
		}
	}

	// Denormalized counter used by the popularity signal.
	if _, err := pool.Exec(ctx, `
		UPDATE chefs c SET total_bookings = b.n
		FROM (SELECT chef_id, COUNT(*) AS n FROM bookings GROUP BY chef_id) b
		WHERE c.id = b.chef_id
	`); err != nil {
		return fmt.Errorf("update booking counts: %w", err)
	}

	logging.Info().Msg("[seed] seeding complete")
	return nil
}

func seedUsers(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, now time.Time) error {
	rows := []string{}
	args := []any{}

	for i := range numUsers {
		createdAt := now.AddDate(0, 0, -rng.Intn(365))

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, fmt.Sprintf("diner%02d", i+1), createdAt)
	}

	query := "INSERT INTO users (username, created_at) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedChefs(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, now time.Time) error {
	rows := []string{}
	args := []any{}

	for i := range numChefs {
		name := fmt.Sprintf("Chef %s %d", firstNames[i%len(firstNames)], i+1)
		specialties := pickSpecialties(rng)
		rate := math.Round((30+rng.Float64()*150)*100) / 100
		rating := math.Round((2.5+2.5*(1-powerLawScore(rng)))*100) / 100
		available := rng.Float64() < 0.85
		verified := rng.Float64() < 0.7
		createdAt := now.Add(-time.Duration(rng.Intn(120*24)) * time.Hour)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, name, specialties, rate, rating, available, verified, createdAt)
	}

	query := `INSERT INTO chefs (name, specialties, hourly_rate, average_rating, is_available, is_verified, created_at) VALUES ` +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func pickSpecialties(rng *rand.Rand) []string {
	n := 1 + rng.Intn(3)
	picked := make([]string, 0, n)
	for _, idx := range rng.Perm(len(cuisines))[:n] {
		picked = append(picked, cuisines[idx])
	}
	return picked
}

func seedFavorites(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, _ time.Time) error {
	seen := make(map[[2]int64]bool)
	rows := []string{}
	args := []any{}

	for range numFavorites {
		key := [2]int64{skewedID(rng, numUsers, 1.2), skewedID(rng, numChefs, 1.5)}
		if seen[key] {
			continue
		}
		seen[key] = true

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d)", base+1, base+2))
		args = append(args, key[0], key[1])
	}

	query := "INSERT INTO favorite_chefs (user_id, chef_id) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

// seedBookings spreads bookings over the last ten days so the trending
// windows have both recent and baseline activity.
func seedBookings(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, now time.Time) error {
	rows := []string{}
	args := []any{}

	for range numBookings {
		clientID := skewedID(rng, numUsers, 1.2)
		chefID := skewedID(rng, numChefs, 1.5)
		createdAt := now.Add(-time.Duration(rng.Intn(10*24*60)) * time.Minute)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, $%d, $%d)", base+1, base+2, base+3))
		args = append(args, clientID, chefID, createdAt)
	}

	query := "INSERT INTO bookings (client_id, chef_id, created_at) VALUES " + strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

func seedInteractions(ctx context.Context, pool *pgxpool.Pool, rng *rand.Rand, now time.Time) error {
	types := []domain.InteractionType{
		domain.InteractionView, domain.InteractionLike, domain.InteractionBook,
		domain.InteractionShare, domain.InteractionSkip,
	}
	typeWeights := []float64{0.55, 0.2, 0.05, 0.05, 0.15}

	rows := []string{}
	args := []any{}

	for i := range numInteractions {
		it := weightedChoice(rng, types, typeWeights)
		createdAt := now.Add(-time.Duration(rng.Intn(3*24*60)) * time.Minute)

		base := len(args)
		rows = append(rows, fmt.Sprintf("($%d, 'chef', $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args,
			skewedID(rng, numUsers, 1.2),
			skewedID(rng, numChefs, 1.3),
			string(it),
			it.Weight(),
			fmt.Sprintf("seed-%03d", i/5),
			rng.Intn(300),
			createdAt,
		)
	}

	query := `INSERT INTO user_interactions
		(user_id, content_type, content_id, interaction_type, weight, session_id, duration_seconds, created_at) VALUES ` +
		strings.Join(rows, ", ")
	_, err := pool.Exec(ctx, query, args...)
	return err
}

// skewedID draws an ID in [1, n] biased toward low IDs.
func skewedID(rng *rand.Rand, n int, exponent float64) int64 {
	id := int64(math.Ceil(math.Pow(rng.Float64(), exponent) * float64(n)))
	return max(1, min(id, int64(n)))
}

func powerLawScore(rng *rand.Rand) float64 {
	u := rng.Float64()
	if u == 0 {
		u = 0.001
	}
	raw := math.Pow(u, 2.0)
	if raw < 0.01 {
		raw = 0.01
	}
	return math.Round(raw*100) / 100
}

func weightedChoice[T any](rng *rand.Rand, choices []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	r := rng.Float64() * total
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return choices[i]
		}
	}
	return choices[len(choices)-1]
}
