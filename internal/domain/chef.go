package domain

import "time"

// ChefCandidate is the read-only projection of a chef profile used for scoring.
// Every attribute the scorer needs is resolved before scoring starts.
type ChefCandidate struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Specialties   []string  `json:"specialties"`
	HourlyRate    float64   `json:"hourly_rate"`
	AverageRating float64   `json:"average_rating"`
	TotalBookings int       `json:"total_bookings"`
	CreatedAt     time.Time `json:"created_at"`
	IsAvailable   bool      `json:"is_available"`
	IsVerified    bool      `json:"is_verified"`
}
