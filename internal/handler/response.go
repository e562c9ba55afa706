package handler

import "github.com/actuallystonmai/chef-recommendation-service/internal/domain"

type FeedResponse struct {
	UserID          int64                    `json:"user_id"`
	ContentType     domain.ContentType       `json:"content_type"`
	Recommendations []domain.ScoredCandidate `json:"recommendations"`
	Metadata        domain.FeedMeta          `json:"metadata"`
}

type TrackInteractionRequest struct {
	ContentType     string `json:"content_type" validate:"required,oneof=chef meal"`
	ContentID       int64  `json:"content_id" validate:"required,gt=0"`
	InteractionType string `json:"interaction_type" validate:"required,max=32"`
	SessionID       string `json:"session_id" validate:"omitempty,max=128"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0"`
}

type TrackInteractionResponse struct {
	Success            bool                     `json:"success"`
	Interaction        *domain.InteractionEvent `json:"interaction"`
	PreferencesUpdated bool                     `json:"preferences_updated"`
}

type TrendingResponse struct {
	ContentType domain.ContentType     `json:"content_type"`
	Trending    []domain.TrendingEntry `json:"trending"`
	Metadata    TrendingMeta           `json:"metadata"`
}

type TrendingMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	Window      string `json:"window"`
}

type SimilarChefsResponse struct {
	ChefID  int64                `json:"chef_id"`
	Similar []domain.SimilarChef `json:"similar_chefs"`
}

type PreferencesResponse struct {
	UserID      int64                     `json:"user_id"`
	Preferences *domain.PreferenceProfile `json:"preferences"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
