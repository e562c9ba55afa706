package domain

type ScoreBreakdown struct {
	Collaborative float64 `json:"collaborative"`
	ContentBased  float64 `json:"content_based"`
	Popularity    float64 `json:"popularity"`
	Recency       float64 `json:"recency"`
	Diversity     float64 `json:"diversity"`
}

type ScoredCandidate struct {
	Chef      ChefCandidate  `json:"chef"`
	Score     float64        `json:"recommendation_score"`
	Breakdown ScoreBreakdown `json:"score_breakdown"`
}

type FeedMeta struct {
	CacheHit    bool   `json:"cache_hit"`
	GeneratedAt string `json:"generated_at"`
	TotalCount  int    `json:"total"`
	Algorithm   string `json:"algorithm"`
}

type FeedResult struct {
	Recommendations []ScoredCandidate
	CacheHit        bool
}

type SimilarChef struct {
	Chef            ChefCandidate `json:"chef"`
	SimilarityScore float64       `json:"similarity_score"`
}

type BatchStatus string

const (
	StatusSuccess BatchStatus = "success"
	StatusFailed  BatchStatus = "failed"
)

type BatchUserResult struct {
	UserID          int64             `json:"user_id"`
	Recommendations []ScoredCandidate `json:"recommendations,omitempty"`
	Status          BatchStatus       `json:"status"`
	Error           string            `json:"error,omitempty"`
	Message         string            `json:"message,omitempty"`
}

type BatchSummary struct {
	SuccessCount     int   `json:"success_count"`
	FailedCount      int   `json:"failed_count"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

type BatchMeta struct {
	GeneratedAt string `json:"generated_at"`
}

type BatchResponse struct {
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalUsers int               `json:"total_users"`
	Results    []BatchUserResult `json:"results"`
	Summary    BatchSummary      `json:"summary"`
	Metadata   BatchMeta         `json:"metadata"`
}
