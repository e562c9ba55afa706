package handler

import (
	"net/http"
	"time"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/scoring"
)

const feedAlgorithm = "hybrid_v1"

// GET /users/{userID}/feed
func (h *Handler) GetFeed(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	contentType, ok := parseContentType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid type parameter")
		return
	}

	limit, ok := parseIntQuery(r, "limit", scoring.DefaultFeedLimit, 1, scoring.MaxFeedLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}

	result, err := h.service.GetPersonalizedFeed(r.Context(), userID, contentType, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, FeedResponse{
		UserID:          userID,
		ContentType:     contentType,
		Recommendations: result.Recommendations,
		Metadata: domain.FeedMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			TotalCount:  len(result.Recommendations),
			Algorithm:   feedAlgorithm,
		},
	})
}
