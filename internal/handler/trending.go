package handler

import (
	"net/http"
	"time"

	"github.com/actuallystonmai/chef-recommendation-service/internal/trending"
)

// GET /trending
func (h *Handler) GetTrending(w http.ResponseWriter, r *http.Request) {
	contentType, ok := parseContentType(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid type parameter")
		return
	}

	limit, ok := parseIntQuery(r, "limit", trending.DefaultLimit, 1, trending.MaxLimit)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}

	result, err := h.service.GetTrending(r.Context(), contentType, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TrendingResponse{
		ContentType: contentType,
		Trending:    result.Trending,
		Metadata: TrendingMeta{
			CacheHit:    result.CacheHit,
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Window:      trending.RecentWindow.String(),
		},
	})
}
