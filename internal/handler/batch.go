package handler

import "net/http"

// GET /feed/batch
func (h *Handler) GetBatchFeeds(w http.ResponseWriter, r *http.Request) {
	page, ok := parseIntQuery(r, "page", 1, 1, 10000)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid page parameter")
		return
	}

	limit, ok := parseIntQuery(r, "limit", 20, 1, 100)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid limit parameter")
		return
	}

	result, err := h.service.GetBatchFeeds(r.Context(), page, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
