package handler

import "net/http"

// GET /chefs/{chefID}/similar
func (h *Handler) GetSimilarChefs(w http.ResponseWriter, r *http.Request) {
	chefID, ok := parseIDParam(r, "chefID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid chef_id parameter")
		return
	}

	similar, err := h.service.GetSimilarChefs(r.Context(), chefID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, SimilarChefsResponse{ChefID: chefID, Similar: similar})
}
