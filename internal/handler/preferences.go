package handler

import "net/http"

// GET /users/{userID}/preferences
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	profile, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, PreferencesResponse{UserID: userID, Preferences: profile})
}
