package handler

import (
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

const maxInteractionBody = 1 << 16

// POST /users/{userID}/interactions
func (h *Handler) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseIDParam(r, "userID")
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Invalid user_id parameter")
		return
	}

	var req TrackInteractionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInteractionBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "Request body must be valid JSON")
		return
	}
	req.ContentType = strings.TrimSpace(req.ContentType)
	req.InteractionType = strings.TrimSpace(req.InteractionType)
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "validation_error", validationMessage(err))
		return
	}

	result, err := h.service.TrackInteraction(r.Context(), domain.TrackRequest{
		UserID:          userID,
		ContentType:     domain.ContentType(req.ContentType),
		ContentID:       req.ContentID,
		InteractionType: domain.InteractionType(req.InteractionType),
		SessionID:       req.SessionID,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, TrackInteractionResponse{
		Success:            true,
		Interaction:        result.Event,
		PreferencesUpdated: result.PreferencesUpdated,
	})
}
