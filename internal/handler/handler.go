package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
	"github.com/actuallystonmai/chef-recommendation-service/internal/logging"
)

// Recommender is the service surface the handlers depend on.
type Recommender interface {
	GetPersonalizedFeed(ctx context.Context, userID int64, contentType domain.ContentType, limit int) (*domain.FeedResult, error)
	TrackInteraction(ctx context.Context, req domain.TrackRequest) (*domain.TrackResult, error)
	GetTrending(ctx context.Context, contentType domain.ContentType, limit int) (*domain.TrendingResult, error)
	GetPreferences(ctx context.Context, userID int64) (*domain.PreferenceProfile, error)
	GetSimilarChefs(ctx context.Context, chefID int64) ([]domain.SimilarChef, error)
	GetBatchFeeds(ctx context.Context, page, limit int) (*domain.BatchResponse, error)
}

type Handler struct {
	service  Recommender
	validate *validator.Validate
}

func NewHandler(svc Recommender) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{service: svc, validate: v}
}

// write JSON response
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writes JSON error response.
func writeError(w http.ResponseWriter, status int, errCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// writeServiceError maps service errors onto HTTP status codes. Anything
// unrecognized is logged and reported as a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "user_not_found", "User does not exist")
	case errors.Is(err, domain.ErrChefNotFound):
		writeError(w, http.StatusNotFound, "chef_not_found", "Chef does not exist")
	case errors.Is(err, domain.ErrMealNotImplemented):
		writeError(w, http.StatusNotImplemented, "not_implemented", "Meal recommendations are not yet available")
	case errors.Is(err, domain.ErrUnsupportedContentType):
		writeError(w, http.StatusBadRequest, "invalid_parameter", "Unsupported content type")
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		writeError(w, http.StatusServiceUnavailable, "request_timeout", "Request timed out, please try again")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseIntQuery returns fallback when the parameter is absent and false when
// it is present but not an integer in [lo, hi].
func parseIntQuery(r *http.Request, name string, fallback, lo, hi int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, false
	}
	return v, true
}

func parseContentType(r *http.Request) (domain.ContentType, bool) {
	raw := r.URL.Query().Get("type")
	if raw == "" {
		return domain.ContentChef, true
	}
	ct := domain.ContentType(strings.ToLower(raw))
	return ct, ct.Valid()
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s=%s validation", fe.Field(), fe.Tag(), fe.Param())
	}
}
