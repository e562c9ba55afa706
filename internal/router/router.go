package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/actuallystonmai/chef-recommendation-service/internal/handler"
)

const (
	requestTimeout = 30 * time.Second
	healthTimeout  = 2 * time.Second
)

// Dependency is a backing service reported by /health.
type Dependency struct {
	Name string
	Ping func(ctx context.Context) error
}

func Setup(h *handler.Handler, deps ...Dependency) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(RequestID)
	r.Use(AccessLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// Routes
	r.Get("/users/{userID}/feed", h.GetFeed)
	r.Post("/users/{userID}/interactions", h.TrackInteraction)
	r.Get("/users/{userID}/preferences", h.GetPreferences)
	r.Get("/trending", h.GetTrending)
	r.Get("/chefs/{chefID}/similar", h.GetSimilarChefs)
	r.Get("/feed/batch", h.GetBatchFeeds)

	r.Get("/health", healthCheck(deps))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func healthCheck(deps []Dependency) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		resp := healthResponse{Status: "ok"}
		status := http.StatusOK
		if len(deps) > 0 {
			resp.Checks = make(map[string]string, len(deps))
		}
		for _, d := range deps {
			if err := d.Ping(ctx); err != nil {
				resp.Checks[d.Name] = err.Error()
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[d.Name] = "ok"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
