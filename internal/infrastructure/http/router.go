package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http/handlers"
	"github.com/jiggy-ai/jiggy-user-api/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler   *handlers.AuthHandler
	HealthHandler *handlers.HealthHandler
	UsersHandler  *handlers.UsersHandler
	APIKeyHandler *handlers.APIKeyHandler
	TeamsHandler  *handlers.TeamsHandler
	AssetsHandler *handlers.AssetsHandler
	RequireAuth   func(http.Handler) http.Handler // bearer verification for everything past /auth and POST /users
	Log           zerolog.Logger
	Secure        func(http.Handler) http.Handler
	CORS          func(http.Handler) http.Handler
	IPRateLimit   func(http.Handler) http.Handler
	Metrics       bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	} else {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		})
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Key exchange and registration run before the account exists, so the
	// bearer middleware does not guard them.
	r.Post("/auth", cfg.AuthHandler.Exchange)
	r.Post("/users", cfg.UsersHandler.Create)

	r.Group(func(r chi.Router) {
		r.Use(cfg.RequireAuth)

		r.Get("/users/current", cfg.UsersHandler.Current)
		r.Delete("/users/{user_id}", cfg.UsersHandler.Delete)

		r.Post("/apikey", cfg.APIKeyHandler.Create)
		r.Get("/apikey", cfg.APIKeyHandler.List)
		r.Delete("/apikey/{key}", cfg.APIKeyHandler.Delete)

		r.Get("/teams", cfg.TeamsHandler.List)
		r.Post("/team", cfg.TeamsHandler.Create)
		r.Route("/team/{team_id}", func(r chi.Router) {
			r.Delete("/", cfg.TeamsHandler.Delete)
			r.Get("/member", cfg.TeamsHandler.ListMembers)
			r.Post("/member", cfg.TeamsHandler.AddMember)
			r.Patch("/member/{member_id}", cfg.TeamsHandler.UpdateMember)
			r.Delete("/member/{member_id}", cfg.TeamsHandler.RemoveMember)
		})

		if cfg.AssetsHandler != nil {
			r.Get("/assets/{key}/url", cfg.AssetsHandler.URL)
		}
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
