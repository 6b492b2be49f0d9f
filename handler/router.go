package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/himaSH97/tc-servey/locale"
	"github.com/riandyrn/otelchi"
)

// Config wires the handlers into a router.
type Config struct {
	ServerName  string
	Submissions *SubmissionHandler
	Waitlist    *WaitlistHandler
	Health      *HealthHandler
	RateLimiter *RateLimiter

	// TrustProxy takes the client address from X-Forwarded-For and
	// X-Real-IP. Enable it only behind a proxy that sets those headers.
	TrustProxy bool
}

// NewRouter builds the API routes.
func NewRouter(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if cfg.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(otelchi.Middleware(cfg.ServerName, otelchi.WithChiRoutes(r)))
	r.Use(Locale)

	r.Get("/healthz", cfg.Health.Readiness)

	r.Route("/api", func(r chi.Router) {
		r.With(cfg.RateLimiter.Middleware).Post("/notion", cfg.Submissions.Create)
		r.Get("/waitlist", cfg.Waitlist.Count)
	})

	return r
}

// Locale resolves the request language and persists an explicit choice.
func Locale(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		tag, persist := locale.ResolveTag(r)
		if persist {
			locale.SetCookie(rw, tag)
		}
		next.ServeHTTP(rw, r.WithContext(locale.WithTag(r.Context(), tag)))
	})
}
