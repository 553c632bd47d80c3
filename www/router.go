package www

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"

	"ordersight/auth"
	"ordersight/dashboard"
)

type Handlers struct {
	resolver *auth.Resolver
	registry *dashboard.Registry
	sessions *sessions.CookieStore
}

func NewRouter(resolver *auth.Resolver, registry *dashboard.Registry, sessionSecret string) http.Handler {
	h := &Handlers{
		resolver: resolver,
		registry: registry,
		sessions: newSessionStore(sessionSecret),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.apiHealth)
		r.Post("/login", h.apiLogin)
		r.Post("/logout", h.apiLogout)

		r.Group(func(r chi.Router) {
			r.Use(h.requireSession)
			r.Get("/dashboard", h.apiDashboard)
			r.Post("/refresh", h.apiRefresh)
			r.Get("/me", h.apiIdentity)
		})
	})

	return r
}
