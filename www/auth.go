package www

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"

	"ordersight/dashboard"
)

const sessionName = "ordersight-session"

type contextKey string

const sessionContextKey contextKey = "viewer-session"

func newSessionStore(secret string) *sessions.CookieStore {
	if secret == "" {
		secret = "ordersight-default-secret-change-me"
	}
	s := sessions.NewCookieStore([]byte(secret))
	s.Options.HttpOnly = true
	s.Options.Secure = false
	s.Options.SameSite = http.SameSiteLaxMode
	return s
}

// viewerSession resolves the cookie to a live dashboard session, or nil.
func (h *Handlers) viewerSession(r *http.Request) *dashboard.Session {
	cookie, err := h.sessions.Get(r, sessionName)
	if err != nil {
		return nil
	}
	sid, _ := cookie.Values["sid"].(string)
	if sid == "" {
		return nil
	}
	return h.registry.Get(sid)
}

// requireSession rejects requests without a live viewer session and puts
// the session on the request context for handlers downstream.
func (h *Handlers) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := h.viewerSession(r)
		if sess == nil {
			h.jsonError(w, "not logged in", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionFrom(r *http.Request) *dashboard.Session {
	sess, _ := r.Context().Value(sessionContextKey).(*dashboard.Session)
	return sess
}
