package www

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"ordersight/auth"
	"ordersight/dashboard"
)

func (h *Handlers) apiHealth(w http.ResponseWriter, r *http.Request) {
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) apiLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.jsonError(w, "invalid request", http.StatusBadRequest)
		return
	}

	identity, err := h.resolver.Resolve(req.Username, req.Password)
	if err != nil {
		h.jsonError(w, auth.ErrInvalidCredentials.Error(), http.StatusUnauthorized)
		return
	}

	cookie, _ := h.sessions.Get(r, sessionName)

	// A login replaces any live session in this browser: the old
	// identity's outstanding fetch is cancelled before the new one runs,
	// so its rows can never surface under the new identity.
	if old, ok := cookie.Values["sid"].(string); ok && old != "" {
		h.registry.Drop(old)
	}

	sess := h.registry.Create(identity)
	if err := sess.Refresh(r.Context()); err != nil && !errors.Is(err, dashboard.ErrSuperseded) {
		log.Printf("www: initial fetch for %s: %v", identity.Username(), err)
	}

	cookie.Values["sid"] = sess.ID
	cookie.Values["username"] = identity.Username()
	if err := cookie.Save(r, w); err != nil {
		log.Printf("www: session save: %v", err)
	}

	h.jsonOK(w, identity)
}

func (h *Handlers) apiLogout(w http.ResponseWriter, r *http.Request) {
	cookie, _ := h.sessions.Get(r, sessionName)
	if sid, ok := cookie.Values["sid"].(string); ok && sid != "" {
		h.registry.Drop(sid)
	}
	cookie.Options.MaxAge = -1
	if err := cookie.Save(r, w); err != nil {
		log.Printf("www: session save: %v", err)
	}
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func (h *Handlers) apiIdentity(w http.ResponseWriter, r *http.Request) {
	h.jsonOK(w, sessionFrom(r).Identity)
}

func (h *Handlers) apiDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)

	state := dashboard.FilterState{
		Range:      dashboard.DefaultRange(time.Now()),
		Subscriber: dashboard.SubscriberAll,
	}
	q := r.URL.Query()
	if start := q.Get("start"); start != "" {
		state.Range.Start = start
	}
	if end := q.Get("end"); end != "" {
		state.Range.End = end
	}
	if sub := q.Get("subscriber"); sub != "" {
		state.Subscriber = sub
	}

	view, err := sess.View(state)
	if err != nil {
		switch {
		case errors.Is(err, dashboard.ErrNotLoaded):
			h.jsonError(w, "failed to load orders", http.StatusBadGateway)
		case isDateError(err):
			h.jsonError(w, err.Error(), http.StatusBadRequest)
		default:
			h.jsonError(w, "failed to load orders", http.StatusBadGateway)
		}
		return
	}
	h.jsonOK(w, view)
}

func (h *Handlers) apiRefresh(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r)
	if err := sess.Refresh(r.Context()); err != nil {
		if errors.Is(err, dashboard.ErrSuperseded) {
			h.jsonOK(w, map[string]string{"status": "superseded"})
			return
		}
		log.Printf("www: refresh for %s: %v", sess.Identity.Username(), err)
		h.jsonError(w, "failed to load orders", http.StatusBadGateway)
		return
	}
	h.jsonOK(w, map[string]string{"status": "ok"})
}

func isDateError(err error) bool {
	var parseErr *time.ParseError
	return errors.As(err, &parseErr)
}
