package dashboard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"ordersight/store"
)

var (
	// ErrSuperseded reports that a refresh finished after a newer one
	// started; its result was discarded, not installed.
	ErrSuperseded = errors.New("dashboard: refresh superseded")
	// ErrNotLoaded reports that no fetch has succeeded for this session yet.
	ErrNotLoaded = errors.New("dashboard: orders not loaded")
)

// Session owns the in-memory order collection for one viewer identity.
// The collection is replaced wholesale by a successful refresh and never
// mutated in place. At most one refresh is authoritative at a time: a
// newer refresh (or Close) cancels and supersedes any outstanding one, so
// results fetched under a previous identity are never observed after a
// switch.
type Session struct {
	ID       string
	Identity Identity

	client   store.Client
	pageSize int
	loc      *time.Location

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	orders  []store.Order
	loaded  bool
	lastErr error
}

func NewSession(id Identity, client store.Client, pageSize int, loc *time.Location) *Session {
	if loc == nil {
		loc = time.Local
	}
	return &Session{
		ID:       uuid.NewString(),
		Identity: id,
		client:   client,
		pageSize: pageSize,
		loc:      loc,
	}
}

// Refresh re-fetches the session's full collection. On failure the
// previously installed collection stays untouched but the session enters
// a failure state until a later refresh succeeds; callers surface that as
// a single failed-to-load condition rather than partial data.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	orders, err := FetchAll(fetchCtx, s.client, s.Identity, s.pageSize)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		s.lastErr = err
		return err
	}
	s.orders = orders
	s.loaded = true
	s.lastErr = nil
	return nil
}

// View recomputes the filtered set and counters from the current
// collection. It fails when the last refresh failed or none has run, so
// stale or partial state is never presented as current.
func (s *Session) View(state FilterState) (View, error) {
	s.mu.Lock()
	orders, loaded, lastErr := s.orders, s.loaded, s.lastErr
	s.mu.Unlock()

	if lastErr != nil {
		return View{}, lastErr
	}
	if !loaded {
		return View{}, ErrNotLoaded
	}
	return BuildView(orders, state, s.Identity, s.loc)
}

// Close cancels any outstanding refresh and invalidates the session; a
// fetch still in flight can no longer install its result.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
	s.orders = nil
	s.loaded = false
}

// Registry tracks live viewer sessions keyed by session ID. HTTP
// handlers run concurrently, so the map is mutex-guarded; each Session
// still has a single logical flow of control.
type Registry struct {
	client   store.Client
	pageSize int
	loc      *time.Location

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(client store.Client, pageSize int, loc *time.Location) *Registry {
	return &Registry{
		client:   client,
		pageSize: pageSize,
		loc:      loc,
		sessions: make(map[string]*Session),
	}
}

// Create opens a session for the identity. It does not fetch; callers
// trigger the initial Refresh.
func (r *Registry) Create(id Identity) *Session {
	s := NewSession(id, r.client, r.pageSize, r.loc)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sessions[id]
}

// Drop closes and removes a session. Replacing a viewer's session on
// re-login goes through here, which cancels the old identity's
// outstanding fetch before the new one starts.
func (r *Registry) Drop(id string) {
	r.mu.Lock()
	s := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if s != nil {
		s.Close()
	}
}
