package session

import (
	"context"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"hospital-portal/internal/models"
	"hospital-portal/internal/upstream"
)

// Session is the portal's belief about the caller, derived from backend
// responses. It is never persisted; the backend session cookie is the
// source of truth.
type Session struct {
	Authenticated bool        `json:"authenticated"`
	Role          models.Role `json:"role,omitempty"`
	Loading       bool        `json:"-"`
}

// Resolver owns a Session. It is the single writer; the guard, the header
// endpoint and the workflows only read. Observers are notified on every
// transition.
type Resolver struct {
	api *upstream.Client
	log *zap.Logger

	mu        sync.Mutex
	cookies   []*http.Cookie
	current   Session
	observers []func(Session)
}

// NewResolver creates a resolver bound to the caller's cookies, starting
// in the loading state.
func NewResolver(api *upstream.Client, cookies []*http.Cookie, log *zap.Logger) *Resolver {
	return &Resolver{
		api:     api,
		log:     log,
		cookies: cookies,
		current: Session{Loading: true},
	}
}

// Current returns a copy of the session.
func (r *Resolver) Current() Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Subscribe registers an observer called after every transition.
func (r *Resolver) Subscribe(fn func(Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers = append(r.observers, fn)
}

// CheckAuth asks the backend whether the session is live and, if so,
// fetches the profile for the role. A 401 resolves to the unauthenticated
// state without being an error; any other failure also resolves to
// unauthenticated and is only logged. CheckAuth never returns an error.
func (r *Resolver) CheckAuth(ctx context.Context) {
	r.mu.Lock()
	cookies := r.cookies
	r.mu.Unlock()

	loggedIn, err := r.api.CheckLogin(ctx, cookies)
	if err != nil {
		r.log.Warn("session check failed", zap.Error(err))
		r.set(Session{})
		return
	}
	if !loggedIn {
		r.set(Session{})
		return
	}

	profile, err := r.api.Dashboard(ctx, cookies)
	if err != nil {
		r.log.Warn("profile fetch failed after live session check", zap.Error(err))
		r.set(Session{})
		return
	}
	r.set(Session{Authenticated: true, Role: profile.Role})
}

// Refresh replaces the tracked cookies (after a login or logout changed
// them) and re-runs the auth check.
func (r *Resolver) Refresh(ctx context.Context, cookies []*http.Cookie) {
	r.mu.Lock()
	r.cookies = cookies
	r.mu.Unlock()
	r.CheckAuth(ctx)
}

// SetAuthenticated records a successful login.
func (r *Resolver) SetAuthenticated(role models.Role) {
	r.set(Session{Authenticated: true, Role: role})
}

// SetUnauthenticated records a logout or an expired session.
func (r *Resolver) SetUnauthenticated() {
	r.set(Session{})
}

// Cookies returns the cookies the resolver was bound to.
func (r *Resolver) Cookies() []*http.Cookie {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cookies
}

func (r *Resolver) set(s Session) {
	r.mu.Lock()
	r.current = s
	observers := make([]func(Session), len(r.observers))
	copy(observers, r.observers)
	r.mu.Unlock()

	// Observers run outside the lock so they may read Current.
	for _, fn := range observers {
		fn(s)
	}
}
