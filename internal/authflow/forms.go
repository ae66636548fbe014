package authflow

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"hospital-portal/internal/session"
	"hospital-portal/internal/upstream"
	"hospital-portal/internal/utils"
)

// Credentials is the login form input.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SignupInput is the signup form input.
type SignupInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Result describes where the caller should navigate next, an optional
// notice to show there, and any session cookies to relay.
type Result struct {
	Redirect string
	Notice   string
	Cookies  []*http.Cookie
}

// Forms implements the login and signup flows. Successful transitions are
// pushed into the session resolver so the guard and header observe them.
type Forms struct {
	api      *upstream.Client
	resolver *session.Resolver
	log      *zap.Logger
}

// NewForms creates the auth forms bound to a resolver.
func NewForms(api *upstream.Client, resolver *session.Resolver, log *zap.Logger) *Forms {
	return &Forms{api: api, resolver: resolver, log: log}
}

// Login validates the credentials locally, exchanges them for a session
// cookie and re-resolves the session. Backend failures are returned
// verbatim so the view can surface the payload.
func (f *Forms) Login(ctx context.Context, cookies []*http.Cookie, creds Credentials) (*Result, error) {
	if err := utils.Validate(creds); err != nil {
		return nil, err
	}

	sessionCookies, err := f.api.Login(ctx, cookies, creds.Username, creds.Password)
	if err != nil {
		return nil, err
	}

	f.resolver.Refresh(ctx, mergeCookies(cookies, sessionCookies))
	return &Result{Redirect: "/dashboard", Cookies: sessionCookies}, nil
}

// Signup validates the form locally (no request leaves the portal for a
// malformed form), creates the account, then attempts an automatic login
// with the same credentials. If the auto-login fails the caller is sent to
// the login page with a success notice instead.
func (f *Forms) Signup(ctx context.Context, cookies []*http.Cookie, input SignupInput) (*Result, error) {
	if err := utils.Validate(input); err != nil {
		return nil, err
	}

	if err := f.api.Signup(ctx, cookies, input.Username, input.Email, input.Password); err != nil {
		return nil, err
	}

	result, err := f.Login(ctx, cookies, Credentials{Username: input.Username, Password: input.Password})
	if err != nil {
		f.log.Warn("auto-login after signup failed", zap.String("username", input.Username), zap.Error(err))
		return &Result{
			Redirect: "/login",
			Notice:   "Registration successful! You can now sign in.",
		}, nil
	}
	return result, nil
}

// Logout terminates the backend session and resets the resolver.
func (f *Forms) Logout(ctx context.Context, cookies []*http.Cookie) (*Result, error) {
	sessionCookies, err := f.api.Logout(ctx, cookies)
	if err != nil && !errors.Is(err, upstream.ErrUnauthorized) {
		return nil, err
	}
	f.resolver.SetUnauthenticated()
	return &Result{Redirect: "/", Cookies: sessionCookies}, nil
}

// mergeCookies overlays fresh cookies on the caller's, replacing matches
// by name so the new session wins.
func mergeCookies(old, fresh []*http.Cookie) []*http.Cookie {
	replaced := make(map[string]bool, len(fresh))
	for _, c := range fresh {
		replaced[c.Name] = true
	}
	merged := make([]*http.Cookie, 0, len(old)+len(fresh))
	for _, c := range old {
		if !replaced[c.Name] {
			merged = append(merged, c)
		}
	}
	return append(merged, fresh...)
}
