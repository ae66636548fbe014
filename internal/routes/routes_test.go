package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hospital-portal/internal/config"
	"hospital-portal/internal/upstream"
)

// fakeHospital is a minimal stand-in for the upstream backend. Session
// state is a single cookie whose value encodes the role.
type fakeHospital struct {
	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeHospital) bump(r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[r.Method+" "+r.URL.Path]++
}

func (f *fakeHospital) count(call string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[call]
}

func (f *fakeHospital) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.bump(r)
		session, _ := r.Cookie("SESSION")

		switch r.URL.Path {
		case "/user/checklogin":
			if session == nil {
				http.Error(w, "", http.StatusUnauthorized)
				return
			}
			w.WriteHeader(http.StatusOK)
		case "/user/dashboard":
			if session == nil {
				http.Error(w, "", http.StatusUnauthorized)
				return
			}
			role := "USER"
			if session.Value == "admin" {
				role = "ADMIN"
			}
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id":2,"username":"alice","email":"alice@example.com","role":"` + role + `"}`))
		case "/user/login":
			http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "user"})
			w.WriteHeader(http.StatusOK)
		case "/getusers":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":1,"username":"root","email":"root@hospital.example","role":"ADMIN"}]`))
		default:
			http.NotFound(w, r)
		}
	}
}

func newTestPortal(t *testing.T) (*gin.Engine, *fakeHospital) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hospital := &fakeHospital{calls: make(map[string]int)}
	srv := httptest.NewServer(hospital.handler())
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		Backend:        config.BackendConfig{BaseURL: srv.URL, Timeout: 5 * time.Second},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
	api := upstream.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, zap.NewNop())

	router := gin.New()
	SetupRoutes(router, api, cfg, zap.NewNop())
	return router, hospital
}

func do(t *testing.T, router *gin.Engine, method, path, body, sessionValue string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionValue != "" {
		req.AddCookie(&http.Cookie{Name: "SESSION", Value: sessionValue})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func redirectTarget(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload struct {
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload.Redirect
}

func TestAnonymousDashboardRedirectsToLogin(t *testing.T) {
	router, _ := newTestPortal(t)

	w := do(t, router, http.MethodGet, "/user/dashboard", "", "")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want 303", w.Code)
	}
	if target := redirectTarget(t, w); target != "/login" {
		t.Errorf("redirect = %q, want /login", target)
	}
}

func TestNonAdminBlockedFromAdminPanel(t *testing.T) {
	router, hospital := newTestPortal(t)

	for _, session := range []string{"", "user"} {
		w := do(t, router, http.MethodGet, "/getusers", "", session)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("session %q: status = %d, want 303", session, w.Code)
		}
		if target := redirectTarget(t, w); target != "/dashboard" {
			t.Errorf("session %q: redirect = %q, want /dashboard", session, target)
		}
	}
	if hospital.count("GET /getusers") != 0 {
		t.Error("guard let a non-admin request through to the backend")
	}
}

func TestAdminReachesUserListing(t *testing.T) {
	router, _ := newTestPortal(t)

	w := do(t, router, http.MethodGet, "/getusers", "", "admin")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"protected":true`) {
		t.Error("root account not marked protected in the listing")
	}
}

func TestAnonymousBookingPromptsLogin(t *testing.T) {
	router, hospital := newTestPortal(t)

	body := `{"doctorId":"1","appointmentDate":"` + time.Now().Format("2006-01-02") + `","appointmentTime":"09:00"}`
	w := do(t, router, http.MethodPost, "/appointments", body, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "log in or sign up") {
		t.Errorf("body = %s, want a login/signup prompt", w.Body.String())
	}
	if hospital.count("POST /appointments") != 0 {
		t.Error("unauthenticated booking reached the backend")
	}
}

func TestLoginRelaysSessionCookie(t *testing.T) {
	router, _ := newTestPortal(t)

	w := do(t, router, http.MethodPost, "/user/login", `{"username":"alice","password":"abc123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	cookies := w.Result().Cookies()
	found := false
	for _, c := range cookies {
		if c.Name == "SESSION" && c.Value == "user" {
			found = true
		}
	}
	if !found {
		t.Errorf("session cookie not relayed, cookies = %+v", cookies)
	}
	if !strings.Contains(w.Body.String(), `"/dashboard"`) {
		t.Errorf("body = %s, want a dashboard redirect", w.Body.String())
	}
}

func TestCheckLoginAnonymous(t *testing.T) {
	router, _ := newTestPortal(t)

	w := do(t, router, http.MethodGet, "/user/checklogin", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestCheckLoginAuthenticated(t *testing.T) {
	router, _ := newTestPortal(t)

	w := do(t, router, http.MethodGet, "/user/checklogin", "", "admin")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"role":"ADMIN"`) {
		t.Errorf("body = %s, want the resolved role", w.Body.String())
	}
}
