package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"hospital-portal/internal/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestDecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"message field", `{"message":"slot already taken"}`, "slot already taken"},
		{"error field", `{"error":"username already exists"}`, "username already exists"},
		{"message wins over error", `{"message":"first","error":"second"}`, "first"},
		{"json string", `"plain json string"`, "plain json string"},
		{"plain text", `something went wrong`, "something went wrong"},
		{"empty body", ``, "request failed with status 500"},
		{"unhelpful json", `{"code":12}`, "request failed with status 500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := decodeError(http.StatusInternalServerError, []byte(tt.body))
			if apiErr.Message != tt.want {
				t.Errorf("message = %q, want %q", apiErr.Message, tt.want)
			}
			if apiErr.StatusCode != http.StatusInternalServerError {
				t.Errorf("status = %d", apiErr.StatusCode)
			}
		})
	}
}

func TestUnauthorizedKeepsPayload(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid username or password"}`))
	})

	_, err := client.Login(context.Background(), nil, "alice", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("got %v, want a match for ErrUnauthorized", err)
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "invalid username or password" {
		t.Errorf("payload lost: %v", err)
	}
}

func TestCheckLoginStates(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		want    bool
		wantErr bool
	}{
		{"live session", http.StatusOK, true, false},
		{"anonymous", http.StatusUnauthorized, false, false},
		{"backend down", http.StatusInternalServerError, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})
			loggedIn, err := client.CheckLogin(context.Background(), nil)
			if loggedIn != tt.want {
				t.Errorf("loggedIn = %v, want %v", loggedIn, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRequestsCarryCookiesAndContentType(t *testing.T) {
	var gotCookie, gotContentType string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("SESSION"); err == nil {
			gotCookie = c.Value
		}
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`[]`))
	})

	cookies := []*http.Cookie{{Name: "SESSION", Value: "abc"}}
	if _, err := client.Appointments(context.Background(), cookies); err != nil {
		t.Fatalf("appointments: %v", err)
	}
	if gotCookie != "abc" {
		t.Errorf("session cookie not forwarded, got %q", gotCookie)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type = %q", gotContentType)
	}
}

func TestLoginReturnsSessionCookies(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "SESSION", Value: "fresh"})
		w.WriteHeader(http.StatusOK)
	})

	cookies, err := client.Login(context.Background(), nil, "alice", "abc123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if len(cookies) != 1 || cookies[0].Name != "SESSION" || cookies[0].Value != "fresh" {
		t.Errorf("cookies = %+v", cookies)
	}
}

func TestCreateAppointmentWireFormat(t *testing.T) {
	var body string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		body = string(buf)
		w.Write([]byte(`{"id":11,"status":"SCHEDULED"}`))
	})

	created, err := client.CreateAppointment(context.Background(), nil, models.AppointmentRequest{
		DoctorID:        "3",
		AppointmentDate: "2026-09-10",
		AppointmentTime: "10:30",
		Symptoms:        "cough",
		Status:          models.StatusScheduled,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 11 {
		t.Errorf("id = %d", created.ID)
	}
	for _, want := range []string{`"doctorId":"3"`, `"appointmentDate":"2026-09-10"`, `"appointmentTime":"10:30"`, `"status":"SCHEDULED"`} {
		if !strings.Contains(body, want) {
			t.Errorf("request body %s missing %s", body, want)
		}
	}
}

func TestUploadAvatarMultipart(t *testing.T) {
	var gotContentType, gotField, gotFile string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		file, header, err := r.FormFile("file")
		if err == nil {
			defer file.Close()
			gotField = header.Filename
			buf := make([]byte, header.Size)
			file.Read(buf)
			gotFile = string(buf)
		}
		w.Write([]byte(`{"avatarUrl":"https://cdn.example/a.png"}`))
	})

	url, err := client.UploadAvatar(context.Background(), nil, "a.png", "image/png", strings.NewReader("pngbytes"))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if url != "https://cdn.example/a.png" {
		t.Errorf("url = %q", url)
	}
	if !strings.HasPrefix(gotContentType, "multipart/form-data") {
		t.Errorf("content type = %q", gotContentType)
	}
	if gotField != "a.png" || gotFile != "pngbytes" {
		t.Errorf("file part = %q %q", gotField, gotFile)
	}
}
