package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"go.uber.org/zap"

	"hospital-portal/internal/models"
)

// maxResponseBytes caps how much of an upstream body is read.
const maxResponseBytes = 4 << 20

// Client is a typed REST client for the hospital backend. Every call
// forwards the caller's session cookies; calls that may refresh the
// session return the backend's Set-Cookie values for relaying.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

// New creates a backend client.
func New(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// CheckLogin asks the backend whether the session cookie is live.
// A 401 means "not logged in" and is reported as (false, nil).
func (c *Client) CheckLogin(ctx context.Context, cookies []*http.Cookie) (bool, error) {
	_, err := c.do(ctx, http.MethodGet, "/user/checklogin", cookies, nil, nil)
	if errors.Is(err, ErrUnauthorized) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Dashboard fetches the caller's profile.
func (c *Client) Dashboard(ctx context.Context, cookies []*http.Cookie) (*models.Profile, error) {
	var profile models.Profile
	if _, err := c.do(ctx, http.MethodGet, "/user/dashboard", cookies, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Login exchanges credentials for a session cookie.
func (c *Client) Login(ctx context.Context, cookies []*http.Cookie, username, password string) ([]*http.Cookie, error) {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/user/login", cookies, body, nil)
}

// Signup creates a new account.
func (c *Client) Signup(ctx context.Context, cookies []*http.Cookie, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	_, err := c.do(ctx, http.MethodPost, "/user/signup", cookies, body, nil)
	return err
}

// Logout terminates the backend session.
func (c *Client) Logout(ctx context.Context, cookies []*http.Cookie) ([]*http.Cookie, error) {
	return c.do(ctx, http.MethodGet, "/user/logout", cookies, nil, nil)
}

// Doctors fetches the bookable roster.
func (c *Client) Doctors(ctx context.Context, cookies []*http.Cookie) ([]models.Doctor, error) {
	var doctors []models.Doctor
	if _, err := c.do(ctx, http.MethodGet, "/doctor/doctors", cookies, nil, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

// CreateAppointment books an appointment and returns the created record.
func (c *Client) CreateAppointment(ctx context.Context, cookies []*http.Cookie, req models.AppointmentRequest) (*models.Appointment, error) {
	var created models.Appointment
	if _, err := c.do(ctx, http.MethodPost, "/appointments", cookies, req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Appointments fetches the caller's bookings.
func (c *Client) Appointments(ctx context.Context, cookies []*http.Cookie) ([]models.Appointment, error) {
	var appointments []models.Appointment
	if _, err := c.do(ctx, http.MethodGet, "/appointment/appointments", cookies, nil, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

// CancelAppointment deletes a booking.
func (c *Client) CancelAppointment(ctx context.Context, cookies []*http.Cookie, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/appointments/%d", id), cookies, nil, nil)
	return err
}

// Users fetches all accounts (admin).
func (c *Client) Users(ctx context.Context, cookies []*http.Cookie) ([]models.UserRecord, error) {
	var users []models.UserRecord
	if _, err := c.do(ctx, http.MethodGet, "/getusers", cookies, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// User fetches a single account (admin).
func (c *Client) User(ctx context.Context, cookies []*http.Cookie, id int64) (*models.UserRecord, error) {
	var user models.UserRecord
	if _, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/getuser/%d", id), cookies, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser updates an account (admin).
func (c *Client) UpdateUser(ctx context.Context, cookies []*http.Cookie, id int64, update models.UserUpdate) error {
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/update/%d", id), cookies, update, nil)
	return err
}

// DeleteUser deletes an account (admin).
func (c *Client) DeleteUser(ctx context.Context, cookies []*http.Cookie, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/delete/%d", id), cookies, nil, nil)
	return err
}

// UploadAvatar forwards a multipart avatar upload and returns the new
// avatar URL.
func (c *Client) UploadAvatar(ctx context.Context, cookies []*http.Cookie, filename, contentType string, file io.Reader) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("failed to read avatar file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finish multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/avatar", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", decodeError(resp.StatusCode, respBody)
	}

	var payload struct {
		AvatarURL string `json:"avatarUrl"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return "", fmt.Errorf("unexpected avatar response: %w", err)
	}
	return payload.AvatarURL, nil
}

// RemoveAvatar deletes the caller's avatar.
func (c *Client) RemoveAvatar(ctx context.Context, cookies []*http.Cookie) error {
	_, err := c.do(ctx, http.MethodDelete, "/user/avatar", cookies, nil, nil)
	return err
}

// RemoveUserAvatar deletes another account's avatar (admin).
func (c *Client) RemoveUserAvatar(ctx context.Context, cookies []*http.Cookie, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/user/avatar/%d", id), cookies, nil, nil)
	return err
}

// do runs a single JSON request against the backend. It returns the
// response cookies so session changes can be relayed to the browser.
func (c *Client) do(ctx context.Context, method, path string, cookies []*http.Cookie, body, out interface{}) ([]*http.Cookie, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.Cookies(), decodeError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.Cookies(), fmt.Errorf("unexpected response from %s: %w", path, err)
		}
	}
	return resp.Cookies(), nil
}
