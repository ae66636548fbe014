package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"
)

// ErrUnauthorized marks a 401 from the backend. Callers treat it as a
// normal session state, not a failure. Match with errors.Is; the concrete
// error is an APIError so the backend's payload stays available.
var ErrUnauthorized = errors.New("not authenticated")

// APIError carries a non-2xx backend response. Message holds the backend's
// own payload whenever one can be extracted, so callers can surface it
// verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// Is lets a 401 APIError match ErrUnauthorized.
func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// decodeError extracts a displayable message from an error response body.
// Precedence: JSON "message" field, JSON "error" field, JSON string, plain
// text body, generic fallback.
func decodeError(statusCode int, body []byte) *APIError {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return &APIError{StatusCode: statusCode, Message: genericMessage(statusCode)}
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return &APIError{StatusCode: statusCode, Message: payload.Message}
		}
		if payload.Error != "" {
			return &APIError{StatusCode: statusCode, Message: payload.Error}
		}
	}

	var asString string
	if err := json.Unmarshal(body, &asString); err == nil && asString != "" {
		return &APIError{StatusCode: statusCode, Message: asString}
	}

	// A non-JSON body is shown as-is when it looks like text.
	if !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "[") && utf8.ValidString(text) {
		return &APIError{StatusCode: statusCode, Message: text}
	}

	return &APIError{StatusCode: statusCode, Message: genericMessage(statusCode)}
}

func genericMessage(statusCode int) string {
	return fmt.Sprintf("request failed with status %d", statusCode)
}
