package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// ErrUnreachable wraps transport failures: DNS, refused connections,
// timeouts, canceled contexts.
var ErrUnreachable = errors.New("backend unreachable")

// ErrNotAuthenticated is returned, without contacting the backend, when a
// call needs a token and the token source holds none.
var ErrNotAuthenticated = errors.New("not authenticated")

// APIError is a non-2xx answer from the backend.
type APIError struct {
	Status  int
	Message string // backend's own message, empty when the body had none
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Error %d", e.Status)
}

// IsUnauthorized reports whether err is a 401/403 from the backend, which is
// how an expired or revoked token shows up.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden
}

// MessageOr returns the backend's message when err carries one, otherwise
// fallback. Transport and decoding failures always yield fallback.
func MessageOr(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

const maxErrorBody = 64 << 10

func decodeError(res *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
	apiErr := &APIError{Status: res.StatusCode}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		apiErr.Message = strings.TrimSpace(payload.Message)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(payload.Error)
		}
	}
	return apiErr
}
