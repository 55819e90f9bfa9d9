package gateway

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ErrSessionExpired marks a 401 from any endpoint. It is escalated to
// session-level handling instead of being stored as a container error.
var ErrSessionExpired = errors.New("session expired")

// APIError carries a non-401 failure status with the server-provided
// message when one was present, or the generic status text otherwise.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

func newAPIError(statusCode int, message string) *APIError {
	if message == "" {
		message = http.StatusText(statusCode)
	}
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func (c *Client) statusError(statusCode int, path string, raw []byte) error {
	if statusCode == http.StatusUnauthorized {
		c.logger.Warn().
			Str("path", path).
			Msg("unauthorized response")
		return ErrSessionExpired
	}

	apiErr := newAPIError(statusCode, serverMessage(raw))
	c.logger.Error().
		Int("status_code", statusCode).
		Str("path", path).
		Str("message", apiErr.Message).
		Msg("request rejected")
	return apiErr
}

// serverMessage digs the human-readable message out of an error body.
// Backends answer with either the envelope message field or an
// {"error": "..."} object.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}
