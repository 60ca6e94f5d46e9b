// Package apierr provides shared error sentinels for the Twilio REST API.
// Every provider or transport failure is classified at the client boundary
// into an *Error (or a wrapped transport error) that matches ErrAPI, plus
// at most one status-class sentinel.
//
// Callers check with errors.Is(err, apierr.ErrAPI), errors.Is(err, apierr.ErrAuthFailed) etc.
package apierr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// Sentinel errors for API interaction failures.
var (
	// ErrAPI matches every failure reported by the provider or the transport.
	ErrAPI = errors.New("twilio API error")

	// ErrAuthFailed indicates the account SID or auth token was rejected.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrRateLimit indicates the API rate limit was exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")

	// ErrTimeout indicates a request timed out.
	ErrTimeout = errors.New("request timeout")

	// ErrBadRequest indicates a client error (4xx) that is not otherwise classified.
	ErrBadRequest = errors.New("bad request")
)

// Error is a non-2xx response from the Twilio REST API.
// The JSON fields mirror the provider's error body.
type Error struct {
	StatusCode int    `json:"status"`
	Code       int    `json:"code"`
	Message    string `json:"message"`
	MoreInfo   string `json:"more_info"`
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Code != 0:
		return fmt.Sprintf("twilio API error %d (code %d): %s", e.StatusCode, e.Code, e.Message)
	case e.Message != "":
		return fmt.Sprintf("twilio API error %d: %s", e.StatusCode, e.Message)
	default:
		return fmt.Sprintf("twilio API error %d", e.StatusCode)
	}
}

// Unwrap exposes ErrAPI and the status-class sentinel to errors.Is.
func (e *Error) Unwrap() []error {
	errs := []error{ErrAPI}
	if class := statusClass(e.StatusCode); class != nil {
		errs = append(errs, class)
	}
	return errs
}

// FromResponse builds an *Error from a response status and body.
// An undecodable body is kept verbatim as the message.
func FromResponse(statusCode int, body []byte) *Error {
	e := &Error{}
	if err := json.Unmarshal(body, e); err != nil {
		e.Message = string(body)
	}
	// The status line is authoritative; the body field is optional.
	e.StatusCode = statusCode
	return e
}

// Wrap classifies a transport-level error. Context cancellation is kept
// visible to errors.Is so callers can tell an interrupt from a failure.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: %w", ErrAPI, ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w: %w", ErrAPI, ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", ErrAPI, err)
}

// statusClass maps an HTTP status code to a sentinel, or nil.
func statusClass(code int) error {
	switch {
	case code == http.StatusUnauthorized, code == http.StatusForbidden:
		return ErrAuthFailed
	case code == http.StatusNotFound:
		return ErrNotFound
	case code == http.StatusTooManyRequests:
		return ErrRateLimit
	case code == http.StatusRequestTimeout, code == http.StatusGatewayTimeout:
		return ErrTimeout
	case code >= 400 && code < 500:
		return ErrBadRequest
	default:
		return nil
	}
}
