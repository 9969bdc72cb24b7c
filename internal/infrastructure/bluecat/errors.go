package bluecat

import (
	"fmt"
	"strings"

	"github.com/lite-lake/infra-bamctl/internal/domain"
)

// APIError is a non-2xx answer from the address manager, carrying whatever
// the platform reported alongside the request that triggered it.
type APIError struct {
	Status  int
	Code    string
	Reason  string
	Message string
	Method  string
	URL     string

	sentinel error
}

func (e *APIError) Error() string {
	detail := e.Message
	if detail == "" {
		detail = e.Reason
	}
	if detail == "" {
		detail = e.Code
	}
	if detail == "" {
		return fmt.Sprintf("%s %s failed with %d", e.Method, e.URL, e.Status)
	}
	return fmt.Sprintf("%s %s failed with %d: %s", e.Method, e.URL, e.Status, detail)
}

func (e *APIError) Unwrap() error {
	return e.sentinel
}

// errorBody is the platform's JSON error envelope.
type errorBody struct {
	Code    string `json:"code"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

func newAPIError(method, url string, status int, body errorBody) *APIError {
	return &APIError{
		Status:   status,
		Code:     body.Code,
		Reason:   body.Reason,
		Message:  body.Message,
		Method:   method,
		URL:      url,
		sentinel: mapStatus(status, body.Code),
	}
}

func mapStatus(status int, code string) error {
	switch {
	case status == 404 || strings.Contains(code, "NotFound"):
		return domain.ErrNotFound
	case status == 409 || strings.Contains(code, "AlreadyExists"):
		return domain.ErrConflict
	case status == 400:
		return domain.ErrBadRequest
	case status == 401 || status == 403:
		return domain.ErrUnauthorized
	}
	return domain.ErrRemote
}
