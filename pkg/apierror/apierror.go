package apierror

import (
	"fmt"
	"net/http"
)

// APIError is the single error taxonomy for the API. Message is the exact
// client-facing body text; Detail is internal-only and never serialized.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Detail     string `json:"-"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Detail != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Detail)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, detail string, status int) *APIError {
	return &APIError{Code: code, Message: message, Detail: detail, HTTPStatus: status}
}

// Validation reports malformed or missing client input.
func Validation(message string) *APIError {
	return New("VALIDATION_ERROR", message, "", http.StatusBadRequest)
}

// Auth reports a missing, malformed, unknown or expired credential. Callers
// must pass the same message for every cause within one endpoint so the
// response never leaks which check failed.
func Auth(message string) *APIError {
	return New("AUTH_ERROR", message, "", http.StatusUnauthorized)
}

// MethodNotAllowed reports a wrong HTTP verb on a known route.
func MethodNotAllowed() *APIError {
	return New("METHOD_ERROR", "Method not allowed", "", http.StatusMethodNotAllowed)
}

// Config reports a misconfigured deployment, surfaced to the client as a
// server fault rather than a client error.
func Config(message string) *APIError {
	return New("CONFIG_ERROR", message, "", http.StatusInternalServerError)
}

// Internal reports an unexpected fault. Detail is kept for logs only.
func Internal(message string, detail string) *APIError {
	return New("INTERNAL_ERROR", message, detail, http.StatusInternalServerError)
}
