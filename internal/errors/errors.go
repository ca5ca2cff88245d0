// Package errors provides the client-facing API error taxonomy: a stable
// error code string paired with the HTTP status it maps to.
package errors

import "fmt"

// APIError is a business-logic failure rendered to the client as a JSON body
// {"error": <code>} with the matching HTTP status. Internal details stay in
// Cause and are only ever logged, never sent over the wire.
type APIError struct {
	Code   string
	Status int
	Cause  error
}

func (e *APIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Code, e.Cause)
	}
	return e.Code
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *APIError) Unwrap() error {
	return e.Cause
}

// Fixed error codes. The strings are part of the wire contract.
var (
	InvalidJSON      = &APIError{Code: "invalid_json", Status: 400}
	InvalidInput     = &APIError{Code: "invalid_input", Status: 400}
	BadCredentials   = &APIError{Code: "bad_credentials", Status: 401}
	Unauthorized     = &APIError{Code: "unauthorized", Status: 401}
	NotFound         = &APIError{Code: "not_found", Status: 404}
	MethodNotAllowed = &APIError{Code: "method_not_allowed", Status: 405}
	EmailExists      = &APIError{Code: "email_exists", Status: 409}
	HashFailed       = &APIError{Code: "hash_failed", Status: 500}
	SessionFailed    = &APIError{Code: "session_failed", Status: 500}
	DBError          = &APIError{Code: "db_error", Status: 500}
)

// WithCause returns a copy of e carrying the underlying error for logging.
func (e *APIError) WithCause(cause error) *APIError {
	return &APIError{Code: e.Code, Status: e.Status, Cause: cause}
}
