package errors

import (
	"fmt"
	"net/http"
)

// Stable error classification codes surfaced to API clients.
const (
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeInvalidToken   = "INVALID_TOKEN"
	CodeValidation     = "VALIDATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
)

// APIError is the error type returned by resolvers and middleware. It maps
// onto both plain JSON responses and GraphQL error extensions.
type APIError struct {
	Code        string         `json:"code"`
	Message     string         `json:"message"`
	Status      int            `json:"status"`
	InvalidArgs map[string]any `json:"invalid_args,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Extensions satisfies the graphql-go ExtendedError interface so the code
// and offending arguments reach the client inside the GraphQL error object.
func (e *APIError) Extensions() map[string]any {
	ext := map[string]any{"code": e.Code}
	if len(e.InvalidArgs) > 0 {
		ext["invalidArgs"] = e.InvalidArgs
	}
	return ext
}

func NewAPIError(code, message string, status int) *APIError {
	return &APIError{Code: code, Message: message, Status: status}
}

var (
	ErrNotAuthenticated = NewAPIError(CodeAuthentication, "not authenticated", http.StatusUnauthorized)
	ErrInvalidToken     = NewAPIError(CodeInvalidToken, "invalid token", http.StatusUnauthorized)
	ErrInternal         = NewAPIError(CodeInternal, "internal server error", http.StatusInternalServerError)
)

// NotFound builds a lookup-failure error for a missing record.
func NotFound(message string) *APIError {
	return NewAPIError(CodeNotFound, message, http.StatusNotFound)
}

// Validation builds a persistence-rejection error carrying the arguments
// that caused it.
func Validation(message string, invalidArgs map[string]any) *APIError {
	err := NewAPIError(CodeValidation, message, http.StatusBadRequest)
	err.InvalidArgs = invalidArgs
	return err
}

// Wrap converts an arbitrary error into an APIError, passing through errors
// that already are one.
func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	wrapped := NewAPIError(code, message, status)
	wrapped.InvalidArgs = map[string]any{"cause": err.Error()}
	return wrapped
}
