// Package errors holds the domain error taxonomy shared by services and handlers.
package errors

import (
	"errors"
	"net/http"
	"sort"
	"strings"
)

// DomainError is a classified failure with an HTTP status.
type DomainError struct {
	Code    string
	Message string
	Status  int
}

func (e *DomainError) Error() string {
	return e.Message
}

var (
	ErrNotFound = &DomainError{
		Code:    "NOT_FOUND",
		Message: "Not found.",
		Status:  http.StatusNotFound,
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "No active account found with the given credentials",
		Status:  http.StatusUnauthorized,
	}
	ErrTokenInvalid = &DomainError{
		Code:    "TOKEN_INVALID",
		Message: "Token is invalid or expired",
		Status:  http.StatusUnauthorized,
	}
	ErrTokenRevoked = &DomainError{
		Code:    "TOKEN_REVOKED",
		Message: "Token is blacklisted",
		Status:  http.StatusUnauthorized,
	}
	ErrUnauthenticated = &DomainError{
		Code:    "NOT_AUTHENTICATED",
		Message: "Authentication credentials were not provided.",
		Status:  http.StatusUnauthorized,
	}
)

// ValidationError carries per-field, client-correctable messages.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// FieldError is a shortcut for a single failing field.
func FieldError(field, message string) *ValidationError {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// AsDomain unwraps a DomainError from err.
func AsDomain(err error) (*DomainError, bool) {
	var d *DomainError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
