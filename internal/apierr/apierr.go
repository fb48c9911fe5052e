package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the domain error carried from services up to the HTTP layer.
// Status decides the response code; Field is set for validation errors so
// the response can name the offending field.
type Error struct {
	Status int
	Code   string
	Field  string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// Validation reports a bad field value. Maps to 400.
func Validation(field, msg string) *Error {
	return &Error{
		Status: http.StatusBadRequest,
		Code:   "validation_error",
		Field:  field,
		Err:    errors.New(msg),
	}
}

// NotFound reports a missing entity or relation. Maps to 404.
func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Code: "not_found", Err: errors.New(msg)}
}

// Conflict reports an already-existing relation. Served as 400 with a human
// message rather than 409, matching the frontend contract.
func Conflict(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Code: "conflict", Err: errors.New(msg)}
}

// Forbidden reports a mutation attempted by a non-owner. Maps to 403.
func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Code: "forbidden", Err: errors.New(msg)}
}

// Unauthorized reports a missing or invalid credential. Maps to 401.
func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Code: "unauthorized", Err: errors.New(msg)}
}

// From extracts an *Error from an error chain, or nil.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}
