// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the errors services hand to the transport layer.

An [AppError] knows the HTTP status it renders as, so handlers never inspect
storage errors. Services report NotFound, Conflict, ValidationError or
Internal; the middleware adds Unauthorized, Forbidden and RateLimited.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Codes returned in the "code" member of an error response.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL_ERROR"
)

// AppError is a client-safe failure. Cause is logged but never rendered.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Cause      error
	Details    []FieldError
}

// FieldError points at one offending member of a request body, such as
// "participants[1].entity_id".
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause attaches the underlying error, keeping it reachable through
// [errors.As] for callers that branch on the storage failure.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # 4xx

// NotFound reports a missing resource, e.g. NotFound("Combat").
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, CodeNotFound, resource+" not found")
}

func Unauthorized(message string) *AppError {
	return newError(http.StatusUnauthorized, CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return newError(http.StatusForbidden, CodeForbidden, message)
}

// Conflict reports a clash with stored state: a duplicate label, a stale
// reference or a row still in use.
func Conflict(message string, details ...FieldError) *AppError {
	appError := newError(http.StatusConflict, CodeConflict, message)
	appError.Details = details
	return appError
}

func ValidationError(message string, details ...FieldError) *AppError {
	appError := newError(http.StatusBadRequest, CodeValidation, message)
	appError.Details = details
	return appError
}

func RateLimited(retryAfterSeconds int) *AppError {
	return newError(http.StatusTooManyRequests, CodeRateLimited,
		fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds))
}

// # 5xx

// Internal hides cause behind a generic message.
func Internal(cause error) *AppError {
	appError := newError(http.StatusInternalServerError, CodeInternal, "An unexpected error occurred")
	appError.Cause = cause
	return appError
}

// # Inspection

// As returns the first [*AppError] in err's chain, or nil.
func As(err error) *AppError {
	var appError *AppError
	if errors.As(err, &appError) {
		return appError
	}
	return nil
}

func IsAppError(err error) bool {
	return As(err) != nil
}

func HasCode(err error, code string) bool {
	appError := As(err)
	return appError != nil && appError.Code == code
}
