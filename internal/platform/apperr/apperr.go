// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error taxonomy for the devhub API.

It bridges low-level storage and security failures to the HTTP responses the
routing layer writes.

Architecture:

  - AppError: machine-readable Code plus a client-safe message.
  - Mapping: every AppError carries its HTTP status.
  - Identity: NotFound and Forbidden are separate codes and never collapse.

Every error that leaves the service layer should be an [AppError] or wrap one.
*/
package apperr

import (
	"errors"
	"net/http"
)

// # Codes

// Machine-readable codes carried in [AppError.Code].
const (
	CodeUnauthenticated    = "UNAUTHENTICATED"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeAlreadyLiked       = "ALREADY_LIKED"
	CodeNotLiked           = "NOT_LIKED"
	CodeValidation         = "VALIDATION_ERROR"
	CodeUpstream           = "UPSTREAM_ERROR"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
	CodeInternal           = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the devhub API.
//
// # Security
//
// Cause is for server-side logging only and is never sent to clients.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is a human-readable description safe to return to the client.
	Message string `json:"error"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e that records cause for logging.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # Identity Errors (401)

// Unauthenticated is returned when no credential accompanies a request that requires one.
func Unauthenticated() *AppError {
	return &AppError{
		Code:       CodeUnauthenticated,
		Message:    "No token, authorization denied",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken is returned when a credential is present but fails verification.
func InvalidToken(cause error) *AppError {
	return &AppError{
		Code:       CodeInvalidToken,
		Message:    "Token is not valid",
		HTTPStatus: http.StatusUnauthorized,
		Cause:      cause,
	}
}

// InvalidCredentials is returned by login for an unknown email or a wrong password.
// Both cases share one message to prevent account enumeration.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:       CodeInvalidCredentials,
		Message:    "Invalid credentials",
		HTTPStatus: http.StatusBadRequest,
	}
}

// # Client Errors (4xx)

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Post") // Returns "Post not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Forbidden creates a 403 [AppError] for a failed ownership check.
func Forbidden(msg string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(msg string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    msg,
		HTTPStatus: http.StatusConflict,
	}
}

// AlreadyLiked is returned when a user likes a post they already like.
func AlreadyLiked() *AppError {
	return &AppError{
		Code:       CodeAlreadyLiked,
		Message:    "Post already liked",
		HTTPStatus: http.StatusConflict,
	}
}

// NotLiked is returned when a user unlikes a post they never liked.
func NotLiked() *AppError {
	return &AppError{
		Code:       CodeNotLiked,
		Message:    "Post has not yet been liked",
		HTTPStatus: http.StatusBadRequest,
	}
}

// ValidationError creates a 400 [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// # Server Errors (5xx)

// Upstream creates a 502 [AppError] for a failing third-party API.
func Upstream(msg string, cause error) *AppError {
	return &AppError{
		Code:       CodeUpstream,
		Message:    msg,
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// StorageUnavailable creates a 503 [AppError] for a persistence timeout or outage.
func StorageUnavailable(cause error) *AppError {
	return &AppError{
		Code:       CodeStorageUnavailable,
		Message:    "Storage is temporarily unavailable",
		HTTPStatus: http.StatusServiceUnavailable,
		Cause:      cause,
	}
}

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// HasCode reports whether the first [*AppError] in err's chain carries code.
func HasCode(err error, code string) bool {
	ae := As(err)
	return ae != nil && ae.Code == code
}

// IsNotFound reports whether err is a NOT_FOUND [AppError].
func IsNotFound(err error) bool {
	return HasCode(err, CodeNotFound)
}
