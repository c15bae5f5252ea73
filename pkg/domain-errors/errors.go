// Package domainerrors defines the coded error taxonomy surfaced by the
// registry core. Stores return sentinel errors (pkg/platform/sentinel);
// services translate them into coded errors here; the transport maps codes
// to HTTP statuses. Conventionally imported as dErrors.
package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure for callers. Every violation aborts the whole
// operation; nothing is partially applied.
type Code string

const (
	// CodeUnauthorized — caller is not the registry owner on a gated write.
	CodeUnauthorized Code = "unauthorized"
	// CodeNotFound — a referenced entity, batch, or certificate does not exist.
	CodeNotFound Code = "not_found"
	// CodeInvalidRole — a referenced entity lacks the role the operation requires.
	CodeInvalidRole Code = "invalid_role"
	// CodeConflict — the record already exists (duplicate entity id).
	CodeConflict Code = "conflict"
	// CodeBadRequest — malformed input rejected before any state is touched.
	CodeBadRequest Code = "bad_request"
	// CodeInternal — infrastructure failure; safe to retry from the caller side.
	CodeInternal Code = "internal"
)

// Error carries a code, a caller-facing message, and an optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a coded error with no underlying cause.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, Err: err}
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// CodeOf extracts the code from err, defaulting to CodeInternal for
// uncategorized failures.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the caller-facing message from err.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return "internal error"
}

// ToHTTPStatus maps a code to the HTTP status the transport should return.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeUnauthorized:
		return http.StatusForbidden
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidRole, CodeBadRequest:
		return http.StatusBadRequest
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
