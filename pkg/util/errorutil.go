package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// Validation failure kinds for ticket payloads.

func NewMissingRequiredField(message string) error {
	return NewDomainError("MISSING_REQUIRED_FIELD", message, http.StatusBadRequest, nil)
}

func NewInvalidFloor() error {
	return NewDomainError("INVALID_FLOOR", "floor must be an integer between -3 and 6", http.StatusBadRequest, nil)
}

func NewInvalidPriority() error {
	return NewDomainError("INVALID_PRIORITY", "invalid priority", http.StatusBadRequest, nil)
}

func NewInvalidStatus() error {
	return NewDomainError("INVALID_STATUS", "invalid status", http.StatusBadRequest, nil)
}

func NewInvalidTicketType() error {
	return NewDomainError("INVALID_TICKET_TYPE", "invalid ticket type", http.StatusBadRequest, nil)
}

func NewNoFieldsToUpdate() error {
	return NewDomainError("NO_FIELDS_TO_UPDATE", "no valid fields to update", http.StatusBadRequest, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

// NewInvalidCredentials covers both unknown username and wrong password, so
// responses do not leak account existence.
func NewInvalidCredentials() error {
	return NewDomainError("INVALID_CREDENTIALS", "invalid login", http.StatusUnauthorized, nil)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewMissingToken() error {
	return NewDomainError("MISSING_TOKEN", "missing token", http.StatusUnauthorized, nil)
}

func NewInvalidOrExpiredToken() error {
	return NewDomainError("INVALID_OR_EXPIRED_TOKEN", "invalid or expired token", http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
			return de
		}
	}
	if de, ok := NewInternalError(err).(*DomainError); ok {
		return de
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
