package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors. Typed errors below match them through errors.Is.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("duplicate entry")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidState       = errors.New("invalid state")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInactiveAccount    = errors.New("account is not active")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrStorageDisabled    = errors.New("document storage is not configured")
)

// NotFoundError reports a missing referenced entity
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// DuplicateError reports a unique-field collision
type DuplicateError struct {
	Entity string
	Field  string
	Value  string
}

func (e *DuplicateError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s with this %s already exists", e.Entity, e.Field)
	}
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// ValidationError reports missing or malformed input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InvalidStateError reports a workflow invoked on an entity in the wrong status
type InvalidStateError struct {
	Entity   string
	Current  string
	Expected []string
}

func (e *InvalidStateError) Error() string {
	if len(e.Expected) == 0 {
		return fmt.Sprintf("%s is in status %q", e.Entity, e.Current)
	}
	return fmt.Sprintf("%s is in status %q, expected %s", e.Entity, e.Current, strings.Join(e.Expected, " or "))
}

func (e *InvalidStateError) Is(target error) bool { return target == ErrInvalidState }

// NotFound builds a NotFoundError
func NotFound(entity string, id any) error {
	return &NotFoundError{Entity: entity, ID: fmt.Sprint(id)}
}

// Duplicate builds a DuplicateError
func Duplicate(entity, field, value string) error {
	return &DuplicateError{Entity: entity, Field: field, Value: value}
}

// Invalid builds a ValidationError
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// InvalidState builds an InvalidStateError
func InvalidState[S ~string](entity string, current S, expected ...S) error {
	e := &InvalidStateError{Entity: entity, Current: string(current)}
	for _, s := range expected {
		e.Expected = append(e.Expected, string(s))
	}
	return e
}
