// Typed error taxonomy shared by services and controllers.
// Controllers map these to HTTP status codes; anything else is a generic 500.
package apperror

import (
	"errors"
	"fmt"
)

// ValidationError indicates user-correctable input (400).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a referenced entity is absent (404).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// ConflictError indicates a uniqueness violation (409),
// e.g. a second active subscription for the same owner.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError indicates a billing provider call failed (500).
// Local state must be left unmodified when this is returned.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("billing provider %s failed: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func Upstream(op string, err error) error {
	return &UpstreamError{Op: op, Err: err}
}

// StorageError indicates the persistence layer is unavailable or
// rejected a write for a non-conflict reason (500).
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func Storage(err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Err: err}
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
