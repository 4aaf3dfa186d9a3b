package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// Dispatch errors. Every one of them is returned to the caller; none is ever
// encoded as a failed delivery status.
var (
	// ErrUnsupportedMessageKind indicates a message kind the normalizer cannot map
	ErrUnsupportedMessageKind = errors.New("unsupported message kind")

	// ErrPayloadTooLarge indicates a file payload above the staging ceiling
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrMissingFileSource indicates a file send with neither a URL nor data
	ErrMissingFileSource = errors.New("either file URL or file data is required")

	// ErrPlatformCallFailed indicates the messaging platform call did not succeed
	ErrPlatformCallFailed = errors.New("platform call failed")

	// ErrMIMETypeNotAllowed indicates a file whose MIME type is not in the allow list
	ErrMIMETypeNotAllowed = errors.New("mime type not allowed")
)

// ValidationError represents a validation error with detailed field information.
// It implements the error interface and provides context about which field failed validation.
type ValidationError struct {
	Field   string
	Message string
}

// Error returns a formatted error message for the validation error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is makes every ValidationError match ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

// UnsupportedKindError carries the message kind the normalizer rejected.
type UnsupportedKindError struct {
	Kind MessageKind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported message type: %s", e.Kind)
}

func (e *UnsupportedKindError) Is(target error) bool {
	return target == ErrUnsupportedMessageKind
}

// PayloadTooLargeError reports the rejected payload size against the ceiling.
type PayloadTooLargeError struct {
	Size  int64
	Limit int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("file size %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

func (e *PayloadTooLargeError) Is(target error) bool {
	return target == ErrPayloadTooLarge
}

// PlatformError wraps a transport, auth or rate-limit failure of a platform call.
// Op describes the attempted call, e.g. "send LINE message".
type PlatformError struct {
	Op  string
	Err error
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PlatformError) Unwrap() error {
	return e.Err
}

func (e *PlatformError) Is(target error) bool {
	return target == ErrPlatformCallFailed
}
