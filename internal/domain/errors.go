package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode classifies every failure the synchronization engine can return.
type ErrorCode string

const (
	// ErrCodeNotFound is returned when an application, token, assistant,
	// thread, message or service binding does not exist on the ledger.
	ErrCodeNotFound ErrorCode = "not_found"
	// ErrCodePermissionDenied is returned when an ownership or role check
	// fails.
	ErrCodePermissionDenied ErrorCode = "permission_denied"
	// ErrCodeAlreadyExists is returned on duplicate assistant creation.
	ErrCodeAlreadyExists ErrorCode = "already_exists"
	// ErrCodeUnavailable is returned when the compute service is not
	// running or no session could be established.
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeDeadlineExceeded is returned when a bridge call, run poll or
	// balance poll times out. The provider-side operation is not cancelled
	// and its true outcome is unknown.
	ErrCodeDeadlineExceeded ErrorCode = "deadline_exceeded"
	// ErrCodeProviderError is returned when the provider reports an
	// explicit failure status.
	ErrCodeProviderError ErrorCode = "provider_error"
	// ErrCodePayloadTooLarge is returned when a ledger transaction exceeds
	// the serialized size ceiling.
	ErrCodePayloadTooLarge ErrorCode = "payload_too_large"
	// ErrCodeInternal is returned when a ledger transaction commits with a
	// non-zero result code.
	ErrCodeInternal ErrorCode = "internal"
)

// Error is the typed error returned by every component of the engine.
// RunID and TxID carry reconciliation context for deadline failures so the
// caller can verify the outcome out-of-band.
type Error struct {
	Code    ErrorCode
	Message string
	// RunID identifies the provider run when a run poll timed out.
	RunID string
	// TxID identifies the charge or ledger transaction involved.
	TxID string
	// ProviderPayload carries the provider's failure payload for diagnostics.
	ProviderPayload json.RawMessage
	// Err is the wrapped cause, if any.
	Err error
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

// WithRun attaches the run identifier to the error.
func (e *Error) WithRun(runID string) *Error {
	e.RunID = runID
	return e
}

// WithTx attaches the transaction identifier to the error.
func (e *Error) WithTx(txID string) *Error {
	e.TxID = txID
	return e
}

// NewError builds a typed error with a formatted message.
func NewError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WrapError builds a typed error wrapping a cause.
func WrapError(code ErrorCode, err error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func NewNotFound(format string, args ...interface{}) *Error {
	return NewError(ErrCodeNotFound, format, args...)
}

func NewPermissionDenied(format string, args ...interface{}) *Error {
	return NewError(ErrCodePermissionDenied, format, args...)
}

func NewAlreadyExists(format string, args ...interface{}) *Error {
	return NewError(ErrCodeAlreadyExists, format, args...)
}

func NewUnavailable(format string, args ...interface{}) *Error {
	return NewError(ErrCodeUnavailable, format, args...)
}

func NewDeadlineExceeded(format string, args ...interface{}) *Error {
	return NewError(ErrCodeDeadlineExceeded, format, args...)
}

func NewProviderError(payload json.RawMessage, format string, args ...interface{}) *Error {
	e := NewError(ErrCodeProviderError, format, args...)
	e.ProviderPayload = payload
	return e
}

func NewPayloadTooLarge(format string, args ...interface{}) *Error {
	return NewError(ErrCodePayloadTooLarge, format, args...)
}

func NewInternal(format string, args ...interface{}) *Error {
	return NewError(ErrCodeInternal, format, args...)
}

// CodeOf extracts the error code from err, or ErrCodeInternal when err does
// not carry one.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
