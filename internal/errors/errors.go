package errors

import (
	"errors"
	"fmt"
)

// Error represents a structured error with code, reason, message, and metadata
type Error struct {
	Code    Code           `json:"code"`
	Reason  Reason         `json:"reason,omitempty"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	prefix := string(e.Code)
	if e.Reason != "" {
		prefix = fmt.Sprintf("%s(%s)", e.Code, e.Reason)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on code, and on reason when the target carries one
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if !errors.As(target, &targetErr) {
		return false
	}
	if e.Code != targetErr.Code {
		return false
	}
	return targetErr.Reason == "" || e.Reason == targetErr.Reason
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// WithReason tags the error with a loadout reason
func (e *Error) WithReason(reason Reason) *Error {
	e.Reason = reason
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an existing error, preserving its code and reason if it's an Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Code:    existingErr.Code,
			Reason:  existingErr.Reason,
			Message: message,
			Cause:   err,
			Meta:    existingErr.Meta,
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code, dropping any reason
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	meta := make(map[string]any)
	if errors.As(err, &existingErr) && existingErr.Meta != nil {
		for k, v := range existingErr.Meta {
			meta[k] = v
		}
	}

	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
		Meta:    meta,
	}
}

// Constructor functions for common error types

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a not found error with formatted message
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// AlreadyExistsf creates an already exists error with formatted message
func AlreadyExistsf(format string, args ...any) *Error {
	return Newf(CodeAlreadyExists, format, args...)
}

// Internalf creates an internal error with formatted message
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Unavailablef creates an unavailable error with formatted message
func Unavailablef(format string, args ...any) *Error {
	return Newf(CodeUnavailable, format, args...)
}

// ResourceExhaustedf creates a resource exhausted error with formatted message
func ResourceExhaustedf(format string, args ...any) *Error {
	return Newf(CodeResourceExhausted, format, args...)
}

// FailedPreconditionf creates a failed precondition error with formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}
