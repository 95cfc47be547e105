package errors

import (
	"errors"
)

// As is a wrapper around errors.As that works with our Error type
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// Is checks if an error is of a specific type
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// lookup returns the outermost *Error in err's chain
func lookup(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr, true
	}
	return nil, false
}

// GetCode extracts the error code from an error. Nil is CodeOK and any
// error outside this package is CodeInternal.
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}
	if customErr, ok := lookup(err); ok {
		return customErr.Code
	}
	return CodeInternal
}

// GetReason extracts the loadout reason from an error, empty if none
func GetReason(err error) Reason {
	if customErr, ok := lookup(err); ok {
		return customErr.Reason
	}
	return ""
}

// HasReason reports whether err carries the given reason
func HasReason(err error, reason Reason) bool {
	return err != nil && GetReason(err) == reason
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]any {
	if customErr, ok := lookup(err); ok {
		return customErr.Meta
	}
	return nil
}

// GetMessage extracts the user-facing message from an error
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	if customErr, ok := lookup(err); ok {
		return customErr.Message
	}
	return err.Error()
}

// IsServerFault reports whether err should be logged as a service failure
func IsServerFault(err error) bool {
	return err != nil && GetCode(err).IsServerFault()
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool { return GetCode(err) == CodeAlreadyExists }

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool { return GetCode(err) == CodeUnavailable }

// IsResourceExhausted checks if an error is a resource exhausted error
func IsResourceExhausted(err error) bool { return GetCode(err) == CodeResourceExhausted }

// IsFailedPrecondition checks if an error is a failed precondition error
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }
