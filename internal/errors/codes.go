package errors

import "google.golang.org/grpc/codes"

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK                 Code = "OK"
	CodeCanceled           Code = "CANCELED"
	CodeInvalidArgument    Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded   Code = "DEADLINE_EXCEEDED"
	CodeNotFound           Code = "NOT_FOUND"
	CodeAlreadyExists      Code = "ALREADY_EXISTS"
	CodeResourceExhausted  Code = "RESOURCE_EXHAUSTED"
	CodeFailedPrecondition Code = "FAILED_PRECONDITION"
	CodeUnimplemented      Code = "UNIMPLEMENTED"
	CodeInternal           Code = "INTERNAL"
	CodeUnavailable        Code = "UNAVAILABLE"
)

// grpcCodes pairs every Code with its status code. Unlisted status codes
// decode as CodeInternal.
var grpcCodes = map[Code]codes.Code{
	CodeOK:                 codes.OK,
	CodeCanceled:           codes.Canceled,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeDeadlineExceeded:   codes.DeadlineExceeded,
	CodeNotFound:           codes.NotFound,
	CodeAlreadyExists:      codes.AlreadyExists,
	CodeResourceExhausted:  codes.ResourceExhausted,
	CodeFailedPrecondition: codes.FailedPrecondition,
	CodeUnimplemented:      codes.Unimplemented,
	CodeInternal:           codes.Internal,
	CodeUnavailable:        codes.Unavailable,
}

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// GRPCCode returns the corresponding gRPC code, codes.Unknown for an
// unrecognized Code
func (c Code) GRPCCode() codes.Code {
	if grpcCode, ok := grpcCodes[c]; ok {
		return grpcCode
	}
	return codes.Unknown
}

// IsServerFault reports whether the code blames the service rather than
// the request. Callers log these at error level.
func (c Code) IsServerFault() bool {
	switch c {
	case CodeInternal, CodeUnavailable, CodeDeadlineExceeded, CodeUnimplemented:
		return true
	default:
		return false
	}
}

func grpcCodeToCode(grpcCode codes.Code) Code {
	for code, candidate := range grpcCodes {
		if candidate == grpcCode {
			return code
		}
	}
	return CodeInternal
}
