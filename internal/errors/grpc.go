package errors

import (
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain identifies loadout errors inside errdetails.ErrorInfo
const ErrorDomain = "rpg-loadout"

// ToGRPCError converts an error to a gRPC status error
func ToGRPCError(err error) error {
	if err == nil {
		return nil
	}

	if _, ok := status.FromError(err); ok {
		return err
	}

	var customErr *Error
	if As(err, &customErr) {
		st := status.New(customErr.Code.GRPCCode(), customErr.Message)

		if customErr.Reason != "" || len(customErr.Meta) > 0 {
			info := &errdetails.ErrorInfo{
				Reason:   string(customErr.Reason),
				Domain:   ErrorDomain,
				Metadata: stringifyMeta(customErr.Meta),
			}
			if withDetails, detailErr := st.WithDetails(info); detailErr == nil {
				st = withDetails
			}
		}

		return st.Err()
	}

	return status.Error(codes.Internal, err.Error())
}

// FromGRPCError converts a gRPC error to our custom error
func FromGRPCError(err error) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return err
	}

	customErr := &Error{
		Code:    grpcCodeToCode(st.Code()),
		Message: st.Message(),
	}

	for _, detail := range st.Details() {
		info, ok := detail.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != ErrorDomain {
			continue
		}
		customErr.Reason = Reason(info.GetReason())
		for k, v := range info.GetMetadata() {
			customErr.WithMeta(k, v)
		}
		break
	}

	return customErr
}

func stringifyMeta(meta map[string]any) map[string]string {
	if len(meta) == 0 {
		return nil
	}
	out := make(map[string]string, len(meta))
	for k, v := range meta {
		out[k] = fmt.Sprint(v)
	}
	return out
}
