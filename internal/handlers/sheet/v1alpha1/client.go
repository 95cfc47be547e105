package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// Client calls the sheet service over a gRPC connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client on an established connection
func NewClient(conn grpc.ClientConnInterface) (*Client, error) {
	if conn == nil {
		return nil, errors.InvalidArgument("connection is required")
	}
	return &Client{conn: conn}, nil
}

// Call invokes a service method with a JSON-like request document and
// returns the decoded response document
func (c *Client) Call(ctx context.Context, method string, req map[string]any) (map[string]any, error) {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "request is not encodable")
	}

	out := &structpb.Struct{}
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out); err != nil {
		return nil, errors.FromGRPCError(err)
	}
	return out.AsMap(), nil
}
