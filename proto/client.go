package proto

import (
	"context"

	"google.golang.org/grpc"
)

// PanchangamClient is the client API for the Panchangam service.
type PanchangamClient interface {
	Get(ctx context.Context, in *GetPanchangamRequest, opts ...grpc.CallOption) (*GetPanchangamResponse, error)
}

type panchangamClient struct {
	cc grpc.ClientConnInterface
}

// NewPanchangamClient creates a PanchangamClient backed by the given
// connection. Requests and responses travel as JSON via the codec
// registered in codec.go rather than the protobuf wire format a generated
// client would use.
func NewPanchangamClient(cc grpc.ClientConnInterface) PanchangamClient {
	return &panchangamClient{cc}
}

func (c *panchangamClient) Get(ctx context.Context, in *GetPanchangamRequest, opts ...grpc.CallOption) (*GetPanchangamResponse, error) {
	out := new(GetPanchangamResponse)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(JSONCodec{}.Name())}, opts...)
	err := c.cc.Invoke(ctx, "/panchangam.Panchangam/Get", in, out, callOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}
