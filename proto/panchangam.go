// Package proto defines the Panchangam gRPC service's wire messages and
// server contract. The service predates a checked-in .proto/protoc-gen-go
// pipeline, so the messages are hand-written Go structs carried over JSON
// (registered as a grpc codec in codec.go) rather than generated from a schema.
package proto

import (
	"context"

	"google.golang.org/grpc"
)

// GetPanchangamRequest is the request for Get.
type GetPanchangamRequest struct {
	Date              string  `json:"date"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Timezone          string  `json:"timezone"`
	Region            string  `json:"region"`
	CalculationMethod string  `json:"calculation_method"`
	Locale            string  `json:"locale"`
}

// PanchangamEvent is a single timed event within a day's panchangam.
type PanchangamEvent struct {
	Name      string `json:"name"`
	Time      string `json:"time"`
	EventType string `json:"event_type"`
}

// PanchangamData is the full computed panchangam for one civil day.
type PanchangamData struct {
	Date           string             `json:"date"`
	Tithi          string             `json:"tithi"`
	Nakshatra      string             `json:"nakshatra"`
	Yoga           string             `json:"yoga"`
	Karana         string             `json:"karana"`
	SunriseTime    string             `json:"sunrise_time"`
	SunsetTime     string             `json:"sunset_time"`
	Events         []*PanchangamEvent `json:"events"`
	Timezone       string             `json:"timezone"`
	TimezoneOffset string             `json:"timezone_offset"`
	IsDst          bool               `json:"is_dst"`
}

// GetPanchangamResponse is the response for Get.
type GetPanchangamResponse struct {
	PanchangamData *PanchangamData `json:"panchangam_data"`
}

// PanchangamServer is the service contract implemented by the panchangam service.
type PanchangamServer interface {
	Get(context.Context, *GetPanchangamRequest) (*GetPanchangamResponse, error)
}

// UnimplementedPanchangamServer embeds into server implementations for
// forward compatibility: new methods added to PanchangamServer get a
// default unimplemented body instead of breaking every implementer.
type UnimplementedPanchangamServer struct{}

func (UnimplementedPanchangamServer) Get(context.Context, *GetPanchangamRequest) (*GetPanchangamResponse, error) {
	return nil, errUnimplemented("Get")
}

func errUnimplemented(method string) error {
	return &unimplementedError{method: method}
}

type unimplementedError struct{ method string }

func (e *unimplementedError) Error() string {
	return "method " + e.method + " not implemented"
}

func _Panchangam_Get_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(GetPanchangamRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(PanchangamServer).Get(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/panchangam.Panchangam/Get",
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(PanchangamServer).Get(ctx, req.(*GetPanchangamRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// PanchangamServiceDesc is the hand-written grpc.ServiceDesc that stands in
// for protoc-gen-go-grpc output.
var PanchangamServiceDesc = grpc.ServiceDesc{
	ServiceName: "panchangam.Panchangam",
	HandlerType: (*PanchangamServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Get",
			Handler:    _Panchangam_Get_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "panchangam.proto",
}

// RegisterPanchangamServer registers an implementation of PanchangamServer
// with a grpc.Server.
func RegisterPanchangamServer(s grpc.ServiceRegistrar, srv PanchangamServer) {
	s.RegisterService(&PanchangamServiceDesc, srv)
}
