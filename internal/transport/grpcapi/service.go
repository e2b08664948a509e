package grpcapi

import (
	"context"

	"google.golang.org/grpc"
)

// SubmitCreationRequestRequest is the wire shape of §6's creation
// request: properties plus the handful of fields a remote caller can
// actually supply (initial_handlers are a server-side concern — a
// remote caller cannot hand over live handler values — so only the
// built-in handlers apply to requests arriving over this transport).
type SubmitCreationRequestRequest struct {
	Name    string   `json:"name"`
	Program string   `json:"program"`
	Args    []string `json:"args"`
}

// SubmitCreationRequestResponse carries the assigned application
// identifier.
type SubmitCreationRequestResponse struct {
	ApplicationID string `json:"application_id"`
}

// SupervisorServer is the service interface a transport-level handler
// implements.
type SupervisorServer interface {
	SubmitCreationRequest(ctx context.Context, req *SubmitCreationRequestRequest) (*SubmitCreationRequestResponse, error)
}

// RegisterSupervisorServer registers srv against s using the
// hand-written service descriptor below.
func RegisterSupervisorServer(s *grpc.Server, srv SupervisorServer) {
	s.RegisterService(&supervisorServiceDesc, srv)
}

var supervisorServiceDesc = grpc.ServiceDesc{
	ServiceName: "ironforged.Supervisor",
	HandlerType: (*SupervisorServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "SubmitCreationRequest",
			Handler:    submitCreationRequestHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ironforged/supervisor.proto",
}

func submitCreationRequestHandler(
	srv any,
	ctx context.Context,
	dec func(any) error,
	interceptor grpc.UnaryServerInterceptor,
) (any, error) {
	in := new(SubmitCreationRequestRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SupervisorServer).SubmitCreationRequest(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/ironforged.Supervisor/SubmitCreationRequest",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SupervisorServer).SubmitCreationRequest(ctx, req.(*SubmitCreationRequestRequest))
	}
	return interceptor(ctx, in, info, handler)
}
