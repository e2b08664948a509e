package grpcapi

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/cuemby/ironforged/internal/supervisor"
	"github.com/cuemby/ironforged/pkg/log"
)

// Server adapts supervisor.Registry to the SupervisorServer gRPC
// interface, translating the core's sentinel error taxonomy into gRPC
// status codes per §7's propagation policy.
type Server struct {
	registry *supervisor.Registry
}

// NewServer constructs a transport-level server over registry.
func NewServer(registry *supervisor.Registry) *Server {
	return &Server{registry: registry}
}

func (s *Server) SubmitCreationRequest(ctx context.Context, req *SubmitCreationRequestRequest) (*SubmitCreationRequestResponse, error) {
	id, err := s.registry.SubmitCreationRequest(ctx, supervisor.CreationRequest{
		Name: req.Name,
		Command: supervisor.Command{
			Program: req.Program,
			Args:    req.Args,
		},
	})
	if err != nil {
		log.WithComponent("grpcapi").Warn().
			Err(err).
			Str("name", req.Name).
			Msg("creation request rejected")
		return nil, statusFromError(err)
	}

	return &SubmitCreationRequestResponse{ApplicationID: id.String()}, nil
}

func statusFromError(err error) error {
	switch {
	case errors.Is(err, supervisor.ErrConfigurationInvalid):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, supervisor.ErrPersistenceFailure):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, supervisor.ErrSpawnFailed):
		return status.Error(codes.Internal, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}
