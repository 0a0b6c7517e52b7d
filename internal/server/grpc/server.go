// Package grpc exposes the note store over gRPC as sealnote.NoteStore.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/sealnote/internal/logging"
	"github.com/dmitrijs2005/sealnote/internal/noteapi"
	"github.com/dmitrijs2005/sealnote/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type GRPCServer struct {
	address      string
	notes        *services.NoteService
	logger       logging.Logger
	jwtSecret    []byte
	authRequired bool
}

func NewGRPCServer(a string, l logging.Logger, ns *services.NoteService, secretKey string, authRequired bool) *GRPCServer {
	return &GRPCServer{
		address:      a,
		logger:       l.With("module", "grpc_server"),
		notes:        ns,
		jwtSecret:    []byte(secretKey),
		authRequired: authRequired,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.recoveryInterceptor, s.accessTokenInterceptor))

	noteapi.RegisterNoteStoreServer(srv, &handler{notes: s.notes, logger: s.logger})

	hs := health.NewServer()
	hs.SetServingStatus(noteapi.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String(), "auth_required", s.authRequired)

	return srv.Serve(lis)
}
