// Package grpc exposes the standard gRPC health service next to the REST
// API. The overall service is SERVING while the process runs; the
// persistence.database service reports whether the relational store is in
// use.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// PersistenceService is the health service name tracking database mode.
const PersistenceService = "persistence.database"

type GRPCServer struct {
	address string
	logger  logging.Logger
	health  *health.Server
}

func NewGRPCServer(a string, l logging.Logger, mode repomanager.Mode) *GRPCServer {
	return &GRPCServer{
		address: a,
		logger:  l.With("module", "grpc_server"),
		health:  newHealthServer(mode),
	}
}

func newHealthServer(mode repomanager.Mode) *health.Server {
	h := health.NewServer()
	h.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	persistence := healthpb.HealthCheckResponse_NOT_SERVING
	if mode == repomanager.ModeDatabase {
		persistence = healthpb.HealthCheckResponse_SERVING
	}
	h.SetServingStatus(PersistenceService, persistence)
	return h
}

func (s *GRPCServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	s.logger.Info(ctx, "Starting gRPC server", "address", s.address)
	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor))
	healthpb.RegisterHealthServer(srv, s.health)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	if err := srv.Serve(lis); err != nil {
		return err
	}
	<-stopped
	return nil
}
