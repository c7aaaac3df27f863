package grpc

import (
	"errors"
	"net"
	"sync/atomic"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/config"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/proto/fasttextserving"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// pollInterval is how often Run checks the running flag
const pollInterval = 100 * time.Millisecond

type Server struct {
	GRPCServer *grpc.Server
	health     *health.Server
	timeout    time.Duration
}

// NewServer builds a gRPC server with the fasttext service, health and reflection registered
func NewServer(config config.Configs, handler fasttextserving.FasttextServingServer) *Server {
	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(config.GrpcMaxRecvBytes),
		grpc.MaxSendMsgSize(config.GrpcMaxSendBytes),
		grpc.ChainUnaryInterceptor(ServerInterceptor, RecoveryInterceptor),
		grpc.ChainStreamInterceptor(StreamServerInterceptor, StreamRecoveryInterceptor),
	}
	if config.TracingEnabled {
		opts = append(opts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	grpcServer := grpc.NewServer(opts...)

	fasttextserving.RegisterFasttextServingServer(grpcServer, handler)
	healthServer := health.NewServer()
	healthServer.SetServingStatus(fasttextserving.FasttextServing_ServiceDesc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		GRPCServer: grpcServer,
		health:     healthServer,
		timeout:    config.ShutdownTimeout,
	}
}

// Serve blocks until the listener fails or the server is stopped
func (s *Server) Serve(listener net.Listener) error {
	err := s.GRPCServer.Serve(listener)
	if errors.Is(err, grpc.ErrServerStopped) {
		return nil
	}
	return err
}

// Run serves until running turns false, then drains in-flight streams and stops
func (s *Server) Run(listener net.Listener, running *atomic.Bool) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Serve(listener)
	}()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for running.Load() {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
		}
	}

	log.Info().Msg("Shutting down gRPC server")
	s.Stop()
	return <-errCh
}

// Stop marks the server as not serving and waits for in-flight RPCs, bounded by the shutdown timeout
func (s *Server) Stop() {
	s.health.Shutdown()
	if s.timeout <= 0 {
		s.GRPCServer.GracefulStop()
		return
	}
	done := make(chan struct{})
	go func() {
		s.GRPCServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(s.timeout):
		log.Warn().Msgf("gRPC graceful stop exceeded %v, forcing stop", s.timeout)
		s.GRPCServer.Stop()
	}
}
