package mux

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	grpcserver "github.com/Meesho/BharatMLStack/fasttext-serving/internal/server/grpc"
	httpserver "github.com/Meesho/BharatMLStack/fasttext-serving/internal/server/http"
	"github.com/rs/zerolog/log"
	"github.com/soheilhy/cmux"
	"golang.org/x/sync/errgroup"
)

// Server handles multiplexing HTTP and gRPC on the same listener
type Server struct {
	mux         cmux.CMux
	grpcServer  *grpcserver.Server
	httpHandler http.Handler
}

func New(listener net.Listener, grpcServer *grpcserver.Server, httpHandler http.Handler) *Server {
	return &Server{
		mux:         cmux.New(listener),
		grpcServer:  grpcServer,
		httpHandler: httpHandler,
	}
}

// Run serves both protocols until ctx is done, then drains both servers.
// Closing either matched listener closes the shared one, which ends the multiplexer.
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	httpListener := s.mux.Match(cmux.HTTP1Fast())
	grpcListener := s.mux.Match(cmux.HTTP2(), cmux.HTTP2HeaderField("content-type", "application/grpc"), cmux.Any())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(gctx, httpListener, s.httpHandler, shutdownTimeout)
	})
	g.Go(func() error {
		if err := s.grpcServer.Serve(grpcListener); err != nil && gctx.Err() == nil && !isClosed(err) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down multiplexed server")
		s.grpcServer.Stop()
		s.mux.Close()
		return nil
	})
	g.Go(func() error {
		if err := s.mux.Serve(); err != nil && gctx.Err() == nil && !isClosed(err) {
			return err
		}
		return nil
	})
	return g.Wait()
}

func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) || errors.Is(err, cmux.ErrListenerClosed) || errors.Is(err, cmux.ErrServerClosed)
}
