// Package server binds the configured address and runs the selected protocol until shutdown.
package server

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/config"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/constants"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/dispatch"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
	grpcserver "github.com/Meesho/BharatMLStack/fasttext-serving/internal/server/grpc"
	httpserver "github.com/Meesho/BharatMLStack/fasttext-serving/internal/server/http"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/server/mux"
	"github.com/rs/zerolog/log"
)

var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// Run binds one listener and serves until an interrupt or termination signal arrives
func Run(config config.Configs, m model.Model, dispatcher *dispatch.Dispatcher) error {
	addr, err := ResolveAddress(config.Address, config.Port)
	if err != nil {
		return err
	}
	listener, err := Listen(addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	log.Info().Msgf("Serving %s on %s with %d workers", config.Protocol, addr, dispatcher.Workers())

	switch config.Protocol {
	case constants.ProtocolGRPC:
		return ServeGRPC(listener, config, m, dispatcher, NotifyRunning())
	default:
		ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
		defer stop()
		return ServeContext(ctx, listener, config, m, dispatcher)
	}
}

// ServeGRPC serves the streaming API until running turns false
func ServeGRPC(listener net.Listener, config config.Configs, m model.Model, dispatcher *dispatch.Dispatcher, running *atomic.Bool) error {
	return grpcserver.NewServer(config, handler.NewFasttextHandler(m, dispatcher)).Run(listener, running)
}

// ServeContext serves the HTTP API, or both APIs in mux mode, until ctx is done
func ServeContext(ctx context.Context, listener net.Listener, config config.Configs, m model.Model, dispatcher *dispatch.Dispatcher) error {
	router := httpserver.NewRouter(config, m, dispatcher)
	if config.Protocol == constants.ProtocolMux {
		grpcServer := grpcserver.NewServer(config, handler.NewFasttextHandler(m, dispatcher))
		return mux.New(listener, grpcServer, router).Run(ctx, config.ShutdownTimeout)
	}
	return httpserver.Run(ctx, listener, router, config.ShutdownTimeout)
}

// NotifyRunning returns a flag that flips to false on the first shutdown signal
func NotifyRunning() *atomic.Bool {
	running := &atomic.Bool{}
	running.Store(true)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, shutdownSignals...)
	go func() {
		sig := <-sigChan
		log.Info().Msgf("Received %v, stopping", sig)
		running.Store(false)
		signal.Stop(sigChan)
	}()
	return running
}
