package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/config"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/controller/health"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/dispatch"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const readHeaderTimeout = 5 * time.Second

func NewRouter(config config.Configs, m model.Model, dispatcher *dispatch.Dispatcher) *gin.Engine {
	env := config.AppEnv
	if env == "prod" || env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()

	if config.TracingEnabled {
		engine.Use(otelgin.Middleware(config.AppName))
	}
	engine.Use(RequestIdMiddleware(), HTTPLogger(), HTTPRecovery())

	health.Init(engine)
	RegisterRoutes(engine, NewHandler(m, dispatcher, config.MaxRequestBytes))
	return engine
}

// Run serves handler on listener until ctx is done, then lets in-flight requests finish.
// A positive timeout bounds the wait.
func Run(ctx context.Context, listener net.Listener, handler http.Handler, timeout time.Duration) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	served := false
	select {
	case err := <-errCh:
		if ctx.Err() == nil {
			return err
		}
		served = true
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down HTTP server")
	shutdownCtx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, timeout)
		defer cancel()
	}
	if err := srv.Shutdown(shutdownCtx); errors.Is(err, context.DeadlineExceeded) {
		log.Warn().Err(err).Msg("HTTP server did not drain in time")
		_ = srv.Close()
	} else if err != nil {
		log.Debug().Err(err).Msg("HTTP server shutdown")
	}
	// once ctx is done, Serve only fails because its listener was closed
	if !served {
		<-errCh
	}
	return nil
}
