package main

import (
	"context"
	"os"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/config"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/data/cache"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/handler/dispatch"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/model/fasttext"
	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/server"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/logger"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/metric"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/profiling"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/tracing"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"
)

var (
	appConfig config.AppConfig

	rootCmd = &cobra.Command{
		Use:          "fasttext-serving",
		Short:        "Serve a fastText classification model over HTTP or gRPC",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		Run:          run,
	}
)

func init() {
	config.RegisterFlags(rootCmd.Flags())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) {
	config.InitConfig(&appConfig, cmd.Flags())
	logger.Init()
	metric.Init()
	profiling.Init()
	tracing.Init()
	defer tracing.Shutdown(context.Background())

	if _, err := maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
		log.Info().Msgf(format, args...)
	})); err != nil {
		log.Warn().Err(err).Msg("Failed to set GOMAXPROCS")
	}

	cfg := appConfig.Configs
	ft, err := fasttext.LoadModel(cfg.ModelPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load model")
	}
	m := cache.Wrap(ft, cfg.CacheSizeBytes)
	dispatcher := dispatch.New(cfg.Workers)

	if err := server.Run(cfg, m, dispatcher); err != nil {
		log.Panic().Err(err).Msgf("Error running %s server", cfg.AppName)
	}
	log.Info().Msgf("%s stopped", cfg.AppName)
}
