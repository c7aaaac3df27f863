package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/Meesho/BharatMLStack/fasttext-serving/internal/constants"
	"github.com/Meesho/BharatMLStack/fasttext-serving/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	ErrModelPathMissing = errors.New("model path is required")
	ErrModelNotFound    = errors.New("model does not exist")
	ErrInvalidWorkers   = errors.New("workers must be at least 1")
	ErrInvalidProtocol  = errors.New("unsupported protocol")
	ErrInvalidPort      = errors.New("port must be between 1 and 65535")
)

// flag name -> viper key
var flagKeys = map[string]string{
	"model":    "model_path",
	"address":  "address",
	"port":     "port",
	"workers":  "workers",
	"protocol": "protocol",
}

type ConfigHolder interface {
	GetStaticConfig() interface{}
}

// RegisterFlags declares the command line flags understood by Load
func RegisterFlags(flags *pflag.FlagSet) {
	flags.StringP("model", "m", "", "Model path")
	flags.StringP("address", "a", constants.DefaultAddress, "Listen address, host or unix:/path/to.sock")
	flags.IntP("port", "p", constants.DefaultPort, "Listen port")
	flags.IntP("workers", "w", runtime.NumCPU(), "Worker count")
	flags.String("protocol", constants.ProtocolHTTP, "Serving protocol: http, grpc or mux")
	flags.Bool("grpc", false, "Serve gRPC instead of HTTP")
}

// InitConfig loads the configuration into the holder and exits the process when it is invalid
func InitConfig(configHolder ConfigHolder, flags *pflag.FlagSet) {
	cfg, ok := configHolder.GetStaticConfig().(*Configs)
	if !ok {
		log.Fatal().Msg("Failed to cast static config to *Configs")
	}
	loaded, err := Load(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	*cfg = loaded
}

// Load resolves flags, environment variables and defaults, in that order of precedence
func Load(flags *pflag.FlagSet) (Configs, error) {
	config.InitEnv()
	setDefaults()
	bindEnvVars()
	if err := bindFlags(flags); err != nil {
		return Configs{}, err
	}

	var cfg Configs
	if err := viper.Unmarshal(&cfg); err != nil {
		return Configs{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if flags != nil {
		if useGrpc, err := flags.GetBool("grpc"); err == nil && useGrpc {
			cfg.Protocol = constants.ProtocolGRPC
		}
	}
	if err := cfg.Validate(); err != nil {
		return Configs{}, err
	}
	return cfg, nil
}

// Validate checks the values the server cannot start without
func (c *Configs) Validate() error {
	if c.ModelPath == "" {
		return ErrModelPathMissing
	}
	if _, err := os.Stat(c.ModelPath); err != nil {
		return fmt.Errorf("%w: %s", ErrModelNotFound, c.ModelPath)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Workers)
	}
	switch c.Protocol {
	case constants.ProtocolHTTP, constants.ProtocolGRPC, constants.ProtocolMux:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidProtocol, c.Protocol)
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPort, c.Port)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("app_name", constants.DefaultAppName)
	viper.SetDefault("address", constants.DefaultAddress)
	viper.SetDefault("port", constants.DefaultPort)
	viper.SetDefault("workers", runtime.NumCPU())
	viper.SetDefault("protocol", constants.ProtocolHTTP)
	viper.SetDefault("max_request_bytes", constants.MaxRequestBytes)
	viper.SetDefault("grpc_max_recv_bytes", constants.GrpcMaxRecvBytes)
	viper.SetDefault("grpc_max_send_bytes", constants.GrpcMaxSendBytes)
	viper.SetDefault("shutdown_timeout", "0s")
	viper.SetDefault("cache_size_bytes", 0)
}

func bindEnvVars() {
	// App configuration
	viper.BindEnv("app_name", "APP_NAME")
	viper.BindEnv("app_env", "APP_ENV")
	viper.BindEnv("app_log_level", "APP_LOG_LEVEL")
	viper.BindEnv("app_metric_sampling_rate", "APP_METRIC_SAMPLING_RATE")

	// Serving configuration
	viper.BindEnv("model_path", "MODEL_PATH")
	viper.BindEnv("address", "ADDRESS")
	viper.BindEnv("port", "PORT")
	viper.BindEnv("workers", "WORKERS")
	viper.BindEnv("protocol", "PROTOCOL")
	viper.BindEnv("max_request_bytes", "MAX_REQUEST_BYTES")
	viper.BindEnv("grpc_max_recv_bytes", "GRPC_MAX_RECV_BYTES")
	viper.BindEnv("grpc_max_send_bytes", "GRPC_MAX_SEND_BYTES")
	viper.BindEnv("shutdown_timeout", "SHUTDOWN_TIMEOUT")
	viper.BindEnv("cache_size_bytes", "CACHE_SIZE_BYTES")

	// Observability configuration
	viper.BindEnv("profiling_enabled", "PROFILING_ENABLED")
	viper.BindEnv("profiling_port", "PROFILING_PORT")
	viper.BindEnv("tracing_enabled", "TRACING_ENABLED")
	viper.BindEnv("metric_statsd_address", "METRIC_STATSD_ADDRESS")
}

func bindFlags(flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}
	return nil
}
