package config

import "time"

type AppConfig struct {
	Configs Configs
}

func (cfg *AppConfig) GetStaticConfig() interface{} {
	return &cfg.Configs
}

type Configs struct {
	AppName             string        `mapstructure:"app_name"`
	AppEnv              string        `mapstructure:"app_env"`
	AppLogLevel         string        `mapstructure:"app_log_level"`
	ModelPath           string        `mapstructure:"model_path"`
	Address             string        `mapstructure:"address"`
	Port                int           `mapstructure:"port"`
	Workers             int           `mapstructure:"workers"`
	Protocol            string        `mapstructure:"protocol"`
	MaxRequestBytes     int64         `mapstructure:"max_request_bytes"`
	GrpcMaxRecvBytes    int           `mapstructure:"grpc_max_recv_bytes"`
	GrpcMaxSendBytes    int           `mapstructure:"grpc_max_send_bytes"`
	ShutdownTimeout     time.Duration `mapstructure:"shutdown_timeout"`
	CacheSizeBytes      int           `mapstructure:"cache_size_bytes"`
	ProfilingEnabled    bool          `mapstructure:"profiling_enabled"`
	ProfilingPort       int           `mapstructure:"profiling_port"`
	TracingEnabled      bool          `mapstructure:"tracing_enabled"`
	MetricStatsdAddress string        `mapstructure:"metric_statsd_address"`
}
