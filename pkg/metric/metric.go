package metric

import (
	"sync"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	ApiRequestCount          = "api_request_count"
	ApiRequestLatency        = "api_request_latency"
	PredictionBatchSize      = "prediction_batch_size"
	PredictionDispatchMode   = "prediction_dispatch_mode"
	PredictionCacheHit       = "prediction_cache_hit"
	PredictionCacheMiss      = "prediction_cache_miss"
	PredictionCacheCollision = "prediction_cache_collision"
	PredictionCacheHitRate   = "prediction_cache_hit_rate"
	PredictionCacheEntries   = "prediction_cache_entry_count"
	ModelLoadLatency         = "model_load_latency"
	StreamMessageCount       = "stream_message_count"

	defaultStatsdAddress = "localhost:8125"
)

var (
	// it is safe to use one client from multiple goroutines simultaneously
	statsDClient = getDefaultClient()
	// by default full sampling
	samplingRate = 1.0
	appName      = ""
	initialized  = false
	once         sync.Once
)

// Init initializes the metrics client
func Init() {
	if initialized {
		log.Debug().Msgf("Metrics already initialized!")
		return
	}
	once.Do(func() {
		var err error
		if viper.IsSet("APP_METRIC_SAMPLING_RATE") {
			samplingRate = viper.GetFloat64("APP_METRIC_SAMPLING_RATE")
		}
		appName = viper.GetString("APP_NAME")
		address := viper.GetString("METRIC_STATSD_ADDRESS")
		if address == "" {
			address = defaultStatsdAddress
		}
		globalTags := getGlobalTags()

		statsDClient, err = statsd.New(
			address,
			statsd.WithTags(globalTags),
		)
		if err != nil {
			log.Panic().AnErr("StatsD client initialization failed", err)
		}
		log.Info().Msgf("Metrics client initialized with statsd address - %s, global tags - %v, and "+
			"sampling rate - %f", address, globalTags, samplingRate)
		initialized = true
	})
}

func getDefaultClient() *statsd.Client {
	client, _ := statsd.New(defaultStatsdAddress)
	return client
}

func getGlobalTags() []string {
	env := viper.GetString("APP_ENV")
	if len(env) == 0 {
		log.Warn().Msg("APP_ENV is not set")
	}
	service := viper.GetString("APP_NAME")
	if len(service) == 0 {
		log.Warn().Msg("APP_NAME is not set")
	}
	return []string{
		TagAsString(TagEnv, env),
		TagAsString(TagService, service),
	}
}

// Timing sends timing information
func Timing(name string, value time.Duration, tags []string) {
	if statsDClient == nil {
		return
	}
	tags = append(tags, TagAsString(TagService, appName))
	if err := statsDClient.Timing(name, value, tags, samplingRate); err != nil {
		log.Warn().AnErr("Error occurred while doing statsd timing", err)
	}
}

// Count Increases metric counter by value
func Count(name string, value int64, tags []string) {
	if statsDClient == nil {
		return
	}
	tags = append(tags, TagAsString(TagService, appName))
	if err := statsDClient.Count(name, value, tags, samplingRate); err != nil {
		log.Warn().AnErr("Error occurred while doing statsd count", err)
	}
}

// Incr Increases metric counter by 1
func Incr(name string, tags []string) {
	Count(name, 1, tags)
}

func Gauge(name string, value float64, tags []string) {
	if statsDClient == nil {
		return
	}
	tags = append(tags, TagAsString(TagService, appName))
	if err := statsDClient.Gauge(name, value, tags, samplingRate); err != nil {
		log.Warn().AnErr("Error occurred while doing statsd gauge", err)
	}
}
