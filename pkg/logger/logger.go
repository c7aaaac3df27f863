package logger

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel = "WARN"
	timeFormat      = "02-01-2006 15:04:05.000"
)

var (
	once        sync.Once
	initialized = false
	appName     = ""
)

// Init initializes the global logger using APP_NAME and APP_LOG_LEVEL from viper
func Init() {
	appName = viper.GetString("APP_NAME")
	logLevel := viper.GetString("APP_LOG_LEVEL")

	if len(appName) == 0 {
		panic("APP_NAME is not set!")
	}
	if len(logLevel) == 0 {
		log.Warn().Msgf("Log level not set, defaulting to %s", defaultLogLevel)
		logLevel = defaultLogLevel
	}
	level, err := ParseLevel(logLevel)
	if err != nil {
		log.Panic().Err(err).Msg("Failed to initialize logger")
	}
	initLogger(appName, level)
}

func initLogger(appName string, level zerolog.Level) {
	if initialized {
		log.Debug().Msgf("Logger already initialized!")
		return
	}
	once.Do(func() {
		zerolog.SetGlobalLevel(level)
		log.Logger = zerolog.New(consoleWriter()).With().
			Timestamp().
			Str("applicationName", appName).
			Caller().
			Logger()

		zerolog.CallerMarshalFunc = shortCaller
		zerolog.ErrorStackMarshaler = func(err error) interface{} {
			return fmt.Sprintf("%s\n%s", err, debug.Stack())
		}

		initialized = true
		log.Info().Msgf("Logger initialized with level %s", level.String())
	})
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: timeFormat,
		FormatLevel: func(i interface{}) string {
			return strings.ToUpper(fmt.Sprintf("%-6s", i))
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
		FieldsExclude: []string{
			"applicationName",
		},
		PartsOrder: []string{
			"applicationName",
			zerolog.TimestampFieldName,
			zerolog.LevelFieldName,
			zerolog.CallerFieldName,
			zerolog.MessageFieldName,
		},
	}
}

// shortCaller renders the caller as file:line without the directory
func shortCaller(pc uintptr, file string, line int) string {
	lineNum := strconv.Itoa(line)
	idx := strings.LastIndex(file, "/")
	if idx < 0 {
		return file + ":" + lineNum
	}
	return file[idx+1:] + ":" + lineNum
}

// ParseLevel maps the upper-case level names used in APP_LOG_LEVEL to zerolog levels
func ParseLevel(logLevel string) (zerolog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(logLevel)) {
	case "DEBUG":
		return zerolog.DebugLevel, nil
	case "INFO":
		return zerolog.InfoLevel, nil
	case "WARN":
		return zerolog.WarnLevel, nil
	case "ERROR":
		return zerolog.ErrorLevel, nil
	case "FATAL":
		return zerolog.FatalLevel, nil
	case "PANIC":
		return zerolog.PanicLevel, nil
	case "DISABLED":
		return zerolog.Disabled, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("incorrect log level - %s", logLevel)
	}
}
