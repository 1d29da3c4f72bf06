// Package logger provides the process-wide structured logger shared by
// every component: connectors, the merger, and the RPC front all log
// through the same zerolog.Logger instance rather than building messages
// with fmt.Sprintf.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// Log is the package-level logger. It starts disabled until InitLogger
// runs, so an import-only consumer (e.g. in tests) never panics or spams
// stdout.
var Log zerolog.Logger = zerolog.New(nil).Level(zerolog.Disabled)

// InitLogger configures the global logger. Call once from main(). In
// development mode output is a human-readable console writer at debug
// level; otherwise it's JSON at info level, suitable for log aggregation.
func InitLogger(isDevelopment bool) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMicro

	if isDevelopment {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		writer := zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: "15:04:05.000000",
		}
		Log = zerolog.New(writer).With().Timestamp().Caller().Logger()
		return
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	Log = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

// Get returns the global logger instance, useful for passing into
// libraries that accept a *zerolog.Logger rather than importing this
// package directly.
func Get() *zerolog.Logger {
	return &Log
}
