// Package telemetry wires zerolog loggers into the module lifecycle and
// the feature engine's debug-level trace, mirroring the console-writer
// setup the rest of the pack's CLIs use.
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
)

// Logger is the package-wide default, writing a human-readable console
// format. A Context copies it into its Log field, which callers may
// replace.
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
	With().Timestamp().Logger().Level(zerolog.WarnLevel)

// SetLevel adjusts the default logger's level, e.g. from a CLI's
// --log-level flag.
func SetLevel(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return
	}
	Logger = Logger.Level(lvl)
}

// ModuleEvent logs a module lifecycle step (load, compile) at
// debug level, tagged with the module name and revision.
func ModuleEvent(logger zerolog.Logger, module, revision, step string) {
	logger.Debug().Str("module", module).Str("revision", revision).Msg(step)
}

// FeatureEvent logs a feature enable/disable/cascade step at debug level.
func FeatureEvent(logger zerolog.Logger, feature string, enabled bool, step string) {
	logger.Debug().Str("feature", feature).Bool("enabled", enabled).Msg(step)
}
