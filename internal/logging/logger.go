// Package logging configures the process-wide debug logger.
//
// Logging is off unless requested: stdout and stderr belong to the
// notification contract, so log lines only appear with --debug.
package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// Log is the package-global logger configured by Init. Until Init is
// called it discards everything.
var Log = zerolog.Nop()

// Init configures Log to write human-readable lines to w at the given level
// ("debug", "info", "warn", "error"). Any other level, including "",
// disables logging.
func Init(w io.Writer, level string) {
	l := zerolog.Disabled
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		l = zerolog.DebugLevel
	case "info":
		l = zerolog.InfoLevel
	case "warn":
		l = zerolog.WarnLevel
	case "error":
		l = zerolog.ErrorLevel
	}

	out := zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: "15:04:05"}
	Log = zerolog.New(out).Level(l).With().Timestamp().Logger()
}
