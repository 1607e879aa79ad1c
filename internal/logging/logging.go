// Package logging builds the structured loggers used by the commands.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tomz197/rocket/internal/config"
)

// LevelEnv selects the log level: debug, info, warn or error.
const LevelEnv = "ROCKET_LOG_LEVEL"

// New returns a timestamped key/value logger writing to w. The level comes
// from LevelEnv and defaults to info.
func New(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	logger.SetLevel(levelFromEnv())
	return logger
}

func levelFromEnv() log.Level {
	lvl, err := log.ParseLevel(strings.ToLower(config.GetEnv(LevelEnv, "info")))
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
