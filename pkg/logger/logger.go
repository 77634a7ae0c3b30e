// Package logx configures the process-wide zerolog logger.
package logx

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Debug        bool `split_words:"true" default:"false"`
	PrettyFormat bool `split_words:"true" default:"false"`
}

// Init replaces the global logger according to the config. Call once at
// startup; zero-value config gives JSON output at info level.
func Init(conf Config) {
	var out zerolog.Logger
	if conf.PrettyFormat {
		out = zerolog.New(zerolog.NewConsoleWriter())
	} else {
		out = zerolog.New(os.Stdout)
	}

	level := zerolog.InfoLevel
	if conf.Debug {
		level = zerolog.DebugLevel
	}

	log.Logger = out.Level(level).With().Timestamp().Caller().Stack().Logger()
}
