// Package logging configures the global zerolog logger for the imgsplit tool.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// SetDefault provides console output on stderr before configuration is loaded.
func SetDefault() {
	log.Logger = log.Output(ConsoleWriter(os.Stderr))
}

// Setup sets the global level and output format ("console" or "json").
func Setup(level, format string, f *os.File) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)

	var w io.Writer = f
	if format != "json" {
		w = ConsoleWriter(f)
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	return nil
}

// ParseLevel maps a level name to a zerolog level, empty means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch level {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", level)
	}
}

// ConsoleWriter returns a human-friendly writer, colored only when f is a terminal.
func ConsoleWriter(f *os.File) io.Writer {
	noColor := !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
	return zerolog.ConsoleWriter{Out: f, NoColor: noColor, TimeFormat: time.DateTime}
}
