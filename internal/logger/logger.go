package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

// Init initializes the default logger. Records go to w, which is stderr
// for the command line tool.
func Init(w io.Writer, level string, noColor bool) error {
	if w == nil {
		w = os.Stderr
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}

	log.SetDefault(log.NewWithOptions(w,
		log.Options{
			ReportCaller:    lvl == log.DebugLevel,
			ReportTimestamp: false, // diagnostics are line-oriented, timestamps only add noise
			TimeFormat:      time.RFC3339,
			Prefix:          "MONTY",
			Level:           lvl,
		}))

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}

	return nil
}
