// Package logs builds the process logger.
package logs

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New returns a logger at the given level. Debug mode uses the text formatter,
// release mode emits JSON. An unknown level falls back to info.
func New(level string, debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	if debug && lvl < logrus.DebugLevel {
		lvl = logrus.DebugLevel
	}
	log.SetLevel(lvl)

	if debug {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	return log
}
