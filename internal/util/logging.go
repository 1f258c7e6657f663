// Package util provides common utilities including logging helpers,
// password hashing, file system paths and search parsing.
package util

import (
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a text logger writing to out at the named level.
// Unknown levels fall back to info.
func NewLogger(level string, out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)
	return l
}

// DiscardLogger returns a logger that drops everything. Used by tests and
// by components constructed without a logger.
func DiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// LogError logs an error with context if it is non-nil.
func LogError(log logrus.FieldLogger, context string, err error) {
	if err != nil {
		log.WithError(err).Error(context)
	}
}
