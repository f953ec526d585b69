// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// LogSubsys is the field naming the component that emitted an entry.
const LogSubsys = "subsys"

// DefaultLogger is the root entry every component derives from.
var DefaultLogger = logrus.NewEntry(logrus.New())

// Setup points DefaultLogger at w and sets its level. An unparsable level
// falls back to warn.
func Setup(level string, w io.Writer) {
	logger := DefaultLogger.Logger
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.WarnLevel)
		DefaultLogger.WithError(err).Warnf("Invalid log level %q, using warn", level)
		return
	}
	logger.SetLevel(lvl)
}

// WithSubsys returns a child entry tagged with the subsystem name.
func WithSubsys(name string) *logrus.Entry {
	return DefaultLogger.WithField(LogSubsys, name)
}
