package ocr

import (
	"github.com/sirupsen/logrus"
)

// Options holds per-call parser settings
type Options struct {
	Logger logrus.FieldLogger // Diagnostic channel (nil = logrus standard logger)
}

// DefaultOptions returns options that log to the logrus standard logger
func DefaultOptions() Options {
	return Options{
		Logger: logrus.StandardLogger(),
	}
}

// Log returns the logger to use, defaulting to the logrus standard logger.
func (o Options) Log() logrus.FieldLogger {
	if o.Logger == nil {
		return logrus.StandardLogger()
	}
	return o.Logger
}
