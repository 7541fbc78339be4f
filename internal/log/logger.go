// Package log wraps logrus for a program that owns the terminal:
// silent by default, optionally routed to a file for debugging. Never
// write to stdout here; the renderer is using it.
package log

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	return l
}

// ToFile redirects all logging to the given file at debug level.
func ToFile(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	logger.SetOutput(f)
	logger.SetLevel(logrus.DebugLevel)
	return nil
}

func Debugf(format string, args ...any) { logger.Debugf(format, args...) }
func Infof(format string, args ...any)  { logger.Infof(format, args...) }
func Warnf(format string, args ...any)  { logger.Warnf(format, args...) }
func Errorf(format string, args ...any) { logger.Errorf(format, args...) }

// WithField tags subsequent entries, for per-component logs.
func WithField(key string, value any) *logrus.Entry {
	return logger.WithField(key, value)
}
