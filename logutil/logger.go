/*
 * copyright (c) 2019 juniper networks, inc. all rights reserved.
 */

// Package logutil configures the logrus loggers used by the harness.
// Components get a named *logrus.Entry from NewLogger and add their own
// fields ("server", "locator", "pid") with WithField.
package logutil

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Configuration for new logger instances.
var (
	minimalLevel           = logrus.InfoLevel
	writer       io.Writer = os.Stdout
)

const loggerKey = "logger"

// Configure configures the global logrus logger and the level of loggers
// created afterwards. An empty level means info.
func Configure(level string) error {
	if level == "" {
		level = logrus.InfoLevel.String()
	}

	l, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "parse log level")
	}

	minimalLevel = l

	logrus.SetLevel(l)
	logrus.SetOutput(writer)
	return nil
}

// NewLogger creates a configured logrus.Entry writing to stdout.
func NewLogger(loggerName string) *logrus.Entry {
	return newLogger(loggerName, writer)
}

// NewFileLogger creates a logger appending to filename. It falls back to
// stdout when the file cannot be opened.
func NewFileLogger(loggerName string, filename string) *logrus.Entry {
	w, err := os.OpenFile(filename, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0600)
	if err != nil {
		logrus.WithError(err).Warn("fall back to stdout writer")
		return newLogger(loggerName, writer)
	}
	return newLogger(loggerName, w)
}

// WithLogger returns an entry of l named loggerName. Tests use it to
// route component logs into a logrus test hook.
func WithLogger(l *logrus.Logger, loggerName string) *logrus.Entry {
	return l.WithField(loggerKey, loggerName)
}

func newLogger(loggerName string, writer io.Writer) *logrus.Entry {
	l := &logrus.Logger{
		Out:       writer,
		Formatter: new(logrus.TextFormatter),
		Hooks:     make(logrus.LevelHooks),
		Level:     minimalLevel,
	}
	return l.WithField(loggerKey, loggerName)
}

// FatalWithStackTraceIfError calls FatalWithStackTrace if error is not nil.
func FatalWithStackTraceIfError(err error) {
	if err != nil {
		FatalWithStackTrace(err)
	}
}

// FatalWithStackTrace logs error with an extended format and calls os.Exit(1)
// If given error is constructed with pkg/errors library, stack trace is printed.
func FatalWithStackTrace(err error) {
	logrus.Fatalf("%+v", err)
}
