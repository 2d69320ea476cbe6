// Package logs builds the operational loggers used across multitimer.
//
// Each component owns a logrus logger whose messages are prefixed with the
// owner name, so interleaved output from the registry, scheduler and web
// server stays readable.
package logs

import (
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
)

// formatter adds the owner prefix to each log entry.
type formatter struct {
	owner string
	lf    logrus.Formatter
}

// Format satisfies the logrus.Formatter interface.
func (f *formatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Message = fmt.Sprintf("[%s] %s", f.owner, e.Message)
	return f.lf.Format(e)
}

// NewLogger returns a logger for owner at info level.
func NewLogger(owner string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&formatter{
		owner: owner,
		lf: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		},
	})
	return logger
}

// Configure applies a textual level and an output writer to logger.
// Unknown levels leave the logger at info.
func Configure(logger *logrus.Logger, level string, out io.Writer) {
	if out != nil {
		logger.SetOutput(out)
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
}

// Discard returns a logger that drops everything. Useful in tests.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
