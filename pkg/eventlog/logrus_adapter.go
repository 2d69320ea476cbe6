package eventlog

import (
	"github.com/sirupsen/logrus"
)

// LogrusAdapter writes events to a logrus logger.
// Tick events go out at trace level, everything else at debug.
type LogrusAdapter struct {
	logger logrus.FieldLogger
}

// NewLogrusAdapter creates a LogrusAdapter writing to logger.
func NewLogrusAdapter(logger logrus.FieldLogger) *LogrusAdapter {
	return &LogrusAdapter{logger: logger}
}

// Log writes the event as a structured entry.
func (a *LogrusAdapter) Log(event Event) {
	fields := logrus.Fields{
		"session": event.SessionID,
		"timer":   event.TimerID,
		"kind":    event.Kind.String(),
	}
	if event.Duration != 0 {
		fields["duration"] = event.Duration
	}
	if event.Kind == KindTick || event.Kind == KindDeleted {
		fields["remaining"] = event.Remaining
	}
	if event.Reason != "" {
		fields["reason"] = event.Reason
	}

	entry := a.logger.WithFields(fields)
	if event.Kind == KindTick {
		entry.Trace("timer event")
		return
	}
	entry.Debug("timer event")
}

var _ Logger = (*LogrusAdapter)(nil)
