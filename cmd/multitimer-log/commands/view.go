// Package commands implements the multitimer-log CLI commands.
package commands

import (
	"fmt"
	"io"

	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/eventlog"
)

// timestampFormat is used by view and export.
const timestampFormat = "2006-01-02T15:04:05.000Z"

// RunView prints events matching filter in human-readable form.
func RunView(path string, filter eventlog.Filter, ticks bool, w io.Writer) error {
	reader, err := eventlog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if event.Kind == eventlog.KindTick && !ticks && filter.Kind == nil {
			continue
		}
		formatEvent(w, event)
	}
}

// formatEvent writes one line per event:
//
//	2026-01-28T10:00:00.000Z [session:1a2b3c4d] #0    STARTED   00:01:30
func formatEvent(w io.Writer, event eventlog.Event) {
	ts := event.Timestamp.UTC().Format(timestampFormat)
	fmt.Fprintf(w, "%s [session:%s] #%-4d %-9s %s\n",
		ts, shortenSessionID(event.SessionID), event.TimerID, event.Kind, eventDetail(event))
}

func eventDetail(event eventlog.Event) string {
	switch event.Kind {
	case eventlog.KindStarted:
		return countdown.FormatTime(event.Duration)
	case eventlog.KindTick:
		return fmt.Sprintf("%s left", countdown.FormatTime(event.Remaining))
	case eventlog.KindCompleted:
		return fmt.Sprintf("after %s", countdown.FormatTime(event.Duration))
	case eventlog.KindDeleted:
		if event.Remaining > 0 {
			return fmt.Sprintf("with %s left", countdown.FormatTime(event.Remaining))
		}
		return "dismissed"
	case eventlog.KindRejected:
		return fmt.Sprintf("duration %d: %s", event.Duration, event.Reason)
	default:
		return ""
	}
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	if id == "" {
		return "--------"
	}
	return id
}
