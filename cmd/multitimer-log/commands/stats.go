package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/eventlog"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents  int
	EventsByKind map[eventlog.Kind]int
	Sessions     map[string]*SessionStats
	TimeRange    struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for a single registry session.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Started   int
	Completed int
	Deleted   int
	Rejected  int

	// Sum of the durations of started timers, in seconds
	Seconds int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := eventlog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats, err := collectStats(reader)
	if err != nil {
		return err
	}
	printStats(w, stats)
	return nil
}

func collectStats(reader *eventlog.Reader) (*Stats, error) {
	stats := &Stats{
		EventsByKind: make(map[eventlog.Kind]int),
		Sessions:     make(map[string]*SessionStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByKind[event.Kind]++

		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		s, ok := stats.Sessions[event.SessionID]
		if !ok {
			s = &SessionStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Sessions[event.SessionID] = s
		}
		s.Events++
		if event.Timestamp.After(s.LastSeen) {
			s.LastSeen = event.Timestamp
		}

		switch event.Kind {
		case eventlog.KindStarted:
			s.Started++
			s.Seconds += event.Duration
		case eventlog.KindCompleted:
			s.Completed++
		case eventlog.KindDeleted:
			s.Deleted++
		case eventlog.KindRejected:
			s.Rejected++
		}
	}

	return stats, nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Timer Event Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.UTC().Format(time.RFC3339),
			stats.TimeRange.End.UTC().Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Kind:")
	for k := eventlog.KindStarted; k <= eventlog.KindRejected; k++ {
		if count := stats.EventsByKind[k]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", k.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) == 0 {
		return
	}

	type sessionInfo struct {
		id    string
		stats *SessionStats
	}
	sessions := make([]sessionInfo, 0, len(stats.Sessions))
	for id, s := range stats.Sessions {
		sessions = append(sessions, sessionInfo{id, s})
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
	})

	fmt.Fprintln(w)
	for _, s := range sessions {
		duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
		fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
		fmt.Fprintf(w, "           Timers: %d started, %d completed, %d deleted\n",
			s.stats.Started, s.stats.Completed, s.stats.Deleted)
		if s.stats.Started > 0 {
			fmt.Fprintf(w, "           Time set: %s\n", countdown.FormatTime(s.stats.Seconds))
		}
		if s.stats.Rejected > 0 {
			fmt.Fprintf(w, "           Rejected: %d\n", s.stats.Rejected)
		}
	}
}
