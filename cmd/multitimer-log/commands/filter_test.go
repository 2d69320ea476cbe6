package commands

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/multitimer/multitimer-go/pkg/eventlog"
)

func TestFilterOptions(t *testing.T) {
	opts := FilterOptions{
		SessionID: testSession,
		TimerID:   "#7",
		Kind:      "Completed",
		TimeStart: "2026-01-28T10:00:00Z",
		TimeEnd:   "2026-01-28T11:00:00Z",
	}

	filter, err := opts.Filter()
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if filter.SessionID != testSession {
		t.Errorf("SessionID = %q", filter.SessionID)
	}
	if filter.TimerID == nil || *filter.TimerID != 7 {
		t.Errorf("TimerID = %v", filter.TimerID)
	}
	if filter.Kind == nil || *filter.Kind != eventlog.KindCompleted {
		t.Errorf("Kind = %v", filter.Kind)
	}
	if filter.TimeStart == nil || filter.TimeEnd == nil {
		t.Fatal("expected time bounds")
	}
	if got := filter.TimeEnd.Sub(*filter.TimeStart); got != time.Hour {
		t.Errorf("time window = %s", got)
	}
}

func TestFilterOptionsInvalid(t *testing.T) {
	tests := []struct {
		name string
		opts FilterOptions
		want string
	}{
		{"kind", FilterOptions{Kind: "paused"}, "invalid kind"},
		{"timer", FilterOptions{TimerID: "abc"}, "invalid timer id"},
		{"negative timer", FilterOptions{TimerID: "-1"}, "invalid timer id"},
		{"time-start", FilterOptions{TimeStart: "yesterday"}, "invalid time-start"},
		{"time-end", FilterOptions{TimeEnd: "2026-01-28"}, "invalid time-end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.Filter()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected %q in error, got: %v", tt.want, err)
			}
		})
	}
}

func TestRunFilterByKind(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, lifecycle(ts))
	out := filepath.Join(t.TempDir(), "filtered.tlog")

	var buf bytes.Buffer
	err := RunFilter(path, FilterOptions{Output: out, Kind: "completed"}, &buf)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Filtered 1 events") {
		t.Errorf("unexpected summary: %s", buf.String())
	}

	reader, err := eventlog.NewReader(out)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	events, err := reader.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(events) != 1 || events[0].Kind != eventlog.KindCompleted {
		t.Fatalf("unexpected events: %+v", events)
	}
	if !events[0].Timestamp.Equal(ts.Add(90 * time.Second)) {
		t.Errorf("timestamp not preserved: %s", events[0].Timestamp)
	}
}

func TestRunFilterBySessionAndTimer(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	events := append(lifecycle(ts),
		eventlog.Event{Timestamp: ts, SessionID: "other-session", TimerID: 0, Kind: eventlog.KindStarted, Duration: 5},
		eventlog.Event{Timestamp: ts, SessionID: testSession, TimerID: 1, Kind: eventlog.KindStarted, Duration: 5},
	)
	path := createTestLogFile(t, events)
	out := filepath.Join(t.TempDir(), "filtered.tlog")

	var buf bytes.Buffer
	err := RunFilter(path, FilterOptions{Output: out, SessionID: testSession, TimerID: "0"}, &buf)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}

	// started, tick, completed and the rejection (timer 0 by default)
	if !strings.Contains(buf.String(), "Filtered 4 events") {
		t.Errorf("unexpected summary: %s", buf.String())
	}
}

func TestRunFilterInvalidOptions(t *testing.T) {
	path := createTestLogFile(t, nil)
	out := filepath.Join(t.TempDir(), "filtered.tlog")

	var buf bytes.Buffer
	if err := RunFilter(path, FilterOptions{Output: out, Kind: "bogus"}, &buf); err == nil {
		t.Fatal("expected error for invalid kind")
	}
}
