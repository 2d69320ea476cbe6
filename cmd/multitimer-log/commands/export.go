package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/multitimer/multitimer-go/pkg/eventlog"
)

// Export formats.
const (
	FormatJSONL = "jsonl"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// exportEvent is the text form of an eventlog.Event.
type exportEvent struct {
	Timestamp string `json:"timestamp" yaml:"timestamp"`
	SessionID string `json:"sessionId" yaml:"sessionId"`
	TimerID   uint64 `json:"timerId" yaml:"timerId"`
	Kind      string `json:"kind" yaml:"kind"`
	Duration  int    `json:"duration,omitempty" yaml:"duration,omitempty"`
	Remaining int    `json:"remaining,omitempty" yaml:"remaining,omitempty"`
	Reason    string `json:"reason,omitempty" yaml:"reason,omitempty"`
}

func toExport(event eventlog.Event) exportEvent {
	return exportEvent{
		Timestamp: event.Timestamp.UTC().Format(timestampFormat),
		SessionID: event.SessionID,
		TimerID:   event.TimerID,
		Kind:      event.Kind.String(),
		Duration:  event.Duration,
		Remaining: event.Remaining,
		Reason:    event.Reason,
	}
}

// RunExport exports the log file to the specified format. An empty output
// writes to stdout.
func RunExport(path, format, output string) error {
	switch format {
	case FormatJSONL, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, json, yaml)", format)
	}

	reader, err := eventlog.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	return export(reader, format, w)
}

func export(reader *eventlog.Reader, format string, w io.Writer) error {
	if format == FormatJSONL {
		encoder := json.NewEncoder(w)
		for {
			event, err := reader.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read event: %w", err)
			}
			if err := encoder.Encode(toExport(event)); err != nil {
				return fmt.Errorf("failed to encode event: %w", err)
			}
		}
	}

	events, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("failed to read event: %w", err)
	}
	out := make([]exportEvent, 0, len(events))
	for _, event := range events {
		out = append(out, toExport(event))
	}

	if format == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode events: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode events: %w", err)
	}
	return nil
}
