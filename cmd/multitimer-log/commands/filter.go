package commands

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/multitimer/multitimer-go/pkg/eventlog"
)

// FilterOptions specifies filtering criteria shared by view and filter.
type FilterOptions struct {
	Output    string
	SessionID string
	TimerID   string
	Kind      string
	TimeStart string
	TimeEnd   string
}

// Filter converts the string options into an eventlog.Filter.
func (o FilterOptions) Filter() (eventlog.Filter, error) {
	filter := eventlog.Filter{SessionID: o.SessionID}

	if o.TimerID != "" {
		id, err := parseTimerID(o.TimerID)
		if err != nil {
			return filter, err
		}
		filter.TimerID = &id
	}

	if o.Kind != "" {
		k, err := parseKind(o.Kind)
		if err != nil {
			return filter, err
		}
		filter.Kind = &k
	}

	if o.TimeStart != "" {
		t, err := time.Parse(time.RFC3339, o.TimeStart)
		if err != nil {
			return filter, fmt.Errorf("invalid time-start format: %w", err)
		}
		filter.TimeStart = &t
	}

	if o.TimeEnd != "" {
		t, err := time.Parse(time.RFC3339, o.TimeEnd)
		if err != nil {
			return filter, fmt.Errorf("invalid time-end format: %w", err)
		}
		filter.TimeEnd = &t
	}

	return filter, nil
}

// RunFilter copies the events matching opts into opts.Output.
func RunFilter(path string, opts FilterOptions, w io.Writer) error {
	filter, err := opts.Filter()
	if err != nil {
		return err
	}

	reader, err := eventlog.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	logger, err := eventlog.NewFileLogger(opts.Output)
	if err != nil {
		return fmt.Errorf("failed to create output logger: %w", err)
	}
	defer logger.Close()

	count := 0
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		logger.Log(event)
		count++
	}

	fmt.Fprintf(w, "Filtered %d events to %s\n", count, opts.Output)
	return nil
}

func parseKind(s string) (eventlog.Kind, error) {
	k, ok := eventlog.ParseKind(strings.ToUpper(strings.TrimSpace(s)))
	if !ok {
		return 0, fmt.Errorf("invalid kind: %s (valid: started, tick, completed, deleted, rejected)", s)
	}
	return k, nil
}

func parseTimerID(s string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid timer id: %s", s)
	}
	return id, nil
}
