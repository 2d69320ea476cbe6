// Package cue provides completion cue notifiers for the timer registry.
package cue

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/logs"
	"github.com/panjf2000/ants"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds one run of the cue command.
const DefaultTimeout = 10 * time.Second

// ErrNoCommand is returned when a CommandNotifier is built without argv.
var ErrNoCommand = errors.New("cue command is empty")

// RunFunc executes argv. It is swapped out in tests.
type RunFunc func(ctx context.Context, argv []string) error

func runCommand(ctx context.Context, argv []string) error {
	return exec.CommandContext(ctx, argv[0], argv[1:]...).Run()
}

// CommandNotifier plays the cue by running an external command, e.g.
// ["paplay", "/usr/share/sounds/alarm.oga"]. Runs happen on a bounded
// worker pool so PlayCompletionCue returns at once; a cue arriving while
// every worker is busy is dropped.
type CommandNotifier struct {
	argv    []string
	pool    *ants.Pool
	run     RunFunc
	timeout time.Duration
	logger  logrus.FieldLogger

	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
	dropped atomic.Uint64
}

// CommandOption configures a CommandNotifier.
type CommandOption func(*CommandNotifier)

// WithRunner replaces the process runner.
func WithRunner(run RunFunc) CommandOption {
	return func(n *CommandNotifier) {
		if run != nil {
			n.run = run
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) CommandOption {
	return func(n *CommandNotifier) {
		if d > 0 {
			n.timeout = d
		}
	}
}

// WithLogger sets the logger used for failed runs.
func WithLogger(l logrus.FieldLogger) CommandOption {
	return func(n *CommandNotifier) {
		if l != nil {
			n.logger = l
		}
	}
}

// NewCommandNotifier creates a notifier running argv on a pool of workers
// goroutines.
func NewCommandNotifier(argv []string, workers int, opts ...CommandOption) (*CommandNotifier, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrNoCommand
	}
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithNonblocking(true))
	if err != nil {
		return nil, err
	}

	n := &CommandNotifier{
		argv:    append([]string(nil), argv...),
		pool:    pool,
		run:     runCommand,
		timeout: DefaultTimeout,
		logger:  logs.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// PlayCompletionCue implements countdown.Notifier.
func (n *CommandNotifier) PlayCompletionCue() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.wg.Add(1)
	n.mu.Unlock()

	err := n.pool.Submit(func() {
		defer n.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := n.run(ctx, n.argv); err != nil {
			n.logger.WithError(err).WithField("command", n.argv[0]).Warn("cue command failed")
		}
	})
	if err != nil {
		n.wg.Done()
		n.dropped.Add(1)
		n.logger.WithError(err).Warn("cue dropped")
	}
}

// Dropped returns the number of cues refused because the pool was busy.
func (n *CommandNotifier) Dropped() uint64 {
	return n.dropped.Load()
}

// Close waits for in-flight cues and releases the pool.
func (n *CommandNotifier) Close() {
	n.mu.Lock()
	if n.closed {
		n.mu.Unlock()
		return
	}
	n.closed = true
	n.mu.Unlock()

	n.wg.Wait()
	n.pool.Release()
}

// BellNotifier writes the ASCII bell to a terminal.
type BellNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewBellNotifier creates a bell writing to out.
func NewBellNotifier(out io.Writer) *BellNotifier {
	return &BellNotifier{out: out}
}

// PlayCompletionCue implements countdown.Notifier.
func (b *BellNotifier) PlayCompletionCue() {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.out.Write([]byte{'\a'})
}

// Multi fans a cue out to several notifiers.
type Multi []countdown.Notifier

// NewMulti drops nil notifiers.
func NewMulti(ns ...countdown.Notifier) Multi {
	out := make(Multi, 0, len(ns))
	for _, n := range ns {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// PlayCompletionCue implements countdown.Notifier.
func (m Multi) PlayCompletionCue() {
	for _, n := range m {
		n.PlayCompletionCue()
	}
}

var (
	_ countdown.Notifier = (*CommandNotifier)(nil)
	_ countdown.Notifier = (*BellNotifier)(nil)
	_ countdown.Notifier = Multi(nil)
)
