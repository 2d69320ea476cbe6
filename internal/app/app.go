// Package app wires a timer registry to the collaborators selected by
// configuration: the scheduler loop, event log file, logrus event output,
// history store and cue command. Both front ends build on it.
package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/multitimer/multitimer-go/pkg/config"
	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/cue"
	"github.com/multitimer/multitimer-go/pkg/eventlog"
	"github.com/multitimer/multitimer-go/pkg/history"
	"github.com/multitimer/multitimer-go/pkg/schedule"
	"github.com/sirupsen/logrus"
)

// App owns a running registry and everything it writes to.
type App struct {
	Config   config.Config
	Registry *countdown.Registry

	// History is nil when no history driver is configured.
	History history.Repository

	scheduler countdown.Scheduler
	runner    func(context.Context)
	logger    logrus.FieldLogger

	fileLog  *eventlog.FileLogger
	recorder *history.Recorder
	command  *cue.CommandNotifier

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// Option configures New.
type Option func(*options)

type options struct {
	scheduler countdown.Scheduler
	runner    func(context.Context)
	extra     []eventlog.Logger
}

// WithScheduler replaces the real-time loop, e.g. with schedule.Manual in
// tests. run may be nil.
func WithScheduler(s countdown.Scheduler, run func(context.Context)) Option {
	return func(o *options) {
		o.scheduler = s
		o.runner = run
	}
}

// WithEventSink adds an event logger after the configured ones.
func WithEventSink(l eventlog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.extra = append(o.extra, l)
		}
	}
}

// New builds the registry. presenter renders cards; notifiers play the
// completion cue alongside the configured cue command.
func New(cfg config.Config, presenter countdown.Presenter, notifiers []countdown.Notifier, logger *logrus.Logger, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		Config: cfg,
		logger: logger.WithField("component", "app"),
	}

	sinks := []eventlog.Logger{
		eventlog.NewLogrusAdapter(logger.WithField("component", "events")),
	}

	if cfg.EventLog != "" {
		fl, err := eventlog.NewFileLogger(cfg.EventLog)
		if err != nil {
			return nil, fmt.Errorf("open event log: %w", err)
		}
		a.fileLog = fl
		sinks = append(sinks, fl)
	}

	if cfg.History.Driver != config.DriverNone {
		repo, err := history.Open(cfg.History.Driver, cfg.History.DSN)
		if err != nil {
			a.closeSinks()
			return nil, fmt.Errorf("open history: %w", err)
		}
		a.History = repo
		a.recorder = history.NewRecorder(repo, logger.WithField("component", "history"))
		sinks = append(sinks, a.recorder)
	}
	sinks = append(sinks, o.extra...)

	if len(cfg.Cue.Command) > 0 {
		cmd, err := cue.NewCommandNotifier(cfg.Cue.Command, cfg.Cue.Workers,
			cue.WithLogger(logger.WithField("component", "cue")))
		if err != nil {
			a.closeSinks()
			return nil, fmt.Errorf("cue command: %w", err)
		}
		a.command = cmd
		notifiers = append(notifiers, cmd)
	}

	if o.scheduler != nil {
		a.scheduler = o.scheduler
		a.runner = o.runner
	} else {
		loop := schedule.NewLoop(logger.WithField("component", "scheduler"))
		a.scheduler = loop
		a.runner = loop.Run
	}

	a.Registry = countdown.NewRegistry(presenter, cue.NewMulti(notifiers...), a.scheduler,
		countdown.WithTickPeriod(cfg.TickPeriod),
		countdown.WithLabels(cfg.RegistryLabels()),
		countdown.WithEventLogger(eventlog.NewMultiLogger(sinks...)),
		countdown.WithLogger(logger.WithField("component", "registry")),
	)

	a.logger.WithFields(logrus.Fields{
		"session":   a.Registry.SessionID(),
		"tick":      cfg.TickPeriod,
		"event_log": cfg.EventLog,
		"history":   cfg.History.Driver,
		"cue_cmd":   len(cfg.Cue.Command) > 0,
		"notifiers": len(notifiers),
	}).Info("timer registry ready")

	return a, nil
}

// Start runs the scheduler until ctx is done or Close is called.
func (a *App) Start(ctx context.Context) {
	if a.runner == nil {
		return
	}
	ctx, a.cancel = context.WithCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.runner(ctx)
	}()
}

// Close cancels every timer task, stops the scheduler and flushes and
// closes the event log, history store and cue workers, in that order.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.Registry.Close()
		if a.cancel != nil {
			a.cancel()
		}
		a.wg.Wait()
		a.closeSinks()
		a.logger.Info("shut down")
	})
}

func (a *App) closeSinks() {
	if a.recorder != nil {
		a.recorder.Close()
	}
	if a.History != nil {
		if err := a.History.Close(); err != nil {
			a.logger.WithError(err).Warn("closing history")
		}
	}
	if a.fileLog != nil {
		if err := a.fileLog.Close(); err != nil {
			a.logger.WithError(err).Warn("closing event log")
		}
	}
	if a.command != nil {
		a.command.Close()
	}
}
