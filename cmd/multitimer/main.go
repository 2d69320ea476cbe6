// Command multitimer runs several countdown timers in the terminal.
//
// Usage:
//
//	multitimer [flags] [duration...]
//
// Each duration argument starts a timer before the prompt appears. A
// duration is bare seconds (90), M:S (1:30), H:M:S (1:02:03) or Go
// syntax (1h2m3s).
//
// Flags:
//
//	-config string     YAML configuration file
//	-log-level string  Log level: trace, debug, info, warn, error (overrides log_level)
//	-discover          List multitimer boards on the local network and exit
//	-version           Show version information
//
// Examples:
//
//	# Tea and eggs
//	multitimer 3m 7m
//
//	# Find web boards announced on the LAN
//	multitimer -discover
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/multitimer/multitimer-go/cmd/multitimer/interactive"
	"github.com/multitimer/multitimer-go/internal/app"
	"github.com/multitimer/multitimer-go/pkg/board"
	"github.com/multitimer/multitimer-go/pkg/config"
	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/cue"
	"github.com/multitimer/multitimer-go/pkg/discovery"
	"github.com/multitimer/multitimer-go/pkg/logs"
)

// Version information - set at build time via ldflags
var (
	Version   = "0.1.0"
	BuildDate = "dev"
	GitCommit = "unknown"
)

var (
	configPath  = flag.String("config", "", "YAML configuration file")
	logLevel    = flag.String("log-level", "", "Log level: trace, debug, info, warn, error")
	discover    = flag.Bool("discover", false, "List multitimer boards on the local network and exit")
	showVersion = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("multitimer %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := logs.NewLogger("multitimer")
	logs.Configure(logger, cfg.LogLevel, os.Stderr)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if *discover {
		return listBoards(ctx, cfg, os.Stdout)
	}

	b := board.New(cfg.Labels.Delete, logger.WithField("component", "board"))
	var notifiers []countdown.Notifier
	if cfg.Cue.Bell {
		notifiers = append(notifiers, cue.NewBellNotifier(os.Stdout))
	}

	a, err := app.New(cfg, b, notifiers, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer a.Close()
	a.Start(ctx)

	console, err := interactive.New(a.Registry, b)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	logger.SetOutput(console.Stderr())

	for _, arg := range flag.Args() {
		console.Execute("start " + arg)
	}

	console.Run(ctx, cancel)
	return 0
}

// listBoards browses for web boards and prints one per line.
func listBoards(ctx context.Context, cfg config.Config, out io.Writer) int {
	ctx, cancel := context.WithTimeout(ctx, discovery.BrowseTimeout)
	defer cancel()

	boards, err := discovery.Browse(ctx, discovery.Config{Interface: cfg.Discovery.Interface})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if len(boards) == 0 {
		fmt.Fprintln(out, "No boards found")
		return 0
	}
	for _, b := range boards {
		fmt.Fprintf(out, "%-24s %s\n", b.Instance, b.URL())
	}
	return 0
}
