// Command multitimer-web serves the multi-timer board to browsers.
//
// It offers:
//   - REST API to start, complete and delete timers
//   - Server-sent event stream of card changes
//   - Embedded single-page board with audio cue
//   - Optional history of finished timers (SQLite or PostgreSQL)
//   - Optional mDNS announcement as _multitimer._tcp
//
// Usage:
//
//	multitimer-web [flags]
//
// Flags:
//
//	-config string     YAML configuration file
//	-listen string     HTTP listen address (overrides web.listen)
//	-log-level string  Log level: trace, debug, info, warn, error (overrides log_level)
//	-hash-password     Read a password from stdin, print its bcrypt hash and exit
//	-version           Show version information
//
// Examples:
//
//	# Start with built-in defaults on :8080
//	multitimer-web
//
//	# Keep history in SQLite and announce on the LAN
//	multitimer-web -config multitimer.yaml
//
//	# Create a password_hash for web.auth
//	echo -n secret | multitimer-web -hash-password
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/multitimer/multitimer-go/internal/app"
	"github.com/multitimer/multitimer-go/pkg/board"
	"github.com/multitimer/multitimer-go/pkg/config"
	"github.com/multitimer/multitimer-go/pkg/countdown"
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
	configPath   = flag.String("config", "", "YAML configuration file")
	listenAddr   = flag.String("listen", "", "HTTP listen address (overrides web.listen)")
	logLevel     = flag.String("log-level", "", "Log level: trace, debug, info, warn, error")
	hashPassword = flag.Bool("hash-password", false, "Read a password from stdin, print its bcrypt hash and exit")
	showVersion  = flag.Bool("version", false, "Show version information")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	if *showVersion {
		fmt.Printf("multitimer-web %s (built %s, commit %s)\n", Version, BuildDate, GitCommit)
		return 0
	}

	if *hashPassword {
		return printHash(os.Stdin, os.Stdout)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *listenAddr != "" {
		cfg.Web.Listen = *listenAddr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	logger := logs.NewLogger("web")
	logs.Configure(logger, cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b := board.New(cfg.Labels.Delete, logger.WithField("component", "board"))
	a, err := app.New(cfg, b, []countdown.Notifier{b}, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer a.Close()
	a.Start(ctx)

	srv := NewServer(ServerConfig{
		MaxConnections: cfg.Web.MaxConnections,
		Auth:           cfg.Web.Auth,
		Labels:         cfg.Labels,
		Version:        Version,
	}, a.Registry, b, a.History, logger.WithField("component", "http"))

	ln, err := net.Listen("tcp", cfg.Web.Listen)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to listen on %s: %v\n", cfg.Web.Listen, err)
		return 1
	}

	if cfg.Discovery.Enabled {
		adv := discovery.NewMDNSAdvertiser(discovery.Config{
			Interface: cfg.Discovery.Interface,
			TTL:       discovery.DefaultTTL,
			Logger:    logger.WithField("component", "discovery"),
		})
		port := ln.Addr().(*net.TCPAddr).Port
		info := discovery.BoardInfo{Instance: cfg.Discovery.Instance, Port: uint16(port)}
		if err := adv.Advertise(ctx, info); err != nil {
			logger.WithError(err).Warn("mDNS advertisement failed, continuing without it")
		}
		defer adv.Stop()
	}

	logger.Infof("Starting multitimer board on http://%s", ln.Addr())

	if err := srv.Serve(ctx, ln); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		return 1
	}
	return 0
}

// printHash reads one line from in and writes its bcrypt hash to out.
func printHash(in io.Reader, out io.Writer) int {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	hash, err := HashPassword(strings.TrimRight(line, "\r\n"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintln(out, hash)
	return 0
}
