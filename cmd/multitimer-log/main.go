// Command multitimer-log views and analyzes timer event logs.
//
// Event logs are CBOR files written by multitimer and multitimer-web when
// the event_log setting is configured.
//
// Usage:
//
//	multitimer-log <command> [flags] <file.tlog>
//
// Commands:
//
//	view     View log file in human-readable format
//	export   Export log file to JSONL, JSON or YAML
//	filter   Filter log file and write to new file
//	stats    Show statistics about the log file
//
// Examples:
//
//	# View lifecycle events (ticks hidden)
//	multitimer-log view timers.tlog
//
//	# View everything that happened to timer 3
//	multitimer-log view --ticks --timer 3 timers.tlog
//
//	# Export to YAML
//	multitimer-log export --format yaml timers.tlog
//
//	# Keep only completions of one session
//	multitimer-log filter --session 1a2b3c4d-... --kind completed -o done.tlog timers.tlog
//
//	# Show statistics
//	multitimer-log stats timers.tlog
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/multitimer/multitimer-go/cmd/multitimer-log/commands"
)

const usage = `multitimer-log - Timer Event Log Analyzer

Usage:
  multitimer-log <command> [flags] <file.tlog>

Commands:
  view     View log file in human-readable format
  export   Export log file to JSONL, JSON or YAML
  filter   Filter log file and write to new file
  stats    Show statistics about the log file

Use "multitimer-log <command> -help" for more information about a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "view":
		runView(args)
	case "export":
		runExport(args)
	case "filter":
		runFilter(args)
	case "stats":
		runStats(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

// filterFlags registers the flags shared by view and filter.
func filterFlags(fs *flag.FlagSet, opts *commands.FilterOptions) {
	fs.StringVar(&opts.SessionID, "session", "", "Filter by session ID")
	fs.StringVar(&opts.TimerID, "timer", "", "Filter by timer ID")
	fs.StringVar(&opts.Kind, "kind", "", "Filter by kind (started, tick, completed, deleted, rejected)")
	fs.StringVar(&opts.TimeStart, "time-start", "", "Filter by start time (RFC3339)")
	fs.StringVar(&opts.TimeEnd, "time-end", "", "Filter by end time (RFC3339)")
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func runView(args []string) {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `multitimer-log view - View log file in human-readable format

Usage:
  multitimer-log view [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	var opts commands.FilterOptions
	filterFlags(fs, &opts)
	ticks := fs.Bool("ticks", false, "Include TICK events")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	filter, err := opts.Filter()
	if err != nil {
		fail(err)
	}

	if err := commands.RunView(fs.Arg(0), filter, *ticks, os.Stdout); err != nil {
		fail(err)
	}
}

func runExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `multitimer-log export - Export log file to JSONL, JSON or YAML

Usage:
  multitimer-log export [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	format := fs.String("format", commands.FormatJSONL, "Output format (jsonl, json, yaml)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunExport(fs.Arg(0), *format, *output); err != nil {
		fail(err)
	}
}

func runFilter(args []string) {
	fs := flag.NewFlagSet("filter", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `multitimer-log filter - Filter log file and write to new file

Usage:
  multitimer-log filter [flags] <file.tlog>

Flags:
`)
		fs.PrintDefaults()
	}

	var opts commands.FilterOptions
	fs.StringVar(&opts.Output, "o", "", "Output file (required)")
	filterFlags(fs, &opts)

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if opts.Output == "" {
		fmt.Fprintln(os.Stderr, "Error: output file (-o) required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunFilter(fs.Arg(0), opts, os.Stdout); err != nil {
		fail(err)
	}
}

func runStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `multitimer-log stats - Show statistics about the log file

Usage:
  multitimer-log stats <file.tlog>

`)
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Error: log file path required")
		fs.Usage()
		os.Exit(1)
	}

	if err := commands.RunStats(fs.Arg(0), os.Stdout); err != nil {
		fail(err)
	}
}
