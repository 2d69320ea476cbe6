// Package interactive provides the interactive command-line interface
// for multitimer.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/chzyer/readline"
	"github.com/multitimer/multitimer-go/pkg/board"
	"github.com/multitimer/multitimer-go/pkg/countdown"
	"github.com/multitimer/multitimer-go/pkg/entry"
)

// InvalidTimeMessage is printed when a start command adds up to zero.
const InvalidTimeMessage = "Please enter a valid time"

// Console handles interactive mode for multitimer.
type Console struct {
	reg   *countdown.Registry
	board *board.Board
	rl    *readline.Instance
	out   io.Writer

	// watch prints every tick when set
	watch atomic.Bool
}

// New creates a console reading commands from the terminal. b must be the
// registry's presenter.
func New(reg *countdown.Registry, b *board.Board) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timer> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("start"),
			readline.PcItem("delete"),
			readline.PcItem("complete"),
			readline.PcItem("list"),
			readline.PcItem("watch", readline.PcItem("on"), readline.PcItem("off")),
			readline.PcItem("help"),
			readline.PcItem("quit"),
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	c := newConsole(reg, b, rl.Stdout())
	c.rl = rl
	return c, nil
}

func newConsole(reg *countdown.Registry, b *board.Board, out io.Writer) *Console {
	return &Console{reg: reg, board: b, out: out}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (c *Console) Stdout() io.Writer {
	return c.out
}

// Stderr returns a writer that properly coordinates with the readline input.
func (c *Console) Stderr() io.Writer {
	if c.rl == nil {
		return c.out
	}
	return c.rl.Stderr()
}

// Run starts the interactive command loop.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	sub, unsubscribe := c.board.Subscribe(board.DefaultBuffer)
	defer unsubscribe()
	go c.follow(ctx, sub.C)

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if quit := c.Execute(line); quit {
			cancel()
			return
		}
	}
}

// Execute runs one command line. It reports whether the console should
// exit.
func (c *Console) Execute(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()

	case "start", "s", "new":
		c.cmdStart(args)

	case "delete", "d", "rm", "stop":
		c.cmdDelete(args)

	case "complete", "c":
		c.cmdComplete(args)

	case "list", "ls", "l":
		c.cmdList()

	case "watch", "w":
		c.cmdWatch(args)

	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Multitimer Commands:
  Timers:
    start <duration>   - Start a timer: 90, 1:30, 1:02:03 or 1h2m3s
    start <h> <m> <s>  - Start a timer from hours, minutes and seconds
    delete <id>        - Delete a timer (stops the alarm of a finished one)
    complete <id>      - Finish a running timer now
    list               - Show all timers

  Display:
    watch [on|off]     - Print every tick (toggles without argument)

  General:
    help               - Show this help
    quit               - Exit`)
}

// cmdStart handles the start command.
func (c *Console) cmdStart(args []string) {
	var (
		total int
		err   error
	)
	switch len(args) {
	case 1:
		total, err = entry.ParseDuration(args[0])
	case 3:
		total = entry.FromFields(args[0], args[1], args[2]).Total()
	default:
		fmt.Fprintln(c.out, "Usage: start <duration> | start <h> <m> <s>")
		fmt.Fprintln(c.out, "  Example: start 5m, start 0 1 30")
		return
	}
	if err != nil {
		fmt.Fprintln(c.out, InvalidTimeMessage)
		return
	}

	if _, err := c.reg.StartTimer(total); err != nil {
		if errors.Is(err, countdown.ErrInvalidDuration) {
			fmt.Fprintln(c.out, InvalidTimeMessage)
			return
		}
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

// parseID reads the timer id argument, printing usage on failure.
func (c *Console) parseID(cmd string, args []string) (countdown.ID, bool) {
	if len(args) != 1 {
		fmt.Fprintf(c.out, "Usage: %s <id>\n", cmd)
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(args[0], "#"), 10, 64)
	if err != nil {
		fmt.Fprintf(c.out, "Invalid timer id: %s\n", args[0])
		return 0, false
	}
	id := countdown.ID(n)
	if _, ok := c.reg.Get(id); !ok {
		fmt.Fprintf(c.out, "No timer %s\n", id)
		return 0, false
	}
	return id, true
}

// cmdDelete handles the delete command.
func (c *Console) cmdDelete(args []string) {
	if id, ok := c.parseID("delete", args); ok {
		c.reg.DeleteTimer(id)
	}
}

// cmdComplete handles the complete command.
func (c *Console) cmdComplete(args []string) {
	if id, ok := c.parseID("complete", args); ok {
		c.reg.CompleteTimer(id)
	}
}

// cmdList handles the list command.
func (c *Console) cmdList() {
	cards := c.board.Snapshot()
	if len(cards) == 0 {
		fmt.Fprintln(c.out, "No timers")
		return
	}

	fmt.Fprintf(c.out, "\nTimers (%d):\n", len(cards))
	fmt.Fprintln(c.out, "-------------------------------------------")
	for _, card := range cards {
		fmt.Fprintln(c.out, formatCard(card))
	}
	fmt.Fprintln(c.out)
}

// cmdWatch handles the watch command.
func (c *Console) cmdWatch(args []string) {
	switch {
	case len(args) == 0:
		c.watch.Store(!c.watch.Load())
	case strings.EqualFold(args[0], "on"):
		c.watch.Store(true)
	case strings.EqualFold(args[0], "off"):
		c.watch.Store(false)
	default:
		fmt.Fprintln(c.out, "Usage: watch [on|off]")
		return
	}
	if c.watch.Load() {
		fmt.Fprintln(c.out, "Watching ticks")
	} else {
		fmt.Fprintln(c.out, "Not watching ticks")
	}
}

// follow prints board updates until ctx is done or updates closes.
func (c *Console) follow(ctx context.Context, updates <-chan board.Update) {
	for {
		select {
		case u, ok := <-updates:
			if !ok {
				return
			}
			if line := c.describe(u); line != "" {
				fmt.Fprintln(c.out, line)
			}
		case <-ctx.Done():
			return
		}
	}
}

// describe renders an update as a console line; "" means print nothing.
func (c *Console) describe(u board.Update) string {
	if u.Card == nil {
		return ""
	}
	switch u.Type {
	case board.UpdateCreated:
		return formatCard(*u.Card)
	case board.UpdateText:
		if c.watch.Load() && !u.Card.Ended {
			return formatCard(*u.Card)
		}
	case board.UpdateAction:
		return formatCard(*u.Card)
	case board.UpdateRemoved:
		return fmt.Sprintf("#%-4s removed", u.Card.ID)
	}
	return ""
}

// formatCard renders a card the way the board shows it.
func formatCard(card board.Card) string {
	if card.Ended {
		return fmt.Sprintf("#%-4s %-24s [%s]", card.ID, card.Text, card.ActionLabel)
	}
	return fmt.Sprintf("#%-4s Time Left : %-12s [%s]", card.ID, card.Text, card.ActionLabel)
}
