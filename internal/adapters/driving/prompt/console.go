// Package prompt provides a line-based presenter for terminals where the
// full-screen interface is unavailable or disabled (pipes, dumb terminals,
// ui.plain = true).
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/custodia-labs/bookfetch/internal/core/domain"
	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// Ensure Console implements the driven ports.
var (
	_ driven.Presenter    = (*Console)(nil)
	_ driven.ProgressSink = (*Console)(nil)
)

// maxSelectAttempts bounds how often an invalid list choice is re-asked.
const maxSelectAttempts = 3

type line struct {
	text string
	err  error
}

// Console reads answers line by line from an input stream and writes
// prompts to an output stream. End of input counts as cancellation.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	mu    sync.Mutex
	once  sync.Once
	lines chan line
}

// NewConsole creates a console presenter.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// readLoop feeds lines to c.lines so reads can be abandoned on cancel.
func (c *Console) readLoop() {
	defer close(c.lines)
	for {
		text, err := c.in.ReadString('\n')
		text = strings.TrimRight(text, "\r\n")
		if err != nil {
			if text != "" {
				c.lines <- line{text: text}
			}
			if !errors.Is(err, io.EOF) {
				c.lines <- line{err: err}
			}
			return
		}
		c.lines <- line{text: text}
	}
}

// readLine waits for the next line. ok is false at end of input.
func (c *Console) readLine(ctx context.Context) (string, bool, error) {
	c.once.Do(func() {
		c.lines = make(chan line)
		go c.readLoop()
	})

	select {
	case l, open := <-c.lines:
		if !open {
			return "", false, nil
		}
		if l.err != nil {
			return "", false, fmt.Errorf("read input: %w", l.err)
		}
		return l.text, true, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (c *Console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = fmt.Fprintf(c.out, format, args...)
}

// RequestText prints the prompt and reads one line. An empty answer takes
// the default.
func (c *Console) RequestText(ctx context.Context, prompt, def string) (string, bool, error) {
	if def != "" {
		c.printf("%s [%s] ", prompt, def)
	} else {
		c.printf("%s ", prompt)
	}

	text, ok, err := c.readLine(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		text = def
	}
	return text, true, nil
}

// SelectFromList prints numbered labels and reads a 1-based choice.
// An empty answer cancels.
func (c *Console) SelectFromList(ctx context.Context, prompt string, labels []string) (int, bool, error) {
	if len(labels) == 0 {
		return -1, false, nil
	}

	c.printf("%s\n", prompt)
	for i, label := range labels {
		c.printf("  [%d] %s\n", i+1, label)
	}

	for attempt := 0; attempt < maxSelectAttempts; attempt++ {
		c.printf("Choose 1-%d (empty to cancel): ", len(labels))
		text, ok, err := c.readLine(ctx)
		if err != nil || !ok {
			return -1, false, err
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return -1, false, nil
		}
		if choice, ok := parseChoice(text, len(labels)); ok {
			return choice - 1, true, nil
		}
		c.printf("Invalid choice %q\n", text)
	}
	return -1, false, nil
}

// Confirm asks a yes/no question. Anything but y or yes is no.
func (c *Console) Confirm(ctx context.Context, prompt string) (bool, error) {
	c.printf("%s [y/N] ", prompt)
	text, ok, err := c.readLine(ctx)
	if err != nil || !ok {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Notify prints a notice.
func (c *Console) Notify(_, message string) {
	c.printf("%s\n", message)
}

// Alert prints a titled message.
func (c *Console) Alert(title, message string, isError bool) {
	if isError {
		c.printf("Error: %s: %s\n", title, message)
		return
	}
	c.printf("%s: %s\n", title, message)
}

// OnProgress prints one line per scanned repository.
func (c *Console) OnProgress(event domain.ProgressEvent) {
	c.printf("  [%d/%d] %s (%d found)\n", event.Index, event.Total, event.Repository, event.Found)
}

func parseChoice(input string, maxVal int) (int, bool) {
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return 0, false
	}
	return val, true
}
