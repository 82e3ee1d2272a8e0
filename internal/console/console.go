// Package console implements the line-based chat user interface.
//
// Input lines are read by a background goroutine so that a prompt can be
// abandoned when its context is cancelled. Output is serialized so a message
// arriving mid-prompt is printed on its own line and the pending prompt is
// written again after it.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"lanchat/internal/domain"
)

// MaxLineSize bounds one input line, line ending included. Longer lines are
// discarded up to the next newline and the prompt is shown again.
const MaxLineSize = 1 << 20

// NoteLineTooLong is printed when an input line is discarded.
const NoteLineTooLong = "Line too long, ignored."

// Console reads lines from in and writes prompts and messages to out.
type Console struct {
	in io.Reader

	startOnce sync.Once
	lines     chan string
	readErr   error

	closeOnce sync.Once
	done      chan struct{}

	mu      sync.Mutex
	out     io.Writer
	pending string
}

// New returns a console over in and out.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    in,
		out:   out,
		lines: make(chan string),
		done:  make(chan struct{}),
	}
}

func (c *Console) start() {
	c.startOnce.Do(func() {
		go c.readLines()
	})
}

func (c *Console) readLines() {
	defer close(c.lines)

	r := bufio.NewReader(c.in)
	var (
		line    []byte
		tooLong bool
	)
	for {
		chunk, err := r.ReadSlice('\n')
		if !tooLong {
			line = append(line, chunk...)
			if len(line) > MaxLineSize {
				tooLong, line = true, line[:0]
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		switch {
		case tooLong:
			c.Notify(NoteLineTooLong)
			c.repeatPrompt()
		case err == nil || len(line) > 0:
			select {
			case c.lines <- string(trimEOL(line)):
			case <-c.done:
				c.readErr = io.EOF
				return
			}
		}
		line, tooLong = line[:0], false

		if err != nil {
			c.readErr = err
			return
		}
	}
}

func trimEOL(b []byte) []byte {
	if n := len(b); n > 0 && b[n-1] == '\n' {
		b = b[:n-1]
	}
	if n := len(b); n > 0 && b[n-1] == '\r' {
		b = b[:n-1]
	}
	return b
}

func (c *Console) repeatPrompt() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != "" {
		fmt.Fprint(c.out, c.pending)
	}
}

// Prompt writes label and returns the next input line without its line ending.
// It returns io.EOF once input is exhausted or the console is closed.
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	c.mu.Lock()
	c.pending = label
	fmt.Fprint(c.out, label)
	c.mu.Unlock()

	c.start()

	defer func() {
		c.mu.Lock()
		c.pending = ""
		c.mu.Unlock()
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-c.done:
		return "", io.EOF
	case line, ok := <-c.lines:
		if !ok {
			return "", c.readErr
		}
		return line, nil
	}
}

// Display prints a received message and repeats the pending prompt.
func (c *Console) Display(msg domain.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if msg.Broadcast() {
		fmt.Fprintf(c.out, "\n%s: %s\n", msg.Sender, msg.Body)
	} else {
		fmt.Fprintf(c.out, "\n%s (private): %s\n", msg.Sender, msg.Body)
	}
	if c.pending != "" {
		fmt.Fprint(c.out, c.pending)
	}
}

// Notify prints one informational line.
func (c *Console) Notify(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Close stops handing input lines to prompts. The reader goroutine exits
// once its current read returns; a read blocked on a terminal returns only
// when the next line is typed or input ends.
func (c *Console) Close() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

var _ domain.Console = (*Console)(nil)
