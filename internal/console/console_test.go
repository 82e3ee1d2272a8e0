package console_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"lanchat/internal/console"
	"lanchat/internal/domain"
)

// syncBuffer is a bytes.Buffer safe for the console's writer and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestPrompt_ReadsLines(t *testing.T) {
	out := new(syncBuffer)
	c := console.New(strings.NewReader("alice\r\nhello there\n"), out)
	ctx := context.Background()

	name, err := c.Prompt(ctx, "Enter your username: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", name)

	line, err := c.Prompt(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "hello there", line)

	_, err = c.Prompt(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "Enter your username: > > ", out.String())
}

func TestPrompt_Cancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	c := console.New(pr, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := c.Prompt(ctx, "> ")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDisplay_RepeatsPendingPrompt(t *testing.T) {
	pr, pw := io.Pipe()
	out := new(syncBuffer)
	c := console.New(pr, out)

	done := make(chan string, 1)
	go func() {
		line, _ := c.Prompt(context.Background(), "> ")
		done <- line
	}()

	require.Eventually(t, func() bool { return out.String() == "> " }, time.Second, time.Millisecond)
	c.Display(domain.ChatMessage{Sender: "bob", Target: domain.Everyone, Body: "hi all"})
	c.Display(domain.ChatMessage{Sender: "carol", Target: "alice", Body: "psst"})

	_, err := pw.Write([]byte("typed\n"))
	require.NoError(t, err)
	assert.Equal(t, "typed", <-done)
	require.NoError(t, pw.Close())

	assert.Equal(t, "> \nbob: hi all\n> \ncarol (private): psst\n> ", out.String())
}

func TestNotify(t *testing.T) {
	out := new(syncBuffer)
	c := console.New(strings.NewReader(""), out)
	c.Notify("Invalid choice.")
	c.Notify("joined %s", "239.0.0.1:5000")
	assert.Equal(t, "Invalid choice.\njoined 239.0.0.1:5000\n", out.String())
}

func TestPrompt_LongLineDiscarded(t *testing.T) {
	long := strings.Repeat("x", console.MaxLineSize+10)
	out := new(syncBuffer)
	c := console.New(strings.NewReader(long+"\nnext\n"), out)
	ctx := context.Background()

	line, err := c.Prompt(ctx, "> ")
	require.NoError(t, err)
	assert.Equal(t, "next", line)
	assert.Equal(t, "> "+console.NoteLineTooLong+"\n> ", out.String())

	_, err = c.Prompt(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPrompt_LineAtLimit(t *testing.T) {
	line := strings.Repeat("y", console.MaxLineSize-1)
	c := console.New(strings.NewReader(line+"\n"), io.Discard)

	got, err := c.Prompt(context.Background(), "> ")
	require.NoError(t, err)
	assert.Len(t, got, console.MaxLineSize-1)
}

func TestPrompt_LastLineWithoutNewline(t *testing.T) {
	c := console.New(strings.NewReader("a\n\nb"), io.Discard)
	ctx := context.Background()
	for _, want := range []string{"a", "", "b"} {
		got, err := c.Prompt(ctx, "> ")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := c.Prompt(ctx, "> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestClose_ReleasesReader(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := console.New(strings.NewReader("one\ntwo\nthree\n"), io.Discard)
	line, err := c.Prompt(context.Background(), "> ")
	require.NoError(t, err)
	assert.Equal(t, "one", line)

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())

	_, err = c.Prompt(context.Background(), "> ")
	assert.ErrorIs(t, err, io.EOF)
}
