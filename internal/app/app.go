package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"lanchat/internal/console"
	"lanchat/internal/domain"
	"lanchat/internal/services/chat"
	"lanchat/internal/util/memzero"
)

// PromptUsername asks for the local identity when none was given.
const PromptUsername = "Enter your username: "

// App runs chat sessions on top of a Wire.
type App struct {
	*Wire

	In  io.Reader
	Out io.Writer

	// Dial opens the group transport. It defaults to Wire.OpenTransport.
	Dial func(ctx context.Context) (domain.Transport, error)
}

// New returns an App reading user input from in and writing to out.
func New(w *Wire, in io.Reader, out io.Writer) *App {
	return &App{
		Wire: w,
		In:   in,
		Out:  out,
		Dial: w.OpenTransport,
	}
}

// JoinOptions are the per-invocation inputs of Join.
type JoinOptions struct {
	Username   string
	Passphrase string
	Secret     string
}

// Join resolves the shared secret, joins the group, asks for a username if
// needed and runs a chat session until it ends or ctx is cancelled. The
// metrics endpoint, when configured, runs for the life of the session.
func (a *App) Join(ctx context.Context, opts JoinOptions) error {
	log := a.Log.GetLogger("app")

	secret, source, err := a.ResolveSecret(opts.Passphrase, opts.Secret)
	if err != nil {
		return err
	}
	defer memzero.Zero(secret)
	if source == SourceDefault {
		log.Warningf("no shared secret configured, using the built-in default")
	}

	t, err := a.Dial(ctx)
	if err != nil {
		return fmt.Errorf("join group: %w", err)
	}
	defer t.Close()

	con := console.New(a.In, a.Out)
	defer con.Close()

	name := strings.TrimSpace(opts.Username)
	for name == "" {
		line, err := con.Prompt(ctx, PromptUsername)
		switch {
		case err == nil:
		case ctx.Err() != nil, errors.Is(err, io.EOF):
			// Leaving before choosing a name is a normal exit.
			return nil
		default:
			return fmt.Errorf("read username: %w", err)
		}
		name = strings.TrimSpace(line)
	}

	sess, err := chat.New(chat.Config{
		Identity:  domain.Username(name),
		Secret:    secret,
		Transport: t,
		Console:   con,
		Logger:    a.Log.GetLogger("chat"),
		Metrics:   a.Metrics,
	})
	if err != nil {
		return err
	}
	con.Notify("Joined %s:%d as %s, secret %s (%s)",
		a.Config.Group.Address, a.Config.Group.Port, name,
		a.Secrets.FingerprintSecret(secret), source)

	g, gctx := errgroup.WithContext(ctx)
	sctx, stop := context.WithCancel(gctx)
	defer stop()

	g.Go(func() error {
		defer stop()
		return sess.Run(sctx)
	})
	if addr := a.Config.Metrics.Address; addr != "" {
		g.Go(func() error {
			log.Noticef("serving metrics on %s", addr)
			return a.Metrics.Serve(sctx, addr)
		})
	}
	return g.Wait()
}
