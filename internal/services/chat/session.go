package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
	"gopkg.in/op/go-logging.v1"

	"lanchat/internal/crypto"
	"lanchat/internal/domain"
	"lanchat/internal/instrument"
	lanlog "lanchat/internal/log"
	"lanchat/internal/protocol/chatline"
	"lanchat/internal/transport"
	"lanchat/internal/util/memzero"
)

// Console text used by the outbound loop.
const (
	PromptTarget    = "Who do you want to message? (1) All  (2) Specific User\n> "
	PromptRecipient = "Enter recipient's username: "
	PromptMessage   = "Enter your message (type /exit to quit): "

	NoteInvalidChoice = "Invalid choice."
	NoteExiting       = "Exiting chat..."
	NoteTooLong       = "Message too long."

	// ExitCommand ends the outbound loop when entered as a message.
	ExitCommand = "/exit"
)

var (
	// ErrNoIdentity indicates an empty local username.
	ErrNoIdentity = errors.New("chat: username must not be empty")
	// ErrNoTransport indicates a session without a transport.
	ErrNoTransport = errors.New("chat: no transport")
	// ErrNoConsole indicates a session without a console.
	ErrNoConsole = errors.New("chat: no console")
)

// Config holds everything a Session needs. Logger and Metrics are optional.
type Config struct {
	Identity  domain.Username
	Secret    []byte
	Transport domain.Transport
	Console   domain.Console
	Logger    *logging.Logger
	Metrics   *instrument.Metrics
}

// Session is one chat participant.
type Session struct {
	self      domain.Username
	key       *crypto.KeyState
	transport domain.Transport
	console   domain.Console
	log       *logging.Logger
	metrics   *instrument.Metrics
}

// New validates cfg and schedules the shared secret. The caller keeps
// ownership of cfg.Secret and may wipe it once New returns.
func New(cfg Config) (*Session, error) {
	if strings.TrimSpace(cfg.Identity.String()) == "" {
		return nil, ErrNoIdentity
	}
	if cfg.Transport == nil {
		return nil, ErrNoTransport
	}
	if cfg.Console == nil {
		return nil, ErrNoConsole
	}
	key, err := crypto.Schedule(cfg.Secret)
	if err != nil {
		return nil, err
	}
	l := cfg.Logger
	if l == nil {
		l = lanlog.NewDiscard().GetLogger("chat")
	}
	return &Session{
		self:      cfg.Identity,
		key:       key,
		transport: cfg.Transport,
		console:   cfg.Console,
		log:       l,
		metrics:   cfg.Metrics,
	}, nil
}

// Identity returns the local username.
func (s *Session) Identity() domain.Username { return s.self }

// Run starts the inbound and outbound loops and waits for them.
//
// The session ends when the outbound loop does (exit command or end of
// input), which also stops the inbound loop. A transport failure in either
// loop ends the session with that error. Cancelling ctx stops both loops and
// Run returns nil.
func (s *Session) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	inCtx, stopInbound := context.WithCancel(gctx)
	defer stopInbound()

	g.Go(func() error {
		defer stopInbound()
		return s.SendLoop(gctx)
	})
	g.Go(func() error {
		return s.ReceiveLoop(inCtx)
	})

	s.log.Infof("%s joined the chat", s.self)
	err := g.Wait()
	s.log.Infof("%s left the chat", s.self)
	return err
}

// SendLoop prompts for messages and sends them until the exit command, end
// of input or cancellation, all of which return nil. A message too large for
// one datagram is reported and the loop prompts again.
func (s *Session) SendLoop(ctx context.Context) error {
	for {
		target, err := s.chooseTarget(ctx)
		if err != nil {
			return s.inputDone(ctx, err)
		}

		body, err := s.console.Prompt(ctx, PromptMessage)
		if err != nil {
			return s.inputDone(ctx, err)
		}
		if body == ExitCommand {
			s.console.Notify(NoteExiting)
			return nil
		}

		if err := s.Send(ctx, target, body); err != nil {
			switch {
			case ctx.Err() != nil:
				return nil
			case errors.Is(err, transport.ErrMessageTooLarge):
				s.console.Notify(NoteTooLong)
			default:
				return err
			}
		}
	}
}

func (s *Session) chooseTarget(ctx context.Context) (domain.Username, error) {
	for {
		choice, err := s.console.Prompt(ctx, PromptTarget)
		if err != nil {
			return "", err
		}
		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "1", "all":
			return domain.Everyone, nil
		case "2", "specific":
			name, err := s.console.Prompt(ctx, PromptRecipient)
			if err != nil {
				return "", err
			}
			return domain.Username(strings.TrimSpace(name)), nil
		default:
			s.console.Notify(NoteInvalidChoice)
		}
	}
}

// inputDone maps the end of console input to a clean loop exit.
func (s *Session) inputDone(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, io.EOF) {
		return nil
	}
	return fmt.Errorf("chat: read input: %w", err)
}

// Send encrypts one chat line from the local user to target and sends it to
// the group. There is no acknowledgement and no retry.
func (s *Session) Send(ctx context.Context, target domain.Username, body string) error {
	line := chatline.Encode(domain.ChatMessage{Sender: s.self, Target: target, Body: body})
	defer memzero.Zero(line)

	if err := s.transport.Send(ctx, s.key.Transform(line)); err != nil {
		return fmt.Errorf("chat: send: %w", err)
	}
	s.metrics.MessageSent()
	s.log.Debugf("sent %d bytes to %s", len(line), target)
	return nil
}

// ReceiveLoop handles datagrams until ctx is cancelled, which returns nil,
// or the transport fails.
func (s *Session) ReceiveLoop(ctx context.Context) error {
	for {
		datagram, err := s.transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("chat: receive: %w", err)
		}
		s.handle(datagram)
	}
}

func (s *Session) handle(datagram []byte) {
	s.metrics.DatagramReceived()

	plain := s.key.Transform(datagram)
	msg, err := chatline.Decode(plain)
	memzero.Zero(plain)
	if err != nil {
		s.log.Debugf("dropping %d byte datagram: %v", len(datagram), err)
		s.metrics.MessageDiscarded(instrument.ReasonMalformed)
		return
	}

	switch {
	case msg.Sender == s.self:
		s.metrics.MessageDiscarded(instrument.ReasonOwnEcho)
	case !msg.DeliverableTo(s.self):
		s.log.Debugf("ignoring message from %s to %s", msg.Sender, msg.Target)
		s.metrics.MessageDiscarded(instrument.ReasonNotForUs)
	default:
		s.metrics.MessageDelivered()
		s.console.Display(msg)
	}
}
