package transport

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/pion/logging"
	"github.com/pion/transport/v3/packetio"

	"lanchat/internal/domain"
)

// memberBufferLimit bounds the datagrams queued for one slow member. Further
// datagrams are dropped, as a full socket buffer would.
const memberBufferLimit = 1 << 20

// Hub is an in-memory multicast group. Every datagram sent by a member is
// delivered to all members, the sender included.
type Hub struct {
	log logging.LeveledLogger

	mu      sync.RWMutex
	members map[*Member]struct{}
}

// NewHub creates an empty group. lf may be nil to disable logging.
func NewHub(lf logging.LoggerFactory) *Hub {
	h := &Hub{members: make(map[*Member]struct{})}
	if lf != nil {
		h.log = lf.NewLogger("transport-hub")
	}
	return h
}

// Join adds a member to the group.
func (h *Hub) Join(name string) *Member {
	buf := packetio.NewBuffer()
	buf.SetLimitSize(memberBufferLimit)
	m := &Member{
		hub:    h,
		name:   name,
		buf:    buf,
		rbuf:   make([]byte, MaxDatagramSize),
		closed: make(chan struct{}),
	}

	h.mu.Lock()
	h.members[m] = struct{}{}
	h.mu.Unlock()

	if h.log != nil {
		h.log.Debugf("%s joined", name)
	}
	return m
}

// Len returns the number of members.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.members)
}

func (h *Hub) broadcast(from string, datagram []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for m := range h.members {
		if _, err := m.buf.Write(datagram); err != nil && h.log != nil {
			h.log.Warnf("dropping datagram from %s to %s: %v", from, m.name, err)
		}
	}
}

func (h *Hub) leave(m *Member) {
	h.mu.Lock()
	delete(h.members, m)
	h.mu.Unlock()

	if h.log != nil {
		h.log.Debugf("%s left", m.name)
	}
}

// Member is one participant's handle on a Hub.
type Member struct {
	hub  *Hub
	name string
	buf  *packetio.Buffer

	closeOnce sync.Once
	closed    chan struct{}
	recvMu    sync.Mutex
	rbuf      []byte
}

func (m *Member) isClosed() bool {
	select {
	case <-m.closed:
		return true
	default:
		return false
	}
}

// Send delivers datagram to every member of the hub.
func (m *Member) Send(ctx context.Context, datagram []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.isClosed() {
		return &Error{Op: "send", Err: ErrClosed}
	}
	if len(datagram) > MaxDatagramSize {
		return &Error{Op: "send", Err: ErrMessageTooLarge}
	}
	m.hub.broadcast(m.name, datagram)
	return nil
}

// Receive blocks until a datagram is queued for this member, ctx is done or
// the member is closed.
func (m *Member) Receive(ctx context.Context) ([]byte, error) {
	m.recvMu.Lock()
	defer m.recvMu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	_ = m.buf.SetReadDeadline(time.Time{})
	stop := context.AfterFunc(ctx, func() {
		_ = m.buf.SetReadDeadline(time.Now())
	})
	defer stop()

	n, err := m.buf.Read(m.rbuf)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, io.EOF) || m.isClosed() {
			return nil, &Error{Op: "receive", Err: ErrClosed}
		}
		return nil, &Error{Op: "receive", Err: err}
	}
	data := make([]byte, n)
	copy(data, m.rbuf[:n])
	return data, nil
}

// Close removes the member from the hub. Pending receives return.
func (m *Member) Close() error {
	err := ErrClosed
	m.closeOnce.Do(func() {
		close(m.closed)
		m.hub.leave(m)
		err = m.buf.Close()
	})
	return err
}

var _ domain.Transport = (*Member)(nil)
