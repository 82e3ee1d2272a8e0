package transport

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/pion/logging"
	"golang.org/x/net/ipv4"

	"lanchat/internal/domain"
)

// Default group parameters spoken by existing peers.
const (
	DefaultGroup = "239.0.0.1"
	DefaultPort  = 5000
	DefaultTTL   = 1
)

// MulticastConfig configures the multicast transport.
type MulticastConfig struct {
	// Group is the IPv4 multicast group, e.g. "239.0.0.1".
	Group string

	// Port is the UDP port every participant binds and sends to.
	Port int

	// Interface optionally names the network interface used to join the
	// group and send. The system default is used when empty.
	Interface string

	// TTL is the multicast hop limit. Zero means DefaultTTL.
	TTL int

	// LoggerFactory is the factory for creating loggers.
	// If nil, logging is disabled.
	LoggerFactory logging.LoggerFactory
}

// Multicast is a UDP multicast transport.
type Multicast struct {
	conn  net.PacketConn
	pc    *ipv4.PacketConn
	group *net.UDPAddr
	ifi   *net.Interface
	log   logging.LeveledLogger

	recvMu sync.Mutex
	buf    []byte

	mu     sync.RWMutex
	closed bool
}

// NewMulticast binds the group port on all addresses, joins the group and
// enables loopback. Any failure here is a setup failure: the socket is
// released and an *Error is returned.
func NewMulticast(ctx context.Context, cfg MulticastConfig) (*Multicast, error) {
	ip := net.ParseIP(cfg.Group).To4()
	if ip == nil || !ip.IsMulticast() {
		return nil, &Error{Op: "config", Err: fmt.Errorf("%w: %q", ErrNotMulticast, cfg.Group)}
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, &Error{Op: "config", Err: fmt.Errorf("invalid port %d", cfg.Port)}
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}

	m := &Multicast{
		group: &net.UDPAddr{IP: ip, Port: cfg.Port},
		buf:   make([]byte, MaxDatagramSize),
	}
	if cfg.LoggerFactory != nil {
		m.log = cfg.LoggerFactory.NewLogger("transport-multicast")
	}

	var ifi *net.Interface
	if cfg.Interface != "" {
		var err error
		if ifi, err = net.InterfaceByName(cfg.Interface); err != nil {
			return nil, &Error{Op: "config", Err: err}
		}
	}

	m.ifi = ifi

	lc := net.ListenConfig{Control: reuseAddr}
	conn, err := lc.ListenPacket(ctx, "udp4", net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.Port)))
	if err != nil {
		return nil, &Error{Op: "listen", Err: err}
	}
	m.conn = conn
	m.pc = ipv4.NewPacketConn(conn)

	if err := m.pc.JoinGroup(ifi, &net.UDPAddr{IP: ip}); err != nil {
		_ = conn.Close()
		return nil, &Error{Op: "join", Err: err}
	}
	if ifi != nil {
		if err := m.pc.SetMulticastInterface(ifi); err != nil {
			_ = conn.Close()
			return nil, &Error{Op: "join", Err: err}
		}
	}
	if err := m.pc.SetMulticastLoopback(true); err != nil {
		_ = conn.Close()
		return nil, &Error{Op: "join", Err: err}
	}
	if err := m.pc.SetMulticastTTL(ttl); err != nil {
		_ = conn.Close()
		return nil, &Error{Op: "join", Err: err}
	}

	if m.log != nil {
		m.log.Infof("joined %s on %s", m.group, conn.LocalAddr())
	}
	return m, nil
}

// Group returns the group address datagrams are sent to.
func (m *Multicast) Group() net.Addr { return m.group }

// Send writes one datagram to the group. Delivery is not acknowledged.
func (m *Multicast) Send(ctx context.Context, datagram []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.RLock()
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return &Error{Op: "send", Err: ErrClosed}
	}
	if len(datagram) > MaxDatagramSize {
		return &Error{Op: "send", Err: ErrMessageTooLarge}
	}

	if m.log != nil {
		m.log.Debugf("sending %d bytes to %s", len(datagram), m.group)
	}
	if _, err := m.conn.WriteTo(datagram, m.group); err != nil {
		if m.log != nil {
			m.log.Warnf("send failed: %v", err)
		}
		return &Error{Op: "send", Err: err}
	}
	return nil
}

// Receive blocks until one datagram arrives, ctx is done or the transport is
// closed. The source address is logged but not returned.
func (m *Multicast) Receive(ctx context.Context) ([]byte, error) {
	m.recvMu.Lock()
	defer m.recvMu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A previous cancellation may have left an expired deadline behind.
	_ = m.conn.SetReadDeadline(time.Time{})
	stop := context.AfterFunc(ctx, func() {
		_ = m.conn.SetReadDeadline(time.Now())
	})
	defer stop()

	n, src, err := m.conn.ReadFrom(m.buf)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		m.mu.RLock()
		closed := m.closed
		m.mu.RUnlock()
		if closed {
			return nil, &Error{Op: "receive", Err: ErrClosed}
		}
		if m.log != nil {
			m.log.Warnf("receive failed: %v", err)
		}
		return nil, &Error{Op: "receive", Err: err}
	}

	if m.log != nil {
		m.log.Debugf("received %d bytes from %v", n, src)
	}
	data := make([]byte, n)
	copy(data, m.buf[:n])
	return data, nil
}

// Close leaves the group and releases the socket. Pending receives return.
func (m *Multicast) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	m.closed = true
	m.mu.Unlock()

	if m.log != nil {
		m.log.Info("leaving group")
	}
	if err := m.pc.LeaveGroup(m.ifi, &net.UDPAddr{IP: m.group.IP}); err != nil && m.log != nil {
		m.log.Warnf("leave group: %v", err)
	}
	_ = m.conn.SetReadDeadline(time.Now())
	return m.conn.Close()
}

var _ domain.Transport = (*Multicast)(nil)
