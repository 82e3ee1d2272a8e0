package transport

import "errors"

// MaxDatagramSize is the largest UDP payload over IPv4.
const MaxDatagramSize = 65507

var (
	// ErrClosed is returned for operations on a closed transport.
	ErrClosed = errors.New("transport closed")

	// ErrNotMulticast is returned when the group address is not an IPv4
	// multicast address.
	ErrNotMulticast = errors.New("group address is not an IPv4 multicast address")

	// ErrMessageTooLarge is returned when a datagram exceeds MaxDatagramSize.
	ErrMessageTooLarge = errors.New("datagram too large")
)

// Error reports a failed transport operation.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return "transport: " + e.Op + ": " + e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }
