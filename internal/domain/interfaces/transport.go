package interfaces

import "context"

// Transport carries whole datagrams to and from the chat group.
//
// Receive returns one complete datagram per call and must also return
// datagrams sent by this participant. Send and Receive may be called
// concurrently.
type Transport interface {
	Send(ctx context.Context, datagram []byte) error
	Receive(ctx context.Context) ([]byte, error)
	Close() error
}
