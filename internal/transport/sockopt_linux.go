//go:build linux

package transport

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// reuseAddr lets several participants on one host bind the group port.
// Linux delivers multicast datagrams to every socket bound with SO_REUSEADDR.
func reuseAddr(_, _ string, c syscall.RawConn) error {
	var opErr error
	err := c.Control(func(fd uintptr) {
		opErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_REUSEADDR, 1)
	})
	if err != nil {
		return err
	}
	return opErr
}
