//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package transport

import "syscall"

// reuseAddr is a no-op here; a second participant on the same host will fail
// to bind the group port.
func reuseAddr(_, _ string, _ syscall.RawConn) error { return nil }
