// Package memzero wipes sensitive buffers such as shared secrets and
// plaintext chat lines once they are no longer needed.
package memzero

import "runtime"

// Zero overwrites b with zeros. This is best-effort: copies made elsewhere
// (strings, garbage-collected moves) are not reached.
//
//go:noinline
func Zero(b []byte) {
	clear(b)
	// Keep b live until after the write so it is not elided.
	runtime.KeepAlive(b)
}
