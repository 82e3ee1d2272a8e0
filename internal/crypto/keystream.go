package crypto

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptySecret is returned when scheduling a zero-length secret.
var ErrEmptySecret = errors.New("crypto: shared secret is empty")

// KeyState is the keyed RC4 permutation derived from a shared secret.
//
// A KeyState is never modified after Schedule returns, so a single value may
// be shared by any number of goroutines. Each Transform operates on its own
// copy of the permutation.
type KeyState struct {
	perm [256]byte
}

// Schedule runs the RC4 key-scheduling algorithm over secret.
//
// The secret is indexed cyclically; only its first 256 bytes influence the
// resulting permutation.
func Schedule(secret []byte) (*KeyState, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	st := new(KeyState)
	for i := range st.perm {
		st.perm[i] = byte(i)
	}
	var j byte
	for i := 0; i < 256; i++ {
		j += st.perm[i] + secret[i%len(secret)]
		st.perm[i], st.perm[j] = st.perm[j], st.perm[i]
	}
	return st, nil
}

// Transform XORs data with the keystream and returns the result in a new slice.
//
// Encryption and decryption are the same operation. The receiver is left
// untouched: calling Transform twice with equal input yields equal output.
func (s *KeyState) Transform(data []byte) []byte {
	out := make([]byte, len(data))
	s.xorKeyStream(out, data)
	return out
}

// Keystream returns the first n keystream bytes, i.e. the transform of n zero
// bytes.
func (s *KeyState) Keystream(n int) []byte {
	if n <= 0 {
		return nil
	}
	out := make([]byte, n)
	s.xorKeyStream(out, out)
	return out
}

// xorKeyStream runs the generation algorithm on a private copy of the
// permutation. dst and src may alias.
func (s *KeyState) xorKeyStream(dst, src []byte) {
	perm := s.perm
	var i, j byte
	for k, b := range src {
		i++
		j += perm[i]
		perm[i], perm[j] = perm[j], perm[i]
		dst[k] = b ^ perm[perm[i]+perm[j]]
	}
}

// Transform is shorthand for state.Transform(data).
func Transform(state *KeyState, data []byte) []byte {
	return state.Transform(data)
}

// FormatBytes renders b as a table of decimal byte values, perRow per line.
func FormatBytes(b []byte, perRow int) string {
	if perRow <= 0 {
		perRow = 16
	}
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			if i%perRow == 0 {
				sb.WriteByte('\n')
			} else {
				sb.WriteByte(' ')
			}
		}
		fmt.Fprintf(&sb, "%3d", v)
	}
	return sb.String()
}
