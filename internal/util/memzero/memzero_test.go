package memzero_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lanchat/internal/util/memzero"
)

func TestZero(t *testing.T) {
	b := []byte("alice:@ALL hello")
	memzero.Zero(b)
	assert.Equal(t, make([]byte, len(b)), b)

	assert.NotPanics(t, func() { memzero.Zero(nil) })
}
