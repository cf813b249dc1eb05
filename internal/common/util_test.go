package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomHex(t *testing.T) {
	for _, n := range []int{0, 7, 32} {
		s, err := RandomHex(n)
		require.NoError(t, err)
		assert.Len(t, s, n*2)

		_, err = hex.DecodeString(s)
		assert.NoError(t, err)
	}

	a, _ := RandomHex(32)
	b, _ := RandomHex(32)
	assert.NotEqual(t, a, b)
}

func TestWipe(t *testing.T) {
	buf := []byte("hunter2")
	Wipe(buf)
	assert.Equal(t, make([]byte, 7), buf)

	assert.NotPanics(t, func() { Wipe(nil) })
}
