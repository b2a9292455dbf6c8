package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordDigest_KnownValue(t *testing.T) {
	// Fixed vector shared with the backend's stored procedures.
	d := PasswordDigest([]byte("secret123"))
	require.Equal(t, "fcf730b6d95236ecd3c9fc2d92d7b6b2bb061514961aec041d6c7a7192f592e4", d)
}

func TestPasswordDigest_IsHexAndFixedLength(t *testing.T) {
	d := PasswordDigest([]byte("another password"))
	assert.Len(t, d, 64)
	assert.NotContains(t, d, "another")
	for _, c := range d {
		assert.True(t, (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f'))
	}
}

func TestPasswordDigest_Deterministic(t *testing.T) {
	assert.Equal(t, PasswordDigest([]byte("x")), PasswordDigest([]byte("x")))
	assert.NotEqual(t, PasswordDigest([]byte("x")), PasswordDigest([]byte("y")))
}

func TestWipeByteArray(t *testing.T) {
	b := []byte("secret123")
	WipeByteArray(b)
	for _, v := range b {
		require.Zero(t, v)
	}
}
