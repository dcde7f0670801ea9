package secret

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	return bytes.Repeat([]byte{7}, 32)
}

func TestSealOpen(t *testing.T) {
	s, err := New(testKey())
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("sk_test_123"))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "sk_test_123")

	plain, err := s.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "sk_test_123", string(plain))

	again, err := s.Seal([]byte("sk_test_123"))
	require.NoError(t, err)
	assert.NotEqual(t, sealed, again, "nonce must differ per seal")
}

func TestOpenRejectsTampering(t *testing.T) {
	s, err := New(testKey())
	require.NoError(t, err)

	sealed, err := s.Seal([]byte("value"))
	require.NoError(t, err)
	sealed[len(sealed)-1] ^= 0xff

	_, err = s.Open(sealed)
	assert.ErrorIs(t, err, ErrMalformed)

	_, err = s.Open([]byte("short"))
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestFromBase64(t *testing.T) {
	_, err := FromBase64(base64.StdEncoding.EncodeToString(testKey()))
	assert.NoError(t, err)

	_, err = FromBase64(base64.StdEncoding.EncodeToString([]byte("too short")))
	assert.Error(t, err)

	_, err = FromBase64("%%%")
	assert.Error(t, err)
}
