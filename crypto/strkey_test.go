package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyRoundTrip(t *testing.T) {
	kp, err := NewKeypair()
	assert.Nil(t, err)

	addr := kp.Address()
	assert.True(t, strings.HasPrefix(addr, "G"))

	k, err := DecodeKey(addr)
	assert.Nil(t, err)
	assert.Equal(t, KeyTypeAccountID, k.Code)
	assert.Equal(t, addr, EncodeKey(k))

	seed := kp.Seed()
	assert.True(t, strings.HasPrefix(seed, "S"))

	sk, err := DecodeKey(seed)
	assert.Nil(t, err)
	assert.Equal(t, KeyTypeSeed, sk.Code)
}

func TestDecodeKeyInvalid(t *testing.T) {
	// Empty key.
	_, err := DecodeKey("")
	assert.NotNil(t, err)

	// Not base32 at all.
	_, err = DecodeKey("not-a-key")
	assert.NotNil(t, err)

	// Corrupt one character to break the checksum.
	kp, err := NewKeypair()
	assert.Nil(t, err)
	addr := []byte(kp.Address())
	if addr[1] == 'A' {
		addr[1] = 'B'
	} else {
		addr[1] = 'A'
	}
	_, err = DecodeKey(string(addr))
	assert.NotNil(t, err)
}

func TestIsValidAccountKey(t *testing.T) {
	kp, err := NewKeypair()
	assert.Nil(t, err)

	assert.True(t, IsValidAccountKey(kp.Address()))
	assert.False(t, IsValidAccountKey(kp.Seed()))
	assert.False(t, IsValidAccountKey("GFAKE"))

	assert.True(t, IsValidSeedKey(kp.Seed()))
	assert.False(t, IsValidSeedKey(kp.Address()))
}

func TestKeypairSign(t *testing.T) {
	kp, err := NewKeypair()
	assert.Nil(t, err)

	payload := []byte("test payload")
	sig := kp.Sign(payload)
	assert.True(t, kp.Verify(payload, sig))
	assert.False(t, kp.Verify([]byte("other payload"), sig))

	// The keypair derived from the seed signs identically.
	kp2, err := NewKeypairFromSeed(kp.Seed())
	assert.Nil(t, err)
	assert.Equal(t, kp.Address(), kp2.Address())
	assert.Equal(t, sig, kp2.Sign(payload))
}
