package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
)

// Keypair wraps an ed25519 keypair behind the encoded account id
// and seed representations.
type Keypair struct {
	pub  ed25519.PublicKey
	priv ed25519.PrivateKey
}

// NewKeypair generates a random keypair.
func NewKeypair() (*Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key failed: %v", err)
	}
	return &Keypair{pub: pub, priv: priv}, nil
}

// NewKeypairFromSeed derives the keypair from an encoded seed string.
func NewKeypairFromSeed(seed string) (*Keypair, error) {
	k, err := DecodeKey(seed)
	if err != nil {
		return nil, err
	}
	if k.Code != KeyTypeSeed {
		return nil, errors.New("incorrect seed key type")
	}
	priv := ed25519.NewKeyFromSeed(k.Payload[:])
	return &Keypair{
		pub:  priv.Public().(ed25519.PublicKey),
		priv: priv,
	}, nil
}

// Address returns the encoded account id of the keypair.
func (kp *Keypair) Address() string {
	k := &Key{Code: KeyTypeAccountID}
	copy(k.Payload[:], kp.pub)
	return EncodeKey(k)
}

// Seed returns the encoded seed of the keypair.
func (kp *Keypair) Seed() string {
	k := &Key{Code: KeyTypeSeed}
	copy(k.Payload[:], kp.priv.Seed())
	return EncodeKey(k)
}

// Sign signs the payload and returns the base64 encoded signature.
func (kp *Keypair) Sign(payload []byte) string {
	sig := ed25519.Sign(kp.priv, payload)
	return base64.StdEncoding.EncodeToString(sig)
}

// Verify checks the base64 encoded signature over the payload.
func (kp *Keypair) Verify(payload []byte, signature string) bool {
	sig, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	return ed25519.Verify(kp.pub, payload, sig)
}
