package wallet

import (
	"context"
	"encoding/base64"
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"github.com/9900offline/stellarwallet/build"
	"github.com/9900offline/stellarwallet/crypto"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LocalSigner signs envelopes with an in-process keypair. It is
// the reference Signer for the CLI and for tests, deployments with
// managed keys plug in their own Signer.
type LocalSigner struct {
	kp *crypto.Keypair
}

// NewLocalSigner creates a LocalSigner from an encoded seed.
func NewLocalSigner(seed string) (*LocalSigner, error) {
	kp, err := crypto.NewKeypairFromSeed(seed)
	if err != nil {
		return nil, fmt.Errorf("decode seed failed: %v", err)
	}
	return &LocalSigner{kp: kp}, nil
}

// Address returns the account address of the signing key.
func (ls *LocalSigner) Address() string {
	return ls.kp.Address()
}

// Sign signs the envelope hash and returns the base64 encoded
// signed envelope.
func (ls *LocalSigner) Sign(ctx context.Context, tx *build.Tx) (string, error) {
	payload, err := tx.Payload()
	if err != nil {
		return "", err
	}
	hash, err := tx.Hash()
	if err != nil {
		return "", err
	}

	signed := struct {
		Tx         jsoniter.RawMessage `json:"tx"`
		Signatures []string            `json:"signatures"`
	}{
		Tx:         payload,
		Signatures: []string{ls.kp.Sign(hash[:])},
	}
	b, err := json.Marshal(&signed)
	if err != nil {
		return "", fmt.Errorf("encode signed envelope failed: %v", err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
