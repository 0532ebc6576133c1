package build

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/9900offline/stellarwallet/crypto"
)

func TestTx(t *testing.T) {
	// Create a random account.
	src, err := crypto.NewKeypair()
	assert.Nil(t, err)

	dst, err := crypto.NewKeypair()
	assert.Nil(t, err)

	tx := NewTx()

	memo, err := NewMemo(MemoText, "SIMPLE NOTE")
	assert.Nil(t, err)

	err = tx.Add(
		&SourceAccount{AccountID: src.Address()},
		&SeqNum{SeqNum: 101},
		&Fee{Fee: 100},
		&Network{Passphrase: "test network"},
		&Timeout{Seconds: 45},
		memo,
		&Payment{
			Destination: dst.Address(),
			Asset:       NativeAsset(),
			Amount:      "10.5",
		},
	)
	assert.Nil(t, err)

	assert.Equal(t, src.Address(), tx.E.SourceAccount)
	assert.Equal(t, int64(101), tx.E.SeqNum)
	assert.Equal(t, int64(100), tx.E.Fee)
	assert.NotNil(t, tx.E.TimeBounds)
	assert.Equal(t, 1, len(tx.E.Operations))
	assert.Equal(t, OpTypePayment, tx.E.Operations[0].Type)

	// The payload is stable and the hash is derived from it.
	payload, err := tx.Payload()
	assert.Nil(t, err)
	assert.NotEmpty(t, payload)

	h1, err := tx.Hash()
	assert.Nil(t, err)
	h2, err := tx.Hash()
	assert.Nil(t, err)
	assert.Equal(t, h1, h2)
}

func TestTxValidate(t *testing.T) {
	src, err := crypto.NewKeypair()
	assert.Nil(t, err)

	// Missing operations should fail the final validation.
	tx := NewTx()
	err = tx.Add(
		&SourceAccount{AccountID: src.Address()},
		&SeqNum{SeqNum: 1},
		&Fee{Fee: 100},
		&Network{Passphrase: "test network"},
	)
	assert.NotNil(t, err)

	// Non-positive seqnum fails in the mutator already.
	tx = NewTx()
	err = tx.Add(&SeqNum{SeqNum: 0})
	assert.NotNil(t, err)

	// Non-positive fee fails in the mutator already.
	tx = NewTx()
	err = tx.Add(&Fee{Fee: 0})
	assert.NotNil(t, err)
}
