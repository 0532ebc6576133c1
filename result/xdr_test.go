package result

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func encodeResult(t *testing.T, values ...interface{}) string {
	var buf bytes.Buffer
	for _, v := range values {
		err := binary.Write(&buf, binary.BigEndian, v)
		assert.Nil(t, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeResultName(t *testing.T) {
	// txBadSeq carries no operation results.
	name, err := decodeResultName(encodeResult(t, int64(100), int32(-5)))
	assert.Nil(t, err)
	assert.Equal(t, "txBadSeq", name)

	// txFailed with one payment op that was underfunded.
	name, err = decodeResultName(encodeResult(t,
		int64(100), // fee charged
		int32(-1),  // txFailed
		int32(1),   // one op result
		int32(0),   // op evaluated
		int32(1),   // payment
		int32(-2),  // underfunded
	))
	assert.Nil(t, err)
	assert.Equal(t, "paymentUnderfunded", name)

	// A path payment that crossed the send max bound.
	name, err = decodeResultName(encodeResult(t,
		int64(100), int32(-1), int32(1), int32(0), int32(2), int32(-12),
	))
	assert.Nil(t, err)
	assert.Equal(t, "pathPaymentStrictReceiveOverSendmax", name)

	// The op failed before its body was evaluated.
	name, err = decodeResultName(encodeResult(t,
		int64(100), int32(-1), int32(1), int32(-2),
	))
	assert.Nil(t, err)
	assert.Equal(t, "opNoAccount", name)

	// Unknown variants degrade to the transaction level name
	// instead of failing.
	name, err = decodeResultName(encodeResult(t,
		int64(100), int32(-1), int32(1), int32(0), int32(99), int32(-1),
	))
	assert.Nil(t, err)
	assert.Equal(t, "txFailed", name)
}

func TestDecodeResultNameInvalid(t *testing.T) {
	_, err := decodeResultName("!!not-base64!!")
	assert.NotNil(t, err)

	// Truncated before the transaction code.
	_, err = decodeResultName(encodeResult(t, int32(0)))
	assert.NotNil(t, err)

	// Unknown transaction code.
	_, err = decodeResultName(encodeResult(t, int64(100), int32(-99)))
	assert.NotNil(t, err)
}
