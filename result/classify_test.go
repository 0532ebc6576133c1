package result

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/9900offline/stellarwallet/horizon"
)

func nodeError(status int, codes *horizon.ResultCodes) *horizon.Error {
	herr := &horizon.Error{Problem: horizon.Problem{
		Title:  "Transaction Failed",
		Status: status,
	}}
	herr.Problem.Extras.ResultCodes = codes
	return herr
}

type codedError struct{ code Code }

func (e *codedError) Error() string    { return "coded" }
func (e *codedError) ResultCode() Code { return e.code }

func TestClassify(t *testing.T) {
	// An explicit code on the error wins over everything else.
	coded := &codedError{code: Code{Kind: FeeTooHigh, Message: "ceiling"}}
	assert.Equal(t, FeeTooHigh, Classify(coded).Kind)

	// Sentinels classify without a node response.
	err := fmt.Errorf("%w: quote 200 over ceiling 0.1", ErrFeeTooHigh)
	assert.Equal(t, FeeTooHigh, Classify(err).Kind)

	err = fmt.Errorf("%w: query fee stats failed", ErrNetworkUnavailable)
	assert.Equal(t, NetworkUnavailable, Classify(err).Kind)

	// Anything without a node response is a client failure.
	code := Classify(errors.New("context canceled"))
	assert.Equal(t, Client, code.Kind)
	assert.Equal(t, "context canceled", code.Message)

	// A 404 response classifies as not found.
	assert.Equal(t, NotFound, Classify(nodeError(404, nil)).Kind)

	// A response without structured codes is unknown.
	assert.Equal(t, UnknownResponse, Classify(nodeError(400, nil)).Kind)

	// tx_failed reports the first failing operation code.
	code = Classify(nodeError(400, &horizon.ResultCodes{
		Transaction: "tx_failed",
		Operations:  []string{"op_success", "op_underfunded"},
	}))
	assert.Equal(t, OperationFailed, code.Kind)
	assert.Equal(t, "op_underfunded", code.Raw)
	assert.Equal(t, "op_underfunded", code.String())

	// Other transaction level rejections report the tx code.
	code = Classify(nodeError(400, &horizon.ResultCodes{Transaction: "tx_bad_seq"}))
	assert.Equal(t, TransactionFailed, code.Kind)
	assert.Equal(t, "tx_bad_seq", code.Raw)

	// tx_failed without a failing op degrades to the tx code.
	code = Classify(nodeError(400, &horizon.ResultCodes{
		Transaction: "tx_failed",
		Operations:  []string{"op_success"},
	}))
	assert.Equal(t, TransactionFailed, code.Kind)
	assert.Equal(t, "tx_failed", code.Raw)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "NotFoundError", Describe(nodeError(404, nil)))

	herr := nodeError(400, nil)
	herr.Problem.Detail = "The transaction failed when submitted to the network."
	assert.Equal(t, herr.Problem.Detail, Describe(herr))

	herr = nodeError(400, nil)
	assert.Equal(t, "Transaction Failed", Describe(herr))

	assert.Equal(t, "dial timeout", Describe(errors.New("dial timeout")))
}
