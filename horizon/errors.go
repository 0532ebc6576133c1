package horizon

import (
	"fmt"
	"net/http"
)

// ResultCodes carries the structured result codes of a rejected
// transaction. Transaction holds the transaction level code and
// Operations the per-operation codes in operation order.
type ResultCodes struct {
	Transaction string   `json:"transaction"`
	Operations  []string `json:"operations,omitempty"`
}

// Problem is the structured error document returned by the ledger
// node on a failed request.
type Problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	Extras struct {
		ResultCodes *ResultCodes `json:"result_codes,omitempty"`
		ResultXdr   string       `json:"result_xdr,omitempty"`
		EnvelopeXdr string       `json:"envelope_xdr,omitempty"`
	} `json:"extras"`
}

// Error is a failed request to the ledger node that did produce a
// response. Requests that never reached the node surface as plain
// transport errors instead.
type Error struct {
	Problem Problem
}

func (e *Error) Error() string {
	if e.Problem.Detail != "" {
		return fmt.Sprintf("horizon error: %s", e.Problem.Detail)
	}
	return fmt.Sprintf("horizon error: %s", e.Problem.Title)
}

// IsNotFound reports whether the error is a missing-resource error.
func (e *Error) IsNotFound() bool {
	return e.Problem.Status == http.StatusNotFound
}

// IsNotFound reports whether err is a missing-resource error from
// the ledger node.
func IsNotFound(err error) bool {
	herr, ok := err.(*Error)
	return ok && herr.IsNotFound()
}
