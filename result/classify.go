// Copyright 2020 The stellarwallet Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package result decodes submission failures into a stable
// taxonomy so that callers can branch on what went wrong instead
// of string-matching node responses.
package result

import (
	"errors"
	"fmt"

	"github.com/9900offline/stellarwallet/horizon"
)

// Kind is the failure class of a classified error.
type Kind uint8

const (
	// The request never produced a structured node response.
	Client Kind = iota
	// The local fee ceiling rejected the estimated fee.
	FeeTooHigh
	// The network could not be reached, the caller may retry.
	NetworkUnavailable
	// The requested resource does not exist. Expected on the
	// account funding path, not a terminal error there.
	NotFound
	// The node responded without the expected structured result.
	UnknownResponse
	// The transaction was rejected with a transaction level code.
	TransactionFailed
	// One operation of the transaction failed with an op code.
	OperationFailed
)

func (k Kind) String() string {
	switch k {
	case Client:
		return "clientError"
	case FeeTooHigh:
		return "feeTooHigh"
	case NetworkUnavailable:
		return "networkUnavailable"
	case NotFound:
		return "notFound"
	case UnknownResponse:
		return "unknownResponse"
	case TransactionFailed:
		return "transactionFailed"
	case OperationFailed:
		return "operationFailed"
	}
	return ""
}

// Sentinel errors raised before the node is ever contacted. They
// classify without a node response attached.
var (
	ErrFeeTooHigh         = errors.New("max fee too low for network conditions")
	ErrNetworkUnavailable = errors.New("network unavailable")
)

// Code is the classified outcome of a failed call.
type Code struct {
	Kind Kind
	// Raw carries the ledger level result code verbatim when the
	// Kind is TransactionFailed or OperationFailed.
	Raw string
	// Message carries the failure detail for the other kinds.
	Message string
}

func (c Code) String() string {
	if c.Raw != "" {
		return c.Raw
	}
	if c.Message != "" {
		return fmt.Sprintf("%s - %s", c.Kind, c.Message)
	}
	return c.Kind.String()
}

// Coded is implemented by errors that carry an explicit result
// code. Classify returns such codes verbatim.
type Coded interface {
	ResultCode() Code
}

// Classify decodes a submission failure into a Code.
func Classify(err error) Code {
	// An explicit code on the error wins.
	var coded Coded
	if errors.As(err, &coded) {
		return coded.ResultCode()
	}
	if errors.Is(err, ErrFeeTooHigh) {
		return Code{Kind: FeeTooHigh, Message: err.Error()}
	}
	if errors.Is(err, ErrNetworkUnavailable) {
		return Code{Kind: NetworkUnavailable, Message: err.Error()}
	}

	// Without a node response the failure is local.
	var herr *horizon.Error
	if !errors.As(err, &herr) {
		return Code{Kind: Client, Message: err.Error()}
	}

	if herr.IsNotFound() {
		return Code{Kind: NotFound, Message: herr.Problem.Title}
	}

	codes := herr.Problem.Extras.ResultCodes
	if codes == nil {
		return Code{Kind: UnknownResponse, Message: herr.Error()}
	}

	// A tx_failed transaction has exactly one failing operation
	// in a single-operation transaction, report that one.
	if codes.Transaction == "tx_failed" {
		for _, op := range codes.Operations {
			if op != "op_success" {
				return Code{Kind: OperationFailed, Raw: op}
			}
		}
	}

	return Code{Kind: TransactionFailed, Raw: codes.Transaction}
}

// Describe produces a human readable message for the failure.
func Describe(err error) string {
	var herr *horizon.Error
	if errors.As(err, &herr) {
		if herr.IsNotFound() {
			return "NotFoundError"
		}
		if xdr := herr.Problem.Extras.ResultXdr; xdr != "" {
			if name, derr := decodeResultName(xdr); derr == nil {
				return name
			}
		}
		if herr.Problem.Detail != "" {
			return herr.Problem.Detail
		}
		return herr.Problem.Title
	}
	return err.Error()
}
