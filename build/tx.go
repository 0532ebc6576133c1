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

// Package build assembles unsigned transaction envelopes. The
// envelope is the in-memory representation handed to the signing
// collaborator, the binary wire encoding of the signed result is
// owned by the signer.
package build

import (
	"crypto/sha256"
	"errors"
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrNilTx = errors.New("tx is nil")
)

// Envelope is an unsigned transaction.
type Envelope struct {
	SourceAccount     string      `json:"source_account"`
	Fee               int64       `json:"fee"`
	SeqNum            int64       `json:"seq_num"`
	NetworkPassphrase string      `json:"network_passphrase"`
	Memo              *Memo       `json:"memo,omitempty"`
	TimeBounds        *TimeBounds `json:"time_bounds,omitempty"`
	Operations        []Operation `json:"operations"`
}

// TimeBounds is the validity window of a transaction, enforced by
// the network, not by a local timer.
type TimeBounds struct {
	MinTime int64 `json:"min_time"`
	MaxTime int64 `json:"max_time"`
}

// Tx serves as the main object for building a transaction.
type Tx struct {
	E *Envelope
}

func NewTx() *Tx {
	return &Tx{E: &Envelope{}}
}

// Add adds one or more mutators to the underlying envelope and
// fails on the first mutation that fails.
func (t *Tx) Add(ms ...TxMutator) error {
	var err error

	for _, m := range ms {
		err = m.Mutate(t.E)
		if err != nil {
			return err
		}
	}

	if err := t.validate(); err != nil {
		return fmt.Errorf("tx is invalid: %v", err)
	}

	return nil
}

func (t *Tx) validate() error {
	if t.E.SourceAccount == "" {
		return errors.New("empty source account")
	}
	if t.E.SeqNum <= 0 {
		return errors.New("seqnum is not positive")
	}
	if t.E.Fee <= 0 {
		return errors.New("fee is not positive")
	}
	if t.E.NetworkPassphrase == "" {
		return errors.New("empty network passphrase")
	}
	if len(t.E.Operations) == 0 {
		return errors.New("empty op list")
	}
	return nil
}

// Payload returns the canonical byte representation of the
// unsigned envelope.
func (t *Tx) Payload() ([]byte, error) {
	if t.E == nil {
		return nil, ErrNilTx
	}
	b, err := json.Marshal(t.E)
	if err != nil {
		return nil, fmt.Errorf("encode tx failed: %v", err)
	}
	return b, nil
}

// Hash returns the signing hash of the envelope. The network
// passphrase is part of the envelope, so the hash binds the tx to
// one network.
func (t *Tx) Hash() ([32]byte, error) {
	var zero [32]byte
	b, err := t.Payload()
	if err != nil {
		return zero, err
	}
	return sha256.Sum256(b), nil
}
