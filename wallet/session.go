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

// Package wallet orchestrates the transaction lifecycle of one
// account: load the account snapshot, quote the fee, reconcile the
// sequence number, build and sign a single-operation envelope,
// submit it and surface classified failures.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/9900offline/stellarwallet/build"
	"github.com/9900offline/stellarwallet/crypto"
	"github.com/9900offline/stellarwallet/fee"
	"github.com/9900offline/stellarwallet/horizon"
	"github.com/9900offline/stellarwallet/log"
	"github.com/9900offline/stellarwallet/result"
	"github.com/9900offline/stellarwallet/sequence"
)

// DefaultTimeout is the network enforced validity window of a
// transaction in seconds.
const DefaultTimeout = 45

// Node is the boundary to the remote ledger node. It is satisfied
// by *horizon.Client.
type Node interface {
	Account(ctx context.Context, accountID string) (*horizon.Account, error)
	FeeStats(ctx context.Context) (*horizon.FeeStats, error)
	SubmitTransaction(ctx context.Context, envelope string) (*horizon.TxSuccess, error)
	Offers(ctx context.Context, accountID string, limit int) ([]horizon.Offer, error)
	ClaimableBalances(ctx context.Context, claimant string, limit int) ([]horizon.ClaimableBalance, error)
}

// Signer signs an unsigned envelope and returns the encoded signed
// envelope ready for submission. Key management and the wire
// encoding of the signed result are owned by the signer.
type Signer interface {
	Sign(ctx context.Context, tx *build.Tx) (string, error)
}

// Config carries the session wide configuration. There is no
// ambient global state, switching networks means creating a new
// session with a new config.
type Config struct {
	// Network passphrase the envelopes are bound to.
	NetworkPassphrase string
	// Code of the native asset of the network.
	NativeCode string
	// Validity window of submitted transactions in seconds.
	Timeout int64
	// Fee ceiling in whole coins. Estimated fees above the
	// ceiling fail the call before the signer is contacted.
	MaxFee float64
}

func (c *Config) validate() error {
	if c.NetworkPassphrase == "" {
		return errors.New("network passphrase is empty")
	}
	if c.NativeCode == "" {
		return errors.New("native asset code is empty")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout is not positive")
	}
	if c.MaxFee <= 0 {
		return errors.New("fee ceiling is not positive")
	}
	return nil
}

// Session drives all mutating operations of one account against
// one network. Mutating calls are serialized per session so two
// concurrent submissions cannot observe the same stale sequence.
type Session struct {
	address string
	cfg     Config

	node   Node
	signer Signer

	fees *fee.Estimator
	seqs *sequence.Tracker

	// serializes the load-quote-reconcile-submit pipeline
	mu sync.Mutex
}

// NewSession creates a session for the account address.
func NewSession(cfg Config, address string, node Node, signer Signer) (*Session, error) {
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("session config is invalid: %v", err)
	}
	if !crypto.IsValidAccountKey(address) {
		return nil, errors.New("invalid account address")
	}
	if node == nil {
		return nil, errors.New("node client is nil")
	}
	s := &Session{
		address: address,
		cfg:     cfg,
		node:    node,
		signer:  signer,
		fees:    fee.NewEstimator(node),
		seqs:    sequence.NewTracker(),
	}
	return s, nil
}

// Address returns the account address of the session.
func (s *Session) Address() string {
	return s.address
}

// Asset resolves a code/issuer pair against the native asset code
// of the session network.
func (s *Session) Asset(code, issuer string) build.Asset {
	if code == s.cfg.NativeCode {
		return build.NativeAsset()
	}
	return build.CreditAsset(code, issuer)
}

// Submit runs the uniform submission pipeline for one operation:
// account snapshot, fee quote with ceiling check, sequence
// reconciliation, envelope build, external signing, submission.
// It returns the transaction hash of the accepted submission.
func (s *Session) Submit(ctx context.Context, memo *build.Memo, op build.TxMutator) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, err := s.node.Account(ctx, s.address)
	if err != nil {
		return "", fmt.Errorf("load account failed: %w", err)
	}

	quote, err := s.fees.Estimate(ctx)
	if err != nil {
		return "", err
	}
	// Ceiling in whole coins, quote in smallest units. Exceeding
	// the ceiling is a hard precondition failure, not a retry.
	if float64(quote) > s.cfg.MaxFee*10000000 {
		return "", fmt.Errorf("%w: quote %d over ceiling %g", result.ErrFeeTooHigh, quote, s.cfg.MaxFee)
	}

	fresh, err := acc.SequenceNumber()
	if err != nil {
		return "", err
	}
	eff := s.seqs.Reconcile(s.address, fresh)

	tx := build.NewTx()
	ms := []build.TxMutator{
		&build.SourceAccount{AccountID: s.address},
		&build.SeqNum{SeqNum: eff + 1},
		&build.Fee{Fee: quote},
		&build.Network{Passphrase: s.cfg.NetworkPassphrase},
		&build.Timeout{Seconds: s.cfg.Timeout},
	}
	if memo != nil {
		ms = append(ms, memo)
	}
	ms = append(ms, op)
	if err := tx.Add(ms...); err != nil {
		return "", err
	}

	envelope, err := s.signer.Sign(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("sign tx failed: %w", err)
	}

	res, err := s.node.SubmitTransaction(ctx, envelope)
	if err != nil {
		log.Warnw("tx submission failed", "code", result.Classify(err).String())
		return "", err
	}
	log.Infow("tx submitted", "hash", res.Hash, "ledger", res.Ledger)

	return res.Hash, nil
}

// AccountInfo loads the account record of the given address, or of
// the session account when the address is empty. NotFound is an
// expected condition for unfunded accounts and is not logged.
func (s *Session) AccountInfo(ctx context.Context, address string) (*horizon.Account, error) {
	if address == "" {
		address = s.address
	}
	acc, err := s.node.Account(ctx, address)
	if err != nil {
		if !horizon.IsNotFound(err) {
			log.Errorf("load account %s failed: %v", address, err)
		}
		return nil, err
	}
	return acc, nil
}

// Offers lists the standing offers of the session account.
func (s *Session) Offers(ctx context.Context) ([]horizon.Offer, error) {
	return s.node.Offers(ctx, s.address, 200)
}

// ClaimableBalances lists the balances claimable by the session
// account.
func (s *Session) ClaimableBalances(ctx context.Context) ([]horizon.ClaimableBalance, error) {
	return s.node.ClaimableBalances(ctx, s.address, 200)
}

// Close tears the session state down. The node connection is not
// owned by the session and stays untouched.
func (s *Session) Close() {
	s.seqs.Forget(s.address)
}

// IsValidAddress checks whether the string is a well formed
// account address.
func IsValidAddress(address string) bool {
	return crypto.IsValidAccountKey(address)
}

// ValidateMemo checks whether the memo type and value form a
// valid memo. It returns an empty string when they do and the
// failure message otherwise.
func ValidateMemo(memoType, value string) string {
	if _, err := build.NewMemo(memoType, value); err != nil {
		return err.Error()
	}
	return ""
}
