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

// Package stream reconciles the local account state against the
// server push streams of the ledger node. Incoming account events
// are complete snapshots, never deltas, so the reconciler diffs
// them wholesale against the last known state and notifies only
// when observable state actually changed.
package stream

import (
	"context"
	"sort"
	"sync"

	mapset "github.com/deckarep/golang-set"
	"github.com/shopspring/decimal"

	"github.com/9900offline/stellarwallet/horizon"
	"github.com/9900offline/stellarwallet/log"
)

// Base reserve parameters of the network: every subentry raises
// the minimum reserve by half a coin on top of the base coin.
var (
	reservePerEntry = decimal.RequireFromString("0.5")
	baseReserve     = decimal.RequireFromString("1")
)

// Trustline is the observable state of one non-native balance line.
type Trustline struct {
	Code    string
	Issuer  string
	Balance string
	Limit   string
}

// Snapshot is the observable balance state handed to the balance
// change callback: the native balance plus the trustlines keyed by
// asset code and issuer.
type Snapshot struct {
	Native decimal.Decimal
	Lines  map[string]map[string]Trustline
}

// HistoryProcessor interprets raw transaction records. It is a
// pure collaborator, the reconciler does not inspect the returned
// record beyond logging it.
type HistoryProcessor interface {
	ProcessTx(tx *horizon.Transaction, address string) interface{}
}

// Streamer is the push boundary of the ledger node, satisfied by
// *horizon.Client.
type Streamer interface {
	StreamAccount(ctx context.Context, accountID string, handler func(*horizon.Account)) error
	StreamTransactions(ctx context.Context, accountID, cursor string, handler func(*horizon.Transaction)) error
}

// Reconciler subscribes to the account and transaction streams of
// one account and emits change notifications exactly when the
// observable state changed. At most one subscription of each kind
// is live, restarting replaces them.
type Reconciler struct {
	address  string
	streamer Streamer
	history  HistoryProcessor

	onBalance func(Snapshot)
	onReserve func(decimal.Decimal)

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	running  bool
	subentry int32
	balances []horizon.Balance
}

// NewReconciler creates a reconciler for the account address.
func NewReconciler(address string, s Streamer, h HistoryProcessor) *Reconciler {
	return &Reconciler{
		address:  address,
		streamer: s,
		history:  h,
	}
}

// OnBalanceChange registers the balance notification callback.
// Must be called before Start.
func (r *Reconciler) OnBalanceChange(fn func(Snapshot)) {
	r.onBalance = fn
}

// OnReserveChange registers the reserve notification callback.
// Must be called before Start.
func (r *Reconciler) OnReserveChange(fn func(decimal.Decimal)) {
	r.onReserve = fn
}

// Start subscribes to the account stream and to the transaction
// stream starting at the current cursor, so only future events are
// observed. An already running reconciler is stopped first, the
// new subscriptions replace the old handles.
func (r *Reconciler) Start() {
	r.Stop()

	r.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true
	gen := r.gen
	r.mu.Unlock()

	go func() {
		err := r.streamer.StreamAccount(ctx, r.address, func(acc *horizon.Account) {
			r.handleAccount(gen, acc)
		})
		if err != nil {
			log.Errorf("account stream closed: %v", err)
		}
	}()

	go func() {
		err := r.streamer.StreamTransactions(ctx, r.address, "now", func(tx *horizon.Transaction) {
			r.handleTx(gen, tx)
		})
		if err != nil {
			log.Errorf("tx stream closed: %v", err)
		}
	}()
}

// Stop releases both subscriptions. Once Stop returns no further
// callback fires. Stopping an idle reconciler is a no-op.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.running {
		return
	}
	r.gen++
	r.cancel()
	r.cancel = nil
	r.running = false
}

// Reset drops the last known state so the next push event is
// treated as the first observation.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subentry = 0
	r.balances = nil
}

// handleAccount diffs the incoming snapshot against the last known
// state. The subentry comparison and the balance comparison are
// independent, either can notify without the other.
func (r *Reconciler) handleAccount(gen uint64, acc *horizon.Account) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		// subscription was stopped or replaced
		return
	}

	if acc.SubentryCount != r.subentry {
		log.Debugf("subentry: %d -> %d", r.subentry, acc.SubentryCount)
		r.subentry = acc.SubentryCount
		if r.onReserve != nil {
			reserve := decimal.NewFromInt(int64(r.subentry)).Mul(reservePerEntry).Add(baseReserve)
			r.onReserve(reserve)
		}
	}

	incoming := sortedBalances(acc.Balances)
	if !balancesEqual(r.balances, incoming) {
		logBalanceDiff(r.balances, incoming)
		r.balances = incoming
		if r.onBalance != nil {
			r.onBalance(snapshotOf(incoming))
		}
	}
}

func (r *Reconciler) handleTx(gen uint64, tx *horizon.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if gen != r.gen {
		return
	}
	rec := r.history.ProcessTx(tx, r.address)
	log.Debugw("tx stream event", "hash", tx.Hash, "record", rec)
}

// sortedBalances orders a copy of the balance set by asset key so
// that the structural comparison is independent of the ordering
// the node returned.
func sortedBalances(in []horizon.Balance) []horizon.Balance {
	out := make([]horizon.Balance, len(in))
	copy(out, in)
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.AssetType != b.AssetType {
			return a.AssetType < b.AssetType
		}
		if a.AssetCode != b.AssetCode {
			return a.AssetCode < b.AssetCode
		}
		return a.AssetIssuer < b.AssetIssuer
	})
	return out
}

func balancesEqual(a, b []horizon.Balance) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// logBalanceDiff logs the trustline keys that appeared or
// disappeared between two snapshots.
func logBalanceDiff(prev, next []horizon.Balance) {
	oldKeys, newKeys := mapset.NewSet(), mapset.NewSet()
	for _, b := range prev {
		if !b.IsNative() {
			oldKeys.Add(b.AssetCode + "/" + b.AssetIssuer)
		}
	}
	for _, b := range next {
		if !b.IsNative() {
			newKeys.Add(b.AssetCode + "/" + b.AssetIssuer)
		}
	}
	added := newKeys.Difference(oldKeys)
	removed := oldKeys.Difference(newKeys)
	if added.Cardinality() > 0 || removed.Cardinality() > 0 {
		log.Debugw("trustlines changed", "added", added.ToSlice(), "removed", removed.ToSlice())
	}
}

// snapshotOf converts the balance set into the observable snapshot
// handed to the balance callback.
func snapshotOf(balances []horizon.Balance) Snapshot {
	snap := Snapshot{Lines: make(map[string]map[string]Trustline)}
	for _, line := range balances {
		if line.IsNative() {
			if d, err := decimal.NewFromString(line.Balance); err == nil {
				snap.Native = d
			}
			continue
		}
		if snap.Lines[line.AssetCode] == nil {
			snap.Lines[line.AssetCode] = make(map[string]Trustline)
		}
		snap.Lines[line.AssetCode][line.AssetIssuer] = Trustline{
			Code:    line.AssetCode,
			Issuer:  line.AssetIssuer,
			Balance: line.Balance,
			Limit:   line.Limit,
		}
	}
	return snap
}
