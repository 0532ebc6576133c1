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

// Package sequence reconciles freshly loaded account sequence
// numbers against the numbers already handed out locally. Two
// submissions in quick succession both read the same server-side
// sequence before either lands in a ledger, the tracker bumps the
// second one past the first.
package sequence

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"

	"github.com/9900offline/stellarwallet/log"
)

// Window is the span in which a fresh read is assumed to race a
// prior submission of the same account.
const Window = 5 * time.Second

const trackedAccounts = 512

type snapshot struct {
	seq int64
	at  time.Time
}

// Tracker keeps the last handed out sequence number per account.
type Tracker struct {
	mu        sync.Mutex
	snapshots *lru.Cache
}

func NewTracker() *Tracker {
	cache, err := lru.New(trackedAccounts)
	if err != nil {
		log.Fatalf("create sequence snapshot cache failed: %v", err)
	}
	return &Tracker{snapshots: cache}
}

// Reconcile takes the freshly read sequence of the account and
// returns the effective sequence to build on. Inside the window
// the result is strictly greater than every sequence previously
// returned for the account, outside the window the fresh value is
// adopted as is. The stored snapshot is replaced wholesale.
func (t *Tracker) Reconcile(address string, fresh int64) int64 {
	return t.reconcileAt(address, fresh, time.Now())
}

func (t *Tracker) reconcileAt(address string, fresh int64, now time.Time) int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	eff := fresh
	if v, ok := t.snapshots.Get(address); ok {
		snap := v.(*snapshot)
		if now.Sub(snap.at) < Window && fresh <= snap.seq {
			eff = snap.seq + 1
			log.Debugf("sequence: %d -> %d", fresh, eff)
		}
	}
	t.snapshots.Add(address, &snapshot{seq: eff, at: now})

	return eff
}

// Forget drops the snapshot of the account.
func (t *Tracker) Forget(address string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snapshots.Remove(address)
}
