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

package horizon

import (
	"fmt"
	"strconv"
)

// Account is the account record returned by the ledger node. The
// record is always a complete snapshot, balances in particular are
// never deltas.
type Account struct {
	ID            string            `json:"id"`
	AccountID     string            `json:"account_id"`
	Sequence      string            `json:"sequence"`
	SubentryCount int32             `json:"subentry_count"`
	HomeDomain    string            `json:"home_domain"`
	Balances      []Balance         `json:"balances"`
	Data          map[string]string `json:"data"`
}

// SequenceNumber parses the account sequence into an int64.
func (a *Account) SequenceNumber() (int64, error) {
	seq, err := strconv.ParseInt(a.Sequence, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse account sequence %q failed: %v", a.Sequence, err)
	}
	return seq, nil
}

// Balance is one balance line of an account, either the native
// balance or a trustline for an issued asset.
type Balance struct {
	Balance     string `json:"balance"`
	Limit       string `json:"limit,omitempty"`
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
}

// IsNative reports whether the balance line holds the native asset.
func (b *Balance) IsNative() bool {
	return b.AssetType == "native"
}

// FeeDistribution holds the percentiles of the fee statistics of
// the recent ledgers, all values in smallest units.
type FeeDistribution struct {
	Max  string `json:"max"`
	Min  string `json:"min"`
	Mode string `json:"mode"`
	P10  string `json:"p10"`
	P20  string `json:"p20"`
	P50  string `json:"p50"`
	P80  string `json:"p80"`
	P99  string `json:"p99"`
}

// FeeStats is the fee statistics record of the ledger node.
type FeeStats struct {
	LastLedger        string          `json:"last_ledger"`
	LastLedgerBaseFee string          `json:"last_ledger_base_fee"`
	FeeCharged        FeeDistribution `json:"fee_charged"`
	MaxFee            FeeDistribution `json:"max_fee"`
}

// TxSuccess is the terminal record of a successfully submitted
// transaction. It is never mutated after creation.
type TxSuccess struct {
	Hash       string `json:"hash"`
	Ledger     int32  `json:"ledger"`
	Successful bool   `json:"successful"`
}

// Transaction is a transaction record pushed on the transaction
// stream of an account. The wallet core does not interpret it, the
// record is handed to the history processing collaborator as is.
type Transaction struct {
	ID          string `json:"id"`
	Hash        string `json:"hash"`
	Ledger      int32  `json:"ledger"`
	CreatedAt   string `json:"created_at"`
	Account     string `json:"source_account"`
	Successful  bool   `json:"successful"`
	MemoType    string `json:"memo_type"`
	Memo        string `json:"memo,omitempty"`
	PagingToken string `json:"paging_token"`
}

// Price is a rational offer price.
type Price struct {
	N int32 `json:"n"`
	D int32 `json:"d"`
}

// OfferAsset describes one side of an offer.
type OfferAsset struct {
	AssetType   string `json:"asset_type"`
	AssetCode   string `json:"asset_code,omitempty"`
	AssetIssuer string `json:"asset_issuer,omitempty"`
}

// Offer is a standing order of an account.
type Offer struct {
	ID      string     `json:"id"`
	Seller  string     `json:"seller"`
	Selling OfferAsset `json:"selling"`
	Buying  OfferAsset `json:"buying"`
	Amount  string     `json:"amount"`
	Price   string     `json:"price"`
	PriceR  Price      `json:"price_r"`
}

// Claimant is one eligible claimant of a claimable balance.
type Claimant struct {
	Destination string `json:"destination"`
}

// ClaimableBalance is a pending balance claimable by the account.
type ClaimableBalance struct {
	ID        string     `json:"id"`
	Asset     string     `json:"asset"`
	Amount    string     `json:"amount"`
	Sponsor   string     `json:"sponsor,omitempty"`
	Claimants []Claimant `json:"claimants"`
}
