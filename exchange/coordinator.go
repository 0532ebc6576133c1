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

// Package exchange builds and cancels standing offers on top of
// the transaction pipeline of the wallet session.
package exchange

import (
	"context"
	"fmt"
	"strconv"

	"github.com/9900offline/stellarwallet/amount"
	"github.com/9900offline/stellarwallet/build"
	"github.com/9900offline/stellarwallet/horizon"
	"github.com/9900offline/stellarwallet/log"
)

// OrderType distinguishes buying the desired asset from selling it.
type OrderType string

const (
	Buy  OrderType = "buy"
	Sell OrderType = "sell"
)

// Order describes an offer to place. Code/Issuer name the desired
// asset, CounterCode/CounterIssuer the asset it is priced in.
type Order struct {
	Type          OrderType
	Code          string
	Issuer        string
	CounterCode   string
	CounterIssuer string
	Amount        string
	Price         string
}

// Offer is a rich cancellation descriptor for an offer the caller
// still holds full information about.
type Offer struct {
	Selling build.Asset
	Buying  build.Asset
	Price   string
	ID      int64
}

// Submitter is the slice of the wallet session the coordinator
// needs, satisfied by *wallet.Session.
type Submitter interface {
	Address() string
	Asset(code, issuer string) build.Asset
	Submit(ctx context.Context, memo *build.Memo, op build.TxMutator) (string, error)
	Offers(ctx context.Context) ([]horizon.Offer, error)
}

// Coordinator places and cancels offers.
type Coordinator struct {
	s Submitter
}

func NewCoordinator(s Submitter) *Coordinator {
	return &Coordinator{s: s}
}

// Place submits the order as a manage offer operation. For a buy
// order the desired asset is bought with the counter asset as
// payment, for a sell order the desired asset is sold for the
// counter asset.
func (c *Coordinator) Place(ctx context.Context, o Order) (string, error) {
	amt, err := amount.Parse(o.Amount)
	if err != nil {
		return "", fmt.Errorf("order amount is invalid: %v", err)
	}
	log.Debugf("%s %s %s for %s at %s", o.Type, o.Amount, o.Code, o.CounterCode, o.Price)

	desired := c.s.Asset(o.Code, o.Issuer)
	counter := c.s.Asset(o.CounterCode, o.CounterIssuer)

	if o.Type == Buy {
		return c.s.Submit(ctx, nil, &build.ManageBuyOffer{
			Selling:   counter,
			Buying:    desired,
			BuyAmount: amount.String(amt),
			Price:     o.Price,
		})
	}
	return c.s.Submit(ctx, nil, &build.ManageSellOffer{
		Selling: desired,
		Buying:  counter,
		Amount:  amount.String(amt),
		Price:   o.Price,
	})
}

// Cancel cancels an offer by reissuing it with a zero amount. The
// offer argument is either a rich Offer descriptor or a bare
// numeric id (int, int64 or decimal string). In the bare-id case a
// degraded cancellation is synthesized with a native/placeholder
// asset pair at unit price, which assumes the offer was made by
// the session account itself.
func (c *Coordinator) Cancel(ctx context.Context, offer interface{}) (string, error) {
	var (
		selling build.Asset
		buying  build.Asset
		price   string
		offerID int64
	)

	switch o := offer.(type) {
	case Offer:
		p, err := amount.Parse(o.Price)
		if err != nil {
			return "", fmt.Errorf("offer price is invalid: %v", err)
		}
		selling, buying = o.Selling, o.Buying
		price = amount.String(p)
		offerID = o.ID
	case int:
		selling, buying, price = c.placeholderPair()
		offerID = int64(o)
	case int64:
		selling, buying, price = c.placeholderPair()
		offerID = o
	case string:
		id, err := strconv.ParseInt(o, 10, 64)
		if err != nil {
			return "", fmt.Errorf("offer id %q is not numeric: %v", o, err)
		}
		selling, buying, price = c.placeholderPair()
		offerID = id
	default:
		return "", fmt.Errorf("unsupported offer descriptor %T", offer)
	}

	log.Debugf("cancel offer %d", offerID)
	return c.s.Submit(ctx, nil, &build.ManageSellOffer{
		Selling: selling,
		Buying:  buying,
		Amount:  "0",
		Price:   price,
		OfferID: offerID,
	})
}

// placeholderPair is the degraded asset pair for cancellations
// where only the offer id is known.
func (c *Coordinator) placeholderPair() (build.Asset, build.Asset, string) {
	return build.NativeAsset(), build.CreditAsset("DUMMY", c.s.Address()), "1"
}

// List returns the standing offers of the session account.
func (c *Coordinator) List(ctx context.Context) ([]horizon.Offer, error) {
	return c.s.Offers(ctx)
}
