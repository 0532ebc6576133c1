package exchange

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/9900offline/stellarwallet/build"
	"github.com/9900offline/stellarwallet/horizon"
)

const (
	testAddress = "GTESTADDRESS"
	testIssuer  = "GTESTISSUER"
)

type fakeSubmitter struct {
	ops    []build.TxMutator
	offers []horizon.Offer
}

func (f *fakeSubmitter) Address() string { return testAddress }

func (f *fakeSubmitter) Asset(code, issuer string) build.Asset {
	if code == "XLM" {
		return build.NativeAsset()
	}
	return build.CreditAsset(code, issuer)
}

func (f *fakeSubmitter) Submit(ctx context.Context, memo *build.Memo, op build.TxMutator) (string, error) {
	f.ops = append(f.ops, op)
	return "hash", nil
}

func (f *fakeSubmitter) Offers(ctx context.Context) ([]horizon.Offer, error) {
	return f.offers, nil
}

func TestPlace(t *testing.T) {
	s := &fakeSubmitter{}
	c := NewCoordinator(s)

	// Buying USD priced in the native asset.
	_, err := c.Place(context.Background(), Order{
		Type:        Buy,
		Code:        "USD",
		Issuer:      testIssuer,
		CounterCode: "XLM",
		Amount:      "100",
		Price:       "2.5",
	})
	assert.Nil(t, err)

	buy, ok := s.ops[0].(*build.ManageBuyOffer)
	assert.True(t, ok)
	assert.Equal(t, build.NativeAsset(), buy.Selling)
	assert.Equal(t, build.CreditAsset("USD", testIssuer), buy.Buying)
	assert.Equal(t, "100", buy.BuyAmount)
	assert.Equal(t, "2.5", buy.Price)

	// Selling USD for the native asset flips the sides.
	_, err = c.Place(context.Background(), Order{
		Type:        Sell,
		Code:        "USD",
		Issuer:      testIssuer,
		CounterCode: "XLM",
		Amount:      "100",
		Price:       "2.5",
	})
	assert.Nil(t, err)

	sell, ok := s.ops[1].(*build.ManageSellOffer)
	assert.True(t, ok)
	assert.Equal(t, build.CreditAsset("USD", testIssuer), sell.Selling)
	assert.Equal(t, build.NativeAsset(), sell.Buying)
	assert.Equal(t, "100", sell.Amount)
}

func TestCancelRichDescriptor(t *testing.T) {
	s := &fakeSubmitter{}
	c := NewCoordinator(s)

	_, err := c.Cancel(context.Background(), Offer{
		Selling: build.NativeAsset(),
		Buying:  build.CreditAsset("USD", testIssuer),
		Price:   "2.5",
		ID:      42,
	})
	assert.Nil(t, err)

	op, ok := s.ops[0].(*build.ManageSellOffer)
	assert.True(t, ok)
	assert.Equal(t, "0", op.Amount)
	assert.Equal(t, int64(42), op.OfferID)
	assert.Equal(t, build.NativeAsset(), op.Selling)
	assert.Equal(t, build.CreditAsset("USD", testIssuer), op.Buying)
	assert.Equal(t, "2.5", op.Price)
}

func TestCancelBareID(t *testing.T) {
	s := &fakeSubmitter{}
	c := NewCoordinator(s)

	// All bare id forms synthesize the same degraded cancellation.
	for _, id := range []interface{}{42, int64(42), "42"} {
		s.ops = nil
		_, err := c.Cancel(context.Background(), id)
		assert.Nil(t, err)

		op, ok := s.ops[0].(*build.ManageSellOffer)
		assert.True(t, ok)
		assert.Equal(t, "0", op.Amount)
		assert.Equal(t, int64(42), op.OfferID)
		assert.Equal(t, "1", op.Price)
		assert.Equal(t, build.NativeAsset(), op.Selling)
		assert.Equal(t, build.CreditAsset("DUMMY", testAddress), op.Buying)
	}
}

func TestCancelInvalidDescriptor(t *testing.T) {
	c := NewCoordinator(&fakeSubmitter{})

	_, err := c.Cancel(context.Background(), "not-a-number")
	assert.NotNil(t, err)

	_, err = c.Cancel(context.Background(), 4.2)
	assert.NotNil(t, err)
}

func TestList(t *testing.T) {
	s := &fakeSubmitter{offers: []horizon.Offer{{ID: "9", Amount: "5"}}}
	c := NewCoordinator(s)

	offers, err := c.List(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, 1, len(offers))
	assert.Equal(t, "9", offers[0].ID)
}
