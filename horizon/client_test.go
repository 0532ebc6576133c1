package horizon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	_, err := New("")
	assert.Equal(t, ErrEmptyEndpoint, err)

	_, err = New("http://node.local")
	assert.Equal(t, ErrInsecureEndpoint, err)

	c, err := New("http://node.local", AllowHTTP())
	assert.Nil(t, err)
	assert.Equal(t, "http://node.local", c.Endpoint())

	// Trailing slashes are normalized away.
	c, err = New("https://node.local/")
	assert.Nil(t, err)
	assert.Equal(t, "https://node.local", c.Endpoint())
}

func TestAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/GABC", r.URL.Path)
		w.Write([]byte(`{
			"id": "GABC",
			"account_id": "GABC",
			"sequence": "4294967296",
			"subentry_count": 2,
			"balances": [
				{"balance": "100.5", "asset_type": "native"},
				{"balance": "7", "limit": "1000", "asset_type": "credit_alphanum4", "asset_code": "USD", "asset_issuer": "GISSUER"}
			]
		}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, AllowHTTP())
	assert.Nil(t, err)

	acc, err := c.Account(context.Background(), "GABC")
	assert.Nil(t, err)
	assert.Equal(t, int32(2), acc.SubentryCount)

	seq, err := acc.SequenceNumber()
	assert.Nil(t, err)
	assert.Equal(t, int64(4294967296), seq)

	assert.Equal(t, 2, len(acc.Balances))
	assert.True(t, acc.Balances[0].IsNative())
	assert.False(t, acc.Balances[1].IsNative())
}

func TestAccountNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"type": "not_found", "title": "Resource Missing", "status": 404}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, AllowHTTP())
	assert.Nil(t, err)

	_, err = c.Account(context.Background(), "GMISSING")
	assert.NotNil(t, err)
	assert.True(t, IsNotFound(err))
}

func TestFeeStats(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/fee_stats", r.URL.Path)
		w.Write([]byte(`{"fee_charged": {"p20": "150", "p50": "200"}}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, AllowHTTP())
	assert.Nil(t, err)

	fs, err := c.FeeStats(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "150", fs.FeeCharged.P20)
}

func TestSubmitTransaction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/transactions", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Client-Request-Id"))
		assert.Nil(t, r.ParseForm())
		assert.Equal(t, "signed-envelope", r.PostForm.Get("tx"))
		w.Write([]byte(`{"hash": "deadbeef", "ledger": 7, "successful": true}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, AllowHTTP())
	assert.Nil(t, err)

	res, err := c.SubmitTransaction(context.Background(), "signed-envelope")
	assert.Nil(t, err)
	assert.Equal(t, "deadbeef", res.Hash)
	assert.Equal(t, int32(7), res.Ledger)
}

func TestSubmitTransactionRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"type": "transaction_failed",
			"title": "Transaction Failed",
			"status": 400,
			"extras": {
				"result_codes": {"transaction": "tx_failed", "operations": ["op_underfunded"]},
				"result_xdr": "AAAAAAAAAGT/////AAAAAQAAAAAAAAAB/////gAAAAA="
			}
		}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, AllowHTTP())
	assert.Nil(t, err)

	_, err = c.SubmitTransaction(context.Background(), "signed-envelope")
	assert.NotNil(t, err)

	herr, ok := err.(*Error)
	assert.True(t, ok)
	assert.Equal(t, "tx_failed", herr.Problem.Extras.ResultCodes.Transaction)
	assert.Equal(t, []string{"op_underfunded"}, herr.Problem.Extras.ResultCodes.Operations)
	assert.NotEmpty(t, herr.Problem.Extras.ResultXdr)
}

func TestOffers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/accounts/GABC/offers", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "desc", r.URL.Query().Get("order"))
		w.Write([]byte(`{"_embedded": {"records": [
			{"id": "101", "seller": "GABC", "amount": "5", "price": "2.5"}
		]}}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, AllowHTTP())
	assert.Nil(t, err)

	offers, err := c.Offers(context.Background(), "GABC", 10)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(offers))
	assert.Equal(t, "101", offers[0].ID)
}

func TestClaimableBalances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/claimable_balances", r.URL.Path)
		assert.Equal(t, "GABC", r.URL.Query().Get("claimant"))
		w.Write([]byte(`{"_embedded": {"records": [
			{"id": "00000000aa", "asset": "USD:GISSUER", "amount": "12"}
		]}}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, AllowHTTP())
	assert.Nil(t, err)

	balances, err := c.ClaimableBalances(context.Background(), "GABC", 10)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(balances))
	assert.Equal(t, "12", balances[0].Amount)
}

func TestDecodeResponseUnreadable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>bad gateway</html>`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, AllowHTTP())
	assert.Nil(t, err)

	_, err = c.Account(context.Background(), "GABC")
	assert.NotNil(t, err)
	_, ok := err.(*Error)
	assert.False(t, ok)
}
