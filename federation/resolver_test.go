package federation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func federationHandler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("type") {
		case "name":
			if r.URL.Query().Get("q") != "alice*example.org" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"stellar_address": "alice*example.org", "account_id": "GALICE"}`))
		case "id":
			if r.URL.Query().Get("q") != "GALICE" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write([]byte(`{"stellar_address": "alice*example.org", "account_id": "GALICE"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}
}

// testResolver wires the resolver to a fake federation server,
// bypassing the TOML discovery.
func testResolver(server string) *Resolver {
	r := NewResolver()
	r.cache.Set("fed:example.org", server)
	return r
}

func TestResolve(t *testing.T) {
	srv := httptest.NewServer(federationHandler(t))
	defer srv.Close()

	r := testResolver(srv.URL)

	id, err := r.Resolve(context.Background(), "alice*example.org")
	assert.Nil(t, err)
	assert.Equal(t, "GALICE", id)

	// The second lookup is served from the cache even with the
	// server gone.
	srv.Close()
	id, err = r.Resolve(context.Background(), "alice*example.org")
	assert.Nil(t, err)
	assert.Equal(t, "GALICE", id)
}

func TestResolveMalformed(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve(context.Background(), "alice")
	assert.Equal(t, ErrMalformedName, err)
	_, err = r.Resolve(context.Background(), "*example.org")
	assert.Equal(t, ErrMalformedName, err)
	_, err = r.Resolve(context.Background(), "alice*")
	assert.Equal(t, ErrMalformedName, err)
}

func TestResolveNotFound(t *testing.T) {
	srv := httptest.NewServer(federationHandler(t))
	defer srv.Close()

	r := testResolver(srv.URL)

	_, err := r.Resolve(context.Background(), "bob*example.org")
	assert.Equal(t, ErrNotFound, err)
}

func TestLookupName(t *testing.T) {
	srv := httptest.NewServer(federationHandler(t))
	defer srv.Close()

	r := testResolver(srv.URL)

	name, err := r.LookupName(context.Background(), "example.org", "GALICE")
	assert.Nil(t, err)
	assert.Equal(t, "alice", name)

	_, err = r.LookupName(context.Background(), "example.org", "GBOB")
	assert.Equal(t, ErrNotFound, err)
}

func TestFederationServerCache(t *testing.T) {
	r := NewResolver()
	r.cache.Set("fed:example.org", "https://fed.example.org")

	server, err := r.federationServer(context.Background(), "example.org")
	assert.Nil(t, err)
	assert.Equal(t, "https://fed.example.org", server)
}

func TestFederationServerUnreachable(t *testing.T) {
	r := NewResolver()

	_, err := r.federationServer(context.Background(), "nonexistent.invalid")
	assert.NotNil(t, err)
}
