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

// Package federation resolves human readable payment names of the
// form name*domain to account addresses through the federation
// endpoint advertised in the domain TOML file.
package federation

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	jsoniter "github.com/json-iterator/go"
	"github.com/wunderlist/ttlcache"

	"github.com/9900offline/stellarwallet/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const tomlPath = "/.well-known/stellar.toml"

var (
	ErrMalformedName      = errors.New("name is not of the form name*domain")
	ErrNoFederationServer = errors.New("domain advertises no federation server")
	ErrNotFound           = errors.New("federation record not found")
)

// Resolver resolves federation names, caching lookups for a short
// while since the mapping rarely changes.
type Resolver struct {
	http  *http.Client
	cache *ttlcache.Cache
}

func NewResolver() *Resolver {
	return &Resolver{
		http:  &http.Client{Timeout: 15 * time.Second},
		cache: ttlcache.NewCache(5 * time.Minute),
	}
}

type record struct {
	StellarAddress string `json:"stellar_address"`
	AccountID      string `json:"account_id"`
}

// Resolve resolves a name*domain federation name to the account
// address it points at.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	parts := strings.Split(name, "*")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", ErrMalformedName
	}

	if id, ok := r.cache.Get("name:" + name); ok {
		return id, nil
	}

	server, err := r.federationServer(ctx, parts[1])
	if err != nil {
		return "", err
	}

	rec, err := r.query(ctx, server, name, "name")
	if err != nil {
		return "", err
	}
	if rec.AccountID == "" {
		return "", ErrNotFound
	}

	r.cache.Set("name:"+name, rec.AccountID)
	return rec.AccountID, nil
}

// LookupName reverse-resolves an account address against the
// federation server of the domain and returns the bare name in
// front of the asterisk.
func (r *Resolver) LookupName(ctx context.Context, domain, accountID string) (string, error) {
	key := "id:" + domain + ":" + accountID
	if name, ok := r.cache.Get(key); ok {
		return name, nil
	}

	server, err := r.federationServer(ctx, domain)
	if err != nil {
		return "", err
	}

	rec, err := r.query(ctx, server, accountID, "id")
	if err != nil {
		return "", err
	}
	idx := strings.Index(rec.StellarAddress, "*")
	if idx <= 0 {
		return "", ErrNotFound
	}

	name := rec.StellarAddress[:idx]
	r.cache.Set(key, name)
	return name, nil
}

// federationServer discovers the federation endpoint of a domain
// from its TOML file.
func (r *Resolver) federationServer(ctx context.Context, domain string) (string, error) {
	if server, ok := r.cache.Get("fed:" + domain); ok {
		return server, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+domain+tomlPath, nil)
	if err != nil {
		return "", fmt.Errorf("build toml request failed: %v", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch domain toml failed: %v", err)
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read domain toml failed: %v", err)
	}

	var doc struct {
		FederationServer string `toml:"FEDERATION_SERVER"`
	}
	if _, err := toml.Decode(string(body), &doc); err != nil {
		return "", fmt.Errorf("parse domain toml failed: %v", err)
	}
	if doc.FederationServer == "" {
		return "", ErrNoFederationServer
	}
	log.Debugf("federation server of %s: %s", domain, doc.FederationServer)

	r.cache.Set("fed:"+domain, doc.FederationServer)
	return doc.FederationServer, nil
}

func (r *Resolver) query(ctx context.Context, server, q, qtype string) (*record, error) {
	u, err := url.Parse(server)
	if err != nil {
		return nil, fmt.Errorf("federation server url is invalid: %v", err)
	}
	query := u.Query()
	query.Set("q", q)
	query.Set("type", qtype)
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build federation request failed: %v", err)
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("federation lookup failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("federation server returned status %d", resp.StatusCode)
	}

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read federation response failed: %v", err)
	}
	var rec record
	if err := json.Unmarshal(body, &rec); err != nil {
		return nil, fmt.Errorf("decode federation response failed: %v", err)
	}
	return &rec, nil
}
