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

// Package horizon implements the client to the remote ledger node.
// All state lives on the node, the client only moves records back
// and forth over request/response calls and server push streams.
package horizon

import (
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/9900offline/stellarwallet/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	ErrEmptyEndpoint    = errors.New("endpoint is empty")
	ErrInsecureEndpoint = errors.New("endpoint is not https")
)

// Client talks to one ledger node over its HTTP API.
type Client struct {
	endpoint  string
	http      *http.Client
	allowHTTP bool
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// AllowHTTP permits plain HTTP endpoints, for tests and local
// networks only.
func AllowHTTP() Option {
	return func(c *Client) { c.allowHTTP = true }
}

// New creates a Client to the given ledger node endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	if endpoint == "" {
		return nil, ErrEmptyEndpoint
	}
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: 30 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint failed: %v", err)
	}
	if u.Scheme != "https" && !c.allowHTTP {
		return nil, ErrInsecureEndpoint
	}
	return c, nil
}

// Endpoint returns the node endpoint the client talks to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Account loads the account record for the given account id.
func (c *Client) Account(ctx context.Context, accountID string) (*Account, error) {
	var acc Account
	if err := c.get(ctx, "/accounts/"+accountID, nil, &acc); err != nil {
		return nil, err
	}
	return &acc, nil
}

// FeeStats loads the current fee statistics of the network.
func (c *Client) FeeStats(ctx context.Context) (*FeeStats, error) {
	var fs FeeStats
	if err := c.get(ctx, "/fee_stats", nil, &fs); err != nil {
		return nil, err
	}
	return &fs, nil
}

// SubmitTransaction submits a signed transaction envelope to the
// node and waits for the ingestion result.
func (c *Client) SubmitTransaction(ctx context.Context, envelope string) (*TxSuccess, error) {
	form := url.Values{}
	form.Set("tx", envelope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/transactions", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build submit request failed: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Request id for correlating a submission with the node logs.
	reqID := uuid.New().String()
	req.Header.Set("X-Client-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	var result TxSuccess
	if err := decodeResponse(resp, &result); err != nil {
		return nil, err
	}
	log.Debugw("tx submitted", "hash", result.Hash, "ledger", result.Ledger, "request_id", reqID)

	return &result, nil
}

// Offers lists the standing offers of an account, newest first.
func (c *Client) Offers(ctx context.Context, accountID string, limit int) ([]Offer, error) {
	var p struct {
		Embedded struct {
			Records []Offer `json:"records"`
		} `json:"_embedded"`
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("order", "desc")
	if err := c.get(ctx, "/accounts/"+accountID+"/offers", q, &p); err != nil {
		return nil, err
	}
	return p.Embedded.Records, nil
}

// ClaimableBalances lists the balances claimable by the account,
// newest first.
func (c *Client) ClaimableBalances(ctx context.Context, claimant string, limit int) ([]ClaimableBalance, error) {
	var p struct {
		Embedded struct {
			Records []ClaimableBalance `json:"records"`
		} `json:"_embedded"`
	}
	q := url.Values{}
	q.Set("claimant", claimant)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("order", "desc")
	if err := c.get(ctx, "/claimable_balances", q, &p); err != nil {
		return nil, err
	}
	return p.Embedded.Records, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, v interface{}) error {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request failed: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	return decodeResponse(resp, v)
}

// decodeResponse decodes a node response into v, converting error
// documents into an *Error.
func decodeResponse(resp *http.Response, v interface{}) error {
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body failed: %v", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		herr := &Error{}
		if err := json.Unmarshal(body, &herr.Problem); err != nil {
			return fmt.Errorf("node returned status %d with unreadable body", resp.StatusCode)
		}
		if herr.Problem.Status == 0 {
			herr.Problem.Status = resp.StatusCode
		}
		return herr
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response failed: %v", err)
	}
	return nil
}
