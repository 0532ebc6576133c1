package horizon

import (
	"context"
	"net/http"
	"net/url"

	sse "github.com/r3labs/sse/v2"

	"github.com/9900offline/stellarwallet/log"
)

// StreamAccount subscribes to the server push stream of the account
// record and invokes the handler with every pushed snapshot. The
// call blocks until the context is cancelled.
func (c *Client) StreamAccount(ctx context.Context, accountID string, handler func(*Account)) error {
	u := c.endpoint + "/accounts/" + accountID
	return c.stream(ctx, u, func(data []byte) {
		var acc Account
		if err := json.Unmarshal(data, &acc); err != nil {
			log.Debugf("skip unreadable account event: %v", err)
			return
		}
		if acc.AccountID == "" {
			// keepalive or hello event
			return
		}
		handler(&acc)
	})
}

// StreamTransactions subscribes to the server push stream of the
// transactions touching the account, starting at the given cursor.
// The call blocks until the context is cancelled.
func (c *Client) StreamTransactions(ctx context.Context, accountID, cursor string, handler func(*Transaction)) error {
	q := url.Values{}
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	u := c.endpoint + "/accounts/" + accountID + "/transactions"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return c.stream(ctx, u, func(data []byte) {
		var tx Transaction
		if err := json.Unmarshal(data, &tx); err != nil {
			log.Debugf("skip unreadable tx event: %v", err)
			return
		}
		if tx.Hash == "" {
			return
		}
		handler(&tx)
	})
}

func (c *Client) stream(ctx context.Context, streamURL string, handler func([]byte)) error {
	sc := sse.NewClient(streamURL)
	// The request/response client carries an overall timeout which
	// would cut a long lived stream, so streams get their own
	// connection reusing only the transport.
	sc.Connection = &http.Client{Transport: c.http.Transport}
	sc.Headers["Accept"] = "text/event-stream"

	err := sc.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
		if len(msg.Data) == 0 {
			return
		}
		if string(msg.Data) == `"hello"` || string(msg.Data) == `"byebye"` {
			return
		}
		handler(msg.Data)
	})
	if err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
