package wallet

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/9900offline/stellarwallet/amount"
	"github.com/9900offline/stellarwallet/build"
	"github.com/9900offline/stellarwallet/horizon"
	"github.com/9900offline/stellarwallet/log"
)

// Send pays the amount of the given asset to the target account.
// For the native asset the destination is probed first: paying an
// account that does not exist yet turns into funding it, which
// establishes the account on first contact. Any probe failure
// other than not-found propagates to the caller.
func (s *Session) Send(ctx context.Context, target, code, issuer, amt, memoType, memoValue string) (string, error) {
	rounded, err := amount.Parse(amt)
	if err != nil {
		return "", err
	}
	memo, err := optionalMemo(memoType, memoValue)
	if err != nil {
		return "", err
	}

	if code != s.cfg.NativeCode {
		return s.payAsset(ctx, target, code, issuer, rounded, memo)
	}

	if _, err := s.node.Account(ctx, target); err != nil {
		if horizon.IsNotFound(err) {
			return s.fund(ctx, target, rounded, memo)
		}
		return "", err
	}
	return s.payNative(ctx, target, rounded, memo)
}

func (s *Session) fund(ctx context.Context, target string, amt decimal.Decimal, memo *build.Memo) (string, error) {
	log.Debugf("fund %s with %s", target, amount.String(amt))
	return s.Submit(ctx, memo, &build.CreateAccount{
		Destination:     target,
		StartingBalance: amount.String(amt),
	})
}

func (s *Session) payNative(ctx context.Context, target string, amt decimal.Decimal, memo *build.Memo) (string, error) {
	return s.Submit(ctx, memo, &build.Payment{
		Destination: target,
		Asset:       build.NativeAsset(),
		Amount:      amount.String(amt),
	})
}

func (s *Session) payAsset(ctx context.Context, target, code, issuer string, amt decimal.Decimal, memo *build.Memo) (string, error) {
	return s.Submit(ctx, memo, &build.Payment{
		Destination: target,
		Asset:       build.CreditAsset(code, issuer),
		Amount:      amount.String(amt),
	})
}

// Conversion describes a strict receive path conversion between
// two assets held by the session account.
type Conversion struct {
	SourceCode   string
	SourceIssuer string
	// Amount of the source asset the path quote is based on.
	SourceAmount string
	DestCode    string
	DestIssuer  string
	// Amount of the destination asset to receive exactly.
	DestAmount string
	// Intermediate assets of the conversion path.
	Path []build.Asset
	// Optional worst acceptable rate. When set, the maximum spend
	// becomes round(MaxRate x SourceAmount, 7) which bounds the
	// slippage on multi-hop conversions.
	MaxRate float64
}

// Convert performs a strict receive path payment to the session
// account itself, converting the source asset into the destination
// asset.
func (s *Session) Convert(ctx context.Context, conv Conversion) (string, error) {
	src, err := amount.Parse(conv.SourceAmount)
	if err != nil {
		return "", fmt.Errorf("source amount is invalid: %v", err)
	}
	dst, err := amount.Parse(conv.DestAmount)
	if err != nil {
		return "", fmt.Errorf("dest amount is invalid: %v", err)
	}

	sendMax := src
	if conv.MaxRate > 0 {
		sendMax = amount.Round(decimal.NewFromFloat(conv.MaxRate).Mul(src))
	}
	log.Debugf("convert %s/%s -> %s/%s, send max %s",
		conv.SourceAmount, conv.SourceCode, conv.DestAmount, conv.DestCode, amount.String(sendMax))

	return s.Submit(ctx, nil, &build.PathPaymentStrictReceive{
		Destination: s.address,
		SendAsset:   s.Asset(conv.SourceCode, conv.SourceIssuer),
		SendMax:     amount.String(sendMax),
		DestAsset:   s.Asset(conv.DestCode, conv.DestIssuer),
		DestAmount:  amount.String(dst),
		Path:        conv.Path,
	})
}

// ChangeTrust creates, adjusts or removes the trustline for the
// asset. A zero limit removes the trustline.
func (s *Session) ChangeTrust(ctx context.Context, code, issuer, limit string) (string, error) {
	lim, err := amount.Parse(limit)
	if err != nil {
		return "", fmt.Errorf("trust limit is invalid: %v", err)
	}
	return s.Submit(ctx, nil, &build.ChangeTrust{
		Asset: build.CreditAsset(code, issuer),
		Limit: amount.String(lim),
	})
}

// SetOption sets a single account option.
func (s *Session) SetOption(ctx context.Context, name string, value interface{}) (string, error) {
	log.Debugf("set option %s", name)
	return s.Submit(ctx, nil, &build.SetOptions{Option: name, Value: value})
}

// SetData writes the named data entry of the account, an empty
// value deletes the entry.
func (s *Session) SetData(ctx context.Context, name, value string) (string, error) {
	log.Debugf("manage data %s", name)
	return s.Submit(ctx, nil, &build.ManageData{Name: name, Value: value})
}

// Claim claims the claimable balance with the given id.
func (s *Session) Claim(ctx context.Context, balanceID string) (string, error) {
	log.Debugf("claim balance %s", balanceID)
	return s.Submit(ctx, nil, &build.ClaimClaimableBalance{BalanceID: balanceID})
}

// Merge merges the session account into the destination account.
func (s *Session) Merge(ctx context.Context, destination string) (string, error) {
	log.Debugf("merge %s -> %s", s.address, destination)
	return s.Submit(ctx, nil, &build.AccountMerge{Destination: destination})
}

func optionalMemo(memoType, value string) (*build.Memo, error) {
	if memoType == "" || memoType == build.MemoNone {
		return nil, nil
	}
	return build.NewMemo(memoType, value)
}
