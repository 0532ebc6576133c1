package build

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/9900offline/stellarwallet/crypto"
)

type AssetType uint8

const (
	// The native asset.
	NATIVE AssetType = iota
	// An issued asset held over a trustline.
	CREDIT
)

// Asset identifies the asset of a payment, trustline or offer.
type Asset struct {
	Type   AssetType `json:"asset_type"`
	Code   string    `json:"asset_code,omitempty"`
	Issuer string    `json:"asset_issuer,omitempty"`
}

// NativeAsset returns the native asset.
func NativeAsset() Asset {
	return Asset{Type: NATIVE}
}

// CreditAsset returns an issued asset.
func CreditAsset(code, issuer string) Asset {
	return Asset{Type: CREDIT, Code: code, Issuer: issuer}
}

func validateAsset(a Asset) error {
	switch a.Type {
	case NATIVE:
		return nil
	case CREDIT:
		if len(a.Code) == 0 || len(a.Code) > 12 {
			return errors.New("asset code length is invalid")
		}
		if !crypto.IsValidAccountKey(a.Issuer) {
			return errors.New("invalid asset issuer account key")
		}
		return nil
	}
	return errors.New("invalid asset type")
}

// TxMutator defines the method which all the transaction
// mutators should implement.
type TxMutator interface {
	Mutate(e *Envelope) error
}

// SourceAccount sets the source account of the envelope.
type SourceAccount struct {
	AccountID string
}

func (s *SourceAccount) validate() error {
	if s.AccountID == "" {
		return errors.New("empty account id")
	}
	if !crypto.IsValidAccountKey(s.AccountID) {
		return errors.New("invalid account key")
	}
	return nil
}

func (s *SourceAccount) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := s.validate(); err != nil {
		return err
	}
	e.SourceAccount = s.AccountID
	return nil
}

// SeqNum sets the sequence number of the envelope.
type SeqNum struct {
	SeqNum int64
}

func (s *SeqNum) validate() error {
	if s.SeqNum <= 0 {
		return errors.New("seqnum is not positive")
	}
	return nil
}

func (s *SeqNum) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := s.validate(); err != nil {
		return err
	}
	e.SeqNum = s.SeqNum
	return nil
}

// Fee sets the total fee of the envelope in smallest units.
type Fee struct {
	Fee int64
}

func (f *Fee) validate() error {
	if f.Fee <= 0 {
		return errors.New("fee is not positive")
	}
	return nil
}

func (f *Fee) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := f.validate(); err != nil {
		return err
	}
	e.Fee = f.Fee
	return nil
}

// Network sets the network passphrase the envelope is bound to.
type Network struct {
	Passphrase string
}

func (n *Network) validate() error {
	if n.Passphrase == "" {
		return errors.New("empty network passphrase")
	}
	return nil
}

func (n *Network) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := n.validate(); err != nil {
		return err
	}
	e.NetworkPassphrase = n.Passphrase
	return nil
}

// Timeout bounds the validity window of the envelope. The expiry
// is enforced by the network when the tx is applied.
type Timeout struct {
	Seconds int64
}

func (t *Timeout) validate() error {
	if t.Seconds <= 0 {
		return errors.New("timeout is not positive")
	}
	return nil
}

func (t *Timeout) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := t.validate(); err != nil {
		return err
	}
	e.TimeBounds = &TimeBounds{
		MinTime: 0,
		MaxTime: time.Now().Unix() + t.Seconds,
	}
	return nil
}

// Supported memo types.
const (
	MemoNone   = "none"
	MemoText   = "text"
	MemoID     = "id"
	MemoHash   = "hash"
	MemoReturn = "return"
)

// Memo attaches an optional memo to the envelope.
type Memo struct {
	Type  string `json:"type"`
	Value string `json:"value,omitempty"`
}

// NewMemo builds a memo of the given type and validates the value
// against the type.
func NewMemo(memoType, value string) (*Memo, error) {
	m := &Memo{Type: memoType, Value: value}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Memo) validate() error {
	switch m.Type {
	case MemoNone:
		if m.Value != "" {
			return errors.New("memo of type none must be empty")
		}
	case MemoText:
		if len(m.Value) > 28 {
			return errors.New("text memo is too long")
		}
	case MemoID:
		if _, err := strconv.ParseUint(m.Value, 10, 64); err != nil {
			return fmt.Errorf("id memo is not an unsigned integer: %v", err)
		}
	case MemoHash, MemoReturn:
		if len(m.Value) != 64 {
			return errors.New("hash memo must be 32 hex encoded bytes")
		}
	default:
		return fmt.Errorf("unknown memo type %q", m.Type)
	}
	return nil
}

func (m *Memo) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := m.validate(); err != nil {
		return err
	}
	if m.Type == MemoNone {
		e.Memo = nil
		return nil
	}
	e.Memo = m
	return nil
}
