package build

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/9900offline/stellarwallet/amount"
	"github.com/9900offline/stellarwallet/crypto"
)

type OpType string

const (
	OpTypeCreateAccount            OpType = "create_account"
	OpTypePayment                  OpType = "payment"
	OpTypePathPaymentStrictReceive OpType = "path_payment_strict_receive"
	OpTypeChangeTrust              OpType = "change_trust"
	OpTypeManageSellOffer          OpType = "manage_sell_offer"
	OpTypeManageBuyOffer           OpType = "manage_buy_offer"
	OpTypeSetOptions               OpType = "set_options"
	OpTypeManageData               OpType = "manage_data"
	OpTypeClaimClaimableBalance    OpType = "claim_claimable_balance"
	OpTypeAccountMerge             OpType = "account_merge"
)

// Operation holds exactly one operation body, keyed by Type.
type Operation struct {
	Type                     OpType                      `json:"type"`
	CreateAccount            *CreateAccountOp            `json:"create_account,omitempty"`
	Payment                  *PaymentOp                  `json:"payment,omitempty"`
	PathPaymentStrictReceive *PathPaymentStrictReceiveOp `json:"path_payment_strict_receive,omitempty"`
	ChangeTrust              *ChangeTrustOp              `json:"change_trust,omitempty"`
	ManageSellOffer          *ManageSellOfferOp          `json:"manage_sell_offer,omitempty"`
	ManageBuyOffer           *ManageBuyOfferOp           `json:"manage_buy_offer,omitempty"`
	SetOptions               *SetOptionsOp               `json:"set_options,omitempty"`
	ManageData               *ManageDataOp               `json:"manage_data,omitempty"`
	ClaimClaimableBalance    *ClaimClaimableBalanceOp    `json:"claim_claimable_balance,omitempty"`
	AccountMerge             *AccountMergeOp             `json:"account_merge,omitempty"`
}

type CreateAccountOp struct {
	Destination     string `json:"destination"`
	StartingBalance string `json:"starting_balance"`
}

type PaymentOp struct {
	Destination string `json:"destination"`
	Asset       Asset  `json:"asset"`
	Amount      string `json:"amount"`
}

type PathPaymentStrictReceiveOp struct {
	Destination string  `json:"destination"`
	SendAsset   Asset   `json:"send_asset"`
	SendMax     string  `json:"send_max"`
	DestAsset   Asset   `json:"dest_asset"`
	DestAmount  string  `json:"dest_amount"`
	Path        []Asset `json:"path,omitempty"`
}

type ChangeTrustOp struct {
	Asset Asset  `json:"asset"`
	Limit string `json:"limit"`
}

type ManageSellOfferOp struct {
	Selling Asset  `json:"selling"`
	Buying  Asset  `json:"buying"`
	Amount  string `json:"amount"`
	Price   string `json:"price"`
	OfferID int64  `json:"offer_id"`
}

type ManageBuyOfferOp struct {
	Selling   Asset  `json:"selling"`
	Buying    Asset  `json:"buying"`
	BuyAmount string `json:"buy_amount"`
	Price     string `json:"price"`
	OfferID   int64  `json:"offer_id"`
}

type SetOptionsOp struct {
	Option string      `json:"option"`
	Value  interface{} `json:"value"`
}

type ManageDataOp struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

type ClaimClaimableBalanceOp struct {
	BalanceID string `json:"balance_id"`
}

type AccountMergeOp struct {
	Destination string `json:"destination"`
}

func validateAmount(s string, allowZero bool) error {
	d, err := amount.Parse(s)
	if err != nil {
		return err
	}
	if !allowZero && d.IsZero() {
		return errors.New("amount is zero")
	}
	return nil
}

func validatePrice(s string) error {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("parse price %q failed: %v", s, err)
	}
	if !d.IsPositive() {
		return errors.New("price is not positive")
	}
	return nil
}

// CreateAccount adds a CreateAccount op to the envelope. The
// starting balance establishes the account on first contact and
// must cover the base reserve.
type CreateAccount struct {
	Destination     string
	StartingBalance string
}

func (ca *CreateAccount) validate() error {
	if !crypto.IsValidAccountKey(ca.Destination) {
		return errors.New("invalid destination account key")
	}
	if err := validateAmount(ca.StartingBalance, false); err != nil {
		return fmt.Errorf("starting balance is invalid: %v", err)
	}
	return nil
}

func (ca *CreateAccount) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := ca.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypeCreateAccount,
		CreateAccount: &CreateAccountOp{
			Destination:     ca.Destination,
			StartingBalance: ca.StartingBalance,
		},
	})
	return nil
}

// Payment adds a Payment op to the envelope.
type Payment struct {
	Destination string
	Asset       Asset
	Amount      string
}

func (p *Payment) validate() error {
	if !crypto.IsValidAccountKey(p.Destination) {
		return errors.New("invalid destination account key")
	}
	if err := validateAsset(p.Asset); err != nil {
		return err
	}
	if err := validateAmount(p.Amount, false); err != nil {
		return fmt.Errorf("payment amount is invalid: %v", err)
	}
	return nil
}

func (p *Payment) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := p.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypePayment,
		Payment: &PaymentOp{
			Destination: p.Destination,
			Asset:       p.Asset,
			Amount:      p.Amount,
		},
	})
	return nil
}

// PathPaymentStrictReceive adds a strict receive path payment op
// to the envelope. SendMax bounds the spend on the source side.
type PathPaymentStrictReceive struct {
	Destination string
	SendAsset   Asset
	SendMax     string
	DestAsset   Asset
	DestAmount  string
	Path        []Asset
}

func (pp *PathPaymentStrictReceive) validate() error {
	if !crypto.IsValidAccountKey(pp.Destination) {
		return errors.New("invalid destination account key")
	}
	if err := validateAsset(pp.SendAsset); err != nil {
		return fmt.Errorf("send asset is invalid: %v", err)
	}
	if err := validateAsset(pp.DestAsset); err != nil {
		return fmt.Errorf("dest asset is invalid: %v", err)
	}
	if err := validateAmount(pp.SendMax, false); err != nil {
		return fmt.Errorf("send max is invalid: %v", err)
	}
	if err := validateAmount(pp.DestAmount, false); err != nil {
		return fmt.Errorf("dest amount is invalid: %v", err)
	}
	for _, a := range pp.Path {
		if err := validateAsset(a); err != nil {
			return fmt.Errorf("path asset is invalid: %v", err)
		}
	}
	return nil
}

func (pp *PathPaymentStrictReceive) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := pp.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypePathPaymentStrictReceive,
		PathPaymentStrictReceive: &PathPaymentStrictReceiveOp{
			Destination: pp.Destination,
			SendAsset:   pp.SendAsset,
			SendMax:     pp.SendMax,
			DestAsset:   pp.DestAsset,
			DestAmount:  pp.DestAmount,
			Path:        pp.Path,
		},
	})
	return nil
}

// ChangeTrust adds a ChangeTrust op to the envelope. A zero limit
// removes the trustline.
type ChangeTrust struct {
	Asset Asset
	Limit string
}

func (t *ChangeTrust) validate() error {
	if t.Asset.Type != CREDIT {
		return errors.New("trustline asset must not be native")
	}
	if err := validateAsset(t.Asset); err != nil {
		return err
	}
	if err := validateAmount(t.Limit, true); err != nil {
		return fmt.Errorf("trust limit is invalid: %v", err)
	}
	return nil
}

func (t *ChangeTrust) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := t.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypeChangeTrust,
		ChangeTrust: &ChangeTrustOp{
			Asset: t.Asset,
			Limit: t.Limit,
		},
	})
	return nil
}

// ManageSellOffer adds a ManageSellOffer op to the envelope. A
// zero amount together with a non-zero offer id cancels the offer.
type ManageSellOffer struct {
	Selling Asset
	Buying  Asset
	Amount  string
	Price   string
	OfferID int64
}

func (o *ManageSellOffer) validate() error {
	if err := validateAsset(o.Selling); err != nil {
		return fmt.Errorf("asset for selling is invalid: %v", err)
	}
	if err := validateAsset(o.Buying); err != nil {
		return fmt.Errorf("asset for buying is invalid: %v", err)
	}
	if o.Selling == o.Buying {
		return errors.New("identical asset for offer")
	}
	if err := validateAmount(o.Amount, true); err != nil {
		return fmt.Errorf("offer amount is invalid: %v", err)
	}
	if err := validatePrice(o.Price); err != nil {
		return err
	}
	d, _ := decimal.NewFromString(o.Amount)
	if d.IsZero() && o.OfferID == 0 {
		return errors.New("offer id and amount are incompatible")
	}
	return nil
}

func (o *ManageSellOffer) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := o.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypeManageSellOffer,
		ManageSellOffer: &ManageSellOfferOp{
			Selling: o.Selling,
			Buying:  o.Buying,
			Amount:  o.Amount,
			Price:   o.Price,
			OfferID: o.OfferID,
		},
	})
	return nil
}

// ManageBuyOffer adds a ManageBuyOffer op to the envelope.
type ManageBuyOffer struct {
	Selling   Asset
	Buying    Asset
	BuyAmount string
	Price     string
	OfferID   int64
}

func (o *ManageBuyOffer) validate() error {
	if err := validateAsset(o.Selling); err != nil {
		return fmt.Errorf("asset for selling is invalid: %v", err)
	}
	if err := validateAsset(o.Buying); err != nil {
		return fmt.Errorf("asset for buying is invalid: %v", err)
	}
	if o.Selling == o.Buying {
		return errors.New("identical asset for offer")
	}
	if err := validateAmount(o.BuyAmount, true); err != nil {
		return fmt.Errorf("offer amount is invalid: %v", err)
	}
	if err := validatePrice(o.Price); err != nil {
		return err
	}
	d, _ := decimal.NewFromString(o.BuyAmount)
	if d.IsZero() && o.OfferID == 0 {
		return errors.New("offer id and amount are incompatible")
	}
	return nil
}

func (o *ManageBuyOffer) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := o.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypeManageBuyOffer,
		ManageBuyOffer: &ManageBuyOfferOp{
			Selling:   o.Selling,
			Buying:    o.Buying,
			BuyAmount: o.BuyAmount,
			Price:     o.Price,
			OfferID:   o.OfferID,
		},
	})
	return nil
}

// SetOptions adds a SetOptions op for a single account option.
type SetOptions struct {
	Option string
	Value  interface{}
}

func (s *SetOptions) validate() error {
	if s.Option == "" {
		return errors.New("empty option name")
	}
	return nil
}

func (s *SetOptions) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := s.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypeSetOptions,
		SetOptions: &SetOptionsOp{
			Option: s.Option,
			Value:  s.Value,
		},
	})
	return nil
}

// ManageData adds a ManageData op. An empty value deletes the
// data entry.
type ManageData struct {
	Name  string
	Value string
}

func (m *ManageData) validate() error {
	if m.Name == "" {
		return errors.New("empty data name")
	}
	if len(m.Name) > 64 {
		return errors.New("data name is too long")
	}
	if len(m.Value) > 64 {
		return errors.New("data value is too long")
	}
	return nil
}

func (m *ManageData) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := m.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypeManageData,
		ManageData: &ManageDataOp{
			Name:  m.Name,
			Value: m.Value,
		},
	})
	return nil
}

// ClaimClaimableBalance adds a ClaimClaimableBalance op.
type ClaimClaimableBalance struct {
	BalanceID string
}

func (c *ClaimClaimableBalance) validate() error {
	if c.BalanceID == "" {
		return errors.New("empty balance id")
	}
	return nil
}

func (c *ClaimClaimableBalance) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := c.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypeClaimClaimableBalance,
		ClaimClaimableBalance: &ClaimClaimableBalanceOp{
			BalanceID: c.BalanceID,
		},
	})
	return nil
}

// AccountMerge adds an AccountMerge op which transfers the whole
// native balance of the source account to the destination and
// removes the source account from the ledger.
type AccountMerge struct {
	Destination string
}

func (a *AccountMerge) validate() error {
	if !crypto.IsValidAccountKey(a.Destination) {
		return errors.New("invalid destination account key")
	}
	return nil
}

func (a *AccountMerge) Mutate(e *Envelope) error {
	if e == nil {
		return ErrNilTx
	}
	if err := a.validate(); err != nil {
		return err
	}
	e.Operations = append(e.Operations, Operation{
		Type: OpTypeAccountMerge,
		AccountMerge: &AccountMergeOp{
			Destination: a.Destination,
		},
	})
	return nil
}
