package result

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// Minimal decoder for the binary TransactionResult payload the
// node attaches to rejected submissions. Only the result variant
// names are extracted, nothing else of the wire format is
// interpreted here.

var errTruncatedResult = errors.New("truncated result payload")

// Transaction level result codes.
var txResultNames = map[int32]string{
	0:   "txSuccess",
	-1:  "txFailed",
	-2:  "txTooEarly",
	-3:  "txTooLate",
	-4:  "txMissingOperation",
	-5:  "txBadSeq",
	-6:  "txBadAuth",
	-7:  "txInsufficientBalance",
	-8:  "txNoAccount",
	-9:  "txInsufficientFee",
	-10: "txBadAuthExtra",
	-11: "txInternalError",
}

// Operation envelope codes, used when the operation failed before
// its body was evaluated.
var opOuterNames = map[int32]string{
	-1: "opBadAuth",
	-2: "opNoAccount",
	-3: "opNotSupported",
	-4: "opTooManySubentries",
	-5: "opExceededWorkLimit",
}

// Per-operation result variant names, keyed by operation type.
var opResultNames = map[int32]map[int32]string{
	0: { // create account
		0:  "createAccountSuccess",
		-1: "createAccountMalformed",
		-2: "createAccountUnderfunded",
		-3: "createAccountLowReserve",
		-4: "createAccountAlreadyExist",
	},
	1: { // payment
		0:  "paymentSuccess",
		-1: "paymentMalformed",
		-2: "paymentUnderfunded",
		-3: "paymentSrcNoTrust",
		-4: "paymentSrcNotAuthorized",
		-5: "paymentNoDestination",
		-6: "paymentNoTrust",
		-7: "paymentNotAuthorized",
		-8: "paymentLineFull",
		-9: "paymentNoIssuer",
	},
	2: { // path payment strict receive
		0:   "pathPaymentStrictReceiveSuccess",
		-1:  "pathPaymentStrictReceiveMalformed",
		-2:  "pathPaymentStrictReceiveUnderfunded",
		-3:  "pathPaymentStrictReceiveSrcNoTrust",
		-4:  "pathPaymentStrictReceiveSrcNotAuthorized",
		-5:  "pathPaymentStrictReceiveNoDestination",
		-6:  "pathPaymentStrictReceiveNoTrust",
		-7:  "pathPaymentStrictReceiveNotAuthorized",
		-8:  "pathPaymentStrictReceiveLineFull",
		-9:  "pathPaymentStrictReceiveNoIssuer",
		-10: "pathPaymentStrictReceiveTooFewOffers",
		-11: "pathPaymentStrictReceiveOfferCrossSelf",
		-12: "pathPaymentStrictReceiveOverSendmax",
	},
	3: { // manage sell offer
		0:   "manageSellOfferSuccess",
		-1:  "manageSellOfferMalformed",
		-2:  "manageSellOfferSellNoTrust",
		-3:  "manageSellOfferBuyNoTrust",
		-4:  "manageSellOfferSellNotAuthorized",
		-5:  "manageSellOfferBuyNotAuthorized",
		-6:  "manageSellOfferLineFull",
		-7:  "manageSellOfferUnderfunded",
		-8:  "manageSellOfferCrossSelf",
		-9:  "manageSellOfferSellNoIssuer",
		-10: "manageSellOfferBuyNoIssuer",
		-11: "manageSellOfferNotFound",
		-12: "manageSellOfferLowReserve",
	},
	5: { // set options
		0:  "setOptionsSuccess",
		-1: "setOptionsLowReserve",
		-2: "setOptionsTooManySigners",
		-3: "setOptionsBadFlags",
		-4: "setOptionsInvalidInflation",
		-5: "setOptionsCantChange",
		-6: "setOptionsUnknownFlag",
		-7: "setOptionsThresholdOutOfRange",
		-8: "setOptionsBadSigner",
		-9: "setOptionsInvalidHomeDomain",
	},
	6: { // change trust
		0:  "changeTrustSuccess",
		-1: "changeTrustMalformed",
		-2: "changeTrustNoIssuer",
		-3: "changeTrustInvalidLimit",
		-4: "changeTrustLowReserve",
		-5: "changeTrustSelfNotAllowed",
	},
	8: { // account merge
		0:  "accountMergeSuccess",
		-1: "accountMergeMalformed",
		-2: "accountMergeNoAccount",
		-3: "accountMergeImmutableSet",
		-4: "accountMergeHasSubEntries",
		-5: "accountMergeSeqnumTooFar",
		-6: "accountMergeDestFull",
	},
	10: { // manage data
		0:  "manageDataSuccess",
		-1: "manageDataNotSupportedYet",
		-2: "manageDataNameNotFound",
		-3: "manageDataLowReserve",
		-4: "manageDataInvalidName",
	},
	12: { // manage buy offer
		0:   "manageBuyOfferSuccess",
		-1:  "manageBuyOfferMalformed",
		-2:  "manageBuyOfferSellNoTrust",
		-3:  "manageBuyOfferBuyNoTrust",
		-4:  "manageBuyOfferSellNotAuthorized",
		-5:  "manageBuyOfferBuyNotAuthorized",
		-6:  "manageBuyOfferLineFull",
		-7:  "manageBuyOfferUnderfunded",
		-8:  "manageBuyOfferCrossSelf",
		-9:  "manageBuyOfferSellNoIssuer",
		-10: "manageBuyOfferBuyNoIssuer",
		-11: "manageBuyOfferNotFound",
		-12: "manageBuyOfferLowReserve",
	},
	15: { // claim claimable balance
		0:  "claimClaimableBalanceSuccess",
		-1: "claimClaimableBalanceDoesNotExist",
		-2: "claimClaimableBalanceCannotClaim",
		-3: "claimClaimableBalanceLineFull",
		-4: "claimClaimableBalanceNoTrust",
		-5: "claimClaimableBalanceNotAuthorized",
	},
}

// decodeResultName decodes the base64 result payload and returns
// the variant name of the first operation result, falling back to
// the transaction level variant name when no operation results
// are present.
func decodeResultName(b64 string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return "", fmt.Errorf("decode result payload failed: %v", err)
	}
	r := bytes.NewReader(raw)

	// fee charged
	if _, err := readInt64(r); err != nil {
		return "", err
	}
	txCode, err := readInt32(r)
	if err != nil {
		return "", err
	}

	txName, ok := txResultNames[txCode]
	if !ok {
		return "", fmt.Errorf("unknown transaction result code %d", txCode)
	}

	// Only success and failed carry per-operation results.
	if txCode != 0 && txCode != -1 {
		return txName, nil
	}

	count, err := readInt32(r)
	if err != nil || count == 0 {
		return txName, nil
	}

	outer, err := readInt32(r)
	if err != nil {
		return txName, nil
	}
	if outer != 0 {
		if name, ok := opOuterNames[outer]; ok {
			return name, nil
		}
		return txName, nil
	}

	opType, err := readInt32(r)
	if err != nil {
		return txName, nil
	}
	inner, err := readInt32(r)
	if err != nil {
		return txName, nil
	}
	if names, ok := opResultNames[opType]; ok {
		if name, ok := names[inner]; ok {
			return name, nil
		}
	}
	return txName, nil
}

func readInt32(r *bytes.Reader) (int32, error) {
	var v int32
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, errTruncatedResult
	}
	return v, nil
}

func readInt64(r *bytes.Reader) (int64, error) {
	var v int64
	if err := binary.Read(r, binary.BigEndian, &v); err != nil {
		return 0, errTruncatedResult
	}
	return v, nil
}
