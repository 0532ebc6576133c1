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

// Package amount handles ledger amounts. The ledger tracks values
// with seven decimal places of precision, all amounts that end up
// inside a transaction have to be rounded to that precision first.
package amount

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Precision is the number of decimal places the ledger tracks.
const Precision = 7

// One is the number of smallest units in one whole coin.
const One = 10000000

var (
	ErrNegativeAmount = errors.New("amount is negative")
)

// Round rounds the value to the ledger precision.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Precision)
}

// Parse parses the string representation of an amount and rounds
// it to the ledger precision.
func Parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q failed: %v", s, err)
	}
	if d.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return Round(d), nil
}

// FromFloat converts a float to a rounded ledger amount.
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// String renders the amount the way the ledger node expects it.
func String(d decimal.Decimal) string {
	return Round(d).String()
}
