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

// Package fee derives a per-transaction fee from the network fee
// statistics. The estimator carries no policy, the configured fee
// ceiling is checked by the caller.
package fee

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/9900offline/stellarwallet/horizon"
	"github.com/9900offline/stellarwallet/log"
	"github.com/9900offline/stellarwallet/result"
)

// The 20th percentile clears typical congestion without
// over-paying, the safety factor absorbs drift between polls.
const (
	percentile   = "p20"
	safetyFactor = 1.02
)

// Statter queries the current fee statistics of the network.
type Statter interface {
	FeeStats(ctx context.Context) (*horizon.FeeStats, error)
}

// Estimator estimates the fee of a single transaction in smallest
// units.
type Estimator struct {
	statter Statter
}

func NewEstimator(s Statter) *Estimator {
	return &Estimator{statter: s}
}

// Estimate returns the current fee quote.
func (e *Estimator) Estimate(ctx context.Context) (int64, error) {
	fs, err := e.statter.FeeStats(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: query fee stats failed: %v", result.ErrNetworkUnavailable, err)
	}

	p20, err := strconv.ParseFloat(fs.FeeCharged.P20, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: fee stats %s is unreadable: %v", result.ErrNetworkUnavailable, percentile, err)
	}

	quote := int64(math.Round(p20 * safetyFactor))
	log.Debugf("fee estimate: %d", quote)

	return quote, nil
}
