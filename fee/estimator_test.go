package fee

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/9900offline/stellarwallet/horizon"
	"github.com/9900offline/stellarwallet/result"
)

type fakeStatter struct {
	p20 string
	err error
}

func (f *fakeStatter) FeeStats(ctx context.Context) (*horizon.FeeStats, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &horizon.FeeStats{FeeCharged: horizon.FeeDistribution{P20: f.p20}}, nil
}

func TestEstimate(t *testing.T) {
	e := NewEstimator(&fakeStatter{p20: "100"})
	quote, err := e.Estimate(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, int64(102), quote)

	// The safety margin is rounded to the nearest unit.
	e = NewEstimator(&fakeStatter{p20: "125"})
	quote, err = e.Estimate(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, int64(128), quote)
}

func TestEstimateUnavailable(t *testing.T) {
	e := NewEstimator(&fakeStatter{err: errors.New("connection refused")})
	_, err := e.Estimate(context.Background())
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, result.ErrNetworkUnavailable))

	// Unreadable stats are a network failure too, not a panic.
	e = NewEstimator(&fakeStatter{p20: "not-a-number"})
	_, err = e.Estimate(context.Background())
	assert.NotNil(t, err)
	assert.True(t, errors.Is(err, result.ErrNetworkUnavailable))
}
