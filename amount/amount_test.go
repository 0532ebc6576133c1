package amount

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	d := decimal.RequireFromString("1.23456789")
	assert.Equal(t, "1.2345679", Round(d).String())

	// Values already at precision are untouched.
	d = decimal.RequireFromString("42.0000001")
	assert.Equal(t, "42.0000001", Round(d).String())
}

func TestParse(t *testing.T) {
	d, err := Parse("10.5")
	assert.Nil(t, err)
	assert.Equal(t, "10.5", d.String())

	_, err = Parse("not-a-number")
	assert.NotNil(t, err)

	_, err = Parse("-1")
	assert.Equal(t, ErrNegativeAmount, err)
}

func TestFromFloat(t *testing.T) {
	assert.Equal(t, "15", FromFloat(15.00000001).String())
	assert.Equal(t, "0.0000001", FromFloat(0.0000001).String())
}
