package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jivuma/internal/pricing"
)

func TestResolveCoupon(t *testing.T) {
	total := decimal.NewFromInt(1000)

	d, err := pricing.ResolveCoupon("JIVUMA10", total)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(d))

	d, err = pricing.ResolveCoupon("JIVUMA20", total)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(d))
}

func TestResolveCouponCaseInsensitive(t *testing.T) {
	total := decimal.NewFromInt(500)

	d, err := pricing.ResolveCoupon("jivuma10", total)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(50).Equal(d))

	d, err = pricing.ResolveCoupon("  Jivuma20 ", total)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(d))
}

func TestResolveCouponOutcomes(t *testing.T) {
	total := decimal.NewFromInt(1000)

	d, err := pricing.ResolveCoupon("BADCODE", total)
	assert.ErrorIs(t, err, pricing.ErrCouponNotFound)
	assert.True(t, d.IsZero())

	d, err = pricing.ResolveCoupon("", total)
	assert.ErrorIs(t, err, pricing.ErrCouponRequired)
	assert.True(t, d.IsZero())

	d, err = pricing.ResolveCoupon("   ", total)
	assert.ErrorIs(t, err, pricing.ErrCouponRequired)
	assert.True(t, d.IsZero())
}
