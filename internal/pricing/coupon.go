package pricing

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Coupon outcomes. The two cases render differently in the UI, so they
// are distinct sentinels rather than one generic error.
var (
	ErrCouponRequired = errors.New("coupon code required")
	ErrCouponNotFound = errors.New("coupon code not found")
)

// Demo coupon codes: percentage off the discounted item total.
// Lookup is case-insensitive.
var couponPercent = map[string]int64{
	"JIVUMA10": 10,
	"JIVUMA20": 20,
}

// ResolveCoupon maps a code to a discount amount computed against the
// given discounted item total. An empty code yields ErrCouponRequired,
// an unknown one ErrCouponNotFound; both return a zero discount.
func ResolveCoupon(code string, itemTotal decimal.Decimal) (decimal.Decimal, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return decimal.Zero, ErrCouponRequired
	}
	pct, ok := couponPercent[code]
	if !ok {
		return decimal.Zero, ErrCouponNotFound
	}
	return itemTotal.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100)), nil
}
