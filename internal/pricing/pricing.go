package pricing

import (
	"github.com/shopspring/decimal"

	"jivuma/internal/domain"
)

// Default policy values. Exposed as named constants so deployments can
// override them through config instead of editing code.
const (
	DefaultFreeDeliveryMinQty = 5
	DefaultDeliveryCharge     = 40
)

// Policy holds the delivery-charge rules applied on top of per-item
// pricing. The zero value charges delivery on every order; use
// DefaultPolicy for the standard rules.
type Policy struct {
	// FreeDeliveryMinQty is the total unit count at which the flat
	// delivery charge is waived.
	FreeDeliveryMinQty int
	// FlatDeliveryCharge is added to orders below the threshold.
	FlatDeliveryCharge decimal.Decimal
}

func DefaultPolicy() Policy {
	return Policy{
		FreeDeliveryMinQty: DefaultFreeDeliveryMinQty,
		FlatDeliveryCharge: decimal.NewFromInt(DefaultDeliveryCharge),
	}
}

// EffectivePrice is the discount price when one is set and valid,
// otherwise the list price.
func EffectivePrice(e domain.Entry) decimal.Decimal {
	if e.HasDiscount() {
		return *e.DiscountPrice
	}
	return e.Price
}

// Subtotal sums list price times quantity over all entries. It ignores
// per-item discounts; this is the pre-discount figure shown next to
// the savings line.
func Subtotal(entries []domain.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Price.Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

// TotalWithItemDiscounts sums effective price times quantity.
func TotalWithItemDiscounts(entries []domain.Entry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(EffectivePrice(e).Mul(decimal.NewFromInt(int64(e.Quantity))))
	}
	return total
}

// Savings is the gap between the subtotal and the discounted total.
// Zero when no entry has a discount; never negative.
func Savings(entries []domain.Entry) decimal.Decimal {
	return Subtotal(entries).Sub(TotalWithItemDiscounts(entries))
}

// TotalQuantity is the unit count across all entries.
func TotalQuantity(entries []domain.Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Quantity
	}
	return n
}

// HasMinimumOrder reports whether the cart qualifies for free delivery.
func (p Policy) HasMinimumOrder(entries []domain.Entry) bool {
	return TotalQuantity(entries) >= p.FreeDeliveryMinQty
}

// DeliveryCharge is zero at or above the free-delivery threshold,
// otherwise the flat charge.
func (p Policy) DeliveryCharge(entries []domain.Entry) decimal.Decimal {
	if p.HasMinimumOrder(entries) {
		return decimal.Zero
	}
	return p.FlatDeliveryCharge
}

// FinalTotal is the discounted total plus the delivery charge.
func (p Policy) FinalTotal(entries []domain.Entry) decimal.Decimal {
	return TotalWithItemDiscounts(entries).Add(p.DeliveryCharge(entries))
}

// FinalTotalWithCoupon subtracts a coupon discount from the final
// total, clamped at zero so an oversized coupon can never produce a
// negative amount due.
func (p Policy) FinalTotalWithCoupon(entries []domain.Entry, couponDiscount decimal.Decimal) decimal.Decimal {
	total := p.FinalTotal(entries).Sub(couponDiscount)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}
