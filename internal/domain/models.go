package domain

import "github.com/shopspring/decimal"

// Product is a catalog record. The catalog is loaded once at startup
// and treated as read-only after that.
type Product struct {
	ID            int64            `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discountPrice,omitempty"`
	Description   string           `json:"description"`
	Image         string           `json:"image"`
}

// HasDiscount reports whether the product carries a usable discount
// price: present and strictly between zero and the list price.
func (p Product) HasDiscount() bool {
	if p.DiscountPrice == nil {
		return false
	}
	return p.DiscountPrice.IsPositive() && p.DiscountPrice.LessThan(p.Price)
}

// Entry is one product line in the cart. Quantity is always >= 1; a
// mutation that would drive it to zero removes the line instead.
type Entry struct {
	Product
	Quantity int `json:"quantity"`
}

// Valid reports whether a (possibly deserialized) entry satisfies the
// cart invariants: positive id, quantity >= 1, positive price, and a
// discount price, if present, strictly below the list price.
func (e Entry) Valid() bool {
	if e.ID < 1 || e.Quantity < 1 {
		return false
	}
	if !e.Price.IsPositive() {
		return false
	}
	if e.DiscountPrice != nil && !e.HasDiscount() {
		return false
	}
	return true
}

// Customer holds the checkout contact details.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Mobile  string `json:"mobile"`
	Email   string `json:"email"`
}
