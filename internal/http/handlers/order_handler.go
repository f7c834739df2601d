package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"jivuma/internal/cart"
	"jivuma/internal/domain"
	applog "jivuma/internal/log"
	"jivuma/internal/pricing"
	"jivuma/internal/services"
	"jivuma/internal/validate"
)

type OrderHandler struct {
	Store  *cart.Store
	Order  *services.OrderService
	Policy pricing.Policy
}

// Place hands the cart off as a formatted order. The coupon code is
// optional; an unknown one is rejected rather than silently ignored.
// The cart is cleared only after a successful hand-off.
func (h *OrderHandler) Place(c *fiber.Ctx) error {
	var body struct {
		Customer domain.Customer `json:"customer"`
		Coupon   string          `json:"coupon"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	snap := h.Store.Snapshot()

	discount := decimal.Zero
	if code, ok := validate.Coupon(body.Coupon); ok && code != "" {
		d, err := pricing.ResolveCoupon(code, pricing.TotalWithItemDiscounts(snap.Entries))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid coupon code"})
		}
		discount = d
	}

	receipt, err := h.Order.Place(body.Customer, snap.Entries, discount)
	switch {
	case errors.Is(err, services.ErrCartEmpty):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "your cart is empty"})
	case errors.Is(err, services.ErrInvalidCustomer):
		applog.Security(c, "validation.fail", map[string]any{"field": "customer"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case err != nil:
		applog.Error(c, "order.place", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not place order"})
	}

	h.Store.Clear()
	applog.Info(c, "order.placed", map[string]any{"order_id": receipt.OrderID, "total": receipt.Total.String()})
	return c.Status(fiber.StatusCreated).JSON(receipt)
}
