package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"jivuma/internal/cart"
	applog "jivuma/internal/log"
	"jivuma/internal/pricing"
	"jivuma/internal/services"
	"jivuma/internal/validate"
)

type CartHandler struct {
	Store   *cart.Store
	Catalog *services.CatalogService
	Policy  pricing.Policy
}

// cartView is the derived-totals payload every cart endpoint returns.
// Totals are evaluated against the current snapshot on demand, never
// cached.
func (h *CartHandler) cartView() fiber.Map {
	snap := h.Store.Snapshot()
	return fiber.Map{
		"entries":        snap.Entries,
		"subtotal":       pricing.Subtotal(snap.Entries),
		"total":          pricing.TotalWithItemDiscounts(snap.Entries),
		"savings":        pricing.Savings(snap.Entries),
		"totalQuantity":  pricing.TotalQuantity(snap.Entries),
		"deliveryCharge": h.Policy.DeliveryCharge(snap.Entries),
		"finalTotal":     h.Policy.FinalTotal(snap.Entries),
		"freeDelivery":   h.Policy.HasMinimumOrder(snap.Entries),
	}
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.cartView())
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var body struct {
		ProductID int64 `json:"productId"`
	}
	if err := c.BodyParser(&body); err != nil || body.ProductID < 1 {
		applog.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing productId"})
	}
	p, err := h.Catalog.Get(body.ProductID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "this item is no longer available"})
	}
	h.Store.Add(p)
	return c.Status(fiber.StatusCreated).JSON(h.cartView())
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid quantity"})
	}
	// qty <= 0 removes the line; a missing id is a silent no-op.
	h.Store.SetQuantity(id, body.Quantity)
	return c.JSON(h.cartView())
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "id"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product id"})
	}
	h.Store.Remove(id)
	return c.JSON(h.cartView())
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.Store.Clear()
	return c.JSON(h.cartView())
}

func (h *CartHandler) ApplyCoupon(c *fiber.Ctx) error {
	var body struct {
		Code string `json:"code"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	code, ok := validate.Coupon(body.Code)
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "coupon"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid coupon code"})
	}

	snap := h.Store.Snapshot()
	discount, err := pricing.ResolveCoupon(code, pricing.TotalWithItemDiscounts(snap.Entries))
	switch {
	case errors.Is(err, pricing.ErrCouponRequired):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "please enter a coupon code"})
	case errors.Is(err, pricing.ErrCouponNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "invalid coupon code"})
	}

	return c.JSON(fiber.Map{
		"code":       code,
		"discount":   discount,
		"finalTotal": h.Policy.FinalTotalWithCoupon(snap.Entries, discount),
	})
}
