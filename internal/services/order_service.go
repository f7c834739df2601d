package services

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"jivuma/internal/domain"
	applog "jivuma/internal/log"
	"jivuma/internal/pricing"
	"jivuma/internal/validate"
)

var (
	ErrCartEmpty       = errors.New("cart is empty")
	ErrInvalidCustomer = errors.New("invalid customer details")
)

// Sender is the opaque order hand-off channel. The call is
// fire-and-forget: a failed send is logged, not surfaced to the
// customer.
type Sender interface {
	Send(orderID, message string) error
}

// WhatsAppSender hands the order text off as a pre-addressed wa.me
// link. The storefront client opens the link; on the server side the
// link is the deliverable, so sending just records it.
type WhatsAppSender struct {
	To string
}

func (s *WhatsAppSender) Send(orderID, message string) error {
	link := WhatsAppLink(s.To, message)
	applog.Info(nil, "order.handoff", map[string]any{"order_id": orderID, "link": link})
	return nil
}

// WhatsAppLink builds a pre-addressed wa.me URL carrying the message.
func WhatsAppLink(to, message string) string {
	return "https://wa.me/" + to + "?text=" + url.QueryEscape(message)
}

// Receipt is what the caller gets back after a successful hand-off.
type Receipt struct {
	OrderID     string          `json:"orderId"`
	Total       decimal.Decimal `json:"total"`
	Message     string          `json:"message"`
	HandoffLink string          `json:"handoffLink"`
}

type OrderService struct {
	Policy pricing.Policy
	Sink   Sender
	waTo   string
}

func NewOrderService(policy pricing.Policy, sink Sender, whatsAppTo string) *OrderService {
	return &OrderService{Policy: policy, Sink: sink, waTo: whatsAppTo}
}

// Place validates the customer, prices the cart, formats the order
// summary, and hands it to the sink. It does not clear the cart; the
// caller owns that.
func (s *OrderService) Place(cust domain.Customer, entries []domain.Entry, couponDiscount decimal.Decimal) (Receipt, error) {
	if len(entries) == 0 {
		return Receipt{}, ErrCartEmpty
	}
	name, ok := validate.Name(cust.Name)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: name", ErrInvalidCustomer)
	}
	addr, ok := validate.Address(cust.Address)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: address", ErrInvalidCustomer)
	}
	mobile, ok := validate.Mobile(cust.Mobile)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: mobile", ErrInvalidCustomer)
	}
	email, ok := validate.Email(cust.Email)
	if !ok {
		return Receipt{}, fmt.Errorf("%w: email", ErrInvalidCustomer)
	}
	cust = domain.Customer{Name: name, Address: addr, Mobile: mobile, Email: email}

	orderID := uuid.NewString()
	total := s.Policy.FinalTotalWithCoupon(entries, couponDiscount)
	msg := s.formatMessage(cust, entries, couponDiscount, total)

	if err := s.Sink.Send(orderID, msg); err != nil {
		applog.Error(nil, "order.handoff.fail", err, map[string]any{"order_id": orderID})
	}

	return Receipt{
		OrderID:     orderID,
		Total:       total,
		Message:     msg,
		HandoffLink: WhatsAppLink(s.waTo, msg),
	}, nil
}

func (s *OrderService) formatMessage(cust domain.Customer, entries []domain.Entry, couponDiscount, total decimal.Decimal) string {
	var b strings.Builder
	b.WriteString("JIVUMA SPICE ORDER\n\n")
	b.WriteString("Customer Details:\n")
	fmt.Fprintf(&b, "Name: %s\nPhone: %s\nEmail: %s\n\n", cust.Name, cust.Mobile, cust.Email)

	b.WriteString("Order Items:\n")
	for _, e := range entries {
		line := pricing.EffectivePrice(e).Mul(decimal.NewFromInt(int64(e.Quantity)))
		fmt.Fprintf(&b, "- %s x %d = Rs.%s\n", e.Name, e.Quantity, line.StringFixed(2))
	}

	delivery := s.Policy.DeliveryCharge(entries)
	b.WriteString("\nOrder Summary:\n")
	fmt.Fprintf(&b, "Subtotal: Rs.%s\n", pricing.TotalWithItemDiscounts(entries).StringFixed(2))
	if delivery.IsZero() {
		b.WriteString("Delivery: FREE\n")
	} else {
		fmt.Fprintf(&b, "Delivery: Rs.%s\n", delivery.StringFixed(2))
	}
	if couponDiscount.IsPositive() {
		fmt.Fprintf(&b, "Coupon: -Rs.%s\n", couponDiscount.StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: Rs.%s\n\n", total.StringFixed(2))

	fmt.Fprintf(&b, "Delivery Address:\n%s\n\n", cust.Address)

	if delivery.IsZero() {
		fmt.Fprintf(&b, "You got FREE delivery (%d+ packets)\n", s.Policy.FreeDeliveryMinQty)
	} else {
		fmt.Fprintf(&b, "Add more items for FREE delivery (minimum %d packets)\n", s.Policy.FreeDeliveryMinQty)
	}
	b.WriteString("Please confirm this order and share payment details. Thank you!")
	return b.String()
}
