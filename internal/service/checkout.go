package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fakestore/storefront/internal/config"
	"fakestore/storefront/internal/domain"
	"fakestore/storefront/internal/storage"
	"fakestore/storefront/internal/store"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// OrderHistoryKey is the storage key holding placed orders, newest first.
const OrderHistoryKey = "orderHistory"

var ErrEmptyCart = errors.New("cart is empty")

// Checkout turns the current cart into an order: it prices the cart with
// tax and shipping, records the order in the history and clears the cart.
type Checkout struct {
	cart        *store.CartStore
	storage     storage.Storage
	taxRate     decimal.Decimal
	shippingFee decimal.Decimal
}

func NewCheckout(cart *store.CartStore, st storage.Storage, cfg config.CheckoutConfig) *Checkout {
	return &Checkout{
		cart:        cart,
		storage:     st,
		taxRate:     decimal.NewFromFloat(cfg.TaxRate),
		shippingFee: decimal.NewFromFloat(cfg.ShippingFee),
	}
}

// Summary is the priced breakdown of the current cart.
type Summary struct {
	ItemCount int
	Subtotal  decimal.Decimal
	Shipping  decimal.Decimal // zero for an empty cart
	Tax       decimal.Decimal
	Total     decimal.Decimal
}

// Summary prices the current cart. Shipping is waived when there is nothing
// to ship.
func (c *Checkout) Summary() Summary {
	subtotal := c.cart.TotalPrice()

	shipping := decimal.Zero
	if subtotal.IsPositive() {
		shipping = c.shippingFee
	}
	tax := subtotal.Mul(c.taxRate).Round(2)

	return Summary{
		ItemCount: c.cart.ItemCount(),
		Subtotal:  subtotal,
		Shipping:  shipping,
		Tax:       tax,
		Total:     subtotal.Add(tax).Add(shipping).Round(2),
	}
}

// PlaceOrder validates the shipping address, records the order at the front
// of the persisted history and clears the cart. The cart must not be empty.
func (c *Checkout) PlaceOrder(ctx context.Context, addr domain.ShippingAddress) (*domain.Order, error) {
	if err := addr.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shipping address: %w", err)
	}

	items := c.cart.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	summary := c.Summary()
	order := domain.Order{
		ID:       newOrderNumber(),
		Date:     time.Now(),
		Items:    items,
		Subtotal: summary.Subtotal,
		Shipping: summary.Shipping,
		Tax:      summary.Tax,
		Total:    summary.Total,
		Address:  addr,
	}

	history, err := c.OrderHistory(ctx)
	if err != nil {
		log.Warnf("Failed to load order history, starting a new one: %v", err)
		history = nil
	}
	history = append([]domain.Order{order}, history...)

	if err := c.storage.Save(ctx, OrderHistoryKey, history); err != nil {
		log.Warnf("Failed to save order history: %v", err)
	}

	c.cart.Clear(ctx)
	log.Infof("Placed order %s with %d items, total %s", order.ID, len(order.Items), order.Total.StringFixed(2))

	return &order, nil
}

// OrderHistory returns the persisted orders, newest first. An absent or
// corrupt history reads as empty.
func (c *Checkout) OrderHistory(ctx context.Context) ([]domain.Order, error) {
	var history []domain.Order
	if _, err := c.storage.Load(ctx, OrderHistoryKey, &history); err != nil {
		return nil, fmt.Errorf("failed to load order history: %w", err)
	}
	return history, nil
}

func newOrderNumber() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "ORD-" + id[:9]
}
