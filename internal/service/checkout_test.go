package service_test

import (
	"strings"
	"testing"

	"fakestore/storefront/internal/config"
	"fakestore/storefront/internal/domain"
	"fakestore/storefront/internal/service"
	"fakestore/storefront/internal/storage"
	"fakestore/storefront/internal/store"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutConfig() config.CheckoutConfig {
	return config.CheckoutConfig{TaxRate: 0.10, ShippingFee: 5.99}
}

func newCheckout(t *testing.T) (*service.Checkout, *store.CartStore, storage.Storage) {
	t.Helper()
	st := storage.NewMemoryStorage()
	cart := store.NewCartStore(t.Context(), st)
	return service.NewCheckout(cart, st, checkoutConfig()), cart, st
}

func shirtProduct() domain.Product {
	return domain.Product{
		ID:       1,
		Title:    "Red Shirt",
		Price:    decimal.NewFromFloat(10.00),
		Image:    gofakeit.URL(),
		Category: "men's clothing",
	}
}

func mugProduct() domain.Product {
	return domain.Product{
		ID:       2,
		Title:    "Mug",
		Price:    decimal.NewFromFloat(3.50),
		Image:    gofakeit.URL(),
		Category: "home",
	}
}

func shippingAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Name:    gofakeit.Name(),
		Email:   gofakeit.Email(),
		Address: gofakeit.Street(),
		City:    gofakeit.City(),
		Zip:     "10001",
	}
}

func TestSummary(t *testing.T) {
	checkout, cart, _ := newCheckout(t)
	ctx := t.Context()

	cart.AddItem(ctx, shirtProduct())
	cart.UpdateQuantity(ctx, 1, 2)
	cart.AddItem(ctx, mugProduct())

	summary := checkout.Summary()
	assert.Equal(t, 3, summary.ItemCount)
	assert.Equal(t, "23.50", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "5.99", summary.Shipping.StringFixed(2))
	assert.Equal(t, "2.35", summary.Tax.StringFixed(2))
	assert.Equal(t, "31.84", summary.Total.StringFixed(2))
}

func TestSummaryEmptyCartWaivesShipping(t *testing.T) {
	checkout, _, _ := newCheckout(t)

	summary := checkout.Summary()
	assert.Equal(t, 0, summary.ItemCount)
	assert.True(t, summary.Shipping.IsZero())
	assert.True(t, summary.Total.IsZero())
}

func TestPlaceOrder(t *testing.T) {
	checkout, cart, st := newCheckout(t)
	ctx := t.Context()

	cart.AddItem(ctx, shirtProduct())
	cart.AddItem(ctx, mugProduct())

	order, err := checkout.PlaceOrder(ctx, shippingAddress())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(order.ID, "ORD-"))
	assert.Len(t, order.Items, 2)
	assert.Equal(t, "20.84", order.Total.StringFixed(2)) // 13.50 + 1.35 tax + 5.99 shipping
	assert.False(t, order.Date.IsZero())

	// The cart is cleared, including its persisted key.
	assert.Empty(t, cart.Items())
	var persisted []domain.CartItem
	found, err := st.Load(ctx, store.CartKey, &persisted)
	require.NoError(t, err)
	assert.False(t, found)

	history, err := checkout.OrderHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, order.ID, history[0].ID)
}

func TestPlaceOrderPrependsToHistory(t *testing.T) {
	checkout, cart, _ := newCheckout(t)
	ctx := t.Context()

	cart.AddItem(ctx, shirtProduct())
	first, err := checkout.PlaceOrder(ctx, shippingAddress())
	require.NoError(t, err)

	cart.AddItem(ctx, mugProduct())
	second, err := checkout.PlaceOrder(ctx, shippingAddress())
	require.NoError(t, err)

	history, err := checkout.OrderHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID, "newest order comes first")
	assert.Equal(t, first.ID, history[1].ID)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	checkout, _, _ := newCheckout(t)

	_, err := checkout.PlaceOrder(t.Context(), shippingAddress())
	require.ErrorIs(t, err, service.ErrEmptyCart)
}

func TestPlaceOrderInvalidAddress(t *testing.T) {
	checkout, cart, _ := newCheckout(t)
	ctx := t.Context()
	cart.AddItem(ctx, shirtProduct())

	addr := shippingAddress()
	addr.Email = "nope"

	_, err := checkout.PlaceOrder(ctx, addr)
	require.ErrorContains(t, err, "email is invalid")

	// A rejected order leaves the cart alone.
	assert.Len(t, cart.Items(), 1)
}

func TestOrderHistoryCorruptValueReadsAsEmpty(t *testing.T) {
	checkout, _, st := newCheckout(t)
	ctx := t.Context()

	require.NoError(t, st.Save(ctx, service.OrderHistoryKey, "garbage"))

	history, err := checkout.OrderHistory(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)
}
