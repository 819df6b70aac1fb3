package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	MinQuantity = 1
	MaxQuantity = 10
)

// CartItem is a single line item: a product plus the quantity in the cart.
type CartItem struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"` // unit price
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"` // always within [MinQuantity, MaxQuantity]
}

// Subtotal returns unit price times quantity.
func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// NewCartItem builds a line item from a product with quantity 1.
func NewCartItem(p Product) CartItem {
	return CartItem{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Image:       p.Image,
		Category:    p.Category,
		Description: p.Description,
		Quantity:    MinQuantity,
	}
}

// ClampQuantity forces q into the allowed [MinQuantity, MaxQuantity] range.
func ClampQuantity(q int) int {
	if q < MinQuantity {
		return MinQuantity
	}
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// CartState is a snapshot of the cart. Items keep insertion order.
type CartState struct {
	Items       []CartItem `json:"items"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}
