package domain

import "github.com/shopspring/decimal"

// Product is a single catalog entry as returned by the remote store API.
// Products are immutable once fetched.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Rating      *Rating         `json:"rating,omitempty"`
}

type Rating struct {
	Rate  float64 `json:"rate"`  // 0..5
	Count int     `json:"count"` // number of reviews
}
