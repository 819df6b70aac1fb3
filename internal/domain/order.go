package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	zipPattern   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// ShippingAddress is the delivery information collected at checkout.
type ShippingAddress struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

// Validate checks the required fields and formats. It returns the first
// problem found.
func (a ShippingAddress) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("name is required")
	}
	if a.Email == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(a.Email) {
		return errors.New("email is invalid")
	}
	if strings.TrimSpace(a.Address) == "" {
		return errors.New("address is required")
	}
	if strings.TrimSpace(a.City) == "" {
		return errors.New("city is required")
	}
	if strings.TrimSpace(a.Zip) == "" {
		return errors.New("zip code is required")
	}
	if !zipPattern.MatchString(a.Zip) {
		return errors.New("zip code is invalid")
	}
	return nil
}

// Order is a completed checkout, persisted to the order history.
type Order struct {
	ID       string          `json:"id"` // e.g. "ORD-9A3F21C04"
	Date     time.Time       `json:"date"`
	Items    []CartItem      `json:"items"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Address  ShippingAddress `json:"address"`
}
