package store

import (
	"context"
	"sync"
	"time"

	"fakestore/storefront/internal/domain"
	"fakestore/storefront/internal/storage"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// CartKey is the storage key holding the persisted line items.
const CartKey = "cartItems"

// CartStore owns the shopping cart. Every mutation refreshes the
// last-updated timestamp, persists the item list and then notifies
// subscribers. Persistence is best effort: a failing write is logged and the
// in-memory cart stays authoritative for the rest of the session.
type CartStore struct {
	mu          sync.RWMutex
	items       []domain.CartItem
	lastUpdated *time.Time

	storage     storage.Storage
	subscribers *subscribers
}

// NewCartStore creates a cart seeded from the persisted item list. A missing,
// unreadable or corrupt value starts an empty cart instead of failing.
func NewCartStore(ctx context.Context, store storage.Storage) *CartStore {
	s := &CartStore{
		storage:     store,
		subscribers: &subscribers{},
	}

	var items []domain.CartItem
	found, err := store.Load(ctx, CartKey, &items)
	if err != nil {
		log.Warnf("Failed to load cart from storage: %v", err)
	} else if found {
		for i := range items {
			items[i].Quantity = domain.ClampQuantity(items[i].Quantity)
		}
		s.items = items
		log.Debugf("Restored cart with %d items", len(items))
	}

	return s
}

// Subscribe registers fn to run after every committed mutation.
func (s *CartStore) Subscribe(fn func()) {
	s.subscribers.add(fn)
}

// AddItem puts a product in the cart. Adding a product that is already
// present increments its quantity by one, capped at the maximum; the
// requested quantity of a new line item always starts at one.
func (s *CartStore) AddItem(ctx context.Context, product domain.Product) {
	s.mu.Lock()

	found := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity = domain.ClampQuantity(s.items[i].Quantity + 1)
			found = true
			break
		}
	}
	if !found {
		s.items = append(s.items, domain.NewCartItem(product))
	}

	s.touch()
	s.persist(ctx)
	s.mu.Unlock()

	s.subscribers.notify()
}

// RemoveItem drops the line item with the given product id. Removing an
// absent id is a no-op.
func (s *CartStore) RemoveItem(ctx context.Context, id int) {
	s.mu.Lock()

	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept

	s.touch()
	s.persist(ctx)
	s.mu.Unlock()

	s.subscribers.notify()
}

// UpdateQuantity sets the quantity of an existing line item, clamped to the
// allowed range. Unknown ids are ignored.
func (s *CartStore) UpdateQuantity(ctx context.Context, id int, quantity int) {
	s.mu.Lock()

	changed := false
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = domain.ClampQuantity(quantity)
			changed = true
			break
		}
	}

	if changed {
		s.touch()
		s.persist(ctx)
	}
	s.mu.Unlock()

	if changed {
		s.subscribers.notify()
	}
}

// Clear empties the cart and deletes the persisted key entirely.
func (s *CartStore) Clear(ctx context.Context) {
	s.mu.Lock()

	s.items = nil
	s.touch()
	if err := s.storage.Remove(ctx, CartKey); err != nil {
		log.Warnf("Failed to clear persisted cart: %v", err)
	}
	s.mu.Unlock()

	s.subscribers.notify()
}

// touch refreshes the last-updated timestamp. Callers hold the lock.
func (s *CartStore) touch() {
	now := time.Now()
	s.lastUpdated = &now
}

// persist writes the current item list. Callers hold the lock.
func (s *CartStore) persist(ctx context.Context) {
	items := s.items
	if items == nil {
		items = []domain.CartItem{}
	}
	if err := s.storage.Save(ctx, CartKey, items); err != nil {
		log.Warnf("Failed to save cart to storage: %v", err)
	}
}

// State returns a snapshot of the cart.
func (s *CartStore) State() domain.CartState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CartState{
		Items:       append([]domain.CartItem(nil), s.items...),
		LastUpdated: s.lastUpdated,
	}
}

// Items returns a copy of the line items in insertion order.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]domain.CartItem(nil), s.items...)
}

// TotalPrice sums price times quantity over all items, rounded to cents.
func (s *CartStore) TotalPrice() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Subtotal())
	}
	return total.Round(2)
}

// ItemCount sums the quantities over all items.
func (s *CartStore) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// CartItemView is a line item augmented with its formatted subtotal for
// presentation.
type CartItemView struct {
	domain.CartItem
	Subtotal string `json:"subtotal"` // price*quantity with two decimals
}

// ItemsWithSubtotals returns each line item with its subtotal formatted to
// two decimal places.
func (s *CartStore) ItemsWithSubtotals() []CartItemView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]CartItemView, 0, len(s.items))
	for _, item := range s.items {
		views = append(views, CartItemView{
			CartItem: item,
			Subtotal: item.Subtotal().StringFixed(2),
		})
	}
	return views
}

// Contains reports whether a product is in the cart.
func (s *CartStore) Contains(id int) bool {
	return s.QuantityOf(id) > 0
}

// QuantityOf returns the quantity of the given product, zero when absent.
func (s *CartStore) QuantityOf(id int) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

// LastUpdated returns the time of the most recent mutation, nil before the
// first one.
func (s *CartStore) LastUpdated() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.lastUpdated
}
