package store

import (
	"context"
	"strings"
	"sync"

	"fakestore/storefront/internal/client"
	"fakestore/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const defaultFetchError = "Failed to fetch products"

// CatalogStore owns the fetched product catalog: the product list, the
// category list, the selected product and the fetch lifecycle status.
//
// Fetches are guarded by a monotonic sequence number per fetch kind. A fetch
// that settles after a newer request of the same kind was issued is
// discarded, so a slow response can never overwrite fresher data.
type CatalogStore struct {
	mu     sync.RWMutex
	client client.CatalogClient

	items            []domain.Product
	categories       []string
	selectedProduct  *domain.Product
	status           domain.Status
	err              string
	selectedCategory string
	searchQuery      string

	catalogSeq uint64 // latest issued FetchCatalog request
	productSeq uint64 // latest issued FetchProduct request

	subscribers *subscribers
}

func NewCatalogStore(catalogClient client.CatalogClient) *CatalogStore {
	return &CatalogStore{
		client:           catalogClient,
		status:           domain.StatusIdle,
		selectedCategory: domain.CategoryAll,
		subscribers:      &subscribers{},
	}
}

// Subscribe registers fn to run after every state change.
func (s *CatalogStore) Subscribe(fn func()) {
	s.subscribers.add(fn)
}

// FetchCatalog loads the full product list and the category list with two
// concurrent calls. Either both results are applied together or, when any
// call fails, neither is and the status flips to failed. The returned error
// mirrors what was recorded in the state.
func (s *CatalogStore) FetchCatalog(ctx context.Context) error {
	seq := s.beginFetch(&s.catalogSeq)

	var (
		products   []domain.Product
		categories []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.client.GetProducts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.client.GetCategories(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		s.settleCatalog(seq, nil, nil, err)
		return err
	}

	s.settleCatalog(seq, products, categories, nil)
	return nil
}

// FetchProduct loads a single product into the selected-product slot. The
// product list and category list are untouched.
func (s *CatalogStore) FetchProduct(ctx context.Context, id int) error {
	seq := s.beginFetch(&s.productSeq)

	product, err := s.client.GetProduct(ctx, id)

	s.mu.Lock()
	if seq != s.productSeq {
		s.mu.Unlock()
		log.Debugf("Discarding stale product fetch (seq %d)", seq)
		return err
	}
	if err != nil {
		s.status = domain.StatusFailed
		s.err = errorMessage(err)
	} else {
		s.status = domain.StatusSucceeded
		s.selectedProduct = product
	}
	s.mu.Unlock()

	s.subscribers.notify()
	return err
}

// beginFetch bumps the sequence counter for one fetch kind and moves the
// store into the loading state.
func (s *CatalogStore) beginFetch(seq *uint64) uint64 {
	s.mu.Lock()
	*seq++
	issued := *seq
	s.status = domain.StatusLoading
	s.err = ""
	s.mu.Unlock()

	s.subscribers.notify()
	return issued
}

func (s *CatalogStore) settleCatalog(seq uint64, products []domain.Product, categories []string, fetchErr error) {
	s.mu.Lock()
	if seq != s.catalogSeq {
		s.mu.Unlock()
		log.Debugf("Discarding stale catalog fetch (seq %d)", seq)
		return
	}

	if fetchErr != nil {
		s.status = domain.StatusFailed
		s.err = errorMessage(fetchErr)
	} else {
		s.status = domain.StatusSucceeded
		s.items = products
		s.categories = append([]string{domain.CategoryAll}, categories...)
	}
	s.mu.Unlock()

	s.subscribers.notify()
}

// SetSearchQuery stores the search text, normalized to lowercase. No fetch
// is triggered.
func (s *CatalogStore) SetSearchQuery(query string) {
	s.mu.Lock()
	s.searchQuery = strings.ToLower(query)
	s.mu.Unlock()

	s.subscribers.notify()
}

// SetSelectedCategory stores the category filter verbatim.
func (s *CatalogStore) SetSelectedCategory(category string) {
	s.mu.Lock()
	s.selectedCategory = category
	s.mu.Unlock()

	s.subscribers.notify()
}

// FilteredProducts returns the products whose lowercase title contains the
// search query and whose category matches the selected one. Order follows
// the fetched product list.
func (s *CatalogStore) FilteredProducts() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	filtered := make([]domain.Product, 0, len(s.items))
	for _, p := range s.items {
		if !strings.Contains(strings.ToLower(p.Title), s.searchQuery) {
			continue
		}
		if s.selectedCategory != domain.CategoryAll && p.Category != s.selectedCategory {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// State returns a snapshot of the catalog.
func (s *CatalogStore) State() domain.CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return domain.CatalogState{
		Items:            append([]domain.Product(nil), s.items...),
		Categories:       append([]string(nil), s.categories...),
		SelectedProduct:  s.selectedProduct,
		Status:           s.status,
		Error:            s.err,
		SelectedCategory: s.selectedCategory,
		SearchQuery:      s.searchQuery,
	}
}

// Status returns the current fetch lifecycle status.
func (s *CatalogStore) Status() domain.Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.status
}

func errorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return defaultFetchError
	}
	return err.Error()
}
