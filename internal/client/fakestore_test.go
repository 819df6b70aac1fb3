package client_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"fakestore/storefront/internal/client"
	"fakestore/storefront/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.Handler) client.CatalogClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return client.NewCatalogClient(config.APIConfig{
		BaseURL:              server.URL,
		Timeout:              5,
		MaxRetries:           0,
		MaxRequestsPerSecond: 100,
	})
}

func TestGetProducts(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":1,"title":"Red Shirt","price":19.99,"image":"img","category":"men's clothing","description":"a shirt","rating":{"rate":4.5,"count":120}},
			{"id":2,"title":"Mug","price":3.5,"image":"img","category":"home","description":""}
		]`))
	})

	products, err := testClient(t, mux).GetProducts(t.Context())
	require.NoError(t, err)

	require.Len(t, products, 2)
	assert.Equal(t, "Red Shirt", products[0].Title)
	assert.Equal(t, "19.99", products[0].Price.StringFixed(2))
	require.NotNil(t, products[0].Rating)
	assert.Equal(t, 4.5, products[0].Rating.Rate)
	assert.Nil(t, products[1].Rating)
}

func TestGetCategories(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`["electronics","jewelery","men's clothing"]`))
	})

	categories, err := testClient(t, mux).GetCategories(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery", "men's clothing"}, categories)
}

func TestGetProduct(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/products/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"title":"Gold Ring","price":149,"image":"img","category":"jewelery","description":"shiny"}`))
	})

	product, err := testClient(t, mux).GetProduct(t.Context(), 7)
	require.NoError(t, err)
	assert.Equal(t, 7, product.ID)
	assert.Equal(t, "Gold Ring", product.Title)
	assert.Equal(t, "149.00", product.Price.StringFixed(2))
}

func TestHTTPErrorSurfacesAsError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))

	_, err := c.GetProduct(t.Context(), 999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
