package domain

// CategoryAll is the sentinel category meaning "no category filter". It is
// always the first entry of CatalogState.Categories.
const CategoryAll = "all"

// CatalogState is a snapshot of the product catalog store.
type CatalogState struct {
	Items            []Product `json:"items"`                      // all fetched products, unique by ID
	Categories       []string  `json:"categories"`                 // CategoryAll followed by the fetched categories
	SelectedProduct  *Product  `json:"selected_product,omitempty"` // product shown on the detail page
	Status           Status    `json:"status"`
	Error            string    `json:"error,omitempty"` // set only while Status is StatusFailed
	SelectedCategory string    `json:"selected_category"`
	SearchQuery      string    `json:"search_query"` // stored lowercase
}
