package client

import (
	"context"
	"fmt"
	"time"

	"fakestore/storefront/internal/config"
	"fakestore/storefront/internal/domain"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

// CatalogClient talks to the remote store API.
type CatalogClient interface {
	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetCategories(ctx context.Context) ([]string, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
}

type catalogClient struct {
	rl         ratelimit.Limiter
	config     config.APIConfig
	httpClient *resty.Client
	timeout    time.Duration
}

func NewCatalogClient(cfg config.APIConfig) CatalogClient {
	timeout := time.Duration(cfg.Timeout) * time.Second

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(2*time.Second).
		SetRetryMaxWaitTime(10*time.Second).
		SetHeader("Accept", "application/json")

	rps := cfg.MaxRequestsPerSecond
	if rps <= 0 {
		rps = 10
	}

	return &catalogClient{
		rl:         ratelimit.New(rps),
		config:     cfg,
		httpClient: httpClient,
		timeout:    timeout,
	}
}

func (c *catalogClient) GetProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.fetchJSON(ctx, "/products", &products); err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	log.Debugf("Fetched %d products", len(products))
	return products, nil
}

func (c *catalogClient) GetCategories(ctx context.Context) ([]string, error) {
	var categories []string
	if err := c.fetchJSON(ctx, "/products/categories", &categories); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	log.Debugf("Fetched %d categories", len(categories))
	return categories, nil
}

func (c *catalogClient) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	var product domain.Product
	if err := c.fetchJSON(ctx, fmt.Sprintf("/products/%d", id), &product); err != nil {
		return nil, fmt.Errorf("failed to fetch product %d: %w", id, err)
	}

	log.Debugf("Fetched product %d (%s)", product.ID, product.Title)
	return &product, nil
}

func (c *catalogClient) fetchJSON(ctx context.Context, path string, out any) error {
	c.rl.Take()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.httpClient.R().
		SetContext(reqCtx).
		SetResult(out).
		Get(path)

	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return fmt.Errorf("failed to fetch URL: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	return nil
}
