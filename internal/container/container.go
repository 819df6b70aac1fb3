package container

import (
	"context"
	"fmt"

	"fakestore/storefront/internal/client"
	"fakestore/storefront/internal/config"
	"fakestore/storefront/internal/service"
	"fakestore/storefront/internal/storage"
	"fakestore/storefront/internal/store"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Container holds all initialized components
type Container struct {
	Config   *config.Config
	Storage  storage.Storage
	Client   client.CatalogClient
	Cart     *store.CartStore
	Catalog  *store.CatalogStore
	Checkout *service.Checkout

	redis *redis.Client
}

// New creates a new container with all dependencies initialized.
// When Redis is unreachable the cart falls back to in-memory storage: the
// session still works, it just does not survive a restart.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Warnf("Redis unavailable, cart will not survive restarts: %v", err)
		rdb.Close()
		container.Storage = storage.NewMemoryStorage()
	} else {
		log.Info("Connected to Redis successfully")
		container.redis = rdb
		container.Storage = storage.NewRedisStorage(rdb, cfg.Redis.KeyPrefix)
	}

	container.Client = client.NewCatalogClient(cfg.API)
	container.Cart = store.NewCartStore(ctx, container.Storage)
	container.Catalog = store.NewCatalogStore(container.Client)
	container.Checkout = service.NewCheckout(container.Cart, container.Storage, cfg.Checkout)

	return container, nil
}

// Run loads the catalog and reports the restored session state.
func (c *Container) Run(ctx context.Context) error {
	if err := c.Catalog.FetchCatalog(ctx); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	state := c.Catalog.State()
	log.Infof("Catalog loaded: %d products in %d categories", len(state.Items), len(state.Categories)-1)

	summary := c.Checkout.Summary()
	if summary.ItemCount > 0 {
		log.Infof("Restored cart: %d items, subtotal %s", summary.ItemCount, summary.Subtotal.StringFixed(2))
	}

	return nil
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return err
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
