package container

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"reelbox/internal/cache"
	"reelbox/internal/config"
	"reelbox/internal/database"
	"reelbox/internal/logger"
	"reelbox/internal/repository"
	"reelbox/internal/services"
	"reelbox/internal/storage"
	"reelbox/internal/store"
)

// Container wires the key-value backend, the catalog client, the stores
// and the application state store together. Built once per process.
type Container struct {
	Redis      *redis.Client
	DB         *pgxpool.Pool
	Logger     *logrus.Logger
	Catalog    *services.CatalogClient
	Favourites *storage.FavouritesStore
	Sessions   *storage.SessionStore
	Store      *store.Store
}

func New(ctx context.Context) (*Container, error) {
	log := logger.Get()

	c := &Container{Logger: log}

	kv, err := c.newKV(ctx)
	if err != nil {
		return nil, err
	}

	baseURL, apiKey := config.CatalogConfig()
	if apiKey == "" {
		c.Close()
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	c.Catalog = services.NewCatalogClient(&services.CatalogConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Timeout: 30 * time.Second,
		Logger:  log,
	})
	c.Favourites = storage.NewFavouritesStore(kv, log)
	c.Sessions = storage.NewSessionStore(kv, log)
	c.Store = store.New(store.Config{
		Catalog:    c.Catalog,
		Favourites: c.Favourites,
		Logger:     log,
	})

	if err := c.restoreSession(ctx); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) newKV(ctx context.Context) (repository.KV, error) {
	backend := config.StorageBackend()
	switch backend {
	case "redis":
		client, err := cache.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = client
		return repository.NewRedisKV(client), nil
	case "postgres":
		pool, err := database.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		if err := database.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		c.DB = pool
		return repository.NewPostgresKV(pool), nil
	case "memory":
		c.Logger.Warn("Using in-memory storage, favourites will not survive restarts")
		return repository.NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// restoreSession reattaches the persisted identity, if any, so the
// favourites partition is live before the first request arrives.
func (c *Container) restoreSession(ctx context.Context) error {
	identity, err := c.Sessions.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to restore session: %w", err)
	}
	if identity == nil {
		return nil
	}
	if err := c.Store.SetActiveIdentity(ctx, identity.Email); err != nil {
		return fmt.Errorf("failed to restore favourites: %w", err)
	}
	c.Logger.WithField("email", identity.Email).Info("Session restored")
	return nil
}

func (c *Container) Close() {
	if c.Redis != nil {
		c.Redis.Close()
		c.Logger.Info("Redis connection closed")
	}
	if c.DB != nil {
		c.DB.Close()
		c.Logger.Info("Database connection closed")
	}
}
