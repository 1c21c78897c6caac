package di

import (
	"context"
	"fmt"
	"sync"
	"time"

	"metadata-backoffice/internal/backoffice"
	"metadata-backoffice/internal/backoffice/adapter/persistence"
	"metadata-backoffice/internal/backoffice/config"
	"metadata-backoffice/internal/backoffice/domain/repository"
	"metadata-backoffice/internal/shared/docstore"
	"metadata-backoffice/internal/shared/logger"

	"github.com/redis/go-redis/v9"
)

// Container owns the process-wide resources and the modules built on them.
type Container struct {
	mu sync.RWMutex

	Config *config.Config
	Logger logger.Logger

	// Storage
	Store       docstore.DocumentStore
	RedisClient *redis.Client
	ChangeLog   repository.ChangeLog

	// Modules
	BackofficeModule *backoffice.BackofficeModule
}

// NewContainer creates an empty container for cfg.
func NewContainer(cfg *config.Config, log logger.Logger) *Container {
	return &Container{
		Config: cfg,
		Logger: log,
	}
}

// InitializeStorage opens the configured document store and, when enabled, the Redis change log.
func (c *Container) InitializeStorage(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	c.Store = store

	if c.Config.Redis.Enabled {
		client := config.NewRedisClient(c.Config.Redis)
		if err := client.Ping(ctx).Err(); err != nil {
			// The change log is optional; a missing Redis only disables history.
			c.Logger.Warn("Redis unavailable, change log disabled", "addr", c.Config.Redis.GetAddr(), "error", err)
			_ = client.Close()
		} else {
			c.RedisClient = client
			c.ChangeLog = persistence.NewRedisChangeLog(client, c.Config.Redis.StreamName, c.Config.Redis.StreamMaxLength, c.Logger)
			c.Logger.Info("Redis change log connected", "addr", c.Config.Redis.GetAddr(), "stream", c.Config.Redis.StreamName)
		}
	}
	return nil
}

func (c *Container) openStore(ctx context.Context) (docstore.DocumentStore, error) {
	switch c.Config.Storage.Backend {
	case config.StorageBackendMongo:
		client, err := docstore.ConnectMongo(ctx, c.Config.Storage.MongoDBURI)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("MongoDB document store connected", "database", c.Config.Storage.MongoDBDatabase)
		return docstore.NewMongoStore(client, c.Config.Storage.MongoDBDatabase, c.Config.Storage.MongoDBCollection, c.Logger), nil
	default:
		store, err := docstore.NewFileStore(c.Config.Storage.DataDir, c.Logger)
		if err != nil {
			return nil, err
		}
		c.Logger.Info("File document store ready", "dir", c.Config.Storage.DataDir)
		return store, nil
	}
}

// InitializeBackoffice builds the backoffice module over the opened storage.
func (c *Container) InitializeBackoffice() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Store == nil {
		return fmt.Errorf("storage must be initialized before the backoffice module")
	}
	c.BackofficeModule = backoffice.NewBackofficeModule(c.Config, c.Store, c.ChangeLog, c.Logger)
	return nil
}

// GetBackofficeModule returns the backoffice module instance
func (c *Container) GetBackofficeModule() *backoffice.BackofficeModule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.BackofficeModule
}

// HealthCheck pings the document store and, when connected, Redis.
func (c *Container) HealthCheck(ctx context.Context) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Store == nil {
		return fmt.Errorf("document store not initialized")
	}
	if err := c.Store.Ping(ctx); err != nil {
		return fmt.Errorf("document store health check failed: %w", err)
	}

	if c.ChangeLog != nil {
		if err := c.ChangeLog.Ping(ctx); err != nil {
			return fmt.Errorf("Redis health check failed: %w", err)
		}
	}
	return nil
}

// Cleanup releases resources in reverse order of initialization.
func (c *Container) Cleanup(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error

	if c.BackofficeModule != nil {
		c.BackofficeModule.Stop()
		c.BackofficeModule = nil
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis client: %w", err))
		}
		c.RedisClient = nil
		c.ChangeLog = nil
	}

	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close document store: %w", err))
		}
		c.Store = nil
	}

	if len(errs) > 0 {
		return fmt.Errorf("cleanup errors: %v", errs)
	}
	return nil
}

// Close gracefully shuts down all services in the container with timeout
func (c *Container) Close() error {
	c.Logger.Info("Closing DI Container resources...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.Cleanup(ctx); err != nil {
		c.Logger.Warn("Cleanup errors occurred", "error", err)
		return err
	}

	c.Logger.Info("DI Container resources closed.")
	return nil
}
