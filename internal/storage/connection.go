// Path: internal/storage/connection.go
package storage

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
	"go.uber.org/zap"

	"article-browser/internal/config"
	"article-browser/internal/domain"
)

// defaultDatabaseName is what the driver falls back to when neither the
// config nor the connection string names a database.
const defaultDatabaseName = "test"

// Connector owns the single process-wide client to the document store. The
// client is created on first use and reused by every later call.
type Connector struct {
	cfg    config.DatabaseConfig
	logger *zap.Logger

	mu     sync.Mutex
	client *mongo.Client
	dbName string
}

// NewConnector validates the settings without opening a connection.
func NewConnector(cfg config.DatabaseConfig, logger *zap.Logger) (*Connector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Connector{cfg: cfg, logger: logger}, nil
}

// Database returns a handle to the configured database, connecting on the first call.
// A failed attempt is not cached, so the next call tries again.
func (c *Connector) Database(ctx context.Context) (*mongo.Database, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		if err := c.connect(ctx); err != nil {
			return nil, err
		}
	}
	return c.client.Database(c.dbName), nil
}

// DatabaseName resolves the database name without connecting.
func (c *Connector) DatabaseName() string {
	return resolveDatabaseName(c.cfg)
}

// Ping checks that the store answers, connecting first if needed.
func (c *Connector) Ping(ctx context.Context) error {
	db, err := c.Database(ctx)
	if err != nil {
		return err
	}
	if err := db.Client().Ping(ctx, nil); err != nil {
		return fmt.Errorf("%w: ping failed: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}

// Close disconnects the client if one was created.
func (c *Connector) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client == nil {
		return nil
	}
	err := c.client.Disconnect(ctx)
	c.client = nil
	return err
}

func (c *Connector) connect(ctx context.Context) error {
	opts := options.Client().ApplyURI(c.cfg.URI)
	if timeout := c.cfg.ConnectTimeout(); timeout > 0 {
		opts.SetConnectTimeout(timeout).SetServerSelectionTimeout(timeout)
	}

	c.logger.Info("Connecting to MongoDB...")
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("%w: connect: %v", domain.ErrStorageUnavailable, err)
	}

	c.client = client
	c.dbName = resolveDatabaseName(c.cfg)
	c.logger.Info("MongoDB client ready", zap.String("database", c.dbName))
	return nil
}

func resolveDatabaseName(cfg config.DatabaseConfig) string {
	if cfg.Name != "" {
		return cfg.Name
	}
	if cs, err := connstring.Parse(cfg.URI); err == nil && cs.Database != "" {
		return cs.Database
	}
	return defaultDatabaseName
}
