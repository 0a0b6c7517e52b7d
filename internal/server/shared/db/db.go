// Package db opens the configured note storage backend and hands back the
// repository together with whatever must be closed on shutdown.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/sealnote/internal/filex"
	"github.com/dmitrijs2005/sealnote/internal/server/config"
	"github.com/dmitrijs2005/sealnote/internal/server/repositories/notes"
	"github.com/dmitrijs2005/sealnote/internal/server/repositories/repomanager"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Storage is an opened backend.
//
// SQL and Manager are nil for the mongo and memory backends.
type Storage struct {
	Notes   notes.Repository
	SQL     *sql.DB
	Manager repomanager.RepositoryManager
	close   func(context.Context) error
}

// Close releases the underlying connection pool, if any.
func (s *Storage) Close(ctx context.Context) error {
	if s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the backend named by cfg.Storage and prepares it:
// migrations for SQL databases, indexes for MongoDB.
func Open(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return &Storage{Notes: notes.NewMemoryRepository()}, nil
	case config.StorageMongo:
		return openMongo(ctx, cfg.DatabaseDSN, cfg.MongoDatabase)
	}

	m, ok := repomanager.New(cfg.Storage)
	if !ok {
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
	return openSQL(ctx, m, cfg.DatabaseDSN)
}

func openSQL(ctx context.Context, m repomanager.RepositoryManager, dsn string) (*Storage, error) {
	if m.DriverName() == "sqlite" {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	conn, err := sql.Open(m.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", m.DriverName(), err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping %s: %w", m.DriverName(), err)
	}

	if err := m.RunMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	if m.DriverName() == "sqlite" {
		// SQLite allows a single writer
		conn.SetMaxOpenConns(1)
	}

	return &Storage{
		Notes:   m.Notes(conn),
		SQL:     conn,
		Manager: m,
		close:   func(context.Context) error { return conn.Close() },
	}, nil
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, dbName string) (*mongo.Database, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(dbName), nil
}

func openMongo(ctx context.Context, uri, dbName string) (*Storage, error) {
	database, err := Connect(ctx, uri, dbName)
	if err != nil {
		return nil, err
	}

	repo := notes.NewMongoRepository(database)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = database.Client().Disconnect(ctx)
		return nil, err
	}

	return &Storage{
		Notes: repo,
		close: func(ctx context.Context) error { return database.Client().Disconnect(ctx) },
	}, nil
}
