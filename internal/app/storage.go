package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/georgemunganga/stockbook-backend/internal/config"
	"github.com/georgemunganga/stockbook-backend/internal/modules/sale"
	"github.com/georgemunganga/stockbook-backend/internal/modules/stock"
	"github.com/georgemunganga/stockbook-backend/internal/modules/store"
	"github.com/georgemunganga/stockbook-backend/internal/platform/database"
	logx "github.com/georgemunganga/stockbook-backend/pkg/logger"
)

// Storage groups the repositories of one storage driver.
type Storage struct {
	Stores     store.Repository
	Stock      stock.Repository
	Sales      sale.Repository
	Transactor sale.Transactor

	db *sql.DB
}

// NewMemoryStorage keeps everything in process memory. Data is lost on restart.
func NewMemoryStorage() *Storage {
	return &Storage{
		Stores:     store.NewMemoryRepository(),
		Stock:      stock.NewMemoryRepository(),
		Sales:      sale.NewMemoryRepository(),
		Transactor: database.NopTransactor{},
	}
}

// NewPostgresStorage connects, optionally migrates, and builds the PostgreSQL repositories.
func NewPostgresStorage(ctx context.Context, cfg config.Database) (*Storage, error) {
	db, err := database.Open(ctx, cfg.URL)
	if err != nil {
		return nil, err
	}

	if cfg.Migrate {
		if err := database.Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		logx.Info().Msg("database migrations applied")
	}

	gdb, err := database.OpenGorm(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Storage{
		Stores:     store.NewGormRepository(gdb),
		Stock:      stock.NewPostgresRepository(db),
		Sales:      sale.NewPostgresRepository(db),
		Transactor: database.NewTransactor(db),
		db:         db,
	}, nil
}

// OpenStorage picks the driver named in the configuration.
func OpenStorage(ctx context.Context, cfg config.Database) (*Storage, error) {
	switch cfg.Driver {
	case config.StorageMemory:
		logx.Warn().Msg("using in-memory storage, data will not survive a restart")
		return NewMemoryStorage(), nil
	case config.StoragePostgres:
		return NewPostgresStorage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Ping reports whether the backing database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	return s.db.PingContext(ctx)
}

func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
