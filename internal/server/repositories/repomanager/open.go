package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
)

// sqlxOpen is a seam for testing the connection step.
var sqlxOpen = sqlx.Open

// Open selects the persistence mode for the lifetime of the process.
//
// With a DSN it connects, pings and migrates within cfg.DBConnectTimeout and
// returns a PostgresRepositoryManager. An empty DSN, or any failure along the
// way, yields a MemoryRepositoryManager and a warning. Open never fails.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) RepositoryManager {
	log = log.With("module", "repomanager")

	if cfg.DatabaseDSN == "" {
		log.Warn(ctx, "database DSN not set, using in-memory stores")
		return NewMemoryRepositoryManager()
	}

	m, err := openPostgres(ctx, cfg)
	if err != nil {
		log.Warn(ctx, "falling back to in-memory stores, data will not persist", "error", err)
		return NewMemoryRepositoryManager()
	}

	log.Info(ctx, "connected to database", "max_conns", cfg.DBMaxConns)
	return m
}

func openPostgres(ctx context.Context, cfg *config.Config) (*PostgresRepositoryManager, error) {
	db, err := sqlxOpen("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	maxConns := cfg.DBMaxConns
	if maxConns < 1 {
		maxConns = 1
	}
	db.SetMaxOpenConns(maxConns)
	db.SetMaxIdleConns(maxConns)

	if cfg.DBConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DBConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	m := NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}
