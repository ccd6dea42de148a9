package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds shared configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds environment-prefixed table names
type TableNames struct {
	ChatHistory string
	CSVData     string
	Diary       string
	Users       string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		ChatHistory: fmt.Sprintf("%schat_history", prefix),
		CSVData:     fmt.Sprintf("%suser_csv_data", prefix),
		Diary:       fmt.Sprintf("%sdiary", prefix),
		Users:       fmt.Sprintf("%suser_profile", prefix),
	}
}

// CreateConnectionPool creates a pgx connection pool and verifies connectivity.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into SQL before
// statements reach the database, so each environment gets its own prepared
// statements and prefixing stays safe under the default exec mode.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}
