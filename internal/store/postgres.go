package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/cam71101/vinted-scanner/pkg/types"
)

const defaultPoolSize = 4

// PostgresStore keeps the seen-set as rows of seen_listings sharing a
// store_key. Rows carry first_seen_at, which survives across saves.
//
// Methods need a live Postgres and are covered by integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
	key  string
}

// NewPostgresStore creates a pooled store. The pool connects lazily, so an
// unreachable database surfaces on the first Load or Save.
func NewPostgresStore(ctx context.Context, connString, key string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	return &PostgresStore{pool: pool, key: key}, nil
}

// Name implements SeenStore.
func (s *PostgresStore) Name() string { return "postgres" }

// Close shuts down the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Load returns every identifier stored under the key.
func (s *PostgresStore) Load(ctx context.Context) (domain.SeenSet, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT listing_id FROM seen_listings WHERE store_key = @key`,
		pgx.NamedArgs{"key": s.key},
	)
	if err != nil {
		return nil, fmt.Errorf("querying seen listings: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scanning seen listings: %w", err)
	}

	return domain.NewSeenSet(ids...), nil
}

// Save replaces the stored set in one transaction. Identifiers already
// present keep their first_seen_at.
func (s *PostgresStore) Save(ctx context.Context, ids domain.SeenSet) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	args := pgx.NamedArgs{
		"key": s.key,
		"ids": ids.IDs(),
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM seen_listings
		WHERE store_key = @key AND NOT (listing_id = ANY(@ids))
	`, args); err != nil {
		return fmt.Errorf("pruning seen listings: %w", err)
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO seen_listings (store_key, listing_id)
		SELECT @key, unnest(@ids::text[])
		ON CONFLICT (store_key, listing_id) DO NOTHING
	`, args); err != nil {
		return fmt.Errorf("inserting seen listings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing seen listings: %w", err)
	}
	return nil
}
