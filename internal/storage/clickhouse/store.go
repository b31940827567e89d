// Package clickhouse implements the policy batch store on ClickHouse.
package clickhouse

import (
	"context"
	"crypto/tls"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/vivekshiftai/integration-of-firewall/internal/config"
	"github.com/vivekshiftai/integration-of-firewall/internal/domain"
	"github.com/vivekshiftai/integration-of-firewall/internal/storage"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const insertPolicySQL = `
INSERT INTO firewall_policies (
	policy_id, name, action, status,
	source_interfaces, destination_interfaces, source_addresses, destination_addresses, services,
	schedule, log_traffic, comments, policy_type,
	raw_data, data_source, batch_id, retrieved_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// Store implements the storage.Store interface on ClickHouse.
type Store struct {
	db  *sqlx.DB
	cfg config.ClickHouseConfig
}

// Ensure Store implements storage.Store.
var _ storage.Store = (*Store)(nil)

// New creates a ClickHouse store. The connection is established lazily so
// the service can start while the database is unreachable.
func New(cfg config.ClickHouseConfig) *Store {
	db := sqlx.NewDb(openDB(cfg, cfg.Database), "clickhouse")
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)
	return &Store{db: db, cfg: cfg}
}

// openDB builds a database handle for the given database name using the
// native protocol.
func openDB(cfg config.ClickHouseConfig, database string) *sql.DB {
	opts := &clickhouse.Options{
		Addr: []string{cfg.Addr()},
		Auth: clickhouse.Auth{
			Database: database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		DialTimeout: 10 * time.Second,
		Compression: &clickhouse.Compression{Method: clickhouse.CompressionLZ4},
	}
	if cfg.Secure {
		opts.TLS = &tls.Config{InsecureSkipVerify: !cfg.Verify}
	}
	return clickhouse.OpenDB(opts)
}

// EnsureSchema creates the target database and the firewall_policies table
// if they do not exist. It is idempotent and runs before every persist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := s.ensureDatabase(ctx); err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("clickhouse"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db.DB, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// ensureDatabase creates the configured database through a short-lived
// connection to the default database, mirroring first-run bootstrap done
// by hand.
func (s *Store) ensureDatabase(ctx context.Context) error {
	admin := openDB(s.cfg, "default")
	defer admin.Close()

	query := fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", s.cfg.Database)
	if _, err := admin.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("creating database %s: %w", s.cfg.Database, err)
	}
	return nil
}

// InsertBatch appends the batch as one native insert block. Any row failure
// aborts the whole batch and reports zero rows written.
func (s *Store) InsertBatch(ctx context.Context, batch *domain.RetrievalBatch) (int, error) {
	if len(batch.Policies) == 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning batch: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, insertPolicySQL)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing insert: %w", err)
	}

	for _, p := range batch.Policies {
		if _, err := stmt.ExecContext(ctx,
			p.PolicyID, p.Name, p.Action, p.Status,
			p.SourceInterfaces, p.DestinationInterfaces, p.SourceAddresses, p.DestinationAddresses, p.Services,
			p.Schedule, p.LogTraffic, p.Comments, p.PolicyType,
			p.RawData, string(batch.Source), batch.ID.String(), p.RetrievedAt,
		); err != nil {
			stmt.Close()
			tx.Rollback()
			return 0, fmt.Errorf("appending policy %d: %w", p.PolicyID, err)
		}
	}

	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("closing batch statement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing batch: %w", err)
	}

	return len(batch.Policies), nil
}

// CountPolicies returns the total number of stored policy rows.
func (s *Store) CountPolicies(ctx context.Context) (uint64, error) {
	var count uint64
	if err := s.db.GetContext(ctx, &count, "SELECT count() FROM firewall_policies"); err != nil {
		return 0, fmt.Errorf("counting policies: %w", err)
	}
	return count, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
