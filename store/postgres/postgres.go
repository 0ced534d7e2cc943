package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallnest/policygraph/store"
)

// DBPool is the subset of pgxpool.Pool used by the store. Declared as an
// interface so tests can substitute a mock pool.
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresGraphStore implements store.GraphStore using PostgreSQL.
type PostgresGraphStore struct {
	pool      DBPool
	tableName string
}

// PostgresOptions configuration for the Postgres connection.
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "graphs"
}

// NewPostgresGraphStore creates a store with a fresh connection pool.
func NewPostgresGraphStore(ctx context.Context, opts PostgresOptions) (*PostgresGraphStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	return NewPostgresGraphStoreWithPool(pool, opts.TableName), nil
}

// NewPostgresGraphStoreWithPool creates a store around an existing pool.
// Useful for testing with mocks.
func NewPostgresGraphStoreWithPool(pool DBPool, tableName string) *PostgresGraphStore {
	if tableName == "" {
		tableName = "graphs"
	}
	return &PostgresGraphStore{pool: pool, tableName: tableName}
}

// InitSchema creates the backing table if it doesn't exist.
func (s *PostgresGraphStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			graph JSONB NOT NULL,
			metadata JSONB,
			timestamp TIMESTAMPTZ NOT NULL,
			version INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_name ON %s (name);
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresGraphStore) Close() {
	s.pool.Close()
}

// Save stores a record, replacing any record with the same ID.
func (s *PostgresGraphStore) Save(ctx context.Context, record *store.Record) error {
	metadataJSON, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, graph, metadata, timestamp, version)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			graph = EXCLUDED.graph,
			metadata = EXCLUDED.metadata,
			timestamp = EXCLUDED.timestamp,
			version = EXCLUDED.version
	`, s.tableName)

	_, err = s.pool.Exec(ctx, query,
		record.ID,
		record.Name,
		string(record.Graph),
		string(metadataJSON),
		record.Timestamp,
		record.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}
	return nil
}

// Load retrieves a record by ID.
func (s *PostgresGraphStore) Load(ctx context.Context, id string) (*store.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, name, graph, metadata, timestamp, version FROM %s WHERE id = $1
	`, s.tableName)

	record, err := scanRecord(s.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("record not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return record, nil
}

// List returns all records stored under a name, oldest first.
func (s *PostgresGraphStore) List(ctx context.Context, name string) ([]*store.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, name, graph, metadata, timestamp, version FROM %s
		WHERE name = $1 ORDER BY version ASC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*store.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes a record.
func (s *PostgresGraphStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)
	if _, err := s.pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// Clear removes all records stored under a name.
func (s *PostgresGraphStore) Clear(ctx context.Context, name string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE name = $1`, s.tableName)
	if _, err := s.pool.Exec(ctx, query, name); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

func scanRecord(row pgx.Row) (*store.Record, error) {
	var record store.Record
	var graphJSON, metadataJSON string
	if err := row.Scan(&record.ID, &record.Name, &graphJSON, &metadataJSON, &record.Timestamp, &record.Version); err != nil {
		return nil, err
	}
	record.Graph = []byte(graphJSON)
	if metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &record.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
		}
	}
	return &record, nil
}
