package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/smallnest/policygraph/store"
)

// SqliteGraphStore implements store.GraphStore using SQLite.
type SqliteGraphStore struct {
	db        *sql.DB
	tableName string
}

// SqliteOptions configuration for the SQLite connection.
type SqliteOptions struct {
	Path      string
	TableName string // Default "graphs"
}

// NewSqliteGraphStore opens the database and creates the schema if needed.
func NewSqliteGraphStore(opts SqliteOptions) (*SqliteGraphStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "graphs"
	}

	s := &SqliteGraphStore{db: db, tableName: tableName}
	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema creates the backing table if it doesn't exist.
func (s *SqliteGraphStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			graph TEXT NOT NULL,
			metadata TEXT,
			timestamp DATETIME NOT NULL,
			version INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_%s_name ON %s (name);
	`, s.tableName, s.tableName, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqliteGraphStore) Close() error {
	return s.db.Close()
}

// Save stores a record, replacing any record with the same ID.
func (s *SqliteGraphStore) Save(ctx context.Context, record *store.Record) error {
	metadataJSON, err := json.Marshal(record.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, graph, metadata, timestamp, version)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			graph = excluded.graph,
			metadata = excluded.metadata,
			timestamp = excluded.timestamp,
			version = excluded.version
	`, s.tableName)

	_, err = s.db.ExecContext(ctx, query,
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
func (s *SqliteGraphStore) Load(ctx context.Context, id string) (*store.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, name, graph, metadata, timestamp, version FROM %s WHERE id = ?
	`, s.tableName)

	record, err := scanRecord(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("record not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load record: %w", err)
	}
	return record, nil
}

// List returns all records stored under a name, oldest first.
func (s *SqliteGraphStore) List(ctx context.Context, name string) ([]*store.Record, error) {
	query := fmt.Sprintf(`
		SELECT id, name, graph, metadata, timestamp, version FROM %s
		WHERE name = ? ORDER BY version ASC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query, name)
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
func (s *SqliteGraphStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

// Clear removes all records stored under a name.
func (s *SqliteGraphStore) Clear(ctx context.Context, name string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE name = ?`, s.tableName)
	if _, err := s.db.ExecContext(ctx, query, name); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanRecord(row scannable) (*store.Record, error) {
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
