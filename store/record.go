package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Record is a persisted graph document. Graph holds the JSON encoding
// produced by graph.Graph's MarshalJSON; Name groups revisions of the same
// model.
type Record struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Graph     json.RawMessage `json:"graph"`
	Metadata  map[string]any  `json:"metadata"`
	Timestamp time.Time       `json:"timestamp"`
	Version   int             `json:"version"`
}

// NewRecord creates a record for an encoded graph with a fresh ID and the
// current timestamp.
func NewRecord(name string, encoded []byte, version int) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Graph:     encoded,
		Timestamp: time.Now(),
		Version:   version,
	}
}

// GraphStore is the interface for graph persistence backends.
type GraphStore interface {
	// Save stores a record, replacing any record with the same ID.
	Save(ctx context.Context, record *Record) error

	// Load retrieves a record by ID.
	Load(ctx context.Context, id string) (*Record, error)

	// List returns all records stored under a name.
	List(ctx context.Context, name string) ([]*Record, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// Clear removes all records stored under a name.
	Clear(ctx context.Context, name string) error
}
