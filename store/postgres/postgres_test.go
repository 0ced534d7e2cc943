package postgres

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/policygraph/store"
)

func TestPostgresGraphStore_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresGraphStoreWithPool(mock, "graphs")

	record := &store.Record{
		ID:        "rec-1",
		Name:      "hydro",
		Graph:     json.RawMessage(`{"root":0,"nodes":[{"index":0}]}`),
		Metadata:  map[string]any{"builder": "linear"},
		Timestamp: time.Now(),
		Version:   1,
	}
	metadataJSON, _ := json.Marshal(record.Metadata)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO graphs")).
		WithArgs(
			record.ID,
			record.Name,
			string(record.Graph),
			string(metadataJSON),
			record.Timestamp,
			record.Version,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = s.Save(context.Background(), record)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGraphStore_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresGraphStoreWithPool(mock, "graphs")

	timestamp := time.Now()
	graphJSON := `{"root":0,"nodes":[{"index":0}]}`
	metadataJSON := `{"builder":"linear"}`

	rows := pgxmock.NewRows([]string{"id", "name", "graph", "metadata", "timestamp", "version"}).
		AddRow("rec-1", "hydro", graphJSON, metadataJSON, timestamp, 1)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, graph, metadata, timestamp, version FROM graphs WHERE id = $1")).
		WithArgs("rec-1").
		WillReturnRows(rows)

	loaded, err := s.Load(context.Background(), "rec-1")
	require.NoError(t, err)
	assert.Equal(t, "rec-1", loaded.ID)
	assert.Equal(t, "hydro", loaded.Name)
	assert.Equal(t, 1, loaded.Version)
	assert.JSONEq(t, graphJSON, string(loaded.Graph))
	assert.Equal(t, "linear", loaded.Metadata["builder"])

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGraphStore_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresGraphStoreWithPool(mock, "graphs")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM graphs WHERE id = $1")).
		WithArgs("rec-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	err = s.Delete(context.Background(), "rec-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
