package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/novatech/taskflow/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockDBTX is a no-op store.DBTX for constructor tests.
type mockDBTX struct{}

func (m *mockDBTX) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return nil, nil
}

func (m *mockDBTX) PrepareContext(ctx context.Context, query string) (*sql.Stmt, error) {
	return nil, nil
}

func (m *mockDBTX) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return nil
}

func TestNewPostgresTaskStore(t *testing.T) {
	tests := []struct {
		name string
		db   store.DBTX
	}{
		{name: "sql_db", db: &sql.DB{}},
		{name: "mock_dbtx", db: &mockDBTX{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewPostgresTaskStore(tt.db, nil)
			require.NotNil(t, s)
			assert.NotNil(t, s.db)
			assert.NotNil(t, s.logger)
		})
	}
}

func TestNewPostgresTaskStore_NilDBPanics(t *testing.T) {
	assert.Panics(t, func() {
		NewPostgresTaskStore(nil, nil)
	})
}

func TestPostgresTaskStore_WithTx(t *testing.T) {
	// A real *sql.Tx needs a live connection; verify the returned store is a
	// distinct instance bound to the transaction handle.
	original := NewPostgresTaskStore(&sql.DB{}, nil)

	var tx *sql.Tx
	txStore, ok := original.WithTx(tx).(*PostgresTaskStore)
	require.True(t, ok)
	assert.NotSame(t, original, txStore)
	assert.Equal(t, original.logger, txStore.logger)
}
