package duckdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDB_CreatesSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := NewDB(Settings{
		DbPath: dbPath,
	})
	require.NoError(t, err)
	require.NotNil(t, db)

	defer func() {
		err := db.Close()
		if err != nil {
			t.Errorf("failed to close database connection: %v", err)
		}
	}()

	_, err = db.Exec(
		`INSERT INTO score_snapshots (run_id, status, metric_count, question_count, payload) VALUES (?, ?, ?, ?, ?)`,
		"run-001", "completed", 14, 30, "{}",
	)
	require.NoError(t, err)

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM score_snapshots WHERE run_id = ?", "run-001").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNewDB_EmptyPath(t *testing.T) {
	db, err := NewDB(Settings{})
	assert.Error(t, err)
	assert.Nil(t, db)
}

func TestConn_PrefersTransaction(t *testing.T) {
	db, err := NewDB(Settings{DbPath: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	assert.Equal(t, Querier(db), Conn(ctx, db))

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	assert.Equal(t, Querier(tx), Conn(WithTransaction(ctx, tx), db))
}
