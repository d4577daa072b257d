package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const ScoreSnapshotSchema = `
	CREATE TABLE IF NOT EXISTS score_snapshots (
		run_id VARCHAR NOT NULL PRIMARY KEY,
		status VARCHAR NOT NULL,
		metric_count INTEGER NOT NULL,
		question_count INTEGER NOT NULL,
		payload VARCHAR NOT NULL,
		cached_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
`

var bootQueries = []string{
	ScoreSnapshotSchema,
}

type Settings struct {
	DbPath string
}

// NewDB opens the local cache database and makes sure the schema exists on
// every new connection.
func NewDB(settings Settings) (*sql.DB, error) {
	if settings.DbPath == "" {
		return nil, fmt.Errorf("duckdb path is empty")
	}

	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", settings.DbPath), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
