package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/eval-atlas/pkg/models/store"
	"github.com/de-tools/eval-atlas/pkg/store/duckdb"
)

var ErrNotFound = errors.New("snapshot not found")

// Store caches the scores of runs that reached a terminal status. Scores do
// not change after that, so a cached payload can replace a scores fetch.
type Store interface {
	Save(ctx context.Context, snapshot store.ScoreSnapshot) error
	Get(ctx context.Context, runID string) (*store.ScoreSnapshot, error)
	List(ctx context.Context) ([]store.ScoreSnapshot, error)
	Delete(ctx context.Context, runID string) error
}

type snapshotStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &snapshotStore{db: db}, nil
}

func (s *snapshotStore) Save(ctx context.Context, snapshot store.ScoreSnapshot) error {
	query := `
		INSERT OR REPLACE INTO score_snapshots (
			run_id, status, metric_count, question_count, payload, cached_at
		) VALUES (?, ?, ?, ?, ?, ?)`

	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, query,
		snapshot.RunID,
		snapshot.Status,
		snapshot.MetricCount,
		snapshot.QuestionCount,
		string(snapshot.Payload),
		snapshot.CachedAt,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", snapshot.RunID, err)
	}
	return nil
}

func (s *snapshotStore) Get(ctx context.Context, runID string) (*store.ScoreSnapshot, error) {
	query := `
		SELECT run_id, status, metric_count, question_count, payload, cached_at
		FROM score_snapshots
		WHERE run_id = ?`

	var (
		snap    store.ScoreSnapshot
		payload string
	)
	err := duckdb.Conn(ctx, s.db).QueryRowContext(ctx, query, runID).Scan(
		&snap.RunID,
		&snap.Status,
		&snap.MetricCount,
		&snap.QuestionCount,
		&payload,
		&snap.CachedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot %s: %w", runID, err)
	}
	snap.Payload = []byte(payload)
	return &snap, nil
}

// List returns snapshot metadata, newest first. Payloads are not loaded.
func (s *snapshotStore) List(ctx context.Context) ([]store.ScoreSnapshot, error) {
	query := `
		SELECT run_id, status, metric_count, question_count, cached_at
		FROM score_snapshots
		ORDER BY cached_at DESC, run_id`

	rows, err := duckdb.Conn(ctx, s.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]store.ScoreSnapshot, 0)
	for rows.Next() {
		var snap store.ScoreSnapshot
		if err := rows.Scan(&snap.RunID, &snap.Status, &snap.MetricCount, &snap.QuestionCount, &snap.CachedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}

func (s *snapshotStore) Delete(ctx context.Context, runID string) error {
	_, err := duckdb.Conn(ctx, s.db).ExecContext(ctx, `DELETE FROM score_snapshots WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("delete snapshot %s: %w", runID, err)
	}
	return nil
}
