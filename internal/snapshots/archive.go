// Package snapshots archives full game state snapshots to an embedded
// SQLite database at a fixed interval, for post-game review of how a
// match unfolded tick by tick.
package snapshots

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"dota-gsi-assistant/internal/gamestate"
	"dota-gsi-assistant/internal/metrics"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	match_id   TEXT NOT NULL,
	created_at TEXT NOT NULL,
	state      TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_match ON snapshots(match_id, created_at);
`

// Snapshot is one archived state row.
type Snapshot struct {
	ID        int64
	MatchID   string
	CreatedAt time.Time
	State     gamestate.GameState
}

// Archive persists interval-spaced state snapshots. Save is gated by
// the interval, so it can be offered the state on every tick.
type Archive struct {
	db       *sql.DB
	interval time.Duration

	mu   sync.Mutex
	last time.Time
}

// Open creates or opens the archive database at path.
func Open(path string, interval time.Duration) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshot schema: %w", err)
	}
	return &Archive{db: db, interval: interval}, nil
}

// Save archives the state unless the interval since the previous
// snapshot has not elapsed yet, in which case it is a no-op.
func (a *Archive) Save(ctx context.Context, matchID string, state gamestate.GameState) error {
	a.mu.Lock()
	if time.Since(a.last) < a.interval {
		a.mu.Unlock()
		return nil
	}
	a.last = time.Now()
	a.mu.Unlock()

	raw, err := json.Marshal(state)
	if err != nil {
		metrics.SnapshotsSaved.WithLabelValues("error").Inc()
		return fmt.Errorf("encoding snapshot: %w", err)
	}

	_, err = a.db.ExecContext(ctx,
		`INSERT INTO snapshots (match_id, created_at, state) VALUES (?, ?, ?)`,
		matchID, time.Now().UTC().Format(time.RFC3339), string(raw))
	if err != nil {
		metrics.SnapshotsSaved.WithLabelValues("error").Inc()
		return fmt.Errorf("inserting snapshot: %w", err)
	}

	metrics.SnapshotsSaved.WithLabelValues("ok").Inc()
	return nil
}

// Recent returns up to limit snapshots, newest first.
func (a *Archive) Recent(ctx context.Context, limit int) ([]Snapshot, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, match_id, created_at, state FROM snapshots ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var (
			snap      Snapshot
			createdAt string
			raw       string
		)
		if err := rows.Scan(&snap.ID, &snap.MatchID, &createdAt, &raw); err != nil {
			return nil, fmt.Errorf("scanning snapshot: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339, createdAt); err == nil {
			snap.CreatedAt = ts
		}
		if err := json.Unmarshal([]byte(raw), &snap.State); err != nil {
			return nil, fmt.Errorf("decoding snapshot %d: %w", snap.ID, err)
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

func (a *Archive) Close() error {
	return a.db.Close()
}
