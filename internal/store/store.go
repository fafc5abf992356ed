// Package store persists the wellbeing snapshot and activity history in a
// local SQLite database. Saves are last-write-wins; the activity table's
// primary key gives storage-level dedup on top of the in-memory check.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"kanitomo/internal/wellbeing"
)

const schema = `
CREATE TABLE IF NOT EXISTS state (
  id          INTEGER PRIMARY KEY CHECK (id = 1),
  happiness   INTEGER NOT NULL,
  streak      INTEGER NOT NULL,
  best_streak INTEGER NOT NULL,
  last_seen   INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS activity (
  activity_id TEXT PRIMARY KEY,
  source_id   TEXT NOT NULL,
  source_name TEXT NOT NULL,
  ts          INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS activity_ts ON activity (ts);
CREATE TABLE IF NOT EXISTS score (
  game       TEXT NOT NULL,
  points     INTEGER NOT NULL,
  ts         INTEGER NOT NULL
);
`

// historyWindow bounds how much history is loaded back; the streak walk never
// looks further than a year, so older rows stay on disk but out of memory.
const historyWindow = 400 * 24 * time.Hour

// TimeNow returns the current time. Tests swap it to pin the history window.
var TimeNow = func() time.Time {
	return time.Now()
}

// Store is a SQLite-backed snapshot store.
type Store struct {
	db *sql.DB
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// Open opens (creating if needed) the database at path and ensures the
// schema.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Load reads the snapshot. The second return is false on a first run, when no
// state row exists yet.
func (s *Store) Load(ctx context.Context) (wellbeing.Snapshot, bool, error) {
	var snap wellbeing.Snapshot
	var lastSeen int64
	err := s.db.QueryRowContext(ctx,
		`SELECT happiness, streak, best_streak, last_seen FROM state WHERE id = 1`,
	).Scan(&snap.Happiness, &snap.Streak, &snap.BestStreak, &lastSeen)
	if err == sql.ErrNoRows {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("load state: %w", err)
	}
	snap.LastSeen = fromMillis(lastSeen)

	cutoff := toMillis(TimeNow().Add(-historyWindow))
	rows, err := s.db.QueryContext(ctx,
		`SELECT activity_id, source_id, source_name, ts FROM activity WHERE ts >= ? ORDER BY ts`,
		cutoff,
	)
	if err != nil {
		return snap, false, fmt.Errorf("load activity history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec wellbeing.ActivityRecord
		var ts int64
		if err := rows.Scan(&rec.ActivityID, &rec.SourceID, &rec.SourceName, &ts); err != nil {
			return snap, false, fmt.Errorf("scan activity row: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		snap.History = append(snap.History, rec)
	}
	if err := rows.Err(); err != nil {
		return snap, false, fmt.Errorf("iterate activity rows: %w", err)
	}
	return snap, true, nil
}

// Save writes the snapshot in one transaction.
func (s *Store) Save(ctx context.Context, snap wellbeing.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO state (id, happiness, streak, best_streak, last_seen)
		 VALUES (1, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   happiness = excluded.happiness,
		   streak = excluded.streak,
		   best_streak = excluded.best_streak,
		   last_seen = excluded.last_seen`,
		snap.Happiness, snap.Streak, snap.BestStreak, toMillis(snap.LastSeen),
	)
	if err != nil {
		return fmt.Errorf("save state: %w", err)
	}

	for _, rec := range snap.History {
		_, err = tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO activity (activity_id, source_id, source_name, ts)
			 VALUES (?, ?, ?, ?)`,
			rec.ActivityID, rec.SourceID, rec.SourceName, toMillis(rec.Timestamp),
		)
		if err != nil {
			return fmt.Errorf("save activity %s: %w", rec.ActivityID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// RecordScore appends a minigame result.
func (s *Store) RecordScore(ctx context.Context, game string, points int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO score (game, points, ts) VALUES (?, ?, ?)`,
		game, points, toMillis(TimeNow()),
	)
	if err != nil {
		return fmt.Errorf("record score: %w", err)
	}
	return nil
}

// BestScore returns the highest recorded score for a game, or 0.
func (s *Store) BestScore(ctx context.Context, game string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(points) FROM score WHERE game = ?`, game,
	).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("best score: %w", err)
	}
	return int(best.Int64), nil
}

// Reset drops all saved state.
func (s *Store) Reset(ctx context.Context) error {
	for _, stmt := range []string{
		`DELETE FROM state`,
		`DELETE FROM activity`,
		`DELETE FROM score`,
	} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}
	return nil
}
