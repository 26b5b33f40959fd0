// Package history persists renew outcomes in a SQLite database.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"linkwatch/domain/lease"
	"linkwatch/domain/link"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS renews (
	id                 INTEGER PRIMARY KEY AUTOINCREMENT,
	iface              TEXT    NOT NULL,
	started_at         INTEGER NOT NULL,
	finished_at        INTEGER NOT NULL,
	status             TEXT    NOT NULL,
	reason             TEXT    NOT NULL DEFAULT '',
	escalated          INTEGER NOT NULL DEFAULT 0,
	before_unavailable INTEGER NOT NULL DEFAULT 0,
	after_unavailable  INTEGER NOT NULL DEFAULT 0,
	changes            TEXT    NOT NULL DEFAULT '[]'
);
CREATE INDEX IF NOT EXISTS renews_iface_started ON renews (iface, started_at);
`

// Change is one field that differed between the before and after snapshots.
type Change struct {
	Field  link.Field `json:"field"`
	Kind   link.Kind  `json:"-"`
	Before string     `json:"before"`
	After  string     `json:"after"`
}

type changeRecord struct {
	Change
	KindName string `json:"kind"`
}

type Entry struct {
	ID                int64
	Interface         string
	StartedAt         time.Time
	FinishedAt        time.Time
	Command           lease.CommandResult
	BeforeUnavailable bool
	AfterUnavailable  bool
	Changes           []Change
}

type Query struct {
	// Interface filters by name when not empty.
	Interface string
	// Limit caps the number of entries, newest first. Non-positive means no cap.
	Limit int
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. ":memory:" gives a private in-memory store.
func Open(ctx context.Context, path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one outcome. Only changed fields are stored.
func (s *Store) Record(ctx context.Context, o lease.Outcome) error {
	changes, err := encodeChanges(o.Diffs)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO renews (iface, started_at, finished_at, status, reason, escalated,
		                    before_unavailable, after_unavailable, changes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.Interface,
		o.StartedAt.UnixNano(),
		o.FinishedAt.UnixNano(),
		o.Command.Status.String(),
		o.Command.Reason,
		o.Command.Escalated,
		o.BeforeUnavailable,
		o.AfterUnavailable,
		changes,
	)
	if err != nil {
		return fmt.Errorf("insert renew outcome: %w", err)
	}
	return nil
}

// List returns stored entries, newest first.
func (s *Store) List(ctx context.Context, q Query) ([]Entry, error) {
	query := `SELECT id, iface, started_at, finished_at, status, reason, escalated,
	                 before_unavailable, after_unavailable, changes
	          FROM renews`
	var args []any
	if q.Interface != "" {
		query += " WHERE iface = ?"
		args = append(args, q.Interface)
	}
	query += " ORDER BY started_at DESC, id DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query renew history: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var out []Entry
	for rows.Next() {
		var (
			e                  Entry
			started, finished  int64
			status, rawChanges string
		)
		if err := rows.Scan(&e.ID, &e.Interface, &started, &finished, &status, &e.Command.Reason,
			&e.Command.Escalated, &e.BeforeUnavailable, &e.AfterUnavailable, &rawChanges); err != nil {
			return nil, fmt.Errorf("scan renew history: %w", err)
		}
		if e.Command.Status, err = lease.ParseStatus(status); err != nil {
			return nil, err
		}
		if e.Changes, err = decodeChanges(rawChanges); err != nil {
			return nil, err
		}
		e.StartedAt = time.Unix(0, started)
		e.FinishedAt = time.Unix(0, finished)
		out = append(out, e)
	}
	return out, rows.Err()
}

func encodeChanges(d link.Diffs) (string, error) {
	records := make([]changeRecord, 0)
	for _, f := range d.Changes() {
		entry := d[f]
		records = append(records, changeRecord{
			Change: Change{
				Field:  f,
				Before: entry.Before.String(),
				After:  entry.After.String(),
			},
			KindName: entry.Kind.String(),
		})
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encode changes: %w", err)
	}
	return string(b), nil
}

func decodeChanges(raw string) ([]Change, error) {
	var records []changeRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode changes: %w", err)
	}
	out := make([]Change, 0, len(records))
	for _, r := range records {
		kind, err := link.ParseKind(r.KindName)
		if err != nil {
			return nil, err
		}
		c := r.Change
		c.Kind = kind
		out = append(out, c)
	}
	return out, nil
}
