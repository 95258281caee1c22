package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite"

	"github.com/okian/summit/pkg/metrics"
)

// SQLiteStore persists shares in a SQLite database.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore opens the database at path and initializes the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Single writer keeps SQLite from returning SQLITE_BUSY under concurrent shares.
	conn.SetMaxOpenConns(1)

	s := &SQLiteStore{conn: conn}
	if err := s.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS shares (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		bio TEXT NOT NULL DEFAULT '',
		proficiency TEXT NOT NULL DEFAULT '',
		interests TEXT NOT NULL DEFAULT '[]',
		goals TEXT NOT NULL DEFAULT '[]',
		days TEXT NOT NULL DEFAULT '[]',
		shared_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shares_proficiency ON shares(proficiency);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// Save inserts a share.
func (s *SQLiteStore) Save(ctx context.Context, share Share) error {
	interests, err := json.Marshal(nonNil(share.Interests))
	if err != nil {
		return fmt.Errorf("marshal interests: %w", err)
	}
	goals, err := json.Marshal(nonNil(share.Goals))
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	days, err := json.Marshal(share.Days)
	if err != nil {
		return fmt.Errorf("marshal days: %w", err)
	}

	query := `
	INSERT INTO shares (id, name, bio, proficiency, interests, goals, days, shared_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.conn.ExecContext(ctx, query,
		share.ID,
		share.Name,
		share.Bio,
		share.Proficiency,
		string(interests),
		string(goals),
		string(days),
		share.SharedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: %s", ErrDuplicateID, share.ID)
		}
		return fmt.Errorf("insert share: %w", err)
	}
	metrics.UpdateCommunityEntries(s.Count(ctx))
	return nil
}

// Get returns a share by id.
func (s *SQLiteStore) Get(ctx context.Context, id string) (Share, error) {
	query := `
	SELECT id, name, bio, proficiency, interests, goals, days, shared_at
	FROM shares WHERE id = ?
	`
	share, err := scanShare(s.conn.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Share{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return share, err
}

// Recent returns up to n shares newest first.
func (s *SQLiteStore) Recent(ctx context.Context, n int, proficiency string) ([]Share, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	query := `
	SELECT id, name, bio, proficiency, interests, goals, days, shared_at
	FROM shares
	WHERE ? = '' OR lower(proficiency) = lower(?)
	ORDER BY seq DESC
	LIMIT ?
	`
	rows, err := s.conn.QueryContext(ctx, query, proficiency, proficiency, n)
	if err != nil {
		return nil, fmt.Errorf("query shares: %w", err)
	}
	defer rows.Close()

	out := make([]Share, 0, n)
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, share)
	}
	return out, rows.Err()
}

// Count returns the number of stored shares, or zero when the query fails.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM shares`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanShare(row rowScanner) (Share, error) {
	var (
		share                  Share
		interests, goals, days string
		sharedAt               string
	)
	if err := row.Scan(&share.ID, &share.Name, &share.Bio, &share.Proficiency, &interests, &goals, &days, &sharedAt); err != nil {
		return Share{}, err
	}
	if err := json.Unmarshal([]byte(interests), &share.Interests); err != nil {
		return Share{}, fmt.Errorf("unmarshal interests: %w", err)
	}
	if err := json.Unmarshal([]byte(goals), &share.Goals); err != nil {
		return Share{}, fmt.Errorf("unmarshal goals: %w", err)
	}
	if err := json.Unmarshal([]byte(days), &share.Days); err != nil {
		return Share{}, fmt.Errorf("unmarshal days: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, sharedAt)
	if err != nil {
		return Share{}, fmt.Errorf("parse shared_at: %w", err)
	}
	share.SharedAt = t
	return share, nil
}

func nonNil(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
