// Package session owns the device-local credential state: the bearer token
// and the profile snapshot cached next to it, persisted across restarts in
// a small SQLite file.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/coachpad/coachpad/internal/auth"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_state (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

const (
	keyToken = "token"
	keyUser  = "user"
)

// Store persists the session in a key-value table. It implements
// client.CredentialStore.
type Store struct {
	db *sql.DB
}

// Open creates or opens the session database at path. An empty path falls
// back to coachpad/session.db under the user config directory.
func Open(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "coachpad", "session.db")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize session store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Token returns the stored bearer token, or "" when no session exists.
func (s *Store) Token(ctx context.Context) (string, error) {
	return s.value(ctx, keyToken)
}

// Profile returns the cached profile snapshot, or nil when no session
// exists. The snapshot is whatever login last returned; IsAdmin and TeamID
// on it drive local scope checks.
func (s *Store) Profile(ctx context.Context) (*auth.Profile, error) {
	raw, err := s.value(ctx, keyUser)
	if err != nil || raw == "" {
		return nil, err
	}
	var p auth.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("decode cached profile: %w", err)
	}
	return &p, nil
}

// SetSession stores token and profile atomically. Either both land or the
// previous session stays intact.
func (s *Store) SetSession(ctx context.Context, token string, profile *auth.Profile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin session write: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO session_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, keyToken, token); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, keyUser, string(raw)); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	return tx.Commit()
}

// Clear removes token and profile. Clearing an empty store is a no-op.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM session_state WHERE key IN (?, ?)`, keyToken, keyUser)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (s *Store) value(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM session_state WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read session state: %w", err)
	}
	return v, nil
}
