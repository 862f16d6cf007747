package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"taskdeck/internal/model"

	_ "modernc.org/sqlite"
)

// Store persists the session as two opaque keys (bearer token and serialized
// user) in a small SQLite key/value table under the config dir. No expiry
// checking happens client-side; token validity is discovered when a request
// fails with 401.
type Store struct {
	dir string

	mu    sync.Mutex
	token string
	user  *model.User
}

const (
	keyToken = "token"
	keyUser  = "user"
)

// Open returns a store rooted at dir (ConfigDir() when dir is empty).
// It does not touch the database until Restore/Login/Logout.
func Open(dir string) (*Store, error) {
	if dir == "" {
		d, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Store{dir: dir}, nil
}

func (s *Store) dbPath() string { return filepath.Join(s.dir, "session.sqlite") }

func (s *Store) openDB(ctx context.Context) (*sql.DB, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS session (
		k TEXT PRIMARY KEY,
		v TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Restore reads the persisted token and user. It returns (user, true) when a
// session exists; (nil, false) when the client starts unauthenticated.
func (s *Store) Restore(ctx context.Context) (*model.User, bool, error) {
	db, err := s.openDB(ctx)
	if err != nil {
		return nil, false, err
	}
	defer db.Close()

	read := func(k string) (string, error) {
		var v string
		err := db.QueryRowContext(ctx, `SELECT v FROM session WHERE k = ?`, k).Scan(&v)
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return v, err
	}

	token, err := read(keyToken)
	if err != nil {
		return nil, false, err
	}
	rawUser, err := read(keyUser)
	if err != nil {
		return nil, false, err
	}
	if token == "" || rawUser == "" {
		return nil, false, nil
	}
	var u model.User
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		// A corrupt user blob is treated as no session rather than a fatal
		// startup error; the next login rewrites both keys.
		return nil, false, nil
	}

	s.mu.Lock()
	s.token = token
	s.user = &u
	s.mu.Unlock()
	return &u, true, nil
}

// Login persists the token and user, marking the session authenticated.
func (s *Store) Login(ctx context.Context, token string, user model.User) error {
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO session(k, v) VALUES(?, ?)`, keyToken, token); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO session(k, v) VALUES(?, ?)`, keyUser, string(raw)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	u := user
	s.user = &u
	s.mu.Unlock()
	return nil
}

// Logout clears both persisted keys and the in-memory session.
func (s *Store) Logout(ctx context.Context) error {
	db, err := s.openDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, `DELETE FROM session WHERE k IN (?, ?)`, keyToken, keyUser); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	return nil
}

// Token satisfies api.TokenSource. Empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns the restored/logged-in user, or nil.
func (s *Store) User() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}
