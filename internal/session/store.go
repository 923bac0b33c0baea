// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package session

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/unisurveyal/surveyshelf/pkg/types"
)

const dbFile = "surveyshelf.db"

// ErrNoSession is returned when no one is logged in.
var ErrNoSession = errors.New("no active session: run 'surveyshelf login'")

// Store persists the session in a SQLite database under the state
// directory. One row at a time: logging in replaces any previous session.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates the session database at dir/surveyshelf.db,
// creating the schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}

	s := &Store{db: db, dir: dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SnapshotDir is where the session-scoped snapshot files live. It sits next
// to the database so logout can clear both together.
func (s *Store) SnapshotDir() string {
	return filepath.Join(s.dir, "snapshots")
}

func (s *Store) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS session (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		token TEXT NOT NULL,
		user_json TEXT NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Begin stores a fresh session, replacing any previous one.
func (s *Store) Begin(sess Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO session (id, token, user_json) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET token=excluded.token, user_json=excluded.user_json`,
		sess.Token, string(userJSON),
	)
	if err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	return nil
}

// Current returns the stored session, or ErrNoSession.
func (s *Store) Current() (*Session, error) {
	var token, userJSON string
	err := s.db.QueryRow(`SELECT token, user_json FROM session WHERE id = 1`).
		Scan(&token, &userJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}

	var user types.User
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &Session{Token: token, User: user}, nil
}

// UpdateUser refreshes the stored identity after a profile change, keeping
// the token.
func (s *Store) UpdateUser(user types.User) error {
	userJSON, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user: %w", err)
	}
	res, err := s.db.Exec(`UPDATE session SET user_json = ? WHERE id = 1`, string(userJSON))
	if err != nil {
		return fmt.Errorf("updating session user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoSession
	}
	return nil
}

// End deletes the session row. Absent rows are fine: logout is idempotent.
func (s *Store) End() error {
	if _, err := s.db.Exec(`DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("ending session: %w", err)
	}
	return nil
}
