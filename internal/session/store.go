// Package session persists the console's login state across runs: the
// derived backend credential, the display name, the last-selected locale
// and a one-shot logout marker.
package session

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Store keys. One row per key in the session_state table.
const (
	keyCredential    = "credential"
	keyDisplayName   = "display_name"
	keyLocale        = "locale"
	keyJustLoggedOut = "just_logged_out"
)

// Store handles durable session persistence
type Store struct {
	db *sql.DB
}

// Open creates or opens the session database under dataDir
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("data directory cannot be empty")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "session.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// Limit connection pool to prevent "database is locked" errors
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL; PRAGMA busy_timeout=5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode and busy timeout: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session_state (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Login stores the derived credential and display name
func (s *Store) Login(displayName, credential string) error {
	if credential == "" {
		return fmt.Errorf("credential cannot be empty")
	}

	if err := s.set(keyCredential, credential); err != nil {
		return fmt.Errorf("failed to store credential: %w", err)
	}
	if err := s.set(keyDisplayName, displayName); err != nil {
		return fmt.Errorf("failed to store display name: %w", err)
	}
	return nil
}

// Logout removes the credential and display name and sets the one-shot
// logged-out marker for the next consumer.
func (s *Store) Logout() error {
	if err := s.delete(keyCredential); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	if err := s.delete(keyDisplayName); err != nil {
		return fmt.Errorf("failed to clear display name: %w", err)
	}
	if err := s.set(keyJustLoggedOut, "true"); err != nil {
		return fmt.Errorf("failed to set logout marker: %w", err)
	}
	return nil
}

// Credential returns the stored backend credential, or "" when logged out
func (s *Store) Credential() string {
	v, _ := s.get(keyCredential)
	return v
}

// IsAuthenticated reports whether a credential is stored
func (s *Store) IsAuthenticated() bool {
	return s.Credential() != ""
}

// DisplayName returns the stored display name, or "" when logged out
func (s *Store) DisplayName() string {
	v, _ := s.get(keyDisplayName)
	return v
}

// SetLocale stores the last-selected locale
func (s *Store) SetLocale(locale string) error {
	return s.set(keyLocale, locale)
}

// Locale returns the last-selected locale, or "" if never set
func (s *Store) Locale() string {
	v, _ := s.get(keyLocale)
	return v
}

// ConsumeJustLoggedOut reports whether a logout happened since the last
// call and clears the marker, so it fires at most once.
func (s *Store) ConsumeJustLoggedOut() (bool, error) {
	v, err := s.get(keyJustLoggedOut)
	if err != nil {
		return false, fmt.Errorf("failed to read logout marker: %w", err)
	}
	if v == "" {
		return false, nil
	}

	if err := s.delete(keyJustLoggedOut); err != nil {
		return false, fmt.Errorf("failed to clear logout marker: %w", err)
	}
	return true, nil
}

func (s *Store) get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		"SELECT value FROM session_state WHERE key = ?", key,
	).Scan(&value)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to query session state: %w", err)
	}
	return value, nil
}

func (s *Store) set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO session_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("failed to write session state: %w", err)
	}
	return nil
}

func (s *Store) delete(key string) error {
	_, err := s.db.Exec("DELETE FROM session_state WHERE key = ?", key)
	return err
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
