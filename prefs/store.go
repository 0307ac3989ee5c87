package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/yllada/chatdock/common"
)

const schema = `CREATE TABLE IF NOT EXISTS preferences (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// Store is the durable preference store.
type Store struct {
	mu  sync.Mutex
	db  *sql.DB
	log *common.ComponentLogger
}

// DefaultPath returns preferences.db inside the config directory.
func DefaultPath() (string, error) {
	dir, err := common.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, common.PreferencesFileName), nil
}

// Open opens (creating if needed) the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening preferences: %w", err)
	}
	// One connection: SQLite serialises writers anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating preferences table: %w", err)
	}

	return &Store{db: db, log: common.Logger("prefs")}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the raw value for key and whether it was set.
func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return value, true, nil
}

// SetValue validates and stores one raw value.
func (s *Store) SetValue(ctx context.Context, key, value string) error {
	var p Preferences
	if err := p.Set(key, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(ctx, s.db, key, value)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *Store) put(ctx context.Context, db execer, key, value string) error {
	_, err := db.ExecContext(ctx,
		`INSERT INTO preferences (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}

// Load returns the stored preferences over the defaults. A stored value
// that no longer validates is logged and replaced by its default.
func (s *Store) Load(ctx context.Context) (Preferences, error) {
	p := Defaults()

	s.mu.Lock()
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM preferences`)
	if err != nil {
		s.mu.Unlock()
		return p, fmt.Errorf("reading preferences: %w", err)
	}
	stored := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			rows.Close()
			s.mu.Unlock()
			return p, fmt.Errorf("reading preferences: %w", err)
		}
		stored[key] = value
	}
	err = rows.Err()
	rows.Close()
	s.mu.Unlock()
	if err != nil {
		return p, fmt.Errorf("reading preferences: %w", err)
	}

	for _, key := range Keys {
		value, ok := stored[key]
		if !ok {
			continue
		}
		if err := p.Set(key, value); err != nil {
			s.log.Warn("Ignoring stored %s: %v", key, err)
		}
	}
	return p, nil
}

// Save writes every preference in one transaction.
func (s *Store) Save(ctx context.Context, p Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}
	defer tx.Rollback()

	for _, key := range Keys {
		value, err := p.Encode(key)
		if err != nil {
			return err
		}
		var check Preferences
		if err := check.Set(key, value); err != nil {
			return err
		}
		if err := s.put(ctx, tx, key, value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// Reset deletes every stored value so Load returns the defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences`); err != nil {
		return fmt.Errorf("resetting preferences: %w", err)
	}
	return nil
}
