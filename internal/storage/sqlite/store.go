// Package sqlite provides a file-backed roster store using the pure-Go
// modernc SQLite driver.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/storage"
	"github.com/cory-johannsen/skirmish/migrations"
)

const pragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Store persists the hero roster in a SQLite file.
type Store struct {
	sqlDB *sql.DB
}

// Open migrates and opens the database at path.
//
// Precondition: path must be non-empty.
// Postcondition: the heroes table exists and the Store is ready for use.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("storage path is required")
	}
	if err := Migrate(path); err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open("sqlite", path+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite store: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// NewMigrator returns a migrator bound to the embedded SQLite schema.
//
// Postcondition: the caller owns the returned Migrate and must Close it.
func NewMigrator(path string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations.SQLite(), ".")
	if err != nil {
		return nil, fmt.Errorf("opening embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return nil, fmt.Errorf("creating migrator: %w", err)
	}
	return m, nil
}

// Migrate applies every pending up migration to the database at path.
func Migrate(path string) error {
	m, err := NewMigrator(path)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}

// Load returns the saved heroes in party order.
//
// Postcondition: an empty store yields a nil slice and no error.
func (s *Store) Load(ctx context.Context) ([]*actor.Actor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT id, data FROM heroes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query heroes: %w", err)
	}
	defer rows.Close()

	var heroes []*actor.Actor
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scan hero: %w", err)
		}
		h, err := storage.DecodeHero(id, []byte(data))
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heroes: %w", err)
	}
	return heroes, nil
}

// Save replaces the stored roster with heroes in a single transaction.
func (s *Store) Save(ctx context.Context, heroes []*actor.Actor) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM heroes`); err != nil {
		return fmt.Errorf("clear heroes: %w", err)
	}
	now := time.Now().UTC().UnixMilli()
	for i, h := range heroes {
		var data []byte
		if data, err = storage.EncodeHero(h); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO heroes (id, position, level, data, updated_at) VALUES (?, ?, ?, ?, ?)`,
			h.ID, i, h.Level, string(data), now,
		)
		if err != nil {
			return fmt.Errorf("insert hero %q: %w", h.ID, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}
