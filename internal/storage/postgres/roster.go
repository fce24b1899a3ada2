package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/storage"
)

// RosterRepository persists the hero roster in the heroes table.
type RosterRepository struct {
	db *pgxpool.Pool
}

// NewRosterRepository creates a RosterRepository backed by the given pool.
func NewRosterRepository(db *pgxpool.Pool) *RosterRepository {
	return &RosterRepository{db: db}
}

// Load returns the saved heroes in party order.
//
// Postcondition: an empty table yields a nil slice and no error.
func (r *RosterRepository) Load(ctx context.Context) ([]*actor.Actor, error) {
	rows, err := r.db.Query(ctx, `SELECT id, data FROM heroes ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying heroes: %w", err)
	}
	defer rows.Close()

	var heroes []*actor.Actor
	for rows.Next() {
		var (
			id   string
			data []byte
		)
		if err := rows.Scan(&id, &data); err != nil {
			return nil, fmt.Errorf("scanning hero: %w", err)
		}
		h, err := storage.DecodeHero(id, data)
		if err != nil {
			return nil, err
		}
		heroes = append(heroes, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating heroes: %w", err)
	}
	return heroes, nil
}

// Save replaces the stored roster with heroes in a single transaction.
//
// Postcondition: on error the previously saved roster is untouched.
func (r *RosterRepository) Save(ctx context.Context, heroes []*actor.Actor) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM heroes`); err != nil {
			return fmt.Errorf("clearing heroes: %w", err)
		}
		for i, h := range heroes {
			data, err := storage.EncodeHero(h)
			if err != nil {
				return err
			}
			_, err = tx.Exec(ctx, `
				INSERT INTO heroes (id, position, level, data, updated_at)
				VALUES ($1, $2, $3, $4, NOW())`,
				h.ID, i, h.Level, string(data),
			)
			if err != nil {
				return fmt.Errorf("inserting hero %q: %w", h.ID, err)
			}
		}
		return nil
	})
}
