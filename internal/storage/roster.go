// Package storage holds the roster encoding shared by the store drivers.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
)

// ErrCorruptHero is returned when a stored hero cannot be decoded.
var ErrCorruptHero = errors.New("corrupt hero record")

// EncodeHero serialises a hero for storage.
func EncodeHero(h *actor.Actor) ([]byte, error) {
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encoding hero %q: %w", h.ID, err)
	}
	return data, nil
}

// DecodeHero parses a stored hero.
//
// Postcondition: on failure the error wraps ErrCorruptHero.
func DecodeHero(id string, data []byte) (*actor.Actor, error) {
	var h actor.Actor
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("decoding hero %q: %w: %v", id, ErrCorruptHero, err)
	}
	if h.ID == "" {
		h.ID = id
	}
	return &h, nil
}
