package npc

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/item"
	"github.com/cory-johannsen/skirmish/internal/game/reward"
)

// Registry is the read-only monster catalogue. It also serves as the reward
// pipeline's loot source.
type Registry struct {
	templates map[string]*Template
	ids       []string
}

// NewRegistry indexes tmpls by id.
//
// Postcondition: Returns an error if any id repeats.
func NewRegistry(tmpls []*Template) (*Registry, error) {
	r := &Registry{templates: make(map[string]*Template, len(tmpls))}
	for _, t := range tmpls {
		if _, dup := r.templates[t.ID]; dup {
			return nil, fmt.Errorf("monster template %q already registered", t.ID)
		}
		r.templates[t.ID] = t
		r.ids = append(r.ids, t.ID)
	}
	sort.Strings(r.ids)
	return r, nil
}

// LoadRegistry loads every template under dir into a new Registry.
func LoadRegistry(dir string) (*Registry, error) {
	tmpls, err := LoadTemplates(dir)
	if err != nil {
		return nil, err
	}
	return NewRegistry(tmpls)
}

// Template returns the template for id and whether it was found.
func (r *Registry) Template(id string) (*Template, bool) {
	t, ok := r.templates[id]
	return t, ok
}

// IDs returns every template id in ascending order.
func (r *Registry) IDs() []string { return append([]string(nil), r.ids...) }

// LootTable implements reward.LootSource.
func (r *Registry) LootTable(templateID string) (*reward.LootTable, bool) {
	t, ok := r.templates[templateID]
	if !ok || t.Loot == nil {
		return nil, false
	}
	return t.Loot, true
}

// PickForLevel draws uniformly among the templates whose range covers level.
// When none does, the template with the nearest range wins, ties going to
// the lowest id, and rng is not drawn.
//
// Postcondition: Returns nil iff the registry is empty.
func (r *Registry) PickForLevel(level int, rng *dice.RNG) *Template {
	var covering []*Template
	for _, id := range r.ids {
		if t := r.templates[id]; t.Covers(level) {
			covering = append(covering, t)
		}
	}
	if len(covering) > 0 {
		return covering[rng.Int("monster pick", 0, len(covering)-1)]
	}

	var best *Template
	for _, id := range r.ids {
		t := r.templates[id]
		if best == nil || t.distance(level) < best.distance(level) {
			best = t
		}
	}
	return best
}

// Encounter spawns count monsters whose levels are drawn from
// [level-spread, level+spread], floored at 1. For each monster the level is
// drawn, then the template, then Spawn's own draws.
//
// Precondition: count >= 1; spread >= 0.
func (r *Registry) Encounter(level, count, spread int, rng *dice.RNG, items *item.Registry) ([]*actor.Actor, error) {
	if len(r.ids) == 0 {
		return nil, fmt.Errorf("encounter: no monster templates loaded")
	}
	foes := make([]*actor.Actor, 0, count)
	seen := make(map[string]bool, count)
	for i := 0; i < count; i++ {
		lv := level
		if spread > 0 {
			lv = rng.Int("monster level", level-spread, level+spread)
		}
		lv = max(lv, 1)
		foe, err := Spawn(r.PickForLevel(lv, rng), lv, rng, items)
		if err != nil {
			return nil, fmt.Errorf("encounter: %w", err)
		}
		if seen[foe.ID] {
			foe.ID = fmt.Sprintf("%s-%d", foe.ID, i)
		}
		seen[foe.ID] = true
		foes = append(foes, foe)
	}
	return foes, nil
}

// CheckItems reports every equipment and loot code that items does not
// define.
func (r *Registry) CheckItems(items *item.Registry) error {
	var errs []error
	for _, id := range r.ids {
		t := r.templates[id]
		for _, eq := range t.Equipment {
			for _, code := range eq.Items {
				if _, ok := items.Template(code); !ok {
					errs = append(errs, fmt.Errorf("monster %q equipment %q: %w", id, code, item.ErrUnknownItem))
				}
			}
		}
		if t.Loot == nil {
			continue
		}
		for _, d := range t.Loot.Items {
			if _, ok := items.Template(d.Item); !ok {
				errs = append(errs, fmt.Errorf("monster %q loot %q: %w", id, d.Item, item.ErrUnknownItem))
			}
		}
	}
	return errors.Join(errs...)
}
