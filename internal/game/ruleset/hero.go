package ruleset

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/item"
	"github.com/cory-johannsen/skirmish/internal/game/reward"
)

// NewHero builds a level-1 hero of class c. Starter kit items are granted in
// order; entries marked equip are equipped as they arrive. Pools are derived
// after equipping and start full.
//
// Precondition: c passed Validate; items is non-nil.
// Postcondition: the hero is alive, IsPlayer and TemplateID == c.ID.
func NewHero(c *Class, id string, items *item.Registry) (*actor.Actor, error) {
	h := &actor.Actor{
		ID:         id,
		Name:       c.Name,
		IsPlayer:   true,
		TemplateID: c.ID,
		Level:      1,
		XPToNext:   reward.XPToNext(1),
		Base:       c.Base,
		Tags:       actor.Tags{Spellcaster: c.Spellcaster},
		Equipment:  actor.Equipment{},
	}
	for _, e := range c.StarterKit {
		for n := 0; n < e.Qty; n++ {
			it, err := items.NewItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("building %s: %w", c.ID, err)
			}
			if !h.Give(it) {
				continue
			}
			if e.Equip {
				if _, err := h.Equip(it.ID); err != nil {
					return nil, fmt.Errorf("building %s: equipping %s: %w", c.ID, e.Item, err)
				}
			}
		}
	}
	reward.RecomputeMaxima(h, true)
	return h, nil
}
