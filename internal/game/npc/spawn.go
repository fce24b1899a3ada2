package npc

import (
	"fmt"
	"math"
	"strconv"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/item"
	"github.com/cory-johannsen/skirmish/internal/game/reward"
)

// idSpace is the range of the five-character base-36 id suffix.
const idSpace = 36 * 36 * 36 * 36 * 36

// scale returns floor(base + perLevel*(level-1)), floored at zero.
func scale(base int, perLevel float64, level int) int {
	v := int(math.Floor(float64(base) + perLevel*float64(level-1)))
	if v < 0 {
		return 0
	}
	return v
}

// Spawn builds a monster of tmpl at level, clamped to the template's range.
// The id suffix is drawn first, then the equipment choices in template order.
//
// Precondition: tmpl passed Validate; rng and items are non-nil.
// Postcondition: the actor has full HP >= 1 and TemplateID == tmpl.ID.
func Spawn(tmpl *Template, level int, rng *dice.RNG, items *item.Registry) (*actor.Actor, error) {
	lv := min(max(level, tmpl.MinLevel), tmpl.MaxLevel)
	suffix := strconv.FormatInt(int64(rng.Int("monster id", 0, idSpace-1)), 36)
	for len(suffix) < 5 {
		suffix = "0" + suffix
	}

	b, g := tmpl.Base, tmpl.Growth
	a := &actor.Actor{
		ID:         fmt.Sprintf("%s-%d-%s", tmpl.ID, lv, suffix),
		Name:       tmpl.Name,
		TemplateID: tmpl.ID,
		Level:      lv,
		XPToNext:   reward.XPToNext(lv),
		Base: actor.Attributes{
			Str:    scale(b.Str, g.Str, lv),
			Dex:    scale(b.Dex, g.Dex, lv),
			Int:    scale(b.Int, g.Int, lv),
			Wis:    scale(b.Wis, g.Wis, lv),
			Vit:    scale(b.Vit, g.Vit, lv),
			Speed:  scale(b.Speed, g.Speed, lv),
			Armor:  scale(b.Armor, g.Armor, lv),
			Resist: scale(b.Resist, g.Resist, lv),
			Luck:   scale(b.Luck, g.Luck, lv),
		},
		HP:        actor.NewPool(max(1, scale(b.HP, g.HP, lv))),
		Tags:      tmpl.ActorTags(),
		Equipment: actor.Equipment{},
	}

	for _, eq := range tmpl.Equipment {
		if eq.Chance > 0 && eq.Chance < 1 && !rng.Chance("equip chance", eq.Chance) {
			continue
		}
		code := eq.Items[0]
		if len(eq.Items) > 1 {
			code = eq.Items[rng.Int("equip pick", 0, len(eq.Items)-1)]
		}
		it, err := items.NewItem(code)
		if err != nil {
			return nil, fmt.Errorf("spawning %q: %w", tmpl.ID, err)
		}
		a.Equipment[eq.Slot] = it
	}
	return a, nil
}
