package reward

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/item"
)

// Pipeline distributes experience and loot after a victory.
type Pipeline struct {
	rules  Rules
	rng    *dice.RNG
	items  *item.Registry
	loot   LootSource
	logger *zap.Logger
}

// NewPipeline wires a Pipeline. loot and logger may be nil; without a loot
// source every foe rolls the default drop.
//
// Precondition: rng and items must be non-nil; rules passed Validate.
func NewPipeline(rules Rules, rng *dice.RNG, items *item.Registry, loot LootSource, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{rules: rules, rng: rng, items: items, loot: loot, logger: logger}
}

// Distribute awards XP to each living hero for every defeated foe, levels
// heroes up, then rolls each defeated foe's loot for the first living hero.
// Heroes are mutated in place. It returns the narration lines.
//
// Postcondition: fallen heroes are untouched.
func (p *Pipeline) Distribute(heroes, foes []*actor.Actor) []string {
	var defeated []*actor.Actor
	for _, f := range foes {
		if !f.Alive() {
			defeated = append(defeated, f)
		}
	}

	var lines []string
	var recipient *actor.Actor
	for _, h := range heroes {
		if !h.Alive() {
			continue
		}
		if recipient == nil {
			recipient = h
		}
		lines = append(lines, p.awardXP(h, defeated)...)
	}
	if recipient == nil {
		return lines
	}
	for _, f := range defeated {
		lines = append(lines, p.awardLoot(recipient, f)...)
	}
	return lines
}

func (p *Pipeline) awardXP(h *actor.Actor, defeated []*actor.Actor) []string {
	total := 0
	for _, f := range defeated {
		total += XPFor(h, f, p.rng, p.rules)
	}
	if h.XPToNext <= 0 {
		h.XPToNext = XPToNext(h.Level)
	}
	h.XP += total
	lines := []string{fmt.Sprintf("%s gained %d XP (%d/%d)", h.Name, total, h.XP, h.XPToNext)}
	p.logger.Debug("xp awarded", zap.String("hero", h.ID), zap.Int("xp", total))

	ups, err := LevelUp(h, p.rng, p.rules)
	if err != nil {
		p.logger.Error("level up failed", zap.String("hero", h.ID), zap.Error(err))
	}
	if len(ups) > 0 {
		p.logger.Info("hero leveled up", zap.String("hero", h.ID), zap.Int("level", h.Level))
	}
	return append(lines, ups...)
}

func (p *Pipeline) table(foe *actor.Actor) *LootTable {
	if p.loot != nil && foe.TemplateID != "" {
		if lt, ok := p.loot.LootTable(foe.TemplateID); ok && lt != nil {
			return lt
		}
	}
	d := p.rules.DefaultDrop
	if d.Chance <= 0 || d.Item == "" {
		return &LootTable{}
	}
	return &LootTable{Items: []ItemDrop{{Item: d.Item, Chance: d.Chance, MinQty: 1, MaxQty: 1}}}
}

func (p *Pipeline) awardLoot(to, foe *actor.Actor) []string {
	spoils := p.table(foe).Roll(p.rng)
	var lines []string
	if spoils.Gold > 0 {
		to.Gold += spoils.Gold
		lines = append(lines, fmt.Sprintf("%s picks up %d gold.", to.Name, spoils.Gold))
	}
	for _, st := range spoils.Items {
		for n := 0; n < st.Quantity; n++ {
			it, err := p.items.NewItem(st.Item)
			if err != nil {
				if errors.Is(err, item.ErrUnknownItem) {
					p.logger.Warn("loot references unknown item", zap.String("foe", foe.TemplateID), zap.String("item", st.Item))
				}
				break
			}
			if !to.Give(it) {
				p.logger.Debug("duplicate loot discarded", zap.String("hero", to.ID), zap.String("item", it.Code))
				continue
			}
			lines = append(lines, fmt.Sprintf("%s finds a %s.", to.Name, it.Name))
		}
	}
	return lines
}
