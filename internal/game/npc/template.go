// Package npc provides monster template definitions and spawns level-scaled
// monsters from them.
package npc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/reward"
)

// Stats holds a template's level-1 statistics.
type Stats struct {
	HP     int `yaml:"hp"`
	Str    int `yaml:"str"`
	Dex    int `yaml:"dex"`
	Int    int `yaml:"int"`
	Wis    int `yaml:"wis"`
	Vit    int `yaml:"vit"`
	Speed  int `yaml:"speed"`
	Armor  int `yaml:"armor"`
	Resist int `yaml:"resist"`
	Luck   int `yaml:"luck"`
}

// Growth holds per-level increments. Fractions accumulate and are floored.
type Growth struct {
	HP     float64 `yaml:"hp"`
	Str    float64 `yaml:"str"`
	Dex    float64 `yaml:"dex"`
	Int    float64 `yaml:"int"`
	Wis    float64 `yaml:"wis"`
	Vit    float64 `yaml:"vit"`
	Speed  float64 `yaml:"speed"`
	Armor  float64 `yaml:"armor"`
	Resist float64 `yaml:"resist"`
	Luck   float64 `yaml:"luck"`
}

// EquipChoice fills one slot at spawn time. When the chance passes, one of
// Items is drawn uniformly. A zero Chance means always.
type EquipChoice struct {
	Slot   actor.Slot `yaml:"slot"`
	Items  []string   `yaml:"items"`
	Chance float64    `yaml:"chance"`
}

// Template defines a reusable monster archetype loaded from YAML.
type Template struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	MinLevel    int               `yaml:"min_level"`
	MaxLevel    int               `yaml:"max_level"`
	Base        Stats             `yaml:"base"`
	Growth      Growth            `yaml:"growth"`
	Tags        []string          `yaml:"tags"`
	Resist      map[string]int    `yaml:"resist"`
	Equipment   []EquipChoice     `yaml:"equipment"`
	Loot        *reward.LootTable `yaml:"loot"`
}

var knownTags = map[string]func(*actor.Tags){
	"spellcaster": func(t *actor.Tags) { t.Spellcaster = true },
	"beast":       func(t *actor.Tags) { t.Beast = true },
	"humanoid":    func(t *actor.Tags) { t.Humanoid = true },
	"flying":      func(t *actor.Tags) { t.Flying = true },
	"undead":      func(t *actor.Tags) { t.Undead = true },
	"demon":       func(t *actor.Tags) { t.Demon = true },
	"slime":       func(t *actor.Tags) { t.Slime = true },
	"goblinoid":   func(t *actor.Tags) { t.Goblinoid = true },
	"boss":        func(t *actor.Tags) { t.Boss = true },
	"miniboss":    func(t *actor.Tags) { t.Miniboss = true },
}

// ActorTags converts the template's tag names and resistances.
//
// Precondition: t passed Validate.
func (t *Template) ActorTags() actor.Tags {
	var tags actor.Tags
	for _, name := range t.Tags {
		if set, ok := knownTags[name]; ok {
			set(&tags)
		}
	}
	if len(t.Resist) > 0 {
		tags.Resist = make(map[string]int, len(t.Resist))
		for k, v := range t.Resist {
			tags.Resist[k] = v
		}
	}
	return tags
}

// Covers reports whether level lies inside the template's range.
func (t *Template) Covers(level int) bool {
	return level >= t.MinLevel && level <= t.MaxLevel
}

// distance is how many levels lie between level and the template's range.
func (t *Template) distance(level int) int {
	switch {
	case level < t.MinLevel:
		return t.MinLevel - level
	case level > t.MaxLevel:
		return level - t.MaxLevel
	default:
		return 0
	}
}

// Validate checks that the template satisfies basic invariants.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil iff ID and Name are non-empty, 1 <= MinLevel <=
// MaxLevel, HP >= 1, every tag and slot is known and the loot table is valid.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("monster template: id must not be empty")
	}
	var errs []error
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if t.MinLevel < 1 || t.MinLevel > t.MaxLevel {
		errs = append(errs, fmt.Errorf("level range [%d, %d] is invalid", t.MinLevel, t.MaxLevel))
	}
	if t.Base.HP < 1 {
		errs = append(errs, fmt.Errorf("base hp must be >= 1, got %d", t.Base.HP))
	}
	for _, name := range t.Tags {
		if _, ok := knownTags[name]; !ok {
			errs = append(errs, fmt.Errorf("unknown tag %q", name))
		}
	}
	for i, eq := range t.Equipment {
		if _, err := actor.ParseSlot(string(eq.Slot)); err != nil {
			errs = append(errs, fmt.Errorf("equipment[%d]: %w", i, err))
		}
		if len(eq.Items) == 0 {
			errs = append(errs, fmt.Errorf("equipment[%d]: items must not be empty", i))
		}
		if eq.Chance < 0 || eq.Chance > 1 {
			errs = append(errs, fmt.Errorf("equipment[%d]: chance must be in [0, 1], got %v", i, eq.Chance))
		}
	}
	if t.Loot != nil {
		if err := t.Loot.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("monster template %q: %w", t.ID, errors.Join(errs...))
	}
	return nil
}

// LoadTemplateFromBytes parses a single monster template from raw YAML bytes.
//
// Precondition: data must be valid YAML for a single Template.
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	var tmpl Template
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadTemplates reads all *.yaml files in dir and returns the parsed templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading monster dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
