package item

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Template is the static definition of an item loaded from YAML.
type Template struct {
	Code       string    `yaml:"code"`
	Name       string    `yaml:"name"`
	Type       Type      `yaml:"type"`
	Slot       Slot      `yaml:"slot"`
	Rarity     Rarity    `yaml:"rarity"`
	DamageType string    `yaml:"damage_type"`
	BasePower  int       `yaml:"base_power"`
	Mods       Modifiers `yaml:"mods"`
	OnUse      string    `yaml:"on_use"`
	Tags       []string  `yaml:"tags"`
}

// Validate checks that the Template satisfies its invariants.
//
// Precondition: t is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (t *Template) Validate() error {
	var errs []error
	if t.Code == "" {
		errs = append(errs, errors.New("code must not be empty"))
	}
	if t.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if !validTypes[t.Type] {
		errs = append(errs, fmt.Errorf("type %q is not a known item type", t.Type))
	}
	if t.Rarity == "" {
		t.Rarity = RarityCommon
	}
	if !validRarities[t.Rarity] {
		errs = append(errs, fmt.Errorf("rarity %q is not a known rarity", t.Rarity))
	}
	if !validSlots[t.Slot] {
		errs = append(errs, fmt.Errorf("slot %q is not a known slot", t.Slot))
	}
	if t.Type.IsWeaponLike() && t.Slot != SlotWeapon {
		errs = append(errs, fmt.Errorf("%s items must use the weapon slot", t.Type))
	}
	if t.BasePower < 0 {
		errs = append(errs, errors.New("base_power must be >= 0"))
	}
	if _, err := ParseEffect(t.OnUse); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q validation failed: %w", t.Code, errors.Join(errs...))
	}
	return nil
}

// Consumable reports whether instances of t are used up on use.
func (t *Template) Consumable() bool {
	e, _ := ParseEffect(t.OnUse)
	return t.Type == TypePotion || e != EffectNone
}

// Instantiate builds a fresh Item from t with a new runtime id.
//
// Postcondition: weapon-like templates without a damage mod carry
// BasePower as Mods.Damage.
func (t *Template) Instantiate() *Item {
	mods := t.Mods
	if t.Type.IsWeaponLike() && mods.Damage == 0 {
		mods.Damage = t.BasePower
	}
	effect, _ := ParseEffect(t.OnUse)
	var tags []string
	if len(t.Tags) > 0 {
		tags = append([]string(nil), t.Tags...)
	}
	return &Item{
		ID:         NewID(),
		Code:       t.Code,
		Name:       t.Name,
		Type:       t.Type,
		Slot:       t.Slot,
		Rarity:     t.Rarity,
		DamageType: t.DamageType,
		Mods:       mods,
		Consumable: t.Consumable(),
		OnUse:      effect,
		Tags:       tags,
	}
}

type templateFile struct {
	Items []*Template `yaml:"items"`
}

// LoadTemplates reads all *.yaml and *.yml files from dir. Each file holds an
// `items:` list; every entry is validated.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns all valid templates or the first encountered error.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading item dir %q: %w", dir, err)
	}

	var out []*Template
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading item file %q: %w", path, err)
		}
		tmpls, err := ParseTemplates(data)
		if err != nil {
			return nil, fmt.Errorf("item file %q: %w", path, err)
		}
		out = append(out, tmpls...)
	}
	return out, nil
}

// ParseTemplates decodes and validates an `items:` YAML document.
func ParseTemplates(data []byte) ([]*Template, error) {
	var f templateFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing items: %w", err)
	}
	for _, t := range f.Items {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return f.Items, nil
}
