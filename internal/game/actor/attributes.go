package actor

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/item"
)

// Attributes are the nine base statistics of an actor.
type Attributes struct {
	Str    int `yaml:"str" json:"str"`
	Dex    int `yaml:"dex" json:"dex"`
	Int    int `yaml:"int" json:"int"`
	Wis    int `yaml:"wis" json:"wis"`
	Vit    int `yaml:"vit" json:"vit"`
	Speed  int `yaml:"speed" json:"speed"`
	Armor  int `yaml:"armor" json:"armor"`
	Resist int `yaml:"resist" json:"resist"`
	Luck   int `yaml:"luck" json:"luck"`
}

// Apply returns a with the matching modifier fields of m added.
func (a Attributes) Apply(m item.Modifiers) Attributes {
	return Attributes{
		Str:    a.Str + m.Str,
		Dex:    a.Dex + m.Dex,
		Int:    a.Int + m.Int,
		Wis:    a.Wis + m.Wis,
		Vit:    a.Vit + m.Vit,
		Speed:  a.Speed + m.Speed,
		Armor:  a.Armor + m.Armor,
		Resist: a.Resist + m.Resist,
		Luck:   a.Luck + m.Luck,
	}
}

// Validate reports an error when any attribute is negative.
func (a Attributes) Validate() error {
	for _, f := range a.Fields() {
		if f.Value < 0 {
			return fmt.Errorf("attribute %s must be >= 0, got %d", f.Name, f.Value)
		}
	}
	return nil
}

// Field is one named attribute value.
type Field struct {
	Name  string
	Value int
}

// Fields lists the attributes in display order.
func (a Attributes) Fields() []Field {
	return []Field{
		{"STR", a.Str}, {"DEX", a.Dex}, {"INT", a.Int}, {"WIS", a.Wis}, {"VIT", a.Vit},
		{"SPD", a.Speed}, {"ARM", a.Armor}, {"RES", a.Resist}, {"LCK", a.Luck},
	}
}
