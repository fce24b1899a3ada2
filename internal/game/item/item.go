// Package item provides item templates, runtime item instances, and the
// read-only template registry the engine looks items up in.
package item

import (
	"fmt"

	"github.com/google/uuid"
)

// Type classifies an item.
type Type string

const (
	TypeWeapon   Type = "weapon"
	TypeArmor    Type = "armor"
	TypePotion   Type = "potion"
	TypeTrinket  Type = "trinket"
	TypeTool     Type = "tool"
	TypeStaff    Type = "staff"
	TypeBow      Type = "bow"
	TypeCrossbow Type = "crossbow"
)

var validTypes = map[Type]bool{
	TypeWeapon: true, TypeArmor: true, TypePotion: true, TypeTrinket: true,
	TypeTool: true, TypeStaff: true, TypeBow: true, TypeCrossbow: true,
}

// IsWeaponLike reports whether items of this type are wielded in the weapon slot.
func (t Type) IsWeaponLike() bool {
	switch t {
	case TypeWeapon, TypeStaff, TypeBow, TypeCrossbow:
		return true
	}
	return false
}

// Rarity grades an item.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

var validRarities = map[Rarity]bool{
	RarityCommon: true, RarityUncommon: true, RarityRare: true, RarityEpic: true, RarityLegendary: true,
}

// Slot names a template equip slot. SlotRing is resolved to one of the two
// actor ring slots at equip time.
type Slot string

const (
	SlotNone      Slot = ""
	SlotWeapon    Slot = "weapon"
	SlotShield    Slot = "shield"
	SlotHelm      Slot = "helm"
	SlotCuirass   Slot = "cuirass"
	SlotGauntlets Slot = "gauntlets"
	SlotBoots     Slot = "boots"
	SlotGreaves   Slot = "greaves"
	SlotRobe      Slot = "robe"
	SlotRing      Slot = "ring"
	SlotAmulet    Slot = "amulet"
	SlotCirclet   Slot = "circlet"
)

var validSlots = map[Slot]bool{
	SlotNone: true, SlotWeapon: true, SlotShield: true, SlotHelm: true, SlotCuirass: true,
	SlotGauntlets: true, SlotBoots: true, SlotGreaves: true, SlotRobe: true,
	SlotRing: true, SlotAmulet: true, SlotCirclet: true,
}

// Item is a runtime item instance. ID is unique per instance even across
// repeated spawns of the same template; Code identifies the template.
type Item struct {
	ID         string    `json:"id"`
	Code       string    `json:"code"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	Slot       Slot      `json:"slot,omitempty"`
	Rarity     Rarity    `json:"rarity"`
	DamageType string    `json:"damage_type,omitempty"`
	Mods       Modifiers `json:"mods"`
	Consumable bool      `json:"consumable"`
	OnUse      Effect    `json:"on_use"`
	Tags       []string  `json:"tags,omitempty"`
}

// NewID returns a fresh runtime item id.
func NewID() string {
	return "itm-" + uuid.NewString()
}

// Clone returns a deep copy of it.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	cp := *it
	if it.Tags != nil {
		cp.Tags = append([]string(nil), it.Tags...)
	}
	return &cp
}

// String renders the item for log lines.
func (it *Item) String() string {
	return fmt.Sprintf("%s (%s)", it.Name, it.Code)
}
