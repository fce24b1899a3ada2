// Package actor models combatants: attributes, resource pools, tags,
// equipment and inventory.
package actor

import (
	"errors"
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/item"
)

var (
	// ErrNotInInventory is returned when an item id is not in the actor's inventory.
	ErrNotInInventory = errors.New("item not in inventory")
	// ErrNotEquippable is returned when an item has no equip slot.
	ErrNotEquippable = errors.New("item cannot be equipped")
	// ErrSlotEmpty is returned when unequipping an empty slot.
	ErrSlotEmpty = errors.New("slot is empty")
	// ErrNotConsumable is returned when using an item without an on-use effect.
	ErrNotConsumable = errors.New("item is not consumable")
	// ErrNoEffect is returned when a consumable has nothing to restore.
	ErrNoEffect = errors.New("item has no usable effect")
)

// Actor is a combatant, player-controlled or not.
type Actor struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	IsPlayer   bool   `json:"is_player"`
	TemplateID string `json:"template_id,omitempty"`

	Level    int `json:"level"`
	XP       int `json:"xp"`
	XPToNext int `json:"xp_to_next"`

	Base Attributes `json:"base"`
	HP   Pool       `json:"hp"`
	MP   Pool       `json:"mp"`
	SP   Pool       `json:"sp"`
	Tags Tags       `json:"tags"`
	Gold int        `json:"gold"`

	Equipment Equipment    `json:"equipment"`
	Inventory []*item.Item `json:"inventory"`
}

// Alive reports whether the actor has HP left.
func (a *Actor) Alive() bool { return a != nil && a.HP.Current > 0 }

// GearMods returns the summed modifiers of every equipped item.
func (a *Actor) GearMods() item.Modifiers { return a.Equipment.Mods() }

// Effective returns base attributes plus equipment modifiers.
func (a *Actor) Effective() Attributes { return a.Base.Apply(a.GearMods()) }

// Weapon returns the equipped weapon, or nil when unarmed.
func (a *Actor) Weapon() *item.Item { return a.Equipment[SlotWeapon] }

// HasShield reports whether the shield slot is occupied.
func (a *Actor) HasShield() bool { return a.Equipment[SlotShield] != nil }

// Owns reports whether an item with the given code is equipped or carried.
func (a *Actor) Owns(code string) bool {
	for _, it := range a.Equipment {
		if it != nil && it.Code == code {
			return true
		}
	}
	for _, it := range a.Inventory {
		if it.Code == code {
			return true
		}
	}
	return false
}

// Give appends it to the inventory. Non-consumables are unique by code; a
// duplicate is refused and Give returns false.
func (a *Actor) Give(it *item.Item) bool {
	if it == nil {
		return false
	}
	if !it.Consumable && a.Owns(it.Code) {
		return false
	}
	a.Inventory = append(a.Inventory, it)
	return true
}

func (a *Actor) inventoryIndex(itemID string) int {
	for i, it := range a.Inventory {
		if it.ID == itemID {
			return i
		}
	}
	return -1
}

func (a *Actor) removeAt(i int) *item.Item {
	it := a.Inventory[i]
	a.Inventory = append(a.Inventory[:i:i], a.Inventory[i+1:]...)
	return it
}

// FindItem returns the inventory item with the given id.
func (a *Actor) FindItem(itemID string) (*item.Item, bool) {
	i := a.inventoryIndex(itemID)
	if i < 0 {
		return nil, false
	}
	return a.Inventory[i], true
}

// Equip moves an inventory item into its slot. The previous occupant, and
// for cuirass/robe the exclusive counterpart, return to the inventory.
//
// Postcondition: on success the item is in exactly one slot and absent from
// the inventory. Returns the slot it was placed in.
func (a *Actor) Equip(itemID string) (Slot, error) {
	i := a.inventoryIndex(itemID)
	if i < 0 {
		return "", fmt.Errorf("equip %s: %w", itemID, ErrNotInInventory)
	}
	if a.Equipment == nil {
		a.Equipment = Equipment{}
	}
	slot, ok := a.Equipment.resolveSlot(a.Inventory[i].Slot)
	if !ok {
		return "", fmt.Errorf("equip %s: %w", itemID, ErrNotEquippable)
	}
	it := a.removeAt(i)
	if other, ok := exclusive(slot); ok {
		if prev := a.Equipment[other]; prev != nil {
			a.Inventory = append(a.Inventory, prev)
			delete(a.Equipment, other)
		}
	}
	if prev := a.Equipment[slot]; prev != nil {
		a.Inventory = append(a.Inventory, prev)
	}
	a.Equipment[slot] = it
	return slot, nil
}

// Unequip moves the item in slot back to the inventory.
func (a *Actor) Unequip(slot Slot) (*item.Item, error) {
	it := a.Equipment[slot]
	if it == nil {
		return nil, fmt.Errorf("unequip %s: %w", slot, ErrSlotEmpty)
	}
	delete(a.Equipment, slot)
	a.Inventory = append(a.Inventory, it)
	return it, nil
}

// Consume removes a consumable from the inventory and applies its restore
// effect. It returns the item, the pool restored and the amount gained.
//
// Postcondition: on error the inventory is unchanged.
func (a *Actor) Consume(itemID string) (*item.Item, item.Resource, int, error) {
	i := a.inventoryIndex(itemID)
	if i < 0 {
		return nil, item.ResourceNone, 0, fmt.Errorf("use %s: %w", itemID, ErrNotInInventory)
	}
	it := a.Inventory[i]
	if !it.Consumable {
		return nil, item.ResourceNone, 0, fmt.Errorf("use %s: %w", it.Name, ErrNotConsumable)
	}
	var pool *Pool
	switch it.OnUse.Resource() {
	case item.ResourceHP:
		pool = &a.HP
	case item.ResourceMP:
		pool = &a.MP
	case item.ResourceSP:
		pool = &a.SP
	default:
		return nil, item.ResourceNone, 0, fmt.Errorf("use %s: %w", it.Name, ErrNoEffect)
	}
	a.removeAt(i)
	gained := pool.Add(it.OnUse.Amount())
	return it, it.OnUse.Resource(), gained, nil
}

// Normalize repairs a loaded actor: nil maps and slices are allocated, item
// ids are made unique, non-consumables duplicated by code (against equipment
// or earlier inventory entries) are dropped, and pools are clamped.
func (a *Actor) Normalize() {
	if a.Equipment == nil {
		a.Equipment = Equipment{}
	}
	seenIDs := make(map[string]bool)
	equipped := make(map[string]bool)
	for _, sl := range Slots {
		it := a.Equipment[sl]
		if it == nil {
			delete(a.Equipment, sl)
			continue
		}
		if it.ID == "" || seenIDs[it.ID] {
			it.ID = item.NewID()
		}
		seenIDs[it.ID] = true
		equipped[it.Code] = true
	}
	for sl := range a.Equipment {
		if _, err := ParseSlot(string(sl)); err != nil {
			delete(a.Equipment, sl)
		}
	}

	seenCodes := make(map[string]bool)
	out := make([]*item.Item, 0, len(a.Inventory))
	for _, it := range a.Inventory {
		if it == nil {
			continue
		}
		if it.ID == "" || seenIDs[it.ID] {
			it.ID = item.NewID()
		}
		seenIDs[it.ID] = true
		if !it.Consumable {
			if equipped[it.Code] || seenCodes[it.Code] {
				continue
			}
			seenCodes[it.Code] = true
		}
		out = append(out, it)
	}
	a.Inventory = out

	if a.Gold < 0 {
		a.Gold = 0
	}
	a.HP.SetMax(a.HP.Max)
	a.MP.SetMax(a.MP.Max)
	a.SP.SetMax(a.SP.Max)
}

// Clone returns a deep copy of a.
func (a *Actor) Clone() *Actor {
	if a == nil {
		return nil
	}
	cp := *a
	cp.Tags = a.Tags.clone()
	if a.Equipment != nil {
		cp.Equipment = make(Equipment, len(a.Equipment))
		for sl, it := range a.Equipment {
			cp.Equipment[sl] = it.Clone()
		}
	}
	if a.Inventory != nil {
		cp.Inventory = make([]*item.Item, len(a.Inventory))
		for i, it := range a.Inventory {
			cp.Inventory[i] = it.Clone()
		}
	}
	return &cp
}
