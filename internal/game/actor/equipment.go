package actor

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/item"
)

// Slot names an actor equipment slot.
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotShield    Slot = "shield"
	SlotHelm      Slot = "helm"
	SlotCuirass   Slot = "cuirass"
	SlotGauntlets Slot = "gauntlets"
	SlotBoots     Slot = "boots"
	SlotGreaves   Slot = "greaves"
	SlotRobe      Slot = "robe"
	SlotRing1     Slot = "ring1"
	SlotRing2     Slot = "ring2"
	SlotAmulet    Slot = "amulet"
	SlotCirclet   Slot = "circlet"
)

// Slots lists every equipment slot in display order.
var Slots = []Slot{
	SlotWeapon, SlotShield, SlotHelm, SlotCuirass, SlotGauntlets, SlotBoots,
	SlotGreaves, SlotRobe, SlotRing1, SlotRing2, SlotAmulet, SlotCirclet,
}

// ParseSlot validates s as an equipment slot name.
func ParseSlot(s string) (Slot, error) {
	for _, sl := range Slots {
		if string(sl) == s {
			return sl, nil
		}
	}
	return "", fmt.Errorf("unknown equipment slot %q", s)
}

// Equipment maps slots to the item held there. Empty slots are absent.
type Equipment map[Slot]*item.Item

// Mods returns the sum of the modifiers of every equipped item.
func (e Equipment) Mods() item.Modifiers {
	var total item.Modifiers
	for _, sl := range Slots {
		if it := e[sl]; it != nil {
			total = total.Add(it.Mods)
		}
	}
	return total
}

// exclusive returns the slot that cannot be occupied together with s.
func exclusive(s Slot) (Slot, bool) {
	switch s {
	case SlotCuirass:
		return SlotRobe, true
	case SlotRobe:
		return SlotCuirass, true
	}
	return "", false
}

// resolveSlot maps a template slot to a concrete actor slot. Rings fill
// ring1, then ring2, then displace ring1.
func (e Equipment) resolveSlot(s item.Slot) (Slot, bool) {
	switch s {
	case item.SlotNone:
		return "", false
	case item.SlotRing:
		if e[SlotRing1] == nil {
			return SlotRing1, true
		}
		if e[SlotRing2] == nil {
			return SlotRing2, true
		}
		return SlotRing1, true
	}
	sl, err := ParseSlot(string(s))
	if err != nil {
		return "", false
	}
	return sl, true
}
