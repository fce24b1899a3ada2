package combat_test

import (
	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/item"
)

func newHero(id string) *actor.Actor {
	return &actor.Actor{
		ID: id, Name: "Knight", IsPlayer: true, Level: 1,
		Base:      actor.Attributes{Str: 4, Dex: 3, Int: 1, Wis: 2, Vit: 3, Speed: 4, Armor: 3, Luck: 2},
		HP:        actor.NewPool(30),
		SP:        actor.NewPool(10),
		Equipment: actor.Equipment{},
	}
}

func newGoblin(id string) *actor.Actor {
	return &actor.Actor{
		ID: id, Name: "Goblin", Level: 1,
		Base:      actor.Attributes{Str: 2, Dex: 4, Int: 1, Wis: 1, Vit: 5, Speed: 3, Luck: 2},
		HP:        actor.NewPool(10),
		Tags:      actor.Tags{Humanoid: true, Goblinoid: true},
		Equipment: actor.Equipment{},
	}
}

func newWeapon(name string, dmg int) *item.Item {
	return &item.Item{
		ID: item.NewID(), Code: name, Name: name, Type: item.TypeWeapon,
		Slot: item.SlotWeapon, Mods: item.Modifiers{Damage: dmg},
	}
}

func newArmor(slot item.Slot, armor int) *item.Item {
	return &item.Item{
		ID: item.NewID(), Code: string(slot), Name: string(slot), Type: item.TypeArmor,
		Slot: slot, Mods: item.Modifiers{Armor: armor},
	}
}

func newPotion(e item.Effect) *item.Item {
	return &item.Item{
		ID: item.NewID(), Code: string(e), Name: "Potion", Type: item.TypePotion,
		Consumable: true, OnUse: e,
	}
}
