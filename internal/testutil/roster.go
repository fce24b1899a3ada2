package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/item"
)

// RosterStore is the persistence surface every roster backend implements.
type RosterStore interface {
	Load(ctx context.Context) ([]*actor.Actor, error)
	Save(ctx context.Context, heroes []*actor.Actor) error
}

// Hero returns a geared player actor for persistence tests.
func Hero(id, name string, level int) *actor.Actor {
	sword := &item.Item{
		ID: "itm-" + id, Code: "iron-sword", Name: "Iron Sword",
		Type: item.TypeWeapon, Slot: item.SlotWeapon, Rarity: item.RarityCommon,
		Mods: item.Modifiers{Str: 2},
	}
	return &actor.Actor{
		ID: id, Name: name, IsPlayer: true, Level: level, XP: 12, XPToNext: 100,
		Base:      actor.Attributes{Str: 4, Dex: 3, Int: 1, Wis: 2, Vit: 3, Speed: 4, Armor: 3, Luck: 2},
		HP:        actor.NewPool(20),
		SP:        actor.NewPool(8),
		Gold:      35,
		Equipment: actor.Equipment{actor.SlotWeapon: sword},
		Inventory: []*item.Item{{
			ID: "itm-p-" + id, Code: "heal-lesser", Name: "Lesser Healing Potion",
			Type: item.TypePotion, Rarity: item.RarityCommon, Consumable: true,
		}},
	}
}

// RunRosterStoreTests exercises the behavior shared by all roster backends.
// store must start empty; the subtests run in order and share it.
func RunRosterStoreTests(t *testing.T, store RosterStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty", func(t *testing.T) {
		heroes, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, heroes)
	})

	t.Run("save keeps order and gear", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, []*actor.Actor{Hero("hero", "Knight", 3), Hero("ally", "Cleric", 2)}))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "hero", got[0].ID)
		assert.Equal(t, "ally", got[1].ID)
		assert.Equal(t, 3, got[0].Level)
		assert.Equal(t, 35, got[0].Gold)
		assert.Equal(t, 20, got[0].HP.Max)
		require.NotNil(t, got[0].Weapon())
		assert.Equal(t, "iron-sword", got[0].Weapon().Code)
		require.Len(t, got[0].Inventory, 1)
		assert.Equal(t, "heal-lesser", got[0].Inventory[0].Code)
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, []*actor.Actor{Hero("hero", "Knight", 5)}))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 5, got[0].Level)
	})

	t.Run("save empty clears", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, nil))
		got, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
