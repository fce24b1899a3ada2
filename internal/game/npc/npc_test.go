package npc_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/item"
	"github.com/cory-johannsen/skirmish/internal/game/npc"
)

const goblinYAML = `
id: goblin
name: Goblin
min_level: 1
max_level: 4
tags: [humanoid, goblinoid]
base: {hp: 10, str: 2, dex: 4, int: 1, wis: 1, vit: 5, speed: 3, luck: 2}
growth: {hp: 2, dex: 1}
equipment:
  - slot: weapon
    items: [goblin-club, iron-dagger]
  - slot: helm
    items: [goblin-hide-helm]
    chance: 0.3
loot:
  exclusive: true
  items:
    - {item: heal-lesser, chance: 0.26}
    - {item: stamina-lesser, chance: 0.07}
`

const orcYAML = `
id: orc
name: Orc
min_level: 6
max_level: 15
tags: [humanoid]
resist: {poison: 20}
base: {hp: 32, str: 11, dex: 7, int: 5, wis: 4, vit: 9, speed: 8, armor: 1, luck: 3}
growth: {hp: 4, str: 1, vit: 1, speed: 0.5, armor: 0.3}
`

func items(t *testing.T) *item.Registry {
	t.Helper()
	r, err := item.ParseTemplates([]byte(`
items:
  - {code: goblin-club, name: Goblin Club, type: weapon, slot: weapon, base_power: 3}
  - {code: iron-dagger, name: Iron Dagger, type: weapon, slot: weapon, base_power: 3}
  - {code: goblin-hide-helm, name: Goblin Hide Helm, type: armor, slot: helm, mods: {armor: 1}}
`))
	require.NoError(t, err)
	reg := item.NewRegistry()
	for _, tmpl := range r {
		require.NoError(t, reg.Register(tmpl))
	}
	return reg
}

func mustTemplate(t *testing.T, src string) *npc.Template {
	t.Helper()
	tmpl, err := npc.LoadTemplateFromBytes([]byte(src))
	require.NoError(t, err)
	return tmpl
}

func TestLoadTemplateFromBytes(t *testing.T) {
	g := mustTemplate(t, goblinYAML)
	assert.Equal(t, "Goblin", g.Name)
	assert.Equal(t, 4, g.MaxLevel)
	require.NotNil(t, g.Loot)
	assert.True(t, g.Loot.Exclusive)
	assert.Equal(t, 1, g.Loot.Items[0].MinQty)

	tags := g.ActorTags()
	assert.True(t, tags.Humanoid)
	assert.True(t, tags.Goblinoid)
	assert.False(t, tags.Beast)

	o := mustTemplate(t, orcYAML)
	assert.Equal(t, 20, o.ActorTags().Resist["poison"])
}

func TestTemplate_ValidateCollectsErrors(t *testing.T) {
	_, err := npc.LoadTemplateFromBytes([]byte(`
id: broken
min_level: 5
max_level: 2
tags: [dragon]
base: {hp: 0}
equipment:
  - slot: tail
    items: []
`))
	require.Error(t, err)
	for _, want := range []string{"name", "level range", "base hp", "dragon", "tail", "items must not be empty"} {
		assert.Contains(t, err.Error(), want)
	}

	_, err = npc.LoadTemplateFromBytes([]byte(`name: Nameless`))
	assert.ErrorContains(t, err, "id must not be empty")
}

func TestSpawn_ScalesWithLevel(t *testing.T) {
	o := mustTemplate(t, orcYAML)
	a, err := npc.Spawn(o, 9, dice.NewSeededRNG(1, nil), items(t))
	require.NoError(t, err)

	assert.Equal(t, 9, a.Level)
	assert.Equal(t, "orc", a.TemplateID)
	assert.True(t, strings.HasPrefix(a.ID, "orc-9-"))
	assert.Len(t, strings.TrimPrefix(a.ID, "orc-9-"), 5)
	assert.Equal(t, actor.Pool{Current: 64, Max: 64}, a.HP)
	assert.Equal(t, 19, a.Base.Str)
	assert.Equal(t, 12, a.Base.Speed, "8 + 0.5*8")
	assert.Equal(t, 3, a.Base.Armor, "floor(1 + 0.3*8)")
	assert.Equal(t, 7, a.Base.Dex)
	assert.False(t, a.IsPlayer)
	assert.Equal(t, 0, a.SP.Max)
}

func TestSpawn_ClampsLevel(t *testing.T) {
	g := mustTemplate(t, goblinYAML)
	a, err := npc.Spawn(g, 12, dice.NewSeededRNG(1, nil), items(t))
	require.NoError(t, err)
	assert.Equal(t, 4, a.Level)
	assert.Equal(t, 16, a.HP.Max)

	a, err = npc.Spawn(g, -3, dice.NewSeededRNG(1, nil), items(t))
	require.NoError(t, err)
	assert.Equal(t, 1, a.Level)
	assert.Equal(t, 10, a.HP.Max)
}

func TestSpawn_EquipsFromPools(t *testing.T) {
	g := mustTemplate(t, goblinYAML)
	reg := items(t)
	rapid.Check(t, func(rt *rapid.T) {
		a, err := npc.Spawn(g, 2, dice.NewSeededRNG(rapid.Uint32().Draw(rt, "seed"), nil), reg)
		require.NoError(rt, err)
		w := a.Weapon()
		require.NotNil(rt, w)
		assert.Contains(rt, []string{"goblin-club", "iron-dagger"}, w.Code)
		if helm := a.Equipment[actor.SlotHelm]; helm != nil {
			assert.Equal(rt, "goblin-hide-helm", helm.Code)
		}
	})
}

func TestSpawn_Deterministic(t *testing.T) {
	g := mustTemplate(t, goblinYAML)
	reg := items(t)
	a, err := npc.Spawn(g, 3, dice.NewSeededRNG(42, nil), reg)
	require.NoError(t, err)
	b, err := npc.Spawn(g, 3, dice.NewSeededRNG(42, nil), reg)
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, a.Weapon().Code, b.Weapon().Code)
	assert.NotEqual(t, a.Weapon().ID, b.Weapon().ID)
}

func TestSpawn_UnknownEquipmentFails(t *testing.T) {
	g := mustTemplate(t, goblinYAML)
	_, err := npc.Spawn(g, 1, dice.NewSeededRNG(1, nil), item.NewRegistry())
	assert.ErrorIs(t, err, item.ErrUnknownItem)
}

func registry(t *testing.T) *npc.Registry {
	t.Helper()
	r, err := npc.NewRegistry([]*npc.Template{mustTemplate(t, goblinYAML), mustTemplate(t, orcYAML)})
	require.NoError(t, err)
	return r
}

func TestRegistry_PickForLevel(t *testing.T) {
	r := registry(t)
	rng := dice.NewSeededRNG(1, nil)
	assert.Equal(t, "goblin", r.PickForLevel(2, rng).ID)
	assert.Equal(t, "orc", r.PickForLevel(10, rng).ID)
	assert.Equal(t, "goblin", r.PickForLevel(5, rng).ID, "goblin range is one level away, orc one level away; lowest id wins")
	assert.Equal(t, "orc", r.PickForLevel(40, rng).ID)

	empty, err := npc.NewRegistry(nil)
	require.NoError(t, err)
	assert.Nil(t, empty.PickForLevel(1, rng))
}

func TestRegistry_DuplicateID(t *testing.T) {
	_, err := npc.NewRegistry([]*npc.Template{mustTemplate(t, goblinYAML), mustTemplate(t, goblinYAML)})
	assert.Error(t, err)
}

func TestRegistry_LootTable(t *testing.T) {
	r := registry(t)
	lt, ok := r.LootTable("goblin")
	require.True(t, ok)
	assert.Len(t, lt.Items, 2)
	_, ok = r.LootTable("orc")
	assert.False(t, ok)
	_, ok = r.LootTable("dragon")
	assert.False(t, ok)
}

func TestRegistry_Encounter(t *testing.T) {
	r := registry(t)
	rapid.Check(t, func(rt *rapid.T) {
		level := rapid.IntRange(1, 12).Draw(rt, "level")
		count := rapid.IntRange(1, 4).Draw(rt, "count")
		spread := rapid.IntRange(0, 2).Draw(rt, "spread")
		foes, err := r.Encounter(level, count, spread, dice.NewSeededRNG(rapid.Uint32().Draw(rt, "seed"), nil), items(t))
		require.NoError(rt, err)
		require.Len(rt, foes, count)
		ids := map[string]bool{}
		for _, f := range foes {
			assert.False(rt, ids[f.ID], "duplicate id %s", f.ID)
			ids[f.ID] = true
			assert.True(rt, f.Alive())
		}
	})
}

func TestLoadRegistry_FromDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "goblin.yaml"), []byte(goblinYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orc.yaml"), []byte(orcYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	r, err := npc.LoadRegistry(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"goblin", "orc"}, r.IDs())

	_, err = npc.LoadRegistry(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestRegistry_CheckItems(t *testing.T) {
	r := registry(t)
	err := r.CheckItems(items(t))
	require.Error(t, err, "loot potions are not in the test item set")
	assert.ErrorIs(t, err, item.ErrUnknownItem)
	assert.Contains(t, err.Error(), `monster "goblin" loot "heal-lesser"`)
	assert.NotContains(t, err.Error(), "goblin-club")

	orcOnly, err := npc.NewRegistry([]*npc.Template{mustTemplate(t, orcYAML)})
	require.NoError(t, err)
	assert.NoError(t, orcOnly.CheckItems(item.NewRegistry()))
}
