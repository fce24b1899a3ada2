package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/command"
	"github.com/cory-johannsen/skirmish/internal/game/item"
)

func foe(id, name string, hp int) *actor.Actor {
	return &actor.Actor{ID: id, Name: name, HP: actor.Pool{Current: hp, Max: 10}}
}

func battle() *combat.State {
	g1 := foe("goblin-1-aaaaa", "Goblin", 5)
	dead := foe("rat-1-bbbbb", "Rat", 0)
	g2 := foe("wolf-1-ccccc", "Wolf", 7)
	return &combat.State{
		Foes:   []string{g1.ID, dead.ID, g2.ID},
		Actors: map[string]*actor.Actor{g1.ID: g1, dead.ID: dead, g2.ID: g2},
	}
}

func hero() *actor.Actor {
	return &actor.Actor{
		ID: "hero", Name: "Knight", IsPlayer: true, Level: 2,
		Inventory: []*item.Item{
			{ID: "itm-1", Code: "heal-lesser", Name: "Lesser Healing Potion", Type: item.TypePotion, Consumable: true},
			{ID: "itm-2", Code: "iron-shield", Name: "Iron Shield", Type: item.TypeArmor, Slot: item.SlotShield},
		},
	}
}

func interpret(t *testing.T, line string, st *combat.State) (command.Request, error) {
	t.Helper()
	return command.NewInterpreter(command.DefaultRegistry()).Interpret(line, st, hero())
}

func TestInterpret_Empty(t *testing.T) {
	req, err := interpret(t, "   ", nil)
	require.NoError(t, err)
	assert.Equal(t, command.KindNone, req.Kind)
}

func TestInterpret_Unknown(t *testing.T) {
	_, err := interpret(t, "dance", nil)
	assert.ErrorIs(t, err, command.ErrUnknownCommand)
}

func TestInterpret_AttackTargets(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"attack 1", "goblin-1-aaaaa"},
		{"attack 2", "wolf-1-ccccc"},
		{"a wolf", "wolf-1-ccccc"},
		{"hit GOB", "goblin-1-aaaaa"},
		{"attack goblin-1-aaaaa", "goblin-1-aaaaa"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			req, err := interpret(t, tt.line, battle())
			require.NoError(t, err)
			assert.Equal(t, command.KindAction, req.Kind)
			assert.Equal(t, combat.Attack{TargetID: tt.want}, req.Action)
		})
	}
}

func TestInterpret_AttackSkipsFallenFoes(t *testing.T) {
	_, err := interpret(t, "attack rat", battle())
	assert.ErrorIs(t, err, command.ErrNoSuchTarget)
	_, err = interpret(t, "attack 3", battle())
	assert.ErrorIs(t, err, command.ErrNoSuchTarget)
}

func TestInterpret_AttackWithoutTarget(t *testing.T) {
	_, err := interpret(t, "attack", battle())
	assert.ErrorIs(t, err, command.ErrMissingArgument)

	st := battle()
	st.Actors["wolf-1-ccccc"].HP.Current = 0
	req, err := interpret(t, "attack", st)
	require.NoError(t, err)
	assert.Equal(t, combat.Attack{TargetID: "goblin-1-aaaaa"}, req.Action)
}

func TestInterpret_BattleCommandsNeedBattle(t *testing.T) {
	for _, line := range []string{"attack 1", "defend", "auto", "ability power_slash"} {
		_, err := interpret(t, line, nil)
		assert.ErrorIs(t, err, command.ErrNotInBattle, line)
	}
	over := battle()
	over.Over = true
	_, err := interpret(t, "defend", over)
	assert.ErrorIs(t, err, command.ErrNotInBattle)
}

func TestInterpret_Ability(t *testing.T) {
	for _, line := range []string{"ability power_slash_lv1", "ability power_slash", "skill Power-Slash"} {
		req, err := interpret(t, line, battle())
		require.NoError(t, err, line)
		assert.Equal(t, combat.UseAbility{AbilityID: combat.PowerSlash}, req.Action, line)
	}

	req, err := interpret(t, "ability sunder wolf", battle())
	require.NoError(t, err)
	assert.Equal(t, combat.UseAbility{AbilityID: combat.Sunder, TargetID: "wolf-1-ccccc"}, req.Action)

	req, err = interpret(t, "ability nerve strike on 2", battle())
	require.NoError(t, err)
	assert.Equal(t, combat.UseAbility{AbilityID: combat.NerveStrike, TargetID: "wolf-1-ccccc"}, req.Action)

	req, err = interpret(t, "ability shield bash", battle())
	require.NoError(t, err)
	assert.Equal(t, combat.UseAbility{AbilityID: combat.ShieldBash}, req.Action)

	_, err = interpret(t, "ability fireball", battle())
	assert.ErrorIs(t, err, combat.ErrUnknownAbility)
	_, err = interpret(t, "ability", battle())
	assert.ErrorIs(t, err, command.ErrMissingArgument)
}

func TestInterpret_AttackAtClause(t *testing.T) {
	for _, line := range []string{"attack at wolf", "hit on 2", "a wolf"} {
		req, err := interpret(t, line, battle())
		require.NoError(t, err, line)
		assert.Equal(t, combat.Attack{TargetID: "wolf-1-ccccc"}, req.Action, line)
	}
}

func TestInterpret_DefendAndAuto(t *testing.T) {
	req, err := interpret(t, "defend", battle())
	require.NoError(t, err)
	assert.Equal(t, combat.Defend{}, req.Action)

	req, err = interpret(t, "auto", battle())
	require.NoError(t, err)
	assert.Equal(t, command.KindAction, req.Kind)
	assert.Nil(t, req.Action)
}

func TestInterpret_UseInAndOutOfBattle(t *testing.T) {
	req, err := interpret(t, "use heal-lesser", battle())
	require.NoError(t, err)
	assert.Equal(t, combat.UseItem{ItemID: "itm-1"}, req.Action)

	req, err = interpret(t, "drink lesser heal", nil)
	require.NoError(t, err)
	assert.Equal(t, command.Request{Kind: command.KindUse, Arg: "itm-1"}, req)

	_, err = interpret(t, "use elixir", nil)
	assert.ErrorIs(t, err, command.ErrNoSuchItem)
	_, err = interpret(t, "use", nil)
	assert.ErrorIs(t, err, command.ErrMissingArgument)
}

func TestInterpret_EquipAndUnequip(t *testing.T) {
	req, err := interpret(t, "equip iron shield", nil)
	require.NoError(t, err)
	assert.Equal(t, command.Request{Kind: command.KindEquip, Arg: "itm-2"}, req)

	req, err = interpret(t, "unequip Shield", nil)
	require.NoError(t, err)
	assert.Equal(t, command.Request{Kind: command.KindUnequip, Slot: actor.SlotShield}, req)

	_, err = interpret(t, "unequip tail", nil)
	assert.Error(t, err)
}

func TestInterpret_RosterAndSystem(t *testing.T) {
	tests := []struct {
		line string
		want command.Request
	}{
		{"fight", command.Request{Kind: command.KindFight}},
		{"new Mage", command.Request{Kind: command.KindNew, Arg: "mage"}},
		{"status", command.Request{Kind: command.KindStatus}},
		{"skills", command.Request{Kind: command.KindSkills}},
		{"help", command.Request{Kind: command.KindHelp}},
		{"q", command.Request{Kind: command.KindQuit}},
	}
	for _, tt := range tests {
		req, err := interpret(t, tt.line, nil)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, req, tt.line)
	}
	_, err := interpret(t, "new", nil)
	assert.ErrorIs(t, err, command.ErrMissingArgument)
}
