package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r)
	assert.Len(t, r.Commands(), len(BuiltinCommands()))
}

func TestResolve_CanonicalName(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("attack")
	assert.True(t, ok)
	assert.Equal(t, "attack", cmd.Name)
	assert.Equal(t, HandlerAttack, cmd.Handler)
}

func TestResolve_Alias(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("skill")
	assert.True(t, ok)
	assert.Equal(t, "ability", cmd.Name)
}

func TestResolve_NotFound(t *testing.T) {
	r := DefaultRegistry()

	_, ok := r.Resolve("flee")
	assert.False(t, ok)
}

func TestResolve_UniquePrefix(t *testing.T) {
	r := DefaultRegistry()

	cmd, ok := r.Resolve("def")
	require.True(t, ok)
	assert.Equal(t, "defend", cmd.Name)

	cmd, ok = r.Resolve("unequ")
	require.True(t, ok)
	assert.Equal(t, "unequip", cmd.Name)
}

func TestResolve_AmbiguousPrefix(t *testing.T) {
	r := DefaultRegistry()

	// skills and status
	_, ok := r.Resolve("s")
	assert.False(t, ok)
	_, ok = r.Resolve("")
	assert.False(t, ok)
}

func TestResolve_AllHandlers(t *testing.T) {
	r := DefaultRegistry()

	tests := []struct {
		input   string
		handler string
	}{
		{"a", HandlerAttack},
		{"ab", HandlerAbility},
		{"d", HandlerDefend},
		{"drink", HandlerUse},
		{"auto", HandlerAuto},
		{"f", HandlerFight},
		{"new", HandlerNew},
		{"wield", HandlerEquip},
		{"remove", HandlerUnequip},
		{"st", HandlerStatus},
		{"abilities", HandlerSkills},
		{"?", HandlerHelp},
		{"exit", HandlerQuit},
	}

	for _, tt := range tests {
		cmd, ok := r.Resolve(tt.input)
		require.True(t, ok, "input %q not found", tt.input)
		assert.Equal(t, tt.handler, cmd.Handler, "input %q wrong handler", tt.input)
	}
}

func TestNewRegistry_DuplicateName(t *testing.T) {
	cmds := []Command{
		{Name: "test", Handler: "a"},
		{Name: "test", Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate command name")
}

func TestNewRegistry_DuplicateAlias(t *testing.T) {
	cmds := []Command{
		{Name: "test1", Aliases: []string{"t"}, Handler: "a"},
		{Name: "test2", Aliases: []string{"t"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate alias")
}

func TestNewRegistry_AliasShadowsName(t *testing.T) {
	cmds := []Command{
		{Name: "attack", Handler: "a"},
		{Name: "strike", Aliases: []string{"attack"}, Handler: "b"},
	}
	_, err := NewRegistry(cmds)
	assert.Error(t, err)
}

func TestCommands_SortedByName(t *testing.T) {
	cmds := DefaultRegistry().Commands()
	for i := 1; i < len(cmds); i++ {
		assert.Less(t, cmds[i-1].Name, cmds[i].Name)
	}
}

func TestCommandsByCategory(t *testing.T) {
	r := DefaultRegistry()
	cats := r.CommandsByCategory()

	assert.Contains(t, cats, CategoryBattle)
	assert.Contains(t, cats, CategoryRoster)
	assert.Contains(t, cats, CategorySystem)
	assert.Len(t, cats[CategorySystem], 2)
}

func TestPropertyAllAliasesResolveToCanonical(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := DefaultRegistry()
		cmds := r.Commands()
		idx := rapid.IntRange(0, len(cmds)-1).Draw(t, "cmd_idx")
		cmd := cmds[idx]

		resolved, ok := r.Resolve(cmd.Name)
		if !ok {
			t.Fatalf("canonical name %q did not resolve", cmd.Name)
		}
		if resolved.Name != cmd.Name {
			t.Fatalf("canonical name %q resolved to %q", cmd.Name, resolved.Name)
		}

		for _, alias := range cmd.Aliases {
			aliasResolved, ok := r.Resolve(alias)
			if !ok {
				t.Fatalf("alias %q did not resolve", alias)
			}
			if aliasResolved.Name != cmd.Name {
				t.Fatalf("alias %q resolved to %q, expected %q", alias, aliasResolved.Name, cmd.Name)
			}
		}
	})
}
