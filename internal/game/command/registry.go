package command

import (
	"fmt"
	"slices"
	"strings"
)

// Registry indexes commands by canonical name and alias.
type Registry struct {
	index map[string]*Command // name or alias → command
	names []string            // canonical names, sorted
}

// NewRegistry indexes cmds.
//
// Precondition: every name and alias across cmds is distinct.
// Postcondition: returns an error naming the first collision.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{index: make(map[string]*Command, len(cmds)*2)}
	owner := make(map[string]string, len(cmds)*2)

	claim := func(key string, cmd *Command, isAlias bool) error {
		if prev, taken := owner[key]; taken {
			if isAlias {
				return fmt.Errorf("duplicate alias %q: used by %q and %q", key, prev, cmd.Name)
			}
			return fmt.Errorf("duplicate command name %q (already claimed by %q)", key, prev)
		}
		owner[key] = cmd.Name
		r.index[key] = cmd
		return nil
	}

	for i := range cmds {
		cmd := &cmds[i]
		if err := claim(cmd.Name, cmd, false); err != nil {
			return nil, err
		}
		r.names = append(r.names, cmd.Name)
		for _, alias := range cmd.Aliases {
			if err := claim(alias, cmd, true); err != nil {
				return nil, err
			}
		}
	}
	slices.Sort(r.names)
	return r, nil
}

// DefaultRegistry returns a Registry over BuiltinCommands.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve finds a command by exact name or alias, falling back to a
// canonical name that input is an unambiguous prefix of.
//
// Postcondition: returns (nil, false) for unknown or ambiguous input.
func (r *Registry) Resolve(input string) (*Command, bool) {
	if cmd, ok := r.index[input]; ok {
		return cmd, true
	}
	if input == "" {
		return nil, false
	}
	var match *Command
	for _, name := range r.names {
		if !strings.HasPrefix(name, input) {
			continue
		}
		if match != nil {
			return nil, false
		}
		match = r.index[name]
	}
	return match, match != nil
}

// Commands returns every command sorted by name.
func (r *Registry) Commands() []*Command {
	out := make([]*Command, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.index[name])
	}
	return out
}

// CommandsByCategory groups Commands by category, each group sorted by name.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}
