package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
)

var (
	// ErrUnknownCommand is returned for input that names no command.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrMissingArgument is returned when a command needs an argument.
	ErrMissingArgument = errors.New("missing argument")
	// ErrNotInBattle is returned for battle commands outside a battle.
	ErrNotInBattle = errors.New("not in battle")
	// ErrNoSuchTarget is returned when no living foe matches.
	ErrNoSuchTarget = errors.New("no such target")
	// ErrNoSuchItem is returned when no carried item matches.
	ErrNoSuchItem = errors.New("no such item")
)

// Kind is the request kind produced by Interpret.
type Kind int

const (
	KindNone Kind = iota
	// KindAction submits Request.Action to the battle; a nil Action means auto.
	KindAction
	KindFight
	KindNew
	KindEquip
	KindUnequip
	KindUse
	KindStatus
	KindSkills
	KindHelp
	KindQuit
)

// Request is one interpreted line of player input.
type Request struct {
	Kind   Kind
	Action combat.Action
	// Arg carries the class id for KindNew and the item id for KindEquip
	// and KindUse.
	Arg  string
	Slot actor.Slot
}

// Interpreter resolves parsed input against the registry and game state.
type Interpreter struct {
	reg *Registry
}

// NewInterpreter returns an Interpreter over reg.
func NewInterpreter(reg *Registry) *Interpreter {
	return &Interpreter{reg: reg}
}

// Interpret turns line into a Request. st is the running battle or nil;
// hero is the hero whose inventory item names are resolved against.
//
// Postcondition: an empty line yields KindNone and no error.
func (in *Interpreter) Interpret(line string, st *combat.State, hero *actor.Actor) (Request, error) {
	p := Parse(line)
	if p.Verb == "" {
		return Request{}, nil
	}
	cmd, ok := in.reg.Resolve(p.Verb)
	if !ok {
		return Request{}, fmt.Errorf("%w: %q", ErrUnknownCommand, p.Verb)
	}
	inBattle := st != nil && !st.Over

	switch cmd.Handler {
	case HandlerAttack:
		if !inBattle {
			return Request{}, ErrNotInBattle
		}
		target, err := resolveFoe(st, attackTarget(p))
		if err != nil {
			return Request{}, err
		}
		return Request{Kind: KindAction, Action: combat.Attack{TargetID: target}}, nil

	case HandlerAbility:
		if !inBattle {
			return Request{}, ErrNotInBattle
		}
		if len(p.Words) == 0 {
			return Request{}, fmt.Errorf("%w: usage: %s", ErrMissingArgument, cmd.Usage)
		}
		id, target, err := splitAbility(p)
		if err != nil {
			return Request{}, err
		}
		act := combat.UseAbility{AbilityID: id}
		if target != "" {
			if act.TargetID, err = resolveFoe(st, target); err != nil {
				return Request{}, err
			}
		}
		return Request{Kind: KindAction, Action: act}, nil

	case HandlerDefend:
		if !inBattle {
			return Request{}, ErrNotInBattle
		}
		return Request{Kind: KindAction, Action: combat.Defend{}}, nil

	case HandlerAuto:
		if !inBattle {
			return Request{}, ErrNotInBattle
		}
		return Request{Kind: KindAction}, nil

	case HandlerUse:
		id, err := resolveItem(hero, p.Operand, cmd.Usage)
		if err != nil {
			return Request{}, err
		}
		if inBattle {
			return Request{Kind: KindAction, Action: combat.UseItem{ItemID: id}}, nil
		}
		return Request{Kind: KindUse, Arg: id}, nil

	case HandlerEquip:
		id, err := resolveItem(hero, p.Operand, cmd.Usage)
		if err != nil {
			return Request{}, err
		}
		return Request{Kind: KindEquip, Arg: id}, nil

	case HandlerUnequip:
		if p.Operand == "" {
			return Request{}, fmt.Errorf("%w: usage: %s", ErrMissingArgument, cmd.Usage)
		}
		slot, err := actor.ParseSlot(strings.ToLower(p.Operand))
		if err != nil {
			return Request{}, err
		}
		return Request{Kind: KindUnequip, Slot: slot}, nil

	case HandlerNew:
		if len(p.Words) == 0 {
			return Request{}, fmt.Errorf("%w: usage: %s", ErrMissingArgument, cmd.Usage)
		}
		return Request{Kind: KindNew, Arg: strings.ToLower(p.Words[0])}, nil

	case HandlerFight:
		return Request{Kind: KindFight}, nil
	case HandlerStatus:
		return Request{Kind: KindStatus}, nil
	case HandlerSkills:
		return Request{Kind: KindSkills}, nil
	case HandlerHelp:
		return Request{Kind: KindHelp}, nil
	case HandlerQuit:
		return Request{Kind: KindQuit}, nil
	}
	return Request{}, fmt.Errorf("%w: %q", ErrUnknownCommand, p.Verb)
}

// attackTarget accepts "attack 2", "attack goblin" and "attack at goblin".
func attackTarget(p Input) string {
	if p.Target != "" {
		return p.Target
	}
	if len(p.Words) > 1 && isTargetMarker(p.Words[0]) {
		return strings.Join(p.Words[1:], " ")
	}
	return p.Operand
}

// splitAbility separates the ability name from its target. With an explicit
// "on" clause the whole operand names the ability; otherwise the full operand
// is tried first, then the first word with the rest as target.
func splitAbility(p Input) (combat.AbilityID, string, error) {
	if p.Target != "" {
		id, err := resolveAbility(p.Operand)
		return id, p.Target, err
	}
	if id, err := resolveAbility(p.Operand); err == nil {
		return id, "", nil
	}
	id, err := resolveAbility(p.Words[0])
	if err != nil {
		return "", "", err
	}
	return id, strings.Join(p.Words[1:], " "), nil
}

// resolveFoe matches token against the living foes: a 1-based position, an
// actor id, or a name prefix. An empty token picks the only living foe.
func resolveFoe(st *combat.State, token string) (string, error) {
	var living []*actor.Actor
	for _, f := range st.Enemies() {
		if f.Alive() {
			living = append(living, f)
		}
	}
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		if len(living) == 1 {
			return living[0].ID, nil
		}
		return "", fmt.Errorf("%w: name a target", ErrMissingArgument)
	}
	if n, err := strconv.Atoi(token); err == nil {
		if n >= 1 && n <= len(living) {
			return living[n-1].ID, nil
		}
		return "", fmt.Errorf("%w: %d", ErrNoSuchTarget, n)
	}
	for _, f := range living {
		if strings.ToLower(f.ID) == token {
			return f.ID, nil
		}
	}
	for _, f := range living {
		if strings.HasPrefix(strings.ToLower(f.Name), token) {
			return f.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoSuchTarget, token)
}

// resolveAbility accepts an ability id, the id without its level suffix, or
// the display name with spaces or dashes.
func resolveAbility(token string) (combat.AbilityID, error) {
	want := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(token))
	for _, id := range combat.AbilityIDs() {
		ab := combat.MustAbility(id)
		base := string(id)
		if i := strings.LastIndex(base, "_lv"); i > 0 {
			base = base[:i]
		}
		name := strings.ReplaceAll(strings.ToLower(ab.Name), " ", "_")
		if want == string(id) || want == base || want == name {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %q", combat.ErrUnknownAbility, token)
}

// resolveItem matches token against hero's inventory by id, code, or
// case-insensitive name prefix.
func resolveItem(hero *actor.Actor, token, usage string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: usage: %s", ErrMissingArgument, usage)
	}
	if hero == nil {
		return "", fmt.Errorf("%w: %q", ErrNoSuchItem, token)
	}
	lower := strings.ToLower(token)
	for _, it := range hero.Inventory {
		if it.ID == token || it.Code == lower {
			return it.ID, nil
		}
	}
	for _, it := range hero.Inventory {
		if strings.HasPrefix(strings.ToLower(it.Name), lower) {
			return it.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoSuchItem, token)
}
