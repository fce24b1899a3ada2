// Package combat resolves turn-based party-vs-monster battles: initiative,
// attacks, abilities, status effects, AI decisions and end-of-battle outcome.
package combat

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/item"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

// Rewarder distributes post-victory rewards and returns the log lines it
// produced. heroes includes fallen heroes; the rewarder decides eligibility.
type Rewarder interface {
	Distribute(heroes, foes []*actor.Actor) []string
}

// Engine steps battles. It owns the RNG every combat decision draws from,
// so one Engine per battle gives reproducible transcripts.
// It is not safe for concurrent use; the caller must serialise access.
type Engine struct {
	rules    Rules
	rng      *dice.RNG
	rewarder Rewarder
	logger   *zap.Logger
}

// NewEngine creates an Engine.
//
// Precondition: rng must be non-nil. rewarder and logger may be nil.
func NewEngine(rules Rules, rng *dice.RNG, rewarder Rewarder, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{rules: rules, rng: rng, rewarder: rewarder, logger: logger}
}

// Rules returns the engine tuning.
func (e *Engine) Rules() Rules { return e.rules }

// Init builds the opening state. Actors are cloned, so the caller's values
// are never touched. Initiative is effective speed descending, then
// effective dex descending, then id descending.
//
// Precondition: actor ids are unique across party and foes.
// Postcondition: Turn is 0 and the log holds "Battle begins!".
func (e *Engine) Init(party, foes []*actor.Actor) *State {
	s := &State{
		Actors:   make(map[string]*actor.Actor, len(party)+len(foes)),
		Statuses: status.NewLedger(),
	}
	add := func(a *actor.Actor, ids *[]string) {
		if _, dup := s.Actors[a.ID]; dup {
			panic(fmt.Sprintf("combat: duplicate actor id %q", a.ID))
		}
		s.Actors[a.ID] = a.Clone()
		*ids = append(*ids, a.ID)
		s.Order = append(s.Order, a.ID)
	}
	for _, a := range party {
		add(a, &s.Party)
	}
	for _, a := range foes {
		add(a, &s.Foes)
	}
	sort.SliceStable(s.Order, func(i, j int) bool {
		a, b := s.Actors[s.Order[i]].Effective(), s.Actors[s.Order[j]].Effective()
		if a.Speed != b.Speed {
			return a.Speed > b.Speed
		}
		if a.Dex != b.Dex {
			return a.Dex > b.Dex
		}
		return s.Order[i] > s.Order[j]
	})
	s.logf(EventInfo, "Battle begins!")
	e.logger.Debug("battle initialised", zap.Strings("order", s.Order))
	return s
}

// Step performs exactly one actor's turn and returns the next state. The
// input state is never mutated.
//
// act is the submitted action for a living player; nil for players means
// auto-battle. Non-players ignore act and decide through the AI.
//
// Postcondition: when s.Over, returns s unchanged. On error, returns s
// unchanged and no RNG draw has happened. Otherwise the returned state's Turn
// is s.Turn+1.
func (e *Engine) Step(s *State, act Action) (*State, error) {
	if s.Over {
		return s, nil
	}
	id := s.Current()
	cur := s.Actors[id]
	stunned := false
	if cur.Alive() {
		_, stunned = s.Statuses.Skips(id)
	}

	var ability Ability
	if cur.Alive() && !stunned && cur.IsPlayer && act != nil {
		if err := e.validate(s, cur, act, &ability); err != nil {
			return s, err
		}
	}

	next := s.Clone()
	a := next.Actors[id]
	e.logger.Debug("step",
		zap.Int("turn", s.Turn),
		zap.String("actor", id),
		zap.String("action", Describe(act)),
	)

	switch {
	case !a.Alive():
		next.logf(EventInfo, "%s hesitates.", nameOf(a, id))
	case stunned:
		eff, _ := next.Statuses.Skips(id)
		next.Statuses.Tick(id)
		verb := "stunned"
		if eff.Kind == status.Paralyzed {
			verb = "paralyzed"
		}
		next.logf(EventStatus, "%s is %s and loses the turn.", a.Name, verb)
	default:
		next.Statuses.Tick(id)
		if !a.IsPlayer {
			act = DecideAction(next, a, e.rng, e.rules)
		} else if act == nil {
			act = AutoAction(next, a)
		}
		e.perform(next, a, act, ability)
		e.resolveOutcome(next)
	}
	next.Turn++
	return next, nil
}

// validate checks a submitted player action against the unmodified state.
func (e *Engine) validate(s *State, cur *actor.Actor, act Action, ability *Ability) error {
	switch act := act.(type) {
	case UseAbility:
		ab, err := validateAbility(cur, act)
		if err != nil {
			return err
		}
		*ability = ab
	case UseItem:
		it, ok := cur.FindItem(act.ItemID)
		if !ok {
			return fmt.Errorf("use item %s: %w", act.ItemID, actor.ErrNotInInventory)
		}
		if !it.Consumable {
			return fmt.Errorf("use item %s: %w", it.Name, actor.ErrNotConsumable)
		}
		if it.OnUse.Resource() == item.ResourceNone {
			return &UnusableError{ActorName: cur.Name, Ability: it.Name, Reason: "It has no effect in battle."}
		}
	}
	return nil
}

// perform resolves act for a on the working state s.
func (e *Engine) perform(s *State, a *actor.Actor, act Action, ability Ability) {
	switch act := act.(type) {
	case Attack:
		target := s.Actors[act.TargetID]
		if target == nil || !target.Alive() || target.IsPlayer == a.IsPlayer {
			s.logf(EventInfo, "%s hesitates.", a.Name)
			return
		}
		res := ResolveAttack(a, target, s.Statuses.ArmorDelta(target.ID), e.rng, e.rules)
		e.landAttack(s, a, target, res)
	case Defend:
		s.Statuses.Add(a.ID, status.NewDefend(e.rules.DefendTurns, e.rules.DefendPotency))
		s.logf(EventStatus, "%s raises their guard.", a.Name)
	case UseItem:
		it, res, gained, err := a.Consume(act.ItemID)
		if err != nil {
			s.logf(EventInfo, "%s hesitates.", a.Name)
			return
		}
		s.logf(EventItem, "%s uses %s and restores %d %s. (%s)", a.Name, it.Name, gained, res, poolText(a, res))
	case UseAbility:
		if ability.ID == "" {
			ab, err := validateAbility(a, act)
			if err != nil {
				s.logf(EventInfo, "%s hesitates.", a.Name)
				return
			}
			ability = ab
		}
		e.useAbility(s, a, ability, act.TargetID)
	default:
		s.logf(EventInfo, "%s hesitates.", a.Name)
	}
}

// landAttack applies status mitigation to res, deals the damage and logs the
// narrated line with the damage actually dealt.
func (e *Engine) landAttack(s *State, attacker, target *actor.Actor, res AttackResult) {
	if res.Hit {
		res.Damage = e.applyDamage(s, target, res.Damage)
	}
	s.logf(EventAttack, "%s", Narrate(attacker, target, res, target.HP.Current))
}

// applyDamage runs dmg through the target's parry and defend effects and
// subtracts the result from its HP.
//
// Postcondition: Returns the HP actually removed.
func (e *Engine) applyDamage(s *State, target *actor.Actor, dmg int) int {
	dmg = s.Statuses.MitigateIncoming(target.ID, dmg)
	return target.HP.Sub(dmg)
}

// resolveOutcome ends the battle when one side is wiped.
func (e *Engine) resolveOutcome(s *State) {
	partyAlive, foesAlive := s.PartyAlive(), s.FoesAlive()
	switch {
	case !partyAlive:
		s.Over = true
		s.Result = ResultDefeat
		s.logf(EventOutcome, "Defeat…")
		e.logger.Info("battle lost", zap.Int("turn", s.Turn))
	case !foesAlive:
		s.Over = true
		s.Result = ResultVictory
		s.logf(EventOutcome, "Victory!")
		if e.rewarder != nil {
			for _, line := range e.rewarder.Distribute(s.Heroes(), s.Enemies()) {
				s.logf(EventReward, "%s", line)
			}
		}
		e.logger.Info("battle won", zap.Int("turn", s.Turn))
	}
}

func poolText(a *actor.Actor, res item.Resource) string {
	var p actor.Pool
	switch res {
	case item.ResourceHP:
		p = a.HP
	case item.ResourceMP:
		p = a.MP
	case item.ResourceSP:
		p = a.SP
	}
	return fmt.Sprintf("%d/%d %s", p.Current, p.Max, res)
}

func nameOf(a *actor.Actor, id string) string {
	if a == nil {
		return id
	}
	return a.Name
}

// IsUnusable reports whether err is an UnusableError.
func IsUnusable(err error) bool {
	var ue *UnusableError
	return errors.As(err, &ue)
}
