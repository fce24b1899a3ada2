// Package battle runs a hero roster through successive battles: it spawns
// encounters, drives the combat engine between player decisions, manages
// equipment between battles and persists the roster after each victory.
package battle

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/dice"
	"github.com/cory-johannsen/skirmish/internal/game/item"
	"github.com/cory-johannsen/skirmish/internal/game/npc"
	"github.com/cory-johannsen/skirmish/internal/game/reward"
	"github.com/cory-johannsen/skirmish/internal/game/ruleset"
)

// HeroID is the id of the hero created by NewRun.
const HeroID = "hero"

var (
	// ErrNoRoster is returned when an operation needs heroes and there are none.
	ErrNoRoster = errors.New("no heroes in roster")
	// ErrNoLivingHero is returned by Begin when every hero has fallen.
	ErrNoLivingHero = errors.New("no living hero to fight")
	// ErrNoBattle is returned by Submit when no battle is in progress.
	ErrNoBattle = errors.New("no battle in progress")
	// ErrBattleInProgress is returned by roster edits during a battle.
	ErrBattleInProgress = errors.New("battle in progress")
	// ErrUnknownHero is returned when a hero id is not in the roster.
	ErrUnknownHero = errors.New("unknown hero")
)

// Options tunes encounters and pacing.
type Options struct {
	// Seed is recorded on every battle state.
	Seed uint32
	// FoeCount is the number of monsters per encounter; values below 1 mean 1.
	FoeCount int
	// FoeLevelSpread widens each monster's level around the party level.
	FoeLevelSpread int
	// Pacer paces AI turns; nil means no pause.
	Pacer combat.Pacer
	// OnStep, when set, receives every intermediate state while AI turns
	// play out. It runs with the Service locked and must not call back into
	// the Service.
	OnStep func(*combat.State)
}

// Deps are the collaborators of a Service.
type Deps struct {
	Rules    combat.Rules
	Rewards  reward.Rules
	RNG      *dice.RNG
	Items    *item.Registry
	Monsters *npc.Registry
	Classes  *ruleset.Registry
	Store    RosterStore
	Logger   *zap.Logger
}

// Service owns the hero roster and the current battle.
// All methods are safe for concurrent use.
type Service struct {
	mu       sync.Mutex
	engine   *combat.Engine
	rng      *dice.RNG
	items    *item.Registry
	monsters *npc.Registry
	classes  *ruleset.Registry
	store    RosterStore
	opts     Options
	logger   *zap.Logger

	heroes []*actor.Actor
	state  *combat.State
}

// NewService wires a Service. The engine and the reward pipeline share
// d.RNG, so a battle is reproducible from the seed alone.
//
// Precondition: d.RNG, d.Items, d.Monsters, d.Classes and d.Store are non-nil.
func NewService(d Deps, opts Options) *Service {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.FoeCount < 1 {
		opts.FoeCount = 1
	}
	if opts.Pacer == nil {
		opts.Pacer = combat.NoPause
	}
	pipeline := reward.NewPipeline(d.Rewards, d.RNG, d.Items, d.Monsters, logger)
	return &Service{
		engine:   combat.NewEngine(d.Rules, d.RNG, pipeline, logger),
		rng:      d.RNG,
		items:    d.Items,
		monsters: d.Monsters,
		classes:  d.Classes,
		store:    d.Store,
		opts:     opts,
		logger:   logger,
	}
}

// Restore loads the saved roster, repairing each hero with Normalize.
// It reports whether the roster counts as a save.
func (s *Service) Restore(ctx context.Context) (bool, error) {
	heroes, err := s.store.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("restoring roster: %w", err)
	}
	for _, h := range heroes {
		h.Normalize()
		reward.RecomputeMaxima(h, false)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heroes = heroes
	s.state = nil
	s.logger.Info("roster restored", zap.Int("heroes", len(heroes)))
	return hasSave(heroes), nil
}

// NewRun discards the current roster and battle and starts over with a
// single level-1 hero of classID. Nothing is saved until the first victory.
func (s *Service) NewRun(_ context.Context, classID string) (*actor.Actor, error) {
	c, err := s.classes.Class(classID)
	if err != nil {
		return nil, err
	}
	h, err := ruleset.NewHero(c, HeroID, s.items)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.heroes = []*actor.Actor{h}
	s.state = nil
	s.logger.Info("new run", zap.String("class", classID))
	return h.Clone(), nil
}

// HasSave reports whether the roster carries progress: the lead hero is
// above level 1 or has experience.
func (s *Service) HasSave() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return hasSave(s.heroes)
}

func hasSave(heroes []*actor.Actor) bool {
	if len(heroes) == 0 {
		return false
	}
	return heroes[0].Level > 1 || heroes[0].XP > 0
}

// Heroes returns a deep copy of the roster.
func (s *Service) Heroes() []*actor.Actor {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.heroes)
}

// State returns the current battle state, or nil before the first battle.
// States are immutable once returned.
func (s *Service) State() *combat.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin spawns an encounter scaled to the strongest hero and plays AI turns
// until a hero is to act or the battle ends.
//
// Postcondition: on success the returned state is over or awaits a living
// hero.
func (s *Service) Begin(ctx context.Context) (*combat.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != nil && !s.state.Over {
		return nil, ErrBattleInProgress
	}
	if len(s.heroes) == 0 {
		return nil, ErrNoRoster
	}
	level, living := 0, false
	for _, h := range s.heroes {
		level = max(level, h.Level)
		living = living || h.Alive()
	}
	if !living {
		return nil, ErrNoLivingHero
	}

	foes, err := s.monsters.Encounter(level, s.opts.FoeCount, s.opts.FoeLevelSpread, s.rng, s.items)
	if err != nil {
		return nil, fmt.Errorf("beginning battle: %w", err)
	}
	st := s.engine.Init(s.heroes, foes)
	st.Seed = s.opts.Seed
	s.logger.Info("battle started", zap.Int("level", level), zap.Int("foes", len(foes)))
	return s.advance(ctx, st)
}

// Submit applies the current hero's action, then plays AI turns until a hero
// is to act again or the battle ends. A nil action lets the hero fight
// automatically. Validation errors leave the state unchanged.
func (s *Service) Submit(ctx context.Context, act combat.Action) (*combat.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == nil || s.state.Over {
		return s.state, ErrNoBattle
	}
	next, err := s.engine.Step(s.state, act)
	if err != nil {
		return s.state, err
	}
	s.logger.Debug("action submitted", zap.String("action", combat.Describe(act)), zap.Int("turn", next.Turn))
	return s.advance(ctx, next)
}

// advance runs AI turns from st and settles a finished battle.
//
// Precondition: s.mu is held.
func (s *Service) advance(ctx context.Context, st *combat.State) (*combat.State, error) {
	if s.opts.OnStep != nil {
		s.opts.OnStep(st)
		for next := range s.engine.StepUntilPlayerAsync(st, s.opts.Pacer) {
			s.opts.OnStep(next)
			st = next
		}
	} else {
		var err error
		st, err = s.engine.StepUntilPlayer(st, s.opts.Pacer)
		if err != nil {
			s.state = st
			return st, err
		}
	}
	s.state = st
	if !st.Over {
		return st, nil
	}
	return st, s.settle(ctx, st)
}

// settle copies the surviving party back into the roster and saves it after
// a victory with at least one living hero. A defeat keeps the pre-battle
// roster and saves nothing.
//
// Precondition: s.mu is held; st.Over.
func (s *Service) settle(ctx context.Context, st *combat.State) error {
	s.logger.Info("battle over", zap.Stringer("result", st.Result), zap.Int("turns", st.Turn))
	if st.Result != combat.ResultVictory || !st.PartyAlive() {
		return nil
	}
	s.heroes = cloneAll(st.Heroes())
	if err := s.store.Save(ctx, s.heroes); err != nil {
		return fmt.Errorf("saving roster: %w", err)
	}
	return nil
}

// hero finds a roster hero for an edit between battles.
//
// Precondition: s.mu is held.
func (s *Service) hero(heroID string) (*actor.Actor, error) {
	if s.state != nil && !s.state.Over {
		return nil, ErrBattleInProgress
	}
	for _, h := range s.heroes {
		if h.ID == heroID {
			return h, nil
		}
	}
	return nil, fmt.Errorf("hero %q: %w", heroID, ErrUnknownHero)
}

// Equip equips an inventory item on a hero between battles.
func (s *Service) Equip(_ context.Context, heroID, itemID string) (actor.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.hero(heroID)
	if err != nil {
		return "", err
	}
	slot, err := h.Equip(itemID)
	if err != nil {
		return "", err
	}
	reward.RecomputeMaxima(h, false)
	return slot, nil
}

// Unequip returns the item in slot to the hero's inventory between battles.
func (s *Service) Unequip(_ context.Context, heroID string, slot actor.Slot) (*item.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.hero(heroID)
	if err != nil {
		return nil, err
	}
	it, err := h.Unequip(slot)
	if err != nil {
		return nil, err
	}
	reward.RecomputeMaxima(h, false)
	return it, nil
}

// UseItem consumes a restoring item between battles and returns the
// narration line. Items without a restoring effect are kept and
// actor.ErrNoEffect is returned.
func (s *Service) UseItem(_ context.Context, heroID, itemID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, err := s.hero(heroID)
	if err != nil {
		return "", err
	}
	it, res, gained, err := h.Consume(itemID)
	if err != nil {
		return "", err
	}
	pool := h.HP
	switch res {
	case item.ResourceMP:
		pool = h.MP
	case item.ResourceSP:
		pool = h.SP
	}
	return fmt.Sprintf("%s uses %s and restores %d %s. (%d/%d %s)",
		h.Name, it.Name, gained, res, pool.Current, pool.Max, res), nil
}
