// Package console runs the interactive text loop: it reads commands, hands
// them to the battle service and renders what comes back.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/frontend/render"
	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/command"
	"github.com/cory-johannsen/skirmish/internal/game/item"
)

// Game is the slice of the battle service the console drives.
type Game interface {
	Heroes() []*actor.Actor
	State() *combat.State
	NewRun(ctx context.Context, classID string) (*actor.Actor, error)
	Begin(ctx context.Context) (*combat.State, error)
	Submit(ctx context.Context, act combat.Action) (*combat.State, error)
	Equip(ctx context.Context, heroID, itemID string) (actor.Slot, error)
	Unequip(ctx context.Context, heroID string, slot actor.Slot) (*item.Item, error)
	UseItem(ctx context.Context, heroID, itemID string) (string, error)
}

// Console is the interactive front end. Show may be installed as the
// service's step callback so AI turns are printed as they play out.
type Console struct {
	mu     sync.Mutex
	out    io.Writer
	reg    *command.Registry
	interp *command.Interpreter
	game   Game
	logger *zap.Logger
	shown  int
}

// New returns a Console writing to out. SetGame must be called before Run.
func New(out io.Writer, reg *command.Registry, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Console{out: out, reg: reg, interp: command.NewInterpreter(reg), logger: logger}
}

// SetGame attaches the service. It is separate from New so Show can be
// handed to the service before the service exists.
func (c *Console) SetGame(g Game) { c.game = g }

// Show prints the log events of st not yet printed.
func (c *Console) Show(st *combat.State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if st == nil || c.shown >= len(st.Log) {
		return
	}
	fmt.Fprint(c.out, render.Events(st.Log[c.shown:]))
	c.shown = len(st.Log)
}

func (c *Console) resetLog() {
	c.mu.Lock()
	c.shown = 0
	c.mu.Unlock()
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

// Run reads commands from in until quit, end of input, or ctx is done.
//
// Postcondition: returns nil on quit or end of input, ctx.Err() on cancellation.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- sc.Err()
	}()

	c.printf("%s\n", render.Colorize(render.Dim, "Type 'help' for commands."))
	c.board()
	for {
		c.printf("%s", render.Prompt(c.game.State()))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			if quit := c.Handle(ctx, line); quit {
				return nil
			}
		}
	}
}

// Handle executes one line of input and reports whether the player quit.
func (c *Console) Handle(ctx context.Context, line string) bool {
	st := c.game.State()
	req, err := c.interp.Interpret(line, st, c.actingHero(st))
	if err != nil {
		c.fail(err)
		return false
	}

	switch req.Kind {
	case command.KindNone:
	case command.KindQuit:
		c.printf("Farewell.\n")
		return true
	case command.KindHelp:
		c.printf("%s", render.Help(c.reg))
	case command.KindStatus:
		if st != nil && !st.Over {
			c.printf("%s", render.Battle(st))
		}
		for _, h := range c.game.Heroes() {
			c.printf("%s", render.Sheet(h))
		}
	case command.KindSkills:
		if h := c.actingHero(st); h != nil {
			c.printf("%s", render.Skills(h))
		}
	case command.KindNew:
		h, err := c.game.NewRun(ctx, req.Arg)
		if err != nil {
			c.fail(err)
			return false
		}
		c.printf("%s\n", render.Colorf(render.BrightGreen, "A new %s sets out.", h.Name))
	case command.KindFight:
		if st == nil || st.Over {
			c.resetLog()
		}
		next, err := c.game.Begin(ctx)
		c.afterBattleCall(next, err)
	case command.KindAction:
		next, err := c.game.Submit(ctx, req.Action)
		c.afterBattleCall(next, err)
	case command.KindEquip:
		slot, err := c.game.Equip(ctx, c.leadID(), req.Arg)
		if err != nil {
			c.fail(err)
			return false
		}
		c.printf("Equipped to %s.\n", slot)
	case command.KindUnequip:
		it, err := c.game.Unequip(ctx, c.leadID(), req.Slot)
		if err != nil {
			c.fail(err)
			return false
		}
		c.printf("%s returned to your pack.\n", it.Name)
	case command.KindUse:
		msg, err := c.game.UseItem(ctx, c.leadID(), req.Arg)
		if err != nil {
			c.fail(err)
			return false
		}
		c.printf("%s\n", render.Colorize(render.Green, msg))
	}
	return false
}

func (c *Console) afterBattleCall(st *combat.State, err error) {
	if st != nil {
		c.Show(st)
	}
	if err != nil {
		c.fail(err)
		if st == nil {
			return
		}
	}
	if st.Over {
		c.printf("%s\n", render.Outcome(st.Result))
		return
	}
	c.board()
}

func (c *Console) board() {
	if st := c.game.State(); st != nil && !st.Over {
		c.printf("%s", render.Battle(st))
	}
}

// actingHero is the hero whose turn it is in battle, or the lead hero.
func (c *Console) actingHero(st *combat.State) *actor.Actor {
	if st != nil && !st.Over {
		if a := st.Actor(st.Current()); a != nil && a.IsPlayer {
			return a
		}
	}
	heroes := c.game.Heroes()
	if len(heroes) == 0 {
		return nil
	}
	return heroes[0]
}

func (c *Console) leadID() string {
	heroes := c.game.Heroes()
	if len(heroes) == 0 {
		return ""
	}
	return heroes[0].ID
}

func (c *Console) fail(err error) {
	var unusable *combat.UnusableError
	switch {
	case errors.As(err, &unusable):
		c.printf("%s\n", render.Colorize(render.Yellow, unusable.Error()))
	default:
		c.printf("%s\n", render.Colorize(render.Red, capitalize(err.Error())))
	}
	c.logger.Debug("command rejected", zap.Error(err))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
