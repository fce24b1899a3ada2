package render

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/command"
	"github.com/cory-johannsen/skirmish/internal/game/status"
)

const barWidth = 12

// EventColor returns the ANSI color used for a log event kind.
func EventColor(k combat.EventKind) string {
	switch k {
	case combat.EventAttack:
		return White
	case combat.EventAbility:
		return BrightCyan
	case combat.EventStatus:
		return Magenta
	case combat.EventItem:
		return Green
	case combat.EventOutcome:
		return Bold + BrightYellow
	case combat.EventReward:
		return Yellow
	default:
		return Dim
	}
}

// Event formats one log event.
func Event(e combat.LogEvent) string {
	return Colorize(EventColor(e.Kind), e.Text)
}

// Events formats log events, one per line.
func Events(events []combat.LogEvent) string {
	var b strings.Builder
	for _, e := range events {
		b.WriteString(Event(e))
		b.WriteString("\n")
	}
	return b.String()
}

// Bar draws p as a fixed-width gauge.
//
// Postcondition: the visible width is always width+2.
func Bar(p actor.Pool, width int) string {
	filled := 0
	if p.Max > 0 {
		filled = p.Current * width / p.Max
	}
	if p.Current > 0 && filled == 0 {
		filled = 1
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat(" ", width-filled) + "]"
}

func hpColor(p actor.Pool) string {
	switch f := p.Fraction(); {
	case f <= 0.25:
		return Red
	case f <= 0.5:
		return Yellow
	default:
		return Green
	}
}

// Combatant formats one line of the battle board. label prefixes the line;
// effects are the actor's live status effects.
func Combatant(label string, a *actor.Actor, effects []status.Effect) string {
	name := fmt.Sprintf("%-3s %-16s Lv %-2d", label, a.Name, a.Level)
	if !a.Alive() {
		return Colorf(BrightBlack, "%s  defeated", name)
	}
	var b strings.Builder
	b.WriteString(name)
	fmt.Fprintf(&b, "  HP %s %3d/%-3d", Colorize(hpColor(a.HP), Bar(a.HP, barWidth)), a.HP.Current, a.HP.Max)
	if a.SP.Max > 0 {
		fmt.Fprintf(&b, "  SP %d/%d", a.SP.Current, a.SP.Max)
	}
	if a.MP.Max > 0 {
		fmt.Fprintf(&b, "  MP %d/%d", a.MP.Current, a.MP.Max)
	}
	if len(effects) > 0 {
		tags := make([]string, len(effects))
		for i, e := range effects {
			tags[i] = fmt.Sprintf("%s %d", e.Kind, e.Turns)
		}
		b.WriteString("  ")
		b.WriteString(Colorf(Magenta, "(%s)", strings.Join(tags, ", ")))
	}
	return b.String()
}

// Battle formats the board for st. Living foes are numbered from 1 in roster
// order, matching the positions the attack command accepts.
func Battle(st *combat.State) string {
	var b strings.Builder
	cur := st.Current()
	effects := func(id string) []status.Effect {
		if st.Statuses == nil {
			return nil
		}
		return st.Statuses.Effects(id)
	}

	b.WriteString(Colorf(BrightYellow, "== Turn %d ==", st.Turn+1))
	b.WriteString("\n")
	b.WriteString(Colorize(Cyan, "Party"))
	b.WriteString("\n")
	for _, h := range st.Heroes() {
		label := " "
		if h.ID == cur && !st.Over {
			label = ">"
		}
		b.WriteString(Combatant(label, h, effects(h.ID)))
		b.WriteString("\n")
	}
	b.WriteString(Colorize(Red, "Foes"))
	b.WriteString("\n")
	n := 0
	for _, f := range st.Enemies() {
		label := "-"
		if f.Alive() {
			n++
			label = fmt.Sprintf("%d.", n)
		}
		b.WriteString(Combatant(label, f, effects(f.ID)))
		b.WriteString("\n")
	}
	return b.String()
}

// Sheet formats a hero's level, pools, attributes, equipment and pack.
func Sheet(a *actor.Actor) string {
	var b strings.Builder
	b.WriteString(Colorf(BrightYellow, "%s  Level %d  XP %d/%d  Gold %d", a.Name, a.Level, a.XP, a.XPToNext, a.Gold))
	b.WriteString("\n")
	fmt.Fprintf(&b, "HP %d/%d  MP %d/%d  SP %d/%d\n", a.HP.Current, a.HP.Max, a.MP.Current, a.MP.Max, a.SP.Current, a.SP.Max)

	base := a.Base.Fields()
	eff := a.Effective().Fields()
	parts := make([]string, len(eff))
	for i, f := range eff {
		if d := f.Value - base[i].Value; d != 0 {
			parts[i] = fmt.Sprintf("%s %d (%+d)", f.Name, f.Value, d)
		} else {
			parts[i] = fmt.Sprintf("%s %d", f.Name, f.Value)
		}
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")

	b.WriteString(Colorize(Cyan, "Equipment"))
	b.WriteString("\n")
	for _, slot := range actor.Slots {
		it := a.Equipment[slot]
		if it == nil {
			fmt.Fprintf(&b, "  %-10s %s\n", slot, Colorize(Dim, "-"))
			continue
		}
		fmt.Fprintf(&b, "  %-10s %s\n", slot, it.Name)
	}

	b.WriteString(Colorize(Cyan, "Pack"))
	b.WriteString("\n")
	if len(a.Inventory) == 0 {
		b.WriteString(Colorize(Dim, "  (empty)"))
		b.WriteString("\n")
	}
	for _, it := range a.Inventory {
		fmt.Fprintf(&b, "  %s\n", it)
	}
	return b.String()
}

// Skills lists every ability with its cost and whether a can use it now.
func Skills(a *actor.Actor) string {
	var b strings.Builder
	for _, id := range combat.AbilityIDs() {
		ab := combat.MustAbility(id)
		line := fmt.Sprintf("  %-14s %-18s SP %d  Lv %d", ab.Name, id, ab.SPCost, ab.LevelReq)
		if reason := ab.Check(a); reason != "" {
			b.WriteString(Colorf(BrightBlack, "%s  %s", line, reason))
		} else {
			b.WriteString(Colorize(BrightCyan, line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Help lists the registry's commands grouped by category.
func Help(reg *command.Registry) string {
	var b strings.Builder
	title := cases.Title(language.English)
	cats := reg.CommandsByCategory()
	for _, cat := range []string{command.CategoryBattle, command.CategoryRoster, command.CategorySystem} {
		b.WriteString(Colorize(Cyan, title.String(cat)))
		b.WriteString("\n")
		for _, c := range cats[cat] {
			usage := c.Usage
			if len(c.Aliases) > 0 {
				usage += " (" + strings.Join(c.Aliases, ", ") + ")"
			}
			fmt.Fprintf(&b, "  %-36s %s\n", usage, c.Help)
		}
	}
	return b.String()
}

// Outcome formats the end-of-battle banner.
func Outcome(r combat.Result) string {
	switch r {
	case combat.ResultVictory:
		return Colorize(Bold+BrightGreen, "*** VICTORY ***")
	case combat.ResultDefeat:
		return Colorize(Bold+BrightRed, "*** DEFEAT ***")
	default:
		return ""
	}
}

// Prompt returns the input prompt for the acting hero, or the camp prompt
// when no battle is running.
func Prompt(st *combat.State) string {
	if st == nil || st.Over {
		return Colorize(BrightWhite, "camp> ")
	}
	if a := st.Actor(st.Current()); a != nil && a.IsPlayer {
		return Colorf(BrightWhite, "%s> ", a.Name)
	}
	return Colorize(BrightWhite, "> ")
}
