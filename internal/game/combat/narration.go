package combat

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/skirmish/internal/game/actor"
)

type flavor struct {
	verb string
	crit string
}

var weaponFlavors = []struct {
	needles []string
	flavor
}{
	{[]string{"dagger", "stiletto", "tanto", "rapier"}, flavor{"stabs", "Precise Stab"}},
	{[]string{"mace", "hammer", "club", "mallet"}, flavor{"smashes", "Crushing Blow"}},
	{[]string{"axe"}, flavor{"cleaves", "Brutal Chop"}},
	{[]string{"crossbow", "bow"}, flavor{"shoots", "Piercing Shot"}},
	{[]string{"staff"}, flavor{"strikes", "Arcane Crack"}},
}

// flavorFor picks the attack verb and crit phrase from the attacker's
// weapon name, or from its tags when unarmed.
func flavorFor(a *actor.Actor) flavor {
	if w := a.Weapon(); w != nil {
		name := strings.ToLower(w.Name)
		for _, wf := range weaponFlavors {
			for _, n := range wf.needles {
				if strings.Contains(name, n) {
					return wf.flavor
				}
			}
		}
		return flavor{"slashes", "Powerful Hit"}
	}
	switch {
	case a.Tags.Flying:
		return flavor{"rakes with its talons", "Diving Talons"}
	case a.Tags.Beast:
		return flavor{"bites", "Savage Bite"}
	default:
		return flavor{"punches", "Heavy Blow"}
	}
}

// Verb returns the attack verb used for a's basic attack.
func Verb(a *actor.Actor) string { return flavorFor(a).verb }

// CritPhrase returns the crit phrase used for a's basic attack.
func CritPhrase(a *actor.Actor) string { return flavorFor(a).crit }

// Narrate renders res as a log line. hpAfter is the defender's HP once the
// damage has been applied.
func Narrate(attacker, defender *actor.Actor, res AttackResult, hpAfter int) string {
	f := flavorFor(attacker)
	hp := fmt.Sprintf("(%d/%d HP)", hpAfter, defender.HP.Max)
	switch {
	case !res.Hit:
		return fmt.Sprintf("%s attacks %s and misses.", attacker.Name, defender.Name)
	case res.Graze:
		return fmt.Sprintf("%s grazes %s for %d. %s", attacker.Name, defender.Name, res.Damage, hp)
	case res.Crit:
		return fmt.Sprintf("%s! %s %s %s for %d. %s", f.crit, attacker.Name, f.verb, defender.Name, res.Damage, hp)
	default:
		return fmt.Sprintf("%s %s %s for %d. %s", attacker.Name, f.verb, defender.Name, res.Damage, hp)
	}
}
