package combat

// Action is one actor's choice for its turn. The set of implementations is
// closed: Attack, UseAbility, Defend and UseItem.
type Action interface {
	isAction()
}

// Attack is a basic weapon attack on TargetID.
type Attack struct {
	TargetID string
}

// UseAbility invokes AbilityID. TargetID is optional; an empty or stale
// target falls back to the focus target.
type UseAbility struct {
	AbilityID AbilityID
	TargetID  string
}

// Defend halves incoming damage until the actor's next turn.
type Defend struct{}

// UseItem consumes the inventory item ItemID.
type UseItem struct {
	ItemID string
}

func (Attack) isAction()     {}
func (UseAbility) isAction() {}
func (Defend) isAction()     {}
func (UseItem) isAction()    {}

// Describe returns a short label for logging.
func Describe(a Action) string {
	switch act := a.(type) {
	case nil:
		return "auto"
	case Attack:
		return "attack:" + act.TargetID
	case UseAbility:
		return "ability:" + string(act.AbilityID)
	case Defend:
		return "defend"
	case UseItem:
		return "use:" + act.ItemID
	default:
		return "unknown"
	}
}
