package dice

// Roll evaluates e against src, drawing one value per die in order.
//
// Precondition: e came from Parse; src is non-nil.
// Postcondition: len(result.Dice) == e.Count; each die is in [1, e.Sides].
func Roll(e Expression, src Source) RollResult {
	rolled := make([]int, e.Count)
	for i := range rolled {
		rolled[i] = src.Intn(e.Sides) + 1
	}
	return RollResult{Expression: e.Raw, Dice: rolled, Modifier: e.Modifier}
}
