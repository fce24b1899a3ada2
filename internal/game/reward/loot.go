package reward

import (
	"fmt"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// CurrencyDrop defines the range of gold a foe can drop.
type CurrencyDrop struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// ItemDrop defines a single item entry in a loot table with a drop chance.
type ItemDrop struct {
	Item   string  `yaml:"item"`
	Chance float64 `yaml:"chance"`
	MinQty int     `yaml:"min_qty"`
	MaxQty int     `yaml:"max_qty"`
}

// LootTable defines the possible drops of a foe template.
//
// An exclusive table draws once and walks the entries' cumulative chances,
// yielding at most one entry. Otherwise each entry rolls independently.
type LootTable struct {
	Exclusive bool          `yaml:"exclusive"`
	Currency  *CurrencyDrop `yaml:"currency"`
	Items     []ItemDrop    `yaml:"items"`
}

// Validate checks that the loot table satisfies its invariants. Missing
// quantities default to 1.
//
// Precondition: lt must not be nil.
// Postcondition: Returns nil iff all currency and item constraints hold;
// an empty loot table (no currency, no items) is valid.
func (lt *LootTable) Validate() error {
	if lt.Currency != nil {
		if lt.Currency.Min < 0 {
			return fmt.Errorf("loot table: currency min must be >= 0, got %d", lt.Currency.Min)
		}
		if lt.Currency.Min > lt.Currency.Max {
			return fmt.Errorf("loot table: currency min (%d) must be <= max (%d)", lt.Currency.Min, lt.Currency.Max)
		}
	}
	total := 0.0
	for i := range lt.Items {
		drop := &lt.Items[i]
		if drop.Item == "" {
			return fmt.Errorf("loot table: item[%d] must have a non-empty item code", i)
		}
		if drop.Chance <= 0 || drop.Chance > 1.0 {
			return fmt.Errorf("loot table: item[%d] chance must be in (0, 1.0], got %f", i, drop.Chance)
		}
		if drop.MinQty == 0 && drop.MaxQty == 0 {
			drop.MinQty, drop.MaxQty = 1, 1
		}
		if drop.MinQty < 1 {
			return fmt.Errorf("loot table: item[%d] min_qty must be >= 1, got %d", i, drop.MinQty)
		}
		if drop.MinQty > drop.MaxQty {
			return fmt.Errorf("loot table: item[%d] min_qty (%d) must be <= max_qty (%d)", i, drop.MinQty, drop.MaxQty)
		}
		total += drop.Chance
	}
	if lt.Exclusive && total > 1.0+1e-9 {
		return fmt.Errorf("loot table: exclusive chances sum to %f, must be <= 1.0", total)
	}
	return nil
}

// Stack is a quantity of one item code.
type Stack struct {
	Item     string
	Quantity int
}

// Spoils is what one defeated foe yields.
type Spoils struct {
	Gold  int
	Items []Stack
}

// Roll draws the table's drops from rng. Currency is drawn first, then the
// items in table order.
//
// Precondition: lt must have passed Validate().
// Postcondition: Gold is in [Currency.Min, Currency.Max] if currency is set;
// each Stack's Quantity is in [MinQty, MaxQty].
func (lt *LootTable) Roll(rng *dice.RNG) Spoils {
	var out Spoils
	if lt.Currency != nil && lt.Currency.Max > 0 {
		out.Gold = rng.Int("loot gold", lt.Currency.Min, lt.Currency.Max)
	}

	if lt.Exclusive {
		if len(lt.Items) == 0 {
			return out
		}
		roll := rng.Float("loot table")
		cumulative := 0.0
		for _, drop := range lt.Items {
			cumulative += drop.Chance
			if roll < cumulative {
				out.Items = append(out.Items, Stack{Item: drop.Item, Quantity: quantity(drop, rng)})
				break
			}
		}
		return out
	}

	for _, drop := range lt.Items {
		if rng.Chance("loot drop", drop.Chance) {
			out.Items = append(out.Items, Stack{Item: drop.Item, Quantity: quantity(drop, rng)})
		}
	}
	return out
}

func quantity(drop ItemDrop, rng *dice.RNG) int {
	if drop.MaxQty <= drop.MinQty {
		return max(drop.MinQty, 1)
	}
	return rng.Int("loot quantity", drop.MinQty, drop.MaxQty)
}

// LootSource looks up the loot table of a foe template.
type LootSource interface {
	LootTable(templateID string) (*LootTable, bool)
}
