package item

// Modifiers is the fixed set of additive bonuses an item grants while
// equipped. Zero means "no bonus".
type Modifiers struct {
	Str    int `yaml:"str" json:"str,omitempty"`
	Dex    int `yaml:"dex" json:"dex,omitempty"`
	Int    int `yaml:"int" json:"int,omitempty"`
	Wis    int `yaml:"wis" json:"wis,omitempty"`
	Vit    int `yaml:"vit" json:"vit,omitempty"`
	Speed  int `yaml:"speed" json:"speed,omitempty"`
	Armor  int `yaml:"armor" json:"armor,omitempty"`
	Resist int `yaml:"resist" json:"resist,omitempty"`
	Luck   int `yaml:"luck" json:"luck,omitempty"`

	HPMax int `yaml:"hp_max" json:"hp_max,omitempty"`
	MPMax int `yaml:"mp_max" json:"mp_max,omitempty"`
	SPMax int `yaml:"sp_max" json:"sp_max,omitempty"`

	// Damage is the flat weapon damage used by attack resolution.
	Damage int `yaml:"damage" json:"damage,omitempty"`
	// Accuracy is added to the to-hit percentage.
	Accuracy int `yaml:"accuracy" json:"accuracy,omitempty"`
	// CritPct is added to the crit percentage.
	CritPct int `yaml:"crit_pct" json:"crit_pct,omitempty"`

	ArmorPct        int `yaml:"armor_pct" json:"armor_pct,omitempty"`
	ResistPct       int `yaml:"resist_pct" json:"resist_pct,omitempty"`
	SpeedPct        int `yaml:"speed_pct" json:"speed_pct,omitempty"`
	FireResPct      int `yaml:"fire_res_pct" json:"fire_res_pct,omitempty"`
	IceResPct       int `yaml:"ice_res_pct" json:"ice_res_pct,omitempty"`
	LightningResPct int `yaml:"lightning_res_pct" json:"lightning_res_pct,omitempty"`
}

// Add returns the field-wise sum of m and o.
func (m Modifiers) Add(o Modifiers) Modifiers {
	return Modifiers{
		Str: m.Str + o.Str, Dex: m.Dex + o.Dex, Int: m.Int + o.Int, Wis: m.Wis + o.Wis,
		Vit: m.Vit + o.Vit, Speed: m.Speed + o.Speed, Armor: m.Armor + o.Armor,
		Resist: m.Resist + o.Resist, Luck: m.Luck + o.Luck,
		HPMax: m.HPMax + o.HPMax, MPMax: m.MPMax + o.MPMax, SPMax: m.SPMax + o.SPMax,
		Damage: m.Damage + o.Damage, Accuracy: m.Accuracy + o.Accuracy, CritPct: m.CritPct + o.CritPct,
		ArmorPct: m.ArmorPct + o.ArmorPct, ResistPct: m.ResistPct + o.ResistPct,
		SpeedPct: m.SpeedPct + o.SpeedPct, FireResPct: m.FireResPct + o.FireResPct,
		IceResPct: m.IceResPct + o.IceResPct, LightningResPct: m.LightningResPct + o.LightningResPct,
	}
}
