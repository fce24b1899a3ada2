package actor

// Tags are typed classification flags.
type Tags struct {
	Spellcaster bool `yaml:"spellcaster" json:"spellcaster,omitempty"`
	Beast       bool `yaml:"beast" json:"beast,omitempty"`
	Humanoid    bool `yaml:"humanoid" json:"humanoid,omitempty"`
	Flying      bool `yaml:"flying" json:"flying,omitempty"`
	Undead      bool `yaml:"undead" json:"undead,omitempty"`
	Demon       bool `yaml:"demon" json:"demon,omitempty"`
	Slime       bool `yaml:"slime" json:"slime,omitempty"`
	Goblinoid   bool `yaml:"goblinoid" json:"goblinoid,omitempty"`
	Boss        bool `yaml:"boss" json:"boss,omitempty"`
	Miniboss    bool `yaml:"miniboss" json:"miniboss,omitempty"`

	// Resist holds extra numeric flags such as fire_res or ice_res.
	Resist map[string]int `yaml:"resist" json:"resist,omitempty"`
}

// IsBossLike reports whether the actor is a boss or miniboss.
func (t Tags) IsBossLike() bool { return t.Boss || t.Miniboss }

func (t Tags) clone() Tags {
	if t.Resist != nil {
		m := make(map[string]int, len(t.Resist))
		for k, v := range t.Resist {
			m[k] = v
		}
		t.Resist = m
	}
	return t
}
