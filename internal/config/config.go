// Package config provides Viper-based configuration loading for skirmish.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/skirmish/internal/game/combat"
	"github.com/cory-johannsen/skirmish/internal/game/reward"
)

// DatabaseConfig selects and configures the roster store.
type DatabaseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver          string        `mapstructure:"driver"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	// SQLitePath is the database file used by the sqlite driver.
	SQLitePath string `mapstructure:"sqlite_path"`
}

// DSN returns the PostgreSQL connection string.
//
// Precondition: Host, Port, User, and Name must be non-empty.
// Postcondition: Returns a valid PostgreSQL DSN string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// Output is "stderr", "off", or a file path.
	Output string `mapstructure:"output"`
}

// BattleConfig tunes encounters and pacing.
type BattleConfig struct {
	// Seed fixes the RNG; 0 draws a fresh seed at start-up.
	Seed uint32 `mapstructure:"seed"`
	// AIDelayMs is the pause between AI turns in milliseconds.
	AIDelayMs      int    `mapstructure:"ai_delay_ms"`
	FoeCount       int    `mapstructure:"foe_count"`
	FoeLevelSpread int    `mapstructure:"foe_level_spread"`
	StartClass     string `mapstructure:"start_class"`
}

// AIDelay returns AIDelayMs as a duration.
func (b BattleConfig) AIDelay() time.Duration {
	return time.Duration(b.AIDelayMs) * time.Millisecond
}

// RulesConfig mirrors combat.Rules.
type RulesConfig struct {
	PctPerArmor       float64 `mapstructure:"pct_per_armor"`
	MaxMitigation     float64 `mapstructure:"max_mitigation"`
	BaseHit           float64 `mapstructure:"base_hit"`
	DexWeight         float64 `mapstructure:"dex_weight"`
	LuckWeight        float64 `mapstructure:"luck_weight"`
	LevelWeight       float64 `mapstructure:"level_weight"`
	MinHit            float64 `mapstructure:"min_hit"`
	MaxHit            float64 `mapstructure:"max_hit"`
	GrazeWindow       float64 `mapstructure:"graze_window"`
	GrazeFactor       float64 `mapstructure:"graze_factor"`
	UnarmedDamage     int     `mapstructure:"unarmed_damage"`
	StrFactor         float64 `mapstructure:"str_factor"`
	Variance          int     `mapstructure:"variance"`
	BaseCrit          float64 `mapstructure:"base_crit"`
	MaxCrit           float64 `mapstructure:"max_crit"`
	CritMultiplier    float64 `mapstructure:"crit_multiplier"`
	CritBonusVariance int     `mapstructure:"crit_bonus_variance"`
	DefendPotency     float64 `mapstructure:"defend_potency"`
	DefendTurns       int     `mapstructure:"defend_turns"`
	PanicThreshold    float64 `mapstructure:"panic_threshold"`
	PanicChance       float64 `mapstructure:"panic_chance"`
}

// Combat converts r into engine rules.
func (r RulesConfig) Combat() combat.Rules {
	return combat.Rules{
		PctPerArmor:       r.PctPerArmor,
		MaxMitigation:     r.MaxMitigation,
		BaseHit:           r.BaseHit,
		DexWeight:         r.DexWeight,
		LuckWeight:        r.LuckWeight,
		LevelWeight:       r.LevelWeight,
		MinHit:            r.MinHit,
		MaxHit:            r.MaxHit,
		GrazeWindow:       r.GrazeWindow,
		GrazeFactor:       r.GrazeFactor,
		UnarmedDamage:     r.UnarmedDamage,
		StrFactor:         r.StrFactor,
		Variance:          r.Variance,
		BaseCrit:          r.BaseCrit,
		MaxCrit:           r.MaxCrit,
		CritMultiplier:    r.CritMultiplier,
		CritBonusVariance: r.CritBonusVariance,
		DefendPotency:     r.DefendPotency,
		DefendTurns:       r.DefendTurns,
		PanicThreshold:    r.PanicThreshold,
		PanicChance:       r.PanicChance,
	}
}

// RewardsConfig mirrors reward.Rules.
type RewardsConfig struct {
	EqualLevelXP      int     `mapstructure:"equal_level_xp"`
	AboveXP           []int   `mapstructure:"above_xp"`
	BelowXP           []int   `mapstructure:"below_xp"`
	BossXPMin         int     `mapstructure:"boss_xp_min"`
	BossXPMax         int     `mapstructure:"boss_xp_max"`
	Leveling          string  `mapstructure:"leveling"`
	GrowthDice        string  `mapstructure:"growth_dice"`
	DefaultDropItem   string  `mapstructure:"default_drop_item"`
	DefaultDropChance float64 `mapstructure:"default_drop_chance"`
}

// Reward converts r into reward pipeline rules.
func (r RewardsConfig) Reward() reward.Rules {
	return reward.Rules{
		EqualLevelXP: r.EqualLevelXP,
		AboveXP:      append([]int(nil), r.AboveXP...),
		BelowXP:      append([]int(nil), r.BelowXP...),
		BossXPMin:    r.BossXPMin,
		BossXPMax:    r.BossXPMax,
		Growth:       reward.GrowthMode(r.Leveling),
		GrowthDice:   r.GrowthDice,
		DefaultDrop:  reward.Drop{Item: r.DefaultDropItem, Chance: r.DefaultDropChance},
	}
}

// ContentConfig locates the YAML content tables.
type ContentConfig struct {
	ItemsDir    string `mapstructure:"items_dir"`
	MonstersDir string `mapstructure:"monsters_dir"`
	ClassesDir  string `mapstructure:"classes_dir"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Battle   BattleConfig   `mapstructure:"battle"`
	Rules    RulesConfig    `mapstructure:"rules"`
	Rewards  RewardsConfig  `mapstructure:"rewards"`
	Content  ContentConfig  `mapstructure:"content"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateDatabase(c.Database); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateBattle(c.Battle); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.Rules.Combat().Validate(); err != nil {
		errs = append(errs, "rules: "+flatten(err))
	}
	if err := c.Rewards.Reward().Validate(); err != nil {
		errs = append(errs, "rewards: "+flatten(err))
	}
	if err := validateContent(c.Content); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// flatten joins a multi-line errors.Join message onto one line.
func flatten(err error) string {
	return strings.ReplaceAll(err.Error(), "\n", "; ")
}

func validateDatabase(d DatabaseConfig) error {
	switch d.Driver {
	case "sqlite":
		if d.SQLitePath == "" {
			return errors.New("database.sqlite_path must not be empty")
		}
		return nil
	case "postgres":
	default:
		return fmt.Errorf("database.driver must be one of [postgres, sqlite], got %q", d.Driver)
	}

	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host must not be empty")
	}
	if d.Port < 1 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user must not be empty")
	}
	if d.Name == "" {
		errs = append(errs, "database.name must not be empty")
	}
	validSSL := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSL[d.SSLMode] {
		errs = append(errs, fmt.Sprintf("database.sslmode must be one of [disable, require, verify-ca, verify-full], got %q", d.SSLMode))
	}
	if d.MaxConns < 1 {
		errs = append(errs, fmt.Sprintf("database.max_conns must be >= 1, got %d", d.MaxConns))
	}
	if d.MinConns < 0 {
		errs = append(errs, fmt.Sprintf("database.min_conns must be >= 0, got %d", d.MinConns))
	}
	if d.MinConns > d.MaxConns {
		errs = append(errs, "database.min_conns must not exceed database.max_conns")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateBattle(b BattleConfig) error {
	var errs []string
	if b.AIDelayMs < 0 {
		errs = append(errs, fmt.Sprintf("battle.ai_delay_ms must be >= 0, got %d", b.AIDelayMs))
	}
	if b.FoeCount < 1 || b.FoeCount > 6 {
		errs = append(errs, fmt.Sprintf("battle.foe_count must be 1-6, got %d", b.FoeCount))
	}
	if b.FoeLevelSpread < 0 {
		errs = append(errs, fmt.Sprintf("battle.foe_level_spread must be >= 0, got %d", b.FoeLevelSpread))
	}
	if b.StartClass == "" {
		errs = append(errs, "battle.start_class must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	switch l.Output {
	case "":
		return errors.New("logging.output must not be empty")
	case "stdout":
		return errors.New("logging.output must not be stdout: the battle transcript is written there")
	}
	return nil
}

func validateContent(c ContentConfig) error {
	var errs []string
	if c.ItemsDir == "" {
		errs = append(errs, "content.items_dir must not be empty")
	}
	if c.MonstersDir == "" {
		errs = append(errs, "content.monsters_dir must not be empty")
	}
	if c.ClassesDir == "" {
		errs = append(errs, "content.classes_dir must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Environment variable overrides with SKIRMISH_ prefix
	v.SetEnvPrefix("SKIRMISH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the built-in defaults.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.sqlite_path", "skirmish.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "skirmish")
	v.SetDefault("database.password", "skirmish")
	v.SetDefault("database.name", "skirmish")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 4)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.max_conn_lifetime", "1h")

	v.SetDefault("battle.seed", 0)
	v.SetDefault("battle.ai_delay_ms", 350)
	v.SetDefault("battle.foe_count", 1)
	v.SetDefault("battle.foe_level_spread", 0)
	v.SetDefault("battle.start_class", "knight")

	r := combat.DefaultRules()
	v.SetDefault("rules.pct_per_armor", r.PctPerArmor)
	v.SetDefault("rules.max_mitigation", r.MaxMitigation)
	v.SetDefault("rules.base_hit", r.BaseHit)
	v.SetDefault("rules.dex_weight", r.DexWeight)
	v.SetDefault("rules.luck_weight", r.LuckWeight)
	v.SetDefault("rules.level_weight", r.LevelWeight)
	v.SetDefault("rules.min_hit", r.MinHit)
	v.SetDefault("rules.max_hit", r.MaxHit)
	v.SetDefault("rules.graze_window", r.GrazeWindow)
	v.SetDefault("rules.graze_factor", r.GrazeFactor)
	v.SetDefault("rules.unarmed_damage", r.UnarmedDamage)
	v.SetDefault("rules.str_factor", r.StrFactor)
	v.SetDefault("rules.variance", r.Variance)
	v.SetDefault("rules.base_crit", r.BaseCrit)
	v.SetDefault("rules.max_crit", r.MaxCrit)
	v.SetDefault("rules.crit_multiplier", r.CritMultiplier)
	v.SetDefault("rules.crit_bonus_variance", r.CritBonusVariance)
	v.SetDefault("rules.defend_potency", r.DefendPotency)
	v.SetDefault("rules.defend_turns", r.DefendTurns)
	v.SetDefault("rules.panic_threshold", r.PanicThreshold)
	v.SetDefault("rules.panic_chance", r.PanicChance)

	w := reward.DefaultRules()
	v.SetDefault("rewards.equal_level_xp", w.EqualLevelXP)
	v.SetDefault("rewards.above_xp", w.AboveXP)
	v.SetDefault("rewards.below_xp", w.BelowXP)
	v.SetDefault("rewards.boss_xp_min", w.BossXPMin)
	v.SetDefault("rewards.boss_xp_max", w.BossXPMax)
	v.SetDefault("rewards.leveling", string(w.Growth))
	v.SetDefault("rewards.growth_dice", w.GrowthDice)
	v.SetDefault("rewards.default_drop_item", w.DefaultDrop.Item)
	v.SetDefault("rewards.default_drop_chance", w.DefaultDrop.Chance)

	v.SetDefault("content.items_dir", "content/items")
	v.SetDefault("content.monsters_dir", "content/monsters")
	v.SetDefault("content.classes_dir", "content/classes")
}
