// Package command provides the command registry, parser, and the
// interpreter that turns player input into battle and roster requests.
package command

// Categories for organizing commands.
const (
	CategoryBattle = "battle"
	CategoryRoster = "roster"
	CategorySystem = "system"
)

// Handler identifiers mapping commands to request kinds.
const (
	HandlerAttack  = "attack"
	HandlerAbility = "ability"
	HandlerDefend  = "defend"
	HandlerUse     = "use"
	HandlerAuto    = "auto"
	HandlerFight   = "fight"
	HandlerNew     = "new"
	HandlerEquip   = "equip"
	HandlerUnequip = "unequip"
	HandlerStatus  = "status"
	HandlerSkills  = "skills"
	HandlerHelp    = "help"
	HandlerQuit    = "quit"
)

// Command defines a player-invocable command.
type Command struct {
	// Name is the canonical command name.
	Name string
	// Aliases are alternate names for this command.
	Aliases []string
	// Usage shows the argument shape, e.g. "attack <target>".
	Usage string
	// Help is the short help text displayed to players.
	Help string
	// Category groups the command.
	Category string
	// Handler maps to the request kind the interpreter builds.
	Handler string
}

// BuiltinCommands returns all built-in commands.
func BuiltinCommands() []Command {
	return []Command{
		{Name: "attack", Aliases: []string{"a", "att", "hit"}, Usage: "attack <target>", Help: "Attack a foe with your weapon", Category: CategoryBattle, Handler: HandlerAttack},
		{Name: "ability", Aliases: []string{"ab", "skill"}, Usage: "ability <id> [target]", Help: "Use a special ability", Category: CategoryBattle, Handler: HandlerAbility},
		{Name: "defend", Aliases: []string{"d", "guard"}, Usage: "defend", Help: "Halve incoming damage until your next turn", Category: CategoryBattle, Handler: HandlerDefend},
		{Name: "use", Aliases: []string{"u", "drink"}, Usage: "use <item>", Help: "Use a consumable item", Category: CategoryBattle, Handler: HandlerUse},
		{Name: "auto", Aliases: nil, Usage: "auto", Help: "Let the hero pick an action", Category: CategoryBattle, Handler: HandlerAuto},
		{Name: "skills", Aliases: []string{"abilities"}, Usage: "skills", Help: "List abilities and whether they are usable", Category: CategoryBattle, Handler: HandlerSkills},

		{Name: "fight", Aliases: []string{"f", "begin"}, Usage: "fight", Help: "Start the next battle", Category: CategoryRoster, Handler: HandlerFight},
		{Name: "new", Aliases: nil, Usage: "new <class>", Help: "Start a new run with a fresh hero", Category: CategoryRoster, Handler: HandlerNew},
		{Name: "equip", Aliases: []string{"eq", "wear", "wield"}, Usage: "equip <item>", Help: "Equip an item from your pack", Category: CategoryRoster, Handler: HandlerEquip},
		{Name: "unequip", Aliases: []string{"remove"}, Usage: "unequip <slot>", Help: "Return an equipped item to your pack", Category: CategoryRoster, Handler: HandlerUnequip},
		{Name: "status", Aliases: []string{"st", "sheet"}, Usage: "status", Help: "Show the party", Category: CategoryRoster, Handler: HandlerStatus},

		{Name: "help", Aliases: []string{"h", "?"}, Usage: "help", Help: "Show available commands", Category: CategorySystem, Handler: HandlerHelp},
		{Name: "quit", Aliases: []string{"q", "exit"}, Usage: "quit", Help: "Save and leave", Category: CategorySystem, Handler: HandlerQuit},
	}
}
