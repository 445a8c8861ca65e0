package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/fablecore/engine"
	"github.com/nathoo/fablecore/engine/state"
	"github.com/nathoo/fablecore/engine/story"
	"github.com/nathoo/fablecore/types"
)

// Dispatch translates one line of player input into an engine intent and
// returns the resulting output lines. It is shared by the plain CLI and
// the TUI; meta-commands are handled by each front end separately.
func Dispatch(eng *engine.Engine, input string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(input)))
	if len(fields) == 0 {
		return []string{"What do you want to do?"}
	}
	verb := fields[0]

	if eng.Player == nil {
		return dispatchClassChoice(eng, verb)
	}
	if eng.Session() != nil {
		return dispatchCombat(eng, verb, strings.TrimSpace(input))
	}
	if eng.Story.AwaitingSpirit() {
		if lines, ok := dispatchSpirit(eng, verb); ok {
			return lines
		}
	}
	if eng.Story.AwaitingGuardian() {
		if lines, ok := dispatchGuardian(eng, verb); ok {
			return lines
		}
	}
	return dispatchExplore(eng, verb)
}

// Default hero names per class, used when the player doesn't give one.
var defaultNames = map[types.Class]string{
	types.ClassWarrior: "Hero",
	types.ClassMage:    "Aria",
	types.ClassRogue:   "Shade",
}

func dispatchClassChoice(eng *engine.Engine, verb string) []string {
	var class types.Class
	switch verb {
	case "1", "warrior":
		class = types.ClassWarrior
	case "2", "mage":
		class = types.ClassMage
	case "3", "rogue":
		class = types.ClassRogue
	default:
		return []string{"Choose your class: (1) Warrior  (2) Mage  (3) Rogue"}
	}

	if err := eng.CreatePlayer(defaultNames[class], class); err != nil {
		return []string{err.Error()}
	}
	p := eng.Player
	return []string{
		fmt.Sprintf("Welcome, %s the %s!", p.Name, p.Class),
		state.StageIntro(eng.Defs, types.StageVillage),
		"Commands: buy, rest, inventory, status, go.",
	}
}

func dispatchCombat(eng *engine.Engine, verb, raw string) []string {
	act := types.Action{}
	switch verb {
	case "a", "attack":
		act.Kind = types.ActionAttack
	case "d", "defend":
		act.Kind = types.ActionDefend
	case "m", "magic", "cast":
		act.Kind = types.ActionMagic
	case "i", "item", "use":
		act.Kind = types.ActionItem
		if rest := strings.TrimSpace(strings.TrimPrefix(raw, firstWord(raw))); rest != "" {
			act.Item = rest
		}
	case "f", "flee", "run":
		act.Kind = types.ActionFlee
	case "status":
		return statusLines(eng)
	default:
		return []string{"You're in the middle of a fight! (a)ttack (d)efend (m)agic (i)tem (f)lee"}
	}

	report, err := eng.Apply(act)
	if err != nil {
		return append(report.Output, friendlyError(err))
	}
	out := report.Output
	if report.State == types.SessionOngoing {
		out = append(out, "(a)ttack (d)efend (m)agic (i)tem (f)lee")
	}
	return out
}

func dispatchSpirit(eng *engine.Engine, verb string) ([]string, bool) {
	var help bool
	switch verb {
	case "y", "yes", "help":
		help = true
	case "n", "no", "ignore", "leave":
		help = false
	default:
		return nil, false
	}
	lines, err := eng.ChooseSpirit(help)
	if err != nil {
		return []string{friendlyError(err)}, true
	}
	return lines, true
}

func dispatchGuardian(eng *engine.Engine, verb string) ([]string, bool) {
	var intent types.GuardianIntent
	switch verb {
	case "b", "befriend":
		intent = types.IntentBefriend
	case "f", "fight":
		intent = types.IntentFight
	case "t", "trick":
		intent = types.IntentTrick
	default:
		return nil, false
	}
	_, lines, err := eng.ResolveGuardian(intent)
	if err != nil {
		return []string{friendlyError(err)}, true
	}
	if eng.Session() != nil {
		lines = append(lines, "(a)ttack (d)efend (m)agic (i)tem (f)lee")
	}
	return lines, true
}

func dispatchExplore(eng *engine.Engine, verb string) []string {
	switch verb {
	case "go", "n", "next", "proceed", "continue":
		d, err := eng.Proceed()
		if err != nil {
			return []string{friendlyError(err)}
		}
		return append(d.Output, directivePrompt(d)...)

	case "buy":
		lines, err := eng.BuyPotion()
		if err != nil {
			return []string{friendlyError(err)}
		}
		return lines

	case "rest":
		lines, err := eng.Rest()
		if err != nil {
			return []string{friendlyError(err)}
		}
		return lines

	case "i", "inventory":
		return state.InventoryList(eng.Player)

	case "status":
		return statusLines(eng)

	default:
		return []string{"Commands: go, buy, rest, inventory, status."}
	}
}

func directivePrompt(d story.Directive) []string {
	switch d.Kind {
	case story.DirectiveSpiritChoice:
		return []string{"A trapped spirit begs for help. Help it? (y/n)"}
	case story.DirectiveEncounter:
		return []string{"(a)ttack (d)efend (m)agic (i)tem (f)lee"}
	case story.DirectiveGuardianChoice:
		return []string{"[b]efriend   [f]ight   [t]rick"}
	default:
		return nil
	}
}

func statusLines(eng *engine.Engine) []string {
	lines := state.PlayerSummary(eng.Player)
	if s := eng.Session(); s != nil {
		lines = append(lines, "")
		lines = append(lines, state.EnemySummary(s.Enemy())...)
	}
	return lines
}

// friendlyError maps engine sentinels to player-facing text.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, engine.ErrInsufficientMP):
		return "Not enough MP."
	case errors.Is(err, engine.ErrNoUsableItem):
		return "No usable items found right now."
	case errors.Is(err, engine.ErrUnknownItem):
		return "You don't have that."
	case errors.Is(err, story.ErrStoryOver):
		return "The story is over. Use /quit to exit."
	default:
		return err.Error()
	}
}

func firstWord(s string) string {
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i]
	}
	return s
}
