// Package cli provides terminal I/O, input dispatch, and meta-command
// handling for the FableCore adventure engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/fablecore/engine"
	"github.com/nathoo/fablecore/engine/state"
	"github.com/nathoo/fablecore/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine: eng,
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run starts the game loop. It shows the intro and class prompt, then
// loops: prompt → input → dispatch → output. Returns when input is
// exhausted or the player quits.
func (c *CLI) Run() {
	game := c.Engine.Defs.Game
	c.printLine(fmt.Sprintf("%s v%s by %s", game.Title, game.Version, game.Author))
	if game.Intro != "" {
		c.printLine("")
		c.printLine(game.Intro)
	}
	c.printLine("")
	c.printLine("Choose your class: (1) Warrior  (2) Mage  (3) Rogue")

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		for _, line := range Dispatch(c.Engine, input) {
			c.printLine(line)
		}

		if c.Trace {
			c.printTrace()
		}
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	switch strings.Fields(input)[0] {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", input))
	}

	return false
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /quit   — Exit game",
		"  /help   — Show this help",
		"  /state  — Debug: dump current state",
		"  /trace  — Toggle debug trace output",
		"",
		"Town commands:",
		"  buy            — Buy a Small Potion",
		"  rest           — Rest at the inn to recover",
		"  go             — Set out toward the next area",
		"  inventory (i)  — Check what you're carrying",
		"  status         — Show your stats",
		"",
		"Combat commands:",
		"  attack (a)       — Strike the enemy",
		"  defend (d)       — Brace and halve incoming damage",
		"  magic (m)        — Cast a spell (costs MP)",
		"  item (i) [name]  — Use an item",
		"  flee (f)         — Try to run away",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	p := c.Engine.Player
	if p == nil {
		c.printSystem("No character yet.")
		return
	}
	c.printSystem(fmt.Sprintf("Stage: %s", c.Engine.Story.Stage()))
	for _, line := range state.PlayerSummary(p) {
		c.printSystem(line)
	}
	if s := c.Engine.Session(); s != nil {
		for _, line := range state.EnemySummary(s.Enemy()) {
			c.printSystem(line)
		}
		c.printSystem(fmt.Sprintf("Rounds: %d", s.Rounds()))
	}
	if e := c.Engine.Story.Ending(); e != types.EndingNone {
		c.printSystem(fmt.Sprintf("Ending: %s", e))
	}
}

func (c *CLI) printTrace() {
	c.printSystem(fmt.Sprintf("[trace] stage=%s rng=%d", c.Engine.Story.Stage(), c.Engine.RNG.Position()))
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
