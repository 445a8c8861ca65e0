// Package engine implements the combat and branching-narrative core: the
// action resolver, the combat session state machine, and the orchestrator
// that wires sessions into the narrative progression.
package engine

import (
	"fmt"

	"github.com/nathoo/fablecore/engine/state"
	"github.com/nathoo/fablecore/engine/story"
	"github.com/nathoo/fablecore/types"
)

// Engine owns the content definitions, the random source, the player, the
// progression, and at most one active combat session. It is a synchronous
// request/response machine: one intent in, one report out.
type Engine struct {
	Defs   *state.Defs
	RNG    *RNG
	Player *types.Player
	Story  *story.Progression

	session    *Session
	storyBound bool // session outcome feeds the progression
}

// New creates an engine with a seeded RNG. The player is created separately
// via CreatePlayer once a class is chosen.
func New(defs *state.Defs, seed int64) *Engine {
	return &Engine{Defs: defs, RNG: NewRNG(seed)}
}

// CreatePlayer builds the player from a class preset and starts the
// progression at the village.
func (e *Engine) CreatePlayer(name string, class types.Class) error {
	p, err := state.NewPlayer(e.Defs, name, class)
	if err != nil {
		return err
	}
	e.Player = p
	e.Story = story.New(e.Defs, p)
	return nil
}

// Session returns the active combat session, or nil.
func (e *Engine) Session() *Session { return e.session }

// StartCombat spawns an enemy from the catalog and opens a free-standing
// session against it. Story-driven encounters start through Proceed and
// ResolveGuardian instead.
func (e *Engine) StartCombat(enemyName string, difficulty float64) (*Session, error) {
	if e.Player == nil {
		return nil, fmt.Errorf("%w: no player created", ErrNoSession)
	}
	if e.session != nil {
		return nil, fmt.Errorf("combat already in progress with %s", e.session.enemy.Name)
	}
	return e.openSession(enemyName, difficulty, false)
}

func (e *Engine) openSession(enemyName string, difficulty float64, storyBound bool) (*Session, error) {
	enemy, err := state.SpawnEnemy(e.Defs, enemyName, difficulty)
	if err != nil {
		return nil, err
	}
	e.session = NewSession(e.Player, enemy, e.RNG)
	e.storyBound = storyBound
	return e.session, nil
}

// Apply resolves one combat action against the active session. When the
// session reaches a terminal state it is released, and story-bound outcomes
// are fed back into the progression.
func (e *Engine) Apply(act types.Action) (types.TurnReport, error) {
	if e.session == nil {
		return types.TurnReport{}, ErrNoSession
	}

	report, err := e.session.Apply(act)
	if err != nil {
		return report, err
	}
	if report.State == types.SessionOngoing {
		return report, nil
	}

	bound := e.storyBound
	e.session = nil
	e.storyBound = false

	if bound && e.Story != nil {
		if _, out := e.Story.ReportOutcome(report.State); len(out) > 0 {
			report.Output = append(report.Output, out...)
		}
	}
	return report, nil
}

// Proceed advances the narrative by one intent. Encounter directives open
// a story-bound combat session before returning.
func (e *Engine) Proceed() (story.Directive, error) {
	if e.Story == nil {
		return story.Directive{}, fmt.Errorf("no player created")
	}
	if e.session != nil {
		return story.Directive{}, fmt.Errorf("finish the current fight first")
	}

	d, err := e.Story.Proceed()
	if err != nil {
		return d, err
	}
	if d.Kind == story.DirectiveEncounter {
		if _, err := e.openSession(d.Encounter.Enemy, d.Encounter.Difficulty, true); err != nil {
			return d, err
		}
		d.Output = append(d.Output, fmt.Sprintf("A %s blocks your path!", d.Encounter.Enemy))
	}
	return d, nil
}

// ChooseSpirit forwards the forest choice to the progression.
func (e *Engine) ChooseSpirit(help bool) ([]string, error) {
	if e.Story == nil {
		return nil, fmt.Errorf("no player created")
	}
	return e.Story.ChooseSpirit(help)
}

// ResolveGuardian consumes the final choice. If the choice forces combat,
// a story-bound session against the guardian is opened and EndingNone is
// returned; the ending then arrives through Apply once the session ends.
func (e *Engine) ResolveGuardian(intent types.GuardianIntent) (types.Ending, []string, error) {
	if e.Story == nil {
		return types.EndingNone, nil, fmt.Errorf("no player created")
	}

	ending, needCombat, out, err := e.Story.ChooseGuardian(intent, e.RNG)
	if err != nil {
		return types.EndingNone, nil, err
	}
	if needCombat {
		if _, err := e.openSession(story.GuardianEnemy, 1.0, true); err != nil {
			return types.EndingNone, out, err
		}
		return types.EndingNone, out, nil
	}
	out = append(out, fmt.Sprintf("=== Ending: %s ===", ending))
	return ending, out, nil
}

// BuyPotion forwards the village shop purchase to the progression.
func (e *Engine) BuyPotion() ([]string, error) {
	if e.Story == nil {
		return nil, fmt.Errorf("no player created")
	}
	return e.Story.BuyPotion()
}

// Rest forwards the village inn rest to the progression.
func (e *Engine) Rest() ([]string, error) {
	if e.Story == nil {
		return nil, fmt.Errorf("no player created")
	}
	return e.Story.Rest()
}
