// Package story implements the narrative progression machine: the stage
// sequence, the spirit choice, the encounter schedule, and the three-way
// ending resolution. It never blocks; each call consumes one externally
// supplied intent and returns directives for the host to act on.
package story

import (
	"errors"
	"fmt"

	"github.com/nathoo/fablecore/engine/state"
	"github.com/nathoo/fablecore/types"
)

var (
	// ErrInvalidChoice is returned for an unrecognized guardian intent or
	// a choice made at the wrong stage. Recoverable: re-prompt.
	ErrInvalidChoice = errors.New("invalid choice")

	// ErrNotEnoughGold is returned by shop operations the player cannot
	// afford. Nothing is mutated.
	ErrNotEnoughGold = errors.New("not enough gold")

	// ErrStoryOver is returned once the progression reached done.
	ErrStoryOver = errors.New("the story is over")
)

// Village shop prices.
const (
	potionPrice = 8
	restPrice   = 5
)

// GuardianEnemy is the catalog name of the final encounter.
const GuardianEnemy = "Ancient Guardian"

// DirectiveKind tells the host what the progression needs next.
type DirectiveKind string

const (
	// DirectiveSpiritChoice awaits ChooseSpirit.
	DirectiveSpiritChoice DirectiveKind = "spirit_choice"
	// DirectiveEncounter asks the host to run a combat session and
	// report its outcome.
	DirectiveEncounter DirectiveKind = "encounter"
	// DirectiveGuardianChoice awaits ChooseGuardian.
	DirectiveGuardianChoice DirectiveKind = "guardian_choice"
	// DirectiveDone carries the final ending.
	DirectiveDone DirectiveKind = "done"
)

// Directive is the progression's answer to a proceed intent.
type Directive struct {
	Kind      DirectiveKind
	Stage     types.Stage
	Encounter types.EncounterDef // set for DirectiveEncounter
	Ending    types.Ending       // set for DirectiveDone
	Output    []string
}

// Chancer is the single probability draw the guardian trick needs.
// *engine.RNG satisfies it.
type Chancer interface {
	Chance(p float64) bool
}

// Progression sequences the playthrough. It owns the exclusive reference
// to the player for flag updates; combat sessions borrow the player only
// for the duration of one encounter.
type Progression struct {
	defs   *state.Defs
	player *types.Player

	stage          types.Stage
	spiritResolved bool
	queue          []types.EncounterDef

	guardianPending bool
	guardianIntent  types.GuardianIntent

	ending types.Ending
}

// New creates a progression at the village stage.
func New(defs *state.Defs, player *types.Player) *Progression {
	return &Progression{defs: defs, player: player, stage: types.StageVillage}
}

// Stage returns the current stage marker.
func (p *Progression) Stage() types.Stage { return p.stage }

// Ending returns the final ending, or EndingNone while the story runs.
func (p *Progression) Ending() types.Ending { return p.ending }

// AwaitingSpirit reports whether the forest spirit choice is still open.
func (p *Progression) AwaitingSpirit() bool {
	return p.stage == types.StageForest && !p.spiritResolved
}

// AwaitingGuardian reports whether the guardian choice is still open.
func (p *Progression) AwaitingGuardian() bool {
	return p.stage == types.StageGuardian && !p.guardianPending && p.ending == types.EndingNone
}

// Proceed consumes one proceed intent and returns the next directive.
// Leaving the village is unconditional; later stages repeat their pending
// directive until the host satisfies it.
func (p *Progression) Proceed() (Directive, error) {
	switch p.stage {
	case types.StageVillage:
		p.enterStage(types.StageForest)
		return p.withIntro(Directive{Kind: DirectiveSpiritChoice, Stage: p.stage}), nil

	case types.StageForest:
		if !p.spiritResolved {
			return Directive{Kind: DirectiveSpiritChoice, Stage: p.stage}, nil
		}
		if len(p.queue) > 0 {
			return p.encounterDirective(), nil
		}
		p.enterStage(types.StageCastle)
		if len(p.queue) == 0 {
			// Content defined an empty castle: fall through to the guardian.
			return p.enterGuardian(state.StageIntro(p.defs, types.StageCastle)), nil
		}
		return p.withIntro(p.encounterDirective()), nil

	case types.StageCastle:
		if len(p.queue) > 0 {
			return p.encounterDirective(), nil
		}
		return p.enterGuardian(), nil

	case types.StageGuardian:
		return Directive{Kind: DirectiveGuardianChoice, Stage: p.stage}, nil

	default:
		return Directive{Kind: DirectiveDone, Stage: p.stage, Ending: p.ending}, ErrStoryOver
	}
}

func (p *Progression) enterStage(stage types.Stage) {
	p.stage = stage
	p.queue = append([]types.EncounterDef(nil), state.StageEncounters(p.defs, stage)...)
}

func (p *Progression) withIntro(d Directive) Directive {
	if intro := state.StageIntro(p.defs, p.stage); intro != "" {
		d.Output = append([]string{intro}, d.Output...)
	}
	return d
}

func (p *Progression) encounterDirective() Directive {
	return Directive{Kind: DirectiveEncounter, Stage: p.stage, Encounter: p.queue[0]}
}

// enterGuardian moves to the guardian stage. Intros from stages skipped on
// the way are prepended to the directive output.
func (p *Progression) enterGuardian(skippedIntros ...string) Directive {
	p.enterStage(types.StageGuardian)
	d := p.withIntro(Directive{Kind: DirectiveGuardianChoice, Stage: p.stage})
	for i := len(skippedIntros) - 1; i >= 0; i-- {
		if skippedIntros[i] != "" {
			d.Output = append([]string{skippedIntros[i]}, d.Output...)
		}
	}
	return d
}

// ChooseSpirit resolves the forest's binary choice. Helping sets the
// persistent flags and grants the Spirit Charm; declining grants a Lucky
// Charm consolation.
func (p *Progression) ChooseSpirit(help bool) ([]string, error) {
	if !p.AwaitingSpirit() {
		return nil, fmt.Errorf("%w: no spirit to answer here", ErrInvalidChoice)
	}
	p.spiritResolved = true

	if help {
		p.player.HelpedSpirit = true
		p.player.HasCharm = true
		state.GrantItem(p.defs, p.player, "Spirit Charm")
		return []string{"You freed the spirit. It grants you a Spirit Charm."}, nil
	}
	state.GrantItem(p.defs, p.player, "Lucky Charm")
	return []string{"You ignored the spirit. You feel uneasy, but pocket a Lucky Charm."}, nil
}

// BuyPotion spends gold on a Small Potion. Village only.
func (p *Progression) BuyPotion() ([]string, error) {
	if p.stage != types.StageVillage {
		return nil, fmt.Errorf("%w: the shop is back in the village", ErrInvalidChoice)
	}
	if p.player.Gold < potionPrice {
		return nil, fmt.Errorf("%w: a potion costs %d gold", ErrNotEnoughGold, potionPrice)
	}
	p.player.Gold -= potionPrice
	item := state.GrantItem(p.defs, p.player, "Small Potion")
	return []string{fmt.Sprintf("Bought %s for %d gold.", item.Name, potionPrice)}, nil
}

// Rest spends gold on a full hp/mp restore. Village only.
func (p *Progression) Rest() ([]string, error) {
	if p.stage != types.StageVillage {
		return nil, fmt.Errorf("%w: the inn is back in the village", ErrInvalidChoice)
	}
	if p.player.Gold < restPrice {
		return nil, fmt.Errorf("%w: a night at the inn costs %d gold", ErrNotEnoughGold, restPrice)
	}
	p.player.Gold -= restPrice
	p.player.HP = p.player.MaxHP
	p.player.MP = p.player.MaxMP
	return []string{"You rest at the inn. HP and MP fully restored."}, nil
}

// ChooseGuardian consumes the final three-way intent. When needCombat is
// true the host must run a session against the guardian and report its
// outcome; otherwise the returned ending is final.
func (p *Progression) ChooseGuardian(intent types.GuardianIntent, rng Chancer) (ending types.Ending, needCombat bool, out []string, err error) {
	if p.stage != types.StageGuardian || p.guardianPending {
		return types.EndingNone, false, nil, fmt.Errorf("%w: the guardian is not before you", ErrInvalidChoice)
	}

	ending, needCombat, out, err = ResolveGuardian(intent, p.player, rng)
	if err != nil {
		return types.EndingNone, false, nil, err
	}
	if needCombat {
		p.guardianPending = true
		p.guardianIntent = intent
		return types.EndingNone, true, out, nil
	}
	p.finish(ending)
	return ending, false, out, nil
}

// ReportOutcome feeds a finished session's terminal state back into the
// progression. Defeat anywhere short-circuits to the BAD ending. A fled
// forced encounter stays at the head of the queue: it must be won to
// advance. Returns the ending if the outcome finished the story.
func (p *Progression) ReportOutcome(outcome types.SessionState) (types.Ending, []string) {
	if p.guardianPending {
		p.guardianPending = false
		ending := CombatEnding(p.guardianIntent, p.player, outcome)
		p.finish(ending)
		return ending, endingOutput(ending)
	}

	switch outcome {
	case types.SessionDefeat:
		p.finish(types.EndingBad)
		return types.EndingBad, endingOutput(types.EndingBad)
	case types.SessionVictory:
		if len(p.queue) > 0 {
			p.queue = p.queue[1:]
		}
	}
	return types.EndingNone, nil
}

func (p *Progression) finish(ending types.Ending) {
	p.ending = ending
	p.stage = types.StageDone
}

func endingOutput(ending types.Ending) []string {
	return []string{fmt.Sprintf("=== Ending: %s ===", ending)}
}
