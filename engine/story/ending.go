package story

import (
	"fmt"

	"github.com/nathoo/fablecore/types"
)

// Trick success probability parameters.
const (
	trickBase       = 0.25
	trickPerAgility = 0.03
	trickPerMagic   = 0.02
)

// befriendMagicFloor is the magic stat that talks the guardian down
// without a charm.
const befriendMagicFloor = 8

// ResolveGuardian classifies the guardian confrontation up to the point
// where combat may be forced. Befriend succeeds outright with the charm or
// high magic; Trick rolls once against agility and magic; Fight always
// forces combat. The single trick roll is the only random draw.
func ResolveGuardian(intent types.GuardianIntent, p *types.Player, rng Chancer) (ending types.Ending, needCombat bool, out []string, err error) {
	switch intent {
	case types.IntentBefriend:
		if p.HasCharm || p.Magic >= befriendMagicFloor {
			return types.EndingGood, false,
				[]string{"You spoke truly; the guardian accepts peace."}, nil
		}
		return types.EndingNone, true,
			[]string{"Your words fail. The Guardian attacks!"}, nil

	case types.IntentFight:
		return types.EndingNone, true,
			[]string{"You draw your weapon. The Guardian meets you head on."}, nil

	case types.IntentTrick:
		if rng.Chance(trickBase + float64(p.Agility)*trickPerAgility + float64(p.Magic)*trickPerMagic) {
			return types.EndingGood, false,
				[]string{"Your trick works and the Guardian steps aside."}, nil
		}
		return types.EndingNone, true,
			[]string{"Trick failed; Guardian attacks!"}, nil

	default:
		return types.EndingNone, false, nil, fmt.Errorf("%w: %q", ErrInvalidChoice, intent)
	}
}

// CombatEnding classifies a forced guardian combat's terminal state.
// Any non-victory is the BAD ending. A Trick victory is NEUTRAL regardless
// of the spirit flag; Befriend and Fight victories honor it. The guardian
// remembers the attempted deception even when the fight is won.
func CombatEnding(intent types.GuardianIntent, p *types.Player, outcome types.SessionState) types.Ending {
	if outcome != types.SessionVictory {
		return types.EndingBad
	}
	if intent == types.IntentTrick {
		return types.EndingNeutral
	}
	if p.HelpedSpirit {
		return types.EndingGood
	}
	return types.EndingNeutral
}
