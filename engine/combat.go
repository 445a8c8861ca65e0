package engine

import (
	"fmt"

	"github.com/nathoo/fablecore/engine/state"
	"github.com/nathoo/fablecore/types"
)

// Session is one combat encounter: a borrowed player, an owned enemy, and
// the round state machine. Hosts must serialize access; a session processes
// one intent at a time.
type Session struct {
	player *types.Player
	enemy  *types.Enemy
	rng    *RNG
	state  types.SessionState
	rounds int
}

// NewSession starts a combat encounter. The enemy must be freshly spawned;
// the player is mutated in place and released when the session ends.
func NewSession(p *types.Player, e *types.Enemy, rng *RNG) *Session {
	return &Session{player: p, enemy: e, rng: rng, state: types.SessionOngoing}
}

// State returns the session's state machine position.
func (s *Session) State() types.SessionState { return s.state }

// Enemy returns the session's enemy for display.
func (s *Session) Enemy() *types.Enemy { return s.enemy }

// Rounds returns the number of completed rounds.
func (s *Session) Rounds() int { return s.rounds }

// Apply resolves one player action and, unless the action was terminal or
// rejected, one enemy turn. Rejected actions (insufficient mp, no usable
// item) return an error with nothing mutated and no enemy turn. Defending
// is cleared unconditionally at the end of every completed round.
func (s *Session) Apply(act types.Action) (types.TurnReport, error) {
	report := types.TurnReport{State: s.state}
	if s.state != types.SessionOngoing {
		return report, ErrSessionOver
	}

	switch act.Kind {
	case types.ActionAttack:
		report.Output = append(report.Output, Attack(s.player, s.enemy, s.rng)...)

	case types.ActionDefend:
		report.Output = append(report.Output, Defend(s.player)...)

	case types.ActionMagic:
		out, err := CastMagic(s.player, s.enemy, s.rng)
		if err != nil {
			return report, err
		}
		report.Output = append(report.Output, out...)

	case types.ActionItem:
		out, used, err := UseItem(s.player, act.Item)
		if err != nil {
			return report, err
		}
		report.Output = append(report.Output, out...)
		if !used {
			// Item had no effect; the turn is not consumed.
			return report, nil
		}

	case types.ActionFlee:
		escaped, out := AttemptFlee(s.player, s.rng)
		report.Output = append(report.Output, out...)
		if escaped {
			s.state = types.SessionFled
			report.State = s.state
			return report, nil
		}

	default:
		return report, fmt.Errorf("%w: %q", ErrUnknownAction, act.Kind)
	}

	if s.enemy.HP <= 0 {
		s.state = types.SessionVictory
		report.State = s.state
		report.Output = append(report.Output, fmt.Sprintf("You defeated the %s!", s.enemy.Name))
		reward, out := s.grantRewards()
		report.Reward = reward
		report.Output = append(report.Output, out...)
		return report, nil
	}

	report.Output = append(report.Output, s.enemyTurn()...)
	s.player.Defending = false
	s.rounds++

	if s.player.HP <= 0 {
		s.state = types.SessionDefeat
		report.Output = append(report.Output, "You were defeated...")
	}
	report.State = s.state
	return report, nil
}

// enemyTurn runs one enemy action: special behavior with a fixed chance,
// otherwise a standard attack with a hit check against player agility.
func (s *Session) enemyTurn() []string {
	if s.enemy.Special != types.SpecialNone && s.rng.Chance(specialChance) {
		return s.specialAction()
	}

	hit := enemyHitBase - float64(s.player.Agility)*enemyHitPerAgility
	if hit < enemyHitFloor {
		hit = enemyHitFloor
	}
	if !s.rng.Chance(hit) {
		return []string{fmt.Sprintf("%s misses!", s.enemy.Name)}
	}

	dmg := s.enemy.Strength + s.rng.Bonus(enemyBonusMax)
	if s.player.Defending {
		dmg /= 2
	}
	s.damagePlayer(dmg)
	return []string{fmt.Sprintf("%s hits you for %d damage.", s.enemy.Name, dmg)}
}

// specialAction dispatches the enemy's tagged special behavior.
func (s *Session) specialAction() []string {
	switch s.enemy.Special {
	case types.SpecialStealItem:
		if len(s.player.Inventory) == 0 {
			return []string{fmt.Sprintf("%s grasps at your pack but finds nothing.", s.enemy.Name)}
		}
		stolen := s.player.Inventory[0]
		state.RemoveItemAt(s.player, 0)
		return []string{fmt.Sprintf("%s snatches your %s!", s.enemy.Name, stolen.Name)}

	case types.SpecialFireBreath:
		// Fire breath cannot be dodged, only braced against.
		dmg := s.enemy.Strength + fireBreathBonus
		if s.player.Defending {
			dmg /= 2
		}
		s.damagePlayer(dmg)
		return []string{fmt.Sprintf("%s breathes fire for %d damage!", s.enemy.Name, dmg)}

	default:
		return nil
	}
}

// grantRewards applies victory gold and loot rolls to the player.
func (s *Session) grantRewards() (*types.Reward, []string) {
	reward := &types.Reward{Gold: s.enemy.Level * goldPerLevel}
	s.player.Gold += reward.Gold
	out := []string{fmt.Sprintf("You found %d gold.", reward.Gold)}

	for _, entry := range s.enemy.Loot {
		if s.rng.Roll(100) > entry.Chance {
			continue
		}
		s.player.Inventory = append(s.player.Inventory, entry.Item)
		reward.Loot = append(reward.Loot, entry.Item)
		out = append(out, fmt.Sprintf("%s dropped %s.", s.enemy.Name, entry.Item.Name))
	}
	return reward, out
}

func (s *Session) damagePlayer(dmg int) {
	s.player.HP -= dmg
	if s.player.HP < 0 {
		s.player.HP = 0
	}
}
