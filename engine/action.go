package engine

import (
	"fmt"
	"strings"

	"github.com/nathoo/fablecore/engine/state"
	"github.com/nathoo/fablecore/types"
)

// Combat tuning constants. Fixed rather than data-driven; content files
// control entities and encounters, not the resolution math.
const (
	attackBase     = 3
	attackBonusMax = 4
	critBase       = 0.05
	critPerAgility = 0.01
	critCap        = 0.50

	magicCost     = 6
	magicBase     = 4
	magicBonusMax = 6
	burnChance    = 0.20
	burnBonus     = 3

	fleeBase       = 0.35
	fleePerAgility = 0.02

	enemyHitBase       = 0.70
	enemyHitPerAgility = 0.01
	enemyHitFloor      = 0.20
	enemyBonusMax      = 3
	specialChance      = 0.20
	fireBreathBonus    = 4

	goldPerLevel = 5
)

// Item effect amounts, keyed by exact item name in applyItemEffect.
const (
	smallPotionHP  = 20
	manaPotionMP   = 12
	luckyCharmHP   = 8
	luckyCharmGold = 5
)

// critChance returns the critical-hit probability for the given agility.
func critChance(agility int) float64 {
	p := critBase + float64(agility)*critPerAgility
	if p > critCap {
		p = critCap
	}
	return p
}

// Attack resolves a standard player attack. Draw order: crit check, then
// damage bonus.
func Attack(p *types.Player, e *types.Enemy, rng *RNG) []string {
	crit := rng.Chance(critChance(p.Agility))
	dmg := attackBase + p.Strength + rng.Bonus(attackBonusMax)

	var out []string
	if crit {
		dmg = dmg * 3 / 2
		out = append(out, "Critical hit!")
	}
	damageEnemy(e, dmg)
	out = append(out, fmt.Sprintf("You attack for %d damage.", dmg))
	return out
}

// Defend braces the player for the remainder of the round. The next
// incoming hit's damage is halved.
func Defend(p *types.Player) []string {
	p.Defending = true
	return []string{"You brace to reduce incoming damage."}
}

// CastMagic resolves a spell cast. A cast with mp below cost returns
// ErrInsufficientMP with nothing mutated; the caller must not run the
// enemy turn. Mages draw an extra burn check after the damage bonus.
func CastMagic(p *types.Player, e *types.Enemy, rng *RNG) ([]string, error) {
	if p.MP < magicCost {
		return nil, ErrInsufficientMP
	}
	p.MP -= magicCost

	dmg := p.Magic + magicBase + rng.Bonus(magicBonusMax)
	out := []string{fmt.Sprintf("You cast a spell for %d magic damage.", dmg)}

	if p.Class == types.ClassMage && rng.Chance(burnChance) {
		dmg += burnBonus
		out = append(out, fmt.Sprintf("The spell ignites, burning for %d more.", burnBonus))
	}

	damageEnemy(e, dmg)
	return out, nil
}

// UseItem applies the first usable inventory item, or the named one when a
// selector is given. used reports whether a turn was spent: a missing or
// effect-less item leaves the turn unconsumed.
func UseItem(p *types.Player, selector string) (out []string, used bool, err error) {
	if selector != "" {
		for i, it := range p.Inventory {
			if !strings.EqualFold(it.Name, selector) {
				continue
			}
			msgs, ok := applyItemEffect(p, it.Name)
			if !ok {
				return []string{fmt.Sprintf("The %s does nothing useful right now.", it.Name)}, false, nil
			}
			state.RemoveItemAt(p, i)
			return msgs, true, nil
		}
		return nil, false, fmt.Errorf("%w: %q", ErrUnknownItem, selector)
	}

	for i, it := range p.Inventory {
		msgs, ok := applyItemEffect(p, it.Name)
		if !ok {
			continue
		}
		state.RemoveItemAt(p, i)
		return msgs, true, nil
	}
	return nil, false, ErrNoUsableItem
}

// applyItemEffect resolves an item name against the fixed effect catalog.
// Returns false for names outside the catalog.
func applyItemEffect(p *types.Player, name string) ([]string, bool) {
	switch name {
	case "Small Potion":
		healed := healPlayer(p, smallPotionHP)
		return []string{fmt.Sprintf("Used Small Potion. Healed %d HP.", healed)}, true
	case "Mana Potion":
		p.MP += manaPotionMP
		if p.MP > p.MaxMP {
			p.MP = p.MaxMP
		}
		return []string{"Used Mana Potion. Restored MP."}, true
	case "Lucky Charm":
		healed := healPlayer(p, luckyCharmHP)
		p.Gold += luckyCharmGold
		return []string{fmt.Sprintf("Lucky Charm used: HP +%d, Gold +%d.", healed, luckyCharmGold)}, true
	case "Spirit Charm":
		p.HasCharm = true
		return []string{"Spirit Charm hums; you feel protected."}, true
	default:
		return nil, false
	}
}

// AttemptFlee rolls a single escape check. Success ends the session;
// failure consumes the turn and the enemy acts.
func AttemptFlee(p *types.Player, rng *RNG) (escaped bool, out []string) {
	if rng.Chance(fleeBase + float64(p.Agility)*fleePerAgility) {
		return true, []string{"You fled successfully."}
	}
	return false, []string{"Flee failed!"}
}

// damageEnemy subtracts damage from enemy hp, floored at 0.
func damageEnemy(e *types.Enemy, dmg int) {
	e.HP -= dmg
	if e.HP < 0 {
		e.HP = 0
	}
}

// healPlayer raises hp capped at max and returns the amount actually healed.
func healPlayer(p *types.Player, amount int) int {
	before := p.HP
	p.HP += amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
	return p.HP - before
}
