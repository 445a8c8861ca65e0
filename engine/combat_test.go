package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/nathoo/fablecore/types"
)

func outputContains(out []string, want string) bool {
	for _, line := range out {
		if strings.Contains(line, want) {
			return true
		}
	}
	return false
}

func TestSession_VictorySkipsEnemyTurn(t *testing.T) {
	p := testWarrior()
	e := testGoblin()
	e.HP = 8
	// No crit, +0 bonus: 9 damage kills. No enemy draws follow.
	s := NewSession(p, e, scripted([]float64{0.99}, []int{0}))

	report, err := s.Apply(types.Action{Kind: types.ActionAttack})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if report.State != types.SessionVictory {
		t.Fatalf("state = %s, want victory", report.State)
	}
	if p.HP != p.MaxHP {
		t.Fatal("a killing blow must not be answered")
	}
	if !outputContains(report.Output, "You defeated the Goblin!") {
		t.Fatalf("missing victory line: %v", report.Output)
	}
	if report.Reward == nil || report.Reward.Gold != 5 {
		t.Fatalf("reward = %+v, want 5 gold for a level 1 enemy", report.Reward)
	}
	if p.Gold != 5 {
		t.Fatalf("gold = %d, want 5", p.Gold)
	}
}

func TestSession_VictoryLootDrop(t *testing.T) {
	p := testWarrior()
	e := testGoblin()
	e.HP = 5
	e.Loot = []types.LootEntry{{Item: types.Item{Name: "Small Potion"}, Chance: 60}}
	// Attack bonus 0, then loot roll 60 (<= 60 drops).
	s := NewSession(p, e, scripted([]float64{0.99}, []int{0, 59}))

	report, err := s.Apply(types.Action{Kind: types.ActionAttack})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if len(p.Inventory) != 1 || p.Inventory[0].Name != "Small Potion" {
		t.Fatalf("inventory = %v, want dropped potion", p.Inventory)
	}
	if !outputContains(report.Output, "Goblin dropped Small Potion.") {
		t.Fatalf("missing drop line: %v", report.Output)
	}
}

func TestSession_VictoryLootMiss(t *testing.T) {
	p := testWarrior()
	e := testGoblin()
	e.HP = 5
	e.Loot = []types.LootEntry{{Item: types.Item{Name: "Small Potion"}, Chance: 60}}
	// Loot roll 61 (> 60): no drop.
	s := NewSession(p, e, scripted([]float64{0.99}, []int{0, 60}))

	if _, err := s.Apply(types.Action{Kind: types.ActionAttack}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(p.Inventory) != 0 {
		t.Fatalf("inventory = %v, want no drop", p.Inventory)
	}
}

func TestSession_DefendHalvesAndClears(t *testing.T) {
	p := testWarrior() // AGI 2: enemy hit chance 0.68
	e := testGoblin()
	// Enemy hit draw 0.5 (hits), bonus +2: (4+2)/2 = 3 while defending.
	s := NewSession(p, e, scripted([]float64{0.5}, []int{2}))

	report, err := s.Apply(types.Action{Kind: types.ActionDefend})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if p.HP != 37 {
		t.Fatalf("hp = %d, want 37 (halved 6)", p.HP)
	}
	if p.Defending {
		t.Fatal("defending must clear at end of round")
	}
	if s.Rounds() != 1 {
		t.Fatalf("rounds = %d, want 1", s.Rounds())
	}
	if !outputContains(report.Output, "Goblin hits you for 3 damage.") {
		t.Fatalf("missing hit line: %v", report.Output)
	}
}

func TestSession_EnemyMiss(t *testing.T) {
	p := testWarrior()
	e := testGoblin()
	e.HP = 100
	// Player attack, then enemy hit draw 0.9 > 0.68: miss.
	s := NewSession(p, e, scripted([]float64{0.99, 0.9}, []int{0}))

	report, err := s.Apply(types.Action{Kind: types.ActionAttack})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if p.HP != p.MaxHP {
		t.Fatal("a miss must not deal damage")
	}
	if !outputContains(report.Output, "Goblin misses!") {
		t.Fatalf("missing miss line: %v", report.Output)
	}
}

func TestSession_EnemyHitChanceFloor(t *testing.T) {
	p := testWarrior()
	p.Agility = 60 // would push hit chance negative without the floor
	e := testGoblin()
	e.HP = 100
	// Hit draw 0.19 is under the 0.20 floor: still a hit.
	s := NewSession(p, e, scripted([]float64{0.0, 0.19}, []int{0, 0}))

	if _, err := s.Apply(types.Action{Kind: types.ActionAttack}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if p.HP == p.MaxHP {
		t.Fatal("draw under the floor probability should hit")
	}
}

func TestSession_FleeSuccess(t *testing.T) {
	p := testWarrior() // flee chance 0.39
	e := testGoblin()
	s := NewSession(p, e, scripted([]float64{0.38}, nil))

	report, err := s.Apply(types.Action{Kind: types.ActionFlee})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if report.State != types.SessionFled {
		t.Fatalf("state = %s, want fled", report.State)
	}
	if p.HP != p.MaxHP {
		t.Fatal("a clean escape must not be punished")
	}
}

func TestSession_FleeFailureEnemyActs(t *testing.T) {
	p := testWarrior()
	e := testGoblin()
	// Flee draw 0.5 fails, enemy hit 0.5, bonus +0: 4 damage.
	s := NewSession(p, e, scripted([]float64{0.5, 0.5}, []int{0}))

	report, err := s.Apply(types.Action{Kind: types.ActionFlee})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if report.State != types.SessionOngoing {
		t.Fatalf("state = %s, want ongoing", report.State)
	}
	if p.HP != 36 {
		t.Fatalf("hp = %d, want 36", p.HP)
	}
	if !outputContains(report.Output, "Flee failed!") {
		t.Fatalf("missing flee line: %v", report.Output)
	}
}

func TestSession_RejectedMagicSkipsEnemyTurn(t *testing.T) {
	p := testWarrior()
	p.MP = 0
	e := testGoblin()
	s := NewSession(p, e, scripted(nil, nil))

	_, err := s.Apply(types.Action{Kind: types.ActionMagic})
	if !errors.Is(err, ErrInsufficientMP) {
		t.Fatalf("err = %v, want ErrInsufficientMP", err)
	}
	if p.HP != p.MaxHP || s.Rounds() != 0 {
		t.Fatal("a rejected action must not advance the round")
	}
}

func TestSession_IneffectiveItemSkipsEnemyTurn(t *testing.T) {
	p := testWarrior()
	p.Inventory = []types.Item{{Name: "Dagger"}}
	e := testGoblin()
	s := NewSession(p, e, scripted(nil, nil))

	report, err := s.Apply(types.Action{Kind: types.ActionItem, Item: "Dagger"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if report.State != types.SessionOngoing || s.Rounds() != 0 {
		t.Fatal("an ineffective item must not advance the round")
	}
}

func TestSession_Defeat(t *testing.T) {
	p := testWarrior()
	p.HP = 3
	e := testGoblin()
	e.HP = 100
	// Player attack, enemy hits for 4+0.
	s := NewSession(p, e, scripted([]float64{0.99, 0.5}, []int{0, 0}))

	report, err := s.Apply(types.Action{Kind: types.ActionAttack})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if report.State != types.SessionDefeat {
		t.Fatalf("state = %s, want defeat", report.State)
	}
	if p.HP != 0 {
		t.Fatalf("hp = %d, want 0", p.HP)
	}
	if !outputContains(report.Output, "You were defeated...") {
		t.Fatalf("missing defeat line: %v", report.Output)
	}
}

func TestSession_ApplyAfterTerminal(t *testing.T) {
	p := testWarrior()
	e := testGoblin()
	e.HP = 1
	s := NewSession(p, e, scripted([]float64{0.99}, []int{0}))

	if _, err := s.Apply(types.Action{Kind: types.ActionAttack}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	_, err := s.Apply(types.Action{Kind: types.ActionAttack})
	if !errors.Is(err, ErrSessionOver) {
		t.Fatalf("err = %v, want ErrSessionOver", err)
	}
}

func TestSession_UnknownAction(t *testing.T) {
	s := NewSession(testWarrior(), testGoblin(), scripted(nil, nil))

	_, err := s.Apply(types.Action{Kind: "dance"})
	if !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err = %v, want ErrUnknownAction", err)
	}
}

func TestSession_StealItemSpecial(t *testing.T) {
	p := testWarrior()
	p.Inventory = []types.Item{{Name: "Small Potion"}, {Name: "Dagger"}}
	e := testGoblin()
	e.Name = "Bandit"
	e.HP = 100
	e.Special = types.SpecialStealItem
	// Attack (no crit, +0), then special proc 0.1 < 0.20.
	s := NewSession(p, e, scripted([]float64{0.99, 0.1}, []int{0}))

	report, err := s.Apply(types.Action{Kind: types.ActionAttack})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if len(p.Inventory) != 1 || p.Inventory[0].Name != "Dagger" {
		t.Fatalf("inventory = %v, want first item stolen", p.Inventory)
	}
	if !outputContains(report.Output, "Bandit snatches your Small Potion!") {
		t.Fatalf("missing steal line: %v", report.Output)
	}
}

func TestSession_StealItemEmptyPack(t *testing.T) {
	p := testWarrior()
	e := testGoblin()
	e.Name = "Bandit"
	e.HP = 100
	e.Special = types.SpecialStealItem
	s := NewSession(p, e, scripted([]float64{0.99, 0.1}, []int{0}))

	report, err := s.Apply(types.Action{Kind: types.ActionAttack})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if !outputContains(report.Output, "finds nothing") {
		t.Fatalf("missing empty-pack line: %v", report.Output)
	}
	if p.HP != p.MaxHP {
		t.Fatal("a failed steal deals no damage")
	}
}

func TestSession_FireBreathBracedByDefend(t *testing.T) {
	p := testWarrior()
	e := &types.Enemy{
		Name: "Ancient Guardian", HP: 70, MaxHP: 70,
		Strength: 10, Level: 5, Special: types.SpecialFireBreath,
	}
	// Defend, then special proc. Fire breath has no hit check:
	// (10 + 4) / 2 = 7 while defending.
	s := NewSession(p, e, scripted([]float64{0.1}, nil))

	report, err := s.Apply(types.Action{Kind: types.ActionDefend})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if p.HP != 33 {
		t.Fatalf("hp = %d, want 33", p.HP)
	}
	if !outputContains(report.Output, "Ancient Guardian breathes fire for 7 damage!") {
		t.Fatalf("missing fire line: %v", report.Output)
	}
}
