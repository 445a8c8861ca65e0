// Package state holds the immutable game definitions loaded from Lua and
// the constructors that stamp runtime records out of them.
package state

import (
	"fmt"

	"github.com/nathoo/fablecore/types"
)

// Defs holds the immutable game content: class presets, item descriptions,
// the enemy catalog, and the stage scripts.
type Defs struct {
	Game    types.GameDef
	Classes map[types.Class]types.ClassDef
	Items   map[string]types.ItemDef
	Enemies map[string]types.EnemyDef
	Stages  map[types.Stage]types.StageDef
}

// NewPlayer creates a player from a class preset. hp/mp start at max,
// gold at the content-defined starting amount, inventory at the preset's
// starting items in order.
func NewPlayer(defs *Defs, name string, class types.Class) (*types.Player, error) {
	preset, ok := defs.Classes[class]
	if !ok {
		return nil, fmt.Errorf("unknown class %q", class)
	}

	p := &types.Player{
		Name:     name,
		Class:    class,
		Strength: preset.Strength,
		Agility:  preset.Agility,
		Magic:    preset.Magic,
		HP:       preset.MaxHP,
		MaxHP:    preset.MaxHP,
		MP:       preset.MaxMP,
		MaxMP:    preset.MaxMP,
		Gold:     defs.Game.StartingGold,
	}
	for _, itemName := range preset.Items {
		GrantItem(defs, p, itemName)
	}
	return p, nil
}

// SpawnEnemy creates a fresh enemy from the catalog. difficulty scales hp
// and strength (rounded, minimum 1); 0 means 1.0. Loot rows are resolved
// to full items so the session needs no catalog access.
func SpawnEnemy(defs *Defs, name string, difficulty float64) (*types.Enemy, error) {
	def, ok := defs.Enemies[name]
	if !ok {
		return nil, fmt.Errorf("unknown enemy %q", name)
	}
	if difficulty <= 0 {
		difficulty = 1.0
	}

	hp := scaleStat(def.HP, difficulty)
	e := &types.Enemy{
		Name:     def.Name,
		HP:       hp,
		MaxHP:    hp,
		Strength: scaleStat(def.Strength, difficulty),
		Agility:  def.Agility,
		Magic:    def.Magic,
		Level:    def.Level,
		Special:  def.Special,
	}
	for _, row := range def.Loot {
		e.Loot = append(e.Loot, types.LootEntry{
			Item:   lookupItem(defs, row.Item),
			Chance: row.Chance,
		})
	}
	return e, nil
}

func scaleStat(n int, difficulty float64) int {
	scaled := int(float64(n)*difficulty + 0.5)
	if scaled < 1 {
		scaled = 1
	}
	return scaled
}

// lookupItem resolves an item name to a full item. Names missing from the
// catalog still produce a usable item with an empty description.
func lookupItem(defs *Defs, name string) types.Item {
	if def, ok := defs.Items[name]; ok {
		return types.Item{Name: def.Name, Description: def.Description}
	}
	return types.Item{Name: name}
}

// GrantItem appends the named item to the player's inventory and returns it.
func GrantItem(defs *Defs, p *types.Player, name string) types.Item {
	item := lookupItem(defs, name)
	p.Inventory = append(p.Inventory, item)
	return item
}

// HasItem reports whether the player carries an item with the given name.
func HasItem(p *types.Player, name string) bool {
	for _, it := range p.Inventory {
		if it.Name == name {
			return true
		}
	}
	return false
}

// RemoveItemAt removes the inventory item at index i, preserving order.
func RemoveItemAt(p *types.Player, i int) {
	p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
}

// StageEncounters returns the scheduled encounters for a stage, or nil.
func StageEncounters(defs *Defs, stage types.Stage) []types.EncounterDef {
	if def, ok := defs.Stages[stage]; ok {
		return def.Encounters
	}
	return nil
}

// StageIntro returns the intro text for a stage, or "".
func StageIntro(defs *Defs, stage types.Stage) string {
	if def, ok := defs.Stages[stage]; ok {
		return def.Intro
	}
	return ""
}

// PlayerSummary produces the display lines for the player panel.
func PlayerSummary(p *types.Player) []string {
	return []string{
		fmt.Sprintf("%s the %s", p.Name, p.Class),
		fmt.Sprintf("HP: %d/%d  MP: %d/%d", p.HP, p.MaxHP, p.MP, p.MaxMP),
		fmt.Sprintf("STR: %d  AGI: %d  MAG: %d", p.Strength, p.Agility, p.Magic),
		fmt.Sprintf("Gold: %d", p.Gold),
	}
}

// EnemySummary produces the display lines for the enemy panel.
func EnemySummary(e *types.Enemy) []string {
	return []string{
		fmt.Sprintf("%s (level %d)", e.Name, e.Level),
		fmt.Sprintf("HP: %d/%d", e.HP, e.MaxHP),
	}
}

// InventoryList produces one display line per carried item.
func InventoryList(p *types.Player) []string {
	if len(p.Inventory) == 0 {
		return []string{"You are carrying nothing."}
	}
	lines := make([]string, 0, len(p.Inventory))
	for i, it := range p.Inventory {
		line := fmt.Sprintf("%d. %s", i+1, it.Name)
		if it.Description != "" {
			line += " — " + it.Description
		}
		lines = append(lines, line)
	}
	return lines
}
