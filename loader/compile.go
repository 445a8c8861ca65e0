package loader

import (
	"fmt"

	"github.com/nathoo/fablecore/engine/state"
	"github.com/nathoo/fablecore/types"
	lua "github.com/yuin/gopher-lua"
)

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// getFloat returns a float field from a Lua table, or 0 if missing.
func getFloat(tbl *lua.LTable, key string) float64 {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	if t, ok := tbl.RawGetString(key).(*lua.LTable); ok {
		return t
	}
	return nil
}

// getStrings returns an array-style table field as a string slice.
func getStrings(tbl *lua.LTable, key string) []string {
	arr := getTable(tbl, key)
	if arr == nil {
		return nil
	}
	var result []string
	for i := 1; i <= arr.MaxN(); i++ {
		if s, ok := arr.RawGetInt(i).(lua.LString); ok {
			result = append(result, string(s))
		}
	}
	return result
}

// compile converts all collected Lua data into a Defs struct.
func compile(coll *collector) (*state.Defs, error) {
	defs := &state.Defs{
		Classes: map[types.Class]types.ClassDef{},
		Items:   map[string]types.ItemDef{},
		Enemies: map[string]types.EnemyDef{},
		Stages:  map[types.Stage]types.StageDef{},
	}

	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}
	defs.Game = types.GameDef{
		Title:        getString(coll.game, "title"),
		Author:       getString(coll.game, "author"),
		Version:      getString(coll.game, "version"),
		Intro:        getString(coll.game, "intro"),
		StartingGold: getInt(coll.game, "starting_gold"),
	}

	for _, raw := range coll.classes {
		class := types.Class(raw.name)
		if _, exists := defs.Classes[class]; exists {
			return nil, fmt.Errorf("duplicate class %q", raw.name)
		}
		defs.Classes[class] = types.ClassDef{
			Class:    class,
			Strength: getInt(raw.table, "strength"),
			Agility:  getInt(raw.table, "agility"),
			Magic:    getInt(raw.table, "magic"),
			MaxHP:    getInt(raw.table, "max_hp"),
			MaxMP:    getInt(raw.table, "max_mp"),
			Items:    getStrings(raw.table, "items"),
		}
	}

	for _, raw := range coll.items {
		if _, exists := defs.Items[raw.name]; exists {
			return nil, fmt.Errorf("duplicate item %q", raw.name)
		}
		defs.Items[raw.name] = types.ItemDef{
			Name:        raw.name,
			Description: getString(raw.table, "description"),
		}
	}

	for _, raw := range coll.enemies {
		if _, exists := defs.Enemies[raw.name]; exists {
			return nil, fmt.Errorf("duplicate enemy %q", raw.name)
		}
		enemy, err := compileEnemy(raw)
		if err != nil {
			return nil, err
		}
		defs.Enemies[raw.name] = enemy
	}

	for _, raw := range coll.stages {
		stage := types.Stage(raw.name)
		if _, exists := defs.Stages[stage]; exists {
			return nil, fmt.Errorf("duplicate stage %q", raw.name)
		}
		defs.Stages[stage] = types.StageDef{
			Stage:      stage,
			Intro:      getString(raw.table, "intro"),
			Encounters: compileEncounters(raw.table),
		}
	}

	return defs, nil
}

func compileEnemy(raw rawNamed) (types.EnemyDef, error) {
	enemy := types.EnemyDef{
		Name:     raw.name,
		HP:       getInt(raw.table, "hp"),
		Strength: getInt(raw.table, "strength"),
		Agility:  getInt(raw.table, "agility"),
		Magic:    getInt(raw.table, "magic"),
		Level:    getInt(raw.table, "level"),
		Special:  types.SpecialKind(getString(raw.table, "special")),
	}

	loot := getTable(raw.table, "loot")
	if loot == nil {
		return enemy, nil
	}
	for i := 1; i <= loot.MaxN(); i++ {
		row, ok := loot.RawGetInt(i).(*lua.LTable)
		if !ok {
			return enemy, fmt.Errorf("enemy %q: loot entry %d is not a table", raw.name, i)
		}
		enemy.Loot = append(enemy.Loot, types.LootDef{
			Item:   getString(row, "item"),
			Chance: getInt(row, "chance"),
		})
	}
	return enemy, nil
}

func compileEncounters(tbl *lua.LTable) []types.EncounterDef {
	arr := getTable(tbl, "encounters")
	if arr == nil {
		return nil
	}
	var result []types.EncounterDef
	for i := 1; i <= arr.MaxN(); i++ {
		row, ok := arr.RawGetInt(i).(*lua.LTable)
		if !ok {
			continue
		}
		result = append(result, types.EncounterDef{
			Enemy:      getString(row, "enemy"),
			Difficulty: getFloat(row, "difficulty"),
		})
	}
	return result
}
