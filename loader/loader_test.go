package loader

import (
	"testing"

	"github.com/nathoo/fablecore/types"
)

func TestLoadDefault(t *testing.T) {
	defs, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}

	if defs.Game.Title != "FableCore" {
		t.Errorf("Title = %q, want FableCore", defs.Game.Title)
	}
	if defs.Game.StartingGold != 12 {
		t.Errorf("StartingGold = %d, want 12", defs.Game.StartingGold)
	}
	if len(defs.Classes) != 3 {
		t.Errorf("expected 3 classes, got %d", len(defs.Classes))
	}
	if _, ok := defs.Enemies["Ancient Guardian"]; !ok {
		t.Error("Ancient Guardian not found")
	}

	forest, ok := defs.Stages[types.StageForest]
	if !ok {
		t.Fatal("forest stage not found")
	}
	if len(forest.Encounters) != 2 {
		t.Errorf("forest encounters = %d, want 2", len(forest.Encounters))
	}
}

func TestLoad_MinimalGame(t *testing.T) {
	defs, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.Game.Title != "Minimal Test Game" {
		t.Errorf("Title = %q", defs.Game.Title)
	}
	if defs.Game.StartingGold != 10 {
		t.Errorf("StartingGold = %d, want 10", defs.Game.StartingGold)
	}
	warrior, ok := defs.Classes[types.ClassWarrior]
	if !ok {
		t.Fatal("Warrior class not found")
	}
	if warrior.Strength != 8 || warrior.MaxHP != 40 {
		t.Errorf("warrior = %+v", warrior)
	}
}

func TestLoad_SplitAcrossFiles(t *testing.T) {
	defs, err := Load("testdata/split")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if defs.Game.Title != "Split Test Game" {
		t.Errorf("Title = %q", defs.Game.Title)
	}

	goblin, ok := defs.Enemies["Goblin"]
	if !ok {
		t.Fatal("Goblin not found")
	}
	if len(goblin.Loot) != 1 || goblin.Loot[0].Item != "Small Potion" || goblin.Loot[0].Chance != 60 {
		t.Errorf("goblin loot = %v", goblin.Loot)
	}

	forest := defs.Stages[types.StageForest]
	if len(forest.Encounters) != 2 {
		t.Fatalf("forest encounters = %d, want 2", len(forest.Encounters))
	}
	if forest.Encounters[0].Difficulty != 0 {
		t.Errorf("first encounter difficulty = %v, want 0 (default)", forest.Encounters[0].Difficulty)
	}
	if forest.Encounters[1].Difficulty != 1.5 {
		t.Errorf("second encounter difficulty = %v, want 1.5", forest.Encounters[1].Difficulty)
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	if _, err := Load("testdata/does_not_exist"); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoad_EmptyDirectory(t *testing.T) {
	if _, err := Load(t.TempDir()); err == nil {
		t.Fatal("expected error for directory without .lua files")
	}
}

func TestSortLuaFiles_GameFirst(t *testing.T) {
	names := []string{"world.lua", "game.lua", "areas.lua"}
	sortLuaFiles(names)

	want := []string{"game.lua", "areas.lua", "world.lua"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestLoad_SandboxBlocksDofile(t *testing.T) {
	_, err := loadSources([]source{{
		name: "evil.lua",
		data: `dofile("other.lua")`,
	}})
	if err == nil {
		t.Fatal("expected error: dofile should be removed from the sandbox")
	}
}

func TestLoad_SandboxBlocksRandomseed(t *testing.T) {
	_, err := loadSources([]source{{
		name: "evil.lua",
		data: `math.randomseed(42)`,
	}})
	if err == nil {
		t.Fatal("expected error: math.randomseed should be removed")
	}
}

func TestLoad_LuaSyntaxError(t *testing.T) {
	_, err := loadSources([]source{{
		name: "broken.lua",
		data: `Game { title = `,
	}})
	if err == nil {
		t.Fatal("expected error for broken Lua")
	}
}

func TestLoad_NoGameDefinition(t *testing.T) {
	_, err := loadSources([]source{{
		name: "empty.lua",
		data: `-- nothing here`,
	}})
	if err == nil {
		t.Fatal("expected error when Game{} is missing")
	}
}

func TestLoad_DuplicateClass(t *testing.T) {
	_, err := loadSources([]source{{
		name: "dup.lua",
		data: `
Game { title = "Dup" }
Class "Warrior" { strength = 1, agility = 1, magic = 1, max_hp = 1, max_mp = 1 }
Class "Warrior" { strength = 2, agility = 2, magic = 2, max_hp = 2, max_mp = 2 }
`,
	}})
	if err == nil {
		t.Fatal("expected error for duplicate class")
	}
}
