// Package types defines the shared data structures for the FableCore engine.
// This package contains only type definitions — no logic, no methods.
package types

// Class identifies a player archetype.
type Class string

const (
	ClassWarrior Class = "Warrior"
	ClassMage    Class = "Mage"
	ClassRogue   Class = "Rogue"
)

// Item is a carried object. Name doubles as the key for effect lookup;
// Description is display-only.
type Item struct {
	Name        string
	Description string
}

// Player is the single persistent character record for a playthrough.
type Player struct {
	Name  string
	Class Class

	Strength int
	Agility  int
	Magic    int

	HP    int
	MaxHP int
	MP    int
	MaxMP int
	Gold  int

	Inventory []Item // insertion order = acquisition order; duplicates allowed

	Defending    bool // true only for the round it was set
	HelpedSpirit bool // set once, never cleared
	HasCharm     bool // set once, never cleared
}

// SpecialKind tags an enemy's special-action behavior. The set is closed
// so the combat session can dispatch exhaustively.
type SpecialKind string

const (
	SpecialNone       SpecialKind = ""
	SpecialStealItem  SpecialKind = "steal_item"
	SpecialFireBreath SpecialKind = "fire_breath"
)

// LootEntry is one possible drop, rolled independently on victory.
type LootEntry struct {
	Item   Item
	Chance int // percent, 1..100
}

// Enemy is one encounter's opponent. Created fresh per encounter;
// never persists across encounters.
type Enemy struct {
	Name     string
	HP       int
	MaxHP    int
	Strength int
	Agility  int
	Magic    int
	Level    int
	Special  SpecialKind
	Loot     []LootEntry
}

// ActionKind identifies a player combat action.
type ActionKind string

const (
	ActionAttack ActionKind = "attack"
	ActionDefend ActionKind = "defend"
	ActionMagic  ActionKind = "magic"
	ActionItem   ActionKind = "item"
	ActionFlee   ActionKind = "flee"
)

// Action is one externally decided combat intent. Item optionally names
// an inventory item to use; empty means "first usable item".
type Action struct {
	Kind ActionKind
	Item string
}

// SessionState is the combat session's state machine position.
type SessionState string

const (
	SessionOngoing SessionState = "ongoing"
	SessionVictory SessionState = "victory"
	SessionDefeat  SessionState = "defeat"
	SessionFled    SessionState = "fled"
)

// Reward is what a victorious session grants.
type Reward struct {
	Gold int
	Loot []Item
}

// TurnReport is the output of one combat round (or one rejected action).
type TurnReport struct {
	State  SessionState
	Output []string
	Reward *Reward // non-nil only on victory
}

// Stage is a position in the narrative progression.
type Stage string

const (
	StageVillage  Stage = "village"
	StageForest   Stage = "forest"
	StageCastle   Stage = "castle"
	StageGuardian Stage = "guardian"
	StageDone     Stage = "done"
)

// GuardianIntent is the final three-way choice.
type GuardianIntent string

const (
	IntentBefriend GuardianIntent = "befriend"
	IntentFight    GuardianIntent = "fight"
	IntentTrick    GuardianIntent = "trick"
)

// Ending classifies a finished playthrough.
type Ending string

const (
	EndingNone    Ending = ""
	EndingGood    Ending = "GOOD"
	EndingNeutral Ending = "NEUTRAL"
	EndingBad     Ending = "BAD"
)

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title        string
	Author       string
	Version      string
	Intro        string
	StartingGold int
}

// ClassDef is a class stat/resource/starting-inventory preset.
type ClassDef struct {
	Class    Class
	Strength int
	Agility  int
	Magic    int
	MaxHP    int
	MaxMP    int
	Items    []string // starting item names, in order
}

// ItemDef is the base definition of an item.
type ItemDef struct {
	Name        string
	Description string
}

// LootDef is one loot table row as defined in content (item by name).
type LootDef struct {
	Item   string
	Chance int
}

// EnemyDef is the base definition of an enemy type.
type EnemyDef struct {
	Name     string
	HP       int
	Strength int
	Agility  int
	Magic    int
	Level    int
	Special  SpecialKind
	Loot     []LootDef
}

// EncounterDef is one scheduled encounter within a stage.
type EncounterDef struct {
	Enemy      string
	Difficulty float64 // 0 means 1.0
}

// StageDef is the content script for one narrative stage.
type StageDef struct {
	Stage      Stage
	Intro      string
	Encounters []EncounterDef
}
