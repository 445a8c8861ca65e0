package loader

import (
	"fmt"
	"strings"

	"github.com/nathoo/fablecore/engine/state"
	"github.com/nathoo/fablecore/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

// requiredClasses must all be present: player creation offers exactly these.
var requiredClasses = []types.Class{
	types.ClassWarrior,
	types.ClassMage,
	types.ClassRogue,
}

// validSpecialKinds is the closed set of enemy special behaviors.
var validSpecialKinds = map[types.SpecialKind]bool{
	types.SpecialNone:       true,
	types.SpecialStealItem:  true,
	types.SpecialFireBreath: true,
}

// requiredStages must all be defined for the progression to run.
var requiredStages = []types.Stage{
	types.StageVillage,
	types.StageForest,
	types.StageCastle,
	types.StageGuardian,
}

// guardianEnemy must exist in the catalog: the final confrontation spawns it.
const guardianEnemy = "Ancient Guardian"

// validate checks the compiled defs for referential integrity and consistency.
func validate(defs *state.Defs) error {
	ve := &ValidationError{}

	if defs.Game.Title == "" {
		ve.Errors = append(ve.Errors, "Game.title is required")
	}
	if defs.Game.StartingGold < 0 {
		ve.Errors = append(ve.Errors, "Game.starting_gold must not be negative")
	}

	validateClasses(defs, ve)
	validateEnemies(defs, ve)
	validateStages(defs, ve)

	if _, ok := defs.Enemies[guardianEnemy]; !ok {
		ve.Errors = append(ve.Errors, fmt.Sprintf(
			"enemy %q is required for the final confrontation", guardianEnemy))
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateClasses(defs *state.Defs, ve *ValidationError) {
	for _, class := range requiredClasses {
		def, ok := defs.Classes[class]
		if !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("class %q is not defined", class))
			continue
		}
		if def.Strength <= 0 || def.Agility <= 0 || def.Magic <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"class %q stats must be positive", class))
		}
		if def.MaxHP <= 0 || def.MaxMP <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"class %q max_hp and max_mp must be positive", class))
		}
		for _, item := range def.Items {
			if _, ok := defs.Items[item]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"class %q starting item %q is not defined", class, item))
			}
		}
	}

	for class := range defs.Classes {
		known := false
		for _, req := range requiredClasses {
			if class == req {
				known = true
				break
			}
		}
		if !known {
			ve.Warnings = append(ve.Warnings, fmt.Sprintf(
				"class %q is defined but not selectable", class))
		}
	}
}

func validateEnemies(defs *state.Defs, ve *ValidationError) {
	for name, def := range defs.Enemies {
		if def.HP <= 0 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q hp must be positive", name))
		}
		if def.Level < 1 {
			ve.Errors = append(ve.Errors, fmt.Sprintf("enemy %q level must be at least 1", name))
		}
		if !validSpecialKinds[def.Special] {
			ve.Errors = append(ve.Errors, fmt.Sprintf(
				"enemy %q special %q is not a known behavior", name, def.Special))
		}
		for _, row := range def.Loot {
			if _, ok := defs.Items[row.Item]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"enemy %q loot item %q is not defined", name, row.Item))
			}
			if row.Chance < 1 || row.Chance > 100 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"enemy %q loot item %q chance %d is outside 1..100", name, row.Item, row.Chance))
			}
		}
	}
}

func validateStages(defs *state.Defs, ve *ValidationError) {
	for _, stage := range requiredStages {
		if _, ok := defs.Stages[stage]; !ok {
			ve.Errors = append(ve.Errors, fmt.Sprintf("stage %q is not defined", stage))
		}
	}

	for name, def := range defs.Stages {
		for _, enc := range def.Encounters {
			if _, ok := defs.Enemies[enc.Enemy]; !ok {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"stage %q encounter enemy %q is not defined", name, enc.Enemy))
			}
			if enc.Difficulty < 0 {
				ve.Errors = append(ve.Errors, fmt.Sprintf(
					"stage %q encounter %q difficulty must not be negative", name, enc.Enemy))
			}
		}
	}
}
