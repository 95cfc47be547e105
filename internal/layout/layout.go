// Package layout provides the slot arrangement and stat vocabulary a sheet is
// created with, either built in or loaded from an HCL file.
package layout

import (
	"fmt"
	"strings"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
)

// Default starting budget at level 1
const (
	DefaultStartingVital = 12
	DefaultStartingSkill = 18
)

// DefaultUtilitySlots is the number of utility slots in the built-in layout
const DefaultUtilitySlots = 10

var armorSlots = []struct {
	label    string
	position string
}{
	{"Head", "head"},
	{"Face", "face"},
	{"Neck", "neck"},
	{"Shoulders", "shoulders"},
	{"Torso", "torso"},
	{"Left Arm", "arm"},
	{"Right Arm", "arm"},
	{"Left Wrist", "wrist"},
	{"Right Wrist", "wrist"},
	{"Left Hand", "hand"},
	{"Right Hand", "hand"},
	{"Finger 1", "finger"},
	{"Finger 2", "finger"},
	{"Finger 3", "finger"},
	{"Finger 4", "finger"},
	{"Waist", "waist"},
	{"Legs", "legs"},
	{"Left Ankle", "ankle"},
	{"Right Ankle", "ankle"},
	{"Left Foot", "feet"},
	{"Right Foot", "feet"},
	{"Toe 1", "toe"},
	{"Toe 2", "toe"},
	{"Toe 3", "toe"},
	{"Toe 4", "toe"},
}

// UtilityTypes are the item types a utility slot accepts
var UtilityTypes = []entities.ItemType{
	entities.ItemTypeUtility,
	entities.ItemTypeThrowable,
	entities.ItemTypeExplosive,
	entities.ItemTypePotion,
	entities.ItemTypeScroll,
	entities.ItemTypeAmmunition,
	entities.ItemTypeCraftingComponent,
	entities.ItemTypeTrap,
}

// DefaultVitals is the built-in vital vocabulary
var DefaultVitals = []string{"health", "stamina", "mana", "endurance"}

// DefaultSkills is the built-in skill vocabulary
var DefaultSkills = []string{
	"strength", "agility", "intelligence", "perception",
	"stealth", "lock-picking", "survival", "persuasion",
}

// SlotID turns a slot label into its id, "Left Arm" -> "left-arm-slot"
func SlotID(label string) string {
	return entities.NormalizeStat(label) + "-slot"
}

// Default returns the built-in layout: two weapon slots, one armor slot per
// body position and DefaultUtilitySlots utility slots.
func Default() entities.Layout {
	layout := entities.Layout{
		Vitals:         append([]string(nil), DefaultVitals...),
		Skills:         append([]string(nil), DefaultSkills...),
		StartingPoints: entities.Points{Vital: DefaultStartingVital, Skill: DefaultStartingSkill},
	}

	for _, label := range []string{"Primary Weapon", "Secondary Weapon"} {
		layout.Slots = append(layout.Slots, entities.Slot{
			ID:      SlotID(label),
			Label:   label,
			Accepts: []entities.ItemType{entities.ItemTypeWeapon},
		})
	}

	for _, a := range armorSlots {
		layout.Slots = append(layout.Slots, entities.Slot{
			ID:       SlotID(a.label),
			Label:    a.label,
			Accepts:  []entities.ItemType{entities.ItemTypeArmor},
			Position: a.position,
		})
	}

	for i := 1; i <= DefaultUtilitySlots; i++ {
		layout.Slots = append(layout.Slots, entities.Slot{
			ID:      fmt.Sprintf("utility-slot-%d", i),
			Label:   fmt.Sprintf("Utility %d", i),
			Accepts: append([]entities.ItemType(nil), UtilityTypes...),
		})
	}

	return layout
}

// IsUtilitySlot reports whether the slot id follows the utility naming
func IsUtilitySlot(slotID string) bool {
	return strings.HasPrefix(slotID, "utility-slot-")
}
