package testutils

import (
	"github.com/KirkDiggler/rpg-loadout/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
)

// TestCharacterID is the default character id for test fixtures
const TestCharacterID = "char-1"

// NewTestLayout returns a small layout: two positional armor slots, one
// weapon slot and two utility slots over a two-vital, two-skill vocabulary
func NewTestLayout() entities.Layout {
	utility := []entities.ItemType{entities.ItemTypeThrowable, entities.ItemTypePotion}
	return entities.Layout{
		Slots: []entities.Slot{
			{ID: "head-slot", Accepts: []entities.ItemType{entities.ItemTypeArmor}, Position: "head"},
			{ID: "torso-slot", Accepts: []entities.ItemType{entities.ItemTypeArmor}, Position: "torso"},
			{ID: "primary-weapon-slot", Accepts: []entities.ItemType{entities.ItemTypeWeapon}},
			{ID: "utility-slot-1", Accepts: utility},
			{ID: "utility-slot-2", Accepts: utility},
		},
		Vitals:         []string{"health", "stamina"},
		Skills:         []string{"strength", "agility"},
		StartingPoints: entities.Points{Vital: 12, Skill: 18},
	}
}

// NewTestCatalog returns an in-memory catalog with a handful of items, one
// race (dwarf) and one class (warrior)
func NewTestCatalog() *catalog.Catalog {
	c := catalog.NewEmpty()
	c.PutItem(&entities.Item{
		ID: "iron-helm", Name: "Iron Helm", Type: entities.ItemTypeArmor,
		SkillBonus: map[string]int{"strength": 2},
		Abilities:  []string{"keen-sight"},
		Payload:    entities.ArmorPayload{ArmorType: "head", ArmorValue: 2},
	})
	c.PutItem(&entities.Item{
		ID: "circlet", Name: "Circlet of Night", Type: entities.ItemTypeArmor,
		VitalBonus:    map[string]int{"health": 3},
		Abilities:     []string{"darkvision"},
		SpellsGranted: []string{"light"},
		Payload:       entities.ArmorPayload{ArmorType: "head"},
	})
	c.PutItem(&entities.Item{
		ID: "breastplate", Name: "Breastplate", Type: entities.ItemTypeArmor,
		SkillBonus: map[string]int{"strength": 5},
		Traits:     []string{"heavy"},
		Payload:    entities.ArmorPayload{ArmorType: "torso"},
	})
	c.PutItem(&entities.Item{
		ID: "iron-boots", Name: "Iron Boots", Type: entities.ItemTypeArmor,
		Payload: entities.ArmorPayload{ArmorType: "feet"},
	})
	c.PutItem(&entities.Item{
		ID: "longsword", Name: "Longsword", Type: entities.ItemTypeWeapon,
		SkillBonus: map[string]int{"strength": 1},
		Traits:     []string{"versatile"},
		Payload:    entities.WeaponPayload{DamageAmount: "1d8", DamageType: "slashing"},
	})
	c.PutItem(&entities.Item{
		ID: "smoke-bomb", Name: "Smoke Bomb", Type: entities.ItemTypeThrowable,
		Payload: entities.ThrowablePayload{Radius: "10 ft"},
	})
	c.PutItem(&entities.Item{
		ID: "healing-potion", Name: "Healing Potion", Type: entities.ItemTypePotion,
		VitalBonus: map[string]int{"health": 5},
	})
	c.PutRace(&entities.Archetype{
		ID: "dwarf", Name: "Dwarf",
		VitalBonus: map[string]int{"health": 2},
		SkillBonus: map[string]int{"strength": 1},
		Abilities:  []string{"darkvision"},
		Traits:     []string{"stout"},
	})
	c.PutClass(&entities.Archetype{
		ID: "warrior", Name: "Warrior",
		VitalBonus: map[string]int{"stamina": 3},
		SkillBonus: map[string]int{"strength": 2, "agility": -1},
		Abilities:  []string{"second-wind"},
	})
	return c
}
