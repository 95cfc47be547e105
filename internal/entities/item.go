// Package entities provides the core data structures for rpg-loadout.
package entities

import "strings"

// ItemType is the tag an item carries in the catalog
type ItemType string

// Known item types
const (
	ItemTypeWeapon            ItemType = "Weapon"
	ItemTypeArmor             ItemType = "Armor"
	ItemTypeScroll            ItemType = "Scroll"
	ItemTypeExplosive         ItemType = "Explosive"
	ItemTypeThrowable         ItemType = "Throwable"
	ItemTypeUtility           ItemType = "Utility"
	ItemTypePotion            ItemType = "Potion"
	ItemTypeAmmunition        ItemType = "Ammunition"
	ItemTypeCraftingComponent ItemType = "CraftingComponent"
	ItemTypeTrap              ItemType = "Trap"
)

// Category is the equipment bonus bucket an item contributes to
type Category string

// String returns the string representation of the item type
func (t ItemType) String() string {
	return string(t)
}

// Category returns the bonus bucket key for the item type
func (t ItemType) Category() Category {
	return Category(strings.ToLower(string(t)))
}

// IsActionBearing reports whether equipping the type registers a combat action
func (t ItemType) IsActionBearing() bool {
	switch t {
	case ItemTypeWeapon, ItemTypeScroll, ItemTypeExplosive, ItemTypeThrowable:
		return true
	default:
		return false
	}
}

// ParseItemType matches a catalog tag case-insensitively against the known
// types. Unknown tags are kept verbatim so they can still be slotted.
func ParseItemType(tag string) ItemType {
	trimmed := strings.TrimSpace(tag)
	for _, known := range []ItemType{
		ItemTypeWeapon, ItemTypeArmor, ItemTypeScroll, ItemTypeExplosive,
		ItemTypeThrowable, ItemTypeUtility, ItemTypePotion, ItemTypeAmmunition,
		ItemTypeCraftingComponent, ItemTypeTrap,
	} {
		if strings.EqualFold(trimmed, string(known)) {
			return known
		}
	}
	return ItemType(trimmed)
}

// Item is an immutable catalog record
type Item struct {
	ID            string
	Name          string
	Type          ItemType
	VitalBonus    map[string]int
	SkillBonus    map[string]int
	Abilities     []string
	Traits        []string
	SpellsGranted []string
	Payload       Payload
}

// Category returns the bonus bucket the item contributes to
func (i *Item) Category() Category {
	return i.Type.Category()
}

// MergedBonus combines vital and skill bonuses into one stat mapping.
// A stat named in both adds up.
func (i *Item) MergedBonus() map[string]int {
	merged := make(map[string]int, len(i.VitalBonus)+len(i.SkillBonus))
	for stat, v := range i.VitalBonus {
		merged[NormalizeStat(stat)] += v
	}
	for stat, v := range i.SkillBonus {
		merged[NormalizeStat(stat)] += v
	}
	return merged
}

// Grants returns the non-empty grant sets the item carries, keyed by kind.
// The action kind is not included; see ActionFor.
func (i *Item) Grants() map[GrantKind][]string {
	grants := make(map[GrantKind][]string)
	if len(i.Abilities) > 0 {
		grants[GrantKindAbility] = i.Abilities
	}
	if len(i.Traits) > 0 {
		grants[GrantKindTrait] = i.Traits
	}
	if len(i.SpellsGranted) > 0 {
		grants[GrantKindSpell] = i.SpellsGranted
	}
	return grants
}

// Payload is the type-specific part of an item
type Payload interface {
	// ItemType returns the tag this payload belongs to
	ItemType() ItemType
}

// WeaponPayload carries weapon fields
type WeaponPayload struct {
	DamageAmount string
	DamageType   string
	Range        string
}

// ItemType implements Payload
func (WeaponPayload) ItemType() ItemType { return ItemTypeWeapon }

// ArmorPayload carries armor fields
type ArmorPayload struct {
	ArmorType  string // body position, e.g. "head"
	ArmorValue int
}

// ItemType implements Payload
func (ArmorPayload) ItemType() ItemType { return ItemTypeArmor }

// ScrollPayload carries scroll fields
type ScrollPayload struct {
	Damage               string
	DamageType           string
	CastingTime          string
	AbilityPointCost     int
	Cooldown             string
	Scaling              string
	SpellCastingModifier string
}

// ItemType implements Payload
func (ScrollPayload) ItemType() ItemType { return ItemTypeScroll }

// ExplosivePayload carries explosive fields
type ExplosivePayload struct {
	Damage           string
	DamageType       string
	Duration         string
	Range            string
	BlastRadius      string
	TriggerMechanism string
}

// ItemType implements Payload
func (ExplosivePayload) ItemType() ItemType { return ItemTypeExplosive }

// ThrowablePayload carries throwable fields
type ThrowablePayload struct {
	Damage           string
	DamageType       string
	Duration         string
	Range            string
	Radius           string
	TriggerMechanism string
}

// ItemType implements Payload
func (ThrowablePayload) ItemType() ItemType { return ItemTypeThrowable }

// GenericPayload keeps the scalar fields of types without a dedicated payload
type GenericPayload struct {
	Type   ItemType
	Fields map[string]string
}

// ItemType implements Payload
func (p GenericPayload) ItemType() ItemType { return p.Type }
