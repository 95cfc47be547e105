package entities

// GrantKind is the family of ids a source can grant
type GrantKind string

// Grant kinds
const (
	GrantKindAbility GrantKind = "ability"
	GrantKindTrait   GrantKind = "trait"
	GrantKindSpell   GrantKind = "spell"
	GrantKindAction  GrantKind = "action"
)

// String returns the string representation of the kind
func (k GrantKind) String() string {
	return string(k)
}

// IsValid checks if the kind is one of the known kinds
func (k GrantKind) IsValid() bool {
	switch k {
	case GrantKindAbility, GrantKindTrait, GrantKindSpell, GrantKindAction:
		return true
	default:
		return false
	}
}

// AllGrantKinds returns every kind in display order
func AllGrantKinds() []GrantKind {
	return []GrantKind{
		GrantKindAbility,
		GrantKindTrait,
		GrantKindSpell,
		GrantKindAction,
	}
}

// Grant sources that are not equipment slots
const (
	SourceRace  = "race"
	SourceClass = "class"
)

// SlotSource returns the grant source id for an equipment slot
func SlotSource(slotID string) string {
	return "slot:" + slotID
}
