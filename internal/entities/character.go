package entities

import "time"

// Archetype is a race or class record. Selecting one replaces the matching
// bonus bucket and grant source wholesale.
type Archetype struct {
	ID            string
	Name          string
	VitalBonus    map[string]int
	SkillBonus    map[string]int
	Abilities     []string
	Traits        []string
	SpellsGranted []string
}

// MergedBonus combines vital and skill bonuses into one stat mapping
func (a *Archetype) MergedBonus() map[string]int {
	merged := make(map[string]int, len(a.VitalBonus)+len(a.SkillBonus))
	for stat, v := range a.VitalBonus {
		merged[NormalizeStat(stat)] += v
	}
	for stat, v := range a.SkillBonus {
		merged[NormalizeStat(stat)] += v
	}
	return merged
}

// Grants returns the non-empty grant sets the record carries
func (a *Archetype) Grants() map[GrantKind][]string {
	grants := make(map[GrantKind][]string)
	if len(a.Abilities) > 0 {
		grants[GrantKindAbility] = a.Abilities
	}
	if len(a.Traits) > 0 {
		grants[GrantKindTrait] = a.Traits
	}
	if len(a.SpellsGranted) > 0 {
		grants[GrantKindSpell] = a.SpellsGranted
	}
	return grants
}

// Snapshot is the persisted state of one character sheet. Grants and
// actions are never stored; they are re-derived from occupancy and the
// selected race and class on import.
type Snapshot struct {
	CharacterID     string                      `json:"characterId"`
	Level           int                         `json:"level"`
	BaseScores      map[string]int              `json:"baseScores"`
	AvailablePoints Points                      `json:"availablePoints"`
	RaceID          string                      `json:"raceId,omitempty"`
	ClassID         string                      `json:"classId,omitempty"`
	RaceBonuses     map[string]int              `json:"raceBonuses"`
	ClassBonuses    map[string]int              `json:"classBonuses"`
	EquippedScores  map[Category]map[string]int `json:"equippedScores"`
	SlotOccupancy   map[string]string           `json:"slotOccupancy"`
	SavedAt         time.Time                   `json:"savedAt"`
}

// View is the read-only display state of a sheet after a recompute.
// Actions follow the layout's slot order.
type View struct {
	CharacterID     string
	Level           int
	AvailablePoints Points
	RaceID          string
	ClassID         string
	Vitals          map[string]int
	Skills          map[string]int
	Totals          map[string]int
	Active          map[GrantKind][]string
	Actions         []Action
	Occupancy       map[string]string
}
