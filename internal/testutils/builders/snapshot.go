// Package builders provides test data builders for creating test fixtures
package builders

import (
	"time"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
)

// SnapshotBuilder provides a fluent interface for building test Snapshot instances
type SnapshotBuilder struct {
	snap *entities.Snapshot
}

// NewSnapshotBuilder creates a new builder for a level 1 character with the
// default starting budget
func NewSnapshotBuilder() *SnapshotBuilder {
	return &SnapshotBuilder{
		snap: &entities.Snapshot{
			CharacterID:     "char-test-123",
			Level:           1,
			BaseScores:      map[string]int{},
			AvailablePoints: entities.Points{Vital: 12, Skill: 18},
			RaceBonuses:     map[string]int{},
			ClassBonuses:    map[string]int{},
			EquippedScores:  map[entities.Category]map[string]int{},
			SlotOccupancy:   map[string]string{},
			SavedAt:         time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

// WithCharacterID sets the character id
func (b *SnapshotBuilder) WithCharacterID(id string) *SnapshotBuilder {
	b.snap.CharacterID = id
	return b
}

// WithLevel sets the level
func (b *SnapshotBuilder) WithLevel(level int) *SnapshotBuilder {
	b.snap.Level = level
	return b
}

// WithBase sets one base score
func (b *SnapshotBuilder) WithBase(stat string, value int) *SnapshotBuilder {
	b.snap.BaseScores[stat] = value
	return b
}

// WithAvailable sets the available points
func (b *SnapshotBuilder) WithAvailable(vital, skill int) *SnapshotBuilder {
	b.snap.AvailablePoints = entities.Points{Vital: vital, Skill: skill}
	return b
}

// WithRace sets the race id and its bonus bucket
func (b *SnapshotBuilder) WithRace(id string, bonuses map[string]int) *SnapshotBuilder {
	b.snap.RaceID = id
	b.snap.RaceBonuses = bonuses
	return b
}

// WithClass sets the class id and its bonus bucket
func (b *SnapshotBuilder) WithClass(id string, bonuses map[string]int) *SnapshotBuilder {
	b.snap.ClassID = id
	b.snap.ClassBonuses = bonuses
	return b
}

// WithEquipped records an occupied slot and the bucket of its category
func (b *SnapshotBuilder) WithEquipped(slotID, itemID string, category entities.Category, bonuses map[string]int) *SnapshotBuilder {
	b.snap.SlotOccupancy[slotID] = itemID
	b.snap.EquippedScores[category] = bonuses
	return b
}

// WithSavedAt sets the save timestamp
func (b *SnapshotBuilder) WithSavedAt(at time.Time) *SnapshotBuilder {
	b.snap.SavedAt = at
	return b
}

// Build returns the built snapshot
func (b *SnapshotBuilder) Build() *entities.Snapshot {
	return b.snap
}
