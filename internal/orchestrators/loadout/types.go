package loadout

import "github.com/KirkDiggler/rpg-loadout/internal/entities"

// EquipInput defines the request for equipping an item into a slot
type EquipInput struct {
	SlotID string
	ItemID string
}

// EquipOutput defines the response for equipping an item
type EquipOutput struct {
	SlotID string
	// Displaced is the item that was auto-unequipped, empty when the slot was free
	Displaced string
}

// UnequipInput defines the request for emptying a slot
type UnequipInput struct {
	SlotID string
}

// UnequipOutput defines the response for emptying a slot
type UnequipOutput struct {
	// ItemID is the removed item, empty when the slot was already empty
	ItemID string
	// Revoked lists the ids the item had granted, by kind
	Revoked map[entities.GrantKind][]string
}

// EquipFirstFreeInput defines the request for equipping into the first
// empty compatible slot
type EquipFirstFreeInput struct {
	ItemID string
}

// EquipFirstFreeOutput defines the response for EquipFirstFree
type EquipFirstFreeOutput struct {
	SlotID string
}

// SetLevelInput defines the request for changing level
type SetLevelInput struct {
	Level int
}

// SetLevelOutput defines the response for changing level
type SetLevelOutput struct {
	Delta     entities.Points
	Available entities.Points
}

// SelectRaceInput defines the request for selecting a race. An empty
// RaceID clears the selection.
type SelectRaceInput struct {
	RaceID string
}

// SelectClassInput defines the request for selecting a class. An empty
// ClassID clears the selection.
type SelectClassInput struct {
	ClassID string
}

// SetBaseInput defines the request for editing a base score directly
type SetBaseInput struct {
	Stat  string
	Value int
}

// PointInput defines the request for allocating or refunding one point
type PointInput struct {
	Stat string
}

// PointOutput defines the response for point allocation
type PointOutput struct {
	Stat      string
	Base      int
	Available entities.Points
}

// ExportOutput defines the response for exporting a sheet
type ExportOutput struct {
	Snapshot *entities.Snapshot
}

// ImportInput defines the request for restoring a sheet
type ImportInput struct {
	Snapshot *entities.Snapshot
}

// ImportOutput defines the response for restoring a sheet
type ImportOutput struct {
	// Skipped lists slot ids whose stored item could not be re-equipped
	Skipped []string
}
