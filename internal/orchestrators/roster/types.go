package roster

import (
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/ledger"
)

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	// CharacterID is generated when empty
	CharacterID string
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	View *entities.View
}

// GetCharacterInput defines the request for reading a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for reading a character
type GetCharacterOutput struct {
	View     *entities.View
	Revision int64
}

// ListCharactersInput defines the request for listing characters
type ListCharactersInput struct{}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	CharacterIDs []string
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct{}

// EquipInput defines the request for equipping an item
type EquipInput struct {
	CharacterID string
	SlotID      string
	ItemID      string
}

// EquipOutput defines the response for equipping an item
type EquipOutput struct {
	Displaced string
	View      *entities.View
}

// EquipFirstFreeInput defines the request for equipping into the first
// compatible empty slot
type EquipFirstFreeInput struct {
	CharacterID string
	ItemID      string
}

// EquipFirstFreeOutput defines the response for EquipFirstFree
type EquipFirstFreeOutput struct {
	SlotID string
	View   *entities.View
}

// UnequipInput defines the request for emptying a slot
type UnequipInput struct {
	CharacterID string
	SlotID      string
}

// UnequipOutput defines the response for emptying a slot
type UnequipOutput struct {
	ItemID string
	View   *entities.View
}

// SetLevelInput defines the request for changing level
type SetLevelInput struct {
	CharacterID string
	Level       int
}

// SelectRaceInput defines the request for selecting a race
type SelectRaceInput struct {
	CharacterID string
	RaceID      string
}

// SelectClassInput defines the request for selecting a class
type SelectClassInput struct {
	CharacterID string
	ClassID     string
}

// SetBaseInput defines the request for editing a base score
type SetBaseInput struct {
	CharacterID string
	Stat        string
	Value       int
}

// PointInput defines the request for allocating or refunding one point
type PointInput struct {
	CharacterID string
	Stat        string
}

// CommandOutput is the response of commands that only report the new state
type CommandOutput struct {
	View *entities.View
}

// ExportCharacterInput defines the request for exporting a character
type ExportCharacterInput struct {
	CharacterID string
}

// ExportCharacterOutput defines the response for exporting a character
type ExportCharacterOutput struct {
	Snapshot *entities.Snapshot
}

// ImportCharacterInput defines the request for restoring a character. The
// snapshot's character id names the target, which is created when missing.
type ImportCharacterInput struct {
	Snapshot *entities.Snapshot
}

// ImportCharacterOutput defines the response for restoring a character
type ImportCharacterOutput struct {
	Skipped []string
	View    *entities.View
}

// GetBreakdownInput defines the request for a per-source stat breakdown
type GetBreakdownInput struct {
	CharacterID string
	Stat        string
}

// GetBreakdownOutput defines the response for a stat breakdown
type GetBreakdownOutput struct {
	Stat          string
	Total         int
	Contributions []ledger.Contribution
}
