// Package snapshot provides the interface for character snapshot persistence
package snapshot

//go:generate mockgen -destination=mock/mock_repository.go -package=snapshotmock github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot Repository

import (
	"context"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// Repository defines the interface for snapshot persistence
type Repository interface {
	// Get retrieves the stored snapshot of a character
	// Returns errors.InvalidArgument for empty character IDs
	// Returns errors.NotFound if no snapshot exists
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Save stores a snapshot, replacing any previous one for the character
	// Returns errors.InvalidArgument for a missing snapshot or character ID
	// Returns errors.Internal for storage failures
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Delete removes the stored snapshot of a character
	// Returns errors.InvalidArgument for empty character IDs
	// Returns errors.NotFound if no snapshot exists
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns the ids of every stored character in ascending order
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}

// GetInput defines the input for getting a snapshot
type GetInput struct {
	CharacterID string
}

// GetOutput defines the output for getting a snapshot
type GetOutput struct {
	Snapshot *entities.Snapshot
}

// SaveInput defines the input for saving a snapshot
type SaveInput struct {
	Snapshot *entities.Snapshot
}

// SaveOutput defines the output for saving a snapshot
type SaveOutput struct{}

// DeleteInput defines the input for deleting a snapshot
type DeleteInput struct {
	CharacterID string
}

// DeleteOutput defines the output for deleting a snapshot
type DeleteOutput struct{}

// ListInput defines the input for listing stored characters
type ListInput struct{}

// ListOutput defines the output for listing stored characters
type ListOutput struct {
	CharacterIDs []string
}

const (
	errCharacterIDEmpty = "character ID cannot be empty"
	errSnapshotRequired = "snapshot is required"
)

func validateSave(input SaveInput) error {
	if input.Snapshot == nil {
		return errors.InvalidArgument(errSnapshotRequired)
	}
	if input.Snapshot.CharacterID == "" {
		return errors.InvalidArgument(errCharacterIDEmpty)
	}
	return nil
}
