// Package mocks provides mock expectation helpers for common testing patterns
package mocks

import (
	"context"

	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot"
	snapshotmock "github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot/mock"
)

// ExpectSnapshotGet sets up a mock expectation for loading a stored snapshot
func ExpectSnapshotGet(
	ctx context.Context, mockRepo *snapshotmock.MockRepository,
	characterID string, snap *entities.Snapshot,
) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, snapshot.GetInput{CharacterID: characterID}).
		Return(&snapshot.GetOutput{Snapshot: snap}, nil)
}

// ExpectSnapshotMissing sets up a mock expectation for a character with no
// stored snapshot
func ExpectSnapshotMissing(ctx context.Context, mockRepo *snapshotmock.MockRepository, characterID string) *gomock.Call {
	return mockRepo.EXPECT().
		Get(ctx, snapshot.GetInput{CharacterID: characterID}).
		Return(nil, errors.NotFoundf("snapshot for character %s not found", characterID))
}

// ExpectSnapshotSave sets up a mock expectation for saving a snapshot. Each
// saved snapshot is appended to saved when it is non-nil.
func ExpectSnapshotSave(ctx context.Context, mockRepo *snapshotmock.MockRepository, saved *[]*entities.Snapshot) *gomock.Call {
	return mockRepo.EXPECT().
		Save(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input snapshot.SaveInput) (*snapshot.SaveOutput, error) {
			if saved != nil {
				*saved = append(*saved, input.Snapshot)
			}
			return &snapshot.SaveOutput{}, nil
		})
}

// ExpectSnapshotDelete sets up a mock expectation for deleting a snapshot
func ExpectSnapshotDelete(ctx context.Context, mockRepo *snapshotmock.MockRepository, characterID string, err error) *gomock.Call {
	return mockRepo.EXPECT().
		Delete(ctx, snapshot.DeleteInput{CharacterID: characterID}).
		Return(&snapshot.DeleteOutput{}, err)
}
