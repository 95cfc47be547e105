package snapshot

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Snapshots are kept encoded so callers never share maps with the store.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string][]byte
}

// NewInMemory creates a new in-memory repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string][]byte),
	}
}

// Get implements Repository
func (r *InMemoryRepository) Get(_ context.Context, input GetInput) (*GetOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.RLock()
	data, exists := r.store[input.CharacterID]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.NotFoundf("snapshot for character %s not found", input.CharacterID).
			WithMeta("character_id", input.CharacterID)
	}

	var snap entities.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal snapshot for character %s", input.CharacterID)
	}
	return &GetOutput{Snapshot: &snap}, nil
}

// Save implements Repository
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSave(input); err != nil {
		return nil, err
	}

	data, err := json.Marshal(input.Snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot for character %s", input.Snapshot.CharacterID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.store[input.Snapshot.CharacterID] = data

	return &SaveOutput{}, nil
}

// Delete implements Repository
func (r *InMemoryRepository) Delete(_ context.Context, input DeleteInput) (*DeleteOutput, error) {
	if input.CharacterID == "" {
		return nil, errors.InvalidArgument(errCharacterIDEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.CharacterID]; !exists {
		return nil, errors.NotFoundf("snapshot for character %s not found", input.CharacterID).
			WithMeta("character_id", input.CharacterID)
	}
	delete(r.store, input.CharacterID)

	return &DeleteOutput{}, nil
}

// List implements Repository
func (r *InMemoryRepository) List(_ context.Context, _ ListInput) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return &ListOutput{CharacterIDs: ids}, nil
}
