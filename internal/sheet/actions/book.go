// Package actions keeps the combat action cards registered by equipped items
package actions

import (
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// Book holds at most one action per source, in registration order
type Book struct {
	order    []string
	bySource map[string]entities.Action
}

// New creates an empty book
func New() *Book {
	return &Book{
		bySource: make(map[string]entities.Action),
	}
}

// Register adds the action under its source id
func (b *Book) Register(action entities.Action) error {
	if action.SourceID == "" {
		return errors.InvalidArgument("action source id is required")
	}
	if _, exists := b.bySource[action.SourceID]; exists {
		return errors.AlreadyExistsf("source %s already has an action", action.SourceID).
			WithMeta("source_id", action.SourceID)
	}

	b.bySource[action.SourceID] = action
	b.order = append(b.order, action.SourceID)
	return nil
}

// Deregister removes the source's action, if any
func (b *Book) Deregister(sourceID string) {
	if _, exists := b.bySource[sourceID]; !exists {
		return
	}
	delete(b.bySource, sourceID)
	for i, id := range b.order {
		if id == sourceID {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Get returns the source's action
func (b *Book) Get(sourceID string) (entities.Action, bool) {
	action, ok := b.bySource[sourceID]
	return action, ok
}

// List returns the registered actions in registration order
func (b *Book) List() []entities.Action {
	out := make([]entities.Action, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.bySource[id])
	}
	return out
}

// Reset drops every action
func (b *Book) Reset() {
	b.order = nil
	b.bySource = make(map[string]entities.Action)
}
