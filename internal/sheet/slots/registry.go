// Package slots owns the equipment slot layout of a sheet and its occupancy
package slots

import (
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

type entry struct {
	slot     entities.Slot
	occupant *entities.Item
}

// Registry holds the registered slots in registration order.
// Occupancy is the only state that changes after registration.
type Registry struct {
	order []string
	byID  map[string]*entry
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		byID: make(map[string]*entry),
	}
}

// Register adds a slot. Slot ids are unique.
func (r *Registry) Register(slot entities.Slot) error {
	if slot.ID == "" {
		return errors.InvalidArgument("slot id is required")
	}
	if _, exists := r.byID[slot.ID]; exists {
		return errors.DuplicateSlot(slot.ID)
	}

	slot.Accepts = append([]entities.ItemType(nil), slot.Accepts...)
	r.byID[slot.ID] = &entry{slot: slot}
	r.order = append(r.order, slot.ID)
	return nil
}

// Slot returns the registered slot definition
func (r *Registry) Slot(slotID string) (entities.Slot, bool) {
	e, ok := r.byID[slotID]
	if !ok {
		return entities.Slot{}, false
	}
	return e.slot, true
}

// Slots returns the slot definitions in registration order
func (r *Registry) Slots() []entities.Slot {
	out := make([]entities.Slot, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].slot)
	}
	return out
}

// CanOccupy runs the Occupy checks without mutating anything
func (r *Registry) CanOccupy(slotID string, item *entities.Item) error {
	e, ok := r.byID[slotID]
	if !ok {
		return errors.SlotNotFound(slotID)
	}
	if item == nil {
		return errors.InvalidArgument("item is required")
	}
	if !e.slot.AcceptsItem(item) {
		return errors.TypeMismatch(slotID, item.ID, string(item.Type))
	}
	return nil
}

// Occupy places the item in the slot, replacing any occupant.
// Nothing changes when the slot is unknown or rejects the item type.
func (r *Registry) Occupy(slotID string, item *entities.Item) error {
	if err := r.CanOccupy(slotID, item); err != nil {
		return err
	}
	r.byID[slotID].occupant = item
	return nil
}

// Vacate empties the slot. Empty or unknown slots are left as they are.
func (r *Registry) Vacate(slotID string) {
	if e, ok := r.byID[slotID]; ok {
		e.occupant = nil
	}
}

// OccupantOf returns the item id in the slot, if any
func (r *Registry) OccupantOf(slotID string) (string, bool) {
	item, ok := r.ItemIn(slotID)
	if !ok {
		return "", false
	}
	return item.ID, true
}

// ItemIn returns the item record occupying the slot, if any
func (r *Registry) ItemIn(slotID string) (*entities.Item, bool) {
	e, ok := r.byID[slotID]
	if !ok || e.occupant == nil {
		return nil, false
	}
	return e.occupant, true
}

// FindSlotOf returns the first slot, in registration order, holding the item
func (r *Registry) FindSlotOf(itemID string) (string, bool) {
	for _, id := range r.order {
		if occupant := r.byID[id].occupant; occupant != nil && occupant.ID == itemID {
			return id, true
		}
	}
	return "", false
}

// FirstFree returns the first empty slot that accepts the item
func (r *Registry) FirstFree(item *entities.Item) (string, bool) {
	for _, id := range r.order {
		e := r.byID[id]
		if e.occupant == nil && e.slot.AcceptsItem(item) {
			return id, true
		}
	}
	return "", false
}

// Occupancy returns a copy of slot id to item id for occupied slots
func (r *Registry) Occupancy() map[string]string {
	out := make(map[string]string)
	for id, e := range r.byID {
		if e.occupant != nil {
			out[id] = e.occupant.ID
		}
	}
	return out
}

// Reset empties every slot and keeps the layout
func (r *Registry) Reset() {
	for _, e := range r.byID {
		e.occupant = nil
	}
}
