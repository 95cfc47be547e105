package errors

// Reason narrows a Code to a specific loadout failure
type Reason string

// Loadout failure reasons
const (
	ReasonSlotNotFound   Reason = "SLOT_NOT_FOUND"
	ReasonDuplicateSlot  Reason = "DUPLICATE_SLOT"
	ReasonTypeMismatch   Reason = "TYPE_MISMATCH"
	ReasonDuplicateGrant Reason = "DUPLICATE_GRANT"
	ReasonItemNotFound   Reason = "ITEM_NOT_FOUND"
	ReasonNoFreeSlot     Reason = "NO_FREE_SLOT"
)

// String returns the string representation of the reason
func (r Reason) String() string {
	return string(r)
}

// SlotNotFound reports an operation on an unregistered slot
func SlotNotFound(slotID string) *Error {
	return NotFoundf("slot %s not found", slotID).
		WithReason(ReasonSlotNotFound).
		WithMeta("slot_id", slotID)
}

// DuplicateSlot reports a second registration of the same slot id
func DuplicateSlot(slotID string) *Error {
	return AlreadyExistsf("slot %s already registered", slotID).
		WithReason(ReasonDuplicateSlot).
		WithMeta("slot_id", slotID)
}

// TypeMismatch reports an item whose type the slot does not accept
func TypeMismatch(slotID, itemID, itemType string) *Error {
	return InvalidArgumentf("slot %s does not accept %s item %s", slotID, itemType, itemID).
		WithReason(ReasonTypeMismatch).
		WithMeta("slot_id", slotID).
		WithMeta("item_id", itemID).
		WithMeta("item_type", itemType)
}

// DuplicateGrant reports a source granting a kind it was never revoked from
func DuplicateGrant(sourceID, kind string) *Error {
	return AlreadyExistsf("source %s already holds %s grants", sourceID, kind).
		WithReason(ReasonDuplicateGrant).
		WithMeta("source_id", sourceID).
		WithMeta("kind", kind)
}

// ItemNotFound reports an item id the catalog cannot resolve
func ItemNotFound(itemID string) *Error {
	return NotFoundf("item %s not found", itemID).
		WithReason(ReasonItemNotFound).
		WithMeta("item_id", itemID)
}

// NoFreeSlot reports that every slot accepting the item is occupied
func NoFreeSlot(itemID string) *Error {
	return ResourceExhaustedf("no empty slot accepts item %s", itemID).
		WithReason(ReasonNoFreeSlot).
		WithMeta("item_id", itemID)
}
