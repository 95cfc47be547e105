// Package errors provides the structured error type used across rpg-loadout.
//
// Every error carries a Code (how a caller should treat it), a user-facing
// Message, an optional Cause and free-form Meta. Loadout-specific failures
// additionally carry a Reason so callers can tell, for example, a type
// mismatch apart from any other invalid argument.
//
// # Basic Usage
//
//	err := errors.NotFoundf("item %s not found", itemID)
//	err := errors.TypeMismatch("head", "longsword", "Weapon")
//
// Checking:
//
//	if errors.HasReason(err, errors.ReasonTypeMismatch) {
//	    // report to the user, nothing was changed
//	}
//
// Wrapping keeps the code and the reason of the wrapped error:
//
//	if err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save snapshot")
//	}
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("listen_addr", cfg.ListenAddr, vb)
//	errors.ValidateRange("level", level, 1, 100, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// ToGRPCError converts an *Error into a status error with an
// errdetails.ErrorInfo detail holding the reason and metadata;
// FromGRPCError reverses the conversion on the client side.
//
// # Reasons
//
//   - SLOT_NOT_FOUND: occupy or equip on a slot that was never registered
//   - DUPLICATE_SLOT: a slot id registered twice
//   - TYPE_MISMATCH: item type not accepted by the slot
//   - DUPLICATE_GRANT: a source granted a kind it still holds
//   - ITEM_NOT_FOUND: item id missing from the catalog
//   - NO_FREE_SLOT: no empty compatible slot for an item
package errors
