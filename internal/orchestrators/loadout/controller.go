// Package loadout runs the commands that mutate a character sheet.
//
// Every command takes the sheet it operates on, runs to completion and then
// emits exactly one state-changed notification when something changed.
// Equip validates before it mutates: a rejected item leaves the sheet exactly
// as it was, including the occupant of the target slot.
package loadout

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-loadout/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/notify"
	"github.com/KirkDiggler/rpg-loadout/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet"
)

// Command names reported to the notifier
const (
	CommandEquip       = "equip"
	CommandUnequip     = "unequip"
	CommandSetLevel    = "set_level"
	CommandSelectRace  = "select_race"
	CommandSelectClass = "select_class"
	CommandSetBase     = "set_base"
	CommandAllocate    = "allocate_point"
	CommandRefund      = "refund_point"
	CommandImport      = "import"
)

// Config holds the dependencies for the controller
type Config struct {
	Catalog  catalog.Client
	Notifier notify.Notifier
	// Clock stamps exported snapshots, defaults to the real clock
	Clock clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Notifier == nil {
		vb.RequiredField("Notifier")
	}

	return vb.Build()
}

// Controller applies commands to sheets. It holds no per-character state.
type Controller struct {
	catalog  catalog.Client
	notifier notify.Notifier
	clock    clock.Clock
}

// New creates a controller with the provided dependencies
func New(cfg *Config) (*Controller, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	clk := cfg.Clock
	if clk == nil {
		clk = clock.New()
	}

	return &Controller{
		catalog:  cfg.Catalog,
		notifier: cfg.Notifier,
		clock:    clk,
	}, nil
}

// Equip places an item into a slot. An occupied slot is fully unequipped
// first; its effects are gone before the new item's effects apply.
func (c *Controller) Equip(ctx context.Context, s *sheet.Sheet, input *EquipInput) (*EquipOutput, error) {
	if s == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("slot_id", input.SlotID, vb)
	errors.ValidateRequired("item_id", input.ItemID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	item, err := c.catalog.GetItem(ctx, input.ItemID)
	if err != nil {
		slog.DebugContext(ctx, "Equip item lookup failed",
			"character_id", s.ID,
			"item_id", input.ItemID,
			"error", err)
		return nil, errors.Wrapf(err, "failed to resolve item %s", input.ItemID)
	}

	displaced, err := c.equip(ctx, s, input.SlotID, item)
	if err != nil {
		return nil, err
	}
	return &EquipOutput{SlotID: input.SlotID, Displaced: displaced}, nil
}

func (c *Controller) equip(ctx context.Context, s *sheet.Sheet, slotID string, item *entities.Item) (string, error) {
	if err := s.Slots.CanOccupy(slotID, item); err != nil {
		return "", err
	}

	displaced := c.retract(s, slotID)

	if err := c.apply(s, slotID, item, true); err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "Item equipped",
		"character_id", s.ID,
		"slot_id", slotID,
		"item_id", item.ID,
		"displaced", displaced)

	c.stateChanged(ctx, s, CommandEquip, slotID)
	return displaced, nil
}

// EquipFirstFree equips an item into the first empty slot that accepts it
func (c *Controller) EquipFirstFree(ctx context.Context, s *sheet.Sheet, input *EquipFirstFreeInput) (*EquipFirstFreeOutput, error) {
	if s == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input == nil || input.ItemID == "" {
		return nil, errors.InvalidArgument("item id is required")
	}

	item, err := c.catalog.GetItem(ctx, input.ItemID)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve item %s", input.ItemID)
	}

	slotID, ok := s.Slots.FirstFree(item)
	if !ok {
		return nil, errors.NoFreeSlot(item.ID)
	}

	if _, err := c.equip(ctx, s, slotID, item); err != nil {
		return nil, err
	}
	return &EquipFirstFreeOutput{SlotID: slotID}, nil
}

// Unequip empties a slot and retracts everything its item contributed.
// Unequipping an empty slot changes nothing and emits no notification.
func (c *Controller) Unequip(ctx context.Context, s *sheet.Sheet, input *UnequipInput) (*UnequipOutput, error) {
	if s == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input == nil || input.SlotID == "" {
		return nil, errors.InvalidArgument("slot id is required")
	}
	if _, ok := s.Slots.Slot(input.SlotID); !ok {
		return nil, errors.SlotNotFound(input.SlotID)
	}

	revoked := grantedBy(s, entities.SlotSource(input.SlotID))
	itemID := c.retract(s, input.SlotID)
	if itemID == "" {
		return &UnequipOutput{}, nil
	}

	slog.DebugContext(ctx, "Item unequipped",
		"character_id", s.ID,
		"slot_id", input.SlotID,
		"item_id", itemID)

	c.stateChanged(ctx, s, CommandUnequip, input.SlotID)
	return &UnequipOutput{ItemID: itemID, Revoked: revoked}, nil
}

// grantedBy collects what one source currently grants, skipping empty kinds
func grantedBy(s *sheet.Sheet, source string) map[entities.GrantKind][]string {
	out := make(map[entities.GrantKind][]string)
	for _, kind := range entities.AllGrantKinds() {
		if ids := s.Grants.SourceIDs(source, kind); len(ids) > 0 {
			out[kind] = ids
		}
	}
	return out
}

// apply occupies the slot and registers the item's grants and action.
// withBonus is false on import, where category buckets are restored verbatim.
// A grant failure rolls the slot back.
func (c *Controller) apply(s *sheet.Sheet, slotID string, item *entities.Item, withBonus bool) error {
	if err := s.Slots.Occupy(slotID, item); err != nil {
		return err
	}
	if withBonus {
		s.Ledger.ApplyEquipmentBonus(item.Category(), item.MergedBonus())
	}

	source := entities.SlotSource(slotID)
	grants := item.Grants()
	for _, kind := range entities.AllGrantKinds() {
		ids := grants[kind]
		if len(ids) == 0 {
			continue
		}
		if err := s.Grants.Grant(source, kind, ids); err != nil {
			slog.Error("Grant rejected while equipping",
				"character_id", s.ID,
				"slot_id", slotID,
				"item_id", item.ID,
				"kind", kind,
				"error", err)
			c.retract(s, slotID)
			return err
		}
	}

	if action, ok := entities.ActionFor(source, item); ok {
		if err := s.Grants.Grant(source, entities.GrantKindAction, []string{item.ID}); err != nil {
			slog.Error("Action grant rejected while equipping",
				"character_id", s.ID,
				"slot_id", slotID,
				"item_id", item.ID,
				"error", err)
			c.retract(s, slotID)
			return err
		}
		if err := s.Actions.Register(action); err != nil {
			c.retract(s, slotID)
			return err
		}
	}
	return nil
}

// retract removes the slot's occupant and all of its effects, returning the
// removed item id or "" when the slot was empty
func (c *Controller) retract(s *sheet.Sheet, slotID string) string {
	item, ok := s.Slots.ItemIn(slotID)
	if !ok {
		return ""
	}

	source := entities.SlotSource(slotID)
	s.Ledger.ClearEquipmentBonus(item.Category())
	s.Grants.RevokeAll(source)
	s.Actions.Deregister(source)
	s.Slots.Vacate(slotID)
	return item.ID
}

func (c *Controller) stateChanged(ctx context.Context, s *sheet.Sheet, command, slotID string) {
	err := c.notifier.StateChanged(ctx, &notify.Change{
		CharacterID: s.ID,
		Command:     command,
		SlotID:      slotID,
	})
	if err != nil {
		slog.WarnContext(ctx, "State change notification failed",
			"character_id", s.ID,
			"command", command,
			"error", err)
	}
}
