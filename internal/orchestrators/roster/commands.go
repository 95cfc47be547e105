package roster

import (
	"context"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/loadout"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet"
)

// Equip places an item into a slot of the character
func (o *Orchestrator) Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var displaced string
	view, err := o.mutate(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		out, err := o.controller.Equip(ctx, s, &loadout.EquipInput{SlotID: input.SlotID, ItemID: input.ItemID})
		if err != nil {
			return err
		}
		displaced = out.Displaced
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &EquipOutput{Displaced: displaced, View: view}, nil
}

// EquipFirstFree equips an item into the first empty slot accepting it
func (o *Orchestrator) EquipFirstFree(ctx context.Context, input *EquipFirstFreeInput) (*EquipFirstFreeOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var slotID string
	view, err := o.mutate(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		out, err := o.controller.EquipFirstFree(ctx, s, &loadout.EquipFirstFreeInput{ItemID: input.ItemID})
		if err != nil {
			return err
		}
		slotID = out.SlotID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &EquipFirstFreeOutput{SlotID: slotID, View: view}, nil
}

// Unequip empties a slot of the character
func (o *Orchestrator) Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	var itemID string
	view, err := o.mutate(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		out, err := o.controller.Unequip(ctx, s, &loadout.UnequipInput{SlotID: input.SlotID})
		if err != nil {
			return err
		}
		itemID = out.ItemID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &UnequipOutput{ItemID: itemID, View: view}, nil
}

// SetLevel changes the character level
func (o *Orchestrator) SetLevel(ctx context.Context, input *SetLevelInput) (*CommandOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.command(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		_, err := o.controller.SetLevel(ctx, s, &loadout.SetLevelInput{Level: input.Level})
		return err
	})
}

// SelectRace replaces the character's race
func (o *Orchestrator) SelectRace(ctx context.Context, input *SelectRaceInput) (*CommandOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.command(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		return o.controller.SelectRace(ctx, s, &loadout.SelectRaceInput{RaceID: input.RaceID})
	})
}

// SelectClass replaces the character's class
func (o *Orchestrator) SelectClass(ctx context.Context, input *SelectClassInput) (*CommandOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.command(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		return o.controller.SelectClass(ctx, s, &loadout.SelectClassInput{ClassID: input.ClassID})
	})
}

// SetBase overwrites one base score
func (o *Orchestrator) SetBase(ctx context.Context, input *SetBaseInput) (*CommandOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.command(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		_, err := o.controller.SetBase(ctx, s, &loadout.SetBaseInput{Stat: input.Stat, Value: input.Value})
		return err
	})
}

// AllocatePoint spends one available point on a stat
func (o *Orchestrator) AllocatePoint(ctx context.Context, input *PointInput) (*CommandOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.command(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		_, err := o.controller.AllocatePoint(ctx, s, &loadout.PointInput{Stat: input.Stat})
		return err
	})
}

// RefundPoint returns one point from a stat
func (o *Orchestrator) RefundPoint(ctx context.Context, input *PointInput) (*CommandOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	return o.command(ctx, input.CharacterID, func(s *sheet.Sheet) error {
		_, err := o.controller.RefundPoint(ctx, s, &loadout.PointInput{Stat: input.Stat})
		return err
	})
}

func (o *Orchestrator) command(ctx context.Context, characterID string, fn func(s *sheet.Sheet) error) (*CommandOutput, error) {
	view, err := o.mutate(ctx, characterID, fn)
	if err != nil {
		return nil, err
	}
	return &CommandOutput{View: view}, nil
}

// ExportCharacter returns the persisted form of a character
func (o *Orchestrator) ExportCharacter(ctx context.Context, input *ExportCharacterInput) (*ExportCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	out, err := o.controller.Export(ctx, s)
	if err != nil {
		return nil, err
	}
	return &ExportCharacterOutput{Snapshot: out.Snapshot}, nil
}

// ImportCharacter replaces a character with a snapshot, creating it when
// it does not exist yet
func (o *Orchestrator) ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error) {
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}
	id := input.Snapshot.CharacterID
	if id == "" {
		return nil, errors.InvalidArgument("snapshot character ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, ok := o.sheets[id]
	if !ok {
		var err error
		if s, err = sheet.New(id, o.layout); err != nil {
			return nil, err
		}
	}

	out, err := o.controller.Import(ctx, s, &loadout.ImportInput{Snapshot: input.Snapshot})
	if err != nil {
		return nil, err
	}
	if err := o.persist(ctx, s); err != nil {
		delete(o.sheets, id)
		return nil, err
	}
	o.sheets[id] = s

	view, err := o.controller.View(ctx, s)
	if err != nil {
		return nil, err
	}
	return &ImportCharacterOutput{Skipped: out.Skipped, View: view}, nil
}

// GetBreakdown lists where a stat total comes from
func (o *Orchestrator) GetBreakdown(ctx context.Context, input *GetBreakdownInput) (*GetBreakdownOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}
	if input.Stat == "" {
		return nil, errors.InvalidArgument("stat is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	stat := entities.NormalizeStat(input.Stat)
	return &GetBreakdownOutput{
		Stat:          stat,
		Total:         s.Ledger.Total(stat),
		Contributions: s.Ledger.Breakdown(stat),
	}, nil
}
