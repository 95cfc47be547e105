package v1alpha1

import (
	"context"
	"log/slog"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-loadout/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/roster"
)

// HandlerConfig holds dependencies for the handler
type HandlerConfig struct {
	Roster  roster.Service
	Catalog catalog.Client
}

// Validate ensures all required dependencies are present
func (c *HandlerConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.Roster == nil {
		vb.RequiredField("Roster")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	return vb.Build()
}

// Handler implements the sheet gRPC service
type Handler struct {
	roster  roster.Service
	catalog catalog.Client
}

var _ SheetServiceServer = (*Handler)(nil)

// NewHandler creates a new handler with the given configuration
func NewHandler(cfg *HandlerConfig) (*Handler, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &Handler{
		roster:  cfg.Roster,
		catalog: cfg.Catalog,
	}, nil
}

// fail logs and converts an error for the wire
func fail(ctx context.Context, method string, err error) error {
	if errors.IsServerFault(err) {
		slog.ErrorContext(ctx, "Request failed", "method", method, "error", err)
	} else {
		slog.DebugContext(ctx, "Request rejected", "method", method, "error", err)
	}
	return errors.ToGRPCError(err)
}

func viewResponse(ctx context.Context, method string, view *entities.View, extra map[string]any) (*structpb.Struct, error) {
	msg := map[string]any{"view": toViewMessage(view)}
	for k, v := range extra {
		msg[k] = v
	}
	out, err := toStruct(msg)
	if err != nil {
		return nil, fail(ctx, method, err)
	}
	return out, nil
}

// CreateCharacter starts a new character; character_id is optional
func (h *Handler) CreateCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := stringField(req, keyCharacterID)
	if err != nil {
		return nil, fail(ctx, MethodCreateCharacter, err)
	}

	out, err := h.roster.CreateCharacter(ctx, &roster.CreateCharacterInput{CharacterID: id})
	if err != nil {
		return nil, fail(ctx, MethodCreateCharacter, err)
	}
	return viewResponse(ctx, MethodCreateCharacter, out.View, nil)
}

// GetCharacter returns the display state of a character
func (h *Handler) GetCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, keyCharacterID)
	if err != nil {
		return nil, fail(ctx, MethodGetCharacter, err)
	}

	out, err := h.roster.GetCharacter(ctx, &roster.GetCharacterInput{CharacterID: id})
	if err != nil {
		return nil, fail(ctx, MethodGetCharacter, err)
	}
	return viewResponse(ctx, MethodGetCharacter, out.View, map[string]any{"revision": out.Revision})
}

// ListCharacters returns every stored character id
func (h *Handler) ListCharacters(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := h.roster.ListCharacters(ctx, &roster.ListCharactersInput{})
	if err != nil {
		return nil, fail(ctx, MethodListCharacters, err)
	}

	ids := out.CharacterIDs
	if ids == nil {
		ids = []string{}
	}
	resp, err := toStruct(map[string]any{"character_ids": ids})
	if err != nil {
		return nil, fail(ctx, MethodListCharacters, err)
	}
	return resp, nil
}

// DeleteCharacter removes a character
func (h *Handler) DeleteCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, keyCharacterID)
	if err != nil {
		return nil, fail(ctx, MethodDeleteCharacter, err)
	}

	if _, err := h.roster.DeleteCharacter(ctx, &roster.DeleteCharacterInput{CharacterID: id}); err != nil {
		return nil, fail(ctx, MethodDeleteCharacter, err)
	}
	return &structpb.Struct{}, nil
}

// Equip places an item into a slot
func (h *Handler) Equip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &roster.EquipInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, fail(ctx, MethodEquip, err)
	}
	if input.SlotID, err = requiredString(req, keySlotID); err != nil {
		return nil, fail(ctx, MethodEquip, err)
	}
	if input.ItemID, err = requiredString(req, keyItemID); err != nil {
		return nil, fail(ctx, MethodEquip, err)
	}

	out, err := h.roster.Equip(ctx, input)
	if err != nil {
		return nil, fail(ctx, MethodEquip, err)
	}
	return viewResponse(ctx, MethodEquip, out.View, map[string]any{"displaced_item_id": out.Displaced})
}

// EquipFirstFree equips into the first empty slot accepting the item
func (h *Handler) EquipFirstFree(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &roster.EquipFirstFreeInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, fail(ctx, MethodEquipFirstFree, err)
	}
	if input.ItemID, err = requiredString(req, keyItemID); err != nil {
		return nil, fail(ctx, MethodEquipFirstFree, err)
	}

	out, err := h.roster.EquipFirstFree(ctx, input)
	if err != nil {
		return nil, fail(ctx, MethodEquipFirstFree, err)
	}
	return viewResponse(ctx, MethodEquipFirstFree, out.View, map[string]any{"slot_id": out.SlotID})
}

// Unequip empties a slot
func (h *Handler) Unequip(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &roster.UnequipInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, fail(ctx, MethodUnequip, err)
	}
	if input.SlotID, err = requiredString(req, keySlotID); err != nil {
		return nil, fail(ctx, MethodUnequip, err)
	}

	out, err := h.roster.Unequip(ctx, input)
	if err != nil {
		return nil, fail(ctx, MethodUnequip, err)
	}
	return viewResponse(ctx, MethodUnequip, out.View, map[string]any{"item_id": out.ItemID})
}

// SetLevel changes the character level
func (h *Handler) SetLevel(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &roster.SetLevelInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, fail(ctx, MethodSetLevel, err)
	}
	if input.Level, err = intField(req, keyLevel); err != nil {
		return nil, fail(ctx, MethodSetLevel, err)
	}
	return h.command(ctx, MethodSetLevel, func() (*roster.CommandOutput, error) {
		return h.roster.SetLevel(ctx, input)
	})
}

// SelectRace replaces the race; an empty race_id deselects
func (h *Handler) SelectRace(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &roster.SelectRaceInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, fail(ctx, MethodSelectRace, err)
	}
	if input.RaceID, err = stringField(req, keyRaceID); err != nil {
		return nil, fail(ctx, MethodSelectRace, err)
	}
	return h.command(ctx, MethodSelectRace, func() (*roster.CommandOutput, error) {
		return h.roster.SelectRace(ctx, input)
	})
}

// SelectClass replaces the class; an empty class_id deselects
func (h *Handler) SelectClass(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &roster.SelectClassInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, fail(ctx, MethodSelectClass, err)
	}
	if input.ClassID, err = stringField(req, keyClassID); err != nil {
		return nil, fail(ctx, MethodSelectClass, err)
	}
	return h.command(ctx, MethodSelectClass, func() (*roster.CommandOutput, error) {
		return h.roster.SelectClass(ctx, input)
	})
}

// SetBase overwrites one base score
func (h *Handler) SetBase(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &roster.SetBaseInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, fail(ctx, MethodSetBase, err)
	}
	if input.Stat, err = requiredString(req, keyStat); err != nil {
		return nil, fail(ctx, MethodSetBase, err)
	}
	if input.Value, err = intField(req, keyValue); err != nil {
		return nil, fail(ctx, MethodSetBase, err)
	}
	return h.command(ctx, MethodSetBase, func() (*roster.CommandOutput, error) {
		return h.roster.SetBase(ctx, input)
	})
}

// AllocatePoint spends one available point on a stat
func (h *Handler) AllocatePoint(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := pointInput(req)
	if err != nil {
		return nil, fail(ctx, MethodAllocatePoint, err)
	}
	return h.command(ctx, MethodAllocatePoint, func() (*roster.CommandOutput, error) {
		return h.roster.AllocatePoint(ctx, input)
	})
}

// RefundPoint returns one point from a stat
func (h *Handler) RefundPoint(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input, err := pointInput(req)
	if err != nil {
		return nil, fail(ctx, MethodRefundPoint, err)
	}
	return h.command(ctx, MethodRefundPoint, func() (*roster.CommandOutput, error) {
		return h.roster.RefundPoint(ctx, input)
	})
}

func pointInput(req *structpb.Struct) (*roster.PointInput, error) {
	input := &roster.PointInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, err
	}
	if input.Stat, err = requiredString(req, keyStat); err != nil {
		return nil, err
	}
	return input, nil
}

func (h *Handler) command(ctx context.Context, method string, run func() (*roster.CommandOutput, error)) (*structpb.Struct, error) {
	out, err := run()
	if err != nil {
		return nil, fail(ctx, method, err)
	}
	return viewResponse(ctx, method, out.View, nil)
}

// ExportCharacter returns the snapshot document of a character
func (h *Handler) ExportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requiredString(req, keyCharacterID)
	if err != nil {
		return nil, fail(ctx, MethodExportCharacter, err)
	}

	out, err := h.roster.ExportCharacter(ctx, &roster.ExportCharacterInput{CharacterID: id})
	if err != nil {
		return nil, fail(ctx, MethodExportCharacter, err)
	}
	resp, err := toStruct(map[string]any{keySnapshot: out.Snapshot})
	if err != nil {
		return nil, fail(ctx, MethodExportCharacter, err)
	}
	return resp, nil
}

// ImportCharacter restores a character from a snapshot document
func (h *Handler) ImportCharacter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	snap, err := snapshotField(req)
	if err != nil {
		return nil, fail(ctx, MethodImportCharacter, err)
	}

	out, err := h.roster.ImportCharacter(ctx, &roster.ImportCharacterInput{Snapshot: snap})
	if err != nil {
		return nil, fail(ctx, MethodImportCharacter, err)
	}
	skipped := out.Skipped
	if skipped == nil {
		skipped = []string{}
	}
	return viewResponse(ctx, MethodImportCharacter, out.View, map[string]any{"skipped_slot_ids": skipped})
}

// GetBreakdown lists the contributions to one stat
func (h *Handler) GetBreakdown(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	input := &roster.GetBreakdownInput{}
	var err error
	if input.CharacterID, err = requiredString(req, keyCharacterID); err != nil {
		return nil, fail(ctx, MethodGetBreakdown, err)
	}
	if input.Stat, err = requiredString(req, keyStat); err != nil {
		return nil, fail(ctx, MethodGetBreakdown, err)
	}

	out, err := h.roster.GetBreakdown(ctx, input)
	if err != nil {
		return nil, fail(ctx, MethodGetBreakdown, err)
	}

	contributions := make([]contributionMessage, 0, len(out.Contributions))
	for _, c := range out.Contributions {
		contributions = append(contributions, contributionMessage{Source: c.Source, Value: c.Value})
	}
	resp, err := toStruct(map[string]any{
		keyStat:         out.Stat,
		"total":         out.Total,
		"contributions": contributions,
	})
	if err != nil {
		return nil, fail(ctx, MethodGetBreakdown, err)
	}
	return resp, nil
}

// ListItems lists catalog items, optionally filtered by item_type and a
// name or id query
func (h *Handler) ListItems(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	itemType, err := stringField(req, keyItemType)
	if err != nil {
		return nil, fail(ctx, MethodListItems, err)
	}
	query, err := stringField(req, keyQuery)
	if err != nil {
		return nil, fail(ctx, MethodListItems, err)
	}

	input := &catalog.ListItemsInput{Query: query}
	if itemType != "" {
		input.ItemType = entities.ParseItemType(itemType)
	}
	items, err := h.catalog.ListItems(ctx, input)
	if err != nil {
		return nil, fail(ctx, MethodListItems, err)
	}

	messages := make([]itemMessage, 0, len(items))
	for _, item := range items {
		messages = append(messages, toItemMessage(item))
	}
	resp, err := toStruct(map[string]any{"items": messages})
	if err != nil {
		return nil, fail(ctx, MethodListItems, err)
	}
	return resp, nil
}

// ListRaces lists the races a character can select
func (h *Handler) ListRaces(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	races, err := h.catalog.ListRaces(ctx)
	if err != nil {
		return nil, fail(ctx, MethodListRaces, err)
	}

	resp, err := toStruct(map[string]any{"races": toArchetypeMessages(races)})
	if err != nil {
		return nil, fail(ctx, MethodListRaces, err)
	}
	return resp, nil
}

// ListClasses lists the classes a character can select
func (h *Handler) ListClasses(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	classes, err := h.catalog.ListClasses(ctx)
	if err != nil {
		return nil, fail(ctx, MethodListClasses, err)
	}

	resp, err := toStruct(map[string]any{"classes": toArchetypeMessages(classes)})
	if err != nil {
		return nil, fail(ctx, MethodListClasses, err)
	}
	return resp, nil
}
