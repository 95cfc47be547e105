package loadout

import (
	"context"
	"log/slog"
	"sort"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/progression"
)

// Export captures the persisted state of a sheet
func (c *Controller) Export(_ context.Context, s *sheet.Sheet) (*ExportOutput, error) {
	if s == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}

	return &ExportOutput{
		Snapshot: &entities.Snapshot{
			CharacterID:     s.ID,
			Level:           s.Progression.Level(),
			BaseScores:      s.Ledger.Base(),
			AvailablePoints: s.Progression.Available(),
			RaceID:          s.RaceID,
			ClassID:         s.ClassID,
			RaceBonuses:     s.Ledger.Race(),
			ClassBonuses:    s.Ledger.Class(),
			EquippedScores:  s.Ledger.Equipment(),
			SlotOccupancy:   s.Slots.Occupancy(),
			SavedAt:         c.clock.Now(),
		},
	}, nil
}

// Import clears the sheet and restores a snapshot. Bonus buckets come back
// verbatim unless no re-equipped item backs their category. Grants and actions are re-derived by looking up each occupied
// slot's item and the selected race and class in the catalog. Slots whose
// item cannot be resolved or no longer fits are left empty and reported.
func (c *Controller) Import(ctx context.Context, s *sheet.Sheet, input *ImportInput) (*ImportOutput, error) {
	if s == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input == nil || input.Snapshot == nil {
		return nil, errors.InvalidArgument("snapshot is required")
	}
	snap := input.Snapshot

	level := snap.Level
	if level == 0 {
		level = progression.MinLevel
	}
	if level < progression.MinLevel || level > progression.MaxLevel {
		return nil, errors.InvalidArgumentf("snapshot level %d is out of range", snap.Level)
	}

	s.Clear()
	s.Ledger.SetBaseAll(snap.BaseScores)
	s.Ledger.SetRaceBonuses(snap.RaceBonuses)
	s.Ledger.SetClassBonuses(snap.ClassBonuses)
	s.Ledger.RestoreEquipment(snap.EquippedScores)
	if err := s.Progression.Restore(level, snap.AvailablePoints); err != nil {
		return nil, err
	}

	s.RaceID = snap.RaceID
	s.ClassID = snap.ClassID
	c.restoreArchetypeGrants(ctx, s)

	out := &ImportOutput{}
	for _, slot := range s.Slots.Slots() {
		itemID, ok := snap.SlotOccupancy[slot.ID]
		if !ok || itemID == "" {
			continue
		}

		item, err := c.catalog.GetItem(ctx, itemID)
		if err != nil {
			slog.WarnContext(ctx, "Dropping unresolvable item on import",
				"character_id", s.ID,
				"slot_id", slot.ID,
				"item_id", itemID,
				"error", err)
			out.Skipped = append(out.Skipped, slot.ID)
			continue
		}
		if err := c.apply(s, slot.ID, item, false); err != nil {
			slog.WarnContext(ctx, "Dropping incompatible item on import",
				"character_id", s.ID,
				"slot_id", slot.ID,
				"item_id", itemID,
				"error", err)
			out.Skipped = append(out.Skipped, slot.ID)
		}
	}

	for slotID := range snap.SlotOccupancy {
		if _, ok := s.Slots.Slot(slotID); !ok {
			slog.WarnContext(ctx, "Dropping occupancy of unknown slot on import",
				"character_id", s.ID,
				"slot_id", slotID)
			out.Skipped = append(out.Skipped, slotID)
		}
	}

	c.dropOrphanedBuckets(ctx, s)

	c.stateChanged(ctx, s, CommandImport, "")
	return out, nil
}

// dropOrphanedBuckets clears restored category buckets that no occupied slot
// backs, so a skipped item never leaves its bonus behind
func (c *Controller) dropOrphanedBuckets(ctx context.Context, s *sheet.Sheet) {
	held := make(map[entities.Category]struct{})
	for _, slot := range s.Slots.Slots() {
		if item, ok := s.Slots.ItemIn(slot.ID); ok {
			held[item.Category()] = struct{}{}
		}
	}

	for category, bonuses := range s.Ledger.Equipment() {
		if _, ok := held[category]; ok || len(bonuses) == 0 {
			continue
		}
		slog.WarnContext(ctx, "Dropping equipment bonus with no equipped item on import",
			"character_id", s.ID,
			"category", category)
		s.Ledger.ClearEquipmentBonus(category)
	}
}

func (c *Controller) restoreArchetypeGrants(ctx context.Context, s *sheet.Sheet) {
	if s.RaceID != "" {
		race, err := c.catalog.GetRace(ctx, s.RaceID)
		if err != nil {
			slog.WarnContext(ctx, "Race grants not restored", "character_id", s.ID, "race_id", s.RaceID, "error", err)
		} else if err := grantArchetype(s, entities.SourceRace, race); err != nil {
			slog.WarnContext(ctx, "Race grants not restored", "character_id", s.ID, "race_id", s.RaceID, "error", err)
		}
	}
	if s.ClassID != "" {
		class, err := c.catalog.GetClass(ctx, s.ClassID)
		if err != nil {
			slog.WarnContext(ctx, "Class grants not restored", "character_id", s.ID, "class_id", s.ClassID, "error", err)
		} else if err := grantArchetype(s, entities.SourceClass, class); err != nil {
			slog.WarnContext(ctx, "Class grants not restored", "character_id", s.ID, "class_id", s.ClassID, "error", err)
		}
	}
}

// View returns the display state of the sheet. It never mutates.
func (c *Controller) View(_ context.Context, s *sheet.Sheet) (*entities.View, error) {
	if s == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}

	totals := s.Ledger.RecomputeAll()
	pick := func(stats []string) map[string]int {
		out := make(map[string]int, len(stats))
		for _, stat := range stats {
			stat = entities.NormalizeStat(stat)
			out[stat] = totals[stat]
		}
		return out
	}

	active := make(map[entities.GrantKind][]string, len(entities.AllGrantKinds()))
	for _, kind := range entities.AllGrantKinds() {
		active[kind] = s.Grants.ActiveIDs(kind)
	}

	return &entities.View{
		CharacterID:     s.ID,
		Level:           s.Progression.Level(),
		AvailablePoints: s.Progression.Available(),
		RaceID:          s.RaceID,
		ClassID:         s.ClassID,
		Vitals:          pick(s.Layout.Vitals),
		Skills:          pick(s.Layout.Skills),
		Totals:          totals,
		Active:          active,
		Actions:         slotOrdered(s),
		Occupancy:       s.Slots.Occupancy(),
	}, nil
}

// slotOrdered lists the registered actions by the position of their slot in
// the layout, so equip history does not change the order
func slotOrdered(s *sheet.Sheet) []entities.Action {
	rank := make(map[string]int)
	for i, slot := range s.Slots.Slots() {
		rank[entities.SlotSource(slot.ID)] = i
	}

	out := s.Actions.List()
	sort.SliceStable(out, func(i, j int) bool {
		ri, ok := rank[out[i].SourceID]
		if !ok {
			ri = len(rank)
		}
		rj, ok := rank[out[j].SourceID]
		if !ok {
			rj = len(rank)
		}
		return ri < rj
	})
	return out
}
