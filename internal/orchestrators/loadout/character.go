package loadout

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet"
)

// SetLevel changes the character level and adjusts available points
func (c *Controller) SetLevel(ctx context.Context, s *sheet.Sheet, input *SetLevelInput) (*SetLevelOutput, error) {
	if s == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	before := s.Progression.Level()
	delta, err := s.Progression.SetLevel(input.Level)
	if err != nil {
		return nil, err
	}

	if before != input.Level {
		slog.DebugContext(ctx, "Level changed",
			"character_id", s.ID,
			"from", before,
			"to", input.Level,
			"vital_delta", delta.Vital,
			"skill_delta", delta.Skill)
		c.stateChanged(ctx, s, CommandSetLevel, "")
	}

	return &SetLevelOutput{Delta: delta, Available: s.Progression.Available()}, nil
}

// SelectRace replaces the race bucket and race grants
func (c *Controller) SelectRace(ctx context.Context, s *sheet.Sheet, input *SelectRaceInput) error {
	if s == nil {
		return errors.InvalidArgument("sheet is required")
	}
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	var race *entities.Archetype
	if input.RaceID != "" {
		var err error
		race, err = c.catalog.GetRace(ctx, input.RaceID)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve race %s", input.RaceID)
		}
	}

	if err := c.selectArchetype(s, entities.SourceRace, race); err != nil {
		return err
	}
	s.RaceID = input.RaceID

	c.stateChanged(ctx, s, CommandSelectRace, "")
	return nil
}

// SelectClass replaces the class bucket and class grants
func (c *Controller) SelectClass(ctx context.Context, s *sheet.Sheet, input *SelectClassInput) error {
	if s == nil {
		return errors.InvalidArgument("sheet is required")
	}
	if input == nil {
		return errors.InvalidArgument("input is required")
	}

	var class *entities.Archetype
	if input.ClassID != "" {
		var err error
		class, err = c.catalog.GetClass(ctx, input.ClassID)
		if err != nil {
			return errors.Wrapf(err, "failed to resolve class %s", input.ClassID)
		}
	}

	if err := c.selectArchetype(s, entities.SourceClass, class); err != nil {
		return err
	}
	s.ClassID = input.ClassID

	c.stateChanged(ctx, s, CommandSelectClass, "")
	return nil
}

// selectArchetype swaps the bucket and grants of source to record. A nil
// record clears them.
func (c *Controller) selectArchetype(s *sheet.Sheet, source string, record *entities.Archetype) error {
	var bonuses map[string]int
	if record != nil {
		bonuses = record.MergedBonus()
	}

	switch source {
	case entities.SourceRace:
		s.Ledger.SetRaceBonuses(bonuses)
	case entities.SourceClass:
		s.Ledger.SetClassBonuses(bonuses)
	default:
		return errors.Internalf("unknown archetype source %s", source)
	}

	s.Grants.RevokeAll(source)
	if record == nil {
		return nil
	}
	return grantArchetype(s, source, record)
}

func grantArchetype(s *sheet.Sheet, source string, record *entities.Archetype) error {
	grants := record.Grants()
	for _, kind := range entities.AllGrantKinds() {
		if err := s.Grants.Grant(source, kind, grants[kind]); err != nil {
			slog.Error("Grant rejected while selecting archetype",
				"character_id", s.ID,
				"source", source,
				"record_id", record.ID,
				"kind", kind,
				"error", err)
			s.Grants.RevokeAll(source)
			return err
		}
	}
	return nil
}

// SetBase overwrites one base score. The stat must belong to the layout.
func (c *Controller) SetBase(ctx context.Context, s *sheet.Sheet, input *SetBaseInput) (*PointOutput, error) {
	if s == nil {
		return nil, errors.InvalidArgument("sheet is required")
	}
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	stat := entities.NormalizeStat(input.Stat)
	if _, ok := s.Layout.PoolOf(stat); !ok {
		return nil, errors.NotFoundf("stat %q is not part of the layout", input.Stat).WithMeta("stat", stat)
	}
	if input.Value < 0 {
		return nil, errors.InvalidArgumentf("base score must not be negative, got %d", input.Value)
	}

	s.Ledger.SetBase(stat, input.Value)
	c.stateChanged(ctx, s, CommandSetBase, "")
	return c.pointOutput(s, stat), nil
}

// AllocatePoint spends one point from the stat's pool on its base score
func (c *Controller) AllocatePoint(ctx context.Context, s *sheet.Sheet, input *PointInput) (*PointOutput, error) {
	stat, pool, err := resolveStat(s, input)
	if err != nil {
		return nil, err
	}

	if err := s.Progression.Spend(pool); err != nil {
		return nil, err
	}
	s.Ledger.SetBase(stat, s.Ledger.Base()[stat]+1)

	c.stateChanged(ctx, s, CommandAllocate, "")
	return c.pointOutput(s, stat), nil
}

// RefundPoint lowers the stat's base score by one and returns the point
func (c *Controller) RefundPoint(ctx context.Context, s *sheet.Sheet, input *PointInput) (*PointOutput, error) {
	stat, pool, err := resolveStat(s, input)
	if err != nil {
		return nil, err
	}

	base := s.Ledger.Base()[stat]
	if base <= 0 {
		return nil, errors.FailedPreconditionf("no allocated points on %s", stat).WithMeta("stat", stat)
	}
	if err := s.Progression.Refund(pool); err != nil {
		return nil, err
	}
	s.Ledger.SetBase(stat, base-1)

	c.stateChanged(ctx, s, CommandRefund, "")
	return c.pointOutput(s, stat), nil
}

func resolveStat(s *sheet.Sheet, input *PointInput) (string, entities.Pool, error) {
	if s == nil {
		return "", "", errors.InvalidArgument("sheet is required")
	}
	if input == nil || input.Stat == "" {
		return "", "", errors.InvalidArgument("stat is required")
	}

	stat := entities.NormalizeStat(input.Stat)
	pool, ok := s.Layout.PoolOf(stat)
	if !ok {
		return "", "", errors.NotFoundf("stat %q is not part of the layout", input.Stat).WithMeta("stat", stat)
	}
	return stat, pool, nil
}

func (c *Controller) pointOutput(s *sheet.Sheet, stat string) *PointOutput {
	return &PointOutput{
		Stat:      stat,
		Base:      s.Ledger.Base()[stat],
		Available: s.Progression.Available(),
	}
}
