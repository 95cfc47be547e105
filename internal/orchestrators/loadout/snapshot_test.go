package loadout_test

import (
	"encoding/json"

	"github.com/sebdah/goldie/v2"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/loadout"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet"
	"github.com/KirkDiggler/rpg-loadout/internal/testutils"
)

// buildCharacter drives the sheet through a representative set of commands
func (s *ControllerTestSuite) buildCharacter() {
	s.Require().NoError(s.controller.SelectRace(s.ctx, s.sheet, &loadout.SelectRaceInput{RaceID: "dwarf"}))
	s.Require().NoError(s.controller.SelectClass(s.ctx, s.sheet, &loadout.SelectClassInput{ClassID: "warrior"}))

	_, err := s.controller.SetLevel(s.ctx, s.sheet, &loadout.SetLevelInput{Level: 3})
	s.Require().NoError(err)

	for _, stat := range []string{"health", "strength", "strength"} {
		_, err := s.controller.AllocatePoint(s.ctx, s.sheet, &loadout.PointInput{Stat: stat})
		s.Require().NoError(err)
	}

	s.equip("head-slot", "iron-helm")
	s.equip("primary-weapon-slot", "longsword")
}

func (s *ControllerTestSuite) TestExportMatchesGolden() {
	s.allowNotifications()
	s.buildCharacter()

	out, err := s.controller.Export(s.ctx, s.sheet)
	s.Require().NoError(err)

	data, err := json.MarshalIndent(out.Snapshot, "", "  ")
	s.Require().NoError(err)

	g := goldie.New(s.T(),
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(s.T(), "snapshot_export", data)
}

func (s *ControllerTestSuite) TestExportImportRoundTrip() {
	s.allowNotifications()
	s.buildCharacter()
	s.equip("head-slot", "circlet")
	s.equip("utility-slot-2", "smoke-bomb")
	before := s.view()

	exported, err := s.controller.Export(s.ctx, s.sheet)
	s.Require().NoError(err)

	// through the wire format, the way a repository stores it
	data, err := json.Marshal(exported.Snapshot)
	s.Require().NoError(err)
	var restored entities.Snapshot
	s.Require().NoError(json.Unmarshal(data, &restored))

	fresh, err := sheet.New("char-1", testutils.NewTestLayout())
	s.Require().NoError(err)
	out, err := s.controller.Import(s.ctx, fresh, &loadout.ImportInput{Snapshot: &restored})
	s.Require().NoError(err)
	s.Empty(out.Skipped)

	after, err := s.controller.View(s.ctx, fresh)
	s.Require().NoError(err)
	s.Equal(before, after)

	again, err := s.controller.Export(s.ctx, fresh)
	s.Require().NoError(err)
	s.Equal(exported.Snapshot, again.Snapshot)
}

func (s *ControllerTestSuite) TestActionsFollowSlotOrder() {
	s.allowNotifications()
	s.equip("utility-slot-2", "smoke-bomb")
	s.equip("primary-weapon-slot", "longsword")
	s.equip("utility-slot-1", "smoke-bomb")

	sources := func(v *entities.View) []string {
		out := make([]string, 0, len(v.Actions))
		for _, action := range v.Actions {
			out = append(out, action.SourceID)
		}
		return out
	}
	s.Equal([]string{"slot:primary-weapon-slot", "slot:utility-slot-1", "slot:utility-slot-2"}, sources(s.view()))

	exported, err := s.controller.Export(s.ctx, s.sheet)
	s.Require().NoError(err)
	fresh, err := sheet.New("char-1", testutils.NewTestLayout())
	s.Require().NoError(err)
	_, err = s.controller.Import(s.ctx, fresh, &loadout.ImportInput{Snapshot: exported.Snapshot})
	s.Require().NoError(err)

	after, err := s.controller.View(s.ctx, fresh)
	s.Require().NoError(err)
	s.Equal(s.view().Actions, after.Actions)
}

func (s *ControllerTestSuite) TestImportReplacesExistingState() {
	s.allowNotifications()
	s.equip("torso-slot", "breastplate")
	_, err := s.controller.SetBase(s.ctx, s.sheet, &loadout.SetBaseInput{Stat: "agility", Value: 5})
	s.Require().NoError(err)

	_, err = s.controller.Import(s.ctx, s.sheet, &loadout.ImportInput{Snapshot: &entities.Snapshot{
		CharacterID:     "char-1",
		AvailablePoints: entities.Points{Vital: 4, Skill: 6},
		BaseScores:      map[string]int{"health": 2},
	}})
	s.Require().NoError(err)

	v := s.view()
	s.Equal(1, v.Level)
	s.Equal(entities.Points{Vital: 4, Skill: 6}, v.AvailablePoints)
	s.Equal(map[string]int{"health": 2}, v.Totals)
	s.Empty(v.Occupancy)
	s.Empty(v.Active[entities.GrantKindTrait])
}

func (s *ControllerTestSuite) TestImportSkipsUnresolvableSlots() {
	s.mockNotifier.EXPECT().StateChanged(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	out, err := s.controller.Import(s.ctx, s.sheet, &loadout.ImportInput{Snapshot: &entities.Snapshot{
		CharacterID: "char-1",
		Level:       2,
		SlotOccupancy: map[string]string{
			"head-slot":           "ghost-item",
			"torso-slot":          "longsword",
			"primary-weapon-slot": "longsword",
			"tail-slot":           "iron-helm",
		},
		EquippedScores: map[entities.Category]map[string]int{
			"weapon": {"strength": 1},
		},
	}})
	s.Require().NoError(err)
	s.Equal([]string{"head-slot", "torso-slot", "tail-slot"}, out.Skipped)

	v := s.view()
	s.Equal(2, v.Level)
	s.Equal(map[string]string{"primary-weapon-slot": "longsword"}, v.Occupancy)
	s.Equal(1, v.Skills["strength"])
	s.Len(v.Actions, 1)
}

func (s *ControllerTestSuite) TestImportDropsBonusOfSkippedItem() {
	s.mockNotifier.EXPECT().StateChanged(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	out, err := s.controller.Import(s.ctx, s.sheet, &loadout.ImportInput{Snapshot: &entities.Snapshot{
		CharacterID:   "char-1",
		SlotOccupancy: map[string]string{"head-slot": "ghost-helm"},
		EquippedScores: map[entities.Category]map[string]int{
			"armor": {"strength": 4},
		},
	}})
	s.Require().NoError(err)
	s.Equal([]string{"head-slot"}, out.Skipped)

	v := s.view()
	s.Equal(0, v.Skills["strength"])
	s.Empty(v.Occupancy)

	exported, err := s.controller.Export(s.ctx, s.sheet)
	s.Require().NoError(err)
	s.Empty(exported.Snapshot.EquippedScores["armor"])
}

func (s *ControllerTestSuite) TestImportKeepsBonusOfReequippedItem() {
	s.mockNotifier.EXPECT().StateChanged(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	_, err := s.controller.Import(s.ctx, s.sheet, &loadout.ImportInput{Snapshot: &entities.Snapshot{
		CharacterID: "char-1",
		SlotOccupancy: map[string]string{
			"head-slot":  "ghost-helm",
			"torso-slot": "breastplate",
		},
		EquippedScores: map[entities.Category]map[string]int{
			"armor": {"strength": 4},
		},
	}})
	s.Require().NoError(err)

	// the breastplate still backs the armor bucket
	s.Equal(4, s.view().Skills["strength"])
}

func (s *ControllerTestSuite) TestImportRejectsBadSnapshot() {
	s.mockNotifier.EXPECT().StateChanged(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	s.equip("head-slot", "iron-helm")
	before := s.view()

	_, err := s.controller.Import(s.ctx, s.sheet, &loadout.ImportInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.controller.Import(s.ctx, s.sheet, &loadout.ImportInput{Snapshot: &entities.Snapshot{Level: 150}})
	s.True(errors.IsInvalidArgument(err))

	s.Equal(before, s.view())
}

func (s *ControllerTestSuite) TestImportToleratesMissingArchetype() {
	s.allowNotifications()

	out, err := s.controller.Import(s.ctx, s.sheet, &loadout.ImportInput{Snapshot: &entities.Snapshot{
		CharacterID: "char-1",
		Level:       1,
		RaceID:      "orc",
		RaceBonuses: map[string]int{"strength": 3},
		ClassID:     "warrior",
	}})
	s.Require().NoError(err)
	s.Empty(out.Skipped)

	v := s.view()
	s.Equal("orc", v.RaceID)
	s.Equal(3, v.Skills["strength"])
	s.Equal([]string{"second-wind"}, v.Active[entities.GrantKindAbility])
}
