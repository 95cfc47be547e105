package roster_test

import (
	"context"
	"sync"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/notify"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/loadout"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/roster"
	"github.com/KirkDiggler/rpg-loadout/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot"
	snapshotmock "github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot/mock"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/ledger"
	"github.com/KirkDiggler/rpg-loadout/internal/testutils"
	"github.com/KirkDiggler/rpg-loadout/internal/testutils/builders"
	"github.com/KirkDiggler/rpg-loadout/internal/testutils/mocks"
)

type OrchestratorTestSuite struct {
	suite.Suite
	ctx          context.Context
	ctrl         *gomock.Controller
	mockRepo     *snapshotmock.MockRepository
	controller   *loadout.Controller
	orchestrator *roster.Orchestrator
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorTestSuite))
}

func (s *OrchestratorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRepo = snapshotmock.NewMockRepository(s.ctrl)

	bus := events.NewBus()
	notifier, err := notify.NewBusNotifier(&notify.Config{EventBus: bus})
	s.Require().NoError(err)

	s.controller, err = loadout.New(&loadout.Config{
		Catalog:  testutils.NewTestCatalog(),
		Notifier: notifier,
	})
	s.Require().NoError(err)

	s.orchestrator, err = roster.NewOrchestrator(&roster.Config{
		Controller:   s.controller,
		SnapshotRepo: s.mockRepo,
		IDGenerator:  idgen.NewSequential("char"),
		Layout:       testutils.NewTestLayout(),
		EventBus:     bus,
	})
	s.Require().NoError(err)
}

func (s *OrchestratorTestSuite) TearDownTest() {
	s.NoError(s.orchestrator.Close())
	s.ctrl.Finish()
}

func (s *OrchestratorTestSuite) storedDwarf() *entities.Snapshot {
	return builders.NewSnapshotBuilder().
		WithCharacterID(testutils.TestCharacterID).
		WithRace("dwarf", map[string]int{"health": 2, "strength": 1}).
		Build()
}

func (s *OrchestratorTestSuite) TestNewOrchestratorValidatesConfig() {
	testCases := []struct {
		name string
		cfg  *roster.Config
	}{
		{name: "nil config"},
		{name: "missing everything", cfg: &roster.Config{}},
		{
			name: "empty layout",
			cfg: &roster.Config{
				Controller:   s.controller,
				SnapshotRepo: s.mockRepo,
				IDGenerator:  idgen.NewSequential(""),
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			o, err := roster.NewOrchestrator(tc.cfg)
			s.Nil(o)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func (s *OrchestratorTestSuite) TestCreateCharacter() {
	var saved []*entities.Snapshot
	mocks.ExpectSnapshotMissing(s.ctx, s.mockRepo, "char_1")
	mocks.ExpectSnapshotSave(s.ctx, s.mockRepo, &saved)

	out, err := s.orchestrator.CreateCharacter(s.ctx, &roster.CreateCharacterInput{})
	s.Require().NoError(err)
	s.Equal("char_1", out.View.CharacterID)
	s.Equal(1, out.View.Level)
	s.Equal(entities.Points{Vital: 12, Skill: 18}, out.View.AvailablePoints)

	s.Require().Len(saved, 1)
	s.Equal("char_1", saved[0].CharacterID)

	// cached from now on
	got, err := s.orchestrator.GetCharacter(s.ctx, &roster.GetCharacterInput{CharacterID: "char_1"})
	s.Require().NoError(err)
	s.Equal(out.View, got.View)
}

func (s *OrchestratorTestSuite) TestCreateCharacterAlreadyStored() {
	mocks.ExpectSnapshotGet(s.ctx, s.mockRepo, testutils.TestCharacterID, s.storedDwarf())

	_, err := s.orchestrator.CreateCharacter(s.ctx, &roster.CreateCharacterInput{CharacterID: testutils.TestCharacterID})
	s.True(errors.IsAlreadyExists(err))
}

func (s *OrchestratorTestSuite) TestEquipLoadsAndPersists() {
	var saved []*entities.Snapshot
	mocks.ExpectSnapshotGet(s.ctx, s.mockRepo, testutils.TestCharacterID, s.storedDwarf()).Times(1)
	mocks.ExpectSnapshotSave(s.ctx, s.mockRepo, &saved).Times(2)

	out, err := s.orchestrator.Equip(s.ctx, &roster.EquipInput{
		CharacterID: testutils.TestCharacterID,
		SlotID:      "head-slot",
		ItemID:      "circlet",
	})
	s.Require().NoError(err)
	s.Empty(out.Displaced)
	s.Equal(5, out.View.Vitals["health"])
	s.Equal([]string{"darkvision"}, out.View.Active[entities.GrantKindAbility])

	swap, err := s.orchestrator.Equip(s.ctx, &roster.EquipInput{
		CharacterID: testutils.TestCharacterID,
		SlotID:      "head-slot",
		ItemID:      "iron-helm",
	})
	s.Require().NoError(err)
	s.Equal("circlet", swap.Displaced)

	s.Require().Len(saved, 2)
	s.Equal(map[string]string{"head-slot": "iron-helm"}, saved[1].SlotOccupancy)
	s.Equal(map[string]int{"strength": 2}, saved[1].EquippedScores["armor"])

	// import on load, then two equips
	got, err := s.orchestrator.GetCharacter(s.ctx, &roster.GetCharacterInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Equal(int64(3), got.Revision)
}

func (s *OrchestratorTestSuite) TestRejectedCommandIsNotPersisted() {
	mocks.ExpectSnapshotGet(s.ctx, s.mockRepo, testutils.TestCharacterID, s.storedDwarf())

	_, err := s.orchestrator.Equip(s.ctx, &roster.EquipInput{
		CharacterID: testutils.TestCharacterID,
		SlotID:      "head-slot",
		ItemID:      "longsword",
	})
	s.True(errors.HasReason(err, errors.ReasonTypeMismatch))

	_, err = s.orchestrator.RefundPoint(s.ctx, &roster.PointInput{CharacterID: testutils.TestCharacterID, Stat: "health"})
	s.True(errors.IsFailedPrecondition(err))
}

func (s *OrchestratorTestSuite) TestFailedSaveEvicts() {
	mocks.ExpectSnapshotGet(s.ctx, s.mockRepo, testutils.TestCharacterID, s.storedDwarf()).Times(2)
	s.mockRepo.EXPECT().Save(s.ctx, gomock.Any()).Return(nil, errors.Unavailablef("store down"))

	_, err := s.orchestrator.SetLevel(s.ctx, &roster.SetLevelInput{CharacterID: testutils.TestCharacterID, Level: 10})
	s.Require().Error(err)

	got, err := s.orchestrator.GetCharacter(s.ctx, &roster.GetCharacterInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Equal(1, got.View.Level)
}

func (s *OrchestratorTestSuite) TestUnknownCharacter() {
	mocks.ExpectSnapshotMissing(s.ctx, s.mockRepo, "ghost")

	_, err := s.orchestrator.GetCharacter(s.ctx, &roster.GetCharacterInput{CharacterID: "ghost"})
	s.True(errors.IsNotFound(err))

	_, err = s.orchestrator.SetLevel(s.ctx, &roster.SetLevelInput{Level: 2})
	s.True(errors.IsInvalidArgument(err))
}

func (s *OrchestratorTestSuite) TestImportAndExport() {
	var saved []*entities.Snapshot
	mocks.ExpectSnapshotSave(s.ctx, s.mockRepo, &saved)

	snap := builders.NewSnapshotBuilder().
		WithCharacterID("char-9").
		WithLevel(5).
		WithEquipped("primary-weapon-slot", "longsword", "weapon", map[string]int{"strength": 1}).
		WithEquipped("torso-slot", "missing-item", "armor", map[string]int{}).
		Build()

	out, err := s.orchestrator.ImportCharacter(s.ctx, &roster.ImportCharacterInput{Snapshot: snap})
	s.Require().NoError(err)
	s.Equal([]string{"torso-slot"}, out.Skipped)
	s.Equal(5, out.View.Level)
	s.Len(out.View.Actions, 1)
	s.Require().Len(saved, 1)
	s.Equal(map[string]string{"primary-weapon-slot": "longsword"}, saved[0].SlotOccupancy)

	exported, err := s.orchestrator.ExportCharacter(s.ctx, &roster.ExportCharacterInput{CharacterID: "char-9"})
	s.Require().NoError(err)
	s.Equal(saved[0].SlotOccupancy, exported.Snapshot.SlotOccupancy)
	s.Equal(5, exported.Snapshot.Level)
}

func (s *OrchestratorTestSuite) TestDeleteCharacter() {
	mocks.ExpectSnapshotMissing(s.ctx, s.mockRepo, "char_1")
	mocks.ExpectSnapshotSave(s.ctx, s.mockRepo, nil)
	_, err := s.orchestrator.CreateCharacter(s.ctx, &roster.CreateCharacterInput{})
	s.Require().NoError(err)

	mocks.ExpectSnapshotDelete(s.ctx, s.mockRepo, "char_1", nil)
	_, err = s.orchestrator.DeleteCharacter(s.ctx, &roster.DeleteCharacterInput{CharacterID: "char_1"})
	s.Require().NoError(err)

	// evicted, so the next read goes to the store
	mocks.ExpectSnapshotMissing(s.ctx, s.mockRepo, "char_1")
	_, err = s.orchestrator.GetCharacter(s.ctx, &roster.GetCharacterInput{CharacterID: "char_1"})
	s.True(errors.IsNotFound(err))
}

func (s *OrchestratorTestSuite) TestListCharacters() {
	s.mockRepo.EXPECT().List(s.ctx, snapshot.ListInput{}).
		Return(&snapshot.ListOutput{CharacterIDs: []string{"a", "b"}}, nil)

	out, err := s.orchestrator.ListCharacters(s.ctx, &roster.ListCharactersInput{})
	s.Require().NoError(err)
	s.Equal([]string{"a", "b"}, out.CharacterIDs)
}

func (s *OrchestratorTestSuite) TestGetBreakdown() {
	mocks.ExpectSnapshotGet(s.ctx, s.mockRepo, testutils.TestCharacterID, s.storedDwarf())
	mocks.ExpectSnapshotSave(s.ctx, s.mockRepo, nil).Times(2)

	_, err := s.orchestrator.AllocatePoint(s.ctx, &roster.PointInput{CharacterID: testutils.TestCharacterID, Stat: "strength"})
	s.Require().NoError(err)
	_, err = s.orchestrator.Equip(s.ctx, &roster.EquipInput{
		CharacterID: testutils.TestCharacterID,
		SlotID:      "primary-weapon-slot",
		ItemID:      "longsword",
	})
	s.Require().NoError(err)

	out, err := s.orchestrator.GetBreakdown(s.ctx, &roster.GetBreakdownInput{CharacterID: testutils.TestCharacterID, Stat: "Strength"})
	s.Require().NoError(err)
	s.Equal("strength", out.Stat)
	s.Equal(3, out.Total)
	s.Equal([]ledger.Contribution{
		{Source: ledger.SourceBase, Value: 1},
		{Source: ledger.SourceRace, Value: 1},
		{Source: ledger.EquipmentSource("weapon"), Value: 1},
	}, out.Contributions)
}

func (s *OrchestratorTestSuite) TestConcurrentCommandsSerialize() {
	const workers = 8
	mocks.ExpectSnapshotGet(s.ctx, s.mockRepo, testutils.TestCharacterID, s.storedDwarf())
	mocks.ExpectSnapshotSave(s.ctx, s.mockRepo, nil).Times(workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.orchestrator.AllocatePoint(s.ctx, &roster.PointInput{
				CharacterID: testutils.TestCharacterID,
				Stat:        "agility",
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	got, err := s.orchestrator.GetCharacter(s.ctx, &roster.GetCharacterInput{CharacterID: testutils.TestCharacterID})
	s.Require().NoError(err)
	s.Equal(workers, got.View.Skills["agility"])
	s.Equal(18-workers, got.View.AvailablePoints.Skill)
}
