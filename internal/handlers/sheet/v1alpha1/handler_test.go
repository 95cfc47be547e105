package v1alpha1_test

import (
	"context"
	"net"
	"testing"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	v1alpha1 "github.com/KirkDiggler/rpg-loadout/internal/handlers/sheet/v1alpha1"
	"github.com/KirkDiggler/rpg-loadout/internal/notify"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/loadout"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/roster"
	rostermock "github.com/KirkDiggler/rpg-loadout/internal/orchestrators/roster/mock"
	"github.com/KirkDiggler/rpg-loadout/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot"
	"github.com/KirkDiggler/rpg-loadout/internal/testutils"
)

type HandlerTestSuite struct {
	suite.Suite
	ctx        context.Context
	ctrl       *gomock.Controller
	mockRoster *rostermock.MockService
	handler    *v1alpha1.Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.mockRoster = rostermock.NewMockService(s.ctrl)

	var err error
	s.handler, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{
		Roster:  s.mockRoster,
		Catalog: testutils.NewTestCatalog(),
	})
	s.Require().NoError(err)
}

func (s *HandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerTestSuite) request(fields map[string]any) *structpb.Struct {
	req, err := structpb.NewStruct(fields)
	s.Require().NoError(err)
	return req
}

func (s *HandlerTestSuite) emptyView() *entities.View {
	return &entities.View{
		CharacterID: testutils.TestCharacterID,
		Level:       1,
		Totals:      map[string]int{},
		Occupancy:   map[string]string{},
	}
}

func (s *HandlerTestSuite) TestNewHandlerValidatesConfig() {
	_, err := v1alpha1.NewHandler(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = v1alpha1.NewHandler(&v1alpha1.HandlerConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *HandlerTestSuite) TestEquipPassesFields() {
	s.mockRoster.EXPECT().
		Equip(s.ctx, &roster.EquipInput{
			CharacterID: testutils.TestCharacterID,
			SlotID:      "head-slot",
			ItemID:      "iron-helm",
		}).
		Return(&roster.EquipOutput{Displaced: "circlet", View: s.emptyView()}, nil)

	resp, err := s.handler.Equip(s.ctx, s.request(map[string]any{
		"character_id": testutils.TestCharacterID,
		"slot_id":      "head-slot",
		"item_id":      "iron-helm",
	}))
	s.Require().NoError(err)

	out := resp.AsMap()
	s.Equal("circlet", out["displaced_item_id"])
	view := out["view"].(map[string]any)
	s.Equal(testutils.TestCharacterID, view["character_id"])
	s.Equal([]any{}, view["actions"])
}

func (s *HandlerTestSuite) TestMissingFieldsAreRejected() {
	testCases := []struct {
		name string
		call func() error
	}{
		{
			name: "equip without slot",
			call: func() error {
				_, err := s.handler.Equip(s.ctx, s.request(map[string]any{
					"character_id": testutils.TestCharacterID,
					"item_id":      "iron-helm",
				}))
				return err
			},
		},
		{
			name: "level is not a number",
			call: func() error {
				_, err := s.handler.SetLevel(s.ctx, s.request(map[string]any{
					"character_id": testutils.TestCharacterID,
					"level":        "three",
				}))
				return err
			},
		},
		{
			name: "level is fractional",
			call: func() error {
				_, err := s.handler.SetLevel(s.ctx, s.request(map[string]any{
					"character_id": testutils.TestCharacterID,
					"level":        2.5,
				}))
				return err
			},
		},
		{
			name: "slot id is not a string",
			call: func() error {
				_, err := s.handler.Unequip(s.ctx, s.request(map[string]any{
					"character_id": testutils.TestCharacterID,
					"slot_id":      true,
				}))
				return err
			},
		},
		{
			name: "import without snapshot",
			call: func() error {
				_, err := s.handler.ImportCharacter(s.ctx, s.request(map[string]any{}))
				return err
			},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := tc.call()
			s.Require().Error(err)
			s.Equal(codes.InvalidArgument, status.Code(err))
		})
	}
}

func (s *HandlerTestSuite) TestRosterErrorsMapToStatus() {
	s.mockRoster.EXPECT().
		Unequip(s.ctx, &roster.UnequipInput{CharacterID: testutils.TestCharacterID, SlotID: "wing-slot"}).
		Return(nil, errors.SlotNotFound("wing-slot"))

	_, err := s.handler.Unequip(s.ctx, s.request(map[string]any{
		"character_id": testutils.TestCharacterID,
		"slot_id":      "wing-slot",
	}))
	s.Require().Error(err)
	s.Equal(codes.NotFound, status.Code(err))

	back := errors.FromGRPCError(err)
	s.True(errors.HasReason(back, errors.ReasonSlotNotFound))
	s.Equal("wing-slot", errors.GetMeta(back)["slot_id"])
}

func (s *HandlerTestSuite) TestListItemsFiltersByType() {
	resp, err := s.handler.ListItems(s.ctx, s.request(map[string]any{"item_type": "weapon"}))
	s.Require().NoError(err)

	items := resp.AsMap()["items"].([]any)
	s.Require().Len(items, 1)
	s.Equal("longsword", items[0].(map[string]any)["id"])
}

func (s *HandlerTestSuite) TestListItemsFiltersByQuery() {
	resp, err := s.handler.ListItems(s.ctx, s.request(map[string]any{"query": "IRON"}))
	s.Require().NoError(err)

	var ids []any
	for _, item := range resp.AsMap()["items"].([]any) {
		ids = append(ids, item.(map[string]any)["id"])
	}
	s.Equal([]any{"iron-boots", "iron-helm"}, ids)

	resp, err = s.handler.ListItems(s.ctx, s.request(map[string]any{"query": "iron", "item_type": "weapon"}))
	s.Require().NoError(err)
	s.Empty(resp.AsMap()["items"])
}

func (s *HandlerTestSuite) TestListArchetypes() {
	races, err := s.handler.ListRaces(s.ctx, s.request(map[string]any{}))
	s.Require().NoError(err)
	list := races.AsMap()["races"].([]any)
	s.Require().Len(list, 1)
	dwarf := list[0].(map[string]any)
	s.Equal("dwarf", dwarf["id"])
	s.Equal([]any{"darkvision"}, dwarf["abilities"])

	classes, err := s.handler.ListClasses(s.ctx, s.request(map[string]any{}))
	s.Require().NoError(err)
	list = classes.AsMap()["classes"].([]any)
	s.Require().Len(list, 1)
	s.Equal("warrior", list[0].(map[string]any)["id"])
}

func (s *HandlerTestSuite) TestGetBreakdown() {
	s.mockRoster.EXPECT().
		GetBreakdown(s.ctx, &roster.GetBreakdownInput{CharacterID: testutils.TestCharacterID, Stat: "strength"}).
		Return(&roster.GetBreakdownOutput{Stat: "strength", Total: 3}, nil)

	resp, err := s.handler.GetBreakdown(s.ctx, s.request(map[string]any{
		"character_id": testutils.TestCharacterID,
		"stat":         "strength",
	}))
	s.Require().NoError(err)

	out := resp.AsMap()
	s.Equal(float64(3), out["total"])
	s.Equal([]any{}, out["contributions"])
}

// ServiceTestSuite drives the registered service over an in-process connection
type ServiceTestSuite struct {
	suite.Suite
	ctx      context.Context
	server   *grpc.Server
	conn     *grpc.ClientConn
	client   *v1alpha1.Client
	roster   *roster.Orchestrator
	listener *bufconn.Listener
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctx = context.Background()

	bus := events.NewBus()
	notifier, err := notify.NewBusNotifier(&notify.Config{EventBus: bus})
	s.Require().NoError(err)

	cat := testutils.NewTestCatalog()
	controller, err := loadout.New(&loadout.Config{Catalog: cat, Notifier: notifier})
	s.Require().NoError(err)

	s.roster, err = roster.NewOrchestrator(&roster.Config{
		Controller:   controller,
		SnapshotRepo: snapshot.NewInMemory(),
		IDGenerator:  idgen.NewSequential("char"),
		Layout:       testutils.NewTestLayout(),
		EventBus:     bus,
	})
	s.Require().NoError(err)

	handler, err := v1alpha1.NewHandler(&v1alpha1.HandlerConfig{Roster: s.roster, Catalog: cat})
	s.Require().NoError(err)

	s.listener = bufconn.Listen(1 << 20)
	s.server = grpc.NewServer()
	v1alpha1.RegisterSheetServiceServer(s.server, handler)
	go func() {
		_ = s.server.Serve(s.listener)
	}()

	s.conn, err = grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	s.Require().NoError(err)

	s.client, err = v1alpha1.NewClient(s.conn)
	s.Require().NoError(err)
}

func (s *ServiceTestSuite) TearDownTest() {
	s.NoError(s.conn.Close())
	s.server.Stop()
	s.NoError(s.roster.Close())
}

func (s *ServiceTestSuite) call(method string, req map[string]any) map[string]any {
	out, err := s.client.Call(s.ctx, method, req)
	s.Require().NoError(err)
	return out
}

func (s *ServiceTestSuite) TestEquipmentLifecycle() {
	created := s.call(v1alpha1.MethodCreateCharacter, map[string]any{})
	id := created["view"].(map[string]any)["character_id"].(string)
	s.Equal("char_1", id)

	equipped := s.call(v1alpha1.MethodEquip, map[string]any{
		"character_id": id,
		"slot_id":      "primary-weapon-slot",
		"item_id":      "longsword",
	})
	view := equipped["view"].(map[string]any)
	s.Equal(float64(1), view["totals"].(map[string]any)["strength"])
	s.Equal("longsword", view["occupancy"].(map[string]any)["primary-weapon-slot"])
	s.Len(view["actions"].([]any), 1)

	_, err := s.client.Call(s.ctx, v1alpha1.MethodEquip, map[string]any{
		"character_id": id,
		"slot_id":      "head-slot",
		"item_id":      "longsword",
	})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
	s.True(errors.HasReason(err, errors.ReasonTypeMismatch))

	removed := s.call(v1alpha1.MethodUnequip, map[string]any{
		"character_id": id,
		"slot_id":      "primary-weapon-slot",
	})
	s.Equal("longsword", removed["item_id"])
	view = removed["view"].(map[string]any)
	s.Empty(view["occupancy"])
	s.Empty(view["actions"])

	got := s.call(v1alpha1.MethodGetCharacter, map[string]any{"character_id": id})
	s.Equal(float64(2), got["revision"])
}

func (s *ServiceTestSuite) TestExportImportRoundTrip() {
	s.call(v1alpha1.MethodCreateCharacter, map[string]any{"character_id": testutils.TestCharacterID})
	s.call(v1alpha1.MethodSelectRace, map[string]any{"character_id": testutils.TestCharacterID, "race_id": "dwarf"})
	s.call(v1alpha1.MethodSetLevel, map[string]any{"character_id": testutils.TestCharacterID, "level": 2})
	s.call(v1alpha1.MethodEquip, map[string]any{
		"character_id": testutils.TestCharacterID,
		"slot_id":      "head-slot",
		"item_id":      "iron-helm",
	})
	before := s.call(v1alpha1.MethodGetCharacter, map[string]any{"character_id": testutils.TestCharacterID})

	exported := s.call(v1alpha1.MethodExportCharacter, map[string]any{"character_id": testutils.TestCharacterID})
	snap := exported["snapshot"].(map[string]any)
	s.Equal("dwarf", snap["raceId"])

	s.call(v1alpha1.MethodDeleteCharacter, map[string]any{"character_id": testutils.TestCharacterID})
	_, err := s.client.Call(s.ctx, v1alpha1.MethodGetCharacter, map[string]any{"character_id": testutils.TestCharacterID})
	s.True(errors.IsNotFound(err))

	imported := s.call(v1alpha1.MethodImportCharacter, map[string]any{"snapshot": snap})
	s.Equal([]any{}, imported["skipped_slot_ids"])
	s.Equal(before["view"], imported["view"])

	listed := s.call(v1alpha1.MethodListCharacters, map[string]any{})
	s.Equal([]any{testutils.TestCharacterID}, listed["character_ids"])
}

func (s *ServiceTestSuite) TestPointsAndBreakdown() {
	s.call(v1alpha1.MethodCreateCharacter, map[string]any{"character_id": testutils.TestCharacterID})
	s.call(v1alpha1.MethodAllocatePoint, map[string]any{"character_id": testutils.TestCharacterID, "stat": "strength"})
	s.call(v1alpha1.MethodAllocatePoint, map[string]any{"character_id": testutils.TestCharacterID, "stat": "strength"})
	refunded := s.call(v1alpha1.MethodRefundPoint, map[string]any{"character_id": testutils.TestCharacterID, "stat": "strength"})

	points := refunded["view"].(map[string]any)["available_points"].(map[string]any)
	s.Equal(float64(17), points["skill"])

	breakdown := s.call(v1alpha1.MethodGetBreakdown, map[string]any{"character_id": testutils.TestCharacterID, "stat": "Strength"})
	s.Equal("strength", breakdown["stat"])
	s.Equal(float64(1), breakdown["total"])
	s.Equal([]any{map[string]any{"source": "base", "value": float64(1)}}, breakdown["contributions"])
}

func (s *ServiceTestSuite) TestBrowseCatalog() {
	races := s.call(v1alpha1.MethodListRaces, map[string]any{})
	s.Equal("dwarf", races["races"].([]any)[0].(map[string]any)["id"])

	classes := s.call(v1alpha1.MethodListClasses, map[string]any{})
	s.Equal("warrior", classes["classes"].([]any)[0].(map[string]any)["id"])

	items := s.call(v1alpha1.MethodListItems, map[string]any{"query": "smoke"})
	s.Equal([]any{map[string]any{
		"id":        "smoke-bomb",
		"name":      "Smoke Bomb",
		"item_type": "Throwable",
	}}, items["items"])
}
