package slots_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/slots"
)

type RegistryTestSuite struct {
	suite.Suite
	registry *slots.Registry

	helmet  *entities.Item
	sword   *entities.Item
	grenade *entities.Item
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (s *RegistryTestSuite) SetupTest() {
	s.registry = slots.New()
	s.Require().NoError(s.registry.Register(entities.Slot{
		ID: "head-slot", Accepts: []entities.ItemType{entities.ItemTypeArmor}, Position: "head",
	}))
	s.Require().NoError(s.registry.Register(entities.Slot{
		ID: "primary-weapon-slot", Accepts: []entities.ItemType{entities.ItemTypeWeapon},
	}))
	s.Require().NoError(s.registry.Register(entities.Slot{
		ID: "utility-slot-1", Accepts: []entities.ItemType{entities.ItemTypeThrowable, entities.ItemTypeExplosive},
	}))
	s.Require().NoError(s.registry.Register(entities.Slot{
		ID: "utility-slot-2", Accepts: []entities.ItemType{entities.ItemTypeThrowable, entities.ItemTypeExplosive},
	}))

	s.helmet = &entities.Item{ID: "iron-helm", Type: entities.ItemTypeArmor, Payload: entities.ArmorPayload{ArmorType: "head"}}
	s.sword = &entities.Item{ID: "longsword", Type: entities.ItemTypeWeapon}
	s.grenade = &entities.Item{ID: "smoke-bomb", Type: entities.ItemTypeThrowable}
}

func (s *RegistryTestSuite) TestRegisterDuplicate() {
	err := s.registry.Register(entities.Slot{ID: "head-slot"})
	s.Require().Error(err)
	s.True(errors.HasReason(err, errors.ReasonDuplicateSlot))
	s.Len(s.registry.Slots(), 4)
}

func (s *RegistryTestSuite) TestRegisterRequiresID() {
	s.True(errors.IsInvalidArgument(s.registry.Register(entities.Slot{})))
}

func (s *RegistryTestSuite) TestSlotsKeepRegistrationOrder() {
	ids := []string{}
	for _, slot := range s.registry.Slots() {
		ids = append(ids, slot.ID)
	}
	s.Equal([]string{"head-slot", "primary-weapon-slot", "utility-slot-1", "utility-slot-2"}, ids)
}

func (s *RegistryTestSuite) TestOccupy() {
	testCases := []struct {
		name    string
		slotID  string
		item    *entities.Item
		reason  errors.Reason
		wantErr bool
	}{
		{name: "helmet on head", slotID: "head-slot", item: s.helmet},
		{name: "unknown slot", slotID: "tail-slot", item: s.helmet, wantErr: true, reason: errors.ReasonSlotNotFound},
		{name: "weapon on head", slotID: "head-slot", item: s.sword, wantErr: true, reason: errors.ReasonTypeMismatch},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			err := s.registry.Occupy(tc.slotID, tc.item)
			if tc.wantErr {
				s.Require().Error(err)
				s.True(errors.HasReason(err, tc.reason))
				s.Empty(s.registry.Occupancy())
				return
			}
			s.Require().NoError(err)
			occupant, ok := s.registry.OccupantOf(tc.slotID)
			s.True(ok)
			s.Equal(tc.item.ID, occupant)
		})
	}
}

func (s *RegistryTestSuite) TestTypeMismatchKeepsOccupant() {
	s.Require().NoError(s.registry.Occupy("head-slot", s.helmet))

	err := s.registry.Occupy("head-slot", s.sword)
	s.True(errors.HasReason(err, errors.ReasonTypeMismatch))

	occupant, ok := s.registry.OccupantOf("head-slot")
	s.True(ok)
	s.Equal("iron-helm", occupant)
}

func (s *RegistryTestSuite) TestVacateIsIdempotent() {
	s.registry.Vacate("head-slot")
	s.registry.Vacate("missing-slot")
	s.Empty(s.registry.Occupancy())

	s.Require().NoError(s.registry.Occupy("head-slot", s.helmet))
	s.registry.Vacate("head-slot")
	s.registry.Vacate("head-slot")

	_, ok := s.registry.OccupantOf("head-slot")
	s.False(ok)
}

func (s *RegistryTestSuite) TestFindSlotOfReturnsFirstInOrder() {
	s.Require().NoError(s.registry.Occupy("utility-slot-2", s.grenade))
	s.Require().NoError(s.registry.Occupy("utility-slot-1", s.grenade))

	slotID, ok := s.registry.FindSlotOf("smoke-bomb")
	s.True(ok)
	s.Equal("utility-slot-1", slotID)

	_, ok = s.registry.FindSlotOf("longsword")
	s.False(ok)
}

func (s *RegistryTestSuite) TestFirstFree() {
	slotID, ok := s.registry.FirstFree(s.grenade)
	s.True(ok)
	s.Equal("utility-slot-1", slotID)

	s.Require().NoError(s.registry.Occupy("utility-slot-1", s.grenade))
	slotID, ok = s.registry.FirstFree(s.grenade)
	s.True(ok)
	s.Equal("utility-slot-2", slotID)

	s.Require().NoError(s.registry.Occupy("utility-slot-2", s.grenade))
	_, ok = s.registry.FirstFree(s.grenade)
	s.False(ok)
}

func (s *RegistryTestSuite) TestResetKeepsLayout() {
	s.Require().NoError(s.registry.Occupy("head-slot", s.helmet))
	s.registry.Reset()

	s.Empty(s.registry.Occupancy())
	s.Len(s.registry.Slots(), 4)
}
