package sheet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet"
)

func testLayout() entities.Layout {
	return entities.Layout{
		Slots: []entities.Slot{
			{ID: "head-slot", Accepts: []entities.ItemType{entities.ItemTypeArmor}, Position: "head"},
			{ID: "primary-weapon-slot", Accepts: []entities.ItemType{entities.ItemTypeWeapon}},
		},
		Vitals:         []string{"health"},
		Skills:         []string{"strength"},
		StartingPoints: entities.Points{Vital: 12, Skill: 18},
	}
}

func TestNew(t *testing.T) {
	s, err := sheet.New("char-1", testLayout())
	require.NoError(t, err)

	assert.Len(t, s.Slots.Slots(), 2)
	assert.Equal(t, 1, s.Progression.Level())
	assert.Equal(t, entities.Points{Vital: 12, Skill: 18}, s.Progression.Available())
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := sheet.New("", testLayout())
	assert.True(t, errors.IsInvalidArgument(err))

	layout := testLayout()
	layout.Slots = append(layout.Slots, layout.Slots[0])
	_, err = sheet.New("char-1", layout)
	assert.True(t, errors.HasReason(err, errors.ReasonDuplicateSlot))
}

func TestClear(t *testing.T) {
	s, err := sheet.New("char-1", testLayout())
	require.NoError(t, err)

	s.RaceID = "dwarf"
	s.Ledger.SetBase("strength", 4)
	require.NoError(t, s.Grants.Grant(entities.SourceRace, entities.GrantKindAbility, []string{"darkvision"}))
	require.NoError(t, s.Slots.Occupy("primary-weapon-slot", &entities.Item{ID: "axe", Type: entities.ItemTypeWeapon}))
	_, err = s.Progression.SetLevel(20)
	require.NoError(t, err)

	s.Clear()

	assert.Empty(t, s.RaceID)
	assert.Empty(t, s.Ledger.RecomputeAll())
	assert.Empty(t, s.Grants.ActiveIDs(entities.GrantKindAbility))
	assert.Empty(t, s.Slots.Occupancy())
	assert.Len(t, s.Slots.Slots(), 2)
	assert.Equal(t, 1, s.Progression.Level())
	assert.Equal(t, entities.Points{Vital: 12, Skill: 18}, s.Progression.Available())
}
