package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loadout/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

type CatalogTestSuite struct {
	suite.Suite
	ctx     context.Context
	catalog *catalog.Catalog
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	s.ctx = context.Background()

	var err error
	s.catalog, err = catalog.New(&catalog.Config{Dir: "testdata"})
	s.Require().NoError(err)
}

func (s *CatalogTestSuite) TestItemsLoadFromEveryFile() {
	items, err := s.catalog.ListItems(s.ctx, nil)
	s.Require().NoError(err)

	ids := []string{}
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	// malformed broken-blade and unlabelled are skipped
	s.Equal([]string{"fire-flask", "longsword", "minor", "smoke-bomb"}, ids)
}

func (s *CatalogTestSuite) TestListItemsByType() {
	items, err := s.catalog.ListItems(s.ctx, &catalog.ListItemsInput{ItemType: entities.ItemTypeThrowable})
	s.Require().NoError(err)
	s.Len(items, 2)
}

func (s *CatalogTestSuite) TestListItemsByQuery() {
	testCases := []struct {
		name     string
		input    *catalog.ListItemsInput
		expected []string
	}{
		{
			name:     "name ignores case",
			input:    &catalog.ListItemsInput{Query: "SMOKE"},
			expected: []string{"smoke-bomb"},
		},
		{
			name:     "id substring",
			input:    &catalog.ListItemsInput{Query: "flask"},
			expected: []string{"fire-flask"},
		},
		{
			name:     "combined with type",
			input:    &catalog.ListItemsInput{ItemType: entities.ItemTypeWeapon, Query: "sword"},
			expected: []string{"longsword"},
		},
		{
			name:     "type excludes match",
			input:    &catalog.ListItemsInput{ItemType: entities.ItemTypeThrowable, Query: "sword"},
			expected: []string{},
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			items, err := s.catalog.ListItems(s.ctx, tc.input)
			s.Require().NoError(err)

			ids := make([]string, 0, len(items))
			for _, item := range items {
				ids = append(ids, item.ID)
			}
			s.Equal(tc.expected, ids)
		})
	}
}

func (s *CatalogTestSuite) TestWeaponPayload() {
	item, err := s.catalog.GetItem(s.ctx, "longsword")
	s.Require().NoError(err)

	s.Equal(entities.ItemTypeWeapon, item.Type)
	s.Equal(map[string]int{"strength": 1}, item.SkillBonus)
	s.Equal([]string{"versatile"}, item.Traits)
	s.Equal(entities.WeaponPayload{DamageAmount: "1d8", DamageType: "slashing"}, item.Payload)
}

func (s *CatalogTestSuite) TestNestedGroupsAndGenericPayload() {
	item, err := s.catalog.GetItem(s.ctx, "minor")
	s.Require().NoError(err)

	s.Equal("Minor Healing Potion", item.Name)
	s.Equal(map[string]int{"health": 5}, item.VitalBonus)
	s.Equal(entities.GenericPayload{
		Type:   entities.ItemTypePotion,
		Fields: map[string]string{"potency": "minor"},
	}, item.Payload)

	throwable, err := s.catalog.GetItem(s.ctx, "smoke-bomb")
	s.Require().NoError(err)
	s.Equal(entities.ThrowablePayload{
		Duration:         "1 minute",
		Radius:           "10 ft",
		TriggerMechanism: "impact",
	}, throwable.Payload)
}

func (s *CatalogTestSuite) TestArchetypes() {
	race, err := s.catalog.GetRace(s.ctx, "dwarf")
	s.Require().NoError(err)
	s.Equal(map[string]int{"health": 2, "endurance": 1}, race.VitalBonus)
	s.Equal(map[string]int{"strength": 1}, race.SkillBonus)
	s.Equal([]string{"darkvision"}, race.Abilities)

	class, err := s.catalog.GetClass(s.ctx, "warrior")
	s.Require().NoError(err)
	s.Equal(map[string]int{"strength": 2, "agility": -1}, class.SkillBonus)

	races, err := s.catalog.ListRaces(s.ctx)
	s.Require().NoError(err)
	s.Len(races, 1)

	classes, err := s.catalog.ListClasses(s.ctx)
	s.Require().NoError(err)
	s.Len(classes, 1)
}

func (s *CatalogTestSuite) TestNotFound() {
	_, err := s.catalog.GetItem(s.ctx, "excalibur")
	s.True(errors.HasReason(err, errors.ReasonItemNotFound))

	_, err = s.catalog.GetRace(s.ctx, "nameless")
	s.True(errors.IsNotFound(err))

	_, err = s.catalog.GetClass(s.ctx, "bard")
	s.True(errors.IsNotFound(err))
}

func (s *CatalogTestSuite) TestEmptyCatalog() {
	c, err := catalog.New(&catalog.Config{})
	s.Require().NoError(err)

	_, err = c.GetItem(s.ctx, "longsword")
	s.True(errors.IsNotFound(err))

	items, err := c.ListItems(s.ctx, nil)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *CatalogTestSuite) TestConfigValidate() {
	_, err := catalog.New(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = catalog.New(&catalog.Config{Dir: "testdata/missing"})
	s.True(errors.IsInvalidArgument(err))

	_, err = catalog.New(&catalog.Config{Dir: "testdata/races.json"})
	s.True(errors.IsInvalidArgument(err))
}

func (s *CatalogTestSuite) TestLoadItemsRejectsBadDocuments() {
	c := catalog.NewEmpty()
	s.True(errors.IsInvalidArgument(c.LoadItems([]byte(`{"a":`), "truncated")))
	s.True(errors.IsInvalidArgument(c.LoadItems([]byte(`[1,2]`), "array")))
}

func (s *CatalogTestSuite) TestPutReplaces() {
	s.catalog.PutItem(&entities.Item{ID: "longsword", Name: "Rusty Longsword", Type: entities.ItemTypeWeapon})

	item, err := s.catalog.GetItem(s.ctx, "longsword")
	s.Require().NoError(err)
	s.Equal("Rusty Longsword", item.Name)
}
