package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/ledger"
)

type LedgerTestSuite struct {
	suite.Suite
	ledger *ledger.Ledger
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (s *LedgerTestSuite) SetupTest() {
	s.ledger = ledger.New()
}

func (s *LedgerTestSuite) TestEmptyLedgerDefaultsToZero() {
	s.Empty(s.ledger.RecomputeAll())
	s.Equal(0, s.ledger.Total("strength"))
	s.Empty(s.ledger.Breakdown("strength"))
}

func (s *LedgerTestSuite) TestTotalsSumEverySource() {
	s.ledger.SetBase("strength", 3)
	s.ledger.SetRaceBonuses(map[string]int{"strength": 2, "health": 4})
	s.ledger.SetClassBonuses(map[string]int{"strength": -1})
	s.ledger.ApplyEquipmentBonus("armor", map[string]int{"strength": 2})
	s.ledger.ApplyEquipmentBonus("weapon", map[string]int{"strength": 1, "agility": -3})

	s.Equal(map[string]int{
		"strength": 7,
		"health":   4,
		"agility":  -3,
	}, s.ledger.RecomputeAll())
	s.Equal(7, s.ledger.Total("Strength"))
}

func (s *LedgerTestSuite) TestBucketsReplaceNotAdd() {
	testCases := []struct {
		name   string
		first  func()
		second func()
	}{
		{
			name:   "race",
			first:  func() { s.ledger.SetRaceBonuses(map[string]int{"strength": 2}) },
			second: func() { s.ledger.SetRaceBonuses(map[string]int{"strength": 5}) },
		},
		{
			name:   "class",
			first:  func() { s.ledger.SetClassBonuses(map[string]int{"strength": 2}) },
			second: func() { s.ledger.SetClassBonuses(map[string]int{"strength": 5}) },
		},
		{
			name:   "armor category",
			first:  func() { s.ledger.ApplyEquipmentBonus("armor", map[string]int{"strength": 2}) },
			second: func() { s.ledger.ApplyEquipmentBonus("armor", map[string]int{"strength": 5}) },
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.SetupTest()
			tc.first()
			tc.second()
			s.Equal(5, s.ledger.Total("strength"))
		})
	}
}

func (s *LedgerTestSuite) TestClearEquipmentBonusRestoresTotals() {
	s.ledger.SetBase("strength", 3)
	before := s.ledger.RecomputeAll()

	s.ledger.ApplyEquipmentBonus("armor", map[string]int{"strength": 2, "health": 1})
	s.ledger.ClearEquipmentBonus("armor")

	after := s.ledger.RecomputeAll()
	s.Equal(before["strength"], after["strength"])
	s.Equal(0, after["health"])
	s.Contains(s.ledger.Equipment(), entities.Category("armor"))
	s.Empty(s.ledger.EquipmentBucket("armor"))
}

func (s *LedgerTestSuite) TestNegativeTotalsAreNotClamped() {
	s.ledger.SetClassBonuses(map[string]int{"agility": -4})
	s.ledger.SetBase("agility", 1)
	s.Equal(-3, s.ledger.Total("agility"))
}

func (s *LedgerTestSuite) TestStatNamesAreNormalized() {
	s.ledger.SetBase("Lock Picking", 1)
	s.ledger.ApplyEquipmentBonus("utility", map[string]int{"lock-picking": 2})
	s.Equal(3, s.ledger.Total("lock picking"))
}

func (s *LedgerTestSuite) TestBreakdown() {
	s.ledger.SetBase("strength", 3)
	s.ledger.SetClassBonuses(map[string]int{"strength": 1})
	s.ledger.ApplyEquipmentBonus("weapon", map[string]int{"strength": 1})
	s.ledger.ApplyEquipmentBonus("armor", map[string]int{"strength": 2})

	s.Equal([]ledger.Contribution{
		{Source: ledger.SourceBase, Value: 3},
		{Source: ledger.SourceClass, Value: 1},
		{Source: ledger.EquipmentSource("armor"), Value: 2},
		{Source: ledger.EquipmentSource("weapon"), Value: 1},
	}, s.ledger.Breakdown("strength"))
}

func (s *LedgerTestSuite) TestCopiesAreDetached() {
	s.ledger.SetBase("strength", 3)
	s.ledger.ApplyEquipmentBonus("armor", map[string]int{"health": 2})

	base := s.ledger.Base()
	base["strength"] = 99
	equipment := s.ledger.Equipment()
	equipment["armor"]["health"] = 99

	s.Equal(3, s.ledger.Total("strength"))
	s.Equal(2, s.ledger.Total("health"))
}

func (s *LedgerTestSuite) TestRestoreEquipmentAndReset() {
	s.ledger.ApplyEquipmentBonus("weapon", map[string]int{"strength": 9})
	s.ledger.RestoreEquipment(map[entities.Category]map[string]int{
		"armor": {"strength": 2},
	})

	s.Equal(2, s.ledger.Total("strength"))
	s.NotContains(s.ledger.Equipment(), entities.Category("weapon"))

	s.ledger.SetBase("strength", 1)
	s.ledger.Reset()
	s.Empty(s.ledger.RecomputeAll())
	s.Empty(s.ledger.Equipment())
}
