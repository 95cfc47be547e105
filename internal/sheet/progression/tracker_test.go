package progression_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/progression"
)

type TrackerTestSuite struct {
	suite.Suite
	tracker *progression.Tracker
}

func TestTrackerSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) SetupTest() {
	s.tracker = progression.New(entities.Points{Vital: 12, Skill: 18})
}

func (s *TrackerTestSuite) TestRateFor() {
	testCases := []struct {
		level    int
		expected entities.Points
	}{
		{level: 1, expected: entities.Points{Vital: 1, Skill: 2}},
		{level: 10, expected: entities.Points{Vital: 1, Skill: 2}},
		{level: 11, expected: entities.Points{Vital: 2, Skill: 4}},
		{level: 55, expected: entities.Points{Vital: 6, Skill: 12}},
		{level: 100, expected: entities.Points{Vital: 10, Skill: 20}},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, progression.RateFor(tc.level), "level %d", tc.level)
	}
}

func (s *TrackerTestSuite) TestSetLevelAccumulates() {
	delta, err := s.tracker.SetLevel(12)
	s.Require().NoError(err)

	// levels 2..10 at 1/2 plus 11, 12 at 2/4
	s.Equal(entities.Points{Vital: 13, Skill: 26}, delta)
	s.Equal(entities.Points{Vital: 25, Skill: 44}, s.tracker.Available())
	s.Equal(12, s.tracker.Level())
}

func (s *TrackerTestSuite) TestLevelRoundTrip() {
	start := s.tracker.Available()

	_, err := s.tracker.SetLevel(50)
	s.Require().NoError(err)
	s.NotEqual(start, s.tracker.Available())

	_, err = s.tracker.SetLevel(1)
	s.Require().NoError(err)
	s.Equal(start, s.tracker.Available())
}

func (s *TrackerTestSuite) TestPathIndependence() {
	for _, level := range []int{37, 12, 90, 64} {
		_, err := s.tracker.SetLevel(level)
		s.Require().NoError(err)
	}

	direct := progression.New(entities.Points{Vital: 12, Skill: 18})
	_, err := direct.SetLevel(64)
	s.Require().NoError(err)

	s.Equal(direct.Available(), s.tracker.Available())
}

func (s *TrackerTestSuite) TestSetLevelOutOfRange() {
	for _, level := range []int{0, -3, 101} {
		_, err := s.tracker.SetLevel(level)
		s.True(errors.IsInvalidArgument(err), "level %d", level)
	}
	s.Equal(1, s.tracker.Level())
	s.Equal(entities.Points{Vital: 12, Skill: 18}, s.tracker.Available())
}

func (s *TrackerTestSuite) TestSpendAndRefund() {
	s.tracker.SetAvailable(entities.Points{Vital: 1, Skill: 0})

	s.Require().NoError(s.tracker.Spend(entities.PoolVital))
	s.True(errors.IsResourceExhausted(s.tracker.Spend(entities.PoolVital)))
	s.True(errors.IsResourceExhausted(s.tracker.Spend(entities.PoolSkill)))
	s.True(errors.IsInvalidArgument(s.tracker.Spend(entities.Pool("luck"))))

	s.Require().NoError(s.tracker.Refund(entities.PoolSkill))
	s.Equal(entities.Points{Vital: 0, Skill: 1}, s.tracker.Available())
}

func (s *TrackerTestSuite) TestRestore() {
	s.Require().NoError(s.tracker.Restore(40, entities.Points{Vital: 3, Skill: 7}))
	s.Equal(40, s.tracker.Level())
	s.Equal(entities.Points{Vital: 3, Skill: 7}, s.tracker.Available())

	s.True(errors.IsInvalidArgument(s.tracker.Restore(0, entities.Points{})))
}
