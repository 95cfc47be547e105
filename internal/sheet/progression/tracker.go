// Package progression converts character level into unspent vital and skill
// allocation points.
package progression

import (
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// Level bounds
const (
	MinLevel = 1
	MaxLevel = 100
)

// levelsPerDecile is the width of one rate band
const levelsPerDecile = 10

// RateFor returns the points a single level grants. Level L falls in decile
// d = ceil(L/10); it grants d vital and 2d skill points.
func RateFor(level int) entities.Points {
	d := (level + levelsPerDecile - 1) / levelsPerDecile
	return entities.Points{Vital: d, Skill: 2 * d}
}

// Delta returns the points gained moving from one level to another. Every
// level L with from < L <= to counts, negated when the level drops, so any
// sequence of level changes that returns to its start nets zero.
func Delta(from, to int) entities.Points {
	sign := 1
	if to < from {
		from, to = to, from
		sign = -1
	}

	var out entities.Points
	for level := from + 1; level <= to; level++ {
		rate := RateFor(level)
		out.Vital += rate.Vital
		out.Skill += rate.Skill
	}
	out.Vital *= sign
	out.Skill *= sign
	return out
}

// Tracker holds the level and the unspent points per pool. Available points
// may go negative when the level drops below what was already spent.
type Tracker struct {
	level     int
	available entities.Points
}

// New creates a level 1 tracker with the starting budget
func New(starting entities.Points) *Tracker {
	return &Tracker{
		level:     MinLevel,
		available: starting,
	}
}

// Level returns the current level
func (t *Tracker) Level() int {
	return t.level
}

// Available returns the unspent points
func (t *Tracker) Available() entities.Points {
	return t.available
}

// SetLevel moves to a new level and adjusts available points by the rates
// of every level crossed. It returns the applied delta.
func (t *Tracker) SetLevel(level int) (entities.Points, error) {
	if level < MinLevel || level > MaxLevel {
		return entities.Points{}, errors.InvalidArgumentf("level must be between %d and %d, got %d", MinLevel, MaxLevel, level).
			WithMeta("level", level)
	}

	delta := Delta(t.level, level)
	t.available.Vital += delta.Vital
	t.available.Skill += delta.Skill
	t.level = level
	return delta, nil
}

// Spend takes one point from the pool
func (t *Tracker) Spend(pool entities.Pool) error {
	switch pool {
	case entities.PoolVital:
		if t.available.Vital < 1 {
			return errors.ResourceExhaustedf("no %s points available", pool).WithMeta("pool", string(pool))
		}
		t.available.Vital--
	case entities.PoolSkill:
		if t.available.Skill < 1 {
			return errors.ResourceExhaustedf("no %s points available", pool).WithMeta("pool", string(pool))
		}
		t.available.Skill--
	default:
		return errors.InvalidArgumentf("unknown pool %q", pool)
	}
	return nil
}

// Refund returns one point to the pool
func (t *Tracker) Refund(pool entities.Pool) error {
	switch pool {
	case entities.PoolVital:
		t.available.Vital++
	case entities.PoolSkill:
		t.available.Skill++
	default:
		return errors.InvalidArgumentf("unknown pool %q", pool)
	}
	return nil
}

// Restore sets level and available points directly, as loaded from a snapshot
func (t *Tracker) Restore(level int, available entities.Points) error {
	if level < MinLevel || level > MaxLevel {
		return errors.InvalidArgumentf("level must be between %d and %d, got %d", MinLevel, MaxLevel, level).
			WithMeta("level", level)
	}
	t.level = level
	t.available = available
	return nil
}

// SetAvailable overwrites the unspent points
func (t *Tracker) SetAvailable(available entities.Points) {
	t.available = available
}
