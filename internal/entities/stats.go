package entities

import "strings"

// Pool is the allocation budget a stat draws from
type Pool string

// Point pools
const (
	PoolVital Pool = "vital"
	PoolSkill Pool = "skill"
)

// NormalizeStat lowercases a stat name and collapses whitespace runs into
// single dashes so "Heavy Armor" and "heavy-armor" share a ledger entry.
func NormalizeStat(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// NormalizeStats applies NormalizeStat to every key, summing collisions
func NormalizeStats(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for stat, v := range in {
		out[NormalizeStat(stat)] += v
	}
	return out
}

// Points is an available-point pair
type Points struct {
	Vital int `json:"vital"`
	Skill int `json:"skill"`
}

// Get returns the points of a pool
func (p Points) Get(pool Pool) int {
	if pool == PoolVital {
		return p.Vital
	}
	return p.Skill
}
