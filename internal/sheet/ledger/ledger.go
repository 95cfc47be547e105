// Package ledger keeps the per-source bonus buckets of a sheet and derives
// stat totals from them.
//
// A total is never stored. RecomputeAll sums base, race, class and every
// equipment category bucket on each call, so totals cannot drift from the
// buckets. Equipment buckets are keyed by item category, not by slot: two
// items of the same category replace each other's contribution instead of
// stacking.
package ledger

import (
	"sort"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
)

// Source names a bonus contributor
type Source string

// Non-equipment sources
const (
	SourceBase  Source = "base"
	SourceRace  Source = "race"
	SourceClass Source = "class"
)

// EquipmentSource returns the source name of a category bucket
func EquipmentSource(category entities.Category) Source {
	return Source("equipment:" + string(category))
}

// Ledger holds the bonus buckets. Missing entries read as zero.
type Ledger struct {
	base      map[string]int
	race      map[string]int
	class     map[string]int
	equipment map[entities.Category]map[string]int
}

// New creates an empty ledger
func New() *Ledger {
	return &Ledger{
		base:      map[string]int{},
		race:      map[string]int{},
		class:     map[string]int{},
		equipment: map[entities.Category]map[string]int{},
	}
}

// SetBase sets one base score
func (l *Ledger) SetBase(stat string, value int) {
	l.base[entities.NormalizeStat(stat)] = value
}

// SetBaseAll replaces the whole base bucket
func (l *Ledger) SetBaseAll(scores map[string]int) {
	l.base = entities.NormalizeStats(scores)
}

// SetRaceBonuses replaces the race bucket
func (l *Ledger) SetRaceBonuses(bonuses map[string]int) {
	l.race = entities.NormalizeStats(bonuses)
}

// SetClassBonuses replaces the class bucket
func (l *Ledger) SetClassBonuses(bonuses map[string]int) {
	l.class = entities.NormalizeStats(bonuses)
}

// ApplyEquipmentBonus replaces the bucket of a category
func (l *Ledger) ApplyEquipmentBonus(category entities.Category, bonuses map[string]int) {
	l.equipment[category] = entities.NormalizeStats(bonuses)
}

// ClearEquipmentBonus empties the bucket of a category. The bucket itself
// stays so snapshots keep listing the category.
func (l *Ledger) ClearEquipmentBonus(category entities.Category) {
	l.equipment[category] = map[string]int{}
}

// RestoreEquipment replaces every category bucket at once
func (l *Ledger) RestoreEquipment(buckets map[entities.Category]map[string]int) {
	l.equipment = make(map[entities.Category]map[string]int, len(buckets))
	for category, bonuses := range buckets {
		l.equipment[category] = entities.NormalizeStats(bonuses)
	}
}

// Total returns the current total of one stat
func (l *Ledger) Total(stat string) int {
	stat = entities.NormalizeStat(stat)
	total := l.base[stat] + l.race[stat] + l.class[stat]
	for _, bonuses := range l.equipment {
		total += bonuses[stat]
	}
	return total
}

// RecomputeAll returns the total of every stat any bucket mentions
func (l *Ledger) RecomputeAll() map[string]int {
	totals := map[string]int{}
	for _, bucket := range l.buckets() {
		for stat, v := range bucket {
			totals[stat] += v
		}
	}
	return totals
}

// Contribution is one source's share of a stat
type Contribution struct {
	Source Source
	Value  int
}

// Breakdown lists the non-zero contributions to a stat. Equipment sources
// follow base, race and class in category order.
func (l *Ledger) Breakdown(stat string) []Contribution {
	stat = entities.NormalizeStat(stat)

	var out []Contribution
	add := func(source Source, v int) {
		if v != 0 {
			out = append(out, Contribution{Source: source, Value: v})
		}
	}
	add(SourceBase, l.base[stat])
	add(SourceRace, l.race[stat])
	add(SourceClass, l.class[stat])
	for _, category := range l.categories() {
		add(EquipmentSource(category), l.equipment[category][stat])
	}
	return out
}

// Base returns a copy of the base bucket
func (l *Ledger) Base() map[string]int { return copyBucket(l.base) }

// Race returns a copy of the race bucket
func (l *Ledger) Race() map[string]int { return copyBucket(l.race) }

// Class returns a copy of the class bucket
func (l *Ledger) Class() map[string]int { return copyBucket(l.class) }

// Equipment returns a copy of every category bucket
func (l *Ledger) Equipment() map[entities.Category]map[string]int {
	out := make(map[entities.Category]map[string]int, len(l.equipment))
	for category, bonuses := range l.equipment {
		out[category] = copyBucket(bonuses)
	}
	return out
}

// EquipmentBucket returns a copy of one category bucket
func (l *Ledger) EquipmentBucket(category entities.Category) map[string]int {
	return copyBucket(l.equipment[category])
}

// Reset empties every bucket
func (l *Ledger) Reset() {
	l.base = map[string]int{}
	l.race = map[string]int{}
	l.class = map[string]int{}
	l.equipment = map[entities.Category]map[string]int{}
}

func (l *Ledger) buckets() []map[string]int {
	out := []map[string]int{l.base, l.race, l.class}
	for _, category := range l.categories() {
		out = append(out, l.equipment[category])
	}
	return out
}

func (l *Ledger) categories() []entities.Category {
	out := make([]entities.Category, 0, len(l.equipment))
	for category := range l.equipment {
		out = append(out, category)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func copyBucket(in map[string]int) map[string]int {
	out := make(map[string]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
