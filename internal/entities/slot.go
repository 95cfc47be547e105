package entities

import "strings"

// Slot is a statically laid out equipment position
type Slot struct {
	ID      string
	Label   string
	Accepts []ItemType
	// Position restricts armor to one body position when set, e.g. "head"
	Position string
}

// AcceptsItem checks whether the item may occupy this slot
func (s *Slot) AcceptsItem(item *Item) bool {
	if item == nil {
		return false
	}

	accepted := false
	for _, t := range s.Accepts {
		if strings.EqualFold(string(t), string(item.Type)) {
			accepted = true
			break
		}
	}
	if !accepted {
		return false
	}

	if s.Position == "" {
		return true
	}
	armor, ok := item.Payload.(ArmorPayload)
	if !ok || armor.ArmorType == "" {
		return true
	}
	return strings.EqualFold(NormalizeStat(armor.ArmorType), NormalizeStat(s.Position))
}

// Layout is the static slot arrangement and stat vocabulary of a sheet
type Layout struct {
	Slots          []Slot
	Vitals         []string
	Skills         []string
	StartingPoints Points
}

// PoolOf returns which budget a stat draws from
func (l *Layout) PoolOf(stat string) (Pool, bool) {
	normalized := NormalizeStat(stat)
	for _, v := range l.Vitals {
		if NormalizeStat(v) == normalized {
			return PoolVital, true
		}
	}
	for _, sk := range l.Skills {
		if NormalizeStat(sk) == normalized {
			return PoolSkill, true
		}
	}
	return "", false
}
