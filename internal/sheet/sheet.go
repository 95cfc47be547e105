// Package sheet bundles the per-character registries into one context object.
//
// A Sheet owns exactly one slot registry, bonus ledger, grant registry,
// action book and progression tracker. It is not safe for concurrent use;
// callers serialize commands on a sheet.
package sheet

import (
	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/actions"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/grants"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/ledger"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/progression"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/slots"
)

// Sheet is the full mutable state of one character
type Sheet struct {
	ID     string
	Layout entities.Layout

	// RaceID and ClassID are the selected archetypes, empty when none
	RaceID  string
	ClassID string

	Slots       *slots.Registry
	Ledger      *ledger.Ledger
	Grants      *grants.Registry
	Actions     *actions.Book
	Progression *progression.Tracker
}

// New registers the layout's slots on a fresh sheet
func New(id string, layout entities.Layout) (*Sheet, error) {
	if id == "" {
		return nil, errors.InvalidArgument("sheet id is required")
	}

	s := &Sheet{
		ID:          id,
		Layout:      layout,
		Slots:       slots.New(),
		Ledger:      ledger.New(),
		Grants:      grants.New(),
		Actions:     actions.New(),
		Progression: progression.New(layout.StartingPoints),
	}
	for _, slot := range layout.Slots {
		if err := s.Slots.Register(slot); err != nil {
			return nil, errors.Wrapf(err, "failed to register layout slot %s", slot.ID)
		}
	}
	return s, nil
}

// Clear returns the sheet to its freshly created state. The layout stays.
func (s *Sheet) Clear() {
	s.RaceID = ""
	s.ClassID = ""
	s.Slots.Reset()
	s.Ledger.Reset()
	s.Grants.Reset()
	s.Actions.Reset()
	s.Progression = progression.New(s.Layout.StartingPoints)
}
