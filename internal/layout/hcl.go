package layout

import (
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// hclLayoutFile is the top-level structure of a layout file for decoding.
type hclLayoutFile struct {
	Vitals         []string   `hcl:"vitals,optional"`
	Skills         []string   `hcl:"skills,optional"`
	StartingPoints *hclPoints `hcl:"starting_points,block"`
	Slots          []*hclSlot `hcl:"slot,block"`
}

type hclPoints struct {
	Vital int `hcl:"vital"`
	Skill int `hcl:"skill"`
}

type hclSlot struct {
	ID       string   `hcl:"id,label"`
	Label    string   `hcl:"label,optional"`
	Accepts  []string `hcl:"accepts"`
	Position string   `hcl:"position,optional"`
}

// LoadFile parses an HCL layout file
func LoadFile(path string) (entities.Layout, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return entities.Layout{}, errors.WrapWithCode(diags, errors.CodeInvalidArgument, "failed to parse layout file "+path)
	}
	return decode(file, path)
}

// Parse parses HCL layout source, filename is used in diagnostics
func Parse(src []byte, filename string) (entities.Layout, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return entities.Layout{}, errors.WrapWithCode(diags, errors.CodeInvalidArgument, "failed to parse layout "+filename)
	}
	return decode(file, filename)
}

func decode(file *hcl.File, filename string) (entities.Layout, error) {
	var parsed hclLayoutFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return entities.Layout{}, errors.WrapWithCode(diags, errors.CodeInvalidArgument, "failed to decode layout "+filename)
	}

	// Missing vocabulary and budget fall back to the built-in values
	out := entities.Layout{
		Vitals:         parsed.Vitals,
		Skills:         parsed.Skills,
		StartingPoints: entities.Points{Vital: DefaultStartingVital, Skill: DefaultStartingSkill},
	}
	if len(out.Vitals) == 0 {
		out.Vitals = append([]string(nil), DefaultVitals...)
	}
	if len(out.Skills) == 0 {
		out.Skills = append([]string(nil), DefaultSkills...)
	}
	if parsed.StartingPoints != nil {
		out.StartingPoints = entities.Points{Vital: parsed.StartingPoints.Vital, Skill: parsed.StartingPoints.Skill}
	}

	vb := errors.NewValidationBuilder()
	seen := make(map[string]bool, len(parsed.Slots))
	for _, s := range parsed.Slots {
		if seen[s.ID] {
			vb.Field("slot."+s.ID, "duplicate slot id")
			continue
		}
		seen[s.ID] = true
		if len(s.Accepts) == 0 {
			vb.Field("slot."+s.ID+".accepts", "at least one item type is required")
			continue
		}

		slot := entities.Slot{
			ID:       s.ID,
			Label:    s.Label,
			Position: s.Position,
		}
		if slot.Label == "" {
			slot.Label = s.ID
		}
		for _, tag := range s.Accepts {
			slot.Accepts = append(slot.Accepts, entities.ParseItemType(tag))
		}
		out.Slots = append(out.Slots, slot)
	}
	if len(parsed.Slots) == 0 {
		vb.Field("slot", "at least one slot is required")
	}
	if out.StartingPoints.Vital < 0 || out.StartingPoints.Skill < 0 {
		vb.Field("starting_points", "must not be negative")
	}
	if err := vb.Build(); err != nil {
		return entities.Layout{}, errors.Wrapf(err, "invalid layout %s", filename)
	}

	slog.Debug("Loaded layout",
		"file", filename,
		"slots", len(out.Slots),
		"vitals", len(out.Vitals),
		"skills", len(out.Skills))
	return out, nil
}
