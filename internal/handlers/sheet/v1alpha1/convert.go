package v1alpha1

import (
	"encoding/json"
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet/ledger"
)

// Request keys
const (
	keyCharacterID = "character_id"
	keySlotID      = "slot_id"
	keyItemID      = "item_id"
	keyItemType    = "item_type"
	keyQuery       = "query"
	keyLevel       = "level"
	keyRaceID      = "race_id"
	keyClassID     = "class_id"
	keyStat        = "stat"
	keyValue       = "value"
	keySnapshot    = "snapshot"
)

func stringField(req *structpb.Struct, key string) (string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return "", nil
	}
	if _, isString := v.GetKind().(*structpb.Value_StringValue); !isString {
		return "", errors.InvalidArgumentf("%s must be a string", key).WithMeta("field", key)
	}
	return v.GetStringValue(), nil
}

func requiredString(req *structpb.Struct, key string) (string, error) {
	s, err := stringField(req, key)
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", errors.InvalidArgumentf("%s is required", key).WithMeta("field", key)
	}
	return s, nil
}

func intField(req *structpb.Struct, key string) (int, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, errors.InvalidArgumentf("%s is required", key).WithMeta("field", key)
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); !isNumber {
		return 0, errors.InvalidArgumentf("%s must be a number", key).WithMeta("field", key)
	}
	n := v.GetNumberValue()
	if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
		return 0, errors.InvalidArgumentf("%s must be an integer", key).WithMeta("field", key)
	}
	return int(n), nil
}

func snapshotField(req *structpb.Struct) (*entities.Snapshot, error) {
	v, ok := req.GetFields()[keySnapshot]
	if !ok || v.GetStructValue() == nil {
		return nil, errors.InvalidArgumentf("%s is required", keySnapshot).WithMeta("field", keySnapshot)
	}
	data, err := v.GetStructValue().MarshalJSON()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "snapshot is not valid JSON")
	}
	var snap entities.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "snapshot does not match the snapshot format")
	}
	return &snap, nil
}

// toStruct encodes a JSON-tagged value as a Struct
func toStruct(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	out := &structpb.Struct{}
	if err := out.UnmarshalJSON(data); err != nil {
		return nil, errors.Wrap(err, "failed to encode response")
	}
	return out, nil
}

type viewMessage struct {
	CharacterID     string                          `json:"character_id"`
	Level           int                             `json:"level"`
	AvailablePoints entities.Points                 `json:"available_points"`
	RaceID          string                          `json:"race_id,omitempty"`
	ClassID         string                          `json:"class_id,omitempty"`
	Vitals          map[string]int                  `json:"vitals"`
	Skills          map[string]int                  `json:"skills"`
	Totals          map[string]int                  `json:"totals"`
	Active          map[entities.GrantKind][]string `json:"active"`
	Actions         []entities.Action               `json:"actions"`
	Occupancy       map[string]string               `json:"occupancy"`
}

func toViewMessage(v *entities.View) *viewMessage {
	if v == nil {
		return nil
	}
	active := make(map[entities.GrantKind][]string, len(v.Active))
	for kind, ids := range v.Active {
		if ids == nil {
			ids = []string{}
		}
		active[kind] = ids
	}
	actions := v.Actions
	if actions == nil {
		actions = []entities.Action{}
	}
	return &viewMessage{
		CharacterID:     v.CharacterID,
		Level:           v.Level,
		AvailablePoints: v.AvailablePoints,
		RaceID:          v.RaceID,
		ClassID:         v.ClassID,
		Vitals:          v.Vitals,
		Skills:          v.Skills,
		Totals:          v.Totals,
		Active:          active,
		Actions:         actions,
		Occupancy:       v.Occupancy,
	}
}

type contributionMessage struct {
	Source ledger.Source `json:"source"`
	Value  int           `json:"value"`
}

type itemMessage struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Type          string         `json:"item_type"`
	VitalBonus    map[string]int `json:"vital_bonus,omitempty"`
	SkillBonus    map[string]int `json:"skill_bonus,omitempty"`
	Abilities     []string       `json:"abilities,omitempty"`
	Traits        []string       `json:"traits,omitempty"`
	SpellsGranted []string       `json:"spells_granted,omitempty"`
}

func toItemMessage(item *entities.Item) itemMessage {
	return itemMessage{
		ID:            item.ID,
		Name:          item.Name,
		Type:          item.Type.String(),
		VitalBonus:    item.VitalBonus,
		SkillBonus:    item.SkillBonus,
		Abilities:     item.Abilities,
		Traits:        item.Traits,
		SpellsGranted: item.SpellsGranted,
	}
}

type archetypeMessage struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	VitalBonus    map[string]int `json:"vital_bonus,omitempty"`
	SkillBonus    map[string]int `json:"skill_bonus,omitempty"`
	Abilities     []string       `json:"abilities,omitempty"`
	Traits        []string       `json:"traits,omitempty"`
	SpellsGranted []string       `json:"spells_granted,omitempty"`
}

func toArchetypeMessages(archetypes []*entities.Archetype) []archetypeMessage {
	out := make([]archetypeMessage, 0, len(archetypes))
	for _, a := range archetypes {
		out = append(out, archetypeMessage{
			ID:            a.ID,
			Name:          a.Name,
			VitalBonus:    a.VitalBonus,
			SkillBonus:    a.SkillBonus,
			Abilities:     a.Abilities,
			Traits:        a.Traits,
			SpellsGranted: a.SpellsGranted,
		})
	}
	return out
}
