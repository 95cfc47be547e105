package catalog

import (
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// Fields shared by every item, never copied into a generic payload
var commonItemFields = map[string]bool{
	"name":          true,
	"itemType":      true,
	"vitalBonus":    true,
	"skillBonus":    true,
	"abilities":     true,
	"traits":        true,
	"spellsGranted": true,
}

// ParseItems walks a catalog document and returns every item in it.
//
// An object carrying both name and itemType is an item keyed by its member
// name. An object carrying neither is a group whose members are walked. An
// object carrying only one of them is malformed and skipped with a warning;
// the rest of the document still loads.
func ParseItems(data []byte, source string) ([]*entities.Item, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidArgumentf("catalog %s is not valid JSON", source)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.InvalidArgumentf("catalog %s must be a JSON object", source)
	}

	var items []*entities.Item
	var walk func(key string, value gjson.Result)
	walk = func(key string, value gjson.Result) {
		if !value.IsObject() {
			return
		}

		name, itemType := value.Get("name"), value.Get("itemType")
		switch {
		case name.Exists() && itemType.Exists():
			item, err := parseItem(key, value)
			if err != nil {
				slog.Warn("Skipping malformed catalog item",
					"source", source,
					"item_id", key,
					"error", err)
				return
			}
			items = append(items, item)
		case name.Exists() || itemType.Exists():
			slog.Warn("Skipping malformed catalog item",
				"source", source,
				"item_id", key,
				"has_name", name.Exists(),
				"has_item_type", itemType.Exists())
		default:
			value.ForEach(func(k, v gjson.Result) bool {
				walk(k.String(), v)
				return true
			})
		}
	}
	root.ForEach(func(k, v gjson.Result) bool {
		walk(k.String(), v)
		return true
	})

	return items, nil
}

func parseItem(key string, value gjson.Result) (*entities.Item, error) {
	name := strings.TrimSpace(value.Get("name").String())
	tag := strings.TrimSpace(value.Get("itemType").String())
	if key == "" || name == "" || tag == "" {
		return nil, errors.InvalidArgument("item id, name and itemType must be non-empty")
	}

	itemType := entities.ParseItemType(tag)
	item := &entities.Item{
		ID:            key,
		Name:          name,
		Type:          itemType,
		VitalBonus:    parseBonus(value.Get("vitalBonus")),
		SkillBonus:    parseBonus(value.Get("skillBonus")),
		Abilities:     parseIDs(value.Get("abilities")),
		Traits:        parseIDs(value.Get("traits")),
		SpellsGranted: parseIDs(value.Get("spellsGranted")),
		Payload:       parsePayload(itemType, value),
	}
	return item, nil
}

func parsePayload(itemType entities.ItemType, value gjson.Result) entities.Payload {
	str := func(path string) string { return value.Get(path).String() }

	switch itemType {
	case entities.ItemTypeWeapon:
		return entities.WeaponPayload{
			DamageAmount: str("damageAmount"),
			DamageType:   str("damageType"),
			Range:        str("range"),
		}
	case entities.ItemTypeArmor:
		return entities.ArmorPayload{
			ArmorType:  str("armorType"),
			ArmorValue: int(value.Get("armorValue").Int()),
		}
	case entities.ItemTypeScroll:
		return entities.ScrollPayload{
			Damage:               str("damage"),
			DamageType:           str("damageType"),
			CastingTime:          str("castingTime"),
			AbilityPointCost:     int(value.Get("abilityPointCost").Int()),
			Cooldown:             str("cooldown"),
			Scaling:              str("scaling"),
			SpellCastingModifier: str("spellCastingModifier"),
		}
	case entities.ItemTypeExplosive:
		return entities.ExplosivePayload{
			Damage:           str("damage"),
			DamageType:       str("damageType"),
			Duration:         str("duration"),
			Range:            str("range"),
			BlastRadius:      str("blastRadius"),
			TriggerMechanism: str("triggerMechanism"),
		}
	case entities.ItemTypeThrowable:
		return entities.ThrowablePayload{
			Damage:           str("damage"),
			DamageType:       str("damageType"),
			Duration:         str("duration"),
			Range:            str("range"),
			Radius:           str("radius"),
			TriggerMechanism: str("triggerMechanism"),
		}
	}

	fields := map[string]string{}
	value.ForEach(func(k, v gjson.Result) bool {
		if commonItemFields[k.String()] || v.IsObject() || v.IsArray() {
			return true
		}
		fields[k.String()] = v.String()
		return true
	})
	return entities.GenericPayload{Type: itemType, Fields: fields}
}

// parseBonus accepts either {"Strength": 2} or ["Strength: 2"]. Entries that
// do not carry an integer are dropped.
func parseBonus(value gjson.Result) map[string]int {
	if !value.Exists() {
		return nil
	}

	out := map[string]int{}
	switch {
	case value.IsObject():
		value.ForEach(func(k, v gjson.Result) bool {
			if n, ok := toInt(v); ok {
				out[entities.NormalizeStat(k.String())] += n
			}
			return true
		})
	case value.IsArray():
		for _, entry := range value.Array() {
			stat, raw, found := strings.Cut(entry.String(), ":")
			if !found {
				continue
			}
			n, err := strconv.Atoi(strings.TrimSpace(raw))
			if err != nil || strings.TrimSpace(stat) == "" {
				continue
			}
			out[entities.NormalizeStat(stat)] += n
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toInt(v gjson.Result) (int, bool) {
	switch v.Type {
	case gjson.Number:
		return int(v.Int()), true
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(v.String()))
		return n, err == nil
	default:
		return 0, false
	}
}

// parseIDs accepts an array of strings or a single comma separated string
func parseIDs(value gjson.Result) []string {
	if !value.Exists() {
		return nil
	}

	var raw []string
	if value.IsArray() {
		for _, v := range value.Array() {
			raw = append(raw, v.String())
		}
	} else {
		raw = strings.Split(value.String(), ",")
	}

	var out []string
	for _, id := range raw {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// ParseArchetypes reads a race or class document keyed by record id.
// Records without a name are skipped with a warning.
func ParseArchetypes(data []byte, source string) ([]*entities.Archetype, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.InvalidArgumentf("catalog %s is not valid JSON", source)
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, errors.InvalidArgumentf("catalog %s must be a JSON object", source)
	}

	var out []*entities.Archetype
	root.ForEach(func(k, v gjson.Result) bool {
		id := k.String()
		name := strings.TrimSpace(v.Get("name").String())
		if !v.IsObject() || name == "" {
			slog.Warn("Skipping malformed catalog record",
				"source", source,
				"record_id", id)
			return true
		}
		out = append(out, &entities.Archetype{
			ID:            id,
			Name:          name,
			VitalBonus:    parseBonus(v.Get("vitalBonus")),
			SkillBonus:    parseBonus(v.Get("skillBonus")),
			Abilities:     parseIDs(v.Get("abilities")),
			Traits:        parseIDs(v.Get("traits")),
			SpellsGranted: parseIDs(v.Get("spellsGranted")),
		})
		return true
	})

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
