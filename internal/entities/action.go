package entities

import "strconv"

// Action is a combat action card registered while an item is equipped
type Action struct {
	SourceID   string            `json:"source_id"`
	ItemID     string            `json:"item_id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Damage     string            `json:"damage,omitempty"`
	DamageType string            `json:"damage_type,omitempty"`
	Traits     []string          `json:"traits,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

// ActionFor builds the action card for an action-bearing item.
// It returns false for every other item type.
func ActionFor(sourceID string, item *Item) (Action, bool) {
	if item == nil || !item.Type.IsActionBearing() {
		return Action{}, false
	}

	action := Action{
		SourceID: sourceID,
		ItemID:   item.ID,
		Name:     item.Name,
		Type:     string(item.Category()),
		Details:  map[string]string{},
	}

	switch p := item.Payload.(type) {
	case WeaponPayload:
		action.Damage = p.DamageAmount
		action.DamageType = p.DamageType
		action.Traits = append([]string(nil), item.Traits...)
		setDetail(action.Details, "range", p.Range)
	case ScrollPayload:
		action.Damage = p.Damage
		action.DamageType = p.DamageType
		setDetail(action.Details, "casting_time", p.CastingTime)
		if p.AbilityPointCost != 0 {
			action.Details["ability_point_cost"] = strconv.Itoa(p.AbilityPointCost)
		}
		setDetail(action.Details, "cooldown", p.Cooldown)
		setDetail(action.Details, "scaling", p.Scaling)
		setDetail(action.Details, "spell_casting_modifier", p.SpellCastingModifier)
	case ExplosivePayload:
		action.Damage = p.Damage
		action.DamageType = p.DamageType
		setDetail(action.Details, "duration", p.Duration)
		setDetail(action.Details, "range", p.Range)
		setDetail(action.Details, "blast_radius", p.BlastRadius)
		setDetail(action.Details, "trigger_mechanism", p.TriggerMechanism)
	case ThrowablePayload:
		action.Damage = p.Damage
		action.DamageType = p.DamageType
		setDetail(action.Details, "duration", p.Duration)
		setDetail(action.Details, "range", p.Range)
		setDetail(action.Details, "radius", p.Radius)
		setDetail(action.Details, "trigger_mechanism", p.TriggerMechanism)
	}

	if len(action.Details) == 0 {
		action.Details = nil
	}
	return action, true
}

func setDetail(details map[string]string, key, value string) {
	if value != "" {
		details[key] = value
	}
}
