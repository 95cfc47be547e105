// Package notify delivers the single state-changed signal a completed sheet
// command emits.
package notify

//go:generate mockgen -destination=mock/mock_notifier.go -package=notifymock github.com/KirkDiggler/rpg-loadout/internal/notify Notifier

import (
	"context"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// EventStateChanged is the event type published on the bus
const EventStateChanged = "loadout.state_changed"

// Change describes what a command changed
type Change struct {
	CharacterID string
	// Command is the name of the command that completed, e.g. "equip"
	Command string
	// SlotID is set for slot commands
	SlotID string
}

// Notifier receives one StateChanged call per completed command
type Notifier interface {
	StateChanged(ctx context.Context, change *Change) error
}

// Nop discards every notification
type Nop struct{}

// StateChanged implements Notifier
func (Nop) StateChanged(context.Context, *Change) error { return nil }

// CharacterEntity identifies a sheet on the event bus
type CharacterEntity struct {
	ID string
}

// GetID returns the character id
func (c *CharacterEntity) GetID() string {
	return c.ID
}

// GetType returns the entity type for rpg-toolkit
func (c *CharacterEntity) GetType() string {
	return "character"
}

var _ core.Entity = (*CharacterEntity)(nil)

// Config holds the dependencies for the bus notifier
type Config struct {
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	if c.EventBus == nil {
		vb.RequiredField("EventBus")
	}
	return vb.Build()
}

// BusNotifier publishes state changes on an rpg-toolkit event bus
type BusNotifier struct {
	bus events.EventBus
}

// NewBusNotifier creates a notifier publishing on the configured bus
func NewBusNotifier(cfg *Config) (*BusNotifier, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &BusNotifier{bus: cfg.EventBus}, nil
}

// StateChanged implements Notifier
func (n *BusNotifier) StateChanged(ctx context.Context, change *Change) error {
	if change == nil || change.CharacterID == "" {
		return errors.InvalidArgument("change with character id is required")
	}

	event := events.NewGameEvent(EventStateChanged, &CharacterEntity{ID: change.CharacterID}, nil)
	if err := n.bus.Publish(ctx, event); err != nil {
		return errors.Wrapf(err, "failed to publish state change for %s", change.CharacterID)
	}
	return nil
}

// Subscribe registers fn for every published state change and returns the
// subscription id. fn receives the id of the changed character.
func Subscribe(bus events.EventBus, fn func(ctx context.Context, characterID string) error) string {
	return bus.SubscribeFunc(EventStateChanged, 0, func(ctx context.Context, event events.Event) error {
		source := event.Source()
		if source == nil {
			return nil
		}
		return fn(ctx, source.GetID())
	})
}
