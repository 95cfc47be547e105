// Package roster owns the live character sheets of the service. It loads
// sheets from the snapshot store on first use, runs every command on a
// character to completion under one lock and persists the result.
package roster

//go:generate mockgen -destination=mock/mock_service.go -package=rostermock github.com/KirkDiggler/rpg-loadout/internal/orchestrators/roster Service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
	"github.com/KirkDiggler/rpg-loadout/internal/notify"
	"github.com/KirkDiggler/rpg-loadout/internal/orchestrators/loadout"
	"github.com/KirkDiggler/rpg-loadout/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-loadout/internal/repositories/snapshot"
	"github.com/KirkDiggler/rpg-loadout/internal/sheet"
)

// Service defines the interface for character roster operations
type Service interface {
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)

	// Equipment lifecycle
	Equip(ctx context.Context, input *EquipInput) (*EquipOutput, error)
	EquipFirstFree(ctx context.Context, input *EquipFirstFreeInput) (*EquipFirstFreeOutput, error)
	Unequip(ctx context.Context, input *UnequipInput) (*UnequipOutput, error)

	// Progression and bonus sources
	SetLevel(ctx context.Context, input *SetLevelInput) (*CommandOutput, error)
	SelectRace(ctx context.Context, input *SelectRaceInput) (*CommandOutput, error)
	SelectClass(ctx context.Context, input *SelectClassInput) (*CommandOutput, error)
	SetBase(ctx context.Context, input *SetBaseInput) (*CommandOutput, error)
	AllocatePoint(ctx context.Context, input *PointInput) (*CommandOutput, error)
	RefundPoint(ctx context.Context, input *PointInput) (*CommandOutput, error)

	// Snapshots
	ExportCharacter(ctx context.Context, input *ExportCharacterInput) (*ExportCharacterOutput, error)
	ImportCharacter(ctx context.Context, input *ImportCharacterInput) (*ImportCharacterOutput, error)

	GetBreakdown(ctx context.Context, input *GetBreakdownInput) (*GetBreakdownOutput, error)
}

// Config holds the dependencies for the roster orchestrator
type Config struct {
	Controller   *loadout.Controller
	SnapshotRepo snapshot.Repository
	IDGenerator  idgen.Generator
	Layout       entities.Layout
	// EventBus, when set, feeds the per-character revision counters
	EventBus events.EventBus
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Controller == nil {
		vb.RequiredField("Controller")
	}
	if c.SnapshotRepo == nil {
		vb.RequiredField("SnapshotRepo")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if len(c.Layout.Slots) == 0 {
		vb.Field("Layout", "must declare at least one slot")
	}

	return vb.Build()
}

// Orchestrator implements Service
type Orchestrator struct {
	controller   *loadout.Controller
	snapshotRepo snapshot.Repository
	idGen        idgen.Generator
	layout       entities.Layout

	mu     sync.Mutex
	sheets map[string]*sheet.Sheet

	bus            events.EventBus
	subscriptionID string
	revMu          sync.Mutex
	revisions      map[string]int64
}

// NewOrchestrator creates a new roster orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (*Orchestrator, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &Orchestrator{
		controller:   cfg.Controller,
		snapshotRepo: cfg.SnapshotRepo,
		idGen:        cfg.IDGenerator,
		layout:       cfg.Layout,
		sheets:       make(map[string]*sheet.Sheet),
		bus:          cfg.EventBus,
		revisions:    make(map[string]int64),
	}
	if o.bus != nil {
		o.subscriptionID = notify.Subscribe(o.bus, o.bumpRevision)
	}
	return o, nil
}

// Close stops listening for state changes
func (o *Orchestrator) Close() error {
	if o.bus == nil || o.subscriptionID == "" {
		return nil
	}
	return o.bus.Unsubscribe(o.subscriptionID)
}

func (o *Orchestrator) bumpRevision(_ context.Context, characterID string) error {
	o.revMu.Lock()
	defer o.revMu.Unlock()
	o.revisions[characterID]++
	return nil
}

func (o *Orchestrator) revision(characterID string) int64 {
	o.revMu.Lock()
	defer o.revMu.Unlock()
	return o.revisions[characterID]
}

// CreateCharacter starts an empty sheet and stores its first snapshot
func (o *Orchestrator) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	id := input.CharacterID
	if id == "" {
		id = o.idGen.Generate()
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.sheets[id]; ok {
		return nil, errors.AlreadyExistsf("character %s already exists", id).WithMeta("character_id", id)
	}
	_, err := o.snapshotRepo.Get(ctx, snapshot.GetInput{CharacterID: id})
	if err == nil {
		return nil, errors.AlreadyExistsf("character %s already exists", id).WithMeta("character_id", id)
	}
	if !errors.IsNotFound(err) {
		return nil, errors.Wrapf(err, "failed to check character %s", id)
	}

	s, err := sheet.New(id, o.layout)
	if err != nil {
		return nil, err
	}
	if err := o.persist(ctx, s); err != nil {
		return nil, err
	}
	o.sheets[id] = s

	slog.InfoContext(ctx, "Character created", "character_id", id)
	view, err := o.controller.View(ctx, s)
	if err != nil {
		return nil, err
	}
	return &CreateCharacterOutput{View: view}, nil
}

// GetCharacter returns the display state of a character
func (o *Orchestrator) GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.load(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	view, err := o.controller.View(ctx, s)
	if err != nil {
		return nil, err
	}
	return &GetCharacterOutput{View: view, Revision: o.revision(input.CharacterID)}, nil
}

// ListCharacters returns every stored character id
func (o *Orchestrator) ListCharacters(ctx context.Context, _ *ListCharactersInput) (*ListCharactersOutput, error) {
	out, err := o.snapshotRepo.List(ctx, snapshot.ListInput{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list characters")
	}
	return &ListCharactersOutput{CharacterIDs: out.CharacterIDs}, nil
}

// DeleteCharacter drops a character from memory and from the store
func (o *Orchestrator) DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error) {
	if input == nil || input.CharacterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if _, err := o.snapshotRepo.Delete(ctx, snapshot.DeleteInput{CharacterID: input.CharacterID}); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %s", input.CharacterID)
	}
	delete(o.sheets, input.CharacterID)

	o.revMu.Lock()
	delete(o.revisions, input.CharacterID)
	o.revMu.Unlock()

	slog.InfoContext(ctx, "Character deleted", "character_id", input.CharacterID)
	return &DeleteCharacterOutput{}, nil
}

// load returns the cached sheet or restores it from the store.
// Callers hold o.mu.
func (o *Orchestrator) load(ctx context.Context, characterID string) (*sheet.Sheet, error) {
	if s, ok := o.sheets[characterID]; ok {
		return s, nil
	}

	stored, err := o.snapshotRepo.Get(ctx, snapshot.GetInput{CharacterID: characterID})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load character %s", characterID)
	}

	s, err := sheet.New(characterID, o.layout)
	if err != nil {
		return nil, err
	}
	out, err := o.controller.Import(ctx, s, &loadout.ImportInput{Snapshot: stored.Snapshot})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to restore character %s", characterID)
	}
	if len(out.Skipped) > 0 {
		slog.WarnContext(ctx, "Character restored with empty slots",
			"character_id", characterID,
			"skipped", out.Skipped)
	}

	o.sheets[characterID] = s
	slog.DebugContext(ctx, "Character loaded", "character_id", characterID)
	return s, nil
}

// persist stores the sheet's snapshot
func (o *Orchestrator) persist(ctx context.Context, s *sheet.Sheet) error {
	exported, err := o.controller.Export(ctx, s)
	if err != nil {
		return err
	}
	if _, err := o.snapshotRepo.Save(ctx, snapshot.SaveInput{Snapshot: exported.Snapshot}); err != nil {
		return errors.Wrapf(err, "failed to save character %s", s.ID)
	}
	return nil
}

// mutate runs fn on the character's sheet under the roster lock, persists
// the result and returns the new view. A sheet whose save fails is evicted
// so the next command reloads the last stored state.
func (o *Orchestrator) mutate(ctx context.Context, characterID string, fn func(s *sheet.Sheet) error) (*entities.View, error) {
	if characterID == "" {
		return nil, errors.InvalidArgument("character ID is required")
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.load(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if err := fn(s); err != nil {
		return nil, err
	}
	if err := o.persist(ctx, s); err != nil {
		delete(o.sheets, characterID)
		slog.ErrorContext(ctx, "Evicted character after failed save",
			"character_id", characterID,
			"error", err)
		return nil, err
	}
	return o.controller.View(ctx, s)
}
