// Package catalog is the read-only source of item, race and class records
package catalog

//go:generate mockgen -destination=mock/mock_client.go -package=catalogmock github.com/KirkDiggler/rpg-loadout/internal/clients/catalog Client

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// File names inside a catalog directory that hold archetypes rather than items
const (
	RacesFile   = "races.json"
	ClassesFile = "classes.json"
)

// Client defines the interface for catalog lookups
type Client interface {
	// GetItem returns the item with the given key
	GetItem(ctx context.Context, itemID string) (*entities.Item, error)

	// GetRace returns the race record with the given id
	GetRace(ctx context.Context, raceID string) (*entities.Archetype, error)

	// GetClass returns the class record with the given id
	GetClass(ctx context.Context, classID string) (*entities.Archetype, error)

	// ListItems returns items sorted by id, optionally filtered by type
	ListItems(ctx context.Context, input *ListItemsInput) ([]*entities.Item, error)

	// ListRaces returns every race sorted by id
	ListRaces(ctx context.Context) ([]*entities.Archetype, error)

	// ListClasses returns every class sorted by id
	ListClasses(ctx context.Context) ([]*entities.Archetype, error)
}

// ListItemsInput filters ListItems
type ListItemsInput struct {
	// ItemType keeps only items of this type when set
	ItemType entities.ItemType
	// Query keeps only items whose id or name contains it, ignoring case
	Query string
}

// Config contains configuration options for the catalog client.
type Config struct {
	// Dir holds races.json, classes.json and any number of item files.
	// An empty Dir starts an empty catalog.
	Dir string
}

// Validate validates the Config
func (cfg *Config) Validate() error {
	if cfg.Dir == "" {
		return nil
	}
	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "catalog dir is not readable")
	}
	if !info.IsDir() {
		return errors.InvalidArgumentf("catalog path %s is not a directory", cfg.Dir)
	}
	return nil
}

// Catalog is an in-memory Client. It is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	items   map[string]*entities.Item
	races   map[string]*entities.Archetype
	classes map[string]*entities.Archetype
}

// NewEmpty creates a catalog with no records
func NewEmpty() *Catalog {
	return &Catalog{
		items:   make(map[string]*entities.Item),
		races:   make(map[string]*entities.Archetype),
		classes: make(map[string]*entities.Archetype),
	}
}

// New creates a catalog and loads every file in cfg.Dir. Loading finishes
// before New returns.
func New(cfg *Config) (*Catalog, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := NewEmpty()
	if cfg.Dir == "" {
		return c, nil
	}

	paths, err := filepath.Glob(filepath.Join(cfg.Dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list catalog files")
	}
	sort.Strings(paths)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read catalog file %s", path)
		}

		switch strings.ToLower(filepath.Base(path)) {
		case RacesFile:
			err = c.LoadRaces(data, path)
		case ClassesFile:
			err = c.LoadClasses(data, path)
		default:
			err = c.LoadItems(data, path)
		}
		if err != nil {
			return nil, err
		}
	}

	slog.Info("Catalog loaded",
		"dir", cfg.Dir,
		"items", len(c.items),
		"races", len(c.races),
		"classes", len(c.classes))
	return c, nil
}

// LoadItems adds every item in a catalog document. An id seen before is
// replaced.
func (c *Catalog) LoadItems(data []byte, source string) error {
	items, err := ParseItems(data, source)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range items {
		if _, exists := c.items[item.ID]; exists {
			slog.Warn("Replacing duplicate catalog item", "source", source, "item_id", item.ID)
		}
		c.items[item.ID] = item
	}
	return nil
}

// LoadRaces adds every race in a document
func (c *Catalog) LoadRaces(data []byte, source string) error {
	records, err := ParseArchetypes(data, source)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range records {
		c.races[r.ID] = r
	}
	return nil
}

// LoadClasses adds every class in a document
func (c *Catalog) LoadClasses(data []byte, source string) error {
	records, err := ParseArchetypes(data, source)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range records {
		c.classes[r.ID] = r
	}
	return nil
}

// PutItem adds or replaces one item
func (c *Catalog) PutItem(item *entities.Item) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[item.ID] = item
}

// PutRace adds or replaces one race
func (c *Catalog) PutRace(race *entities.Archetype) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.races[race.ID] = race
}

// PutClass adds or replaces one class
func (c *Catalog) PutClass(class *entities.Archetype) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.classes[class.ID] = class
}

// GetItem implements Client
func (c *Catalog) GetItem(_ context.Context, itemID string) (*entities.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.items[itemID]
	if !ok {
		return nil, errors.ItemNotFound(itemID)
	}
	return item, nil
}

// GetRace implements Client
func (c *Catalog) GetRace(_ context.Context, raceID string) (*entities.Archetype, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	race, ok := c.races[raceID]
	if !ok {
		return nil, errors.NotFoundf("race %s not found", raceID).WithMeta("race_id", raceID)
	}
	return race, nil
}

// GetClass implements Client
func (c *Catalog) GetClass(_ context.Context, classID string) (*entities.Archetype, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	class, ok := c.classes[classID]
	if !ok {
		return nil, errors.NotFoundf("class %s not found", classID).WithMeta("class_id", classID)
	}
	return class, nil
}

// ListItems implements Client
func (c *Catalog) ListItems(_ context.Context, input *ListItemsInput) ([]*entities.Item, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if input == nil {
		input = &ListItemsInput{}
	}
	query := strings.ToLower(strings.TrimSpace(input.Query))

	out := make([]*entities.Item, 0, len(c.items))
	for _, item := range c.items {
		if input.ItemType != "" && item.Type != input.ItemType {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ListRaces implements Client
func (c *Catalog) ListRaces(_ context.Context) ([]*entities.Archetype, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedArchetypes(c.races), nil
}

// ListClasses implements Client
func (c *Catalog) ListClasses(_ context.Context) ([]*entities.Archetype, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedArchetypes(c.classes), nil
}

func matchesQuery(item *entities.Item, query string) bool {
	return strings.Contains(strings.ToLower(item.ID), query) ||
		strings.Contains(strings.ToLower(item.Name), query)
}

func sortedArchetypes(in map[string]*entities.Archetype) []*entities.Archetype {
	out := make([]*entities.Archetype, 0, len(in))
	for _, a := range in {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
