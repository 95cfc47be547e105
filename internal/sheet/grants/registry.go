// Package grants tracks the ability, trait, spell and action ids each source
// currently confers.
//
// Every (source, kind) pair records its own id set. The active set of a kind
// is always the union of those records, so revoking one source never removes
// an id another source still grants.
package grants

import (
	"sort"

	"github.com/KirkDiggler/rpg-loadout/internal/entities"
	"github.com/KirkDiggler/rpg-loadout/internal/errors"
)

// Registry holds the per-source grant records
type Registry struct {
	// source -> kind -> granted ids in grant order
	bySource map[string]map[entities.GrantKind][]string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		bySource: make(map[string]map[entities.GrantKind][]string),
	}
}

// Grant records ids for a source. A source must revoke a kind before it can
// grant it again. An empty id list records nothing.
func (r *Registry) Grant(sourceID string, kind entities.GrantKind, ids []string) error {
	if sourceID == "" {
		return errors.InvalidArgument("source id is required")
	}
	if !kind.IsValid() {
		return errors.InvalidArgumentf("unknown grant kind %q", kind)
	}

	clean := dedupe(ids)
	if len(clean) == 0 {
		return nil
	}

	kinds, ok := r.bySource[sourceID]
	if !ok {
		kinds = make(map[entities.GrantKind][]string)
		r.bySource[sourceID] = kinds
	}
	if len(kinds[kind]) > 0 {
		return errors.DuplicateGrant(sourceID, kind.String())
	}

	kinds[kind] = clean
	return nil
}

// Revoke removes exactly what the source granted for the kind
func (r *Registry) Revoke(sourceID string, kind entities.GrantKind) {
	kinds, ok := r.bySource[sourceID]
	if !ok {
		return
	}
	delete(kinds, kind)
	if len(kinds) == 0 {
		delete(r.bySource, sourceID)
	}
}

// RevokeAll removes every kind the source granted
func (r *Registry) RevokeAll(sourceID string) {
	delete(r.bySource, sourceID)
}

// ActiveIDs returns the sorted union of ids granted for the kind
func (r *Registry) ActiveIDs(kind entities.GrantKind) []string {
	seen := make(map[string]struct{})
	for _, kinds := range r.bySource {
		for _, id := range kinds[kind] {
			seen[id] = struct{}{}
		}
	}

	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// SourceIDs returns a copy of the ids one source granted for the kind
func (r *Registry) SourceIDs(sourceID string, kind entities.GrantKind) []string {
	ids := r.bySource[sourceID][kind]
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}

// Reset drops every record
func (r *Registry) Reset() {
	r.bySource = make(map[string]map[entities.GrantKind][]string)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
