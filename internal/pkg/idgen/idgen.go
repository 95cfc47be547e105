// Package idgen provides ID generation utilities
package idgen

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// UUIDGenerator generates UUIDs with optional prefix
type UUIDGenerator struct {
	prefix string
}

// NewUUID creates a new UUID generator with optional prefix
func NewUUID(prefix string) *UUIDGenerator {
	return &UUIDGenerator{prefix: prefix}
}

// Generate creates a new UUID-based ID
func (g *UUIDGenerator) Generate() string {
	id := uuid.New().String()
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, id)
	}
	return id
}

// IsUUID reports whether the id is a UUID, optionally behind prefix_
func IsUUID(id, prefix string) bool {
	if prefix != "" {
		p := prefix + "_"
		if len(id) <= len(p) || id[:len(p)] != p {
			return false
		}
		id = id[len(p):]
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}
