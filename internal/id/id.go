// Package id provides the identifier capability injected into the store.
package id

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Generator hands out ids that stay unique for the lifetime of a store.
type Generator interface {
	NewID() string
}

// UUID generates random v4 UUIDs.
type UUID struct{}

func (UUID) NewID() string { return uuid.NewString() }

// Sequence yields "<prefix>-1", "<prefix>-2", ... and is handy in tests
// where golden output needs stable ids.
type Sequence struct {
	Prefix string

	mu sync.Mutex
	n  int
}

func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = "item"
	}
	return &Sequence{Prefix: prefix}
}

func (s *Sequence) NewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return fmt.Sprintf("%s-%d", s.Prefix, s.n)
}
