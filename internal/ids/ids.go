// Package ids hands out entity identifiers.
package ids

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a fresh identifier carrying the given prefix.
type Generator interface {
	New(prefix string) string
}

// UUID generates random identifiers such as "workout-5f0c…".
type UUID struct{}

func (UUID) New(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// Sequence generates "prefix-1", "prefix-2", ... from a counter shared across
// prefixes. It is safe for concurrent use.
type Sequence struct {
	n atomic.Int64
}

func (s *Sequence) New(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, s.n.Add(1))
}
