// Package backend is the integration point where a real remote API would be
// called. The Simulator stands in for it: auth round trips wait a fixed
// latency, and store mutations are kept in memory only.
package backend

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Op names a mutation kind.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

// Mutation describes one applied store change.
type Mutation struct {
	Resource string
	Op       Op
	ID       string
	UserID   string
}

// Gateway is what the stores talk to. RoundTrip blocks for one simulated
// request; Mutated reports a change that a real backend would persist.
type Gateway interface {
	RoundTrip(ctx context.Context, op string) error
	Mutated(ctx context.Context, m Mutation)
}

// Sleeper waits for d. Tests swap it for a no-op.
type Sleeper func(d time.Duration)

// Simulator is the in-process Gateway.
type Simulator struct {
	latency time.Duration
	sleep   Sleeper
	log     logrus.FieldLogger

	mu      sync.Mutex
	journal []Mutation
}

// NewSimulator returns a Simulator that waits latency per round trip.
func NewSimulator(latency time.Duration, log logrus.FieldLogger) *Simulator {
	return &Simulator{latency: latency, sleep: time.Sleep, log: log}
}

// WithSleeper replaces the wait function.
func (s *Simulator) WithSleeper(fn Sleeper) *Simulator {
	s.sleep = fn
	return s
}

// RoundTrip waits the configured latency. It cannot be cut short: an
// in-flight request always completes.
func (s *Simulator) RoundTrip(ctx context.Context, op string) error {
	start := time.Now()
	if s.latency > 0 {
		s.sleep(s.latency)
	}
	s.log.WithFields(logrus.Fields{"op": op, "elapsed": time.Since(start)}).Debug("simulated round trip")
	return nil
}

// Mutated records m. Nothing leaves the process.
func (s *Simulator) Mutated(ctx context.Context, m Mutation) {
	s.mu.Lock()
	s.journal = append(s.journal, m)
	s.mu.Unlock()
	s.log.WithFields(logrus.Fields{
		"resource": m.Resource,
		"op":       m.Op,
		"id":       m.ID,
		"user_id":  m.UserID,
	}).Debug("mutation kept in memory")
}

// Mutations returns the mutations seen so far, oldest first.
func (s *Simulator) Mutations() []Mutation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Mutation(nil), s.journal...)
}
