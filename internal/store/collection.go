// Package store holds the signed-in user's workouts, meals and goals and
// the views derived from them. Every store is scoped to one principal and
// reloads when the session changes.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/ids"
	"github.com/safooraa838/FitSync/internal/metrics"
	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/util"
	"github.com/sirupsen/logrus"
)

//go:generate mockgen -destination=mock_source_test.go -package=store -self_package=github.com/safooraa838/FitSync/internal/store github.com/safooraa838/FitSync/internal/store Source

// Source supplies the existing entities of a user. It is consulted once per
// session change.
type Source interface {
	Workouts(ctx context.Context, userID string) ([]models.Workout, error)
	Meals(ctx context.Context, userID string) ([]models.Meal, error)
	Goals(ctx context.Context, userID string) ([]models.Goal, error)
}

// Option configures a store.
type Option func(*options)

type options struct {
	ids ids.Generator
	log logrus.FieldLogger
	loc *time.Location
}

// WithIDs sets the identifier generator.
func WithIDs(g ids.Generator) Option { return func(o *options) { o.ids = g } }

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option { return func(o *options) { o.log = l } }

// WithLocation sets the zone calendar days are compared in. Defaults to UTC.
func WithLocation(loc *time.Location) Option { return func(o *options) { o.loc = loc } }

func buildOptions(opts []Option) options {
	o := options{ids: ids.UUID{}, log: util.DiscardLogger(), loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// collection is the locked, ordered entity list every store is built on.
// Entities go in and out as copies.
type collection[T any] struct {
	name  string
	id    func(*T) string
	clone func(T) T

	mu     sync.RWMutex
	userID string
	items  []T
}

func newCollection[T any](name string, id func(*T) string, clone func(T) T) *collection[T] {
	return &collection[T]{name: name, id: id, clone: clone}
}

// reset replaces the contents and the owning user.
func (c *collection[T]) reset(userID string, items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.userID = userID
	c.items = make([]T, 0, len(items))
	for _, it := range items {
		c.items = append(c.items, c.clone(it))
	}
	metrics.SetStoreSize(c.name, len(c.items))
}

func (c *collection[T]) owner() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.userID
}

// stamp returns the session owner, or userID when no session is loaded.
func (c *collection[T]) stamp(userID string) string {
	if owner := c.owner(); owner != "" {
		return owner
	}
	return userID
}

func (c *collection[T]) add(item T) T {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, c.clone(item))
	metrics.SetStoreSize(c.name, len(c.items))
	return c.clone(item)
}

// mutate runs fn on the entity with the given id in place. It reports
// whether the id was found.
func (c *collection[T]) mutate(id string, fn func(*T)) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(&c.items[i]) == id {
			fn(&c.items[i])
			return c.clone(c.items[i]), true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) remove(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.id(&c.items[i]) == id {
			removed := c.items[i]
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			metrics.SetStoreSize(c.name, len(c.items))
			return removed, true
		}
	}
	var zero T
	return zero, false
}

func (c *collection[T]) get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if c.id(&c.items[i]) == id {
			return c.clone(c.items[i]), true
		}
	}
	var zero T
	return zero, false
}

// filter returns copies of the entities keep accepts, in collection order.
// A nil keep returns everything.
func (c *collection[T]) filter(keep func(*T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.items))
	for i := range c.items {
		if keep == nil || keep(&c.items[i]) {
			out = append(out, c.clone(c.items[i]))
		}
	}
	return out
}

// base carries what all three stores share.
type base struct {
	resource string
	src      Source
	gw       backend.Gateway
	opts     options
	log      logrus.FieldLogger
}

func newBase(resource string, src Source, gw backend.Gateway, opts []Option) base {
	o := buildOptions(opts)
	return base{
		resource: resource,
		src:      src,
		gw:       gw,
		opts:     o,
		log:      o.log.WithField("store", resource),
	}
}

func (b base) mutated(ctx context.Context, op backend.Op, id, userID string) {
	metrics.RecordMutation(b.resource, string(op))
	b.gw.Mutated(ctx, backend.Mutation{Resource: b.resource, Op: op, ID: id, UserID: userID})
}

// sameDay reports whether a and b fall on the same calendar day in loc.
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// inRange is the inclusive range test used by every ByDateRange.
func inRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func principalID(p *models.Principal) string {
	if p == nil {
		return ""
	}
	return p.ID
}

// reload swaps c's contents for p's entities. A nil principal, or a source
// failure, leaves the collection empty.
func reload[T any](ctx context.Context, b base, c *collection[T], p *models.Principal,
	fetch func(context.Context, string) ([]T, error), owner func(*T) string) {
	userID := principalID(p)
	if userID == "" || b.src == nil {
		c.reset(userID, nil)
		b.log.Debug("collection cleared")
		return
	}
	items, err := fetch(ctx, userID)
	if err != nil {
		b.log.WithError(err).WithField("user_id", userID).Error("load entities")
		c.reset(userID, nil)
		return
	}
	kept := items[:0:0]
	for i := range items {
		if owner(&items[i]) == userID {
			kept = append(kept, items[i])
		}
	}
	c.reset(userID, kept)
	b.log.WithFields(logrus.Fields{"user_id": userID, "count": len(kept)}).Debug("collection loaded")
}
