package store

import (
	"context"
	"sort"
	"time"

	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/util"
)

// Workouts is the signed-in user's workout log.
type Workouts struct {
	base
	c *collection[models.Workout]
}

func NewWorkouts(src Source, gw backend.Gateway, opts ...Option) *Workouts {
	return &Workouts{
		base: newBase("workouts", src, gw, opts),
		c: newCollection("workouts",
			func(w *models.Workout) string { return w.ID },
			models.Workout.Clone),
	}
}

// OnSessionChanged reloads the log for p, or empties it when p is nil.
func (s *Workouts) OnSessionChanged(ctx context.Context, p *models.Principal) {
	reload(ctx, s.base, s.c, p,
		func(ctx context.Context, userID string) ([]models.Workout, error) { return s.src.Workouts(ctx, userID) },
		func(w *models.Workout) string { return w.UserID })
}

// All returns every workout in insertion order.
func (s *Workouts) All() []models.Workout {
	return s.c.filter(nil)
}

// Get returns the workout with the given id.
func (s *Workouts) Get(id string) (models.Workout, bool) {
	return s.c.get(id)
}

// Add stores w under a fresh id and returns the stored copy. While a session
// is loaded the workout is owned by its principal, whatever UserID says.
func (s *Workouts) Add(ctx context.Context, w models.Workout) models.Workout {
	w = w.Clone()
	w.ID = s.opts.ids.New(config.PrefixWorkout)
	w.UserID = s.c.stamp(w.UserID)
	out := s.c.add(w)
	s.mutated(ctx, backend.OpAdd, out.ID, out.UserID)
	return out
}

// Update merges patch into the workout with the given id. Unknown ids are
// ignored.
func (s *Workouts) Update(ctx context.Context, id string, patch models.WorkoutPatch) {
	w, ok := s.c.mutate(id, func(w *models.Workout) { patch.Apply(w) })
	if !ok {
		return
	}
	s.mutated(ctx, backend.OpUpdate, id, w.UserID)
}

// Remove deletes the workout with the given id. Unknown ids are ignored.
func (s *Workouts) Remove(ctx context.Context, id string) {
	w, ok := s.c.remove(id)
	if !ok {
		return
	}
	s.mutated(ctx, backend.OpRemove, id, w.UserID)
}

// ByDateRange returns workouts dated within [start, end].
func (s *Workouts) ByDateRange(start, end time.Time) []models.Workout {
	return s.c.filter(func(w *models.Workout) bool { return inRange(w.Date, start, end) })
}

// Since returns workouts dated at or after t.
func (s *Workouts) Since(t time.Time) []models.Workout {
	return s.c.filter(func(w *models.Workout) bool { return !w.Date.Before(t) })
}

// Recent returns up to n workouts, newest first.
func (s *Workouts) Recent(n int) []models.Workout {
	all := newestFirst(s.c.filter(nil))
	if n >= 0 && len(all) > n {
		all = all[:n]
	}
	return all
}

// Search filters by name, type and notes, newest first. The query accepts
// "type:<name>" filters; see util.ParseSearchQuery.
func (s *Workouts) Search(term string) []models.Workout {
	q := util.ParseSearchQuery(term)
	return newestFirst(s.c.filter(func(w *models.Workout) bool {
		if q.Empty() {
			return true
		}
		return q.Matches(w.Type, w.Name, util.Deref(w.Notes))
	}))
}

func newestFirst(ws []models.Workout) []models.Workout {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Date.After(ws[j].Date) })
	return ws
}
