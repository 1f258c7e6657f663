package store

import (
	"context"

	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/models"
)

// Goals holds the signed-in user's goals. Progress and completion are
// re-derived on every write that touches CurrentValue or Target.
type Goals struct {
	base
	c *collection[models.Goal]
}

func NewGoals(src Source, gw backend.Gateway, opts ...Option) *Goals {
	return &Goals{
		base: newBase("goals", src, gw, opts),
		c: newCollection("goals",
			func(g *models.Goal) string { return g.ID },
			models.Goal.Clone),
	}
}

// OnSessionChanged reloads the goals for p, or empties them when p is nil.
// Loaded goals are re-derived.
func (s *Goals) OnSessionChanged(ctx context.Context, p *models.Principal) {
	reload(ctx, s.base, s.c, p,
		func(ctx context.Context, userID string) ([]models.Goal, error) {
			gs, err := s.src.Goals(ctx, userID)
			for i := range gs {
				gs[i].Derive()
			}
			return gs, err
		},
		func(g *models.Goal) string { return g.UserID })
}

// All returns every goal in insertion order.
func (s *Goals) All() []models.Goal {
	return s.c.filter(nil)
}

// Get returns the goal with the given id.
func (s *Goals) Get(id string) (models.Goal, bool) {
	return s.c.get(id)
}

// Add stores g under a fresh id with progress derived from its
// CurrentValue and Target. Caller-supplied progress is overwritten.
func (s *Goals) Add(ctx context.Context, g models.Goal) models.Goal {
	g = g.Clone()
	g.ID = s.opts.ids.New(config.PrefixGoal)
	g.UserID = s.c.stamp(g.UserID)
	g.Derive()
	out := s.c.add(g)
	s.mutated(ctx, backend.OpAdd, out.ID, out.UserID)
	return out
}

// Update merges patch into the goal with the given id. Unknown ids are
// ignored.
func (s *Goals) Update(ctx context.Context, id string, patch models.GoalPatch) {
	g, ok := s.c.mutate(id, func(g *models.Goal) {
		if patch.Apply(g) {
			g.Derive()
		}
	})
	if !ok {
		return
	}
	s.mutated(ctx, backend.OpUpdate, id, g.UserID)
}

// UpdateProgress sets CurrentValue and re-derives progress. Lowering the
// value below target moves a completed goal back to active.
func (s *Goals) UpdateProgress(ctx context.Context, id string, currentValue float64) {
	s.Update(ctx, id, models.GoalPatch{CurrentValue: &currentValue})
}

// Remove deletes the goal with the given id. Unknown ids are ignored.
func (s *Goals) Remove(ctx context.Context, id string) {
	g, ok := s.c.remove(id)
	if !ok {
		return
	}
	s.mutated(ctx, backend.OpRemove, id, g.UserID)
}

// Active returns goals that are not completed.
func (s *Goals) Active() []models.Goal {
	return s.c.filter(func(g *models.Goal) bool { return !g.IsCompleted })
}

// Completed returns goals whose progress reached 100.
func (s *Goals) Completed() []models.Goal {
	return s.c.filter(func(g *models.Goal) bool { return g.IsCompleted })
}
