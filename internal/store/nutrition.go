package store

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/models"
)

// Nutrition is the signed-in user's meal log.
type Nutrition struct {
	base
	c *collection[models.Meal]
}

func NewNutrition(src Source, gw backend.Gateway, opts ...Option) *Nutrition {
	return &Nutrition{
		base: newBase("meals", src, gw, opts),
		c: newCollection("meals",
			func(m *models.Meal) string { return m.ID },
			models.Meal.Clone),
	}
}

// OnSessionChanged reloads the log for p, or empties it when p is nil.
func (s *Nutrition) OnSessionChanged(ctx context.Context, p *models.Principal) {
	reload(ctx, s.base, s.c, p,
		func(ctx context.Context, userID string) ([]models.Meal, error) { return s.src.Meals(ctx, userID) },
		func(m *models.Meal) string { return m.UserID })
}

// All returns every meal in insertion order.
func (s *Nutrition) All() []models.Meal {
	return s.c.filter(nil)
}

// Get returns the meal with the given id.
func (s *Nutrition) Get(id string) (models.Meal, bool) {
	return s.c.get(id)
}

// Add stores m under a fresh id. The totals are taken as given; build the
// meal with Meal.AddItem to keep them consistent.
func (s *Nutrition) Add(ctx context.Context, m models.Meal) models.Meal {
	m = m.Clone()
	m.ID = s.opts.ids.New(config.PrefixMeal)
	m.UserID = s.c.stamp(m.UserID)
	out := s.c.add(m)
	s.mutated(ctx, backend.OpAdd, out.ID, out.UserID)
	return out
}

// Update merges patch into the meal with the given id. Replacing the items
// recomputes the totals. Unknown ids are ignored.
func (s *Nutrition) Update(ctx context.Context, id string, patch models.MealPatch) {
	m, ok := s.c.mutate(id, func(m *models.Meal) { patch.Apply(m) })
	if !ok {
		return
	}
	s.mutated(ctx, backend.OpUpdate, id, m.UserID)
}

// Remove deletes the meal with the given id. Unknown ids are ignored.
func (s *Nutrition) Remove(ctx context.Context, id string) {
	m, ok := s.c.remove(id)
	if !ok {
		return
	}
	s.mutated(ctx, backend.OpRemove, id, m.UserID)
}

// AddItem attaches a pre-scaled item to a stored meal and folds its macros
// into the totals. An item without an id gets one. It reports whether the
// meal exists.
func (s *Nutrition) AddItem(ctx context.Context, mealID string, item models.NutritionItem) bool {
	if item.ID == "" {
		item.ID = s.opts.ids.New(config.PrefixFood)
	}
	m, ok := s.c.mutate(mealID, func(m *models.Meal) { m.AddItem(item) })
	if !ok {
		return false
	}
	s.mutated(ctx, backend.OpUpdate, mealID, m.UserID)
	return true
}

// RemoveItem detaches an item from a stored meal and subtracts its macros.
// It reports whether both the meal and the item existed.
func (s *Nutrition) RemoveItem(ctx context.Context, mealID, itemID string) bool {
	removed := false
	m, ok := s.c.mutate(mealID, func(m *models.Meal) { removed = m.RemoveItem(itemID) })
	if !ok || !removed {
		return false
	}
	s.mutated(ctx, backend.OpUpdate, mealID, m.UserID)
	return true
}

// ByDate returns the meals logged on the calendar day of day.
func (s *Nutrition) ByDate(day time.Time) []models.Meal {
	loc := s.opts.loc
	return s.c.filter(func(m *models.Meal) bool { return sameDay(m.Date, day, loc) })
}

// ByDateRange returns meals dated within [start, end].
func (s *Nutrition) ByDateRange(start, end time.Time) []models.Meal {
	return s.c.filter(func(m *models.Meal) bool { return inRange(m.Date, start, end) })
}

// DailyTotals sums the stored totals of the meals on day. It reads the live
// collection on every call.
func (s *Nutrition) DailyTotals(day time.Time) models.NutritionTotals {
	var t models.NutritionTotals
	for _, m := range s.ByDate(day) {
		t = t.Add(m.Totals())
	}
	return t
}

// Search returns the meals on day whose type or any item name contains
// term, ordered breakfast, lunch, dinner, snack. An empty term keeps every
// meal of the day.
func (s *Nutrition) Search(day time.Time, term string) []models.Meal {
	term = strings.ToLower(strings.TrimSpace(term))
	meals := s.ByDate(day)
	out := meals[:0]
	for _, m := range meals {
		if term == "" || mealMatches(m, term) {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Type.Order() < out[j].Type.Order() })
	return out
}

func mealMatches(m models.Meal, term string) bool {
	if strings.Contains(string(m.Type), term) {
		return true
	}
	for _, it := range m.Items {
		if strings.Contains(strings.ToLower(it.Name), term) {
			return true
		}
	}
	return false
}
