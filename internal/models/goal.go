package models

import (
	"math"
	"time"
)

// DeriveGoalStatus computes progress as a percentage of target, rounded and
// clamped to [0, 100]. A goal is complete once progress reaches 100.
// A zero target yields no progress.
func DeriveGoalStatus(currentValue, target float64) (progress int, completed bool) {
	if target == 0 {
		return 0, false
	}
	ratio := math.Round(currentValue / target * 100)
	switch {
	case math.IsNaN(ratio):
		progress = 0
	case ratio <= 0:
		progress = 0
	case ratio >= 100:
		progress = 100
	default:
		progress = int(ratio)
	}
	return progress, progress >= 100
}

// Derive refreshes Progress and IsCompleted from CurrentValue and Target.
func (g *Goal) Derive() {
	g.Progress, g.IsCompleted = DeriveGoalStatus(g.CurrentValue, g.Target)
}

// GoalPatch carries the fields of a partial goal update. Nil fields are left
// untouched. Progress and completion are not patchable.
type GoalPatch struct {
	Title        *string
	Description  *string
	Category     *GoalCategory
	Target       *float64
	Unit         *string
	StartDate    *time.Time
	EndDate      *time.Time
	CurrentValue *float64
}

// Apply merges the patch into g and reports whether a progress input changed.
func (p GoalPatch) Apply(g *Goal) (rederive bool) {
	if p.Title != nil {
		g.Title = *p.Title
	}
	if p.Description != nil {
		d := *p.Description
		g.Description = &d
	}
	if p.Category != nil {
		g.Category = *p.Category
	}
	if p.Unit != nil {
		g.Unit = *p.Unit
	}
	if p.StartDate != nil {
		g.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		g.EndDate = *p.EndDate
	}
	if p.Target != nil {
		g.Target = *p.Target
		rederive = true
	}
	if p.CurrentValue != nil {
		g.CurrentValue = *p.CurrentValue
		rederive = true
	}
	return rederive
}
