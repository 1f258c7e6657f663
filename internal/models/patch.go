package models

import "time"

// WorkoutPatch carries the fields of a partial workout update. UserID is not
// patchable. A non-nil Exercises replaces the whole list in the given order.
type WorkoutPatch struct {
	Date           *time.Time
	Name           *string
	Type           *string
	Duration       *int
	Exercises      []WorkoutExercise
	CaloriesBurned *int
	Notes          *string
}

// Apply merges the patch into w.
func (p WorkoutPatch) Apply(w *Workout) {
	if p.Date != nil {
		w.Date = *p.Date
	}
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Duration != nil {
		w.Duration = *p.Duration
	}
	if p.Exercises != nil {
		w.Exercises = cloneExercises(p.Exercises)
	}
	if p.CaloriesBurned != nil {
		w.CaloriesBurned = *p.CaloriesBurned
	}
	if p.Notes != nil {
		n := *p.Notes
		w.Notes = &n
	}
}

// ProfilePatch carries the editable principal fields.
type ProfilePatch struct {
	Name           *string
	Email          *string
	ProfilePicture *string
}

// Apply merges the patch into p.
func (pp ProfilePatch) Apply(p *Principal) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Email != nil {
		p.Email = *pp.Email
	}
	if pp.ProfilePicture != nil {
		pic := *pp.ProfilePicture
		p.ProfilePicture = &pic
	}
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneExercises(in []WorkoutExercise) []WorkoutExercise {
	if in == nil {
		return nil
	}
	out := make([]WorkoutExercise, len(in))
	for i, ex := range in {
		out[i] = ex
		if ex.Duration != nil {
			d := *ex.Duration
			out[i].Duration = &d
		}
		if ex.Distance != nil {
			d := *ex.Distance
			out[i].Distance = &d
		}
	}
	return out
}

// Clone returns a copy of p that shares no memory with it.
func (p Principal) Clone() Principal {
	p.ProfilePicture = cloneString(p.ProfilePicture)
	return p
}

// Clone returns a copy of w that shares no memory with it.
func (w Workout) Clone() Workout {
	w.Exercises = cloneExercises(w.Exercises)
	w.Notes = cloneString(w.Notes)
	return w
}

// Clone returns a copy of m that shares no memory with it.
func (m Meal) Clone() Meal {
	if m.Items != nil {
		m.Items = append([]NutritionItem(nil), m.Items...)
	}
	m.Notes = cloneString(m.Notes)
	return m
}

// Clone returns a copy of g that shares no memory with it.
func (g Goal) Clone() Goal {
	g.Description = cloneString(g.Description)
	return g
}
