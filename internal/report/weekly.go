// Package report aggregates a week of activity and renders it.
package report

import (
	"time"

	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/models"
)

// WorkoutLog is the read side of the workout store used by reports.
type WorkoutLog interface {
	ByDateRange(start, end time.Time) []models.Workout
	Recent(n int) []models.Workout
}

// MealLog is the read side of the nutrition store used by reports.
type MealLog interface {
	ByDate(day time.Time) []models.Meal
	DailyTotals(day time.Time) models.NutritionTotals
}

// GoalBoard is the read side of the goal store used by reports.
type GoalBoard interface {
	Active() []models.Goal
	Completed() []models.Goal
}

// Day is one calendar day of a Weekly.
type Day struct {
	Date           time.Time
	Intake         models.NutritionTotals
	Meals          int
	Workouts       int
	Minutes        int
	CaloriesBurned int
}

// Weekly summarises seven calendar days ending on End.
type Weekly struct {
	User  models.Principal
	Start time.Time
	End   time.Time
	Days  []Day

	Workouts       int
	Minutes        int
	CaloriesBurned int
	// AverageIntake is averaged over the days with at least one meal.
	AverageIntake models.NutritionTotals
	LoggedDays    int

	Recent    []models.Workout
	Active    []models.Goal
	Completed []models.Goal
}

// StartOfDay returns midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Build aggregates the week ending on the calendar day of end.
func Build(user models.Principal, end time.Time, loc *time.Location, w WorkoutLog, n MealLog, g GoalBoard) Weekly {
	if loc == nil {
		loc = time.UTC
	}
	last := StartOfDay(end, loc)
	first := last.AddDate(0, 0, -(config.DaysPerWeek - 1))
	rangeEnd := last.AddDate(0, 0, 1).Add(-time.Nanosecond)

	wk := Weekly{
		User:      user,
		Start:     first,
		End:       last,
		Days:      make([]Day, config.DaysPerWeek),
		Recent:    w.Recent(config.RecentWorkouts),
		Active:    g.Active(),
		Completed: g.Completed(),
	}
	for i := range wk.Days {
		day := first.AddDate(0, 0, i)
		wk.Days[i] = Day{
			Date:   day,
			Intake: n.DailyTotals(day),
			Meals:  len(n.ByDate(day)),
		}
	}
	for _, workout := range w.ByDateRange(first, rangeEnd) {
		i := dayIndex(first, workout.Date, loc)
		if i < 0 || i >= len(wk.Days) {
			continue
		}
		wk.Days[i].Workouts++
		wk.Days[i].Minutes += workout.Duration
		wk.Days[i].CaloriesBurned += workout.CaloriesBurned
	}

	var intake models.NutritionTotals
	for _, d := range wk.Days {
		wk.Workouts += d.Workouts
		wk.Minutes += d.Minutes
		wk.CaloriesBurned += d.CaloriesBurned
		if d.Meals > 0 {
			wk.LoggedDays++
			intake = intake.Add(d.Intake)
		}
	}
	if wk.LoggedDays > 0 {
		days := float64(wk.LoggedDays)
		wk.AverageIntake = models.NutritionTotals{
			Calories: intake.Calories / days,
			Protein:  intake.Protein / days,
			Carbs:    intake.Carbs / days,
			Fat:      intake.Fat / days,
		}
	}
	return wk
}

func dayIndex(first, t time.Time, loc *time.Location) int {
	d := StartOfDay(t, loc)
	y1, m1, d1 := first.Date()
	y2, m2, d2 := d.Date()
	a := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	b := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
