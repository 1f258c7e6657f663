package testutil

import (
	"fmt"
	"time"

	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/models"
)

// Day returns midnight UTC of the given date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WorkoutBuilder provides fluent API for creating test workouts.
type WorkoutBuilder struct {
	workout models.Workout
}

func NewWorkout() *WorkoutBuilder {
	return &WorkoutBuilder{
		workout: models.Workout{
			UserID:         "user-1",
			Date:           Day(2024, time.January, 15).Add(9 * time.Hour),
			Name:           "Test Workout",
			Type:           "strength",
			Duration:       45,
			CaloriesBurned: 300,
		},
	}
}

func (b *WorkoutBuilder) WithUser(id string) *WorkoutBuilder {
	b.workout.UserID = id
	return b
}

func (b *WorkoutBuilder) WithName(name string) *WorkoutBuilder {
	b.workout.Name = name
	return b
}

func (b *WorkoutBuilder) WithType(t string) *WorkoutBuilder {
	b.workout.Type = t
	return b
}

func (b *WorkoutBuilder) On(date time.Time) *WorkoutBuilder {
	b.workout.Date = date
	return b
}

func (b *WorkoutBuilder) WithDuration(minutes, calories int) *WorkoutBuilder {
	b.workout.Duration = minutes
	b.workout.CaloriesBurned = calories
	return b
}

func (b *WorkoutBuilder) WithExercise(name string, sets, reps int, weight float64) *WorkoutBuilder {
	b.workout.Exercises = append(b.workout.Exercises, models.WorkoutExercise{
		ID:     fmt.Sprintf("%s-%d", config.PrefixExercise, len(b.workout.Exercises)+1),
		Name:   name,
		Sets:   sets,
		Reps:   reps,
		Weight: weight,
	})
	return b
}

func (b *WorkoutBuilder) Build() models.Workout {
	return b.workout.Clone()
}

// MealBuilder provides fluent API for creating test meals. Items added
// through the builder keep the totals consistent.
type MealBuilder struct {
	meal models.Meal
}

func NewMeal() *MealBuilder {
	return &MealBuilder{
		meal: models.Meal{
			UserID: "user-1",
			Date:   Day(2024, time.January, 15).Add(8 * time.Hour),
			Type:   models.MealBreakfast,
		},
	}
}

func (b *MealBuilder) WithUser(id string) *MealBuilder {
	b.meal.UserID = id
	return b
}

func (b *MealBuilder) WithType(t models.MealType) *MealBuilder {
	b.meal.Type = t
	return b
}

func (b *MealBuilder) On(date time.Time) *MealBuilder {
	b.meal.Date = date
	return b
}

func (b *MealBuilder) WithItem(name string, calories, protein, carbs, fat float64) *MealBuilder {
	b.meal.AddItem(models.NutritionItem{
		ID:          name,
		Name:        name,
		Calories:    calories,
		Protein:     protein,
		Carbs:       carbs,
		Fat:         fat,
		ServingSize: 100,
		Servings:    1,
	})
	return b
}

// WithTotals sets the totals directly, leaving the items alone.
func (b *MealBuilder) WithTotals(t models.NutritionTotals) *MealBuilder {
	b.meal.TotalCalories = t.Calories
	b.meal.TotalProtein = t.Protein
	b.meal.TotalCarbs = t.Carbs
	b.meal.TotalFat = t.Fat
	return b
}

func (b *MealBuilder) Build() models.Meal {
	return b.meal.Clone()
}

// GoalBuilder provides fluent API for creating test goals.
type GoalBuilder struct {
	goal models.Goal
}

func NewGoal() *GoalBuilder {
	return &GoalBuilder{
		goal: models.Goal{
			UserID:    "user-1",
			Title:     "Test Goal",
			Category:  models.CategoryStrength,
			Target:    10,
			Unit:      "reps",
			StartDate: Day(2024, time.January, 1),
			EndDate:   Day(2024, time.June, 30),
		},
	}
}

func (b *GoalBuilder) WithUser(id string) *GoalBuilder {
	b.goal.UserID = id
	return b
}

func (b *GoalBuilder) WithTitle(title string) *GoalBuilder {
	b.goal.Title = title
	return b
}

func (b *GoalBuilder) WithCategory(c models.GoalCategory) *GoalBuilder {
	b.goal.Category = c
	return b
}

func (b *GoalBuilder) WithProgress(current, target float64) *GoalBuilder {
	b.goal.CurrentValue = current
	b.goal.Target = target
	return b
}

func (b *GoalBuilder) Build() models.Goal {
	return b.goal.Clone()
}
