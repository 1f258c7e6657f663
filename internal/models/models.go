package models

import "time"

// MealType enumerates the slots a meal can be logged under.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Order returns the position of the meal type within a day.
func (t MealType) Order() int {
	switch t {
	case MealBreakfast:
		return 1
	case MealLunch:
		return 2
	case MealDinner:
		return 3
	case MealSnack:
		return 4
	default:
		return 5
	}
}

// GoalCategory enumerates the kinds of goal a user can track.
type GoalCategory string

const (
	CategoryWeight    GoalCategory = "weight"
	CategoryStrength  GoalCategory = "strength"
	CategoryCardio    GoalCategory = "cardio"
	CategoryNutrition GoalCategory = "nutrition"
	CategoryHabit     GoalCategory = "habit"
)

// Principal is the signed-in user.
type Principal struct {
	ID             string  `json:"id" yaml:"id"`
	Name           string  `json:"name" yaml:"name"`
	Email          string  `json:"email" yaml:"email"`
	ProfilePicture *string `json:"profilePicture,omitempty" yaml:"profilePicture,omitempty"`
}

// Credential is a principal together with its password hash.
type Credential struct {
	Principal
	PasswordHash []byte
}

// WorkoutExercise is a single exercise within a workout.
type WorkoutExercise struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Sets     int      `json:"sets" yaml:"sets"`
	Reps     int      `json:"reps" yaml:"reps"`
	Weight   float64  `json:"weight" yaml:"weight"`                         // kg
	Duration *int     `json:"duration,omitempty" yaml:"duration,omitempty"` // seconds
	Distance *float64 `json:"distance,omitempty" yaml:"distance,omitempty"` // meters
}

// Workout is one logged training session.
type Workout struct {
	ID             string            `json:"id" yaml:"id"`
	UserID         string            `json:"userId" yaml:"userId"`
	Date           time.Time         `json:"date" yaml:"date"`
	Name           string            `json:"name" yaml:"name"`
	Type           string            `json:"type" yaml:"type"`
	Duration       int               `json:"duration" yaml:"duration"` // minutes
	Exercises      []WorkoutExercise `json:"exercises" yaml:"exercises"`
	CaloriesBurned int               `json:"caloriesBurned" yaml:"caloriesBurned"`
	Notes          *string           `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NutritionItem is a food entry attached to a meal. Macros are already
// multiplied by Servings.
type NutritionItem struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Calories    float64 `json:"calories" yaml:"calories"`
	Protein     float64 `json:"protein" yaml:"protein"` // grams
	Carbs       float64 `json:"carbs" yaml:"carbs"`     // grams
	Fat         float64 `json:"fat" yaml:"fat"`         // grams
	ServingSize float64 `json:"servingSize" yaml:"servingSize"`
	Servings    float64 `json:"servings" yaml:"servings"`
}

// Meal groups nutrition items eaten together.
type Meal struct {
	ID            string          `json:"id" yaml:"id"`
	UserID        string          `json:"userId" yaml:"userId"`
	Date          time.Time       `json:"date" yaml:"date"`
	Type          MealType        `json:"type" yaml:"type"`
	Items         []NutritionItem `json:"items" yaml:"items"`
	TotalCalories float64         `json:"totalCalories" yaml:"totalCalories"`
	TotalProtein  float64         `json:"totalProtein" yaml:"totalProtein"`
	TotalCarbs    float64         `json:"totalCarbs" yaml:"totalCarbs"`
	TotalFat      float64         `json:"totalFat" yaml:"totalFat"`
	Notes         *string         `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Goal is a measurable target. Progress and IsCompleted are derived from
// CurrentValue and Target; see DeriveGoalStatus.
type Goal struct {
	ID           string       `json:"id" yaml:"id"`
	UserID       string       `json:"userId" yaml:"userId"`
	Title        string       `json:"title" yaml:"title"`
	Description  *string      `json:"description,omitempty" yaml:"description,omitempty"`
	Category     GoalCategory `json:"category" yaml:"category"`
	Target       float64      `json:"target" yaml:"target"`
	Unit         string       `json:"unit" yaml:"unit"`
	StartDate    time.Time    `json:"startDate" yaml:"startDate"`
	EndDate      time.Time    `json:"endDate" yaml:"endDate"`
	CurrentValue float64      `json:"currentValue" yaml:"currentValue"`
	Progress     int          `json:"progress" yaml:"progress"`
	IsCompleted  bool         `json:"isCompleted" yaml:"isCompleted"`
}

// NutritionTotals is the macro sum over a set of meals.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the field-wise sum of t and o.
func (t NutritionTotals) Add(o NutritionTotals) NutritionTotals {
	return NutritionTotals{
		Calories: t.Calories + o.Calories,
		Protein:  t.Protein + o.Protein,
		Carbs:    t.Carbs + o.Carbs,
		Fat:      t.Fat + o.Fat,
	}
}
