package config

import "time"

// Simulated backend timings.
const (
	// AuthLatency is the fixed round-trip delay for login and register.
	AuthLatency = 800 * time.Millisecond
	// RefreshInterval is how often the dashboard re-reads derived views.
	RefreshInterval = 30 * time.Second
)

// Identifier prefixes.
const (
	PrefixUser     = "user"
	PrefixWorkout  = "workout"
	PrefixExercise = "exercise"
	PrefixMeal     = "meal"
	PrefixFood     = "food"
	PrefixGoal     = "goal"
)

// Database/application settings.
const (
	AppName        = "fitsync"
	DBFileName     = "fitsync.db"
	LogFileName    = "fitsync.log"
	SessionKey     = "fitsync_user"
	ReportPrefix   = "fitsync_week_"
	DaysPerWeek    = 7
	RecentWorkouts = 3
)
