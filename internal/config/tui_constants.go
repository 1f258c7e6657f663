package config

// Layout constants.
const (
	// MinPanelWidth is the minimum width for a dashboard panel.
	MinPanelWidth = 24

	// CompactModeThreshold triggers single-column rendering below this width.
	CompactModeThreshold = 80

	// ProgressBarWidth is the width of goal progress bars.
	ProgressBarWidth = 30

	// TargetTitleWidth is the preferred width for workout and goal titles.
	TargetTitleWidth = 32
)

// Display limits.
const (
	// MaxVisibleGoals limits goals shown on the dashboard.
	MaxVisibleGoals = 3

	// MaxVisibleRows limits rows in list tabs before truncation.
	MaxVisibleRows = 15

	// TruncationSuffix appended to truncated strings.
	TruncationSuffix = "..."
)
