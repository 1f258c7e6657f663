// Package tui is the terminal dashboard over the engine: today's intake,
// this week's workouts and the active goals.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/safooraa838/FitSync/internal/app"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/report"
)

type tickMsg time.Time

type exportedMsg struct {
	path string
	err  error
}

// snapshot is what the dashboard renders. It is rebuilt from the stores on
// every refresh so the view never reads them directly.
type snapshot struct {
	signedIn  bool
	user      models.Principal
	today     time.Time
	intake    models.NutritionTotals
	meals     int
	week      []models.Workout
	minutes   int
	burned    int
	recent    []models.Workout
	active    []models.Goal
	completed int
	matches   []models.Workout
}

// MainModel is the root bubbletea model.
type MainModel struct {
	ctx       context.Context
	engine    *app.Engine
	reportDir string
	now       func() time.Time
	refresh   time.Duration

	snap      snapshot
	progress  progress.Model
	search    textinput.Model
	searching bool
	themeIdx  int

	width  int
	height int
	status string
	err    error
}

type Option func(*MainModel)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option { return func(m *MainModel) { m.now = now } }

// WithRefreshInterval sets how often the snapshot is rebuilt.
func WithRefreshInterval(d time.Duration) Option { return func(m *MainModel) { m.refresh = d } }

func NewMainModel(ctx context.Context, e *app.Engine, reportDir string, opts ...Option) MainModel {
	ti := textinput.New()
	ti.Placeholder = "name or type:cardio"
	ti.CharLimit = 64
	ti.Width = config.TargetTitleWidth

	m := MainModel{
		ctx:       ctx,
		engine:    e,
		reportDir: reportDir,
		now:       time.Now,
		refresh:   config.RefreshInterval,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		search:    ti,
	}
	m.progress.Width = config.ProgressBarWidth
	for _, opt := range opts {
		opt(&m)
	}
	m.reload()
	return m
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd(m.refresh))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *MainModel) reload() {
	e := m.engine
	loc := e.Location()
	now := m.now()
	today := report.StartOfDay(now, loc)
	weekStart := today.AddDate(0, 0, -(config.DaysPerWeek - 1))

	p, ok := e.Identity.Current()
	s := snapshot{
		signedIn: ok,
		user:     p,
		today:    today,
		intake:   e.Nutrition.DailyTotals(today),
		meals:    len(e.Nutrition.ByDate(today)),
		week:     e.Workouts.Since(weekStart),
		recent:   e.Workouts.Recent(config.RecentWorkouts),
		active:   e.Goals.Active(),
	}
	for _, w := range s.week {
		s.minutes += w.Duration
		s.burned += w.CaloriesBurned
	}
	s.completed = len(e.Goals.Completed())
	if q := m.search.Value(); q != "" {
		s.matches = e.Workouts.Search(q)
	}
	m.snap = s
}

// exportCmd builds the weekly summary now and writes the PDF off the
// update loop.
func (m MainModel) exportCmd() tea.Cmd {
	e := m.engine
	wk := report.Build(m.snap.user, m.now(), e.Location(), e.Workouts, e.Nutrition, e.Goals)
	dir := m.reportDir
	return func() tea.Msg {
		path, err := report.SavePDF(dir, wk)
		return exportedMsg{path: path, err: err}
	}
}
