package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/safooraa838/FitSync/internal/app"
	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/config"
	"github.com/safooraa838/FitSync/internal/database"
	"github.com/safooraa838/FitSync/internal/ids"
	"github.com/safooraa838/FitSync/internal/seed"
	"github.com/safooraa838/FitSync/internal/util"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2024, time.June, 14, 20, 0, 0, 0, time.UTC)

func setupEngine(t *testing.T, login bool) *app.Engine {
	t.Helper()
	ctx := context.Background()
	db, err := database.Open(ctx, filepath.Join(t.TempDir(), "model.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("db close failed: %v", err)
		}
	})
	fx, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default failed: %v", err)
	}
	if _, err := db.ImportFixtures(ctx, fx, bcrypt.MinCost); err != nil {
		t.Fatalf("ImportFixtures failed: %v", err)
	}
	e, err := app.New(app.Deps{
		Directory:  db,
		Sessions:   db.Sessions(),
		Source:     db,
		Gateway:    backend.NewSimulator(0, util.DiscardLogger()),
		IDs:        ids.UUID{},
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("app.New failed: %v", err)
	}
	if login {
		if ok, err := e.Identity.Login(ctx, "john@example.com", "password123"); !ok || err != nil {
			t.Fatalf("Login failed: ok=%v err=%v", ok, err)
		}
	}
	return e
}

func newTestModel(t *testing.T, login bool) MainModel {
	t.Helper()
	return NewMainModel(context.Background(), setupEngine(t, login), t.TempDir(),
		WithClock(func() time.Time { return fixedNow }))
}

func press(m MainModel, key string) (MainModel, tea.Cmd) {
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	model, cmd := m.Update(msg)
	return model.(MainModel), cmd
}

func TestNewMainModelSnapshot(t *testing.T) {
	m := newTestModel(t, true)
	s := m.snap
	if !s.signedIn || s.user.ID != "user-1" {
		t.Fatalf("expected john signed in, got %+v", s.user)
	}
	if s.meals != 3 || s.intake.Calories != 1267 {
		t.Fatalf("unexpected today totals: %d meals, %+v", s.meals, s.intake)
	}
	if len(s.week) != 3 || s.minutes == 0 || s.burned == 0 {
		t.Fatalf("expected 3 workouts this week, got %d", len(s.week))
	}
	if len(s.recent) != config.RecentWorkouts || s.recent[0].Name != "Leg Day" {
		t.Fatalf("expected recent workouts newest first, got %+v", s.recent)
	}
	if len(s.active) != 2 || s.completed != 1 {
		t.Fatalf("expected 2 active and 1 completed goal, got %d/%d", len(s.active), s.completed)
	}
}

func TestViewSignedIn(t *testing.T) {
	m := newTestModel(t, true)
	view := m.View()
	for _, want := range []string{"John Doe", "Today", "1267 kcal", "Leg Day", "Active goals", "Bench press 100kg", "1 completed"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q", want)
		}
	}
}

func TestViewSignedOut(t *testing.T) {
	m := newTestModel(t, false)
	if !strings.Contains(m.View(), "Not signed in") {
		t.Fatalf("expected signed-out view")
	}
	m, cmd := press(m, "e")
	if cmd != nil || m.err == nil {
		t.Fatalf("expected export to be refused when signed out")
	}
	if !strings.Contains(m.View(), "not signed in") {
		t.Fatalf("expected error in footer")
	}
	m, _ = press(m, "x")
	if m.err != nil {
		t.Fatalf("expected keypress to clear the error")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t, true)
	_, cmd := press(m, "q")
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestWindowSizeAdjustsProgressWidth(t *testing.T) {
	tests := []struct {
		name  string
		width int
		want  int
	}{
		{"wide", 160, config.ProgressBarWidth},
		{"compact", 60, 20},
		{"tiny", 12, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, true)
			model, _ := m.Update(tea.WindowSizeMsg{Width: tt.width, Height: 40})
			got := model.(MainModel).progress.Width
			if got != tt.want {
				t.Fatalf("expected progress width %d, got %d", tt.want, got)
			}
			if model.(MainModel).View() == "" {
				t.Fatalf("expected non-empty view")
			}
		})
	}
}

func TestTickReloadsAndReschedules(t *testing.T) {
	m := newTestModel(t, true)
	m.engine.Workouts.Remove(context.Background(), m.snap.recent[0].ID)
	model, cmd := m.Update(tickMsg(fixedNow))
	updated := model.(MainModel)
	if cmd == nil {
		t.Fatalf("expected next tick to be scheduled")
	}
	if len(updated.snap.week) != 2 {
		t.Fatalf("expected reload to drop the removed workout, got %d", len(updated.snap.week))
	}
}

func TestRefreshKey(t *testing.T) {
	m := newTestModel(t, true)
	m.engine.Goals.UpdateProgress(context.Background(), m.snap.active[0].ID, 1000)
	m, _ = press(m, "r")
	if m.status != "Refreshed" {
		t.Fatalf("expected refresh status, got %q", m.status)
	}
	if len(m.snap.active) != 1 || m.snap.completed != 2 {
		t.Fatalf("expected completed goal to move off the active list")
	}
}

func TestSearchFlow(t *testing.T) {
	m := newTestModel(t, true)
	m, _ = press(m, "/")
	if !m.searching {
		t.Fatalf("expected search mode")
	}
	m, _ = press(m, "run")
	if len(m.snap.matches) != 1 || m.snap.matches[0].Name != "Evening Run" {
		t.Fatalf("expected one match, got %+v", m.snap.matches)
	}
	m, _ = press(m, "enter")
	if m.searching || m.search.Value() != "run" {
		t.Fatalf("expected search to close and keep its query")
	}
	if !strings.Contains(m.View(), "Search workouts") {
		t.Fatalf("expected search results panel")
	}

	m, _ = press(m, "/")
	m, _ = press(m, "esc")
	if m.search.Value() != "" || m.snap.matches != nil {
		t.Fatalf("expected esc to clear the search")
	}
}

func TestThemeCycle(t *testing.T) {
	t.Cleanup(func() { SetTheme("default") })
	m := newTestModel(t, true)
	m, _ = press(m, "t")
	if CurrentTheme.Name != "Dracula" {
		t.Fatalf("expected dracula theme, got %s", CurrentTheme.Name)
	}
	m, _ = press(m, "t")
	if CurrentTheme.Name != "Default" {
		t.Fatalf("expected default theme, got %s", CurrentTheme.Name)
	}
}

func TestExportWritesReport(t *testing.T) {
	m := newTestModel(t, true)
	m, cmd := press(m, "e")
	if cmd == nil {
		t.Fatalf("expected export command")
	}
	msg, ok := cmd().(exportedMsg)
	if !ok || msg.err != nil {
		t.Fatalf("export failed: %+v", msg)
	}
	if filepath.Base(msg.path) != "fitsync_week_2024-06-14.pdf" {
		t.Fatalf("unexpected report path %s", msg.path)
	}
	if _, err := os.Stat(msg.path); err != nil {
		t.Fatalf("report not written: %v", err)
	}
	model, _ := m.Update(msg)
	if !strings.Contains(model.(MainModel).status, msg.path) {
		t.Fatalf("expected status to mention the report path")
	}
}

func TestTruncateLabel(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Leg Day", 10, "Leg Day"},
		{"Upper Body Strength", 10, "Upper B..."},
		{"anything", 0, ""},
	}
	for _, tt := range tests {
		if got := truncateLabel(tt.in, tt.max); got != tt.want {
			t.Fatalf("truncateLabel(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}
