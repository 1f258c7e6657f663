package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/database"
	"github.com/safooraa838/FitSync/internal/ids"
	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/seed"
	"github.com/safooraa838/FitSync/internal/testutil"
	"github.com/safooraa838/FitSync/internal/util"
	"golang.org/x/crypto/bcrypt"
)

func openDB(t *testing.T, path string) *database.Database {
	t.Helper()
	db, err := database.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newEngine(t *testing.T, db *database.Database) *Engine {
	t.Helper()
	ctx := context.Background()
	fx, err := seed.Default()
	if err != nil {
		t.Fatalf("seed.Default failed: %v", err)
	}
	if _, err := db.ImportFixtures(ctx, fx, bcrypt.MinCost); err != nil {
		t.Fatalf("ImportFixtures failed: %v", err)
	}
	e, err := New(Deps{
		Directory:  db,
		Sessions:   db.Sessions(),
		Source:     db,
		Gateway:    backend.NewSimulator(0, util.DiscardLogger()),
		IDs:        ids.UUID{},
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e
}

func userIDs[T any](items []T, owner func(T) string) map[string]int {
	out := make(map[string]int)
	for _, it := range items {
		out[owner(it)]++
	}
	return out
}

func TestNewRequiresCollaborators(t *testing.T) {
	if _, err := New(Deps{}); err == nil {
		t.Fatalf("expected error for missing collaborators")
	}
}

func TestSessionScopingAcrossPrincipals(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, openDB(t, filepath.Join(t.TempDir(), "fitsync.db")))

	if ok, err := e.Identity.Login(ctx, "john@example.com", "password123"); !ok || err != nil {
		t.Fatalf("Login failed: ok=%v err=%v", ok, err)
	}
	if owners := userIDs(e.Workouts.All(), func(w models.Workout) string { return w.UserID }); owners["user-1"] != 3 || len(owners) != 1 {
		t.Fatalf("expected 3 workouts of user-1 only, got %v", owners)
	}
	if n := len(e.Nutrition.All()); n != 3 {
		t.Fatalf("expected 3 meals, got %d", n)
	}
	if n := len(e.Goals.All()); n != 3 {
		t.Fatalf("expected 3 goals, got %d", n)
	}
	e.Workouts.Add(ctx, testutil.NewWorkout().WithUser("").Build())

	e.Identity.Logout(ctx)
	if len(e.Workouts.All())+len(e.Nutrition.All())+len(e.Goals.All()) != 0 {
		t.Fatalf("expected all stores empty after logout")
	}

	if ok, _ := e.Identity.Login(ctx, "jane@example.com", "password123"); !ok {
		t.Fatalf("Login as jane failed")
	}
	for _, w := range e.Workouts.All() {
		if w.UserID != "user-2" {
			t.Fatalf("found foreign workout %+v", w)
		}
	}
	for _, m := range e.Nutrition.All() {
		if m.UserID != "user-2" {
			t.Fatalf("found foreign meal %+v", m)
		}
	}
	for _, g := range e.Goals.All() {
		if g.UserID != "user-2" {
			t.Fatalf("found foreign goal %+v", g)
		}
	}
	if len(e.Workouts.All()) != 1 || len(e.Goals.All()) != 1 {
		t.Fatalf("expected jane's single workout and goal")
	}
}

func TestFailedLoginLeavesStoresEmpty(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, openDB(t, filepath.Join(t.TempDir(), "fitsync.db")))
	ok, err := e.Identity.Login(ctx, "x@example.com", "wrong")
	if err != nil || ok {
		t.Fatalf("expected login to fail, ok=%v err=%v", ok, err)
	}
	if e.Identity.IsAuthenticated() || len(e.Workouts.All()) != 0 {
		t.Fatalf("failed login must not establish a session")
	}
}

func TestRestartRestoresSession(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fitsync.db")
	db := openDB(t, path)
	first := newEngine(t, db)
	if ok, _ := first.Identity.Login(ctx, "john@example.com", "password123"); !ok {
		t.Fatalf("Login failed")
	}

	second := newEngine(t, db)
	if second.Identity.IsAuthenticated() {
		t.Fatalf("session must not be active before Start")
	}
	ok, err := second.Start(ctx)
	if err != nil || !ok {
		t.Fatalf("Start failed: ok=%v err=%v", ok, err)
	}
	if p, _ := second.Identity.Current(); p.ID != "user-1" {
		t.Fatalf("expected user-1 restored, got %+v", p)
	}
	if n := len(second.Goals.All()); n != 3 {
		t.Fatalf("expected stores populated on restore, got %d goals", n)
	}
}

func TestRegisterThenDailyTotals(t *testing.T) {
	ctx := context.Background()
	e := newEngine(t, openDB(t, filepath.Join(t.TempDir(), "fitsync.db")))
	ok, err := e.Identity.Register(ctx, "New User", "new@example.com", "pw")
	if err != nil || !ok {
		t.Fatalf("Register failed: ok=%v err=%v", ok, err)
	}
	if n := len(e.Nutrition.All()); n != 0 {
		t.Fatalf("new user should start empty, got %d meals", n)
	}

	day := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	e.Nutrition.Add(ctx, testutil.NewMeal().WithUser("").On(day.Add(8*time.Hour)).
		WithTotals(models.NutritionTotals{Calories: 300, Protein: 20, Carbs: 30, Fat: 10}).Build())
	e.Nutrition.Add(ctx, testutil.NewMeal().WithUser("").On(day.Add(13*time.Hour)).
		WithTotals(models.NutritionTotals{Calories: 500, Protein: 40, Carbs: 50, Fat: 20}).Build())

	want := models.NutritionTotals{Calories: 800, Protein: 60, Carbs: 80, Fat: 30}
	if got := e.Nutrition.DailyTotals(day); got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	p, _ := e.Identity.Current()
	for _, m := range e.Nutrition.All() {
		if m.UserID != p.ID {
			t.Fatalf("meal stamped with %q, want %q", m.UserID, p.ID)
		}
	}
}
