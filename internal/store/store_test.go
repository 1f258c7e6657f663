package store

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/safooraa838/FitSync/internal/backend"
	"github.com/safooraa838/FitSync/internal/ids"
	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/testutil"
	"github.com/safooraa838/FitSync/internal/util"
)

var (
	alice = &models.Principal{ID: "user-1", Name: "Alice", Email: "alice@example.com"}
	bob   = &models.Principal{ID: "user-2", Name: "Bob", Email: "bob@example.com"}
)

func testOptions() []Option {
	return []Option{WithIDs(&ids.Sequence{}), WithLogger(util.DiscardLogger())}
}

func newSimulator() *backend.Simulator {
	return backend.NewSimulator(0, util.DiscardLogger())
}

// emptySource answers every lookup with nothing.
type emptySource struct{}

func (emptySource) Workouts(context.Context, string) ([]models.Workout, error) { return nil, nil }
func (emptySource) Meals(context.Context, string) ([]models.Meal, error)       { return nil, nil }
func (emptySource) Goals(context.Context, string) ([]models.Goal, error)       { return nil, nil }

func TestSessionScopingReloadsPerPrincipal(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)

	src.EXPECT().Workouts(gomock.Any(), "user-1").Return([]models.Workout{
		testutil.NewWorkout().WithUser("user-1").WithName("Alice run").Build(),
		testutil.NewWorkout().WithUser("user-2").WithName("stray").Build(),
	}, nil)
	src.EXPECT().Workouts(gomock.Any(), "user-2").Return([]models.Workout{
		testutil.NewWorkout().WithUser("user-2").WithName("Bob lift").Build(),
	}, nil)

	s := NewWorkouts(src, newSimulator(), testOptions()...)
	s.OnSessionChanged(ctx, alice)
	got := s.All()
	if len(got) != 1 || got[0].Name != "Alice run" {
		t.Fatalf("expected only Alice's workout, got %+v", got)
	}

	s.OnSessionChanged(ctx, nil)
	if n := len(s.All()); n != 0 {
		t.Fatalf("expected empty log after logout, got %d", n)
	}

	s.OnSessionChanged(ctx, bob)
	got = s.All()
	if len(got) != 1 || got[0].UserID != "user-2" {
		t.Fatalf("expected only Bob's workout, got %+v", got)
	}
}

func TestSessionChangeDiscardsLocalAdds(t *testing.T) {
	ctx := context.Background()
	s := NewGoals(emptySource{}, newSimulator(), testOptions()...)
	s.OnSessionChanged(ctx, alice)
	s.Add(ctx, testutil.NewGoal().Build())
	s.OnSessionChanged(ctx, alice)
	if n := len(s.All()); n != 0 {
		t.Fatalf("expected reload to discard in-memory goals, got %d", n)
	}
}

func TestSourceFailureLeavesStoreEmpty(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	src.EXPECT().Meals(gomock.Any(), "user-1").Return(nil, errors.New("seed unavailable"))

	s := NewNutrition(src, newSimulator(), testOptions()...)
	s.OnSessionChanged(ctx, alice)
	if n := len(s.All()); n != 0 {
		t.Fatalf("expected empty log, got %d", n)
	}
}

func TestNilSourceIsTolerated(t *testing.T) {
	s := NewWorkouts(nil, newSimulator(), testOptions()...)
	s.OnSessionChanged(context.Background(), alice)
	if n := len(s.All()); n != 0 {
		t.Fatalf("expected empty log, got %d", n)
	}
}

func TestMutationsReachGateway(t *testing.T) {
	ctx := context.Background()
	gw := newSimulator()
	s := NewWorkouts(emptySource{}, gw, testOptions()...)
	s.OnSessionChanged(ctx, alice)

	w := s.Add(ctx, testutil.NewWorkout().Build())
	name := "renamed"
	s.Update(ctx, w.ID, models.WorkoutPatch{Name: &name})
	s.Update(ctx, "missing", models.WorkoutPatch{Name: &name})
	s.Remove(ctx, w.ID)
	s.Remove(ctx, w.ID)

	got := gw.Mutations()
	want := []backend.Op{backend.OpAdd, backend.OpUpdate, backend.OpRemove}
	if len(got) != len(want) {
		t.Fatalf("expected %d mutations, got %+v", len(want), got)
	}
	for i, m := range got {
		if m.Op != want[i] || m.ID != w.ID || m.Resource != "workouts" || m.UserID != "user-1" {
			t.Fatalf("mutation %d: unexpected %+v", i, m)
		}
	}
}
