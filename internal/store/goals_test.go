package store

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/safooraa838/FitSync/internal/models"
	"github.com/safooraa838/FitSync/internal/testutil"
)

func newTestGoals(t *testing.T) *Goals {
	t.Helper()
	s := NewGoals(emptySource{}, newSimulator(), testOptions()...)
	s.OnSessionChanged(context.Background(), alice)
	return s
}

func assertPartition(t *testing.T, s *Goals) {
	t.Helper()
	all := s.All()
	seen := make(map[string]int)
	for _, g := range s.Active() {
		seen[g.ID]++
	}
	for _, g := range s.Completed() {
		seen[g.ID]++
	}
	if len(seen) != len(all) {
		t.Fatalf("partition covers %d goals, collection has %d", len(seen), len(all))
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("goal %s appears in %d partitions", id, n)
		}
	}
}

func assertDerived(t *testing.T, g models.Goal) {
	t.Helper()
	progress, completed := models.DeriveGoalStatus(g.CurrentValue, g.Target)
	if g.Progress != progress || g.IsCompleted != completed {
		t.Fatalf("goal %s holds (%d, %v), formula gives (%d, %v)", g.ID, g.Progress, g.IsCompleted, progress, completed)
	}
}

func TestGoalLifecycleReappliesFormula(t *testing.T) {
	ctx := context.Background()
	s := newTestGoals(t)

	g := s.Add(ctx, testutil.NewGoal().WithProgress(5, 10).Build())
	if g.Progress != 50 || g.IsCompleted {
		t.Fatalf("creation: expected 50%% active, got %d %v", g.Progress, g.IsCompleted)
	}

	s.UpdateProgress(ctx, g.ID, 10)
	got, _ := s.Get(g.ID)
	if got.Progress != 100 || !got.IsCompleted {
		t.Fatalf("completion: expected 100%% completed, got %d %v", got.Progress, got.IsCompleted)
	}
	if len(s.Completed()) != 1 || len(s.Active()) != 0 {
		t.Fatalf("completed goal should only appear in Completed()")
	}

	three := 3.0
	s.Update(ctx, g.ID, models.GoalPatch{CurrentValue: &three})
	got, _ = s.Get(g.ID)
	if got.Progress != 30 || got.IsCompleted {
		t.Fatalf("regression: expected 30%% active, got %d %v", got.Progress, got.IsCompleted)
	}
	if len(s.Active()) != 1 || len(s.Completed()) != 0 {
		t.Fatalf("regressed goal should be back in Active()")
	}
}

func TestGoalAddOverridesCallerProgress(t *testing.T) {
	s := newTestGoals(t)
	in := testutil.NewGoal().WithProgress(1, 4).Build()
	in.Progress = 99
	in.IsCompleted = true
	out := s.Add(context.Background(), in)
	if out.Progress != 25 || out.IsCompleted {
		t.Fatalf("expected derived 25%% active, got %d %v", out.Progress, out.IsCompleted)
	}
}

func TestGoalUpdatesKeepDerivedFields(t *testing.T) {
	ctx := context.Background()
	s := newTestGoals(t)
	g := s.Add(ctx, testutil.NewGoal().WithProgress(8, 10).Build())

	title := "Renamed"
	target := 8.0
	zero := 0.0
	over := 25.0
	patches := []models.GoalPatch{
		{Title: &title},
		{Target: &target},
		{Target: &zero},
		{Target: &target, CurrentValue: &over},
	}
	for i, p := range patches {
		s.Update(ctx, g.ID, p)
		got, _ := s.Get(g.ID)
		assertDerived(t, got)
		assertPartition(t, s)
		if i == 0 && got.Title != title {
			t.Fatalf("title not applied")
		}
	}
	got, _ := s.Get(g.ID)
	if got.Progress != 100 || !got.IsCompleted {
		t.Fatalf("expected overshoot to clamp at 100, got %d", got.Progress)
	}
}

func TestGoalPartitionAcrossMixedGoals(t *testing.T) {
	ctx := context.Background()
	s := newTestGoals(t)
	for _, v := range [][2]float64{{0, 10}, {10, 10}, {7, 10}, {12, 10}, {1, 0}} {
		s.Add(ctx, testutil.NewGoal().WithProgress(v[0], v[1]).Build())
	}
	assertPartition(t, s)
	if len(s.Completed()) != 2 || len(s.Active()) != 3 {
		t.Fatalf("expected 2 completed and 3 active, got %d and %d", len(s.Completed()), len(s.Active()))
	}
}

func TestGoalUnknownIDsAreNoOps(t *testing.T) {
	ctx := context.Background()
	s := newTestGoals(t)
	g := s.Add(ctx, testutil.NewGoal().WithProgress(5, 10).Build())
	s.UpdateProgress(ctx, "goal-999", 10)
	s.Remove(ctx, "goal-999")
	got, ok := s.Get(g.ID)
	if !ok || got.Progress != 50 || len(s.All()) != 1 {
		t.Fatalf("unknown ids must not change the store")
	}
	s.Remove(ctx, g.ID)
	if len(s.All()) != 0 {
		t.Fatalf("expected goal removed")
	}
}

func TestLoadedGoalsAreRederived(t *testing.T) {
	ctrl := gomock.NewController(t)
	src := NewMockSource(ctrl)
	stale := testutil.NewGoal().WithProgress(10, 10).Build()
	stale.ID = "goal-seed"
	stale.Progress = 12
	src.EXPECT().Goals(gomock.Any(), "user-1").Return([]models.Goal{stale}, nil)

	s := NewGoals(src, newSimulator(), testOptions()...)
	s.OnSessionChanged(context.Background(), alice)
	got, ok := s.Get("goal-seed")
	if !ok || got.Progress != 100 || !got.IsCompleted {
		t.Fatalf("expected loaded goal re-derived, got %+v", got)
	}
}
