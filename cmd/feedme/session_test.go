package feedme

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/nav"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/wizard"
)

var errSaveFailed = errors.New("disk full")

type failingPlanRepo struct {
	repository.Repository
	fail bool
}

func (r *failingPlanRepo) SavePlanRequest(ctx context.Context, req model.PlanRequest) error {
	if r.fail {
		return errSaveFailed
	}
	return r.Repository.SavePlanRequest(ctx, req)
}

func newTestSession(t *testing.T, repo repository.Repository) (*session, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	s, err := newSession(context.Background(), repo, buf)
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	t.Cleanup(s.close)
	return s, buf
}

func execAll(t *testing.T, s *session, lines ...string) {
	t.Helper()
	for _, line := range lines {
		if _, err := s.exec(context.Background(), line); err != nil {
			t.Fatalf("%q: %v", line, err)
		}
	}
}

func TestSessionKeepsWizardWhenSaveFails(t *testing.T) {
	repo := &failingPlanRepo{Repository: repository.NewMemory(), fail: true}
	s, _ := newTestSession(t, repo)
	execAll(t, s, "login", "go add", "inc dinner", "next", "favorites off", "next")

	if _, err := s.exec(context.Background(), "generate"); !errors.Is(err, errSaveFailed) {
		t.Fatalf("expected save error, got %v", err)
	}
	if s.shell.Current() != nav.RouteAddMeals {
		t.Fatalf("expected to stay on Add Meals, got %s", s.shell.Current())
	}
	if w := s.addMeals.Wizard; w.Step() != wizard.StepReview || w.Count(model.Dinner) != 1 {
		t.Fatalf("expected wizard untouched on review, got %s with %d dinners", w.Step(), w.Count(model.Dinner))
	}

	repo.fail = false
	execAll(t, s, "generate")
	if s.shell.Current() != nav.RouteMealPlan {
		t.Fatalf("expected Meal Plan after a successful save, got %s", s.shell.Current())
	}
	if s.addMeals.Wizard.Step() != wizard.StepCounts {
		t.Fatalf("expected wizard reset after save, got %s", s.addMeals.Wizard.Step())
	}
	reqs, err := repo.PlanRequests(context.Background())
	if err != nil {
		t.Fatalf("plan requests: %v", err)
	}
	if len(reqs) != 1 || reqs[0].Counts.Dinner != 1 {
		t.Fatalf("expected one saved request with 1 dinner, got %+v", reqs)
	}
}

func TestSessionRejectsEmptyPlan(t *testing.T) {
	s, _ := newTestSession(t, repository.NewMemory())
	execAll(t, s, "login", "go add", "inc breakfast", "next", "dec breakfast")

	if _, err := s.exec(context.Background(), "next"); !errors.Is(err, wizard.ErrNoMealsRequested) {
		t.Fatalf("expected ErrNoMealsRequested, got %v", err)
	}
	if s.shell.Current() != nav.RouteAddMeals {
		t.Fatalf("expected to stay on Add Meals, got %s", s.shell.Current())
	}
}
