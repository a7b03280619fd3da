package wizard_test

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/nav"
	"github.com/esteban0203/FMA-2/internal/wizard"
)

type recordingNav struct {
	routes []string
	err    error
}

func (n *recordingNav) Navigate(route string) error {
	if n.err != nil {
		return n.err
	}
	n.routes = append(n.routes, route)
	return nil
}

func newWizard(t *testing.T) (*wizard.Wizard, *recordingNav) {
	t.Helper()
	n := &recordingNav{}
	return wizard.New(n, catalog.Recipes()), n
}

func TestDecrementSaturatesAtZero(t *testing.T) {
	t.Parallel()
	w, _ := newWizard(t)
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		mt := model.AllMealTypes[rng.Intn(len(model.AllMealTypes))]
		if rng.Intn(2) == 0 {
			w.Increment(mt)
		} else {
			w.Decrement(mt)
		}
		for _, t2 := range model.AllMealTypes {
			if w.Count(t2) < 0 {
				t.Fatalf("step %d: %s count went negative: %d", i, t2, w.Count(t2))
			}
		}
	}

	w.SetCount(model.Lunch, -4)
	if w.Count(model.Lunch) != 0 {
		t.Fatalf("expected negative SetCount to clamp to 0, got %d", w.Count(model.Lunch))
	}
}

func TestNextDisabledIffNoMeals(t *testing.T) {
	t.Parallel()
	w, _ := newWizard(t)
	if w.CanAdvance() {
		t.Fatalf("expected Next disabled with zero meals")
	}
	if err := w.Next(); !errors.Is(err, wizard.ErrNoMealsRequested) {
		t.Fatalf("expected ErrNoMealsRequested, got %v", err)
	}
	if w.Step() != wizard.StepCounts {
		t.Fatalf("failed Next changed the step to %s", w.Step())
	}

	w.Increment(model.Snack)
	if !w.CanAdvance() {
		t.Fatalf("expected Next enabled with one snack")
	}
	w.Decrement(model.Snack)
	if w.CanAdvance() {
		t.Fatalf("expected Next disabled again after removing the snack")
	}

	w.ApplySuggestion(model.Dinner)
	if w.Count(model.Dinner) != 2 || !w.CanAdvance() {
		t.Fatalf("expected suggestion to set 2 dinners, got %d", w.Count(model.Dinner))
	}
	if err := w.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	if w.Step() != wizard.StepPreferences {
		t.Fatalf("expected preferences step, got %s", w.Step())
	}
}

func TestBackTransitions(t *testing.T) {
	t.Parallel()
	w, _ := newWizard(t)
	if err := w.Back(); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition from first step, got %v", err)
	}
	w.Increment(model.Breakfast)
	_ = w.Next()
	_ = w.Next()
	if w.Step() != wizard.StepReview {
		t.Fatalf("expected review, got %s", w.Step())
	}
	if err := w.Next(); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected Next from review to fail, got %v", err)
	}
	if err := w.Back(); err != nil || w.Step() != wizard.StepPreferences {
		t.Fatalf("expected back to preferences, got %s err=%v", w.Step(), err)
	}
	if err := w.Back(); err != nil || w.Step() != wizard.StepCounts {
		t.Fatalf("expected back to counts, got %s err=%v", w.Step(), err)
	}
	if w.Count(model.Breakfast) != 1 {
		t.Fatalf("counts lost while moving between steps")
	}
}

func TestDietaryToggleIsInvolution(t *testing.T) {
	t.Parallel()
	w, _ := newWizard(t)
	if err := w.ToggleDietary("Low-Carb"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	before := w.Preferences().Dietary

	if err := w.ToggleDietary("Vegan"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !model.HasTag(w.Preferences().Dietary, "Vegan") {
		t.Fatalf("expected Vegan to be selected")
	}
	if err := w.ToggleDietary("vegan"); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !reflect.DeepEqual(w.Preferences().Dietary, before) {
		t.Fatalf("expected %v after double toggle, got %v", before, w.Preferences().Dietary)
	}
	if err := w.ToggleDietary("Carnivore"); err == nil {
		t.Fatalf("expected unknown tag to be rejected")
	}
}

func TestDefaultsAndProgress(t *testing.T) {
	t.Parallel()
	w, _ := newWizard(t)
	p := w.Preferences()
	if p.SkillLevel != model.SkillMedium || p.CookingTime != model.CookingMedium {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if !p.UseFavorites || !p.UseLeftovers || !p.OptimizeIngredients {
		t.Fatalf("expected toggles on by default, got %+v", p)
	}
	if got := w.Progress(); got < 0.33 || got > 0.34 {
		t.Fatalf("expected one third progress, got %f", got)
	}

	w.SetCount(model.Breakfast, 2)
	w.SetCount(model.Snack, 5)
	if w.EstimatedDays() != 3 {
		t.Fatalf("expected 3 days for 5 snacks, got %d", w.EstimatedDays())
	}
}

func TestGenerateWithoutFavorites(t *testing.T) {
	t.Parallel()
	w, n := newWizard(t)
	if _, err := w.Generate(); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected generate outside review to fail, got %v", err)
	}

	w.SetCount(model.Lunch, 3)
	w.SetUseFavorites(false)
	w.SetNotes("no mushrooms")
	_ = w.Next()
	_ = w.Next()

	out, err := w.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if out.NeedsFavorites {
		t.Fatalf("did not expect the favourites step")
	}
	if !reflect.DeepEqual(n.routes, []string{nav.RouteMealPlan}) {
		t.Fatalf("expected navigation to Meal Plan, got %v", n.routes)
	}
	req := out.Request
	if req.ID == "" || req.CreatedAt.IsZero() {
		t.Fatalf("expected id and timestamp, got %+v", req)
	}
	if req.Counts.Lunch != 3 || req.EstimatedDays != 3 || req.Preferences.Notes != "no mushrooms" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestGenerateWithFavoritesAddsStep(t *testing.T) {
	t.Parallel()
	w, n := newWizard(t)
	w.Increment(model.Dinner)
	_ = w.Next()
	_ = w.Next()

	if err := w.ToggleFavorite("3"); !errors.Is(err, wizard.ErrInvalidTransition) {
		t.Fatalf("expected favourites to be locked before the step, got %v", err)
	}

	out, err := w.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !out.NeedsFavorites || w.Step() != wizard.StepFavorites {
		t.Fatalf("expected favourites step, got %s", w.Step())
	}
	if len(n.routes) != 0 {
		t.Fatalf("navigated too early: %v", n.routes)
	}
	if w.Progress() != 1 {
		t.Fatalf("expected full progress on favourites step, got %f", w.Progress())
	}

	if err := w.ToggleFavorite("42"); !errors.Is(err, wizard.ErrUnknownRecipe) {
		t.Fatalf("expected ErrUnknownRecipe, got %v", err)
	}
	for _, id := range []string{"3", "1", "1"} {
		if err := w.ToggleFavorite(id); err != nil {
			t.Fatalf("toggle favourite %s: %v", id, err)
		}
	}

	req, err := w.Finish()
	if err != nil {
		t.Fatalf("finish: %v", err)
	}
	if !reflect.DeepEqual(req.FavoriteRecipeIDs, []string{"3"}) {
		t.Fatalf("expected favourites [3], got %v", req.FavoriteRecipeIDs)
	}
	if !reflect.DeepEqual(n.routes, []string{nav.RouteMealPlan}) {
		t.Fatalf("expected navigation to Meal Plan, got %v", n.routes)
	}
}

func TestGenerateNavigationFailure(t *testing.T) {
	t.Parallel()
	n := &recordingNav{err: nav.ErrNotAuthenticated}
	w := wizard.New(n, nil)
	w.Increment(model.Breakfast)
	w.SetUseFavorites(false)
	_ = w.Next()
	_ = w.Next()
	if _, err := w.Generate(); !errors.Is(err, nav.ErrNotAuthenticated) {
		t.Fatalf("expected navigation error to surface, got %v", err)
	}
	if w.Step() != wizard.StepReview {
		t.Fatalf("expected wizard to stay on review, got %s", w.Step())
	}
}

func TestEmptyPlanRefusedOnEveryStep(t *testing.T) {
	t.Parallel()
	w, n := newWizard(t)
	w.Increment(model.Breakfast)
	if err := w.Next(); err != nil {
		t.Fatalf("next: %v", err)
	}
	w.Decrement(model.Breakfast)
	if w.CanAdvance() {
		t.Fatalf("expected Next disabled on preferences with zero meals")
	}
	if err := w.Next(); !errors.Is(err, wizard.ErrNoMealsRequested) {
		t.Fatalf("expected ErrNoMealsRequested from preferences, got %v", err)
	}
	if w.Step() != wizard.StepPreferences {
		t.Fatalf("failed Next changed the step to %s", w.Step())
	}

	w.Increment(model.Breakfast)
	w.SetUseFavorites(false)
	_ = w.Next()
	w.Decrement(model.Breakfast)
	if _, err := w.Generate(); !errors.Is(err, wizard.ErrNoMealsRequested) {
		t.Fatalf("expected generate to refuse an empty plan, got %v", err)
	}

	w.Increment(model.Breakfast)
	w.SetUseFavorites(true)
	if _, err := w.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	w.Decrement(model.Breakfast)
	if _, err := w.Finish(); !errors.Is(err, wizard.ErrNoMealsRequested) {
		t.Fatalf("expected finish to refuse an empty plan, got %v", err)
	}
	if len(n.routes) != 0 {
		t.Fatalf("expected no navigation for an empty plan, got %v", n.routes)
	}
}

func TestRecorderRunsBeforeNavigation(t *testing.T) {
	t.Parallel()
	w, n := newWizard(t)
	saveErr := errors.New("disk full")
	var saved []model.PlanRequest
	w.OnComplete(func(req model.PlanRequest) error {
		if len(n.routes) != 0 {
			t.Errorf("navigated before the request was recorded: %v", n.routes)
		}
		if saveErr != nil {
			return saveErr
		}
		saved = append(saved, req)
		return nil
	})
	w.Increment(model.Dinner)
	w.SetUseFavorites(false)
	_ = w.Next()
	_ = w.Next()

	if _, err := w.Generate(); !errors.Is(err, saveErr) {
		t.Fatalf("expected recorder error to surface, got %v", err)
	}
	if w.Step() != wizard.StepReview || len(n.routes) != 0 {
		t.Fatalf("expected to stay on review without navigating, got %s %v", w.Step(), n.routes)
	}

	saveErr = nil
	out, err := w.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(saved) != 1 || saved[0].ID != out.Request.ID {
		t.Fatalf("expected the returned request to be recorded, got %v", saved)
	}
	if !reflect.DeepEqual(n.routes, []string{nav.RouteMealPlan}) {
		t.Fatalf("expected navigation to Meal Plan, got %v", n.routes)
	}
}
