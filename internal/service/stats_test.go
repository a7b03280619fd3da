package service_test

import (
	"math"
	"testing"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/service"
)

func TestSummarizePoints(t *testing.T) {
	t.Parallel()
	s := service.SummarizePoints(model.Points{Efficiency: 145, Nutrition: 280, Cooking: 95})
	if s.Total != 520 {
		t.Fatalf("expected total 520, got %d", s.Total)
	}
	if s.NextMilestone != 600 {
		t.Fatalf("expected next milestone 600, got %d", s.NextMilestone)
	}
	if math.Abs(s.BlockProgress-0.20) > 1e-9 {
		t.Fatalf("expected block progress 0.20, got %f", s.BlockProgress)
	}
}

func TestNextMilestoneOnExactBlock(t *testing.T) {
	t.Parallel()
	if got := service.NextMilestone(500); got != 500 {
		t.Fatalf("expected 500 for an exact multiple, got %d", got)
	}
	if got := service.NextMilestone(501); got != 600 {
		t.Fatalf("expected 600, got %d", got)
	}
	if got := service.BlockProgress(500); got != 0 {
		t.Fatalf("expected zero progress on an exact multiple, got %f", got)
	}
}

func TestMilestoneProgressOverflow(t *testing.T) {
	t.Parallel()
	m := model.Milestone{ID: "n4", Category: model.Nutrition, PointsRequired: 50}
	p := service.ProgressFor(60, m)
	if math.Abs(p.Ratio-1.2) > 1e-9 {
		t.Fatalf("expected unclamped ratio 1.2, got %f", p.Ratio)
	}
	if p.BarWidth != 1 {
		t.Fatalf("expected bar width clamped to 1, got %f", p.BarWidth)
	}
	if p.Label() != "60/50 points" {
		t.Fatalf("expected label 60/50 points, got %q", p.Label())
	}
	if !p.Reached() {
		t.Fatalf("expected milestone to be reached")
	}
}

func TestCategoryProgressKeepsCatalogOrder(t *testing.T) {
	t.Parallel()
	progress := service.CategoryProgress(catalog.UserPoints(), catalog.Milestones(), model.Cooking)
	if len(progress) != 3 {
		t.Fatalf("expected 3 cooking milestones, got %d", len(progress))
	}
	if progress[0].Milestone.ID != "c1" || progress[2].Milestone.ID != "c3" {
		t.Fatalf("unexpected order: %s..%s", progress[0].Milestone.ID, progress[2].Milestone.ID)
	}
	// 95 cooking points against 50 required.
	if progress[0].BarWidth != 1 || math.Abs(progress[2].Ratio-0.95) > 1e-9 {
		t.Fatalf("unexpected progress %+v", progress)
	}
}

func TestRecipeReadiness(t *testing.T) {
	t.Parallel()
	recipes := catalog.Recipes()
	want := map[string]service.RecipeStatus{
		"1": service.RecipeStale,
		"2": service.RecipeMissing,
		"3": service.RecipeReady,
		"4": service.RecipeReady,
	}
	for _, r := range recipes {
		if got := service.StatusOf(r); got != want[r.ID] {
			t.Fatalf("recipe %s: expected %s, got %s", r.ID, want[r.ID], got)
		}
	}

	overall := service.Overall(recipes)
	if overall.TotalMeals != 4 || overall.TotalComplete != 2 || overall.TotalMissing != 1 {
		t.Fatalf("unexpected overall stats %+v", overall)
	}
	// One day each for breakfast, lunch, dinner; one snack still rounds up to a day.
	if overall.TotalDays != 4 {
		t.Fatalf("expected 4 total days, got %d", overall.TotalDays)
	}

	snacks := service.StatsForType(model.Snack, append(recipes, model.Recipe{ID: "5", Type: model.Snack}, model.Recipe{ID: "6", Type: model.Snack}))
	if snacks.Meals != 3 || snacks.DaysPlanned != 2 {
		t.Fatalf("expected 3 snacks over 2 days, got %+v", snacks)
	}
}

func TestEstimatedDays(t *testing.T) {
	t.Parallel()
	cases := []struct {
		counts model.MealCounts
		want   int
	}{
		{model.MealCounts{}, 0},
		{model.MealCounts{Snack: 1}, 1},
		{model.MealCounts{Snack: 5}, 3},
		{model.MealCounts{Breakfast: 2, Lunch: 3, Dinner: 2, Snack: 4}, 3},
		{model.MealCounts{Dinner: 7, Snack: 16}, 8},
	}
	for _, tc := range cases {
		if got := service.EstimatedDays(tc.counts); got != tc.want {
			t.Fatalf("counts %+v: expected %d days, got %d", tc.counts, tc.want, got)
		}
	}
}

func TestSummarizeInventory(t *testing.T) {
	t.Parallel()
	s := service.SummarizeInventory(catalog.Inventory(), catalog.ShoppingList())
	if s.ExpiringSoon != 2 || s.LowStock != 1 || s.UrgentShopping != 2 || s.ShoppingItems != 5 {
		t.Fatalf("unexpected inventory summary %+v", s)
	}
}
