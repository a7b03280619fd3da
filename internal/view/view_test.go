package view_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/nav"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/service"
	"github.com/esteban0203/FMA-2/internal/state"
	"github.com/esteban0203/FMA-2/internal/view"
	"github.com/esteban0203/FMA-2/internal/wizard"
)

func render(t *testing.T, s view.Screen) string {
	t.Helper()
	var buf bytes.Buffer
	if err := s.Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	return buf.String()
}

func mustContain(t *testing.T, out string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestLoginGetStarted(t *testing.T) {
	t.Parallel()
	store := state.NewStore()
	login := view.NewLogin(store.Auth)
	mustContain(t, render(t, login), "Feed My ADHD!", "Get Started")
	login.GetStarted()
	if !store.Auth.IsAuthenticated() {
		t.Fatalf("expected Get Started to sign in")
	}
}

func TestOverviewPointsAndPhases(t *testing.T) {
	t.Parallel()
	o := view.NewOverview(repository.NewMemory())
	out := render(t, o)
	mustContain(t, out,
		"Total points: 520 (next milestone 600)",
		"[####................] 20%",
		"(Plan) > Shop > Cook > Track",
		"Pasta from Yesterday",
		"Grilled Chicken Salad - 20 mins [planned]",
	)

	phase, err := view.ParsePhase("COOK")
	if err != nil {
		t.Fatalf("parse phase: %v", err)
	}
	o.SetPhase(phase)
	mustContain(t, render(t, o), "Plan > Shop > (Cook) > Track", "Batch prep snacks")

	if _, err := view.ParsePhase("eat"); err == nil {
		t.Fatalf("expected unknown phase to be rejected")
	}
}

func TestMealPlanModal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	m := view.NewMealPlan(repository.NewMemory())
	mustContain(t, render(t, m),
		"4 meals over 4 days | 2 ready | 1 missing ingredients",
		"[!]  Chicken Caesar Salad",
		"[ok] Pasta Primavera",
	)

	if err := m.OpenRecipe(ctx, "99"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if m.Selected() != "" {
		t.Fatalf("modal opened for a missing recipe")
	}

	if err := m.OpenRecipe(ctx, "3"); err != nil {
		t.Fatalf("open recipe: %v", err)
	}
	mustContain(t, render(t, m), "Pasta Primavera", "Instructions", "1. Boil pasta", "[x] Pasta - 454 g", "Mixed Vegetables - 473 ml")
	m.CloseRecipe()
	mustContain(t, render(t, m), "Meal Plan")
}

func TestInventorySections(t *testing.T) {
	t.Parallel()
	v := view.NewInventory(repository.NewMemory())
	if !v.IsExpanded(model.SectionExpiringSoon) || v.IsExpanded(model.SectionPantry) {
		t.Fatalf("expected only Expiring Soon expanded by default")
	}
	out := render(t, v)
	mustContain(t, out, "- Expiring Soon (2)", "Milk - 1 gallon (expires in 2 days)", "+ Pantry (3)")
	if strings.Contains(out, "Olive Oil") {
		t.Fatalf("collapsed section rendered its items:\n%s", out)
	}

	v.ToggleSection(model.SectionPantry)
	mustContain(t, render(t, v), "Olive Oil - 1 bottle [low]")
	v.ToggleSection(model.SectionPantry)
	if v.IsExpanded(model.SectionPantry) {
		t.Fatalf("expected second toggle to collapse the section")
	}

	tab, err := view.ParseInventoryTab("shopping")
	if err != nil {
		t.Fatalf("parse tab: %v", err)
	}
	v.SetTab(tab)
	mustContain(t, render(t, v), "(Shopping List)", "[!] Bell Peppers - 3", "for: Veggie Stir Fry, Chicken Soup")
}

func TestInventoryExportModal(t *testing.T) {
	t.Parallel()
	v := view.NewInventory(repository.NewMemory())
	v.OpenExport()
	mustContain(t, render(t, v), "Export Shopping List", "- yaml")

	var buf bytes.Buffer
	if err := v.Export(context.Background(), &buf, service.ExportCSV); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "aisle,name,quantity,for_meals,urgent\n") {
		t.Fatalf("unexpected csv:\n%s", buf.String())
	}
	if v.ExportOpen() {
		t.Fatalf("expected export to close the modal")
	}
}

type noopNav struct{}

func (noopNav) Navigate(string) error { return nil }

func TestAddMealsFollowsWizard(t *testing.T) {
	t.Parallel()
	wz := wizard.New(noopNav{}, catalog.Recipes())
	screen := view.NewAddMeals(wz)
	mustContain(t, render(t, screen), "Step 1 of 3", "Next (add at least one meal)")

	wz.Increment(model.Snack)
	mustContain(t, render(t, screen), "Total: 1 meals, about 1 days", "> Next")

	_ = wz.Next()
	mustContain(t, render(t, screen), "Step 2 of 3", "(medium)", "(30-60)")
	if err := wz.ToggleDietary("vegan"); err != nil {
		t.Fatalf("toggle dietary: %v", err)
	}
	mustContain(t, render(t, screen), "[x] Vegan", "[ ] Vegetarian")

	_ = wz.Next()
	mustContain(t, render(t, screen), "Step 3 of 3", "Snacks: 1", "> Generate")

	if _, err := wz.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	mustContain(t, render(t, screen), "Pick favourite recipes", "#4 ")
}

func TestProfileModalsAndSettings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := state.NewStore()
	p := view.NewProfile(repository.NewMemory(), store.Auth)

	mustContain(t, render(t, p), "Allergens:   None", "Metric (g, ml)", "4 of 8 available", "520/600")

	p.OpenPoints(model.Nutrition)
	out := render(t, p)
	mustContain(t, out, "Efficiency | (Nutrition) | Cooking", "Protein Power", "[####################] 280/60 points")

	p.SelectCategory(model.Cooking)
	mustContain(t, render(t, p), "Chef in Training", "95/100 points")

	p.OpenSettings()
	if p.PointsOpen() {
		t.Fatalf("expected settings to close the points modal")
	}
	if err := p.ToggleAllergen(ctx, "soy"); err != nil {
		t.Fatalf("toggle allergen: %v", err)
	}
	if err := p.SetMeasurementSystem(ctx, model.Imperial); err != nil {
		t.Fatalf("set measurement: %v", err)
	}
	if err := p.ToggleAppliance(ctx, "blender"); err != nil {
		t.Fatalf("toggle appliance: %v", err)
	}
	mustContain(t, render(t, p), "[x] Soy", "(*) Imperial (oz, cups)", "[ ] Blender")

	p.CloseSettings()
	mustContain(t, render(t, p), "Allergens:   Soy", "3 of 8 available")
}

func TestLogoutReturnsToLogin(t *testing.T) {
	t.Parallel()
	store := state.NewStore()
	shell := nav.NewShell(store)
	defer shell.Close()

	view.NewLogin(store.Auth).GetStarted()
	if shell.Current() != nav.RouteOverview {
		t.Fatalf("expected Overview after login, got %q", shell.Current())
	}
	if err := shell.Navigate(nav.RouteProfile); err != nil {
		t.Fatalf("navigate: %v", err)
	}

	p := view.NewProfile(repository.NewMemory(), store.Auth)
	p.OpenSettings()
	p.Logout()

	if store.Auth.IsAuthenticated() {
		t.Fatalf("expected signed out after logout")
	}
	if shell.Current() != nav.RouteLogin {
		t.Fatalf("expected Login after logout, got %q", shell.Current())
	}
	if p.SettingsOpen() {
		t.Fatalf("expected logout to close the settings modal")
	}
}
