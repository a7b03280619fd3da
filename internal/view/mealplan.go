package view

import (
	"context"
	"fmt"
	"io"

	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/service"
)

type MealPlan struct {
	repo     repository.Repository
	selected string
}

func NewMealPlan(repo repository.Repository) *MealPlan {
	return &MealPlan{repo: repo}
}

func (m *MealPlan) OpenRecipe(ctx context.Context, id string) error {
	if _, err := m.repo.Recipe(ctx, id); err != nil {
		return err
	}
	m.selected = id
	return nil
}

func (m *MealPlan) CloseRecipe() { m.selected = "" }

func (m *MealPlan) Selected() string { return m.selected }

func statusGlyph(s service.RecipeStatus) string {
	switch s {
	case service.RecipeReady:
		return "[ok]"
	case service.RecipeStale:
		return "[~] "
	case service.RecipeMissing:
		return "[!] "
	}
	panic(fmt.Sprintf("view: unhandled recipe status %d", int(s)))
}

func (m *MealPlan) Render(ctx context.Context, w io.Writer) error {
	if m.selected != "" {
		r, err := m.repo.Recipe(ctx, m.selected)
		if err != nil {
			return fmt.Errorf("load recipe %s: %w", m.selected, err)
		}
		settings, err := m.repo.Settings(ctx)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		renderRecipe(w, r, settings.MeasurementSystem)
		return nil
	}

	recipes, err := m.repo.Recipes(ctx)
	if err != nil {
		return fmt.Errorf("load recipes: %w", err)
	}
	overall := service.Overall(recipes)

	heading(w, "Meal Plan")
	fmt.Fprintf(w, "%d meals over %d days | %d ready | %d missing ingredients\n",
		overall.TotalMeals, overall.TotalDays, overall.TotalComplete, overall.TotalMissing)

	byType := service.GroupByType(recipes)
	for _, t := range model.AllMealTypes {
		stats := service.StatsForType(t, recipes)
		section(w, fmt.Sprintf("%s (%s)", t.Label(), mealIcon(t)))
		fmt.Fprintf(w, "  %d days planned | %d/%d ready\n", stats.DaysPlanned, stats.CompleteMeals, stats.Meals)
		for _, r := range byType[t] {
			fmt.Fprintf(w, "  %s %s  #%s  %d servings, %s", statusGlyph(service.StatusOf(r)), r.Title, r.ID, r.Servings, r.CookTime)
			if tags := pointTags(r.Points); tags != "" {
				fmt.Fprintf(w, "  %s", tags)
			}
			fmt.Fprintln(w)
		}
	}
	return nil
}

func renderRecipe(w io.Writer, r model.Recipe, system model.MeasurementSystem) {
	heading(w, r.Title)
	fmt.Fprintf(w, "%s | %d servings | %s | %s\n", r.Type.Label(), r.Servings, r.CookTime, service.StatusOf(r))
	if tags := pointTags(r.Points); tags != "" {
		fmt.Fprintf(w, "Points: %s\n", tags)
	}

	section(w, "Ingredients")
	for _, ing := range r.Ingredients {
		mark := "x"
		switch {
		case !ing.IsComplete:
			mark = " "
		case !ing.IsFresh:
			mark = "~"
		}
		fmt.Fprintf(w, "  [%s] %s - %s\n", mark, ing.Name, service.LocalizeAmount(ing.Amount, system))
	}

	section(w, "Instructions")
	for i, step := range r.Instructions {
		fmt.Fprintf(w, "  %d. %s\n", i+1, step)
	}
}
