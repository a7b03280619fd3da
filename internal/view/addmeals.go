package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/wizard"
)

type AddMeals struct {
	Wizard *wizard.Wizard
}

func NewAddMeals(w *wizard.Wizard) *AddMeals {
	return &AddMeals{Wizard: w}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

func (a *AddMeals) Render(_ context.Context, w io.Writer) error {
	wz := a.Wizard
	heading(w, "Add Meals")
	fmt.Fprintf(w, "Step %d of 3 %s\n", min(int(wz.Step()), 3), bar(wz.Progress()))

	switch wz.Step() {
	case wizard.StepCounts:
		section(w, "How many meals do you need?")
		for _, t := range model.AllMealTypes {
			s := catalog.SuggestionFor(t)
			fmt.Fprintf(w, "  %-10s [-] %2d [+]   suggested %d: %s\n", t.Label(), wz.Count(t), s.Recommended, s.Reason)
		}
		fmt.Fprintf(w, "\nTotal: %d meals, about %d days\n", wz.Total(), wz.EstimatedDays())
		if wz.CanAdvance() {
			fmt.Fprintln(w, "> Next")
		} else {
			fmt.Fprintln(w, "  Next (add at least one meal)")
		}
	case wizard.StepPreferences:
		p := wz.Preferences()
		section(w, "Preferences")
		fmt.Fprintf(w, "  Skill level:  %s\n", choices(toStrings(model.AllSkillLevels), string(p.SkillLevel)))
		fmt.Fprintf(w, "  Cooking time: %s\n", choices(toStrings(model.AllCookingTimes), string(p.CookingTime)))
		fmt.Fprintf(w, "  Dietary:      %s\n", tagChoices(catalog.DietaryTags, p.Dietary))
		fmt.Fprintf(w, "  Notes:        %s\n", p.Notes)
		fmt.Fprintf(w, "  Use favourites: %s | Use leftovers: %s | Optimize ingredients: %s\n",
			onOff(p.UseFavorites), onOff(p.UseLeftovers), onOff(p.OptimizeIngredients))
		fmt.Fprintln(w, "\n< Back   > Next")
	case wizard.StepReview:
		renderReview(w, wz)
		fmt.Fprintln(w, "\n< Back   > Generate")
	case wizard.StepFavorites:
		section(w, "Pick favourite recipes")
		for _, r := range wz.Recipes() {
			mark := " "
			if wz.IsFavorite(r.ID) {
				mark = "*"
			}
			fmt.Fprintf(w, "  [%s] #%s %s (%s)\n", mark, r.ID, r.Title, r.Type.Label())
		}
		fmt.Fprintln(w, "\n< Back   > Finish")
	default:
		return fmt.Errorf("unknown wizard step %s", wz.Step())
	}
	return nil
}

func renderReview(w io.Writer, wz *wizard.Wizard) {
	section(w, "Review")
	for _, t := range model.AllMealTypes {
		if n := wz.Count(t); n > 0 {
			fmt.Fprintf(w, "  %s: %d\n", t.Label(), n)
		}
	}
	p := wz.Preferences()
	fmt.Fprintf(w, "  Estimated: %d days\n", wz.EstimatedDays())
	fmt.Fprintf(w, "  Skill %s, %s mins\n", p.SkillLevel, p.CookingTime)
	if len(p.Dietary) > 0 {
		fmt.Fprintf(w, "  Dietary: %s\n", strings.Join(p.Dietary, ", "))
	}
	if p.Notes != "" {
		fmt.Fprintf(w, "  Notes: %s\n", p.Notes)
	}
}

func toStrings[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func choices(options []string, selected string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if o == selected {
			parts[i] = "(" + o + ")"
		} else {
			parts[i] = o
		}
	}
	return strings.Join(parts, " ")
}

func tagChoices(options, selected []string) string {
	parts := make([]string, len(options))
	for i, o := range options {
		if model.HasTag(selected, o) {
			parts[i] = "[x] " + o
		} else {
			parts[i] = "[ ] " + o
		}
	}
	return strings.Join(parts, "  ")
}
