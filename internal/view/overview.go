package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/service"
)

type Phase string

const (
	PhasePlan  Phase = "plan"
	PhaseShop  Phase = "shop"
	PhaseCook  Phase = "cook"
	PhaseTrack Phase = "track"
)

var AllPhases = []Phase{PhasePlan, PhaseShop, PhaseCook, PhaseTrack}

func ParsePhase(s string) (Phase, error) {
	for _, p := range AllPhases {
		if strings.EqualFold(strings.TrimSpace(s), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown phase %q (expected plan, shop, cook, or track)", s)
}

func (p Phase) Label() string {
	switch p {
	case PhasePlan:
		return "Plan"
	case PhaseShop:
		return "Shop"
	case PhaseCook:
		return "Cook"
	case PhaseTrack:
		return "Track"
	}
	panic(fmt.Sprintf("view: unhandled phase %q", string(p)))
}

func (p Phase) NextSteps() []string {
	switch p {
	case PhasePlan:
		return []string{"Pick meals for the next few days", "Use up items expiring soon"}
	case PhaseShop:
		return []string{"Review the shopping list", "Grab urgent items first"}
	case PhaseCook:
		return []string{"Start with the recipe that has everything ready", "Batch prep snacks"}
	case PhaseTrack:
		return []string{"Mark finished meals", "Check milestone progress"}
	}
	panic(fmt.Sprintf("view: unhandled phase %q", string(p)))
}

type Overview struct {
	repo  repository.Repository
	phase Phase
}

func NewOverview(repo repository.Repository) *Overview {
	return &Overview{repo: repo, phase: PhasePlan}
}

func (o *Overview) Phase() Phase     { return o.phase }
func (o *Overview) SetPhase(p Phase) { o.phase = p }

func (o *Overview) Render(ctx context.Context, w io.Writer) error {
	points, err := o.repo.UserPoints(ctx)
	if err != nil {
		return fmt.Errorf("load points: %w", err)
	}
	summary := service.SummarizePoints(points)

	heading(w, "Overview")
	fmt.Fprintf(w, "Total points: %d (next milestone %d)\n", summary.Total, summary.NextMilestone)
	fmt.Fprintf(w, "%s %s\n", bar(summary.BlockProgress), percent(summary.BlockProgress))

	section(w, "What to eat now?")
	fmt.Fprintln(w, "  Leftovers | Quick Meal | Snacks")

	section(w, "Cycle")
	labels := make([]string, 0, len(AllPhases))
	for _, p := range AllPhases {
		if p == o.phase {
			labels = append(labels, "("+p.Label()+")")
		} else {
			labels = append(labels, p.Label())
		}
	}
	fmt.Fprintf(w, "  %s\n", strings.Join(labels, " > "))
	for _, step := range o.phase.NextSteps() {
		fmt.Fprintf(w, "  - %s\n", step)
	}

	plan := catalog.CurrentMealPlanStatus()
	section(w, "Meal Plan Status")
	fmt.Fprintf(w, "  %d days planned\n", plan.DaysPlanned)
	fmt.Fprintf(w, "  %d complete | %d need ingredients (%d missing)\n", plan.CompleteMeals, plan.MealsNeedingIngredients, plan.MissingIngredientsCount)
	fmt.Fprintf(w, "  Next: %s at %s - %s\n", plan.Next.Type, plan.Next.Time, plan.Next.Recipe)
	if len(plan.Next.MissingIngredients) > 0 {
		fmt.Fprintf(w, "    missing: %s\n", strings.Join(plan.Next.MissingIngredients, ", "))
	}

	inv := catalog.CurrentInventoryStatus()
	section(w, "Inventory Overview")
	for _, b := range []catalog.StockBucket{inv.Urgent, inv.Low, inv.Fresh} {
		fmt.Fprintf(w, "  %d %s", b.Count, b.Label)
		if len(b.Items) > 0 {
			fmt.Fprintf(w, ": %s", strings.Join(b.Items, ", "))
		}
		fmt.Fprintln(w)
	}

	section(w, "Quick Fixes")
	for _, q := range catalog.QuickFixes() {
		fmt.Fprintf(w, "  [%s] %s - %s", q.Kind, q.Title, q.PrepTime)
		if q.TimeLeft != "" {
			fmt.Fprintf(w, " (%s left)", q.TimeLeft)
		}
		if tags := pointTags(q.Points); tags != "" {
			fmt.Fprintf(w, " %s", tags)
		}
		fmt.Fprintln(w)
	}

	section(w, "Suggested Meals")
	for _, m := range catalog.SuggestedMeals() {
		planned := ""
		if m.Planned {
			planned = " [planned]"
		}
		fmt.Fprintf(w, "  %s - %s%s\n", m.Title, m.CookTime, planned)
		if len(m.UseExpiringSoon) > 0 {
			fmt.Fprintf(w, "    uses: %s\n", strings.Join(m.UseExpiringSoon, ", "))
		}
	}
	return nil
}
