package service

import (
	"fmt"
	"math"

	"github.com/esteban0203/FMA-2/internal/model"
)

const pointsBlock = 100

type PointsSummary struct {
	Efficiency    int     `json:"efficiency" yaml:"efficiency"`
	Nutrition     int     `json:"nutrition" yaml:"nutrition"`
	Cooking       int     `json:"cooking" yaml:"cooking"`
	Total         int     `json:"total" yaml:"total"`
	NextMilestone int     `json:"next_milestone" yaml:"next_milestone"`
	BlockProgress float64 `json:"block_progress" yaml:"block_progress"`
}

func TotalPoints(p model.Points) int {
	total := 0
	for _, c := range model.AllPointsCategories {
		total += p.Get(c)
	}
	return total
}

// NextMilestone rounds total up to the next multiple of 100. Exact multiples map to themselves.
func NextMilestone(total int) int {
	return int(math.Ceil(float64(total)/pointsBlock)) * pointsBlock
}

func BlockProgress(total int) float64 {
	return float64(total%pointsBlock) / pointsBlock
}

func SummarizePoints(p model.Points) PointsSummary {
	total := TotalPoints(p)
	return PointsSummary{
		Efficiency:    p.Efficiency,
		Nutrition:     p.Nutrition,
		Cooking:       p.Cooking,
		Total:         total,
		NextMilestone: NextMilestone(total),
		BlockProgress: BlockProgress(total),
	}
}

type MilestoneProgress struct {
	Milestone model.Milestone
	Held      int
	// Ratio is Held/PointsRequired and may exceed 1.
	Ratio float64
	// BarWidth is Ratio clamped to [0, 1] for drawing.
	BarWidth float64
}

func (p MilestoneProgress) Label() string {
	return fmt.Sprintf("%d/%d points", p.Held, p.Milestone.PointsRequired)
}

func (p MilestoneProgress) Reached() bool {
	return p.Ratio >= 1
}

func ProgressFor(held int, m model.Milestone) MilestoneProgress {
	ratio := 1.0
	if m.PointsRequired > 0 {
		ratio = float64(held) / float64(m.PointsRequired)
	}
	return MilestoneProgress{
		Milestone: m,
		Held:      held,
		Ratio:     ratio,
		BarWidth:  math.Min(math.Max(ratio, 0), 1),
	}
}

func CategoryProgress(points model.Points, milestones []model.Milestone, category model.PointsCategory) []MilestoneProgress {
	held := points.Get(category)
	out := make([]MilestoneProgress, 0)
	for _, m := range milestones {
		if m.Category == category {
			out = append(out, ProgressFor(held, m))
		}
	}
	return out
}

type RecipeStatus int

const (
	RecipeReady RecipeStatus = iota
	// RecipeStale means every ingredient is on hand but at least one is past its best.
	RecipeStale
	RecipeMissing
)

func (s RecipeStatus) String() string {
	switch s {
	case RecipeReady:
		return "ready"
	case RecipeStale:
		return "stale"
	case RecipeMissing:
		return "missing"
	}
	return fmt.Sprintf("RecipeStatus(%d)", int(s))
}

func StatusOf(r model.Recipe) RecipeStatus {
	stale := false
	for _, ing := range r.Ingredients {
		if !ing.IsComplete {
			return RecipeMissing
		}
		if !ing.IsFresh {
			stale = true
		}
	}
	if stale {
		return RecipeStale
	}
	return RecipeReady
}

func GroupByType(recipes []model.Recipe) map[model.MealType][]model.Recipe {
	out := make(map[model.MealType][]model.Recipe, len(model.AllMealTypes))
	for _, r := range recipes {
		out[r.Type] = append(out[r.Type], r)
	}
	return out
}

type MealTypeStats struct {
	Type          model.MealType
	Meals         int
	DaysPlanned   int
	CompleteMeals int
	MissingMeals  int
}

type OverallStats struct {
	TotalMeals    int `json:"total_meals" yaml:"total_meals"`
	TotalComplete int `json:"total_complete" yaml:"total_complete"`
	TotalMissing  int `json:"total_missing" yaml:"total_missing"`
	TotalDays     int `json:"total_days" yaml:"total_days"`
}

func daysFor(t model.MealType, meals int) int {
	return int(math.Ceil(float64(meals) / float64(t.PerDay())))
}

func StatsForType(t model.MealType, recipes []model.Recipe) MealTypeStats {
	s := MealTypeStats{Type: t}
	for _, r := range recipes {
		if r.Type != t {
			continue
		}
		s.Meals++
		switch StatusOf(r) {
		case RecipeReady:
			s.CompleteMeals++
		case RecipeMissing:
			s.MissingMeals++
		}
	}
	s.DaysPlanned = daysFor(t, s.Meals)
	return s
}

// Overall sums per-type stats. TotalDays adds up per-type day counts, as the plan screen shows.
func Overall(recipes []model.Recipe) OverallStats {
	var o OverallStats
	for _, t := range model.AllMealTypes {
		s := StatsForType(t, recipes)
		o.TotalMeals += s.Meals
		o.TotalComplete += s.CompleteMeals
		o.TotalMissing += s.MissingMeals
		o.TotalDays += s.DaysPlanned
	}
	return o
}

// EstimatedDays is how many plan days the requested counts cover: the largest
// per-type requirement, with snacks consumed two per day, rounded up.
func EstimatedDays(c model.MealCounts) int {
	maxDays := 0.0
	for _, t := range model.AllMealTypes {
		d := float64(c.Get(t)) / float64(t.PerDay())
		if d > maxDays {
			maxDays = d
		}
	}
	return int(math.Ceil(maxDays))
}

type InventorySummary struct {
	ExpiringSoon   int
	LowStock       int
	TotalItems     int
	UrgentShopping int
	ShoppingItems  int
}

func SummarizeInventory(items []model.InventoryItem, shopping []model.ShoppingItem) InventorySummary {
	s := InventorySummary{TotalItems: len(items), ShoppingItems: len(shopping)}
	for _, it := range items {
		if it.Section == model.SectionExpiringSoon {
			s.ExpiringSoon++
		}
		if it.LowStock {
			s.LowStock++
		}
	}
	for _, it := range shopping {
		if it.Urgent {
			s.UrgentShopping++
		}
	}
	return s
}

func ItemsInSection(items []model.InventoryItem, section model.StorageSection) []model.InventoryItem {
	out := make([]model.InventoryItem, 0)
	for _, it := range items {
		if it.Section == section {
			out = append(out, it)
		}
	}
	return out
}

func ItemsInAisle(items []model.ShoppingItem, aisle model.ShoppingAisle) []model.ShoppingItem {
	out := make([]model.ShoppingItem, 0)
	for _, it := range items {
		if it.Aisle == aisle {
			out = append(out, it)
		}
	}
	return out
}
