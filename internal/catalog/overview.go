package catalog

import "github.com/esteban0203/FMA-2/internal/model"

type Suggestion struct {
	Recommended int
	Reason      string
}

func SuggestionFor(t model.MealType) Suggestion {
	switch t {
	case model.Breakfast:
		return Suggestion{Recommended: 2, Reason: "Based on your current plan, you're low on breakfast options"}
	case model.Lunch:
		return Suggestion{Recommended: 3, Reason: "You have several lunch meetings this week"}
	case model.Dinner:
		return Suggestion{Recommended: 2, Reason: "You already have 3 dinners planned"}
	case model.Snack:
		return Suggestion{Recommended: 4, Reason: "Good to have healthy snacks available"}
	}
	panic("catalog: unhandled meal type " + string(t))
}

type SuggestedMeal struct {
	Title           string
	CookTime        string
	FoodGroups      []string
	Planned         bool
	PrepEffort      string
	UseExpiringSoon []string
	Points          model.Points
}

type QuickFix struct {
	Kind       string
	Title      string
	TimeLeft   string
	FoodGroups []string
	Portion    string
	PrepTime   string
	Points     model.Points
}

type NextMeal struct {
	Type               string
	Time               string
	Recipe             string
	MissingIngredients []string
}

type MealPlanStatus struct {
	DaysPlanned             int
	CompleteMeals           int
	MealsNeedingIngredients int
	MissingIngredientsCount int
	Next                    NextMeal
}

type StockBucket struct {
	Count int
	Label string
	Items []string
}

type InventoryStatus struct {
	Urgent StockBucket
	Low    StockBucket
	Fresh  StockBucket
}

func SuggestedMeals() []SuggestedMeal {
	return []SuggestedMeal{
		{
			Title:           "Grilled Chicken Salad",
			CookTime:        "20 mins",
			FoodGroups:      []string{"protein", "vegetables"},
			Planned:         true,
			PrepEffort:      "medium",
			UseExpiringSoon: []string{"Lettuce", "Tomatoes"},
			Points:          model.Points{Nutrition: 15, Cooking: 10},
		},
		{
			Title:           "Veggie Stir Fry",
			CookTime:        "15 mins",
			FoodGroups:      []string{"vegetables", "grains"},
			PrepEffort:      "medium",
			UseExpiringSoon: []string{"Bell Peppers"},
			Points:          model.Points{Nutrition: 20, Cooking: 8},
		},
	}
}

func QuickFixes() []QuickFix {
	return []QuickFix{
		{
			Kind:       "leftover",
			Title:      "Pasta from Yesterday",
			TimeLeft:   "2 days",
			FoodGroups: []string{"grains", "protein"},
			Portion:    "2 servings",
			PrepTime:   "2 min reheat",
			Points:     model.Points{Efficiency: 10, Nutrition: 5},
		},
		{
			Kind:       "snack",
			Title:      "Crackers & Hummus",
			FoodGroups: []string{"grains", "protein"},
			PrepTime:   "No prep",
			Points:     model.Points{Nutrition: 5},
		},
	}
}

func CurrentMealPlanStatus() MealPlanStatus {
	return MealPlanStatus{
		DaysPlanned:             5,
		CompleteMeals:           12,
		MealsNeedingIngredients: 3,
		MissingIngredientsCount: 8,
		Next: NextMeal{
			Type:               "Dinner",
			Time:               "6:00 PM",
			Recipe:             "Grilled Chicken Salad",
			MissingIngredients: []string{"Chicken", "Cherry Tomatoes"},
		},
	}
}

func CurrentInventoryStatus() InventoryStatus {
	return InventoryStatus{
		Urgent: StockBucket{Count: 3, Label: "Items Expiring Soon", Items: []string{"Milk", "Bread", "Lettuce"}},
		Low:    StockBucket{Count: 5, Label: "Running Low", Items: []string{"Eggs", "Rice", "Cheese", "Chicken", "Tomatoes"}},
		Fresh:  StockBucket{Count: 12, Label: "Fresh Items"},
	}
}
