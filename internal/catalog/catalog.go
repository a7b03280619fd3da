package catalog

import "github.com/esteban0203/FMA-2/internal/model"

func Recipes() []model.Recipe {
	out := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		r.Ingredients = append([]model.RecipeIngredient(nil), r.Ingredients...)
		r.Instructions = append([]string(nil), r.Instructions...)
		out = append(out, r)
	}
	return out
}

func Inventory() []model.InventoryItem {
	out := make([]model.InventoryItem, 0, len(inventory))
	for _, it := range inventory {
		it.UsedIn = append([]string(nil), it.UsedIn...)
		out = append(out, it)
	}
	return out
}

func ShoppingList() []model.ShoppingItem {
	out := make([]model.ShoppingItem, 0, len(shoppingList))
	for _, it := range shoppingList {
		it.ForMeals = append([]string(nil), it.ForMeals...)
		out = append(out, it)
	}
	return out
}

func Milestones() []model.Milestone {
	return append([]model.Milestone(nil), milestones...)
}

func UserPoints() model.Points {
	return model.Points{Efficiency: 145, Nutrition: 280, Cooking: 95}
}

func DefaultSettings() model.UserSettings {
	return model.UserSettings{
		Allergens:         []string{},
		MeasurementSystem: model.Metric,
		Appliances:        append([]model.Appliance(nil), defaultAppliances...),
	}
}

var CommonAllergens = []string{
	"Peanuts",
	"Tree Nuts",
	"Milk",
	"Eggs",
	"Fish",
	"Shellfish",
	"Soy",
	"Wheat",
	"Gluten",
}

var DietaryTags = []string{"Vegetarian", "Vegan", "Gluten-Free", "Low-Carb", "High-Protein"}

var defaultAppliances = []model.Appliance{
	{ID: "oven", Name: "Oven", IsAvailable: true},
	{ID: "stovetop", Name: "Stovetop", IsAvailable: true},
	{ID: "microwave", Name: "Microwave", IsAvailable: true},
	{ID: "airfryer", Name: "Air Fryer", IsAvailable: false},
	{ID: "slowcooker", Name: "Slow Cooker", IsAvailable: false},
	{ID: "pressurecooker", Name: "Pressure Cooker", IsAvailable: false},
	{ID: "blender", Name: "Blender", IsAvailable: true},
	{ID: "foodprocessor", Name: "Food Processor", IsAvailable: false},
}

var recipes = []model.Recipe{
	{
		ID:       "1",
		Title:    "Scrambled Eggs with Toast",
		Type:     model.Breakfast,
		Servings: 2,
		CookTime: "15 mins",
		Ingredients: []model.RecipeIngredient{
			{Name: "Eggs", Amount: "4 large", IsComplete: true, IsFresh: true},
			{Name: "Bread", Amount: "2 slices", IsComplete: true, IsFresh: false},
			{Name: "Butter", Amount: "1 tbsp", IsComplete: true, IsFresh: true},
		},
		Instructions: []string{
			"Beat eggs in a bowl",
			"Heat butter in pan",
			"Cook eggs until scrambled",
			"Toast bread",
			"Serve together",
		},
		Points: model.Points{Cooking: 5, Nutrition: 10},
	},
	{
		ID:       "2",
		Title:    "Chicken Caesar Salad",
		Type:     model.Lunch,
		Servings: 1,
		CookTime: "20 mins",
		Ingredients: []model.RecipeIngredient{
			{Name: "Chicken Breast", Amount: "1", IsComplete: false, IsFresh: false},
			{Name: "Romaine Lettuce", Amount: "1 head", IsComplete: true, IsFresh: true},
			{Name: "Caesar Dressing", Amount: "2 tbsp", IsComplete: true, IsFresh: true},
		},
		Instructions: []string{
			"Grill chicken breast",
			"Chop lettuce",
			"Combine ingredients",
			"Add dressing",
		},
		Points: model.Points{Nutrition: 15, Cooking: 8},
	},
	{
		ID:       "3",
		Title:    "Pasta Primavera",
		Type:     model.Dinner,
		Servings: 4,
		CookTime: "30 mins",
		Ingredients: []model.RecipeIngredient{
			{Name: "Pasta", Amount: "1 lb", IsComplete: true, IsFresh: true},
			{Name: "Mixed Vegetables", Amount: "2 cups", IsComplete: true, IsFresh: true},
			{Name: "Olive Oil", Amount: "3 tbsp", IsComplete: true, IsFresh: true},
		},
		Instructions: []string{
			"Boil pasta",
			"Sauté vegetables",
			"Combine with sauce",
			"Season to taste",
		},
		Points: model.Points{Cooking: 12, Nutrition: 18},
	},
	{
		ID:       "4",
		Title:    "Greek Yogurt with Berries",
		Type:     model.Snack,
		Servings: 1,
		CookTime: "5 mins",
		Ingredients: []model.RecipeIngredient{
			{Name: "Greek Yogurt", Amount: "1 cup", IsComplete: true, IsFresh: true},
			{Name: "Mixed Berries", Amount: "1/2 cup", IsComplete: true, IsFresh: true},
			{Name: "Honey", Amount: "1 tsp", IsComplete: true, IsFresh: true},
		},
		Instructions: []string{
			"Add berries to yogurt",
			"Drizzle with honey",
		},
		Points: model.Points{Nutrition: 8},
	},
}

var inventory = []model.InventoryItem{
	{Section: model.SectionFresh, Name: "Chicken Breast", Quantity: "3 pieces", UsedIn: []string{"Chicken Caesar Salad"}, ExpiresIn: "5 days"},
	{Section: model.SectionFresh, Name: "Romaine Lettuce", Quantity: "2 heads", UsedIn: []string{"Chicken Caesar Salad"}, ExpiresIn: "7 days"},
	{Section: model.SectionFreezer, Name: "Ground Beef", Quantity: "2 lbs", UsedIn: []string{"Spaghetti Bolognese"}},
	{Section: model.SectionFreezer, Name: "Mixed Vegetables", Quantity: "1 bag", UsedIn: []string{"Stir Fry"}},
	{Section: model.SectionPantry, Name: "Rice", Quantity: "5 lbs"},
	{Section: model.SectionPantry, Name: "Pasta", Quantity: "2 boxes"},
	{Section: model.SectionPantry, Name: "Olive Oil", Quantity: "1 bottle", LowStock: true},
	{Section: model.SectionExpiringSoon, Name: "Milk", Quantity: "1 gallon", ExpiresIn: "2 days", UsedIn: []string{"Breakfast"}},
	{Section: model.SectionExpiringSoon, Name: "Tomatoes", Quantity: "4 pieces", ExpiresIn: "3 days"},
}

var shoppingList = []model.ShoppingItem{
	{Aisle: model.AisleProduce, Name: "Bell Peppers", Quantity: "3", ForMeals: []string{"Veggie Stir Fry"}, Urgent: true},
	{Aisle: model.AisleProduce, Name: "Carrots", Quantity: "1 lb", ForMeals: []string{"Veggie Stir Fry", "Chicken Soup"}},
	{Aisle: model.AisleDairy, Name: "Greek Yogurt", Quantity: "32 oz", ForMeals: []string{"Breakfast Parfait"}, Urgent: true},
	{Aisle: model.AislePantry, Name: "Rice", Quantity: "2 lb", ForMeals: []string{"Veggie Stir Fry", "Chicken Rice Bowl"}},
	{Aisle: model.AisleMeat, Name: "Ground Turkey", Quantity: "1 lb", ForMeals: []string{"Turkey Meatballs"}},
}

var milestones = []model.Milestone{
	{ID: "e1", Category: model.Efficiency, Title: "Leftover Master", Description: "Use leftovers for 5 meals in a week", PointsRequired: 50, Reward: 100, Status: model.MilestoneInProgress},
	{ID: "e2", Category: model.Efficiency, Title: "Smart Shopper", Description: "Complete 3 shopping trips using optimized lists", PointsRequired: 75, Reward: 150, Status: model.MilestoneInProgress},
	{ID: "e3", Category: model.Efficiency, Title: "Waste Warrior", Description: "Go a full week without any expired ingredients", PointsRequired: 100, Reward: 200, Status: model.MilestoneInProgress},
	{ID: "n1", Category: model.Nutrition, Title: "Veggie Victory", Description: "Include vegetables in 10 meals", PointsRequired: 50, Reward: 100, Status: model.MilestoneInProgress},
	{ID: "n2", Category: model.Nutrition, Title: "Balanced Diet", Description: "Prepare meals with all food groups for 5 days", PointsRequired: 75, Reward: 150, Status: model.MilestoneInProgress},
	{ID: "n3", Category: model.Nutrition, Title: "Health Champion", Description: "Maintain balanced meals for 2 weeks", PointsRequired: 100, Reward: 200, Status: model.MilestoneInProgress},
	{ID: "n4", Category: model.Nutrition, Title: "Protein Power", Description: "Include a protein source in 7 consecutive meals", PointsRequired: 60, Reward: 125, Status: model.MilestoneInProgress},
	{ID: "c1", Category: model.Cooking, Title: "Kitchen Novice", Description: "Cook 5 different recipes", PointsRequired: 50, Reward: 100, Status: model.MilestoneInProgress},
	{ID: "c2", Category: model.Cooking, Title: "Recipe Explorer", Description: "Try 3 new cooking techniques", PointsRequired: 75, Reward: 150, Status: model.MilestoneInProgress},
	{ID: "c3", Category: model.Cooking, Title: "Chef in Training", Description: "Successfully complete 10 different recipes", PointsRequired: 100, Reward: 200, Status: model.MilestoneInProgress},
}
