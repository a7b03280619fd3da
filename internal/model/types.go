package model

import (
	"fmt"
	"strings"
	"time"
)

type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

var AllMealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

func ParseMealType(s string) (MealType, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "breakfast":
		return Breakfast, nil
	case "lunch":
		return Lunch, nil
	case "dinner":
		return Dinner, nil
	case "snack", "snacks":
		return Snack, nil
	default:
		return "", fmt.Errorf("unknown meal type %q (expected breakfast, lunch, dinner, or snack)", s)
	}
}

func (t MealType) Label() string {
	switch t {
	case Breakfast:
		return "Breakfast"
	case Lunch:
		return "Lunch"
	case Dinner:
		return "Dinner"
	case Snack:
		return "Snacks"
	}
	panic(fmt.Sprintf("model: unhandled meal type %q", string(t)))
}

func (t MealType) PerDay() int {
	switch t {
	case Breakfast, Lunch, Dinner:
		return 1
	case Snack:
		return 2
	}
	panic(fmt.Sprintf("model: unhandled meal type %q", string(t)))
}

type PointsCategory string

const (
	Efficiency PointsCategory = "efficiency"
	Nutrition  PointsCategory = "nutrition"
	Cooking    PointsCategory = "cooking"
)

var AllPointsCategories = []PointsCategory{Efficiency, Nutrition, Cooking}

func ParsePointsCategory(s string) (PointsCategory, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "efficiency":
		return Efficiency, nil
	case "nutrition":
		return Nutrition, nil
	case "cooking":
		return Cooking, nil
	default:
		return "", fmt.Errorf("unknown points category %q (expected efficiency, nutrition, or cooking)", s)
	}
}

func (c PointsCategory) Label() string {
	switch c {
	case Efficiency:
		return "Efficiency"
	case Nutrition:
		return "Nutrition"
	case Cooking:
		return "Cooking"
	}
	panic(fmt.Sprintf("model: unhandled points category %q", string(c)))
}

func (c PointsCategory) Blurb() string {
	switch c {
	case Efficiency:
		return "Optimize your meal planning and shopping"
	case Nutrition:
		return "Track your healthy eating habits"
	case Cooking:
		return "Develop your cooking skills"
	}
	panic(fmt.Sprintf("model: unhandled points category %q", string(c)))
}

type Points struct {
	Efficiency int `json:"efficiency,omitempty" yaml:"efficiency,omitempty"`
	Nutrition  int `json:"nutrition,omitempty" yaml:"nutrition,omitempty"`
	Cooking    int `json:"cooking,omitempty" yaml:"cooking,omitempty"`
}

func (p Points) Get(c PointsCategory) int {
	switch c {
	case Efficiency:
		return p.Efficiency
	case Nutrition:
		return p.Nutrition
	case Cooking:
		return p.Cooking
	}
	panic(fmt.Sprintf("model: unhandled points category %q", string(c)))
}

func (p Points) IsZero() bool {
	return p.Efficiency == 0 && p.Nutrition == 0 && p.Cooking == 0
}

type RecipeIngredient struct {
	Name       string
	Amount     string
	IsComplete bool
	IsFresh    bool
}

type Recipe struct {
	ID           string
	Title        string
	Type         MealType
	Servings     int
	CookTime     string
	Ingredients  []RecipeIngredient
	Instructions []string
	Points       Points
}

type StorageSection string

const (
	SectionFresh        StorageSection = "fresh"
	SectionFreezer      StorageSection = "freezer"
	SectionPantry       StorageSection = "pantry"
	SectionExpiringSoon StorageSection = "expiringsoon"
)

var AllStorageSections = []StorageSection{SectionExpiringSoon, SectionFresh, SectionFreezer, SectionPantry}

func ParseStorageSection(s string) (StorageSection, error) {
	switch strings.ReplaceAll(strings.TrimSpace(strings.ToLower(s)), "-", "") {
	case "fresh":
		return SectionFresh, nil
	case "freezer":
		return SectionFreezer, nil
	case "pantry":
		return SectionPantry, nil
	case "expiringsoon", "expiring":
		return SectionExpiringSoon, nil
	default:
		return "", fmt.Errorf("unknown storage section %q", s)
	}
}

func (s StorageSection) Label() string {
	switch s {
	case SectionFresh:
		return "Fresh"
	case SectionFreezer:
		return "Freezer"
	case SectionPantry:
		return "Pantry"
	case SectionExpiringSoon:
		return "Expiring Soon"
	}
	panic(fmt.Sprintf("model: unhandled storage section %q", string(s)))
}

type InventoryItem struct {
	Section   StorageSection
	Name      string
	Quantity  string
	ExpiresIn string
	UsedIn    []string
	LowStock  bool
}

type ShoppingAisle string

const (
	AisleProduce ShoppingAisle = "produce"
	AisleDairy   ShoppingAisle = "dairy"
	AislePantry  ShoppingAisle = "pantry"
	AisleMeat    ShoppingAisle = "meat"
)

var AllShoppingAisles = []ShoppingAisle{AisleProduce, AisleDairy, AislePantry, AisleMeat}

func (a ShoppingAisle) Label() string {
	switch a {
	case AisleProduce:
		return "Produce"
	case AisleDairy:
		return "Dairy"
	case AislePantry:
		return "Pantry"
	case AisleMeat:
		return "Meat"
	}
	panic(fmt.Sprintf("model: unhandled shopping aisle %q", string(a)))
}

type ShoppingItem struct {
	Aisle    ShoppingAisle `json:"aisle" yaml:"aisle"`
	Name     string        `json:"name" yaml:"name"`
	Quantity string        `json:"quantity" yaml:"quantity"`
	ForMeals []string      `json:"for_meals" yaml:"for_meals"`
	Urgent   bool          `json:"urgent" yaml:"urgent"`
}

type MilestoneStatus string

const (
	MilestoneInProgress MilestoneStatus = "in_progress"
	MilestoneCompleted  MilestoneStatus = "completed"
)

type Milestone struct {
	ID             string
	Category       PointsCategory
	Title          string
	Description    string
	PointsRequired int
	Reward         int
	Status         MilestoneStatus
}

type MeasurementSystem string

const (
	Metric   MeasurementSystem = "metric"
	Imperial MeasurementSystem = "imperial"
)

func ParseMeasurementSystem(s string) (MeasurementSystem, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "metric":
		return Metric, nil
	case "imperial":
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown measurement system %q (expected metric or imperial)", s)
	}
}

type Appliance struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	IsAvailable bool   `json:"available" yaml:"available"`
}

type UserSettings struct {
	Allergens         []string          `json:"allergens" yaml:"allergens"`
	MeasurementSystem MeasurementSystem `json:"measurement_system" yaml:"measurement_system"`
	Appliances        []Appliance       `json:"appliances" yaml:"appliances"`
}

func (s UserSettings) Clone() UserSettings {
	out := UserSettings{MeasurementSystem: s.MeasurementSystem}
	out.Allergens = append([]string{}, s.Allergens...)
	out.Appliances = append([]Appliance(nil), s.Appliances...)
	return out
}

type SkillLevel string

const (
	SkillEasy     SkillLevel = "easy"
	SkillMedium   SkillLevel = "medium"
	SkillAdvanced SkillLevel = "advanced"
)

var AllSkillLevels = []SkillLevel{SkillEasy, SkillMedium, SkillAdvanced}

func ParseSkillLevel(s string) (SkillLevel, error) {
	for _, lvl := range AllSkillLevels {
		if strings.EqualFold(strings.TrimSpace(s), string(lvl)) {
			return lvl, nil
		}
	}
	return "", fmt.Errorf("unknown skill level %q (expected easy, medium, or advanced)", s)
}

type CookingTime string

const (
	CookingQuick  CookingTime = "15-30"
	CookingMedium CookingTime = "30-60"
	CookingLong   CookingTime = "60+"
)

var AllCookingTimes = []CookingTime{CookingQuick, CookingMedium, CookingLong}

func ParseCookingTime(s string) (CookingTime, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), " mins")
	for _, ct := range AllCookingTimes {
		if s == string(ct) {
			return ct, nil
		}
	}
	return "", fmt.Errorf("unknown cooking time %q (expected 15-30, 30-60, or 60+)", s)
}

type MealCounts struct {
	Breakfast int `json:"breakfast" yaml:"breakfast"`
	Lunch     int `json:"lunch" yaml:"lunch"`
	Dinner    int `json:"dinner" yaml:"dinner"`
	Snack     int `json:"snack" yaml:"snack"`
}

func (c MealCounts) Get(t MealType) int {
	switch t {
	case Breakfast:
		return c.Breakfast
	case Lunch:
		return c.Lunch
	case Dinner:
		return c.Dinner
	case Snack:
		return c.Snack
	}
	panic(fmt.Sprintf("model: unhandled meal type %q", string(t)))
}

func (c *MealCounts) Set(t MealType, n int) {
	switch t {
	case Breakfast:
		c.Breakfast = n
	case Lunch:
		c.Lunch = n
	case Dinner:
		c.Dinner = n
	case Snack:
		c.Snack = n
	default:
		panic(fmt.Sprintf("model: unhandled meal type %q", string(t)))
	}
}

func (c MealCounts) Total() int {
	return c.Breakfast + c.Lunch + c.Dinner + c.Snack
}

type Preferences struct {
	SkillLevel          SkillLevel  `json:"skill_level" yaml:"skill_level"`
	CookingTime         CookingTime `json:"cooking_time" yaml:"cooking_time"`
	Dietary             []string    `json:"dietary" yaml:"dietary"`
	Notes               string      `json:"notes" yaml:"notes"`
	UseFavorites        bool        `json:"use_favorites" yaml:"use_favorites"`
	UseLeftovers        bool        `json:"use_leftovers" yaml:"use_leftovers"`
	OptimizeIngredients bool        `json:"optimize_ingredients" yaml:"optimize_ingredients"`
}

type PlanRequest struct {
	ID                string      `json:"id" yaml:"id"`
	CreatedAt         time.Time   `json:"created_at" yaml:"created_at"`
	Counts            MealCounts  `json:"counts" yaml:"counts"`
	Preferences       Preferences `json:"preferences" yaml:"preferences"`
	FavoriteRecipeIDs []string    `json:"favorite_recipe_ids,omitempty" yaml:"favorite_recipe_ids,omitempty"`
	EstimatedDays     int         `json:"estimated_days" yaml:"estimated_days"`
}
