package model_test

import (
	"reflect"
	"testing"

	"github.com/esteban0203/FMA-2/internal/model"
)

func TestToggleTagIsAnInvolution(t *testing.T) {
	t.Parallel()
	start := []string{"Vegetarian", "Low-Carb"}

	once := model.ToggleTag(start, "Vegan")
	if !model.HasTag(once, "vegan") {
		t.Fatalf("expected Vegan to be added, got %v", once)
	}
	twice := model.ToggleTag(once, "Vegan")
	if !reflect.DeepEqual(twice, start) {
		t.Fatalf("expected toggling twice to restore %v, got %v", start, twice)
	}
	if !reflect.DeepEqual(start, []string{"Vegetarian", "Low-Carb"}) {
		t.Fatalf("input slice was modified: %v", start)
	}
}

func TestMealTypeParsingAndRates(t *testing.T) {
	t.Parallel()
	got, err := model.ParseMealType(" Snacks ")
	if err != nil || got != model.Snack {
		t.Fatalf("expected snack, got %q err=%v", got, err)
	}
	if _, err := model.ParseMealType("brunch"); err == nil {
		t.Fatalf("expected brunch to be rejected")
	}
	for _, mt := range model.AllMealTypes {
		want := 1
		if mt == model.Snack {
			want = 2
		}
		if mt.PerDay() != want {
			t.Fatalf("%s: expected %d per day, got %d", mt, want, mt.PerDay())
		}
	}
}

func TestMealCountsSetAndTotal(t *testing.T) {
	t.Parallel()
	var c model.MealCounts
	c.Set(model.Breakfast, 2)
	c.Set(model.Snack, 3)
	if c.Get(model.Breakfast) != 2 || c.Get(model.Lunch) != 0 || c.Total() != 5 {
		t.Fatalf("unexpected counts %+v", c)
	}
}
