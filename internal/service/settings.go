package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/repository"
)

func ToggleAllergen(s model.UserSettings, allergen string) (model.UserSettings, error) {
	name, ok := model.Canonical(catalog.CommonAllergens, allergen)
	if !ok {
		return s, fmt.Errorf("unknown allergen %q (expected one of: %s)", allergen, strings.Join(catalog.CommonAllergens, ", "))
	}
	out := s.Clone()
	out.Allergens = model.ToggleTag(out.Allergens, name)
	return out, nil
}

func SetMeasurementSystem(s model.UserSettings, system model.MeasurementSystem) model.UserSettings {
	out := s.Clone()
	out.MeasurementSystem = system
	return out
}

func ToggleAppliance(s model.UserSettings, id string) (model.UserSettings, error) {
	id = normalizeName(id)
	out := s.Clone()
	for i := range out.Appliances {
		if out.Appliances[i].ID == id {
			out.Appliances[i].IsAvailable = !out.Appliances[i].IsAvailable
			return out, nil
		}
	}
	return s, fmt.Errorf("unknown appliance %q", id)
}

func AvailableAppliances(s model.UserSettings) []model.Appliance {
	out := make([]model.Appliance, 0)
	for _, a := range s.Appliances {
		if a.IsAvailable {
			out = append(out, a)
		}
	}
	return out
}

func MeasurementLabel(system model.MeasurementSystem) string {
	if system == model.Imperial {
		return "Imperial (oz, cups)"
	}
	return "Metric (g, ml)"
}

func AllergenSummary(s model.UserSettings) string {
	if len(s.Allergens) == 0 {
		return "None"
	}
	return strings.Join(s.Allergens, ", ")
}

// UpdateSettings loads settings, applies fn and saves the result. Nothing is
// written when fn fails.
func UpdateSettings(ctx context.Context, repo repository.Repository, fn func(model.UserSettings) (model.UserSettings, error)) (model.UserSettings, error) {
	current, err := repo.Settings(ctx)
	if err != nil {
		return model.UserSettings{}, err
	}
	next, err := fn(current)
	if err != nil {
		return current, err
	}
	if err := repo.SaveSettings(ctx, next); err != nil {
		return current, fmt.Errorf("save settings: %w", err)
	}
	return next, nil
}
