package view

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/esteban0203/FMA-2/internal/catalog"
	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/service"
	"github.com/esteban0203/FMA-2/internal/state"
)

type Profile struct {
	repo repository.Repository
	auth *state.AuthState

	pointsOpen   bool
	category     model.PointsCategory
	settingsOpen bool
}

func NewProfile(repo repository.Repository, auth *state.AuthState) *Profile {
	return &Profile{repo: repo, auth: auth, category: model.Efficiency}
}

func (p *Profile) PointsOpen() bool               { return p.pointsOpen }
func (p *Profile) SettingsOpen() bool             { return p.settingsOpen }
func (p *Profile) Category() model.PointsCategory { return p.category }

func (p *Profile) OpenPoints(c model.PointsCategory) {
	p.category = c
	p.pointsOpen = true
	p.settingsOpen = false
}

func (p *Profile) SelectCategory(c model.PointsCategory) { p.category = c }

func (p *Profile) ClosePoints() { p.pointsOpen = false }

func (p *Profile) OpenSettings() {
	p.settingsOpen = true
	p.pointsOpen = false
}

func (p *Profile) CloseSettings() { p.settingsOpen = false }

func (p *Profile) ToggleAllergen(ctx context.Context, name string) error {
	_, err := service.UpdateSettings(ctx, p.repo, func(s model.UserSettings) (model.UserSettings, error) {
		return service.ToggleAllergen(s, name)
	})
	return err
}

func (p *Profile) SetMeasurementSystem(ctx context.Context, system model.MeasurementSystem) error {
	_, err := service.UpdateSettings(ctx, p.repo, func(s model.UserSettings) (model.UserSettings, error) {
		return service.SetMeasurementSystem(s, system), nil
	})
	return err
}

func (p *Profile) ToggleAppliance(ctx context.Context, id string) error {
	_, err := service.UpdateSettings(ctx, p.repo, func(s model.UserSettings) (model.UserSettings, error) {
		return service.ToggleAppliance(s, id)
	})
	return err
}

func (p *Profile) Logout() {
	p.pointsOpen = false
	p.settingsOpen = false
	p.auth.SignOut()
}

func (p *Profile) Render(ctx context.Context, w io.Writer) error {
	points, err := p.repo.UserPoints(ctx)
	if err != nil {
		return fmt.Errorf("load points: %w", err)
	}
	settings, err := p.repo.Settings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	switch {
	case p.pointsOpen:
		milestones, err := p.repo.Milestones(ctx)
		if err != nil {
			return fmt.Errorf("load milestones: %w", err)
		}
		renderPointsModal(w, points, milestones, p.category)
		return nil
	case p.settingsOpen:
		renderSettingsModal(w, settings)
		return nil
	}

	summary := service.SummarizePoints(points)
	heading(w, "Profile")
	section(w, "Points")
	for _, c := range model.AllPointsCategories {
		fmt.Fprintf(w, "  %-10s %4d\n", c.Label(), points.Get(c))
	}
	fmt.Fprintf(w, "  %-10s %4d  %s %d/%d\n", "Total", summary.Total, bar(summary.BlockProgress), summary.Total, summary.NextMilestone)

	section(w, "Settings")
	fmt.Fprintf(w, "  Allergens:   %s\n", service.AllergenSummary(settings))
	fmt.Fprintf(w, "  Measurement: %s\n", service.MeasurementLabel(settings.MeasurementSystem))
	fmt.Fprintf(w, "  Appliances:  %d of %d available\n", len(service.AvailableAppliances(settings)), len(settings.Appliances))

	fmt.Fprintln(w, "\n> Log Out")
	return nil
}

func renderPointsModal(w io.Writer, points model.Points, milestones []model.Milestone, category model.PointsCategory) {
	heading(w, "Points")
	labels := make([]string, 0, len(model.AllPointsCategories))
	for _, c := range model.AllPointsCategories {
		if c == category {
			labels = append(labels, "("+c.Label()+")")
		} else {
			labels = append(labels, c.Label())
		}
	}
	fmt.Fprintln(w, strings.Join(labels, " | "))
	fmt.Fprintf(w, "%s: %d points\n", category.Label(), points.Get(category))
	fmt.Fprintln(w, category.Blurb())

	section(w, "Milestones")
	for _, mp := range service.CategoryProgress(points, milestones, category) {
		m := mp.Milestone
		fmt.Fprintf(w, "  %s (+%d)\n", m.Title, m.Reward)
		fmt.Fprintf(w, "    %s\n", m.Description)
		fmt.Fprintf(w, "    %s %s\n", bar(mp.BarWidth), mp.Label())
	}
}

func renderSettingsModal(w io.Writer, s model.UserSettings) {
	heading(w, "Settings")
	section(w, "Allergens")
	fmt.Fprintf(w, "  %s\n", tagChoices(catalog.CommonAllergens, s.Allergens))

	section(w, "Measurement System")
	for _, m := range []model.MeasurementSystem{model.Metric, model.Imperial} {
		mark := " "
		if m == s.MeasurementSystem {
			mark = "*"
		}
		fmt.Fprintf(w, "  (%s) %s\n", mark, service.MeasurementLabel(m))
	}

	section(w, "Appliances")
	for _, a := range s.Appliances {
		mark := " "
		if a.IsAvailable {
			mark = "x"
		}
		fmt.Fprintf(w, "  [%s] %-16s %s\n", mark, a.Name, a.ID)
	}
}
