package feedme

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esteban0203/FMA-2/internal/model"
	"github.com/esteban0203/FMA-2/internal/repository"
	"github.com/esteban0203/FMA-2/internal/state"
	"github.com/esteban0203/FMA-2/internal/view"
)

var (
	overviewPhase   string
	planRecipeID    string
	inventoryTab    string
	inventoryExpand []string
	profileCategory string
	profileSettings bool
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show points, meal plan status, and what to eat now",
	RunE: func(cmd *cobra.Command, args []string) error {
		phase, err := view.ParsePhase(overviewPhase)
		if err != nil {
			return err
		}
		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			o := view.NewOverview(repo)
			o.SetPhase(phase)
			return o.Render(cmd.Context(), cmd.OutOrStdout())
		})
	},
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the meal plan, or one recipe with --recipe",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			m := view.NewMealPlan(repo)
			if planRecipeID != "" {
				if err := m.OpenRecipe(cmd.Context(), planRecipeID); err != nil {
					return fmt.Errorf("recipe %q: %w", planRecipeID, err)
				}
			}
			return m.Render(cmd.Context(), cmd.OutOrStdout())
		})
	},
}

var inventoryCmd = &cobra.Command{
	Use:   "inventory",
	Short: "Show available items or the shopping list",
	RunE: func(cmd *cobra.Command, args []string) error {
		tab, err := view.ParseInventoryTab(inventoryTab)
		if err != nil {
			return err
		}
		sections := make([]model.StorageSection, 0, len(inventoryExpand))
		expandAll := false
		for _, raw := range inventoryExpand {
			if raw == "all" {
				expandAll = true
				continue
			}
			s, err := model.ParseStorageSection(raw)
			if err != nil {
				return err
			}
			sections = append(sections, s)
		}
		if expandAll {
			sections = model.AllStorageSections
		}
		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			v := view.NewInventory(repo)
			v.SetTab(tab)
			for _, s := range sections {
				if !v.IsExpanded(s) {
					v.ToggleSection(s)
				}
			}
			return v.Render(cmd.Context(), cmd.OutOrStdout())
		})
	},
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show points, milestones, and settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRepo(cmd.Context(), func(repo repository.Repository) error {
			p := view.NewProfile(repo, state.NewAuthState())
			switch {
			case profileCategory != "":
				c, err := model.ParsePointsCategory(profileCategory)
				if err != nil {
					return err
				}
				p.OpenPoints(c)
			case profileSettings:
				p.OpenSettings()
			}
			return p.Render(cmd.Context(), cmd.OutOrStdout())
		})
	},
}

func init() {
	rootCmd.AddCommand(overviewCmd, planCmd, inventoryCmd, profileCmd)

	overviewCmd.Flags().StringVar(&overviewPhase, "phase", string(view.PhasePlan), "Cycle phase: plan, shop, cook, or track")
	planCmd.Flags().StringVar(&planRecipeID, "recipe", "", "Recipe id to show in detail")
	inventoryCmd.Flags().StringVar(&inventoryTab, "tab", string(view.TabAvailable), "Tab: available or shopping")
	inventoryCmd.Flags().StringSliceVar(&inventoryExpand, "expand", nil, "Extra storage sections to expand (fresh, freezer, pantry, expiring-soon, all)")
	profileCmd.Flags().StringVar(&profileCategory, "category", "", "Open the points view for a category: efficiency, nutrition, or cooking")
	profileCmd.Flags().BoolVar(&profileSettings, "settings", false, "Open the settings view")
}
